package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/accmachine/internal/client/models"
	"github.com/dmitrijs2005/accmachine/internal/common"
)

type HTTPClient struct {
	baseURL        string
	httpClient     *http.Client
	accessToken    string
	refreshToken   string
	onTokenRefresh func(accessToken string, refreshToken string)
}

func NewMachineClientService(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("empty server base url")
	}
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	return c, nil
}

// SetTokens seeds the client with a previously saved token pair, e.g. when
// resuming a session from disk.
func (s *HTTPClient) SetTokens(accessToken string, refreshToken string) {
	s.accessToken = accessToken
	s.refreshToken = refreshToken
}

// SetOnTokenRefresh registers a callback fired every time the client obtains
// a new token pair, either on login or on a transparent refresh.
func (s *HTTPClient) SetOnTokenRefresh(fn func(accessToken string, refreshToken string)) {
	s.onTokenRefresh = fn
}

func (s *HTTPClient) setTokens(accessToken string, refreshToken string) {
	s.accessToken = accessToken
	s.refreshToken = refreshToken
	if s.onTokenRefresh != nil {
		s.onTokenRefresh(accessToken, refreshToken)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type createAccountsRequest struct {
	Accounts []models.Account `json:"accounts"`
}

type createAccountsResponse struct {
	Created int `json:"created"`
}

type listAccountsResponse struct {
	Accounts []models.Account `json:"accounts"`
	Total    int              `json:"total"`
}

type createArchiveRequest struct {
	Filename string `json:"filename"`
}

type createArchiveResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type completeArchiveRequest struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

type listArchivesResponse struct {
	Archives []models.Archive `json:"archives"`
}

type urlResponse struct {
	URL string `json:"url"`
}

// send performs a single HTTP round trip and returns the status code with the
// raw body. The current access token is attached when present. Transport
// failures collapse into ErrUnavailable.
func (s *HTTPClient) send(ctx context.Context, method string, path string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshalling request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.accessToken != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+s.accessToken)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, nil, ErrUnavailable
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response: %w", err)
	}
	return resp.StatusCode, raw, nil
}

// doJSON sends one API request and decodes a 2xx answer into out (when out is
// not nil). A 401 carrying the expired-token message triggers one token
// refresh followed by a replay of the original request.
func (s *HTTPClient) doJSON(ctx context.Context, method string, path string, body any, out any) error {
	status, raw, err := s.send(ctx, method, path, body)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized &&
		errorMessage(raw) == common.TokenExpiredMessage &&
		s.refreshToken != "" {

		if err := s.refresh(ctx); err != nil {
			return err
		}

		// tokens refreshed, replaying with the new access token
		status, raw, err = s.send(ctx, method, path, body)
		if err != nil {
			return err
		}
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return s.mapError(status, errorMessage(raw))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// refresh exchanges the stored refresh token for a new pair. The server
// rotates the refresh token on every exchange, so the new pair replaces the
// old one immediately.
func (s *HTTPClient) refresh(ctx context.Context) error {
	status, raw, err := s.send(ctx, http.MethodPost, "/api/refresh", refreshRequest{RefreshToken: s.refreshToken})
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return s.mapError(status, errorMessage(raw))
	}

	var pair tokenPair
	if err := json.Unmarshal(raw, &pair); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	s.setTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

func errorMessage(raw []byte) string {
	var e errorBody
	if err := json.Unmarshal(raw, &e); err != nil {
		return ""
	}
	return e.Error
}

func (s *HTTPClient) mapError(status int, message string) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		if message == ErrNoAccounts.Error() {
			return ErrNoAccounts
		}
		return ErrAlreadyExists
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		if message == "" {
			message = http.StatusText(status)
		}
		return fmt.Errorf("api error: %s", message)
	}
}

func (s *HTTPClient) Register(ctx context.Context, email string, password []byte) error {
	req := credentialsRequest{Email: email, Password: string(password)}
	return s.doJSON(ctx, http.MethodPost, "/api/register", req, nil)
}

func (s *HTTPClient) Login(ctx context.Context, email string, password []byte) error {
	req := credentialsRequest{Email: email, Password: string(password)}

	var pair tokenPair
	if err := s.doJSON(ctx, http.MethodPost, "/api/login", req, &pair); err != nil {
		return err
	}

	s.setTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

func (s *HTTPClient) Logout(ctx context.Context) error {
	if err := s.doJSON(ctx, http.MethodPost, "/api/logout", nil, nil); err != nil {
		return err
	}
	s.accessToken = ""
	s.refreshToken = ""
	return nil
}

func (s *HTTPClient) Ping(ctx context.Context) error {
	var resp statusResponse
	if err := s.doJSON(ctx, http.MethodGet, "/healthz", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return ErrUnavailable
	}
	return nil
}

func (s *HTTPClient) CreateAccounts(ctx context.Context, accounts []models.Account) (int, error) {
	req := createAccountsRequest{Accounts: accounts}

	var resp createAccountsResponse
	if err := s.doJSON(ctx, http.MethodPost, "/api/accounts", req, &resp); err != nil {
		return 0, err
	}
	return resp.Created, nil
}

func (s *HTTPClient) ListAccounts(ctx context.Context) ([]models.Account, int, error) {
	var resp listAccountsResponse
	if err := s.doJSON(ctx, http.MethodGet, "/api/accounts", nil, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Accounts, resp.Total, nil
}

func (s *HTTPClient) ResetAccounts(ctx context.Context) error {
	return s.doJSON(ctx, http.MethodDelete, "/api/accounts", nil, nil)
}

func (s *HTTPClient) GameCurrent(ctx context.Context) (*models.GameView, error) {
	var view models.GameView
	if err := s.doJSON(ctx, http.MethodGet, "/api/game", nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *HTTPClient) GameNext(ctx context.Context) (*models.GameView, error) {
	var view models.GameView
	if err := s.doJSON(ctx, http.MethodPost, "/api/game/next", nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *HTTPClient) CreateArchive(ctx context.Context, filename string) (string, string, error) {
	req := createArchiveRequest{Filename: filename}

	var resp createArchiveResponse
	if err := s.doJSON(ctx, http.MethodPost, "/api/archives", req, &resp); err != nil {
		return "", "", err
	}
	return resp.Key, resp.URL, nil
}

func (s *HTTPClient) CompleteArchive(ctx context.Context, key string, size int64) error {
	req := completeArchiveRequest{Key: key, Size: size}
	return s.doJSON(ctx, http.MethodPost, "/api/archives/complete", req, nil)
}

func (s *HTTPClient) ListArchives(ctx context.Context) ([]models.Archive, error) {
	var resp listArchivesResponse
	if err := s.doJSON(ctx, http.MethodGet, "/api/archives", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Archives, nil
}

func (s *HTTPClient) GetPresignedGetURL(ctx context.Context, key string) (string, error) {
	q := url.Values{"key": {key}}

	var resp urlResponse
	if err := s.doJSON(ctx, http.MethodGet, "/api/archives/url?"+q.Encode(), nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}
