// Package regapi is the client for the remote registration endpoint. The
// endpoint accepts a JSON body with an email and an MD5-hexed password and
// answers with a JSON envelope carrying a numeric code and a message.
package regapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/accmachine/internal/tracing"
)

// ErrRejected is returned when the endpoint answered but refused the
// registration. The wrapped message carries the server's explanation.
var ErrRejected = errors.New("registration rejected")

// Client talks to one registration endpoint. The zero endpoint URL switches
// the client into dry-run mode, so a bot can be exercised without a live
// remote.
type Client struct {
	endpointURL string
	httpClient  *http.Client
	dryRun      bool
}

// RegisterRequest is the JSON body of a registration call. Password carries
// the MD5 hex digest, never the plaintext.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is the endpoint's JSON envelope. Code 200 or 0 means
// accepted, anything else is a rejection with Msg explaining why.
type RegisterResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// New returns a Client for endpointURL. With dryRun set, or with an empty
// endpointURL, no network I/O happens and every call reports success.
func New(endpointURL string, timeout time.Duration, dryRun bool) *Client {
	return &Client{
		endpointURL: endpointURL,
		httpClient:  &http.Client{Timeout: timeout},
		dryRun:      dryRun,
	}
}

// Register submits one account to the endpoint. An error is returned when the
// request cannot be sent, the HTTP status is not 200, the body does not
// decode, or the envelope code signals a rejection. Failed registrations are
// never retried here; the caller records the outcome and moves on.
func (c *Client) Register(ctx context.Context, email, passwordMD5 string) (*RegisterResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "regapi.register", "CLIENT")
	span.WithAttributes(map[string]string{"email": email})

	resp, err := c.register(ctx, email, passwordMD5)
	tracing.EndSpan(span, err)
	return resp, err
}

func (c *Client) register(ctx context.Context, email, passwordMD5 string) (*RegisterResponse, error) {
	if c.dryRun || c.endpointURL == "" {
		return &RegisterResponse{Code: 200, Msg: "dry-run"}, nil
	}

	body, err := json.Marshal(RegisterRequest{Email: email, Password: passwordMD5})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("endpoint returned %s: %s", resp.Status, string(raw))
	}

	var result RegisterResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	// Историческое API отвечает либо code=200, либо code=0 при успехе.
	if result.Code != 200 && result.Code != 0 {
		return &result, fmt.Errorf("%w: code=%d msg=%q", ErrRejected, result.Code, result.Msg)
	}

	return &result, nil
}
