package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/accmachine/internal/common"
	"github.com/dmitrijs2005/accmachine/internal/server/models"
	"github.com/dmitrijs2005/accmachine/internal/server/services"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type accountPayload struct {
	ID          string    `json:"id,omitempty"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	PasswordMD5 string    `json:"password_md5"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

type createAccountsRequest struct {
	Accounts []accountPayload `json:"accounts" binding:"required"`
}

type gameViewResponse struct {
	Index   int            `json:"index"`
	Level   int            `json:"level"`
	Total   int            `json:"total"`
	Account accountPayload `json:"account"`
}

type createArchiveRequest struct {
	Filename string `json:"filename" binding:"required"`
}

type completeArchiveRequest struct {
	Key  string `json:"key" binding:"required"`
	Size int64  `json:"size"`
}

type archivePayload struct {
	Key       string    `json:"key"`
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	Uploaded  bool      `json:"uploaded"`
	CreatedAt time.Time `json:"created_at"`
}

func accountToPayload(a *models.Account) accountPayload {
	return accountPayload{
		ID:          a.ID,
		Email:       a.Email,
		Password:    a.Password,
		PasswordMD5: a.PasswordMD5,
		CreatedAt:   a.CreatedAt,
	}
}

func gameViewToResponse(v *services.GameView) gameViewResponse {
	return gameViewResponse{
		Index:   v.Index,
		Level:   v.Level,
		Total:   v.Total,
		Account: accountToPayload(v.Account),
	}
}

// writeError maps service sentinel errors to HTTP statuses. Anything
// unrecognized is a 500 with a generic body.
func (s *HTTPServer) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrRefreshTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, common.ErrorNoAccounts):
		c.JSON(http.StatusConflict, gin.H{"error": common.ErrorNoAccounts.Error()})
	default:
		s.logger.Error(c.Request.Context(), err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (s *HTTPServer) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *HTTPServer) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "email", user.Email)
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "email": user.Email})
}

func (s *HTTPServer) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenPairResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (s *HTTPServer) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := s.users.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenPairResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (s *HTTPServer) logout(c *gin.Context) {
	if err := s.users.Logout(c.Request.Context(), currentUserID(c)); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *HTTPServer) listAccounts(c *gin.Context) {
	list, total, err := s.accounts.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]accountPayload, 0, len(list))
	for _, a := range list {
		out = append(out, accountToPayload(a))
	}
	c.JSON(http.StatusOK, gin.H{"accounts": out, "total": total})
}

func (s *HTTPServer) createAccounts(c *gin.Context) {
	var req createAccountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch := make([]services.NewAccount, 0, len(req.Accounts))
	for _, a := range req.Accounts {
		batch = append(batch, services.NewAccount{
			Email:       a.Email,
			Password:    a.Password,
			PasswordMD5: a.PasswordMD5,
		})
	}

	n, err := s.accounts.CreateBatch(c.Request.Context(), currentUserID(c), batch)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Accounts created", "count", n)
	c.JSON(http.StatusCreated, gin.H{"created": n})
}

func (s *HTTPServer) resetAccounts(c *gin.Context) {
	if err := s.accounts.Reset(c.Request.Context(), currentUserID(c)); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *HTTPServer) gameCurrent(c *gin.Context) {
	view, err := s.game.Current(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gameViewToResponse(view))
}

func (s *HTTPServer) gameNext(c *gin.Context) {
	view, err := s.game.Advance(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gameViewToResponse(view))
}

func (s *HTTPServer) createArchive(c *gin.Context) {
	var req createArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, url, err := s.archives.PresignPut(c.Request.Context(), currentUserID(c), req.Filename)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "url": url})
}

func (s *HTTPServer) completeArchive(c *gin.Context) {
	var req completeArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.archives.Complete(c.Request.Context(), currentUserID(c), req.Key, req.Size); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *HTTPServer) listArchives(c *gin.Context) {
	list, err := s.archives.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]archivePayload, 0, len(list))
	for _, a := range list {
		out = append(out, archivePayload{
			Key:       a.StorageKey,
			Filename:  a.Filename,
			Size:      a.Size,
			Uploaded:  a.Uploaded,
			CreatedAt: a.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"archives": out})
}

func (s *HTTPServer) archiveURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
		return
	}

	url, err := s.archives.PresignGet(c.Request.Context(), currentUserID(c), key)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
