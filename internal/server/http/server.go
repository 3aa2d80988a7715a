// Package http exposes the server's public JSON API over gin: registration
// and login, the stored account list, the game cursor and presigned archive
// uploads. Handlers translate the service sentinel errors into HTTP statuses
// and never leak internals to the client.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/accmachine/internal/logging"
	"github.com/dmitrijs2005/accmachine/internal/server/models"
	"github.com/dmitrijs2005/accmachine/internal/server/services"
)

// UserService is the authentication surface the handlers call.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, userID string) error
}

// AccountService stores and lists generated accounts.
type AccountService interface {
	CreateBatch(ctx context.Context, userID string, batch []services.NewAccount) (int, error)
	List(ctx context.Context, userID string) ([]*models.Account, int, error)
	Reset(ctx context.Context, userID string) error
}

// GameService drives the account walk.
type GameService interface {
	Current(ctx context.Context, userID string) (*services.GameView, error)
	Advance(ctx context.Context, userID string) (*services.GameView, error)
}

// ArchiveService hands out presigned URLs for export archives.
type ArchiveService interface {
	PresignPut(ctx context.Context, userID string, filename string) (string, string, error)
	Complete(ctx context.Context, userID string, key string, size int64) error
	PresignGet(ctx context.Context, userID string, key string) (string, error)
	List(ctx context.Context, userID string) ([]*models.Archive, error)
}

type HTTPServer struct {
	address   string
	logger    logging.Logger
	users     UserService
	accounts  AccountService
	game      GameService
	archives  ArchiveService
	jwtSecret []byte
}

func NewHTTPServer(a string, l logging.Logger, us UserService, as AccountService, gs GameService, ars ArchiveService, secretKey string) (*HTTPServer, error) {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		accounts:  as,
		game:      gs,
		archives:  ars,
		jwtSecret: []byte(secretKey),
	}, nil
}

func (s *HTTPServer) setupRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", s.healthz)

	// public
	api := router.Group("/api")
	{
		api.POST("/register", s.register)
		api.POST("/login", s.login)
		api.POST("/refresh", s.refresh)
	}

	// protected
	authed := router.Group("/api")
	authed.Use(s.authMiddleware())
	{
		authed.POST("/logout", s.logout)

		authed.GET("/accounts", s.listAccounts)
		authed.POST("/accounts", s.createAccounts)
		authed.DELETE("/accounts", s.resetAccounts)

		authed.GET("/game", s.gameCurrent)
		authed.POST("/game/next", s.gameNext)

		authed.POST("/archives", s.createArchive)
		authed.POST("/archives/complete", s.completeArchive)
		authed.GET("/archives", s.listArchives)
		authed.GET("/archives/url", s.archiveURL)
	}

	return router
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.setupRouter(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
