// Package httpapi exposes the core services over HTTP using Echo.
//
// Routes:
//
//	POST /api/auth/register    create an account
//	POST /api/auth/login       login, sets the session cookie
//	POST /api/auth/logout      clears the session cookie
//	GET  /api/auth/me          current account (auth)
//	POST /api/auth/check-email email availability for signup forms
//	GET  /api/search           semantic retrieval
//	POST /api/chat             retrieval-grounded chat, streamed as SSE
//	GET  /api/chat/status      chat backend reachability
//	GET  /api/history          saved conversations (auth)
//	POST /api/history          save a conversation (auth)
//	DELETE /api/history/:id    delete a conversation (auth)
//	GET  /api/resources        list ingested resources
//	GET  /api/resources/:id    one resource
//	GET  /api/resources/:id/price  price, or free
//	GET  /resources/:id/file   the original source file (auth for priced)
//	GET  /api/purchases        the user's purchases (auth)
//	POST /api/purchases        record a purchase (auth)
//	GET  /healthz              liveness and vector count
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/granthika-labs/granthika/internal/core/domain"
	"github.com/granthika-labs/granthika/internal/core/ports/driven"
	"github.com/granthika-labs/granthika/internal/core/ports/driving"
	"github.com/granthika-labs/granthika/internal/logger"
)

// Options configures the HTTP server.
type Options struct {
	// Addr is the listen address, e.g. ":3000".
	Addr string

	// JWTSecret signs session cookies.
	JWTSecret []byte

	// SessionHours is how long a login session stays valid.
	SessionHours int
}

// Server wires the core services into an Echo application.
type Server struct {
	echo *echo.Echo
	opts Options

	search    driving.SearchService
	chat      driving.ChatService
	auth      driving.AuthService
	resources driven.ResourceStore
	vectors   driven.VectorIndex
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(
	opts Options,
	search driving.SearchService,
	chat driving.ChatService,
	auth driving.AuthService,
	resources driven.ResourceStore,
	vectors driven.VectorIndex,
) *Server {
	if opts.SessionHours <= 0 {
		opts.SessionHours = 72
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = errorHandler

	s := &Server{
		echo:      e,
		opts:      opts,
		search:    search,
		chat:      chat,
		auth:      auth,
		resources: resources,
		vectors:   vectors,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.echo

	e.GET("/healthz", s.handleHealthz)

	api := e.Group("/api")
	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)
	api.POST("/auth/logout", s.handleLogout)
	api.GET("/auth/me", s.handleMe, s.requireSession)
	api.POST("/auth/check-email", s.handleCheckEmail)

	api.GET("/search", s.handleSearch)
	api.POST("/chat", s.handleChat)
	api.GET("/chat/status", s.handleChatStatus)

	api.GET("/history", s.handleListHistory, s.requireSession)
	api.POST("/history", s.handleSaveHistory, s.requireSession)
	api.DELETE("/history/:id", s.handleDeleteHistory, s.requireSession)

	api.GET("/resources", s.handleListResources)
	api.GET("/resources/:id", s.handleGetResource)
	api.GET("/resources/:id/price", s.handleResourcePrice)
	api.GET("/purchases", s.handleListPurchases, s.requireSession)
	api.POST("/purchases", s.handlePurchase, s.requireSession)

	e.GET("/resources/:id/file", s.handleResourceFile, s.optionalSession)
}

func (s *Server) handleHealthz(c echo.Context) error {
	vectors := 0
	if s.vectors != nil {
		vectors = s.vectors.Len()
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "ok",
		"vectors":   vectors,
		"timestamp": time.Now().UTC(),
	})
}

// Start blocks serving HTTP until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	logger.Info("http api listening on %s", s.opts.Addr)
	err := s.echo.Start(s.opts.Addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// errorHandler maps domain errors onto HTTP statuses so handlers can
// return them unwrapped.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal error"

	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		msg = fmt.Sprint(httpErr.Message)
	case errors.Is(err, domain.ErrInvalidInput):
		code = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		code = http.StatusUnauthorized
		msg = "unauthorized"
	case errors.Is(err, domain.ErrNotFound):
		code = http.StatusNotFound
		msg = "not found"
	case errors.Is(err, domain.ErrAlreadyExists):
		code = http.StatusConflict
		msg = err.Error()
	case errors.Is(err, domain.ErrChatUnavailable):
		code = http.StatusServiceUnavailable
		msg = "chat backend unavailable"
	default:
		logger.Error("http %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	_ = c.JSON(code, map[string]string{"error": msg})
}
