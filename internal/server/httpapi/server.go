// Package httpapi serves the actions as gin form endpoints under /actions.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maaz2022/ourtracker/internal/logging"
	"github.com/maaz2022/ourtracker/internal/server/auth"
	"github.com/maaz2022/ourtracker/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// Authenticator validates access tokens. *auth.Provider implements it.
type Authenticator interface {
	Authenticate(accessToken string) (*auth.Claims, error)
}

type HTTPServer struct {
	address       string
	actions       services.Actions
	authenticator Authenticator
	sessionTTL    time.Duration
	logger        logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, actions services.Actions, authenticator Authenticator, sessionTTL time.Duration) *HTTPServer {
	return &HTTPServer{
		address:       a,
		logger:        l.With("module", "http_server"),
		actions:       actions,
		authenticator: authenticator,
		sessionTTL:    sessionTTL,
	}
}

// Router builds the gin engine.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), s.sessionMiddleware())

	r.GET("/ping", s.ping)

	g := r.Group("/actions")
	{
		g.POST("/login", s.loginSignup(true))
		g.POST("/signup", s.loginSignup(false))
		g.POST("/session/refresh", s.refreshSession)
		g.POST("/session/signout", s.signOut)

		g.POST("/inventories", requireSession(), s.upsertInventory)
		g.POST("/inventories/:id", requireSession(), s.upsertInventory)
		g.POST("/inventories/:id/transfer", s.transferInventory)
		g.DELETE("/inventories/:id", s.deleteInventory)

		g.POST("/users/:id/role", s.updateUserRole)
		g.DELETE("/users/:id", s.deleteUser)

		g.DELETE("/track-orders/:id", s.deleteTrackOrder)
	}

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "err", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
