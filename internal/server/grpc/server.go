// Package grpc serves the actions over gRPC. Requests and responses are
// google.protobuf.Struct key/value maps; the access token travels in the
// "access_token" metadata key.
package grpc

import (
	"context"
	"net"

	"github.com/maaz2022/ourtracker/internal/logging"
	"github.com/maaz2022/ourtracker/internal/server/auth"
	"github.com/maaz2022/ourtracker/internal/server/services"
	"google.golang.org/grpc"
)

// Authenticator validates access tokens. *auth.Provider implements it.
type Authenticator interface {
	Authenticate(accessToken string) (*auth.Claims, error)
}

type GRPCServer struct {
	address       string
	actions       services.Actions
	authenticator Authenticator
	logger        logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, actions services.Actions, authenticator Authenticator) *GRPCServer {
	return &GRPCServer{
		address:       a,
		logger:        l.With("module", "grpc_server"),
		actions:       actions,
		authenticator: authenticator,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	RegisterActionsServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
