package grpc

import (
	"context"

	"github.com/maaz2022/ourtracker/internal/common"
	"github.com/maaz2022/ourtracker/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// sessionRequired lists the methods that reject calls without a valid token.
var sessionRequired = map[string]bool{
	FullMethod("UpsertInventory"): true,
}

// accessTokenInterceptor attaches the caller's session to the context when a
// valid access token is present.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			accessToken = values[0]
		}
	}

	required := sessionRequired[info.FullMethod]

	if accessToken == "" {
		if required {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}
		return handler(ctx, req)
	}

	claims, err := s.authenticator.Authenticate(accessToken)
	if err != nil {
		if required {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
		s.logger.Warn(ctx, "ignoring invalid access token", "method", info.FullMethod, "err", err)
		return handler(ctx, req)
	}

	return handler(auth.WithSession(ctx, claims), req)
}
