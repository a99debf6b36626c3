package grpc

import (
	"context"
	"testing"

	"github.com/maaz2022/ourtracker/internal/common"
	"github.com/maaz2022/ourtracker/internal/logging"
	"github.com/maaz2022/ourtracker/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newTestServer() *GRPCServer {
	return &GRPCServer{
		logger: logging.Nop{},
		authenticator: fakeAuthenticator{
			token:  "good",
			claims: &auth.Claims{UserID: "u1", Email: "a@example.com"},
		},
	}
}

func tokenCtx(token string) context.Context {
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: token})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestInterceptor_OpenMethod_AllowsWithoutToken(t *testing.T) {
	s := newTestServer()
	info := &grpc.UnaryServerInfo{FullMethod: FullMethod("DeleteInventory")}

	called := false
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		called = true
		if _, ok := auth.SessionFromContext(ctx); ok {
			t.Fatal("no session expected")
		}
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called || resp != "ok" {
		t.Fatalf("handler not called properly: called=%v resp=%v", called, resp)
	}
}

func TestInterceptor_OpenMethod_InvalidTokenIgnored(t *testing.T) {
	s := newTestServer()
	info := &grpc.UnaryServerInfo{FullMethod: FullMethod("Ping")}

	called := false
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		called = true
		return nil, nil
	}

	if _, err := s.accessTokenInterceptor(tokenCtx("bad"), nil, info, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("handler was not called")
	}
}

func TestInterceptor_Protected_MissingToken(t *testing.T) {
	s := newTestServer()
	info := &grpc.UnaryServerInfo{FullMethod: FullMethod("UpsertInventory")}

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
	if status.Convert(err).Message() != "missing token" {
		t.Fatalf("expected 'missing token', got %q", status.Convert(err).Message())
	}
}

func TestInterceptor_Protected_InvalidToken(t *testing.T) {
	s := newTestServer()
	info := &grpc.UnaryServerInfo{FullMethod: FullMethod("UpsertInventory")}

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called for invalid token")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(tokenCtx("bad"), nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
}

func TestInterceptor_ValidToken_SetsSession(t *testing.T) {
	s := newTestServer()
	info := &grpc.UnaryServerInfo{FullMethod: FullMethod("UpsertInventory")}

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		c, ok := auth.SessionFromContext(ctx)
		if !ok || c.UserID != "u1" {
			t.Fatalf("session not attached: %+v", c)
		}
		return nil, nil
	}

	if _, err := s.accessTokenInterceptor(tokenCtx("good"), nil, info, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
