package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/maaz2022/ourtracker/internal/common"
	"github.com/maaz2022/ourtracker/internal/logging"
	"github.com/maaz2022/ourtracker/internal/server/auth"
	"github.com/maaz2022/ourtracker/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", logging.Nop{}, newTestActions().bundle(), fakeAuthenticator{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop{}, newTestActions().bundle(), fakeAuthenticator{})

	if err := srv.Run(context.Background()); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}

func dialBufconn(t *testing.T, s *GRPCServer) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		cancel()
		<-done
	})
	return conn
}

func TestEndToEnd_Ping(t *testing.T) {
	conn := dialBufconn(t, NewGRPCServer("", logging.Nop{}, newTestActions().bundle(), fakeAuthenticator{}))

	out, err := Invoke(context.Background(), conn, "Ping", &structpb.Struct{})
	require.NoError(t, err)
	assert.Equal(t, "OK", out.Fields["status"].GetStringValue())
}

func TestEndToEnd_UpsertRequiresToken(t *testing.T) {
	a := newTestActions()
	a.inventories.inv = &models.Inventory{ID: "i1", Name: "Drill"}
	conn := dialBufconn(t, NewGRPCServer("", logging.Nop{}, a.bundle(), fakeAuthenticator{
		token:  "good",
		claims: &auth.Claims{UserID: "u1", Email: "a@example.com"},
	}))

	_, err := Invoke(context.Background(), conn, "UpsertInventory", &structpb.Struct{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	ctx := metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, "good")
	out, err := Invoke(ctx, conn, "UpsertInventory", &structpb.Struct{})
	require.NoError(t, err)
	assert.Equal(t, "i1", out.Fields["id"].GetStringValue())
	require.NotNil(t, a.inventories.session)
	assert.Equal(t, "a@example.com", a.inventories.session.Email)
}

func TestEndToEnd_UnknownMethod(t *testing.T) {
	conn := dialBufconn(t, NewGRPCServer("", logging.Nop{}, newTestActions().bundle(), fakeAuthenticator{}))

	_, err := Invoke(context.Background(), conn, "Nope", &structpb.Struct{})
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}
