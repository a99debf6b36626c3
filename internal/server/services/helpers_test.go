package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/maaz2022/ourtracker/internal/server/auth"
	"github.com/stretchr/testify/require"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

type recordingNotifier struct {
	paths []string
	err   error
}

func (r *recordingNotifier) Invalidate(_ context.Context, path string) error {
	r.paths = append(r.paths, path)
	return r.err
}

type fakeProvider struct {
	calls int
	got   auth.Credentials

	pair *auth.TokenPair
	err  error

	refreshPair *auth.TokenPair
	refreshErr  error
	signOutErr  error
}

func (p *fakeProvider) SignIn(_ context.Context, c auth.Credentials) (*auth.TokenPair, error) {
	p.calls++
	p.got = c
	return p.pair, p.err
}

func (p *fakeProvider) Refresh(context.Context, string) (*auth.TokenPair, error) {
	return p.refreshPair, p.refreshErr
}

func (p *fakeProvider) SignOut(context.Context, string) error { return p.signOutErr }

type fakeImages struct {
	got string
	err error
}

func (f *fakeImages) Put(_ context.Context, payload string) (*string, error) {
	f.got = payload
	if f.err != nil {
		return nil, f.err
	}
	if payload == "" {
		return nil, nil
	}
	return &payload, nil
}

func signedIn(email string) context.Context {
	return auth.WithSession(context.Background(), &auth.Claims{UserID: "session-user", Email: email})
}
