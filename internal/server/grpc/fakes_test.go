package grpc

import (
	"context"

	"github.com/maaz2022/ourtracker/internal/common"
	"github.com/maaz2022/ourtracker/internal/server/auth"
	"github.com/maaz2022/ourtracker/internal/server/models"
	"github.com/maaz2022/ourtracker/internal/server/services"
)

type fakeAuth struct {
	form    services.Form
	isLogin bool
	res     *services.AuthResult
	err     error

	refreshPair *auth.TokenPair
	refreshErr  error
	signOutErr  error
}

func (f *fakeAuth) LoginSignup(_ context.Context, form services.Form, isLogin bool) (*services.AuthResult, error) {
	f.form, f.isLogin = form, isLogin
	return f.res, f.err
}
func (f *fakeAuth) Refresh(context.Context, string) (*auth.TokenPair, error) {
	return f.refreshPair, f.refreshErr
}
func (f *fakeAuth) SignOut(context.Context, string) error { return f.signOutErr }

type fakeInventories struct {
	session *auth.Claims
	form    services.Form
	id      string
	inv     *models.Inventory
	err     error

	transferArgs []any
	transfer     *services.TransferResult
	transferErr  error

	deleted   string
	deleteErr error
}

func (f *fakeInventories) Upsert(ctx context.Context, form services.Form, id string) (*models.Inventory, error) {
	f.session, _ = auth.SessionFromContext(ctx)
	f.form, f.id = form, id
	if f.session == nil {
		return nil, services.ErrUnauthenticated
	}
	return f.inv, f.err
}
func (f *fakeInventories) Transfer(_ context.Context, id, userID string, isAdmin bool) (*services.TransferResult, error) {
	f.transferArgs = []any{id, userID, isAdmin}
	return f.transfer, f.transferErr
}
func (f *fakeInventories) Delete(_ context.Context, id string) error {
	f.deleted = id
	return f.deleteErr
}

type fakeUsers struct {
	isAdmin bool
	id      string
	user    *models.User
	err     error

	deleteErr error
}

func (f *fakeUsers) UpdateRole(_ context.Context, _ services.Form, isAdmin bool, id string) (*models.User, error) {
	f.isAdmin, f.id = isAdmin, id
	return f.user, f.err
}
func (f *fakeUsers) Delete(context.Context, string) error { return f.deleteErr }

type fakeTrackOrders struct{ err error }

func (f *fakeTrackOrders) Delete(context.Context, string) error { return f.err }

type fakeAuthenticator struct {
	token  string
	claims *auth.Claims
}

func (f fakeAuthenticator) Authenticate(accessToken string) (*auth.Claims, error) {
	if accessToken != f.token {
		return nil, common.ErrInvalidToken
	}
	return f.claims, nil
}

type testActions struct {
	auth        *fakeAuth
	inventories *fakeInventories
	users       *fakeUsers
	trackOrders *fakeTrackOrders
}

func newTestActions() *testActions {
	return &testActions{
		auth:        &fakeAuth{},
		inventories: &fakeInventories{},
		users:       &fakeUsers{},
		trackOrders: &fakeTrackOrders{},
	}
}

func (a *testActions) bundle() services.Actions {
	return services.Actions{
		Auth:        a.auth,
		Inventories: a.inventories,
		Users:       a.users,
		TrackOrders: a.trackOrders,
	}
}
