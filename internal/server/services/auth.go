package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/maaz2022/ourtracker/internal/common"
	"github.com/maaz2022/ourtracker/internal/logging"
	"github.com/maaz2022/ourtracker/internal/server/auth"
	"github.com/maaz2022/ourtracker/internal/server/repositories/repomanager"
)

// CredentialProvider checks credentials and manages sessions.
// *auth.Provider implements it.
type CredentialProvider interface {
	SignIn(ctx context.Context, c auth.Credentials) (*auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	SignOut(ctx context.Context, refreshToken string) error
}

type Outcome int

const (
	OutcomeRedirect Outcome = iota + 1
	OutcomeCredentialError
)

// AuthResult describes how a login or signup completed. Destination and
// Session are set for OutcomeRedirect, ErrorKind for OutcomeCredentialError.
type AuthResult struct {
	Outcome     Outcome
	Destination string
	Session     *auth.TokenPair
	ErrorKind   auth.CredentialKind
}

type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	provider    CredentialProvider
	logger      logging.Logger
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, p CredentialProvider, l logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		provider:    p,
		logger:      l.With("module", "auth_service"),
	}
}

// LoginSignup signs an existing user in (isLogin) or registers a new one.
// Admins are sent to the dashboard, everyone else to the home view.
func (s *AuthService) LoginSignup(ctx context.Context, form Form, isLogin bool) (*AuthResult, error) {
	name := form.Get("name")
	email := form.Get("email")
	password := form.Get("password")

	if email == "" || password == "" || (!isLogin && name == "") {
		return nil, ErrAuthFieldsRequired
	}

	// is_admin is read before signing in; a missing user is not an error here.
	isAdmin := false
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	switch {
	case err == nil:
		isAdmin = user.IsAdmin
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "user lookup failed", "err", err)
		return nil, ErrAuthFailed
	}

	pair, err := s.provider.SignIn(ctx, auth.Credentials{
		Name:     name,
		Email:    email,
		Password: password,
		IsLogin:  isLogin,
	})
	if err == nil {
		dest := common.ViewHome
		if isAdmin {
			dest = common.ViewDashboard
		}
		s.logger.Info(ctx, "signed in", "user_id", pair.UserID, "login", isLogin)
		return &AuthResult{Outcome: OutcomeRedirect, Destination: dest, Session: pair}, nil
	}

	kind := auth.KindUnknown
	var ce *auth.CredentialError
	if errors.As(err, &ce) {
		kind = ce.Kind
	} else {
		s.logger.Error(ctx, "credential provider failed", "err", err)
	}

	res := &AuthResult{Outcome: OutcomeCredentialError, ErrorKind: kind}
	if !isLogin {
		return res, ErrCredentialsExist
	}
	return res, ErrWrongCredentials
}

// Refresh rotates a session.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	if refreshToken == "" {
		return nil, common.ErrorUnauthorized
	}
	pair, err := s.provider.Refresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrSessionExpired) {
			return nil, common.ErrSessionExpired
		}
		s.logger.Warn(ctx, "session refresh failed", "err", err)
		return nil, common.ErrorUnauthorized
	}
	return pair, nil
}

func (s *AuthService) SignOut(ctx context.Context, refreshToken string) error {
	if err := s.provider.SignOut(ctx, refreshToken); err != nil {
		s.logger.Error(ctx, "sign out failed", "err", err)
		return common.ErrorInternal
	}
	return nil
}
