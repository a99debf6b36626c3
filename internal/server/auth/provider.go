// Package auth is the credential provider: it checks or creates email and
// password credentials, mints HS256 access tokens and keeps refresh tokens
// as server-stored sessions.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/maaz2022/ourtracker/internal/common"
	"github.com/maaz2022/ourtracker/internal/dbx"
	"github.com/maaz2022/ourtracker/internal/server/config"
	"github.com/maaz2022/ourtracker/internal/server/models"
	"github.com/maaz2022/ourtracker/internal/server/repositories/repomanager"
)

// CredentialKind classifies a rejected sign-in.
type CredentialKind string

const (
	KindCredentialsSignin CredentialKind = "CredentialsSignin"
	KindUserExists        CredentialKind = "UserExists"
	KindUnknown           CredentialKind = "unknown"
)

// CredentialError is returned by SignIn when the credentials are rejected.
type CredentialError struct {
	Kind CredentialKind
}

func (e *CredentialError) Error() string {
	return "credential error: " + string(e.Kind)
}

// Credentials is a sign-in attempt. Name is only used on signup.
type Credentials struct {
	Name     string
	Email    string
	Password string
	IsLogin  bool
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	UserID       string
}

type Provider struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewProvider(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *Provider {
	return &Provider{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// SignIn verifies the credentials in login mode, or creates a non-admin user
// in signup mode, and issues a session. Rejections are *CredentialError.
func (p *Provider) SignIn(ctx context.Context, c Credentials) (*TokenPair, error) {
	if c.IsLogin {
		return p.login(ctx, c)
	}
	return p.signup(ctx, c)
}

func (p *Provider) login(ctx context.Context, c Credentials) (*TokenPair, error) {
	user, err := p.repomanager.Users(p.db).GetByEmail(ctx, c.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, &CredentialError{Kind: KindCredentialsSignin}
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	if !CheckPassword(user.Password, c.Password) {
		return nil, &CredentialError{Kind: KindCredentialsSignin}
	}
	return p.generateTokenPair(ctx, user, p.db)
}

func (p *Provider) signup(ctx context.Context, c Credentials) (*TokenPair, error) {
	hash, err := HashPassword(c.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return dbx.InTx(ctx, p.db, func(ctx context.Context, tx dbx.DBTX) (*TokenPair, error) {
		repo := p.repomanager.Users(tx)

		_, err := repo.GetByEmail(ctx, c.Email)
		switch {
		case err == nil:
			return nil, &CredentialError{Kind: KindUserExists}
		case !errors.Is(err, common.ErrorNotFound):
			return nil, fmt.Errorf("error searching user: %w", err)
		}

		user, err := repo.Create(ctx, &models.User{Name: c.Name, Email: c.Email, Password: hash})
		if err != nil {
			return nil, fmt.Errorf("error creating user: %w", err)
		}
		return p.generateTokenPair(ctx, user, tx)
	})
}

// Refresh validates a refresh token, rotates it in a transaction and returns
// a fresh TokenPair. Expired sessions yield common.ErrSessionExpired. A token
// consumed by a concurrent refresh fails with common.ErrorNotFound.
func (p *Provider) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	session, err := p.repomanager.Sessions(p.db).Find(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("error searching session: %w", err)
	}
	if session.Expires.Before(time.Now()) {
		return nil, common.ErrSessionExpired
	}

	return dbx.InTx(ctx, p.db, func(ctx context.Context, tx dbx.DBTX) (*TokenPair, error) {
		if err := p.repomanager.Sessions(tx).Delete(ctx, refreshToken); err != nil {
			return nil, fmt.Errorf("error deleting session: %w", err)
		}
		user, err := p.repomanager.Users(tx).GetByID(ctx, session.UserID)
		if err != nil {
			return nil, fmt.Errorf("error searching user: %w", err)
		}
		return p.generateTokenPair(ctx, user, tx)
	})
}

// SignOut revokes the session. Unknown tokens are not an error.
func (p *Provider) SignOut(ctx context.Context, refreshToken string) error {
	err := p.repomanager.Sessions(p.db).Delete(ctx, refreshToken)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// Authenticate validates an access token and returns its claims.
func (p *Provider) Authenticate(accessToken string) (*Claims, error) {
	return ParseToken(accessToken, p.jwtSecret)
}

func (p *Provider) generateTokenPair(ctx context.Context, user *models.User, tx dbx.DBTX) (*TokenPair, error) {
	access, err := GenerateToken(user.ID, user.Email, p.jwtSecret, p.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := p.repomanager.Sessions(tx).Create(ctx, user.ID, refresh, p.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, UserID: user.ID}, nil
}
