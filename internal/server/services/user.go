package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/maaz2022/ourtracker/internal/common"
	"github.com/maaz2022/ourtracker/internal/logging"
	"github.com/maaz2022/ourtracker/internal/server/auth"
	"github.com/maaz2022/ourtracker/internal/server/invalidation"
	"github.com/maaz2022/ourtracker/internal/server/models"
	"github.com/maaz2022/ourtracker/internal/server/repositories/repomanager"
)

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	notifier    invalidation.Notifier
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, n invalidation.Notifier, l logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		notifier:    n,
		logger:      l.With("module", "user_service"),
	}
}

// UpdateRole overwrites user id with the submitted name, email, password and
// admin flag. The email must already belong to some user; that user need
// not be id.
func (s *UserService) UpdateRole(ctx context.Context, form Form, isAdmin bool, id string) (*models.User, error) {
	name := form.Get("name")
	email := form.Get("email")
	password := form.Get("password")

	if name == "" || email == "" || password == "" {
		return nil, ErrFieldsRequired
	}

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, email); err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "user lookup failed", "err", err)
		}
		return nil, ErrUserNotFound
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error(ctx, "password hash failed", "err", err)
		return nil, ErrUserNotUpdated
	}

	user, err := repo.Update(ctx, &models.User{
		ID:       id,
		Name:     name,
		Email:    email,
		Password: hash,
		IsAdmin:  isAdmin,
	})
	if err != nil {
		s.logger.Error(ctx, "user not updated", "id", id, "err", err)
		return nil, ErrUserNotUpdated
	}

	invalidate(ctx, s.notifier, s.logger, common.ViewClients)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Users(s.db).Delete(ctx, id); err != nil {
		s.logger.Error(ctx, "user not deleted", "id", id, "err", err)
		return ErrUserNotDeleted
	}
	invalidate(ctx, s.notifier, s.logger, common.ViewDashboard)
	return nil
}
