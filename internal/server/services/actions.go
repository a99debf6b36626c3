package services

import (
	"context"

	"github.com/maaz2022/ourtracker/internal/server/auth"
	"github.com/maaz2022/ourtracker/internal/server/models"
)

type AuthActions interface {
	LoginSignup(ctx context.Context, form Form, isLogin bool) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	SignOut(ctx context.Context, refreshToken string) error
}

type InventoryActions interface {
	Upsert(ctx context.Context, form Form, id string) (*models.Inventory, error)
	Transfer(ctx context.Context, id, userID string, isAdmin bool) (*TransferResult, error)
	Delete(ctx context.Context, id string) error
}

type UserActions interface {
	UpdateRole(ctx context.Context, form Form, isAdmin bool, id string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type TrackOrderActions interface {
	Delete(ctx context.Context, id string) error
}

// Actions bundles the action services served by the transports.
type Actions struct {
	Auth        AuthActions
	Inventories InventoryActions
	Users       UserActions
	TrackOrders TrackOrderActions
}
