// Package inventories declares the repository contract for stocked items and
// its PostgreSQL implementation.
package inventories

import (
	"context"

	"github.com/maaz2022/ourtracker/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, inv *models.Inventory) (*models.Inventory, error)
	Update(ctx context.Context, inv *models.Inventory) (*models.Inventory, error)
	GetByID(ctx context.Context, id string) (*models.Inventory, error)
	// SetOwner reassigns the inventory to userID and returns the updated row.
	SetOwner(ctx context.Context, id string, userID string) (*models.Inventory, error)
	Delete(ctx context.Context, id string) error
}
