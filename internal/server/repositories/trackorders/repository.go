// Package trackorders stores the audit rows written on inventory transfer.
package trackorders

import (
	"context"

	"github.com/maaz2022/ourtracker/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, order *models.TrackOrder) (*models.TrackOrder, error)
	Delete(ctx context.Context, id string) error
}
