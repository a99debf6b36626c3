package services

import (
	"context"
	"database/sql"

	"github.com/maaz2022/ourtracker/internal/common"
	"github.com/maaz2022/ourtracker/internal/logging"
	"github.com/maaz2022/ourtracker/internal/server/invalidation"
	"github.com/maaz2022/ourtracker/internal/server/repositories/repomanager"
)

type TrackOrderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	notifier    invalidation.Notifier
	logger      logging.Logger
}

func NewTrackOrderService(db *sql.DB, m repomanager.RepositoryManager, n invalidation.Notifier, l logging.Logger) *TrackOrderService {
	return &TrackOrderService{
		db:          db,
		repomanager: m,
		notifier:    n,
		logger:      l.With("module", "track_order_service"),
	}
}

func (s *TrackOrderService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.TrackOrders(s.db).Delete(ctx, id); err != nil {
		s.logger.Error(ctx, "track order not deleted", "id", id, "err", err)
		return ErrTrackOrderNotDeleted
	}
	invalidate(ctx, s.notifier, s.logger, common.ViewDashboard)
	return nil
}
