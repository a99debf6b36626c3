package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/maaz2022/ourtracker/internal/common"
	"github.com/maaz2022/ourtracker/internal/dbx"
	"github.com/maaz2022/ourtracker/internal/logging"
	"github.com/maaz2022/ourtracker/internal/server/auth"
	"github.com/maaz2022/ourtracker/internal/server/images"
	"github.com/maaz2022/ourtracker/internal/server/invalidation"
	"github.com/maaz2022/ourtracker/internal/server/models"
	"github.com/maaz2022/ourtracker/internal/server/repositories/repomanager"
)

// TransferResult is the reassigned inventory and the audit row written for it.
type TransferResult struct {
	Inventory  *models.Inventory  `json:"inventory"`
	TrackOrder *models.TrackOrder `json:"trackOrder"`
}

type InventoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      images.Store
	notifier    invalidation.Notifier
	logger      logging.Logger
}

func NewInventoryService(db *sql.DB, m repomanager.RepositoryManager, is images.Store, n invalidation.Notifier, l logging.Logger) *InventoryService {
	return &InventoryService{
		db:          db,
		repomanager: m,
		images:      is,
		notifier:    n,
		logger:      l.With("module", "inventory_service"),
	}
}

// Upsert updates inventory id when it is non-empty and creates a new one
// otherwise. The row is owned by the signed-in user in both cases.
func (s *InventoryService) Upsert(ctx context.Context, form Form, id string) (*models.Inventory, error) {
	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	inv := &models.Inventory{
		ID:          id,
		Name:        form.Get("name"),
		Description: form.Get("description"),
		Cost:        number(form, "cost"),
		AsPerPlan:   number(form, "asPerPlan"),
		Existing:    number(form, "existing"),
		Required:    number(form, "required"),
		ProInStore:  number(form, "proInStore"),
	}

	// A zero cost is rejected like a missing one.
	if inv.Name == "" || inv.Description == "" || inv.Cost == 0 {
		return nil, ErrFieldsRequired
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, session.Email)
	switch {
	case err == nil:
		inv.UserID = &user.ID
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "user lookup failed", "email", session.Email, "err", err)
		return nil, ErrInventoryNotSaved
	}

	inv.Image, err = s.images.Put(ctx, form.Get("imageBase64"))
	if err != nil {
		s.logger.Error(ctx, "image store failed", "err", err)
		return nil, ErrInventoryNotSaved
	}

	repo := s.repomanager.Inventories(s.db)

	var saved *models.Inventory
	if id != "" {
		saved, err = repo.Update(ctx, inv)
	} else {
		saved, err = repo.Create(ctx, inv)
	}
	if err != nil {
		s.logger.Error(ctx, "inventory not saved", "id", id, "err", err)
		return nil, ErrInventoryNotSaved
	}

	s.logger.Info(ctx, "inventory saved", "id", saved.ID, "update", id != "")
	invalidate(ctx, s.notifier, s.logger, common.ViewDashboard)
	return saved, nil
}

// Transfer reassigns inventory id to userID and records a TrackOrder in the
// same transaction.
func (s *InventoryService) Transfer(ctx context.Context, id, userID string, isAdmin bool) (*TransferResult, error) {
	res, err := dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*TransferResult, error) {
		inv, err := s.repomanager.Inventories(tx).SetOwner(ctx, id, userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, ErrTransferInventory
			}
			return nil, err
		}

		userName := ""
		if inv.UserID != nil {
			u, err := s.repomanager.Users(tx).GetByID(ctx, *inv.UserID)
			switch {
			case err == nil:
				userName = u.Name
			case !errors.Is(err, common.ErrorNotFound):
				return nil, err
			}
		}

		order, err := s.repomanager.TrackOrders(tx).Create(ctx, &models.TrackOrder{
			OrderCost: inv.Cost,
			ItemName:  inv.Name,
			UserName:  userName,
			UserID:    userID,
		})
		if err != nil {
			s.logger.Error(ctx, "track order not created", "inventory_id", id, "err", err)
			return nil, ErrTrackOrderNotCreated
		}

		return &TransferResult{Inventory: inv, TrackOrder: order}, nil
	})
	if err != nil {
		if errors.Is(err, ErrTransferInventory) || errors.Is(err, ErrTrackOrderNotCreated) {
			return nil, err
		}
		s.logger.Error(ctx, "inventory transfer failed", "inventory_id", id, "user_id", userID, "err", err)
		return nil, ErrTransferFailed
	}

	s.logger.Info(ctx, "inventory transferred", "inventory_id", id, "user_id", userID, "track_order_id", res.TrackOrder.ID)

	view := common.ViewHome
	if isAdmin {
		view = common.ViewDashboard
	}
	invalidate(ctx, s.notifier, s.logger, view)
	return res, nil
}

func (s *InventoryService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Inventories(s.db).Delete(ctx, id); err != nil {
		s.logger.Error(ctx, "inventory not deleted", "id", id, "err", err)
		return ErrInventoryNotDeleted
	}
	invalidate(ctx, s.notifier, s.logger, common.ViewDashboard)
	return nil
}
