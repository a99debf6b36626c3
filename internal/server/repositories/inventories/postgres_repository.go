package inventories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/maaz2022/ourtracker/internal/common"
	"github.com/maaz2022/ourtracker/internal/dbx"
	"github.com/maaz2022/ourtracker/internal/server/models"
)

const columns = `id, name, description, cost, as_per_plan, existing, required, pro_in_store, image, user_id, created_at, updated_at`

// PostgresRepository stores inventories over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanInventory(row *sql.Row) (*models.Inventory, error) {
	inv := &models.Inventory{}
	var image, userID sql.NullString
	err := row.Scan(&inv.ID, &inv.Name, &inv.Description, &inv.Cost,
		&inv.AsPerPlan, &inv.Existing, &inv.Required, &inv.ProInStore,
		&image, &userID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if image.Valid {
		inv.Image = &image.String
	}
	if userID.Valid {
		inv.UserID = &userID.String
	}
	return inv, nil
}

func (r *PostgresRepository) Create(ctx context.Context, inv *models.Inventory) (*models.Inventory, error) {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO inventories (id, name, description, cost, as_per_plan, existing, required, pro_in_store, image, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING ` + columns

	return scanInventory(r.db.QueryRowContext(ctx, query,
		inv.ID, inv.Name, inv.Description, inv.Cost,
		inv.AsPerPlan, inv.Existing, inv.Required, inv.ProInStore,
		inv.Image, inv.UserID))
}

// Update overwrites every editable field of the row. A nil UserID keeps the
// current owner.
func (r *PostgresRepository) Update(ctx context.Context, inv *models.Inventory) (*models.Inventory, error) {
	query :=
		`UPDATE inventories
		 SET name = $2, description = $3, cost = $4, as_per_plan = $5, existing = $6,
		     required = $7, pro_in_store = $8, image = $9, user_id = COALESCE($10, user_id), updated_at = now()
		 WHERE id = $1
		 RETURNING ` + columns

	return scanInventory(r.db.QueryRowContext(ctx, query,
		inv.ID, inv.Name, inv.Description, inv.Cost,
		inv.AsPerPlan, inv.Existing, inv.Required, inv.ProInStore,
		inv.Image, inv.UserID))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Inventory, error) {
	query := `SELECT ` + columns + ` FROM inventories WHERE id = $1`
	return scanInventory(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) SetOwner(ctx context.Context, id string, userID string) (*models.Inventory, error) {
	query :=
		`UPDATE inventories SET user_id = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + columns

	return scanInventory(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
