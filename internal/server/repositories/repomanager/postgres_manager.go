// Package repomanager provides the PostgreSQL RepositoryManager and the goose
// migration hook.
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/maaz2022/ourtracker/internal/dbx"
	"github.com/maaz2022/ourtracker/internal/server/migrations"
	"github.com/maaz2022/ourtracker/internal/server/repositories/inventories"
	"github.com/maaz2022/ourtracker/internal/server/repositories/sessions"
	"github.com/maaz2022/ourtracker/internal/server/repositories/trackorders"
	"github.com/maaz2022/ourtracker/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Inventories(db dbx.DBTX) inventories.Repository {
	return inventories.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) TrackOrders(db dbx.DBTX) trackorders.Repository {
	return trackorders.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
