package repomanager

import (
	"context"
	"database/sql"

	"github.com/maaz2022/ourtracker/internal/dbx"
	"github.com/maaz2022/ourtracker/internal/server/repositories/inventories"
	"github.com/maaz2022/ourtracker/internal/server/repositories/sessions"
	"github.com/maaz2022/ourtracker/internal/server/repositories/trackorders"
	"github.com/maaz2022/ourtracker/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a pool or a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Inventories(db dbx.DBTX) inventories.Repository
	TrackOrders(db dbx.DBTX) trackorders.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
