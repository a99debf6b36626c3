package inventories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/maaz2022/ourtracker/internal/common"
	"github.com/maaz2022/ourtracker/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rowColumns = []string{"id", "name", "description", "cost", "as_per_plan", "existing",
	"required", "pro_in_store", "image", "user_id", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func strPtr(s string) *string { return &s }

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+inventories\s*\(id,\s*name,.*user_id\)\s*VALUES\s*\(\$1,.*\$10\)\s*RETURNING\s+id,`).
		WithArgs(sqlmock.AnyArg(), "Drill", "cordless", 120.5, 1.0, 2.0, 3.0, 4.0, nil, strPtr("u1")).
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow("i1", "Drill", "cordless", 120.5, 1.0, 2.0, 3.0, 4.0, nil, "u1", now, now))

	got, err := repo.Create(context.Background(), &models.Inventory{
		Name: "Drill", Description: "cordless", Cost: 120.5,
		AsPerPlan: 1, Existing: 2, Required: 3, ProInStore: 4,
		UserID: strPtr("u1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "i1", got.ID)
	assert.Nil(t, got.Image)
	require.NotNil(t, got.UserID)
	assert.Equal(t, "u1", *got.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+inventories`).WillReturnError(errors.New("boom"))

	_, err := repo.Create(context.Background(), &models.Inventory{Name: "Drill"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: boom")
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^UPDATE\s+inventories\s+SET\s+name\s*=\s*\$2,.*user_id\s*=\s*COALESCE\(\$10,\s*user_id\),\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1`).
		WillReturnRows(sqlmock.NewRows(rowColumns))

	_, err := repo.Update(context.Background(), &models.Inventory{ID: "missing"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`UPDATE\s+inventories`).
		WithArgs("i1", "Saw", "hand", 10.0, 0.0, 0.0, 0.0, 0.0, strPtr("aGk="), nil).
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow("i1", "Saw", "hand", 10.0, 0.0, 0.0, 0.0, 0.0, "aGk=", nil, now, now))

	got, err := repo.Update(context.Background(), &models.Inventory{ID: "i1", Name: "Saw", Description: "hand", Cost: 10, Image: strPtr("aGk=")})
	require.NoError(t, err)
	require.NotNil(t, got.Image)
	assert.Equal(t, "aGk=", *got.Image)
	assert.Nil(t, got.UserID)
}

func TestUpdate_NilOwnerKeepsCurrent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`user_id\s*=\s*COALESCE\(\$10,\s*user_id\)`).
		WithArgs("i1", "Saw", "hand", 10.0, 0.0, 0.0, 0.0, 0.0, nil, nil).
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow("i1", "Saw", "hand", 10.0, 0.0, 0.0, 0.0, 0.0, nil, "u1", now, now))

	got, err := repo.Update(context.Background(), &models.Inventory{ID: "i1", Name: "Saw", Description: "hand", Cost: 10})
	require.NoError(t, err)
	require.NotNil(t, got.UserID)
	assert.Equal(t, "u1", *got.UserID)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+inventories\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("i1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "i1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSetOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)^UPDATE\s+inventories\s+SET\s+user_id\s*=\s*\$2,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("i1", "u2").
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow("i1", "Drill", "cordless", 99.0, 0.0, 0.0, 0.0, 0.0, nil, "u2", now, now))

	got, err := repo.SetOwner(context.Background(), "i1", "u2")
	require.NoError(t, err)
	assert.Equal(t, "u2", *got.UserID)
	assert.Equal(t, 99.0, got.Cost)
}

func TestSetOwner_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+inventories\s+SET\s+user_id`).
		WithArgs("missing", "u2").
		WillReturnRows(sqlmock.NewRows(rowColumns))

	_, err := repo.SetOwner(context.Background(), "missing", "u2")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		result  sql.Result
		execErr error
		wantErr error
	}{
		{name: "deleted", result: sqlmock.NewResult(0, 1)},
		{name: "absent", result: sqlmock.NewResult(0, 0), wantErr: common.ErrorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			mock.ExpectExec(`^DELETE\s+FROM\s+inventories\s+WHERE\s+id\s*=\s*\$1$`).
				WithArgs("i1").
				WillReturnResult(tt.result)

			err := repo.Delete(context.Background(), "i1")
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
