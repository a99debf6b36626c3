// Package repotest provides an in-memory RepositoryManager for service and
// transport tests. Every repository ignores the DBTX it is bound to, so a
// sqlmock connection can be used to assert transaction boundaries while the
// data lives in maps.
package repotest

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maaz2022/ourtracker/internal/common"
	"github.com/maaz2022/ourtracker/internal/dbx"
	"github.com/maaz2022/ourtracker/internal/server/models"
	"github.com/maaz2022/ourtracker/internal/server/repositories/inventories"
	"github.com/maaz2022/ourtracker/internal/server/repositories/sessions"
	"github.com/maaz2022/ourtracker/internal/server/repositories/trackorders"
	"github.com/maaz2022/ourtracker/internal/server/repositories/users"
)

// Errors injects failures per operation, keyed by "<repo>.<Method>",
// e.g. "trackorders.Create".
type Errors map[string]error

// Manager holds the stored rows. Fields are exported so tests can seed and
// inspect state directly.
type Manager struct {
	mu sync.Mutex

	UsersByID       map[string]*models.User
	InventoriesByID map[string]*models.Inventory
	TrackOrdersByID map[string]*models.TrackOrder
	SessionsByToken map[string]*models.Session

	Errors Errors
	Calls  []string
}

func NewManager() *Manager {
	return &Manager{
		UsersByID:       map[string]*models.User{},
		InventoriesByID: map[string]*models.Inventory{},
		TrackOrdersByID: map[string]*models.TrackOrder{},
		SessionsByToken: map[string]*models.Session{},
		Errors:          Errors{},
	}
}

func (m *Manager) call(name string) error {
	m.Calls = append(m.Calls, name)
	return m.Errors[name]
}

// Called reports whether the named operation was invoked.
func (m *Manager) Called(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Calls {
		if c == name {
			return true
		}
	}
	return false
}

func (m *Manager) RunMigrations(context.Context, *sql.DB) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.call("RunMigrations")
}

func (m *Manager) Users(dbx.DBTX) users.Repository             { return userRepo{m} }
func (m *Manager) Inventories(dbx.DBTX) inventories.Repository { return inventoryRepo{m} }
func (m *Manager) TrackOrders(dbx.DBTX) trackorders.Repository { return trackOrderRepo{m} }
func (m *Manager) Sessions(dbx.DBTX) sessions.Repository       { return sessionRepo{m} }

type userRepo struct{ m *Manager }

func (r userRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.call("users.Create"); err != nil {
		return nil, err
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()
	c := *u
	r.m.UsersByID[u.ID] = &c
	return u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.call("users.GetByEmail"); err != nil {
		return nil, err
	}
	for _, u := range r.m.UsersByID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r userRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.call("users.GetByID"); err != nil {
		return nil, err
	}
	u, ok := r.m.UsersByID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (r userRepo) Update(_ context.Context, u *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.call("users.Update"); err != nil {
		return nil, err
	}
	old, ok := r.m.UsersByID[u.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	c.CreatedAt = old.CreatedAt
	r.m.UsersByID[u.ID] = &c
	out := c
	return &out, nil
}

func (r userRepo) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.call("users.Delete"); err != nil {
		return err
	}
	if _, ok := r.m.UsersByID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.m.UsersByID, id)
	return nil
}

type inventoryRepo struct{ m *Manager }

func (r inventoryRepo) Create(_ context.Context, inv *models.Inventory) (*models.Inventory, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.call("inventories.Create"); err != nil {
		return nil, err
	}
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	now := time.Now()
	inv.CreatedAt, inv.UpdatedAt = now, now
	c := *inv
	r.m.InventoriesByID[inv.ID] = &c
	return inv, nil
}

func (r inventoryRepo) Update(_ context.Context, inv *models.Inventory) (*models.Inventory, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.call("inventories.Update"); err != nil {
		return nil, err
	}
	old, ok := r.m.InventoriesByID[inv.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *inv
	if c.UserID == nil {
		c.UserID = old.UserID
	}
	c.CreatedAt = old.CreatedAt
	c.UpdatedAt = time.Now()
	r.m.InventoriesByID[inv.ID] = &c
	out := c
	return &out, nil
}

func (r inventoryRepo) GetByID(_ context.Context, id string) (*models.Inventory, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.call("inventories.GetByID"); err != nil {
		return nil, err
	}
	inv, ok := r.m.InventoriesByID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *inv
	return &c, nil
}

func (r inventoryRepo) SetOwner(_ context.Context, id string, userID string) (*models.Inventory, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.call("inventories.SetOwner"); err != nil {
		return nil, err
	}
	inv, ok := r.m.InventoriesByID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	owner := userID
	inv.UserID = &owner
	inv.UpdatedAt = time.Now()
	c := *inv
	return &c, nil
}

func (r inventoryRepo) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.call("inventories.Delete"); err != nil {
		return err
	}
	if _, ok := r.m.InventoriesByID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.m.InventoriesByID, id)
	return nil
}

type trackOrderRepo struct{ m *Manager }

func (r trackOrderRepo) Create(_ context.Context, o *models.TrackOrder) (*models.TrackOrder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.call("trackorders.Create"); err != nil {
		return nil, err
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	o.CreatedAt = time.Now()
	c := *o
	r.m.TrackOrdersByID[o.ID] = &c
	return o, nil
}

func (r trackOrderRepo) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.call("trackorders.Delete"); err != nil {
		return err
	}
	if _, ok := r.m.TrackOrdersByID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.m.TrackOrdersByID, id)
	return nil
}

type sessionRepo struct{ m *Manager }

func (r sessionRepo) Create(_ context.Context, userID string, token string, validity time.Duration) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.call("sessions.Create"); err != nil {
		return err
	}
	r.m.SessionsByToken[token] = &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		Expires:   time.Now().Add(validity),
		CreatedAt: time.Now(),
	}
	return nil
}

func (r sessionRepo) Find(_ context.Context, token string) (*models.Session, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.call("sessions.Find"); err != nil {
		return nil, err
	}
	s, ok := r.m.SessionsByToken[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *s
	return &c, nil
}

func (r sessionRepo) Delete(_ context.Context, token string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.call("sessions.Delete"); err != nil {
		return err
	}
	if _, ok := r.m.SessionsByToken[token]; !ok {
		return common.ErrorNotFound
	}
	delete(r.m.SessionsByToken, token)
	return nil
}
