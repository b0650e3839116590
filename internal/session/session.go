// Package session owns the single local user slot and the per-user scoping
// of storage keys.
//
// The original design kept the current user in an ambient global and
// concatenated key suffixes at every call site; here the slot lives behind an
// explicit Manager and scoping is a value (Scope) handed to the stores, so
// the single-occupancy constraint is carried by the type, not by convention.
package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"cashflow/internal/core"
	"cashflow/internal/kvstore"
	"cashflow/internal/log"
)

// Storage keys. The three scoped keys get a "_<userId>" suffix while a user
// slot is occupied; the version and user slot keys are never scoped.
const (
	KeyTransactions   = "cashflow_transactions"
	KeyBudgets        = "cashflow_budgets"
	KeyFinancialGoals = "cashflow_financial_goals"
	KeyAppVersion     = "cashflow_app_version"
	KeyCurrentUser    = "currentUser"
)

// scopedBaseKeys are the keys purged when a user is deleted or replaced.
var scopedBaseKeys = []string{KeyTransactions, KeyBudgets, KeyFinancialGoals}

// Scope resolves base keys to their effective storage keys. The zero Scope
// is the anonymous scope: keys pass through unchanged.
type Scope struct {
	userID string
}

// ScopeFor returns the scope for a specific user id.
func ScopeFor(userID string) Scope {
	return Scope{userID: userID}
}

// Key returns the effective storage key for base under this scope.
func (s Scope) Key(base string) string {
	if s.userID == "" {
		return base
	}
	return base + "_" + s.userID
}

// UserID returns the owning user id, empty for the anonymous scope.
func (s Scope) UserID() string {
	return s.userID
}

// Manager reads and mutates the user slot. Exactly zero or one user exists
// at a time; creating a new one destroys the previous user's scoped data.
type Manager struct {
	kv     *kvstore.Adapter
	logger *log.Logger
}

func NewManager(kv *kvstore.Adapter, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Manager{
		kv:     kv,
		logger: logger.WithComponent(log.ComponentSession),
	}
}

// Current returns the occupying user, if any.
func (m *Manager) Current(ctx context.Context) (core.User, bool) {
	var user core.User
	res := m.kv.Get(ctx, KeyCurrentUser, &user)
	if !res.Found || !res.OK() || user.ID == "" {
		return core.User{}, false
	}
	return user, true
}

// Scope returns the scope of the current user, or the anonymous scope when
// the slot is empty.
func (m *Manager) Scope(ctx context.Context) Scope {
	user, ok := m.Current(ctx)
	if !ok {
		return Scope{}
	}
	return ScopeFor(user.ID)
}

// CreateUser occupies the slot with a fresh identity. If a user already
// exists, that user's scoped data is purged FIRST so nothing leaks into the
// new identity; the purge is irreversible.
func (m *Manager) CreateUser(ctx context.Context, name string) (core.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.User{}, core.ErrEmptyName
	}

	if prev, ok := m.Current(ctx); ok {
		m.purgeScopedData(ctx, ScopeFor(prev.ID))
		m.logger.InfoContext(ctx, "Replaced existing user, previous data purged",
			log.FieldUserID, prev.ID, log.FieldOperation, log.OpPurge)
	}

	user := core.User{
		ID:        "user_" + uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	m.kv.Set(ctx, KeyCurrentUser, user)
	m.logger.InfoContext(ctx, "User created",
		log.FieldUserID, user.ID, log.FieldOperation, log.OpCreate)
	return user, nil
}

// DeleteUser purges the scoped data and clears the slot, but only when id
// matches the current occupant. Anything else is a no-op.
func (m *Manager) DeleteUser(ctx context.Context, id string) {
	current, ok := m.Current(ctx)
	if !ok || current.ID != id {
		return
	}
	m.purgeScopedData(ctx, ScopeFor(id))
	m.kv.Delete(ctx, KeyCurrentUser)
	m.logger.InfoContext(ctx, "User deleted",
		log.FieldUserID, id, log.FieldOperation, log.OpDelete)
}

// Logout clears the slot only. The scoped data stays behind, orphaned under
// the old id; ids are never reused, so this effectively hides it.
func (m *Manager) Logout(ctx context.Context) {
	m.kv.Delete(ctx, KeyCurrentUser)
	m.logger.InfoContext(ctx, "User logged out", log.FieldOperation, log.OpDelete)
}

func (m *Manager) purgeScopedData(ctx context.Context, scope Scope) {
	for _, base := range scopedBaseKeys {
		m.kv.Delete(ctx, scope.Key(base))
	}
}
