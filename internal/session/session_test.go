package session

import (
	"context"
	"testing"

	"cashflow/internal/core"
	"cashflow/internal/kvstore"
)

func newManager(t *testing.T) (*Manager, *kvstore.Adapter) {
	t.Helper()
	kv := kvstore.NewAdapter(kvstore.NewMemoryStore(), nil)
	return NewManager(kv, nil), kv
}

func TestScopeKey(t *testing.T) {
	anonymous := Scope{}
	if got := anonymous.Key(KeyTransactions); got != KeyTransactions {
		t.Fatalf("anonymous scope must not prefix: %s", got)
	}
	scoped := ScopeFor("user_abc")
	if got := scoped.Key(KeyTransactions); got != "cashflow_transactions_user_abc" {
		t.Fatalf("unexpected scoped key: %s", got)
	}
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	if _, ok := m.Current(ctx); ok {
		t.Fatal("slot should start empty")
	}

	user, err := m.CreateUser(ctx, "Alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID == "" || user.Name != "Alice" || user.CreatedAt.IsZero() {
		t.Fatalf("incomplete user: %+v", user)
	}

	got, ok := m.Current(ctx)
	if !ok || got.ID != user.ID {
		t.Fatalf("slot not occupied: ok=%v got=%+v", ok, got)
	}
	if m.Scope(ctx).UserID() != user.ID {
		t.Fatal("scope does not follow the slot")
	}
}

func TestCreateUserEmptyName(t *testing.T) {
	m, _ := newManager(t)
	if _, err := m.CreateUser(context.Background(), "   "); err != core.ErrEmptyName {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestCreateUserPurgesPredecessor(t *testing.T) {
	ctx := context.Background()
	m, kv := newManager(t)

	bob, err := m.CreateUser(ctx, "Bob")
	if err != nil {
		t.Fatal(err)
	}
	bobScope := ScopeFor(bob.ID)
	for _, base := range scopedBaseKeys {
		kv.Set(ctx, bobScope.Key(base), []string{"data"})
	}

	alice, err := m.CreateUser(ctx, "Alice")
	if err != nil {
		t.Fatal(err)
	}
	if alice.ID == bob.ID {
		t.Fatal("user ids must not be reused")
	}

	// Bob's three scoped keys must be gone before Alice exists.
	for _, base := range scopedBaseKeys {
		var v []string
		if res := kv.Get(ctx, bobScope.Key(base), &v); res.Found {
			t.Errorf("predecessor data leaked under %s", bobScope.Key(base))
		}
	}
	if got, ok := m.Current(ctx); !ok || got.ID != alice.ID {
		t.Fatalf("slot should hold Alice: ok=%v got=%+v", ok, got)
	}
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	m, kv := newManager(t)

	user, _ := m.CreateUser(ctx, "Alice")
	scope := ScopeFor(user.ID)
	kv.Set(ctx, scope.Key(KeyTransactions), []string{"data"})

	// Wrong id is a no-op.
	m.DeleteUser(ctx, "user_other")
	if _, ok := m.Current(ctx); !ok {
		t.Fatal("wrong id must not clear the slot")
	}

	m.DeleteUser(ctx, user.ID)
	if _, ok := m.Current(ctx); ok {
		t.Fatal("slot should be empty after delete")
	}
	var v []string
	if res := kv.Get(ctx, scope.Key(KeyTransactions), &v); res.Found {
		t.Fatal("scoped data should be purged on delete")
	}
}

func TestLogoutKeepsScopedData(t *testing.T) {
	ctx := context.Background()
	m, kv := newManager(t)

	user, _ := m.CreateUser(ctx, "Alice")
	scope := ScopeFor(user.ID)
	kv.Set(ctx, scope.Key(KeyTransactions), []string{"data"})

	m.Logout(ctx)
	if _, ok := m.Current(ctx); ok {
		t.Fatal("slot should be empty after logout")
	}
	var v []string
	if res := kv.Get(ctx, scope.Key(KeyTransactions), &v); !res.Found {
		t.Fatal("logout must retain scoped data")
	}
	if m.Scope(ctx).UserID() != "" {
		t.Fatal("scope should be anonymous after logout")
	}
}
