package session

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/vitalsalud/citas-core/internal/events"
	"github.com/vitalsalud/citas-core/internal/lifecycle"
	"github.com/vitalsalud/citas-core/internal/models"
	"github.com/vitalsalud/citas-core/internal/storage"
)

func seedSession(t *testing.T, store storage.Store, role models.Role) {
	t.Helper()
	ctx := context.Background()
	if err := store.Set(ctx, storage.KeyUserToken, "tok-123"); err != nil {
		t.Fatalf("failed to seed token: %v", err)
	}
	payload, err := json.Marshal(models.UserInfo{ID: 1, Role: role})
	if err != nil {
		t.Fatalf("failed to encode user info: %v", err)
	}
	if err := store.Set(ctx, storage.KeyUserInfo, string(payload)); err != nil {
		t.Fatalf("failed to seed user info: %v", err)
	}
}

func TestRouterStartResolvesImmediately(t *testing.T) {
	store := storage.NewMemoryStore()
	seedSession(t, store, models.RoleDoctor)
	r := NewRouter(store, events.NewBus(), lifecycle.NewMonitor(lifecycle.StateActive), time.Hour)
	defer r.Close()

	if got := r.Tree(); got != TreeLoading {
		t.Fatalf("tree before Start = %v, want TreeLoading", got)
	}

	r.Start(context.Background())

	if got := r.Tree(); got != TreeDoctor {
		t.Errorf("tree after Start = %v, want TreeDoctor", got)
	}
	if info := r.UserInfo(); info == nil || info.ID != 1 {
		t.Errorf("UserInfo = %+v, want the stored user", info)
	}
}

func TestRouterEmptyStoreResolvesAuth(t *testing.T) {
	store := storage.NewMemoryStore()
	r := NewRouter(store, events.NewBus(), lifecycle.NewMonitor(lifecycle.StateActive), time.Hour)
	defer r.Close()

	r.Start(context.Background())

	if got := r.Tree(); got != TreeAuth {
		t.Errorf("tree = %v, want TreeAuth", got)
	}
}

func TestRouterTokenEventTriggersRefresh(t *testing.T) {
	store := storage.NewMemoryStore()
	bus := events.NewBus()
	r := NewRouter(store, bus, lifecycle.NewMonitor(lifecycle.StateActive), time.Hour)
	defer r.Close()

	r.Start(context.Background())
	if got := r.Tree(); got != TreeAuth {
		t.Fatalf("tree = %v, want TreeAuth", got)
	}

	seedSession(t, store, models.RolePaciente)
	bus.Emit(events.EventTokenUpdated)

	if got := r.Tree(); got != TreePaciente {
		t.Errorf("tree after tokenUpdated = %v, want TreePaciente", got)
	}
}

func TestRouterForegroundResumeRefreshes(t *testing.T) {
	store := storage.NewMemoryStore()
	life := lifecycle.NewMonitor(lifecycle.StateActive)
	r := NewRouter(store, events.NewBus(), life, time.Hour)
	defer r.Close()

	r.Start(context.Background())
	if got := r.Tree(); got != TreeAuth {
		t.Fatalf("tree = %v, want TreeAuth", got)
	}

	// Session changes while the app is backgrounded
	life.Set(lifecycle.StateBackground)
	seedSession(t, store, models.RoleAdmin)

	// Staying backgrounded does not refresh
	life.Set(lifecycle.StateBackground)
	if got := r.Tree(); got != TreeAuth {
		t.Fatalf("tree refreshed without a foreground edge, got %v", got)
	}

	life.Set(lifecycle.StateActive)
	if got := r.Tree(); got != TreeAdmin {
		t.Errorf("tree after resume = %v, want TreeAdmin", got)
	}

	// An active-to-active transition is not an edge
	store.Delete(context.Background(), storage.KeyUserToken)
	life.Set(lifecycle.StateActive)
	if got := r.Tree(); got != TreeAdmin {
		t.Errorf("active-to-active should not refresh, got %v", got)
	}
}

func TestRouterRefreshIdempotent(t *testing.T) {
	store := storage.NewMemoryStore()
	seedSession(t, store, models.RoleDoctor)
	r := NewRouter(store, events.NewBus(), lifecycle.NewMonitor(lifecycle.StateActive), time.Hour)
	defer r.Close()

	var mu sync.Mutex
	var notified []Tree
	r.Subscribe(func(tree Tree) {
		mu.Lock()
		notified = append(notified, tree)
		mu.Unlock()
	})

	ctx := context.Background()
	r.Start(ctx)
	r.Refresh(ctx, "poll")
	r.Refresh(ctx, "poll")
	r.Refresh(ctx, "event")

	mu.Lock()
	defer mu.Unlock()
	if len(notified) != 1 {
		t.Errorf("subscribers notified %d times, want once (only on change): %v", len(notified), notified)
	}
	if got := r.Tree(); got != TreeDoctor {
		t.Errorf("tree = %v, want TreeDoctor", got)
	}
}

func TestRouterSubscriberRemoval(t *testing.T) {
	store := storage.NewMemoryStore()
	r := NewRouter(store, events.NewBus(), lifecycle.NewMonitor(lifecycle.StateActive), time.Hour)
	defer r.Close()

	calls := 0
	remove := r.Subscribe(func(Tree) { calls++ })
	remove()
	remove() // twice is a no-op

	r.Start(context.Background())
	if calls != 0 {
		t.Errorf("removed subscriber was notified %d times", calls)
	}
}

func TestRouterCloseStopsUpdates(t *testing.T) {
	store := storage.NewMemoryStore()
	bus := events.NewBus()
	r := NewRouter(store, bus, lifecycle.NewMonitor(lifecycle.StateActive), time.Hour)

	r.Start(context.Background())
	if got := r.Tree(); got != TreeAuth {
		t.Fatalf("tree = %v, want TreeAuth", got)
	}

	r.Close()
	r.Close() // idempotent

	seedSession(t, store, models.RoleAdmin)
	bus.Emit(events.EventTokenUpdated)
	r.Refresh(context.Background(), "poll")

	if got := r.Tree(); got != TreeAuth {
		t.Errorf("tree changed after Close, got %v", got)
	}
}
