package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vitalsalud/citas-core/internal/events"
	"github.com/vitalsalud/citas-core/internal/lifecycle"
	"github.com/vitalsalud/citas-core/internal/metrics"
	"github.com/vitalsalud/citas-core/internal/models"
	"github.com/vitalsalud/citas-core/internal/storage"
)

// DefaultPollInterval matches the 2-second session poll of the app shell
const DefaultPollInterval = 2 * time.Second

// Refresh trigger names, used for logging and metrics
const (
	triggerStart  = "start"
	triggerResume = "resume"
	triggerPoll   = "poll"
	triggerEvent  = "event"
)

// Subscriber is notified whenever the resolved tree changes
type Subscriber func(tree Tree)

// Router continuously resolves which navigation tree should be mounted.
// Four triggers feed one refresh path: Start, a foreground resume, a
// fixed poll while the app is active, and the tokenUpdated broadcast.
// Refresh is idempotent; overlapping invocations all read the same
// authoritative store and last write wins as a complete (token, role)
// pair.
type Router struct {
	store        storage.Store
	bus          *events.Bus
	life         *lifecycle.Monitor
	pollInterval time.Duration

	mu          sync.Mutex
	tree        Tree
	token       string
	info        *models.UserInfo
	closed      bool
	nextID      int
	subscribers map[int]Subscriber

	done      chan struct{}
	unsubBus  func()
	unsubLife func()

	lifeMu   sync.Mutex
	prevLife lifecycle.State
}

// NewRouter creates a router over the given session store, bus and
// lifecycle monitor. A non-positive interval falls back to the default.
func NewRouter(store storage.Store, bus *events.Bus, life *lifecycle.Monitor, pollInterval time.Duration) *Router {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Router{
		store:        store,
		bus:          bus,
		life:         life,
		pollInterval: pollInterval,
		tree:         TreeLoading,
		subscribers:  make(map[int]Subscriber),
		done:         make(chan struct{}),
	}
}

// Start performs the initial refresh and acquires the poll timer, the
// lifecycle listener and the bus subscription. Each is released by Close.
func (r *Router) Start(ctx context.Context) {
	r.Refresh(ctx, triggerStart)

	r.lifeMu.Lock()
	r.prevLife = r.life.Current()
	r.lifeMu.Unlock()

	r.unsubLife = r.life.Subscribe(func(next lifecycle.State) {
		r.lifeMu.Lock()
		prev := r.prevLife
		r.prevLife = next
		r.lifeMu.Unlock()

		// Edge-triggered: only the transition into the foreground refreshes
		if (prev == lifecycle.StateInactive || prev == lifecycle.StateBackground) && next == lifecycle.StateActive {
			r.Refresh(ctx, triggerResume)
		}
	})

	r.unsubBus = r.bus.Subscribe(events.EventTokenUpdated, func(string) {
		r.Refresh(ctx, triggerEvent)
	})

	go r.poll(ctx)
}

func (r *Router) poll(ctx context.Context) {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// Skip the work while backgrounded
			if r.life.Current() == lifecycle.StateActive {
				r.Refresh(ctx, triggerPoll)
			}
		case <-r.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Refresh reads the stored session and re-resolves the tree. Store read
// failures resolve to logged-out, never to a stale privileged state, and
// the router always leaves the loading state.
func (r *Router) Refresh(ctx context.Context, trigger string) {
	metrics.SessionRefreshes.WithLabelValues(trigger).Inc()

	token, err := r.store.Get(ctx, storage.KeyUserToken)
	if err != nil {
		if err != storage.ErrNotFound {
			log.Warn().Err(err).Str("trigger", trigger).Msg("Session store read failed, treating as logged out")
		}
		token = ""
	}

	var info *models.UserInfo
	if raw, err := r.store.Get(ctx, storage.KeyUserInfo); err == nil && raw != "" {
		var parsed models.UserInfo
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			info = &parsed
		}
	}

	tree := ResolveTree(token, info)

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	changed := tree != r.tree
	r.tree = tree
	r.token = token
	r.info = info
	var snapshot []Subscriber
	if changed {
		snapshot = make([]Subscriber, 0, len(r.subscribers))
		for _, s := range r.subscribers {
			snapshot = append(snapshot, s)
		}
	}
	r.mu.Unlock()

	if changed {
		log.Debug().Str("trigger", trigger).Str("tree", string(tree)).Msg("Navigation tree changed")
		for _, s := range snapshot {
			s(tree)
		}
	}
}

// Tree returns the currently resolved navigation tree
func (r *Router) Tree() Tree {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tree
}

// UserInfo returns the user info read on the last refresh, nil when the
// session is anonymous
func (r *Router) UserInfo() *models.UserInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.info
}

// Subscribe registers a tree-change subscriber and returns its remover
func (r *Router) Subscribe(s Subscriber) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.subscribers[id] = s

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subscribers, id)
	}
}

// Close releases the poll timer and both listeners. No state update or
// subscriber notification happens after Close returns.
func (r *Router) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	close(r.done)
	if r.unsubLife != nil {
		r.unsubLife()
	}
	if r.unsubBus != nil {
		r.unsubBus()
	}
}
