package lifecycle

import "sync"

// State is the application foreground state as reported by the host shell
type State string

const (
	StateActive     State = "active"
	StateInactive   State = "inactive"
	StateBackground State = "background"
)

// Listener receives the next state on every transition
type Listener func(next State)

// Monitor holds the current app-lifecycle state and fans transitions out
// to listeners. The host embedding this module feeds it via Set; consumers
// such as the session router subscribe to detect foreground resumes.
type Monitor struct {
	mu        sync.RWMutex
	current   State
	nextID    int
	listeners map[int]Listener
}

// NewMonitor creates a monitor starting in the given state
func NewMonitor(initial State) *Monitor {
	return &Monitor{
		current:   initial,
		listeners: make(map[int]Listener),
	}
}

// Current returns the state as of the last Set
func (m *Monitor) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set records a transition and notifies listeners with the next state.
// Setting the same state again still notifies; listeners that only care
// about edges must compare against their own previous value.
func (m *Monitor) Set(next State) {
	m.mu.Lock()
	m.current = next
	snapshot := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		snapshot = append(snapshot, l)
	}
	m.mu.Unlock()

	for _, l := range snapshot {
		l(next)
	}
}

// Subscribe registers a transition listener and returns its remover
func (m *Monitor) Subscribe(l Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = l

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}
