package history

import (
	"sync"
	"sync/atomic"

	"github.com/ironsheep/image-lasso/internal/monitoring"
)

// DefaultMaxDepth is the past-stack depth used when New is given zero.
const DefaultMaxDepth = 50

// Snapshot is an opaque, serialized canvas state. The Manager copies
// snapshots on the way in and out, so callers may reuse their buffers.
type Snapshot []byte

func (s Snapshot) clone() Snapshot {
	if s == nil {
		return nil
	}
	return append(Snapshot(nil), s...)
}

// Manager is a linear undo/redo history.
type Manager struct {
	mu       sync.Mutex
	past     []Snapshot
	future   []Snapshot
	current  Snapshot
	maxDepth int
	applying atomic.Int32
}

// New returns an empty Manager keeping at most maxDepth undo steps. A
// maxDepth of zero or less selects DefaultMaxDepth.
func New(maxDepth int) *Manager {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Manager{maxDepth: maxDepth}
}

// Initialize discards all history and makes s the current state.
func (m *Manager) Initialize(s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.past = nil
	m.future = nil
	m.current = s.clone()
}

// Record makes s the current state after a structural mutation. The previous
// state is pushed onto the undo stack and the redo stack is cleared.
//
// Record returns false, and does nothing, while a snapshot is being applied.
func (m *Manager) Record(s Snapshot) bool {
	if m.isApplying() {
		monitoring.Logf("history: record ignored while applying a snapshot")
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.past = append(m.past, m.current)
	if len(m.past) > m.maxDepth {
		drop := len(m.past) - m.maxDepth
		m.past = append([]Snapshot(nil), m.past[drop:]...)
	}
	m.future = nil
	m.current = s.clone()
	return true
}

// Undo steps back one state and returns it for the caller to apply. It
// returns nil and false when there is nothing to undo or a snapshot is being
// applied.
func (m *Manager) Undo() (Snapshot, bool) {
	if m.isApplying() {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.past)
	if n == 0 {
		return nil, false
	}
	prev := m.past[n-1]
	m.past = m.past[:n-1]
	m.future = append(m.future, m.current)
	m.current = prev
	return prev.clone(), true
}

// Redo is the mirror of Undo.
func (m *Manager) Redo() (Snapshot, bool) {
	if m.isApplying() {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.future)
	if n == 0 {
		return nil, false
	}
	next := m.future[n-1]
	m.future = m.future[:n-1]
	m.past = append(m.past, m.current)
	m.current = next
	return next.clone(), true
}

// CanUndo reports whether Undo would succeed.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.past) > 0
}

// CanRedo reports whether Redo would succeed.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.future) > 0
}

// Current returns a copy of the current state.
func (m *Manager) Current() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.clone()
}

// Depth returns the maximum number of undo steps kept.
func (m *Manager) Depth() int { return m.maxDepth }

// Len returns the number of undo and redo steps currently held.
func (m *Manager) Len() (undo, redo int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.past), len(m.future)
}

// isApplying reports whether a snapshot is being applied.
func (m *Manager) isApplying() bool { return m.applying.Load() > 0 }

// Apply runs fn with s while the applying flag is set. The lock is not held
// while fn runs, so fn may call back into m; its Record calls are ignored.
// Applies may nest; the flag clears when the outermost one returns.
func (m *Manager) Apply(s Snapshot, fn func(Snapshot) error) error {
	m.applying.Add(1)
	defer m.applying.Add(-1)
	return fn(s.clone())
}
