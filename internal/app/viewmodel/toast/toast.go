// internal/app/viewmodel/toast/toast.go

// Package toast holds the single-slot transient notification shown at
// the bottom of every screen. There is one slot: showing a toast while
// another is visible replaces it, and the replaced toast's pending
// dismissal must not take down its successor.
package toast

import (
	"sync"
	"time"
)

// Kind selects the toast styling.
type Kind string

const (
	Info    Kind = "info"
	Success Kind = "success"
	Error   Kind = "error"
)

// DefaultDuration is how long a toast stays visible before it
// dismisses itself.
const DefaultDuration = 2500 * time.Millisecond

// Toast is one visible notification.
type Toast struct {
	Message string
	Kind    Kind
}

// Manager owns the toast slot.
type Manager struct {
	mu       sync.Mutex
	current  *Toast
	gen      uint64
	timer    *time.Timer
	duration time.Duration
	onChange func(*Toast)
}

// NewManager creates a manager with the default display duration.
// onChange is called with the new slot value (nil on dismiss) and may
// be nil.
func NewManager(onChange func(*Toast)) *Manager {
	return &Manager{duration: DefaultDuration, onChange: onChange}
}

// NewManagerWithDuration is NewManager with an explicit duration, for
// tests.
func NewManagerWithDuration(d time.Duration, onChange func(*Toast)) *Manager {
	return &Manager{duration: d, onChange: onChange}
}

// Show puts a toast in the slot, replacing whatever is there, and arms
// its auto-dismiss. The generation counter keeps a superseded toast's
// timer from dismissing its replacement.
func (m *Manager) Show(message string, kind Kind) {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
	}
	m.gen++
	gen := m.gen
	m.current = &Toast{Message: message, Kind: kind}
	m.timer = time.AfterFunc(m.duration, func() {
		m.dismissGen(gen)
	})
	t := *m.current
	notify := m.onChange
	m.mu.Unlock()

	if notify != nil {
		notify(&t)
	}
}

// Dismiss clears the slot immediately.
func (m *Manager) Dismiss() {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.gen++
	m.current = nil
	notify := m.onChange
	m.mu.Unlock()

	if notify != nil {
		notify(nil)
	}
}

// Current returns a copy of the visible toast, or nil when the slot is
// empty.
func (m *Manager) Current() *Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	t := *m.current
	return &t
}

func (m *Manager) dismissGen(gen uint64) {
	m.mu.Lock()
	if m.gen != gen {
		// A newer toast owns the slot.
		m.mu.Unlock()
		return
	}
	m.current = nil
	m.timer = nil
	notify := m.onChange
	m.mu.Unlock()

	if notify != nil {
		notify(nil)
	}
}
