package toast_test

import (
	"sync"
	"testing"
	"time"

	"github.com/devcollab/devcollab/internal/app/viewmodel/toast"
)

// recorder collects slot changes for assertions.
type recorder struct {
	mu      sync.Mutex
	changes []*toast.Toast
}

func (r *recorder) record(t *toast.Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, t)
}

func (r *recorder) snapshot() []*toast.Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*toast.Toast, len(r.changes))
	copy(out, r.changes)
	return out
}

func TestManager_AutoDismiss(t *testing.T) {
	rec := &recorder{}
	m := toast.NewManagerWithDuration(20*time.Millisecond, rec.record)

	m.Show("saved", toast.Success)
	if cur := m.Current(); cur == nil || cur.Message != "saved" {
		t.Fatalf("expected visible toast, got %+v", cur)
	}

	time.Sleep(60 * time.Millisecond)
	if cur := m.Current(); cur != nil {
		t.Errorf("expected auto-dismiss, still showing %+v", cur)
	}

	changes := rec.snapshot()
	if len(changes) != 2 || changes[0] == nil || changes[1] != nil {
		t.Errorf("expected show then dismiss, got %d changes", len(changes))
	}
}

func TestManager_SupersedeKeepsNewToast(t *testing.T) {
	m := toast.NewManagerWithDuration(30*time.Millisecond, nil)

	m.Show("first", toast.Info)
	time.Sleep(15 * time.Millisecond)
	// Replace just before the first toast's timer would fire. The old
	// timer must not take down the replacement.
	m.Show("second", toast.Info)
	time.Sleep(20 * time.Millisecond)

	cur := m.Current()
	if cur == nil {
		t.Fatal("second toast dismissed by the first toast's timer")
	}
	if cur.Message != "second" {
		t.Errorf("expected second toast visible, got %q", cur.Message)
	}

	time.Sleep(30 * time.Millisecond)
	if m.Current() != nil {
		t.Error("second toast should dismiss on its own schedule")
	}
}

func TestManager_ManualDismiss(t *testing.T) {
	m := toast.NewManagerWithDuration(time.Minute, nil)

	m.Show("sticky", toast.Error)
	m.Dismiss()
	if m.Current() != nil {
		t.Error("expected empty slot after Dismiss")
	}

	// Dismissing an empty slot is a no-op.
	m.Dismiss()
	if m.Current() != nil {
		t.Error("slot should stay empty")
	}
}
