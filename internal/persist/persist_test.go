package persist

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

func TestDebouncer_CoalescesTriggers(t *testing.T) {
	var writes atomic.Int32
	done := make(chan struct{}, 10)
	d := NewDebouncer(30*time.Millisecond, func(context.Context) error {
		writes.Add(1)
		done <- struct{}{}
		return nil
	}, nil)

	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("write never happened")
	}
	time.Sleep(60 * time.Millisecond)
	if got := writes.Load(); got != 1 {
		t.Errorf("writes = %d, want 1", got)
	}
	if d.Pending() {
		t.Error("nothing should be pending after the write")
	}
}

func TestDebouncer_Flush(t *testing.T) {
	var writes atomic.Int32
	d := NewDebouncer(time.Hour, func(context.Context) error {
		writes.Add(1)
		return nil
	}, nil)

	if err := d.Flush(context.Background()); err != nil || writes.Load() != 0 {
		t.Fatalf("flush without pending write: err=%v writes=%d", err, writes.Load())
	}

	d.Trigger()
	if !d.Pending() {
		t.Fatal("expected pending write")
	}
	if err := d.Flush(context.Background()); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	if writes.Load() != 1 {
		t.Errorf("writes = %d, want 1", writes.Load())
	}
}

func TestDebouncer_Stop(t *testing.T) {
	var writes atomic.Int32
	d := NewDebouncer(10*time.Millisecond, func(context.Context) error {
		writes.Add(1)
		return nil
	}, nil)

	d.Trigger()
	d.Stop()
	d.Trigger()
	time.Sleep(40 * time.Millisecond)
	if writes.Load() != 0 {
		t.Errorf("writes after Stop = %d", writes.Load())
	}
}

func TestDebouncer_ReportsErrors(t *testing.T) {
	errCh := make(chan error, 1)
	d := NewDebouncer(5*time.Millisecond, func(context.Context) error {
		return errors.New("disk full")
	}, func(err error) { errCh <- err })

	d.Trigger()
	select {
	case err := <-errCh:
		if err.Error() != "disk full" {
			t.Errorf("error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("error callback not called")
	}
}

type memStore struct {
	mu    sync.Mutex
	saved []models.AppData
	err   error
}

func (m *memStore) SaveAppData(_ context.Context, _ string, data models.AppData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, data)
	return nil
}

type staticSource struct{ data models.AppData }

func (s staticSource) Snapshot() models.AppData { return s.data }

func TestSaver(t *testing.T) {
	store := &memStore{}
	data := models.InitialAppData()
	data.XP = 300
	s := NewSaver(store, staticSource{data}, "u1", time.Hour)

	s.Changed()
	s.Changed()
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if len(store.saved) != 1 || store.saved[0].XP != 300 {
		t.Errorf("saved = %+v", store.saved)
	}

	s.Changed()
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("Flush() after Close error: %v", err)
	}
	if len(store.saved) != 1 {
		t.Error("closed saver must not write again")
	}
}

func TestSaver_Failure(t *testing.T) {
	store := &memStore{err: errors.New("connection refused")}
	s := NewSaver(store, staticSource{models.InitialAppData()}, "u1", time.Hour)

	s.Changed()
	if err := s.Flush(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if s.LastError() == nil {
		t.Error("LastError() = nil")
	}

	store.err = nil
	s.Changed()
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	if s.LastError() != nil {
		t.Errorf("LastError() after success = %v", s.LastError())
	}
}
