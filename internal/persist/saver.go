package persist

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Sai2211201144/learn-ai-2/internal/logger"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

// Store is the persistence side of a storage provider.
type Store interface {
	SaveAppData(ctx context.Context, userID string, data models.AppData) error
}

// Source supplies the snapshot to save.
type Source interface {
	Snapshot() models.AppData
}

// Saver writes the App snapshot to storage after changes settle. Save
// failures are logged and kept for LastError; they never stop the session.
type Saver struct {
	store  Store
	source Source
	userID string
	deb    *Debouncer

	writeMu sync.Mutex
	errMu   sync.Mutex
	lastErr error
}

// NewSaver wires a debounced writer for userID.
func NewSaver(store Store, source Source, userID string, delay time.Duration) *Saver {
	s := &Saver{store: store, source: source, userID: userID}
	s.deb = NewDebouncer(delay, s.save, func(err error) {
		logger.Error("Failed to save app data", "user", userID, "error", err)
	})
	return s
}

// Changed is the App change hook.
func (s *Saver) Changed() {
	s.deb.Trigger()
}

// Flush writes any pending change immediately.
func (s *Saver) Flush(ctx context.Context) error {
	return s.deb.Flush(ctx)
}

// Close flushes pending changes and stops the debouncer.
func (s *Saver) Close(ctx context.Context) error {
	err := s.deb.Flush(ctx)
	s.deb.Stop()
	return err
}

// LastError returns the most recent save failure, or nil after a success.
func (s *Saver) LastError() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.lastErr
}

func (s *Saver) save(ctx context.Context) error {
	// one writer at a time
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := s.store.SaveAppData(ctx, s.userID, s.source.Snapshot())
	if err != nil {
		err = fmt.Errorf("failed to save app data: %w", err)
	} else {
		logger.Debug("App data saved", "user", s.userID)
	}

	s.errMu.Lock()
	s.lastErr = err
	s.errMu.Unlock()
	return err
}
