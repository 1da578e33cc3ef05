package state

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/Sai2211201144/learn-ai-2/internal/generator"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
	"github.com/Sai2211201144/learn-ai-2/internal/progress"
)

var (
	// ErrNotFound is returned when an id does not match any item.
	ErrNotFound = errors.New("not found")
	// ErrNoOutline is returned when no plan outline is pending.
	ErrNoOutline = errors.New("no pending plan outline")
	// ErrNoGenerator is returned when generation is requested without a service.
	ErrNoGenerator = errors.New("no generation service configured")
)

// Option configures an App.
type Option func(*App)

// WithClock overrides the time source. The returned times also decide the
// location used for habit day keys and plan start dates.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithGenerator sets the content generation service.
func WithGenerator(svc generator.Service) Option {
	return func(a *App) { a.gen = svc }
}

// WithChangeHook registers fn to run after every committed mutation.
func WithChangeHook(fn func()) Option {
	return func(a *App) { a.onChange = fn }
}

// App holds the in-memory state of one user session. Mutations replace
// slices and maps instead of editing them in place, so snapshots handed out
// earlier stay valid.
type App struct {
	mu sync.RWMutex

	profile      models.Profile
	data         models.AppData
	lastActiveID string
	outline      *models.PlanOutline
	tasks        []models.BackgroundTask
	unlocked     []models.AchievementID

	gen      generator.Service
	now      func() time.Time
	onChange func()
}

// New creates an App over the given profile and snapshot.
func New(profile models.Profile, data models.AppData, opts ...Option) *App {
	a := &App{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	data.Normalize()
	a.profile = profile
	a.data = data
	return a
}

// SetChangeHook replaces the change hook. Used when the saver is created
// after the App.
func (a *App) SetChangeHook(fn func()) {
	a.mu.Lock()
	a.onChange = fn
	a.mu.Unlock()
}

// Now returns the App's current time.
func (a *App) Now() time.Time {
	return a.now()
}

// update runs fn under the write lock and fires the change hook when fn
// succeeds. fn must replace, not modify, any slice or map it changes.
func (a *App) update(fn func(d *models.AppData) error) error {
	a.mu.Lock()
	err := fn(&a.data)
	hook := a.onChange
	a.mu.Unlock()

	if err == nil && hook != nil {
		hook()
	}
	return err
}

func (a *App) notify() {
	a.mu.RLock()
	hook := a.onChange
	a.mu.RUnlock()
	if hook != nil {
		hook()
	}
}

// Snapshot returns the current app data. The returned value shares storage
// with the App and must be treated as read-only.
func (a *App) Snapshot() models.AppData {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.data
}

// Profile returns the profile the App was loaded for.
func (a *App) Profile() models.Profile {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.profile
}

// Load replaces all state with data without firing the change hook.
func (a *App) Load(profile models.Profile, data models.AppData) {
	data.Normalize()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.profile = profile
	a.data = data
	a.outline = nil
	if !slices.ContainsFunc(data.Courses, func(c models.Course) bool { return c.ID == a.lastActiveID }) {
		a.lastActiveID = ""
	}
}

// Import replaces all local state with data and schedules a save.
func (a *App) Import(data models.AppData) {
	a.mu.RLock()
	profile := a.profile
	a.mu.RUnlock()

	a.Load(profile, data)
	a.notify()
}

// Reset wipes every collection and the gamification ledger.
func (a *App) Reset() {
	a.mu.Lock()
	a.data = models.InitialAppData()
	a.lastActiveID = ""
	a.outline = nil
	a.tasks = nil
	a.unlocked = nil
	a.mu.Unlock()
	a.notify()
}

// DrainUnlocked returns achievements unlocked since the last call.
func (a *App) DrainUnlocked() []models.Achievement {
	a.mu.Lock()
	ids := a.unlocked
	a.unlocked = nil
	a.mu.Unlock()

	out := make([]models.Achievement, 0, len(ids))
	for _, id := range ids {
		if ach, ok := progress.Lookup(id); ok {
			out = append(out, ach)
		}
	}
	return out
}

// applyLedger stores l into d and queues newly unlocked ids. Caller holds mu.
func (a *App) applyLedger(d *models.AppData, l progress.Ledger, unlocked []models.AchievementID) {
	l.Apply(d)
	a.unlocked = append(a.unlocked, unlocked...)
}

func indexByID[T any](items []T, id string, key func(T) string) int {
	return slices.IndexFunc(items, func(it T) bool { return key(it) == id })
}
