package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/Sai2211201144/learn-ai-2/internal/config"
	"github.com/Sai2211201144/learn-ai-2/internal/exports"
	"github.com/Sai2211201144/learn-ai-2/internal/generator"
	"github.com/Sai2211201144/learn-ai-2/internal/logger"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
	"github.com/Sai2211201144/learn-ai-2/internal/persist"
	"github.com/Sai2211201144/learn-ai-2/internal/state"
	"github.com/Sai2211201144/learn-ai-2/internal/storage"
)

// ErrCancelled is returned when the user declines a confirmation prompt.
var ErrCancelled = errors.New("cancelled")

// Context is shared by every command. App, Saver and Exports are set by Open.
type Context struct {
	Config    *config.Config
	Loader    *config.Loader
	Store     storage.Provider
	Generator generator.Service
	Out       io.Writer

	// ConfirmFunc replaces the interactive prompt, mainly for tests.
	ConfirmFunc func(title string) (bool, error)

	App     *state.App
	Saver   *persist.Saver
	Exports *exports.Manager
	Client  *generator.Client

	ctx    context.Context
	closed bool
}

func NewContext(cfg *config.Config, loader *config.Loader, store storage.Provider) *Context {
	return &Context{
		Config: cfg,
		Loader: loader,
		Store:  store,
		Out:    os.Stdout,
		ctx:    context.Background(),
	}
}

// Context returns the context commands should pass to blocking calls. It is
// cancelled on interrupt once Open has run.
func (c *Context) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Now returns the current time in the configured timezone.
func (c *Context) Now() time.Time {
	return time.Now().In(c.Config.Location())
}

// Open loads the configured profile and its data into a new App and wires
// the debounced saver. The store must already be loaded.
func (c *Context) Open(ctx context.Context) error {
	c.ctx = ctx
	profile, err := c.Store.GetOrCreateProfile(ctx, models.Profile{
		ID:    c.Config.Profile.ID,
		Name:  c.Config.Profile.Name,
		Email: c.Config.Profile.Email,
	})
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	data, err := c.Store.LoadAppData(ctx, profile.ID)
	if err != nil {
		return fmt.Errorf("failed to load app data: %w", err)
	}

	if c.Generator == nil && c.Config.AI.APIKey != "" {
		c.Client = generator.NewClient(generator.Config{
			BaseURL:           c.Config.AI.BaseURL,
			APIKey:            c.Config.AI.APIKey,
			Model:             c.Config.AI.Model,
			RequestsPerMinute: c.Config.AI.RequestsPerMinute,
		})
		c.Generator = c.Client
	}

	opts := []state.Option{state.WithClock(c.Now)}
	if c.Generator != nil {
		opts = append(opts, state.WithGenerator(c.Generator))
	}
	c.App = state.New(profile, data, opts...)

	if id, ok, err := c.Store.GetSetting(ctx, storage.SettingLastActiveCourse); err != nil {
		logger.Warn("Failed to read last active course", "error", err)
	} else if ok && id != "" {
		if err := c.App.SelectCourse(id); err != nil {
			logger.Debug("Last active course no longer exists", "course", id)
		}
	}

	c.Saver = persist.NewSaver(c.Store, c.App, profile.ID, c.Config.SaveDebounce)
	c.App.SetChangeHook(c.Saver.Changed)
	c.Exports = exports.NewManager(c.Config.Dir)

	logger.Debug("Session opened", "profile", profile.ID, "storage", c.Store.GetConfigPath())
	return nil
}

// Close flushes pending writes and closes the store.
func (c *Context) Close(ctx context.Context) error {
	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	if c.Saver != nil {
		if err := c.Saver.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if c.App != nil {
		if err := c.Store.SaveSetting(ctx, storage.SettingLastActiveCourse, c.App.LastActiveCourseID()); err != nil {
			errs = append(errs, fmt.Errorf("failed to save last active course: %w", err))
		}
	}
	if err := c.Store.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// RequireApp fails for commands run before Open.
func (c *Context) RequireApp() error {
	if c.App == nil {
		return errors.New("no session loaded, run 'learnai init' first")
	}
	return nil
}

// Confirm asks a yes/no question unless yes is already set. It returns
// ErrCancelled when the answer is no.
func (c *Context) Confirm(title string, yes bool) error {
	if yes {
		return nil
	}
	ask := c.ConfirmFunc
	if ask == nil {
		ask = promptConfirm
	}
	ok, err := ask(title)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}
	return nil
}

func promptConfirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// Printf writes to the command output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

// Println writes a line to the command output.
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}
