package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/Sai2211201144/learn-ai-2/internal/cli"
	"github.com/Sai2211201144/learn-ai-2/internal/exports"
	"github.com/Sai2211201144/learn-ai-2/internal/keyring"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
	"github.com/Sai2211201144/learn-ai-2/internal/storage"
	"github.com/Sai2211201144/learn-ai-2/internal/storage/sqlite"
	"github.com/Sai2211201144/learn-ai-2/internal/utils"
)

// staleExportAge is when the newest export starts to be reported as old.
const staleExportAge = 7 * 24 * time.Hour

type check struct {
	name       string
	run        func(ctx *cli.Context) error
	needsStore bool // skipped when storage is unreachable
	warnOnly   bool // reported without failing the command
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsStore: true},
	{name: "Data validation", run: checkData, needsStore: true},
	{name: "Exports present", run: checkExports, warnOnly: true},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Generation service", run: checkGenerator, warnOnly: true},
	{name: "OS keyring", run: checkKeyring, warnOnly: true},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	if err := ctx.Config.Validate(); err != nil {
		ctx.Fail("Configuration: FAIL")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Success("Configuration: OK")
	}

	storeReachable := true
	if err := checkStoreReachable(ctx); err != nil {
		ctx.Fail("Storage reachable: FAIL")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		storeReachable = false
	} else {
		ctx.Success("Storage reachable: OK")
	}

	for _, c := range checks {
		if c.needsStore && !storeReachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Success("%s: OK", c.name)
		case c.warnOnly:
			ctx.Warn("%s: WARNING", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Fail("%s: FAIL", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if s, ok := ctx.Store.(*sqlite.Store); ok {
		db := s.GetDB()
		if db == nil {
			return errors.New("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	v, ok := ctx.Store.(storage.Versioned)
	if !ok {
		// JSON files carry no schema version
		return nil
	}
	current, latest, err := v.SchemaVersions()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkData(ctx *cli.Context) error {
	data, err := ctx.Store.LoadAppData(ctx.Context(), ctx.Config.Profile.ID)
	if err != nil {
		if storage.IsProfileNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to load app data: %w", err)
	}
	return validateData(data)
}

// validateData checks the invariants a snapshot must hold after any sequence
// of operations.
func validateData(d models.AppData) error {
	var errs []error
	dup := func(kind string, ids []string) {
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if id == "" {
				errs = append(errs, fmt.Errorf("%s with empty id", kind))
				continue
			}
			if seen[id] {
				errs = append(errs, fmt.Errorf("duplicate %s id: %s", kind, id))
			}
			seen[id] = true
		}
	}
	dup("course", cli.IDsOf(d.Courses, func(c models.Course) string { return c.ID }))
	dup("article", cli.IDsOf(d.Articles, func(a models.Article) string { return a.ID }))
	dup("project", cli.IDsOf(d.Projects, func(p models.Project) string { return p.ID }))
	dup("folder", cli.IDsOf(d.Folders, func(f models.Folder) string { return f.ID }))
	dup("plan", cli.IDsOf(d.LearningPlans, func(p models.LearningPlan) string { return p.ID }))
	dup("habit", cli.IDsOf(d.Habits, func(h models.Habit) string { return h.ID }))

	for _, h := range d.Habits {
		if err := h.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("habit %s: %w", h.ID, err))
		}
	}

	active := 0
	for _, p := range d.LearningPlans {
		if p.Status == models.PlanStatusActive {
			active++
		}
		for _, t := range p.DailyTasks {
			if t.Day < 1 {
				errs = append(errs, fmt.Errorf("plan %s: task %s has day %d", p.ID, t.ID, t.Day))
			}
		}
	}
	if active > 1 {
		errs = append(errs, fmt.Errorf("%d plans are active, expected at most one", active))
	}

	if d.Level < 1 || d.XP < 0 {
		errs = append(errs, fmt.Errorf("invalid progress: level %d, xp %d", d.Level, d.XP))
	}
	return errors.Join(errs...)
}

func checkExports(ctx *cli.Context) error {
	mgr := ctx.Exports
	if mgr == nil {
		mgr = exports.NewManager(ctx.Config.Dir)
	}
	latest, err := mgr.Latest()
	if err != nil {
		return fmt.Errorf("%w, consider creating one with 'learnai export'", err)
	}
	if age := time.Since(latest.Timestamp); age > staleExportAge {
		return fmt.Errorf("newest export is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now, err := utils.NowInTimezone(ctx.Config.Timezone)
	if err != nil {
		return err
	}
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkGenerator(ctx *cli.Context) error {
	if ctx.Config.AI.APIKey == "" {
		return errors.New("no API key configured, generation commands are disabled")
	}
	return nil
}

func checkKeyring(_ *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}
