package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/Sai2211201144/learn-ai-2/internal/cli"
	"github.com/Sai2211201144/learn-ai-2/internal/cli/courses"
	"github.com/Sai2211201144/learn-ai-2/internal/cli/data"
	"github.com/Sai2211201144/learn-ai-2/internal/cli/habits"
	"github.com/Sai2211201144/learn-ai-2/internal/cli/library"
	"github.com/Sai2211201144/learn-ai-2/internal/cli/plans"
	"github.com/Sai2211201144/learn-ai-2/internal/cli/system"
	"github.com/Sai2211201144/learn-ai-2/internal/config"
	"github.com/Sai2211201144/learn-ai-2/internal/constants"
	apperrors "github.com/Sai2211201144/learn-ai-2/internal/errors"
	"github.com/Sai2211201144/learn-ai-2/internal/logger"
	"github.com/Sai2211201144/learn-ai-2/internal/storage"
)

var CLI struct {
	Version   kong.VersionFlag
	ConfigDir string `help:"Directory holding config.yaml, the default database, logs and exports." type:"path" default:"${config_dir}" env:"LEARNAI_CONFIG_DIR"`
	Debug     bool   `help:"Enable debug logging on stderr."`

	Init    system.InitCmd     `cmd:"" help:"Initialize learnai storage and config."`
	Tui     system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Status  system.StatusCmd   `cmd:"" help:"Show level, next step, today's tasks and habits."`
	Serve   system.ServeCmd    `cmd:"" help:"Serve the JSON HTTP API."`
	Course  courses.CourseCmd  `cmd:"" help:"Generate and study courses."`
	Folder  library.FolderCmd  `cmd:"" help:"Organize courses and articles in folders."`
	Article library.ArticleCmd `cmd:"" help:"Generate and read articles."`
	Project library.ProjectCmd `cmd:"" help:"Generate and track practice projects."`
	Plan    plans.PlanCmd      `cmd:"" help:"Create and follow learning plans."`
	Habit   habits.HabitCmd    `cmd:"" help:"Manage habits and habit tracking."`
	Export  data.ExportCmd     `cmd:"" help:"Export all data to a JSON file."`
	Import  data.ImportCmd     `cmd:"" help:"Replace all data with an export."`
	Reset   data.ResetCmd      `cmd:"" help:"Delete all data and start over."`
	Config  system.ConfigCmd   `cmd:"" help:"Show and edit configuration."`
	Doctor  system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Inspect system.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("AI-assisted learning companion: courses, plans, habits and progress"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":      constants.Version,
			"config_dir":   constants.DefaultConfigDir,
			"heatmap_days": fmt.Sprint(constants.HeatmapDays),
		},
	)

	if err := run(ctx); err != nil {
		apperrors.Fatal(err)
	}
}

func run(kctx *kong.Context) error {
	dir := config.ExpandPath(CLI.ConfigDir)
	if err := logger.Init(logger.Config{ConfigDir: dir, Debug: CLI.Debug}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	loader := config.NewLoader(dir)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	logger.SetDebug(cfg.Debug, false)

	store := storage.Open(cfg.Storage)
	appCtx := cli.NewContext(cfg, loader, store)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := kctx.Command()
	if needsSession(command) {
		if err := store.Load(); err != nil {
			return err
		}
		if err := appCtx.Open(sigCtx); err != nil {
			_ = store.Close()
			return err
		}
	}
	logger.Debug("Running command", "command", command, "storage", store.GetConfigPath())

	runErr := kctx.Run(appCtx)
	// flush with a fresh context so an interrupt still saves pending changes
	closeErr := appCtx.Close(context.Background())
	if errors.Is(runErr, cli.ErrCancelled) {
		appCtx.Println("Cancelled.")
		runErr = nil
	}
	return errors.Join(runErr, closeErr)
}

// needsSession reports whether a command works on the user's data. Setup
// and diagnostic commands run without loading it.
func needsSession(command string) bool {
	var words []string
	for _, w := range strings.Fields(command) {
		if !strings.HasPrefix(w, "<") {
			words = append(words, w)
		}
	}
	path := strings.Join(words, " ")
	switch {
	case path == "init", path == "doctor", path == "debug db-path":
		return false
	case path == "config" || strings.HasPrefix(path, "config "):
		return false
	}
	return true
}
