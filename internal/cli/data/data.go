package data

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sai2211201144/learn-ai-2/internal/cli"
	"github.com/Sai2211201144/learn-ai-2/internal/constants"
	"github.com/Sai2211201144/learn-ai-2/internal/exports"
	"github.com/Sai2211201144/learn-ai-2/internal/logger"
)

type ExportCmd struct {
	Out  string `short:"o" help:"Write to this file instead of the exports directory." type:"path"`
	List bool   `help:"List existing exports instead of writing one."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	if c.List {
		return listExports(ctx)
	}

	bundle := exports.NewBundle(ctx.App.Profile(), ctx.App.Snapshot(), ctx.Now())
	if c.Out != "" {
		if err := exports.WriteFile(c.Out, bundle); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		ctx.Success("Exported to %s", c.Out)
		return nil
	}

	path, err := ctx.Exports.Write(bundle)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	ctx.Success("Export created: %s", filepath.Base(path))
	return nil
}

func listExports(ctx *cli.Context) error {
	list, err := ctx.Exports.List()
	if err != nil {
		return fmt.Errorf("failed to list exports: %w", err)
	}
	if len(list) == 0 {
		ctx.Println("No exports found.")
		ctx.Printf("Exports are stored in: %s\n", ctx.Exports.Dir())
		return nil
	}

	ctx.Printf("Available exports (%d total, keeping most recent %d):\n\n", len(list), constants.MaxExports)
	for _, e := range list {
		ctx.Printf("  %s  %s  (%.1f KB)\n", e.Timestamp.Format("2006-01-02 15:04"), filepath.Base(e.Path), float64(e.Size)/1024.0)
	}
	ctx.Printf("\nExport directory: %s\n", ctx.Exports.Dir())
	return nil
}

type ImportCmd struct {
	File   string `arg:"" optional:"" help:"Path or file name of the export to import."`
	Latest bool   `help:"Import the newest file in the exports directory."`
	Yes    bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	path, err := c.resolve(ctx)
	if err != nil {
		return err
	}

	// validate before asking anything
	bundle, err := exports.Read(path)
	if err != nil {
		return err
	}

	ctx.Warn("This replaces ALL current data with the contents of %s.", filepath.Base(path))
	ctx.Printf("  exported %s: %d courses, %d plans, %d habits\n",
		bundle.ExportedAt.Format("2006-01-02 15:04"), len(bundle.Data.Courses), len(bundle.Data.LearningPlans), len(bundle.Data.Habits))
	if err := ctx.Confirm("Import and replace current data?", c.Yes); err != nil {
		return err
	}

	if safety, err := snapshot(ctx); err != nil {
		logger.Warn("Failed to export current data before import", "error", err)
	} else {
		ctx.Println(cli.Faint("Current data saved to " + filepath.Base(safety)))
	}

	ctx.App.Import(bundle.Data)
	if err := ctx.Saver.Flush(ctx.Context()); err != nil {
		return err
	}
	ctx.Success("Imported data from %s", filepath.Base(path))
	return nil
}

func (c *ImportCmd) resolve(ctx *cli.Context) (string, error) {
	if c.Latest {
		if c.File != "" {
			return "", errors.New("pass either a file or --latest, not both")
		}
		latest, err := ctx.Exports.Latest()
		if err != nil {
			return "", err
		}
		return latest.Path, nil
	}
	if c.File == "" {
		return "", errors.New("no export given, pass a file or --latest")
	}

	if filepath.IsAbs(c.File) {
		if _, err := os.Stat(c.File); err != nil {
			return "", fmt.Errorf("export file not found: %s", c.File)
		}
		return c.File, nil
	}
	if _, err := os.Stat(c.File); err == nil {
		return filepath.Abs(c.File)
	}
	candidate := filepath.Join(ctx.Exports.Dir(), c.File)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("export file not found: tried current directory and %s", ctx.Exports.Dir())
}

type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	ctx.Warn("This deletes every course, article, project, folder, plan and habit.")
	if err := ctx.Confirm("Reset all data?", c.Yes); err != nil {
		return err
	}

	if safety, err := snapshot(ctx); err != nil {
		logger.Warn("Failed to export data before reset", "error", err)
	} else {
		ctx.Println(cli.Faint("Previous data saved to " + filepath.Base(safety)))
	}

	ctx.App.Reset()
	if err := ctx.Saver.Flush(ctx.Context()); err != nil {
		return err
	}
	ctx.Success("All data reset")
	return nil
}

// snapshot exports the current state before a destructive operation.
func snapshot(ctx *cli.Context) (string, error) {
	return ctx.Exports.Write(exports.NewBundle(ctx.App.Profile(), ctx.App.Snapshot(), ctx.Now()))
}
