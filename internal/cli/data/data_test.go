package data

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Sai2211201144/learn-ai-2/internal/cli"
	"github.com/Sai2211201144/learn-ai-2/internal/cli/clitest"
	"github.com/Sai2211201144/learn-ai-2/internal/exports"
)

func TestExportToFileAndImport(t *testing.T) {
	ctx, _ := clitest.New(t, nil)
	if _, err := ctx.App.AddHabit("Read"); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}

	out := filepath.Join(t.TempDir(), "backup.json")
	if err := (&ExportCmd{Out: out}).Run(ctx); err != nil {
		t.Fatalf("export: %v", err)
	}
	bundle, err := exports.Read(out)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(bundle.Data.Habits) != 1 || bundle.Profile.ID != "local" {
		t.Errorf("unexpected bundle: %+v", bundle)
	}

	if err := (&ResetCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(ctx.App.Habits()) != 0 {
		t.Fatal("reset kept habits")
	}

	ctx.ConfirmFunc = func(string) (bool, error) { return false, nil }
	if err := (&ImportCmd{File: out}).Run(ctx); !errors.Is(err, cli.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if len(ctx.App.Habits()) != 0 {
		t.Fatal("declined import changed data")
	}

	if err := (&ImportCmd{File: out, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(ctx.App.Habits()) != 1 {
		t.Errorf("habits after import = %d", len(ctx.App.Habits()))
	}

	// the import is flushed straight to storage
	stored, err := ctx.Store.LoadAppData(context.Background(), "local")
	if err != nil {
		t.Fatalf("LoadAppData: %v", err)
	}
	if len(stored.Habits) != 1 {
		t.Errorf("stored habits = %d, want 1", len(stored.Habits))
	}
}

func TestExportRotationListAndLatest(t *testing.T) {
	ctx, out := clitest.New(t, nil)

	if err := (&ExportCmd{}).Run(ctx); err != nil {
		t.Fatalf("export: %v", err)
	}
	out.Reset()
	if err := (&ExportCmd{List: true}).Run(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out.String(), "1 total") {
		t.Errorf("list output: %s", out.String())
	}

	if err := (&ImportCmd{Latest: true, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("import latest: %v", err)
	}
}

func TestImportRejectsBadInput(t *testing.T) {
	ctx, _ := clitest.New(t, nil)

	tests := []struct {
		name string
		cmd  ImportCmd
	}{
		{"no file", ImportCmd{Yes: true}},
		{"missing file", ImportCmd{File: "nope.json", Yes: true}},
		{"latest without exports", ImportCmd{Latest: true, Yes: true}},
		{"file and latest", ImportCmd{File: "x.json", Latest: true, Yes: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestResetCancelled(t *testing.T) {
	ctx, _ := clitest.New(t, nil)
	if _, err := ctx.App.AddHabit("Keep me"); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	ctx.ConfirmFunc = func(string) (bool, error) { return false, nil }
	if err := (&ResetCmd{}).Run(ctx); !errors.Is(err, cli.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if len(ctx.App.Habits()) != 1 {
		t.Error("declined reset removed data")
	}
}
