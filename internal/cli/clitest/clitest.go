// Package clitest builds command contexts over temporary storage.
package clitest

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Sai2211201144/learn-ai-2/internal/cli"
	"github.com/Sai2211201144/learn-ai-2/internal/config"
	"github.com/Sai2211201144/learn-ai-2/internal/constants"
	"github.com/Sai2211201144/learn-ai-2/internal/generator"
	"github.com/Sai2211201144/learn-ai-2/internal/storage/sqlite"
)

// New returns an opened Context backed by a fresh SQLite store in a temp
// dir. Output is captured in the returned buffer. gen may be nil. Saves
// only happen on explicit Flush or Close.
func New(t *testing.T, gen generator.Service) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{
		Storage:      filepath.Join(dir, "learnai.db"),
		Timezone:     "UTC",
		SaveDebounce: time.Hour,
		Profile:      config.ProfileConfig{ID: "local", Name: "Tester"},
		AI:           config.AIConfig{RequestsPerMinute: constants.DefaultRequestsPerMinute},
		Dir:          dir,
	}
	store := sqlite.NewStore(cfg.Storage)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	ctx := cli.NewContext(cfg, config.NewLoader(dir), store)
	var out bytes.Buffer
	ctx.Out = &out
	ctx.Generator = gen
	ctx.ConfirmFunc = func(string) (bool, error) { return true, nil }

	if err := ctx.Open(context.Background()); err != nil {
		t.Fatalf("failed to open context: %v", err)
	}
	t.Cleanup(func() { _ = ctx.Close(context.Background()) })
	return ctx, &out
}
