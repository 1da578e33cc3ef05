package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/Sai2211201144/learn-ai-2/internal/constants"
	"github.com/Sai2211201144/learn-ai-2/internal/keyring"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	gokeyring.MockInit()
	dir := t.TempDir()

	cfg, err := NewLoader(dir).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Storage != filepath.Join(dir, "learnai.db") {
		t.Errorf("Storage = %q", cfg.Storage)
	}
	if cfg.SaveDebounce != constants.SaveDebounce {
		t.Errorf("SaveDebounce = %v, want %v", cfg.SaveDebounce, constants.SaveDebounce)
	}
	if cfg.AI.Model != constants.DefaultAIModel || cfg.AI.RequestsPerMinute != constants.DefaultRequestsPerMinute {
		t.Errorf("unexpected AI defaults: %+v", cfg.AI)
	}
	if cfg.Profile.ID != "local" {
		t.Errorf("Profile.ID = %q, want local", cfg.Profile.ID)
	}
	if cfg.Server.Addr != constants.DefaultServerAddr {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Location() != time.Local {
		t.Errorf("expected local timezone")
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	gokeyring.MockInit()
	dir := t.TempDir()
	writeConfig(t, dir, `
storage: /tmp/learn.json
timezone: America/New_York
save_debounce: 250ms
ai:
  model: file-model
  requests_per_minute: 5
profile:
  name: Ada
`)
	t.Setenv("LEARNAI_AI_MODEL", "env-model")
	t.Setenv("LEARNAI_DEBUG", "true")

	cfg, err := NewLoader(dir).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Storage != "/tmp/learn.json" {
		t.Errorf("Storage = %q", cfg.Storage)
	}
	if cfg.SaveDebounce != 250*time.Millisecond {
		t.Errorf("SaveDebounce = %v", cfg.SaveDebounce)
	}
	if cfg.AI.Model != "env-model" {
		t.Errorf("env override not applied: %q", cfg.AI.Model)
	}
	if !cfg.Debug {
		t.Error("expected debug from env")
	}
	if cfg.AI.RequestsPerMinute != 5 || cfg.Profile.Name != "Ada" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Location().String() != "America/New_York" {
		t.Errorf("Location = %s", cfg.Location())
	}
}

func TestLoadKeyringFallback(t *testing.T) {
	gokeyring.MockInit()
	if err := keyring.SetAPIKey("sk-from-keyring"); err != nil {
		t.Fatalf("SetAPIKey failed: %v", err)
	}
	if err := keyring.SetConnectionString("postgres://learnai@db/learnai"); err != nil {
		t.Fatalf("SetConnectionString failed: %v", err)
	}

	cfg, err := NewLoader(t.TempDir()).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AI.APIKey != "sk-from-keyring" {
		t.Errorf("APIKey = %q", cfg.AI.APIKey)
	}
	if cfg.Storage != "postgres://learnai@db/learnai" {
		t.Errorf("Storage = %q", cfg.Storage)
	}
}

func TestLoadInvalid(t *testing.T) {
	gokeyring.MockInit()

	tests := []struct {
		name string
		body string
	}{
		{"bad timezone", "timezone: Mars/Olympus\n"},
		{"zero rate", "ai:\n  requests_per_minute: 0\n"},
		{"negative debounce", "save_debounce: -1s\n"},
		{"empty profile", "profile:\n  id: \"\"\n"},
		{"malformed yaml", "ai: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.body)
			if _, err := NewLoader(dir).Load(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWriteDefaultAndSet(t *testing.T) {
	gokeyring.MockInit()
	dir := filepath.Join(t.TempDir(), "learnai")
	loader := NewLoader(dir)

	path, err := loader.WriteDefault()
	if err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config permissions = %v, want 0600", info.Mode().Perm())
	}

	if err := loader.Set("profile.name", "Grace"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	cfg, err := NewLoader(dir).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Profile.Name != "Grace" {
		t.Errorf("Profile.Name = %q", cfg.Profile.Name)
	}
	if cfg.SaveDebounce != constants.SaveDebounce {
		t.Errorf("SaveDebounce = %v", cfg.SaveDebounce)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/x/learnai.db", filepath.Join(home, "x/learnai.db")},
		{"/abs/path", "/abs/path"},
		{"postgres://u@h/db", "postgres://u@h/db"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
