package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/Sai2211201144/learn-ai-2/internal/constants"
	"github.com/Sai2211201144/learn-ai-2/internal/keyring"
	"github.com/Sai2211201144/learn-ai-2/internal/logger"
	"github.com/Sai2211201144/learn-ai-2/internal/utils"
)

const (
	FileName  = "config"
	FileType  = "yaml"
	EnvPrefix = "LEARNAI"
)

type Config struct {
	Storage      string        `mapstructure:"storage"`
	Timezone     string        `mapstructure:"timezone"`
	SaveDebounce time.Duration `mapstructure:"save_debounce"`
	Debug        bool          `mapstructure:"debug"`
	Profile      ProfileConfig `mapstructure:"profile"`
	AI           AIConfig      `mapstructure:"ai"`
	Server       ServerConfig  `mapstructure:"server"`

	// Dir is the directory config.yaml was looked up in.
	Dir string `mapstructure:"-"`
}

type ProfileConfig struct {
	ID    string `mapstructure:"id"`
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"`
}

type AIConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	APIKey            string `mapstructure:"api_key"`
	Model             string `mapstructure:"model"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Loader reads config.yaml from a directory with LEARNAI_* environment
// overrides.
type Loader struct {
	dir string
	v   *viper.Viper
}

func NewLoader(dir string) *Loader {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(dir)
	v.SetConfigName(FileName)
	v.SetConfigType(FileType)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{dir: dir, v: v}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage", "")
	v.SetDefault("timezone", "Local")
	v.SetDefault("save_debounce", constants.SaveDebounce)
	v.SetDefault("debug", false)
	v.SetDefault("profile.id", "local")
	v.SetDefault("profile.name", "")
	v.SetDefault("profile.email", "")
	v.SetDefault("ai.base_url", constants.DefaultAIBaseURL)
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", constants.DefaultAIModel)
	v.SetDefault("ai.requests_per_minute", constants.DefaultRequestsPerMinute)
	v.SetDefault("server.addr", constants.DefaultServerAddr)
}

// Path returns the config file location.
func (l *Loader) Path() string {
	return filepath.Join(l.dir, FileName+"."+FileType)
}

// Load reads the config file if present. A missing file is not an error.
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return l.decode()
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Dir = l.dir

	applySecrets(&cfg)
	if cfg.Storage == "" {
		cfg.Storage = DefaultStoragePath(l.dir)
	}
	cfg.Storage = ExpandPath(cfg.Storage)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultStoragePath is the SQLite database used when no storage is configured.
func DefaultStoragePath(dir string) string {
	return filepath.Join(dir, constants.AppName+".db")
}

// applySecrets fills the AI key and connection string from the OS keyring
// when neither the file nor the environment set them.
func applySecrets(cfg *Config) {
	if cfg.AI.APIKey == "" {
		if key, err := keyring.GetAPIKey(); err == nil {
			cfg.AI.APIKey = key
		}
	}
	if cfg.Storage == "" {
		if connStr, err := keyring.GetConnectionString(); err == nil {
			cfg.Storage = connStr
		}
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Storage) == "" {
		return fmt.Errorf("storage location cannot be empty")
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone: %s", c.Timezone)
	}
	if c.SaveDebounce < 0 {
		return fmt.Errorf("save_debounce must not be negative")
	}
	if c.AI.RequestsPerMinute <= 0 {
		return fmt.Errorf("ai.requests_per_minute must be positive, got %d", c.AI.RequestsPerMinute)
	}
	if strings.TrimSpace(c.Profile.ID) == "" {
		return fmt.Errorf("profile.id cannot be empty")
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() *time.Location {
	loc, err := utils.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// WriteDefault writes a config file with the defaults. An empty storage
// entry means the SQLite database in the config directory. An existing file
// is left untouched.
func (l *Loader) WriteDefault() (string, error) {
	if err := os.MkdirAll(l.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	path := l.Path()
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	out := viper.New()
	setDefaults(out)
	out.Set("save_debounce", constants.SaveDebounce.String())
	if err := out.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Chmod(path, 0600); err != nil {
		return "", fmt.Errorf("failed to set config permissions: %w", err)
	}
	return path, nil
}

// Set writes key=value into the config file, keeping other file entries.
// Environment overrides are never written back.
func (l *Loader) Set(key string, value any) error {
	if err := os.MkdirAll(l.dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file := viper.New()
	file.SetConfigFile(l.Path())
	file.SetConfigType(FileType)
	if _, err := os.Stat(l.Path()); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	file.Set(key, value)
	if err := file.WriteConfigAs(l.Path()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return os.Chmod(l.Path(), 0600)
}

// Watch reloads the config whenever the file changes and passes the result
// to onChange. Invalid edits are logged and ignored.
func (l *Loader) Watch(onChange func(*Config)) {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := l.decode()
		if err != nil {
			logger.Warn("Ignoring invalid config change", "file", e.Name, "error", err)
			return
		}
		logger.Info("Config reloaded", "file", e.Name)
		onChange(cfg)
	})
	l.v.WatchConfig()
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
