package storage

import (
	"context"
	"errors"

	"github.com/Sai2211201144/learn-ai-2/internal/models"
	"github.com/Sai2211201144/learn-ai-2/internal/storage/postgres"
	"github.com/Sai2211201144/learn-ai-2/internal/storage/sqlite"
)

var (
	// ErrNotInitialized is returned by Load when Init has never run.
	ErrNotInitialized = sqlite.ErrNotInitialized
	// ErrProfileNotFound is returned when saving data for an unknown user.
	ErrProfileNotFound = sqlite.ErrProfileNotFound
)

// IsProfileNotFound reports whether err is a missing-profile error from any backend.
func IsProfileNotFound(err error) bool {
	return errors.Is(err, ErrProfileNotFound) || errors.Is(err, postgres.ErrProfileNotFound)
}

// Setting keys persisted alongside the app data.
const (
	SettingLastActiveCourse = "last_active_course"
	SettingDefaultProfile   = "default_profile"
)

// Versioned is implemented by backends with a migrated schema.
type Versioned interface {
	SchemaVersions() (current, latest int, err error)
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Profiles and app data
	GetOrCreateProfile(ctx context.Context, profile models.Profile) (models.Profile, error)
	LoadAppData(ctx context.Context, userID string) (models.AppData, error)
	SaveAppData(ctx context.Context, userID string, data models.AppData) error

	// Settings
	GetSetting(ctx context.Context, key string) (string, bool, error)
	SaveSetting(ctx context.Context, key, value string) error

	// Utils
	GetConfigPath() string
}
