package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

// ErrProfileNotFound is returned when saving data for an unknown user.
var ErrProfileNotFound = errors.New("profile not found")

// GetOrCreateProfile returns the stored profile for profile.ID, creating it
// together with initial app data when it does not exist yet.
func (s *Store) GetOrCreateProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	if profile.ID == "" {
		return models.Profile{}, fmt.Errorf("profile id cannot be empty")
	}

	var stored models.Profile
	err := s.db.QueryRowContext(ctx,
		"SELECT id, email, name, picture FROM user_profiles WHERE id = ?", profile.ID,
	).Scan(&stored.ID, &stored.Email, &stored.Name, &stored.Picture)
	if err == nil {
		if stored.Name == "" {
			stored.Name = models.DefaultProfileName
		}
		return stored, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, fmt.Errorf("failed to fetch profile: %w", err)
	}

	if profile.Name == "" {
		profile.Name = models.DefaultProfileName
	}
	initial, err := json.Marshal(models.InitialAppData())
	if err != nil {
		return models.Profile{}, err
	}
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Profile{}, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO user_profiles (id, email, name, picture, created_at) VALUES (?, ?, ?, ?, ?)",
		profile.ID, profile.Email, profile.Name, profile.Picture, now,
	); err != nil {
		return models.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO user_app_data (user_id, data, updated_at) VALUES (?, ?, ?)",
		profile.ID, string(initial), now,
	); err != nil {
		return models.Profile{}, fmt.Errorf("failed to create initial app data: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

// LoadAppData returns the user's snapshot, or initial data when none is stored.
func (s *Store) LoadAppData(ctx context.Context, userID string) (models.AppData, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM user_app_data WHERE user_id = ?", userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.InitialAppData(), nil
	}
	if err != nil {
		return models.AppData{}, fmt.Errorf("failed to fetch app data: %w", err)
	}
	return models.ParseAppData([]byte(raw))
}

// SaveAppData replaces the user's snapshot.
func (s *Store) SaveAppData(ctx context.Context, userID string, data models.AppData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to serialize app data: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO user_app_data (user_id, data, updated_at)
		SELECT id, ?, ? FROM user_profiles WHERE id = ?
		ON CONFLICT(user_id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at`,
		string(raw), time.Now().UTC().Format(time.RFC3339), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to save app data: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrProfileNotFound)
	}
	return nil
}
