package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

func (s *Store) GetOrCreateProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	if profile.ID == "" {
		return models.Profile{}, fmt.Errorf("profile id cannot be empty")
	}

	var stored models.Profile
	err := s.db.QueryRowContext(ctx,
		"SELECT id, email, name, picture FROM user_profiles WHERE id = $1", profile.ID,
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

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Profile{}, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO user_profiles (id, email, name, picture) VALUES ($1, $2, $3, $4)",
		profile.ID, profile.Email, profile.Name, profile.Picture,
	); err != nil {
		return models.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO user_app_data (user_id, data) VALUES ($1, $2::jsonb)",
		profile.ID, string(initial),
	); err != nil {
		return models.Profile{}, fmt.Errorf("failed to create initial app data: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

func (s *Store) LoadAppData(ctx context.Context, userID string) (models.AppData, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM user_app_data WHERE user_id = $1", userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.InitialAppData(), nil
	}
	if err != nil {
		return models.AppData{}, fmt.Errorf("failed to fetch app data: %w", err)
	}
	return models.ParseAppData(raw)
}

func (s *Store) SaveAppData(ctx context.Context, userID string, data models.AppData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to serialize app data: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO user_app_data (user_id, data, updated_at)
		SELECT id, $1::jsonb, now() FROM user_profiles WHERE id = $2
		ON CONFLICT (user_id) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at`,
		string(raw), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to save app data: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrProfileNotFound)
	}
	return nil
}
