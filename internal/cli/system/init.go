package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/Sai2211201144/learn-ai-2/internal/cli"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
	"github.com/Sai2211201144/learn-ai-2/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Delete an existing SQLite or JSON store before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	cfgPath, err := ctx.Loader.WriteDefault()
	if err != nil {
		return err
	}
	ctx.Printf("Config file: %s\n", cfgPath)

	if c.Force {
		if storage.IsPostgres(ctx.Config.Storage) {
			return errors.New("--force cannot drop a PostgreSQL database, drop it manually instead")
		}
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			// close first so the file is not locked
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			ctx.Printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Success("Initialized learnai storage at: %s", ctx.Store.GetConfigPath())

	profile, err := ctx.Store.GetOrCreateProfile(ctx.Context(), models.Profile{
		ID:    ctx.Config.Profile.ID,
		Name:  ctx.Config.Profile.Name,
		Email: ctx.Config.Profile.Email,
	})
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	ctx.Printf("Profile: %s (%s)\n", profile.Name, profile.ID)
	return nil
}
