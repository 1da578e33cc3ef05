package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/Sai2211201144/learn-ai-2/internal/cli"
	"github.com/Sai2211201144/learn-ai-2/internal/constants"
	"github.com/Sai2211201144/learn-ai-2/internal/keyring"
	"github.com/Sai2211201144/learn-ai-2/internal/storage"
	"github.com/Sai2211201144/learn-ai-2/internal/storage/postgres"
	"github.com/Sai2211201144/learn-ai-2/internal/utils"
)

type ConfigCmd struct {
	Show   ConfigShowCmd `cmd:"" help:"Show the effective configuration." default:"1"`
	Path   ConfigPathCmd `cmd:"" help:"Show the config file path."`
	Set    ConfigSetCmd  `cmd:"" help:"Write a value to the config file."`
	Secret SecretCmd     `cmd:"" help:"Manage secrets stored in the OS keyring."`
}

type ConfigPathCmd struct{}

func (c *ConfigPathCmd) Run(ctx *cli.Context) error {
	ctx.Println(ctx.Loader.Path())
	return nil
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *cli.Context) error {
	cfg := *ctx.Config
	cfg.Storage = maskPassword(cfg.Storage)
	cfg.AI.APIKey = maskSecret(cfg.AI.APIKey)

	out := map[string]any{
		"file":          ctx.Loader.Path(),
		"storage":       cfg.Storage,
		"timezone":      cfg.Timezone,
		"save_debounce": cfg.SaveDebounce.String(),
		"debug":         cfg.Debug,
		"profile":       cfg.Profile,
		"ai":            cfg.AI,
		"server":        cfg.Server,
	}
	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

// settableKeys lists config keys and how their values are parsed.
var settableKeys = map[string]func(string) (any, error){
	"storage":                func(s string) (any, error) { return s, nil },
	"timezone":               parseTimezone,
	"save_debounce":          parseDuration,
	"debug":                  func(s string) (any, error) { return strconv.ParseBool(s) },
	"profile.id":             func(s string) (any, error) { return s, nil },
	"profile.name":           func(s string) (any, error) { return s, nil },
	"profile.email":          func(s string) (any, error) { return s, nil },
	"ai.base_url":            func(s string) (any, error) { return s, nil },
	"ai.model":               func(s string) (any, error) { return s, nil },
	"ai.requests_per_minute": func(s string) (any, error) { return strconv.Atoi(s) },
	"server.addr":            func(s string) (any, error) { return s, nil },
}

func parseTimezone(s string) (any, error) {
	if !utils.ValidateTimezone(s) {
		return nil, fmt.Errorf("unknown timezone %q", s)
	}
	return s, nil
}

func parseDuration(s string) (any, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return nil, err
	}
	if d < 0 {
		return nil, errors.New("duration must not be negative")
	}
	return d.String(), nil
}

type ConfigSetCmd struct {
	Key   string `arg:"" help:"Config key, e.g. timezone or ai.model."`
	Value string `arg:"" help:"New value."`
}

func (c *ConfigSetCmd) Run(ctx *cli.Context) error {
	key := strings.ToLower(c.Key)
	if key == "ai.api_key" {
		return errors.New("store the API key with 'learnai config secret set api-key'")
	}
	parse, ok := settableKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", c.Key)
	}
	value, err := parse(c.Value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if key == "storage" && storage.IsPostgres(c.Value) {
		if _, err := postgres.ValidateConnString(c.Value); err != nil {
			return fmt.Errorf("invalid connection string: %w", err)
		}
	}

	if err := ctx.Loader.Set(key, value); err != nil {
		return err
	}
	ctx.Success("Set %s in %s", key, ctx.Loader.Path())
	return nil
}

type SecretCmd struct {
	Set    SecretSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
	Get    SecretGetCmd    `cmd:"" help:"Show a stored secret, masked."`
	Delete SecretDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
	Status SecretStatusCmd `cmd:"" help:"Check the availability of the OS keyring."`
}

const (
	secretAPIKey     = "api-key"
	secretConnection = "connection-string"
)

func secretAccount(name string) (string, error) {
	switch name {
	case secretAPIKey:
		return constants.KeyringAIUser, nil
	case secretConnection:
		return constants.DefaultKeyringUser, nil
	default:
		return "", fmt.Errorf("unknown secret %q (expected %s or %s)", name, secretAPIKey, secretConnection)
	}
}

// promptSecret reads a secret without echoing it.
var promptSecret = func(title string) (string, error) {
	var value string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return "", cli.ErrCancelled
	}
	return value, err
}

type SecretSetCmd struct {
	Name  string `arg:"" enum:"api-key,connection-string" help:"Secret to store: api-key or connection-string."`
	Value string `arg:"" optional:"" help:"Secret value. Prompted for when omitted."`
}

func (c *SecretSetCmd) Run(ctx *cli.Context) error {
	if _, err := secretAccount(c.Name); err != nil {
		return err
	}
	value := c.Value
	if value == "" {
		var err error
		if value, err = promptSecret("Enter " + c.Name); err != nil {
			return err
		}
	}
	value = strings.TrimSpace(value)

	switch c.Name {
	case secretAPIKey:
		if err := keyring.SetAPIKey(value); err != nil {
			return err
		}
	case secretConnection:
		if !storage.IsPostgres(value) {
			return errors.New("connection string must be a valid PostgreSQL connection string")
		}
		if _, err := postgres.ValidateConnString(value); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("invalid connection string: %w", err)
			}
			ctx.Warn("Connection string contains embedded credentials. It is stored as-is in the encrypted OS keyring.")
		}
		if err := keyring.SetConnectionString(value); err != nil {
			return err
		}
	}
	ctx.Success("Stored %s in the OS keyring", c.Name)
	return nil
}

type SecretGetCmd struct {
	Name string `arg:"" enum:"api-key,connection-string" help:"Secret to show."`
}

func (c *SecretGetCmd) Run(ctx *cli.Context) error {
	account, err := secretAccount(c.Name)
	if err != nil {
		return err
	}
	value, err := keyring.Get(account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring, use 'learnai config secret set %s' to store one", c.Name, c.Name)
		}
		return err
	}
	if c.Name == secretConnection {
		ctx.Println(maskPassword(value))
	} else {
		ctx.Println(maskSecret(value))
	}
	return nil
}

type SecretDeleteCmd struct {
	Name string `arg:"" enum:"api-key,connection-string" help:"Secret to remove."`
}

func (c *SecretDeleteCmd) Run(ctx *cli.Context) error {
	account, err := secretAccount(c.Name)
	if err != nil {
		return err
	}
	if err := keyring.Delete(account); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", c.Name)
		}
		return err
	}
	ctx.Success("Deleted %s from the OS keyring", c.Name)
	return nil
}

type SecretStatusCmd struct{}

func (c *SecretStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Fail("OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.Success("OS keyring is available")
	for _, name := range []string{secretAPIKey, secretConnection} {
		account, _ := secretAccount(name)
		if _, err := keyring.Get(account); err == nil {
			ctx.Success("%s is stored in keyring", name)
		} else {
			ctx.Printf("ℹ No %s stored in keyring\n", name)
		}
	}
	return nil
}

// maskSecret keeps the last four characters of long secrets.
func maskSecret(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 8:
		return "****"
	default:
		return "****" + s[len(s)-4:]
	}
}

// maskPassword hides the password of a PostgreSQL URL or DSN.
func maskPassword(connStr string) string {
	if postgres.IsURL(connStr) {
		idx := strings.Index(connStr, "://")
		rest := connStr[idx+3:]
		at := strings.LastIndex(rest, "@")
		if at == -1 {
			return connStr
		}
		userInfo := rest[:at]
		colon := strings.Index(userInfo, ":")
		if colon == -1 {
			return connStr
		}
		return connStr[:idx+3] + userInfo[:colon] + ":****" + rest[at:]
	}

	fields := strings.Fields(connStr)
	for i, f := range fields {
		if strings.HasPrefix(strings.ToLower(f), "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
