// Package config loads the dashboard configuration from a YAML file, an
// optional .env file and VIBEQUE_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"
	_ "time/tzdata" // event.timezone must resolve in minimal containers

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tejzpr/vibeque-hq/internal/queue"
)

const (
	DefaultPath = "vibeque.yaml"
	DefaultAddr = ":8501"

	SourceGoogle = "google"
	SourceSQLite = "sqlite"
)

// Config holds all dashboard configuration.
type Config struct {
	Server      ServerConfig        `yaml:"server"`
	Sheet       SheetConfig         `yaml:"sheet"`
	Source      SourceConfig        `yaml:"source"`
	Credentials CredentialsConfig   `yaml:"credentials"`
	Event       EventConfig         `yaml:"event"`
	Columns     map[string][]string `yaml:"columns"`
	Display     DisplayConfig       `yaml:"display"`
	Logging     LoggingConfig       `yaml:"logging"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	OpenBrowser bool   `yaml:"open_browser"`
}

// SheetConfig identifies the worksheet holding the requests.
type SheetConfig struct {
	ID  string `yaml:"id"`
	Tab string `yaml:"tab"`
}

// SourceConfig selects where rows come from: the Google Sheets API or a
// local SQLite rehearsal database.
type SourceConfig struct {
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlite_path"`
}

// CredentialsConfig points at a service account key. JSON wins over File.
type CredentialsConfig struct {
	File string `yaml:"file"`
	JSON string `yaml:"json"`
}

type EventConfig struct {
	Cutoff   string `yaml:"cutoff"`   // HH:MM, local to Timezone
	Timezone string `yaml:"timezone"` // IANA name or "Local"
}

type DisplayConfig struct {
	Title       string `yaml:"title"`
	Footer      string `yaml:"footer"`
	DefaultView string `yaml:"default_view"` // table, cards
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: DefaultAddr},
		Sheet:  SheetConfig{Tab: queue.DefaultTab},
		Source: SourceConfig{Driver: SourceGoogle},
		Event: EventConfig{
			Cutoff:   queue.DefaultCutoff.String(),
			Timezone: "Local",
		},
		Display: DisplayConfig{
			Title:       "VibeQue DJ HQ",
			Footer:      queue.DefaultFooter,
			DefaultView: string(queue.DisplayTable),
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// LoadDotEnv loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is
// ignored.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := os.Getenv(k); v != "" {
				*dst = v
				return
			}
		}
	}

	set(&c.Server.Addr, "VIBEQUE_ADDR")
	set(&c.Sheet.ID, "VIBEQUE_SHEET_ID")
	set(&c.Sheet.Tab, "VIBEQUE_SHEET_TAB")
	set(&c.Source.Driver, "VIBEQUE_SOURCE")
	set(&c.Source.SQLitePath, "VIBEQUE_SQLITE_PATH")
	set(&c.Credentials.JSON, "VIBEQUE_CREDENTIALS_JSON")
	set(&c.Credentials.File, "VIBEQUE_CREDENTIALS_FILE")
	if c.Credentials.File == "" {
		set(&c.Credentials.File, "GOOGLE_APPLICATION_CREDENTIALS")
	}
	set(&c.Event.Cutoff, "VIBEQUE_CUTOFF")
	set(&c.Event.Timezone, "VIBEQUE_TIMEZONE")
	set(&c.Logging.Level, "VIBEQUE_LOG_LEVEL")
}

// Validate checks the configuration for the selected source.
func (c *Config) Validate() error {
	switch c.Source.Driver {
	case SourceGoogle:
		if c.Sheet.ID == "" {
			return errors.New("sheet.id is required (or VIBEQUE_SHEET_ID)")
		}
		if c.Credentials.JSON == "" && c.Credentials.File == "" {
			return errors.New("service account credentials are required (credentials.file, VIBEQUE_CREDENTIALS_JSON or GOOGLE_APPLICATION_CREDENTIALS)")
		}
	case SourceSQLite:
	default:
		return fmt.Errorf("unknown source driver %q (want %s or %s)", c.Source.Driver, SourceGoogle, SourceSQLite)
	}

	if c.Sheet.Tab == "" {
		return errors.New("sheet.tab must not be empty")
	}
	if _, err := queue.ParseTimeOfDay(c.Event.Cutoff); err != nil {
		return fmt.Errorf("event.cutoff: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}

	known := queue.SheetFields()
	for name := range c.Columns {
		if !slices.Contains(known, queue.Field(name)) {
			return fmt.Errorf("columns: unknown field %q", name)
		}
	}

	switch queue.DisplayMode(c.Display.DefaultView) {
	case queue.DisplayTable, queue.DisplayCards:
	default:
		return fmt.Errorf("display.default_view must be %q or %q", queue.DisplayTable, queue.DisplayCards)
	}
	return nil
}

// Location resolves event.timezone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Event.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Event.Timezone)
	if err != nil {
		return nil, fmt.Errorf("event.timezone: %w", err)
	}
	return loc, nil
}

// Settings converts the configuration into pipeline settings.
func (c *Config) Settings() (queue.Settings, error) {
	cutoff, err := queue.ParseTimeOfDay(c.Event.Cutoff)
	if err != nil {
		return queue.Settings{}, fmt.Errorf("event.cutoff: %w", err)
	}
	loc, err := c.Location()
	if err != nil {
		return queue.Settings{}, err
	}

	override := make(map[queue.Field][]string, len(c.Columns))
	for name, aliases := range c.Columns {
		override[queue.Field(name)] = aliases
	}

	return queue.Settings{
		SheetID:  c.Sheet.ID,
		Tab:      c.Sheet.Tab,
		Cutoff:   cutoff,
		Location: loc,
		Aliases:  queue.DefaultAliases().Merge(override),
	}, nil
}
