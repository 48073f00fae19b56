package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejzpr/vibeque-hq/internal/queue"
)

// clearEnv blanks every variable Load looks at so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"VIBEQUE_ADDR", "VIBEQUE_SHEET_ID", "VIBEQUE_SHEET_TAB", "VIBEQUE_SOURCE",
		"VIBEQUE_SQLITE_PATH", "VIBEQUE_CREDENTIALS_JSON", "VIBEQUE_CREDENTIALS_FILE",
		"GOOGLE_APPLICATION_CREDENTIALS", "VIBEQUE_CUTOFF", "VIBEQUE_TIMEZONE", "VIBEQUE_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "Requests", cfg.Sheet.Tab)
	assert.Equal(t, "18:30", cfg.Event.Cutoff)
	assert.Equal(t, queue.DefaultFooter, cfg.Display.Footer)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "vibeque.yaml", `
server:
  addr: ":9000"
sheet:
  id: abc123
  tab: "Friday Requests"
credentials:
  file: /secrets/sa.json
event:
  cutoff: "19:15"
  timezone: America/Chicago
columns:
  submitter: ["Guest Name"]
display:
  default_view: cards
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "abc123", cfg.Sheet.ID)
	assert.Equal(t, "Friday Requests", cfg.Sheet.Tab)
	assert.Equal(t, SourceGoogle, cfg.Source.Driver, "unset keys keep their defaults")
	assert.Equal(t, "cards", cfg.Display.DefaultView)

	s, err := cfg.Settings()
	require.NoError(t, err)
	assert.Equal(t, queue.TimeOfDay{Hour: 19, Minute: 15}, s.Cutoff)
	assert.Equal(t, "America/Chicago", s.Location.String())
	assert.Equal(t, []string{"Guest Name"}, s.Aliases[queue.FieldSubmitter])
	assert.Equal(t, []string{"Timestamp"}, s.Aliases[queue.FieldSubmittedAt])
}

func TestLoadBadYAML(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeFile(t, "bad.yaml", "server: [unclosed"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("VIBEQUE_SHEET_ID", "from-env")
	t.Setenv("VIBEQUE_CUTOFF", "18:00")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/gcp/key.json")

	cfg, err := Load(writeFile(t, "vibeque.yaml", "sheet:\n  id: from-file\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Sheet.ID)
	assert.Equal(t, "18:00", cfg.Event.Cutoff)
	assert.Equal(t, "/gcp/key.json", cfg.Credentials.File)

	t.Setenv("VIBEQUE_CREDENTIALS_FILE", "/vibeque/key.json")
	cfg, err = Load(writeFile(t, "vibeque.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, "/vibeque/key.json", cfg.Credentials.File)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv("VIBEQUE_SHEET_TAB"))
	path := writeFile(t, ".env", "VIBEQUE_SHEET_TAB=Saturday\n")

	require.NoError(t, LoadDotEnv(path))
	t.Cleanup(func() { os.Unsetenv("VIBEQUE_SHEET_TAB") })

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Saturday", cfg.Sheet.Tab)

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.Sheet.ID = "abc"
		cfg.Credentials.JSON = `{"type":"service_account"}`
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing sheet id", func(c *Config) { c.Sheet.ID = "" }, "sheet.id"},
		{"missing credentials", func(c *Config) { c.Credentials = CredentialsConfig{} }, "credentials"},
		{"unknown driver", func(c *Config) { c.Source.Driver = "excel" }, "unknown source driver"},
		{"empty tab", func(c *Config) { c.Sheet.Tab = "" }, "sheet.tab"},
		{"bad cutoff", func(c *Config) { c.Event.Cutoff = "half six" }, "event.cutoff"},
		{"bad timezone", func(c *Config) { c.Event.Timezone = "Mars/Olympus" }, "event.timezone"},
		{"unknown column", func(c *Config) { c.Columns = map[string][]string{"tempo": {"BPM"}} }, "unknown field"},
		{"bad view", func(c *Config) { c.Display.DefaultView = "grid" }, "default_view"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateSQLiteNeedsNoCredentials(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source.Driver = SourceSQLite
	assert.NoError(t, cfg.Validate())
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Event.Timezone = "UTC"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}
