package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(32<<20), cfg.Server.MaxUploadBytes)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, "./internal/db/migrations", cfg.Database.MigrationsPath)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "schedules_generated", cfg.Kafka.Topic)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "http://localhost:8080", cfg.Client.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
}

func Test_Load_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
kafka:
  brokers: kafka:29092
client:
  timeout: 5s
logging:
  level: debug
`), 0o600))
	t.Setenv("TIMELINE_SERVER_PORT", "9090")
	t.Setenv("TIMELINE_DATABASE_URL", "postgres://u:p@localhost:5432/db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres://u:p@localhost:5432/db", cfg.Database.URL)
	assert.Equal(t, "kafka:29092", cfg.Kafka.Brokers)
	assert.Equal(t, 5*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func Test_Load_Errors(t *testing.T) {
	cases := []struct {
		name     string
		file     func(t *testing.T) string
		expected error
	}{
		{
			name: "explicit file missing",
			file: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.yaml")
			},
			expected: ErrReadConfig,
		},
		{
			name: "unknown log level",
			file: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "timeline.yaml")
				require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o600))
				return path
			},
			expected: ErrInvalidLevel,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(c.file(t))
			assert.ErrorIs(t, err, c.expected)
		})
	}
}

func Test_ParseLevel(t *testing.T) {
	cases := []struct {
		input    string
		expected slog.Level
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "INFO", expected: slog.LevelInfo},
		{input: " warn ", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			level, err := ParseLevel(c.input)
			require.NoError(t, err)
			assert.Equal(t, c.expected, level)
		})
	}
}
