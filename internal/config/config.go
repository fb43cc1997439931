package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "TIMELINE"

var (
	ErrReadConfig   = errors.New("error reading config file")
	ErrDecode       = errors.New("error decoding config")
	ErrLoadDotEnv   = errors.New("error loading .env file")
	ErrInvalidLevel = errors.New("invalid log level")
)

type Config struct {
	Server struct {
		Port           int   `mapstructure:"port"`
		MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
	} `mapstructure:"server"`
	Database struct {
		URL            string `mapstructure:"url"`
		MigrationsPath string `mapstructure:"migrations_path"`
	} `mapstructure:"database"`
	Kafka struct {
		Brokers string `mapstructure:"brokers"`
		Topic   string `mapstructure:"topic"`
	} `mapstructure:"kafka"`
	Logging struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logging"`
	Client struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"client"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_upload_bytes", 32<<20)
	v.SetDefault("database.url", "")
	v.SetDefault("database.migrations_path", "./internal/db/migrations")
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", "schedules_generated")
	v.SetDefault("logging.level", "info")
	v.SetDefault("client.base_url", "http://localhost:8080")
	v.SetDefault("client.timeout", 30*time.Second)
}

// Load reads defaults, then an optional YAML file, then TIMELINE_* environment
// variables. A .env file in the working directory is applied to the
// environment first. An explicit cfgFile must exist.
func Load(cfgFile string) (*Config, error) {
	const fn = "Config:Load"

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrLoadDotEnv, err)
	}

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%s:%w:%w", fn, ErrReadConfig, err)
		}
		slog.Debug("No config file found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrDecode, err)
	}
	if _, err := ParseLevel(cfg.Logging.Level); err != nil {
		return nil, fmt.Errorf("%s:%w", fn, err)
	}
	return &cfg, nil
}

// ParseLevel maps debug|info|warn|error, in any case, to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return level, nil
}
