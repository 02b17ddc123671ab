package cookiekit

import (
	"log/slog"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config holds client defaults read from the environment.
type Config struct {
	Timeout   time.Duration `env:"COOKIEKIT_TIMEOUT" envDefault:"60s"`
	LogFormat string        `env:"COOKIEKIT_LOG_FORMAT" envDefault:"text"`
	LogLevel  slog.Level    `env:"COOKIEKIT_LOG_LEVEL" envDefault:"INFO"`
}

var (
	defaultConfig   = Config{Timeout: 60 * time.Second, LogFormat: FormatText, LogLevel: slog.LevelInfo}
	defaultConfigMu sync.RWMutex
	dotenvOnce      sync.Once
)

// LoadConfig parses the environment (and a .env file, if present) into a Config.
func LoadConfig() (Config, error) {
	dotenvOnce.Do(func() {
		// missing .env is fine
		_ = godotenv.Load()
	})
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse cookiekit config")
	}
	if cfg.Timeout <= 0 {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "timeout must be positive, got %s", cfg.Timeout)
	}
	switch cfg.LogFormat {
	case FormatText, FormatJSON:
	default:
		return Config{}, errors.Wrapf(ErrInvalidConfig, "log format %q", cfg.LogFormat)
	}
	return cfg, nil
}

// SetDefaultConfig replaces the defaults used by new clients and rebuilds the package logger.
func SetDefaultConfig(cfg Config) {
	defaultConfigMu.Lock()
	defaultConfig = cfg
	defaultConfigMu.Unlock()
	SetLogger(NewLogger(cfg.LogFormat, cfg.LogLevel, nil))
}

func currentConfig() Config {
	defaultConfigMu.RLock()
	defer defaultConfigMu.RUnlock()
	return defaultConfig
}
