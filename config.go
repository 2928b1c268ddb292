package goHelper

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Config is the complete Helper configuration. A zero Config is not valid;
// start from DefaultConfig or LoadConfig.
type Config struct {
	App     AppConfig     `toml:"app"`
	Crypto  CryptoConfig  `toml:"crypto"`
	Log     LogConfig     `toml:"log"`
	Session SessionConfig `toml:"session"`
	Views   ViewsConfig   `toml:"views"`
	Metrics MetricsConfig `toml:"metrics"`
}

/*
====================================
APP CONFIG
====================================
*/

// AppConfig holds application-wide values.
type AppConfig struct {
	// BaseURL prefixes every redirect target.
	BaseURL string `toml:"base_url"`
}

/*
====================================
CRYPTO CONFIG
====================================
*/

const (
	CryptoModeCBC  = "cbc"
	CryptoModeGCM  = "gcm"
	CryptoModeNone = "none"
)

// CryptoConfig selects the cipher used by Helper.Encrypt and Helper.Decrypt.
type CryptoConfig struct {
	Mode string `toml:"mode"` // "cbc" (default), "gcm", "none"
	Key  string `toml:"key"`  // 32 bytes
	IV   string `toml:"iv"`   // 16 bytes, cbc only
}

/*
====================================
LOG CONFIG
====================================
*/

// LogConfig controls the log file and the minimum slog level written to it.
type LogConfig struct {
	Path  string `toml:"path"`
	Level string `toml:"level"` // debug, info, warn, error
}

/*
====================================
SESSION CONFIG
====================================
*/

const (
	SessionBackendNone   = "none"
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
	SessionBackendCookie = "cookie"
)

// SessionConfig selects and tunes the session backend.
type SessionConfig struct {
	Backend       string        `toml:"backend"`
	CookieName    string        `toml:"cookie_name"`
	Secret        string        `toml:"secret"`
	Issuer        string        `toml:"issuer"`
	TTL           time.Duration `toml:"ttl"`
	Leeway        time.Duration `toml:"leeway"`
	Secure        bool          `toml:"secure"`
	RedisURL      string        `toml:"redis_url"`
	Prefix        string        `toml:"prefix"`
	JitterEnabled bool          `toml:"jitter_enabled"`
	JitterRange   time.Duration `toml:"jitter_range"`
}

/*
====================================
VIEWS CONFIG
====================================
*/

// ViewsConfig locates page fragments.
type ViewsConfig struct {
	Dir       string `toml:"dir"`
	Extension string `toml:"extension"`
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig toggles the in-process counters.
type MetricsConfig struct {
	Enabled                 bool `toml:"enabled"`
	EnableLatencyHistograms bool `toml:"enable_latency_histograms"`
}

// DefaultConfig returns the defaults. Crypto.Key and Crypto.IV are empty and
// must be supplied before Validate passes.
func DefaultConfig() Config {
	return Config{
		App: AppConfig{
			BaseURL: "http://localhost",
		},
		Crypto: CryptoConfig{
			Mode: CryptoModeCBC,
		},
		Log: LogConfig{
			Path:  "log/app.log",
			Level: "info",
		},
		Session: SessionConfig{
			Backend:    SessionBackendNone,
			CookieName: "helper_session",
			Issuer:     "goHelper",
			TTL:        2 * time.Hour,
			Prefix:     "hs",
		},
		Views: ViewsConfig{
			Dir:       "core/views/",
			Extension: ".html",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	// App
	if c.App.BaseURL != "" {
		u, err := url.Parse(c.App.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.New("App BaseURL must be an absolute URL")
		}
	}

	// Crypto
	switch c.Crypto.Mode {
	case CryptoModeCBC:
		if len(c.Crypto.Key) != 32 {
			return errors.New("Crypto Key must be 32 bytes")
		}
		if len(c.Crypto.IV) != 16 {
			return errors.New("Crypto IV must be 16 bytes")
		}
	case CryptoModeGCM:
		if len(c.Crypto.Key) != 32 {
			return errors.New("Crypto Key must be 32 bytes")
		}
	case CryptoModeNone:
	default:
		return errors.New("Crypto Mode must be 'cbc', 'gcm' or 'none'")
	}

	// Log
	if strings.TrimSpace(c.Log.Path) == "" {
		return errors.New("Log Path must not be empty")
	}
	if _, err := c.slogLevel(); err != nil {
		return errors.New("Log Level must be one of debug, info, warn, error")
	}

	// Session
	switch c.Session.Backend {
	case SessionBackendNone:
	case SessionBackendMemory, SessionBackendRedis, SessionBackendCookie:
		if len(c.Session.Secret) < 32 {
			return errors.New("Session Secret must be at least 32 bytes")
		}
		if c.Session.TTL <= 0 {
			return errors.New("Session TTL must be > 0")
		}
		if c.Session.CookieName == "" {
			return errors.New("Session CookieName must not be empty")
		}
	default:
		return errors.New("Session Backend must be 'none', 'memory', 'redis' or 'cookie'")
	}
	if c.Session.Leeway < 0 || c.Session.Leeway > 2*time.Minute {
		return errors.New("Session Leeway must be between 0 and 2m")
	}
	if c.Session.JitterRange < 0 {
		return errors.New("Session JitterRange must be >= 0")
	}
	if c.Session.JitterRange > time.Duration((math.MaxInt64-1)/2) {
		return errors.New("Session JitterRange is too large")
	}
	if c.Session.JitterEnabled && c.Session.JitterRange <= 0 {
		return errors.New("Session JitterRange must be > 0 when JitterEnabled is true")
	}

	// Views
	if c.Views.Dir == "" {
		return errors.New("Views Dir must not be empty")
	}
	if c.Views.Extension != "" && !strings.HasPrefix(c.Views.Extension, ".") {
		return errors.New("Views Extension must start with '.'")
	}

	// Metrics
	if c.Metrics.EnableLatencyHistograms && !c.Metrics.Enabled {
		return errors.New("Metrics EnableLatencyHistograms requires Metrics Enabled")
	}

	return nil
}

func (c *Config) slogLevel() (slog.Level, error) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(c.Log.Level))
	return lvl, err
}

/*
====================================
LOADING
====================================
*/

// envOverrides lists every environment variable LoadConfig honours. Unset
// variables leave the file or default value in place.
type envOverrides struct {
	BaseURL        string        `env:"HELPER_BASE_URL"`
	CryptoMode     string        `env:"HELPER_CRYPTO_MODE"`
	AESKey         string        `env:"HELPER_AES_KEY"`
	AESIV          string        `env:"HELPER_AES_IV"`
	LogPath        string        `env:"HELPER_LOG_PATH"`
	LogLevel       string        `env:"HELPER_LOG_LEVEL"`
	SessionBackend string        `env:"HELPER_SESSION_BACKEND"`
	SessionSecret  string        `env:"HELPER_SESSION_SECRET"`
	SessionTTL     time.Duration `env:"HELPER_SESSION_TTL"`
	SessionSecure  bool          `env:"HELPER_SESSION_SECURE"`
	RedisURL       string        `env:"HELPER_REDIS_URL"`
	ViewsDir       string        `env:"HELPER_VIEWS_DIR"`
	MetricsEnabled bool          `env:"HELPER_METRICS_ENABLED"`
}

// LoadConfig builds a Config from DefaultConfig, the TOML file at path (when
// path is non-empty), and HELPER_* environment variables, then validates it.
// envFiles are loaded with godotenv first; with none given, a .env file in
// the working directory is used when present.
func LoadConfig(path string, envFiles ...string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %v", ErrConfigLoad, err)
		}
	}

	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return Config{}, fmt.Errorf("%w: %v", ErrConfigLoad, err)
		}
	} else if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfigLoad, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	o := envOverrides{
		BaseURL:        cfg.App.BaseURL,
		CryptoMode:     cfg.Crypto.Mode,
		AESKey:         cfg.Crypto.Key,
		AESIV:          cfg.Crypto.IV,
		LogPath:        cfg.Log.Path,
		LogLevel:       cfg.Log.Level,
		SessionBackend: cfg.Session.Backend,
		SessionSecret:  cfg.Session.Secret,
		SessionTTL:     cfg.Session.TTL,
		SessionSecure:  cfg.Session.Secure,
		RedisURL:       cfg.Session.RedisURL,
		ViewsDir:       cfg.Views.Dir,
		MetricsEnabled: cfg.Metrics.Enabled,
	}
	if err := env.Load(&o, nil); err != nil {
		return err
	}

	cfg.App.BaseURL = o.BaseURL
	cfg.Crypto.Mode = o.CryptoMode
	cfg.Crypto.Key = o.AESKey
	cfg.Crypto.IV = o.AESIV
	cfg.Log.Path = o.LogPath
	cfg.Log.Level = o.LogLevel
	cfg.Session.Backend = o.SessionBackend
	cfg.Session.Secret = o.SessionSecret
	cfg.Session.TTL = o.SessionTTL
	cfg.Session.Secure = o.SessionSecure
	cfg.Session.RedisURL = o.RedisURL
	cfg.Views.Dir = o.ViewsDir
	cfg.Metrics.Enabled = o.MetricsEnabled
	return nil
}
