package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/DoyleJ11/volley-rotation-board/internal/engine"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	Addr              string
	Env               string
	LogLevel          string
	DragPolicy        engine.PolicyKind
	CompactBreakpoint float64
}

func Defaults() Config {
	return Config{
		Addr:              ":8080",
		Env:               "production",
		LogLevel:          "info",
		DragPolicy:        engine.PolicySnap,
		CompactBreakpoint: engine.DefaultCompactBreakpoint,
	}
}

// Load reads .env files if present and overlays set variables on the defaults.
// A missing .env is not an error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from any key lookup, e.g. os.LookupEnv or a map in tests.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Defaults()
	var err error

	if v, ok := lookup("ADDR"); ok && strings.TrimSpace(v) != "" {
		cfg.Addr = strings.TrimSpace(v)
	} else if v, ok := lookup("PORT"); ok && strings.TrimSpace(v) != "" {
		cfg.Addr = ":" + strings.TrimSpace(v)
	}
	if v, ok := lookup("APP_ENV"); ok && v != "" {
		cfg.Env = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup("DRAG_POLICY"); ok && v != "" {
		kind := engine.PolicyKind(strings.ToLower(strings.TrimSpace(v)))
		if kind != engine.PolicySnap && kind != engine.PolicyClamp {
			err = multierr.Append(err, fmt.Errorf("DRAG_POLICY: %q is not snap or clamp", v))
		} else {
			cfg.DragPolicy = kind
		}
	}
	if v, ok := lookup("COMPACT_BREAKPOINT"); ok && v != "" {
		bp, perr := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("COMPACT_BREAKPOINT: %w", perr))
		} else {
			cfg.CompactBreakpoint = bp
		}
	}

	return cfg, multierr.Append(err, cfg.Validate())
}

func (c Config) Validate() error {
	var err error
	if c.Addr == "" {
		err = multierr.Append(err, errors.New("ADDR: empty"))
	}
	if c.CompactBreakpoint <= 0 {
		err = multierr.Append(err, fmt.Errorf("COMPACT_BREAKPOINT: must be positive, got %v", c.CompactBreakpoint))
	}
	if _, lerr := zapcore.ParseLevel(c.LogLevel); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("LOG_LEVEL: %w", lerr))
	}
	return err
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}

// NewLogger builds a console logger in development and a JSON logger otherwise.
func NewLogger(c Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc := zap.NewProductionConfig()
	if c.IsDevelopment() {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
