package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/selimozcann/StrengthLens/internal/render"
)

var (
	errInvalidEndpoint   = errors.New("config: endpoint must be an absolute http(s) URL")
	errInvalidDuration   = errors.New("config: durations must be greater than zero")
	errRetriesOutOfRange = errors.New("config: retries must be 0-5")
)

// Config holds all application configuration.
type Config struct {
	Endpoint string        `yaml:"endpoint"`
	LogLevel string        `yaml:"log_level"`
	Debounce time.Duration `yaml:"debounce"`
	Timeout  time.Duration `yaml:"timeout"`
	Retries  int           `yaml:"retries"`
	Animate  bool          `yaml:"animate"`

	Animation AnimationConfig `yaml:"animation"`
}

// AnimationConfig holds the panel timings.
type AnimationConfig struct {
	RevealTick  time.Duration `yaml:"reveal_tick"`
	StaggerStep time.Duration `yaml:"stagger_step"`
	Enter       time.Duration `yaml:"enter"`
	Exit        time.Duration `yaml:"exit"`
}

// Default returns the built-in configuration.
func Default() Config {
	opts := render.DefaultOptions()
	return Config{
		Endpoint: "http://localhost:5000/analyze",
		LogLevel: "ERROR",
		Debounce: 300 * time.Millisecond,
		Timeout:  10 * time.Second,
		Retries:  1,
		Animate:  true,
		Animation: AnimationConfig{
			RevealTick:  opts.RevealTick,
			StaggerStep: opts.StaggerStep,
			Enter:       opts.EnterDuration,
			Exit:        opts.ExitDuration,
		},
	}
}

// Load layers a .env file, an optional YAML file at path and environment
// variables over the defaults. The result is not validated; callers apply
// their own overrides first and then call Validate.
func Load(path string) (Config, error) {
	// A missing .env is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Default(), fmt.Errorf("config: load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.Endpoint = getEnv("STRENGTHLENS_ENDPOINT", cfg.Endpoint)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Debounce = getEnvAsDuration("STRENGTHLENS_DEBOUNCE", cfg.Debounce)
	cfg.Timeout = getEnvAsDuration("STRENGTHLENS_TIMEOUT", cfg.Timeout)
	cfg.Retries = getEnvAsInt("STRENGTHLENS_RETRIES", cfg.Retries)
	cfg.Animate = getEnvAsBool("STRENGTHLENS_ANIMATE", cfg.Animate)

	return cfg, nil
}

// Validate checks the configuration for values the client cannot run with.
func (c Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", errInvalidEndpoint, c.Endpoint)
	}

	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"debounce", c.Debounce},
		{"timeout", c.Timeout},
		{"reveal_tick", c.Animation.RevealTick},
		{"stagger_step", c.Animation.StaggerStep},
		{"enter", c.Animation.Enter},
		{"exit", c.Animation.Exit},
	} {
		if d.value <= 0 {
			return fmt.Errorf("%w: %s=%s", errInvalidDuration, d.name, d.value)
		}
	}

	if c.Retries < 0 || c.Retries > 5 {
		return fmt.Errorf("%w: got %d", errRetriesOutOfRange, c.Retries)
	}

	return nil
}

// RenderOptions converts the animation settings for the renderer.
func (c Config) RenderOptions() render.Options {
	opts := render.DefaultOptions()
	opts.Animate = c.Animate
	opts.RevealTick = c.Animation.RevealTick
	opts.StaggerStep = c.Animation.StaggerStep
	opts.EnterDuration = c.Animation.Enter
	opts.ExitDuration = c.Animation.Exit
	return opts
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsBool(key string, fallback bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return v
}
