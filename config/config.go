// Package config loads valveflow settings: defaults, then an optional YAML
// file, then an optional .env file, then VALVEFLOW_* environment variables.
// Later sources win.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/valveflow/logging"
	"github.com/katalvlaran/valveflow/search"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Environment variable names.
const (
	EnvStart       = "VALVEFLOW_START"
	EnvSingleLimit = "VALVEFLOW_SINGLE_LIMIT"
	EnvDualLimit   = "VALVEFLOW_DUAL_LIMIT"
	EnvPrune       = "VALVEFLOW_PRUNE"
	EnvWorkers     = "VALVEFLOW_WORKERS"
	EnvLogLevel    = "VALVEFLOW_LOG_LEVEL"
	EnvLogFormat   = "VALVEFLOW_LOG_FORMAT"
)

// Config is the full set of knobs.
type Config struct {
	Start       string    `yaml:"start"`
	SingleLimit int       `yaml:"single_limit"`
	DualLimit   int       `yaml:"dual_limit"`
	Prune       string    `yaml:"prune"`
	Workers     int       `yaml:"workers"`
	Log         LogConfig `yaml:"log"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the puzzle defaults: start at AA, 30 minutes alone,
// 26 minutes with the elephant, exact pruning, serial search.
func Default() Config {
	return Config{
		Start:       "AA",
		SingleLimit: 30,
		DualLimit:   26,
		Prune:       search.PruneExact.String(),
		Workers:     1,
		Log:         LogConfig{Level: "info", Format: logging.FormatText},
	}
}

// Load returns Default overlaid with the YAML file at path. An empty path
// returns the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overlays variables from envFile (if non-empty) and then from the
// process environment onto c.
func ApplyEnv(c *Config, envFile string) error {
	vars := map[string]string{}
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil {
			return fmt.Errorf("config: read %s: %w", envFile, err)
		}
		vars = fileVars
	}
	for _, k := range []string{EnvStart, EnvSingleLimit, EnvDualLimit, EnvPrune, EnvWorkers, EnvLogLevel, EnvLogFormat} {
		if v, ok := os.LookupEnv(k); ok {
			vars[k] = v
		}
	}

	return apply(c, vars)
}

func apply(c *Config, vars map[string]string) error {
	if v, ok := vars[EnvStart]; ok {
		c.Start = v
	}
	if v, ok := vars[EnvPrune]; ok {
		c.Prune = v
	}
	if v, ok := vars[EnvLogLevel]; ok {
		c.Log.Level = v
	}
	if v, ok := vars[EnvLogFormat]; ok {
		c.Log.Format = v
	}
	for k, dst := range map[string]*int{
		EnvSingleLimit: &c.SingleLimit,
		EnvDualLimit:   &c.DualLimit,
		EnvWorkers:     &c.Workers,
	} {
		v, ok := vars[k]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", k, v, err)
		}
		*dst = n
	}

	return nil
}

// Validate checks the preconditions the search relies on.
func (c Config) Validate() error {
	if c.Start == "" {
		return fmt.Errorf("%w: start valve is empty", ErrInvalid)
	}
	if c.SingleLimit <= 0 {
		return fmt.Errorf("%w: single_limit %d must be positive", ErrInvalid, c.SingleLimit)
	}
	if c.DualLimit <= 0 {
		return fmt.Errorf("%w: dual_limit %d must be positive", ErrInvalid, c.DualLimit)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers %d must be at least 1", ErrInvalid, c.Workers)
	}
	if _, err := c.Policy(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Log.Format != logging.FormatText && c.Log.Format != logging.FormatJSON {
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format)
	}

	return nil
}

// Policy parses the prune setting.
func (c Config) Policy() (search.Policy, error) {
	return search.ParsePolicy(c.Prune)
}
