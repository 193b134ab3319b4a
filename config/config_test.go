package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/valveflow/config"
	"github.com/katalvlaran/valveflow/search"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, config.Default(), cfg)

	p, err := cfg.Policy()
	require.NoError(t, err)
	require.Equal(t, search.PruneExact, p)
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "valveflow.yaml", `
start: BB
dual_limit: 20
prune: mask
workers: 4
log:
  level: debug
  format: json
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	want := config.Default()
	want.Start = "BB"
	want.DualLimit = 20
	want.Prune = "mask"
	want.Workers = 4
	want.Log = config.LogConfig{Level: "debug", Format: "json"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("Load mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, cfg.Validate())
}

func TestLoadEmptyFile(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	_, err := config.Load(writeFile(t, "bad.yaml", "limit: 30\n"))
	require.Error(t, err)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// Not parallel: mutates the process environment.
func TestApplyEnv(t *testing.T) {
	envFile := writeFile(t, ".env", "VALVEFLOW_START=CC\nVALVEFLOW_DUAL_LIMIT=12\nVALVEFLOW_WORKERS=2\n")
	t.Setenv(config.EnvDualLimit, "14")
	t.Setenv(config.EnvPrune, "off")

	cfg := config.Default()
	require.NoError(t, config.ApplyEnv(&cfg, envFile))

	require.Equal(t, "CC", cfg.Start)
	require.Equal(t, 14, cfg.DualLimit, "process environment beats the .env file")
	require.Equal(t, 2, cfg.Workers)
	require.Equal(t, "off", cfg.Prune)
	require.Equal(t, 30, cfg.SingleLimit)

	t.Setenv(config.EnvWorkers, "many")
	require.Error(t, config.ApplyEnv(&cfg, ""))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := map[string]func(*config.Config){
		"empty start":   func(c *config.Config) { c.Start = "" },
		"zero single":   func(c *config.Config) { c.SingleLimit = 0 },
		"negative dual": func(c *config.Config) { c.DualLimit = -1 },
		"no workers":    func(c *config.Config) { c.Workers = 0 },
		"bad prune":     func(c *config.Config) { c.Prune = "fast" },
		"bad level":     func(c *config.Config) { c.Log.Level = "loud" },
		"bad format":    func(c *config.Config) { c.Log.Format = "xml" },
	}
	for name, mutate := range cases {
		cfg := config.Default()
		mutate(&cfg)
		require.ErrorIs(t, cfg.Validate(), config.ErrInvalid, name)
	}
}
