package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/valveflow/config"
	"github.com/katalvlaran/valveflow/reduce"
)

const examplePath = "../../testdata/example.txt"

// execute runs rootCmd in-process with fresh flag state.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	reset(solveCmd.Flags())
	reset(reduceCmd.Flags())

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	return out.String(), errOut.String(), err
}

// answerRow is the start of a solve table row: agents, minutes, pressure.
func answerRow(agents string, minutes, pressure int) string {
	return fmt.Sprintf("│ %-13s │ %7d │ %8d │", agents, minutes, pressure)
}

func TestSolveFile(t *testing.T) {
	out, logs, err := execute(t, "", "solve", "-i", examplePath)
	require.NoError(t, err)
	require.Contains(t, out, answerRow("alone", 30, 1651))
	require.Contains(t, out, answerRow("with elephant", 26, 1707))
	require.Contains(t, logs, "dual query done")
}

func TestSolveStdinWithFlags(t *testing.T) {
	raw, err := os.ReadFile(examplePath)
	require.NoError(t, err)

	out, logs, err := execute(t, string(raw),
		"solve", "--single-limit=10", "--dual-limit=10", "--prune=off", "--workers=2", "--log-level=error")
	require.NoError(t, err)
	require.Contains(t, out, answerRow("alone", 10, 246))
	require.Contains(t, out, answerRow("with elephant", 10, 414))
	require.Empty(t, logs)
}

func TestSolveConfigAndEnvFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "valveflow.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("single_limit: 3\ndual_limit: 20\nlog:\n  format: json\n"), 0o600))
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte(config.EnvDualLimit+"=3\n"), 0o600))

	out, logs, err := execute(t, "", "solve", "-i", examplePath, "--config", cfgPath, "--env-file", envPath)
	require.NoError(t, err)
	require.Contains(t, out, answerRow("alone", 3, 20))
	require.Contains(t, out, answerRow("with elephant", 3, 33), "the .env file overrides the YAML dual_limit")
	require.True(t, strings.HasPrefix(logs, "{"), "json logs expected, got %q", logs)
}

func TestSolveErrors(t *testing.T) {
	_, _, err := execute(t, "", "solve", "-i", examplePath, "--start=ZZ")
	require.ErrorIs(t, err, reduce.ErrStartNotFound)

	_, _, err = execute(t, "", "solve", "-i", examplePath, "--prune=sometimes")
	require.ErrorIs(t, err, config.ErrInvalid)

	_, _, err = execute(t, "", "solve", "-i", filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = execute(t, "Valve AA has flow rate=x", "solve")
	require.Error(t, err)
}

func TestReduceMarkdown(t *testing.T) {
	out, _, err := execute(t, "", "reduce", "-i", examplePath, "--markdown")
	require.NoError(t, err)
	require.Contains(t, out, "| AA | 0 | 0 | 1 | 2 | 1 | 2 | 5 | 2 |")
	require.Contains(t, out, "| HH | 22 | 5 | 6 | 5 | 4 | 3 | 0 | 7 |")
}

func TestReduceTable(t *testing.T) {
	out, _, err := execute(t, "", "reduce", "-i", examplePath)
	require.NoError(t, err)
	for _, name := range []string{"AA", "BB", "CC", "DD", "EE", "HH", "JJ"} {
		require.Contains(t, out, name)
	}
	require.NotContains(t, out, "FF", "zero-flow valves are reduced away")
}
