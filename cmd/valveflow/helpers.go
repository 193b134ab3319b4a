package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/valveflow/config"
	"github.com/katalvlaran/valveflow/core"
	"github.com/katalvlaran/valveflow/logging"
	"github.com/katalvlaran/valveflow/parse"
)

// loadConfig layers defaults, --config, --env-file and the environment,
// then the log flags if set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(rootFlags.config)
	if err != nil {
		return cfg, err
	}
	if err = config.ApplyEnv(&cfg, rootFlags.envFile); err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = rootFlags.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = rootFlags.logFormat
	}

	return cfg, nil
}

// withLogger attaches a logger built from cfg to the command context.
// Logs go to stderr so that stdout carries only results.
func withLogger(cmd *cobra.Command, cfg config.Config) (context.Context, error) {
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	return logging.WithLogger(cmd.Context(), logger), nil
}

// readNetwork parses the report at path; "-" reads stdin.
func readNetwork(cmd *cobra.Command, path string) (*core.Graph, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	g, err := parse.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return g, nil
}
