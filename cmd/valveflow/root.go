// valveflow computes the maximum pressure released from a valve network,
// alone and with an elephant.
//
// Usage:
//
//	valveflow solve  [-i <report>] [--single-limit=30] [--dual-limit=26] [--prune=exact] [--workers=1]
//	valveflow reduce [-i <report>] [--markdown]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	config    string
	envFile   string
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "valveflow",
	Short: "Maximum pressure release for a valve network",
	Long: "valveflow reads a valve report, reduces it to the valves worth opening\n" +
		"and searches for the best opening schedule for one or two agents.",
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.config, "config", "", "YAML config file")
	pf.StringVar(&rootFlags.envFile, "env-file", "", ".env file with VALVEFLOW_* overrides")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "", "text or json")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(reduceCmd)
	rootCmd.Version = version
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
