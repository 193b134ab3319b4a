package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/valveflow/solver"
)

var solveFlags struct {
	input       string
	start       string
	singleLimit int
	dualLimit   int
	prune       string
	workers     int
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Report the best pressure alone and with the elephant",
	RunE:  runSolve,
}

func init() {
	f := solveCmd.Flags()
	f.StringVarP(&solveFlags.input, "input", "i", "-", "Valve report file (- for stdin)")
	f.StringVar(&solveFlags.start, "start", "", "Start valve (default AA)")
	f.IntVar(&solveFlags.singleLimit, "single-limit", 0, "Minutes for the player alone (default 30)")
	f.IntVar(&solveFlags.dualLimit, "dual-limit", 0, "Minutes for the player and elephant (default 26)")
	f.StringVar(&solveFlags.prune, "prune", "", "Memo policy: exact, mask or off")
	f.IntVar(&solveFlags.workers, "workers", 0, "Parallel workers for the dual search")
}

func runSolve(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("start") {
		cfg.Start = solveFlags.start
	}
	if f.Changed("single-limit") {
		cfg.SingleLimit = solveFlags.singleLimit
	}
	if f.Changed("dual-limit") {
		cfg.DualLimit = solveFlags.dualLimit
	}
	if f.Changed("prune") {
		cfg.Prune = solveFlags.prune
	}
	if f.Changed("workers") {
		cfg.Workers = solveFlags.workers
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	ctx, err := withLogger(cmd, cfg)
	if err != nil {
		return err
	}
	g, err := readNetwork(cmd, solveFlags.input)
	if err != nil {
		return err
	}
	rep, err := solver.Solve(ctx, g, cfg)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.SetTitle("query " + rep.ID)
	t.AppendHeader(table.Row{"agents", "minutes", "pressure", "expanded", "elapsed"})
	t.AppendRow(table.Row{"alone", rep.Single.Limit, rep.Single.Pressure, rep.Single.Stats.Expanded, rep.Single.Elapsed})
	t.AppendRow(table.Row{"with elephant", rep.Dual.Limit, rep.Dual.Pressure, rep.Dual.Stats.Expanded, rep.Dual.Elapsed})
	t.Render()

	return nil
}
