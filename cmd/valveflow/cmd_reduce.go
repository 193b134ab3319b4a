package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/valveflow/matrix"
	"github.com/katalvlaran/valveflow/reduce"
)

var reduceFlags struct {
	input    string
	start    string
	markdown bool
}

var reduceCmd = &cobra.Command{
	Use:   "reduce",
	Short: "Print the reduced valve catalog and distance matrix",
	RunE:  runReduce,
}

func init() {
	f := reduceCmd.Flags()
	f.StringVarP(&reduceFlags.input, "input", "i", "-", "Valve report file (- for stdin)")
	f.StringVar(&reduceFlags.start, "start", "", "Start valve (default AA)")
	f.BoolVar(&reduceFlags.markdown, "markdown", false, "Render as a Markdown table")
}

func runReduce(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("start") {
		cfg.Start = reduceFlags.start
	}

	g, err := readNetwork(cmd, reduceFlags.input)
	if err != nil {
		return err
	}
	net, err := reduce.Reduce(g, cfg.Start)
	if err != nil {
		return err
	}

	entries := net.Catalog.Entries()
	header := table.Row{"valve", "flow"}
	cols := []table.ColumnConfig{{Number: 2, Align: text.AlignRight}}
	for i, e := range entries {
		header = append(header, e.Name)
		cols = append(cols, table.ColumnConfig{Number: i + 3, Align: text.AlignRight})
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	t.SetColumnConfigs(cols)
	for i, row := range net.Distances.Rows() {
		r := table.Row{entries[i].Name, entries[i].Flow}
		for _, d := range row {
			if d == matrix.Unreachable {
				r = append(r, "-")
				continue
			}
			r = append(r, int(d))
		}
		t.AppendRow(r)
	}

	if reduceFlags.markdown {
		t.RenderMarkdown()
		return nil
	}
	t.Render()

	return nil
}
