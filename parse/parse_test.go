package parse_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/valveflow/core"
	"github.com/katalvlaran/valveflow/parse"
)

func TestParseExample(t *testing.T) {
	t.Parallel()

	f, err := os.Open("../testdata/example.txt")
	require.NoError(t, err)
	defer f.Close()

	g, err := parse.Parse(f)
	require.NoError(t, err)

	require.Equal(t, 10, g.ValveCount())
	require.Equal(t, 10, g.TunnelCount())

	hh, err := g.Valve("HH")
	require.NoError(t, err)
	require.Equal(t, 22, hh.Flow)

	out, err := g.Tunnels("AA")
	require.NoError(t, err)
	require.Equal(t, []string{"BB", "DD", "II"}, out)
	require.True(t, g.HasTunnel("GG", "HH"), "singular 'tunnel leads to valve' form")
}

func TestParseSkipsBlankLines(t *testing.T) {
	t.Parallel()

	g, err := parse.ParseString("\nValve AA has flow rate=0; tunnel leads to valve BB\n\n" +
		"Valve BB has flow rate=4; tunnel leads to valve AA\n")
	require.NoError(t, err)
	require.Equal(t, 2, g.ValveCount())
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		input string
		want  error
		line  string
	}{
		"garbage": {
			input: "Valve AA has flow rate=0; tunnels lead to valves BB\nnot a valve\n",
			want:  parse.ErrMalformedLine,
			line:  "line 2",
		},
		"negative flow is not matched": {
			input: "Valve AA has flow rate=-3; tunnels lead to valves BB\n",
			want:  parse.ErrMalformedLine,
			line:  "line 1",
		},
		"conflicting flow": {
			input: "Valve AA has flow rate=1; tunnel leads to valve BB\n" +
				"Valve AA has flow rate=2; tunnel leads to valve BB\n",
			want: core.ErrFlowConflict,
			line: "line 2",
		},
		"self loop": {
			input: "Valve AA has flow rate=1; tunnel leads to valve AA\n",
			want:  core.ErrLoopNotAllowed,
			line:  "line 1",
		},
		"empty target": {
			input: "Valve AA has flow rate=1; tunnels lead to valves BB, \n",
			want:  parse.ErrMalformedLine,
			line:  "line 1",
		},
	}
	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := parse.Parse(strings.NewReader(tc.input))
			require.ErrorIs(t, err, tc.want)
			require.Contains(t, err.Error(), tc.line)
		})
	}
}
