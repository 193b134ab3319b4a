package search_test

import (
	"fmt"
	"log"

	"github.com/katalvlaran/valveflow/parse"
	"github.com/katalvlaran/valveflow/reduce"
	"github.com/katalvlaran/valveflow/search"
)

const report = `Valve AA has flow rate=0; tunnels lead to valves DD, II, BB
Valve BB has flow rate=13; tunnels lead to valves CC, AA
Valve CC has flow rate=2; tunnels lead to valves DD, BB
Valve DD has flow rate=20; tunnels lead to valves CC, AA, EE
Valve EE has flow rate=3; tunnels lead to valves FF, DD
Valve FF has flow rate=0; tunnels lead to valves EE, GG
Valve GG has flow rate=0; tunnels lead to valves FF, HH
Valve HH has flow rate=22; tunnel leads to valve GG
Valve II has flow rate=0; tunnels lead to valves AA, JJ
Valve JJ has flow rate=21; tunnel leads to valve II`

// ExampleDual solves the reference network alone in 30 minutes and with an
// elephant in 26.
func ExampleDual() {
	g, err := parse.ParseString(report)
	if err != nil {
		log.Fatal(err)
	}
	net, err := reduce.Reduce(g, reduce.DefaultStart)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("alone:", search.Single(net, 30).Pressure)
	fmt.Println("with elephant:", search.Dual(net, 26).Pressure)
	// Output:
	// alone: 1651
	// with elephant: 1707
}
