// Package valveflow finds the most pressure a valve network can release
// before a deadline, for one agent or for two agents working in parallel.
//
// A network is a set of named valves joined by unit-length tunnels. Each
// valve has a flow rate; opening it costs one minute and it then releases
// its rate every remaining minute. Most valves have flow 0 and only matter
// as corridors, so the work happens in two phases:
//
//	parse/   read "Valve XX has flow rate=N; tunnels lead to valves ..." reports
//	core/    thread-safe valve/tunnel graph
//	matrix/  dense uint8 distance matrix + Floyd–Warshall
//	reduce/  project distances onto the start valve + useful valves
//	catalog/ reduced valve names, flow rates and bitmask open sets
//	search/  single- and dual-agent depth-first search with busy timers
//	memo/    pruning tables (plain map or sharded for parallel search)
//	solver/  runs both queries for one network
//	cmd/valveflow/ CLI: solve, reduce
//
// Quick example, the reference network (flow rates in brackets):
//
//	JJ(21)─II─AA─────DD(20)─EE(3)─FF─GG─HH(22)
//	          │      │
//	          BB(13)─CC(2)
//
//	alone, 30 minutes:         1651
//	with an elephant, 26 min:  1707
//
//	go install github.com/katalvlaran/valveflow/cmd/valveflow@latest
package valveflow
