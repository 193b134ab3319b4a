package search

import (
	"github.com/katalvlaran/valveflow/catalog"
	"github.com/katalvlaran/valveflow/logging"
	"github.com/katalvlaran/valveflow/reduce"
)

// soloState is a node of the single-agent search. Time already includes the
// minute spent opening the current valve.
type soloState struct {
	at       int
	time     int
	pressure int
	open     catalog.Set
}

// Single returns the best pressure one agent starting at index 0 can release
// within limit. The single-agent tree is searched without a memo table.
func Single(net *reduce.Network, limit int) Result {
	e := &Engine{
		net:    net,
		limit:  limit,
		policy: PruneOff,
		logger: logging.Discard(),
		dests:  net.Catalog.Useful(),
	}
	best := e.solo(soloState{})

	return Result{Pressure: best, Stats: Stats{Expanded: e.expanded.Load()}}
}

// solo returns the best pressure reachable from s by one agent.
func (e *Engine) solo(s soloState) int {
	e.expanded.Add(1)

	best := s.pressure
	probe := State{Time: s.time, Open: s.open}
	for _, v := range e.dests {
		if !e.canMove(probe, s.at, v) {
			continue
		}
		cost := e.distance(s.at, v)
		next := soloState{
			at:       v,
			time:     s.time + cost + 1,
			pressure: s.pressure + e.credit(v, s.time+cost),
			open:     s.open.With(v),
		}
		if p := e.solo(next); p > best {
			best = p
		}
	}

	return best
}
