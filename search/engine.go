package search

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/valveflow/logging"
	"github.com/katalvlaran/valveflow/matrix"
	"github.com/katalvlaran/valveflow/memo"
	"github.com/katalvlaran/valveflow/reduce"
)

// Engine runs dual-agent searches over one network and time limit.
// The memo table lives as long as the Engine; build a new Engine per query.
type Engine struct {
	net     *reduce.Network
	limit   int
	policy  Policy
	table   memo.Table
	workers int
	logger  *slog.Logger

	dests []int // candidate destinations: reduced indices with flow > 0

	expanded atomic.Int64
	pruned   atomic.Int64
}

// NewEngine prepares a search of net under limit. net must be non-nil and
// limit positive; both are caller preconditions.
func NewEngine(net *reduce.Network, limit int, opts ...Option) *Engine {
	e := &Engine{
		net:    net,
		limit:  limit,
		policy: PruneExact,
		logger: logging.Discard(),
		dests:  net.Catalog.Useful(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.table == nil {
		if e.workers > 1 {
			e.table = memo.NewSharded(0)
		} else {
			e.table = memo.NewMap()
		}
	}

	return e
}

// Initial is the start state: both agents idle at index 0, time 0, nothing open.
func (e *Engine) Initial() State { return State{} }

// Limit returns the time limit.
func (e *Engine) Limit() int { return e.limit }

// Stats returns the work counters so far.
func (e *Engine) Stats() Stats {
	return Stats{
		Expanded: e.expanded.Load(),
		Pruned:   e.pruned.Load(),
		MemoSize: e.table.Len(),
	}
}

// Run searches from Initial and returns the best pressure with stats.
func (e *Engine) Run() Result {
	var best int
	if e.workers > 1 {
		best = e.searchParallel(e.Initial())
	} else {
		best = e.Search(e.Initial())
	}
	res := Result{Pressure: best, Stats: e.Stats()}
	e.logger.Debug("dual search finished",
		"limit", e.limit,
		"policy", e.policy.String(),
		"workers", e.workers,
		"pressure", res.Pressure,
		"expanded", res.Stats.Expanded,
		"pruned", res.Stats.Pruned,
		"memo", res.Stats.MemoSize,
	)

	return res
}

// Dual builds an Engine and runs it.
func Dual(net *reduce.Network, limit int, opts ...Option) Result {
	return NewEngine(net, limit, opts...).Run()
}

// Search returns the best pressure reachable from s.
func (e *Engine) Search(s State) int {
	key, keyed := e.key(s)
	if keyed && e.table.Dominated(key, s.Pressure) {
		e.pruned.Add(1)
		return s.Pressure
	}
	e.expanded.Add(1)

	best := s.Pressure
	e.successors(s, func(next State) {
		if p := e.Search(next); p > best {
			best = p
		}
	})

	if keyed {
		e.table.Record(key, s.Pressure)
	}

	return best
}

// searchParallel fans the root's successors out over an errgroup; the
// subtrees share the memo table.
func (e *Engine) searchParallel(root State) int {
	var children []State
	e.successors(root, func(next State) { children = append(children, next) })
	e.expanded.Add(1)

	results := make([]int, len(children))
	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, child := range children {
		g.Go(func() error {
			results[i] = e.Search(child)
			return nil
		})
	}
	_ = g.Wait()

	best := root.Pressure
	for _, p := range results {
		best = max(best, p)
	}
	if key, keyed := e.key(root); keyed {
		e.table.Record(key, root.Pressure)
	}

	return best
}

// successors calls yield for every state reachable from s in one step.
func (e *Engine) successors(s State, yield func(State)) {
	switch {
	case s.PlayerTimer == 0 && s.ElephantTimer == 0:
		paired := false
		for _, i := range e.dests {
			if !e.canMove(s, s.Player, i) {
				continue
			}
			for _, j := range e.dests {
				if i == j || !e.canMove(s, s.Elephant, j) {
					continue
				}
				paired = true
				yield(e.moveBoth(s, i, j))
			}
		}
		if paired {
			return
		}
		e.playerMoves(s, yield)
		e.elephantMoves(s, yield)
	case s.PlayerTimer == 0:
		e.playerMoves(s, yield)
	case s.ElephantTimer == 0:
		e.elephantMoves(s, yield)
	case s.PlayerTimer == 1 || s.ElephantTimer == 1:
		yield(e.wait(s))
	default:
		panic(fmt.Errorf("timers (%d,%d): %w", s.PlayerTimer, s.ElephantTimer, ErrInvalidTimers))
	}
}

// playerMoves yields one state per eligible destination of the player.
func (e *Engine) playerMoves(s State, yield func(State)) {
	for _, v := range e.dests {
		if e.canMove(s, s.Player, v) {
			yield(e.movePlayer(s, v))
		}
	}
}

// elephantMoves yields one state per eligible destination of the elephant.
func (e *Engine) elephantMoves(s State, yield func(State)) {
	for _, v := range e.dests {
		if e.canMove(s, s.Elephant, v) {
			yield(e.moveElephant(s, v))
		}
	}
}

// key builds the memo key for s under the engine's policy.
func (e *Engine) key(s State) (memo.Key, bool) {
	switch e.policy {
	case PruneOff:
		return memo.Key{}, false
	case PruneMask:
		return memo.Key{Open: s.Open}, true
	}

	a, ta, b, tb := s.Player, s.PlayerTimer, s.Elephant, s.ElephantTimer
	if b < a || (b == a && tb < ta) {
		a, ta, b, tb = b, tb, a, ta
	}

	return memo.Key{
		Open:  s.Open,
		Frame: memo.Frame{Time: s.Time, AtA: a, TimerA: ta, AtB: b, TimerB: tb, Defined: true},
	}, true
}

// distance returns the matrix entry, or -1 for Unreachable.
func (e *Engine) distance(from, to int) int {
	d := e.net.Distances.MustAt(from, to)
	if d == matrix.Unreachable {
		return -1
	}

	return int(d)
}

// canMove reports whether an agent standing at from may commit to to.
func (e *Engine) canMove(s State, from, to int) bool {
	if from == to || s.Open.Has(to) {
		return false
	}
	d := e.distance(from, to)

	return d >= 0 && s.Time+d+1 < e.limit
}

// credit is the pressure valve v releases when its trip ends at arrive.
func (e *Engine) credit(v, arrive int) int {
	return e.net.Catalog.PressureContribution(v, arrive, e.limit)
}

// movePlayer commits the idle player to v and advances time by at most the
// elephant's remaining timer.
func (e *Engine) movePlayer(s State, v int) State {
	cost := e.distance(s.Player, v)
	adv := min(cost, s.ElephantTimer)

	return State{
		Player:        v,
		Elephant:      s.Elephant,
		Time:          s.Time + adv,
		Pressure:      s.Pressure + e.credit(v, s.Time+cost),
		Open:          s.Open.With(v),
		PlayerTimer:   cost - adv + 1,
		ElephantTimer: decTimer(s.ElephantTimer, adv),
	}
}

// moveElephant is movePlayer with the roles swapped.
func (e *Engine) moveElephant(s State, v int) State {
	cost := e.distance(s.Elephant, v)
	adv := min(cost, s.PlayerTimer)

	return State{
		Player:        s.Player,
		Elephant:      v,
		Time:          s.Time + adv,
		Pressure:      s.Pressure + e.credit(v, s.Time+cost),
		Open:          s.Open.With(v),
		PlayerTimer:   decTimer(s.PlayerTimer, adv),
		ElephantTimer: cost - adv + 1,
	}
}

// moveBoth commits both idle agents at once and advances time to the
// earlier trip end.
func (e *Engine) moveBoth(s State, pv, ev int) State {
	pc := e.distance(s.Player, pv)
	ec := e.distance(s.Elephant, ev)
	adv := min(pc, ec)

	return State{
		Player:        pv,
		Elephant:      ev,
		Time:          s.Time + adv,
		Pressure:      s.Pressure + e.credit(pv, s.Time+pc) + e.credit(ev, s.Time+ec),
		Open:          s.Open.With(pv).With(ev),
		PlayerTimer:   pc - adv + 1,
		ElephantTimer: ec - adv + 1,
	}
}

// wait lets one minute pass for both agents.
func (e *Engine) wait(s State) State {
	next := s
	next.Time++
	next.PlayerTimer = decTimer(s.PlayerTimer, 1)
	next.ElephantTimer = decTimer(s.ElephantTimer, 1)

	return next
}

// decTimer subtracts by from t. It panics with ErrTimerUnderflow below zero.
func decTimer(t, by int) int {
	if by > t {
		panic(fmt.Errorf("timer %d minus %d: %w", t, by, ErrTimerUnderflow))
	}

	return t - by
}
