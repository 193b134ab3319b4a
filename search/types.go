package search

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/katalvlaran/valveflow/catalog"
	"github.com/katalvlaran/valveflow/memo"
)

var (
	// ErrTimerUnderflow is the panic value when a timer would drop below zero.
	ErrTimerUnderflow = errors.New("search: busy timer underflow")

	// ErrInvalidTimers is the panic value for a joint timer state with both timers above one.
	ErrInvalidTimers = errors.New("search: both agents busy for more than one minute")

	// ErrUnknownPolicy is returned by ParsePolicy.
	ErrUnknownPolicy = errors.New("search: unknown prune policy")
)

// Policy selects how the memo table keys states.
type Policy int

const (
	// PruneExact keys on open set, elapsed time and both agents' location and timer.
	PruneExact Policy = iota
	// PruneMask keys on the open set only. Heuristic: may lose the optimum.
	PruneMask
	// PruneOff never consults the memo table.
	PruneOff
)

var policyNames = [...]string{
	PruneExact: "exact",
	PruneMask:  "mask",
	PruneOff:   "off",
}

// String returns the policy name.
func (p Policy) String() string {
	if p < 0 || int(p) >= len(policyNames) {
		return fmt.Sprintf("Policy(%d)", int(p))
	}

	return policyNames[p]
}

// ParsePolicy maps "exact", "mask" or "off" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	for i, name := range policyNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Policy(i), nil
		}
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownPolicy)
}

// State is one node of the dual-agent search. It is a value: transitions
// return a new State.
type State struct {
	Player        int         // player's reduced valve index
	Elephant      int         // elephant's reduced valve index
	Time          int         // elapsed minutes
	Pressure      int         // pressure credited so far, including future flow of opened valves
	Open          catalog.Set // valves committed to opening
	PlayerTimer   int         // minutes until the player is idle
	ElephantTimer int         // minutes until the elephant is idle
}

// Stats counts search work.
type Stats struct {
	Expanded int64 // states expanded
	Pruned   int64 // states abandoned by the memo table
	MemoSize int   // entries in the memo table at the end
}

// Result is the outcome of a top-level query.
type Result struct {
	Pressure int
	Stats    Stats
}

// Option configures an Engine.
type Option func(*Engine)

// WithPrune sets the memo policy (default PruneExact).
func WithPrune(p Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithMemo supplies the memo table. It must be safe for concurrent use when
// combined with WithWorkers(n > 1).
func WithMemo(t memo.Table) Option {
	return func(e *Engine) { e.table = t }
}

// WithWorkers explores the root's branches on up to n goroutines.
// n <= 1 keeps the search on the calling goroutine.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithLogger sets the logger for query summaries (Debug level).
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
