// SPDX-License-Identifier: MIT
// Package: valveflow/builder
//
// builder.go - deterministic tunnel-network constructors for fixtures,
// property tests and benchmarks.
//
// Model:
//   - A Constructor mutates a fresh *core.Graph using a resolved config.
//   - BuildNetwork applies constructors in order and returns the graph.
//   - Valve IDs come from cfg.idFn(i); index 0 is always the start valve.
//
// Determinism:
//   - Stable valve order (i asc) and a fixed RNG draw order, so a given
//     seed always yields the same network.

package builder

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/valveflow/core"
)

var (
	// ErrTooFewValves indicates a size parameter below its minimum.
	ErrTooFewValves = errors.New("builder: parameter too small")

	// ErrNeedRandSource indicates a stochastic constructor ran without WithSeed/WithRand.
	ErrNeedRandSource = errors.New("builder: rng is required")

	// ErrInvalidFlowRange indicates WithFlowRange got min > max or a negative bound.
	ErrInvalidFlowRange = errors.New("builder: invalid flow range")

	// ErrInvalidProbability indicates a probability outside [0,1].
	ErrInvalidProbability = errors.New("builder: probability out of range")
)

const (
	methodPath          = "Path"
	methodRandomNetwork = "RandomNetwork"

	defaultMinFlow   = 1
	defaultMaxFlow   = 25
	defaultZeroRatio = 0.5
)

// Constructor adds valves and tunnels to g.
type Constructor func(g *core.Graph, cfg config) error

// Option tweaks the builder config.
type Option func(*config)

type config struct {
	idFn      func(int) string
	rng       *rand.Rand
	minFlow   int
	maxFlow   int
	zeroRatio float64
	startFlow int
}

func newConfig(opts ...Option) config {
	cfg := config{
		idFn:      DefaultIDFn,
		minFlow:   defaultMinFlow,
		maxFlow:   defaultMaxFlow,
		zeroRatio: defaultZeroRatio,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// DefaultIDFn names valve i "V00", "V01", ... so that name order equals index order.
func DefaultIDFn(i int) string { return fmt.Sprintf("V%02d", i) }

// WithIDScheme overrides valve naming.
func WithIDScheme(fn func(int) string) Option {
	return func(c *config) { c.idFn = fn }
}

// WithSeed installs a deterministic RNG.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand installs a caller-owned RNG. It is not safe to share across goroutines.
func WithRand(r *rand.Rand) Option {
	return func(c *config) { c.rng = r }
}

// WithFlowRange sets the inclusive flow range for non-zero random valves.
func WithFlowRange(min, max int) Option {
	return func(c *config) { c.minFlow, c.maxFlow = min, max }
}

// WithZeroFlowRatio sets the probability that a random non-start valve has flow 0.
func WithZeroFlowRatio(p float64) Option {
	return func(c *config) { c.zeroRatio = p }
}

// WithStartFlow sets the flow of valve 0 in RandomNetwork (default 0).
func WithStartFlow(flow int) Option {
	return func(c *config) { c.startFlow = flow }
}

// BuildNetwork creates an undirected network and applies cons in order.
func BuildNetwork(opts []Option, cons ...Constructor) (*core.Graph, error) {
	cfg := newConfig(opts...)
	g := core.NewGraph()
	for _, con := range cons {
		if err := con(g, cfg); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Path lays out valves 0..len(flows)-1 in a line with the given flow rates.
func Path(flows ...int) Constructor {
	return func(g *core.Graph, cfg config) error {
		if len(flows) < 1 {
			return fmt.Errorf("%s: n=%d < 1: %w", methodPath, len(flows), ErrTooFewValves)
		}
		for i, f := range flows {
			if err := g.AddValve(cfg.idFn(i), f); err != nil {
				return fmt.Errorf("%s: AddValve(%s): %w", methodPath, cfg.idFn(i), err)
			}
			if i == 0 {
				continue
			}
			if err := g.AddTunnel(cfg.idFn(i-1), cfg.idFn(i)); err != nil {
				return fmt.Errorf("%s: AddTunnel(%d,%d): %w", methodPath, i-1, i, err)
			}
		}

		return nil
	}
}

// RandomNetwork samples a connected network of n valves: a random spanning
// tree (valve i joins a uniformly chosen earlier valve) plus up to extra
// random chords. Valve 0 has flow cfg.startFlow; every other valve is zero-flow with
// probability cfg.zeroRatio and otherwise draws from [minFlow, maxFlow].
func RandomNetwork(n, extra int) Constructor {
	return func(g *core.Graph, cfg config) error {
		if n < 1 {
			return fmt.Errorf("%s: n=%d < 1: %w", methodRandomNetwork, n, ErrTooFewValves)
		}
		if extra < 0 {
			return fmt.Errorf("%s: extra=%d < 0: %w", methodRandomNetwork, extra, ErrTooFewValves)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodRandomNetwork, ErrNeedRandSource)
		}
		if cfg.minFlow < 0 || cfg.minFlow > cfg.maxFlow {
			return fmt.Errorf("%s: [%d,%d]: %w", methodRandomNetwork, cfg.minFlow, cfg.maxFlow, ErrInvalidFlowRange)
		}
		if cfg.zeroRatio < 0 || cfg.zeroRatio > 1 {
			return fmt.Errorf("%s: p=%.3f: %w", methodRandomNetwork, cfg.zeroRatio, ErrInvalidProbability)
		}

		rng := cfg.rng
		for i := 0; i < n; i++ {
			flow := cfg.startFlow
			if i > 0 {
				flow = 0
			}
			if i > 0 && rng.Float64() >= cfg.zeroRatio {
				flow = cfg.minFlow + rng.Intn(cfg.maxFlow-cfg.minFlow+1)
			}
			if err := g.AddValve(cfg.idFn(i), flow); err != nil {
				return fmt.Errorf("%s: AddValve(%s): %w", methodRandomNetwork, cfg.idFn(i), err)
			}
			if i == 0 {
				continue
			}
			parent := rng.Intn(i)
			if err := g.AddTunnel(cfg.idFn(parent), cfg.idFn(i)); err != nil {
				return fmt.Errorf("%s: AddTunnel(%d,%d): %w", methodRandomNetwork, parent, i, err)
			}
		}
		if n < 2 {
			return nil
		}
		for k := 0; k < extra; k++ {
			a, b := rng.Intn(n), rng.Intn(n)
			if a == b {
				continue
			}
			if err := g.AddTunnel(cfg.idFn(a), cfg.idFn(b)); err != nil {
				return fmt.Errorf("%s: AddTunnel(%d,%d): %w", methodRandomNetwork, a, b, err)
			}
		}

		return nil
	}
}
