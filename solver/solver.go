// Package solver answers both pressure queries for one parsed network:
// the player alone over SingleLimit minutes and the player with the
// elephant over DualLimit minutes.
//
// Solve reduces the network once and runs the two queries concurrently;
// each query is tagged with a fresh UUID in the logs.
package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/valveflow/config"
	"github.com/katalvlaran/valveflow/core"
	"github.com/katalvlaran/valveflow/logging"
	"github.com/katalvlaran/valveflow/reduce"
	"github.com/katalvlaran/valveflow/search"
)

const opSolve = "Solve"

// ErrGraphNil is returned when Solve receives a nil graph.
var ErrGraphNil = errors.New("solver: graph is nil")

// Answer is the outcome of one query.
type Answer struct {
	Limit    int
	Pressure int
	Stats    search.Stats
	Elapsed  time.Duration
}

// Report holds both answers for one network.
type Report struct {
	ID     string // query UUID, also logged as "query"
	Start  string
	Valves int // reduced valve count, start included
	Single Answer
	Dual   Answer
}

// Solve validates cfg, reduces g and runs both queries.
// A cancelled ctx is reported before any search starts; a search in
// progress always runs to completion.
func Solve(ctx context.Context, g *core.Graph, cfg config.Config) (Report, error) {
	if g == nil {
		return Report{}, fmt.Errorf("%s: %w", opSolve, ErrGraphNil)
	}
	if err := cfg.Validate(); err != nil {
		return Report{}, fmt.Errorf("%s: %w", opSolve, err)
	}
	policy, _ := cfg.Policy()

	net, err := reduce.Reduce(g, cfg.Start)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", opSolve, err)
	}

	rep := Report{
		ID:     uuid.NewString(),
		Start:  cfg.Start,
		Valves: net.Len(),
	}
	logger := logging.FromContext(ctx).With("query", rep.ID)
	logger.Info("network reduced", "start", cfg.Start, "valves", rep.Valves)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		began := time.Now()
		res := search.Single(net, cfg.SingleLimit)
		rep.Single = Answer{Limit: cfg.SingleLimit, Pressure: res.Pressure, Stats: res.Stats, Elapsed: time.Since(began)}
		logger.Info("single query done", "limit", cfg.SingleLimit, "pressure", res.Pressure, "elapsed", rep.Single.Elapsed)

		return nil
	})
	eg.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		began := time.Now()
		res := search.Dual(net, cfg.DualLimit,
			search.WithPrune(policy),
			search.WithWorkers(cfg.Workers),
			search.WithLogger(logger),
		)
		rep.Dual = Answer{Limit: cfg.DualLimit, Pressure: res.Pressure, Stats: res.Stats, Elapsed: time.Since(began)}
		logger.Info("dual query done",
			"limit", cfg.DualLimit,
			"pressure", res.Pressure,
			"prune", policy.String(),
			"expanded", res.Stats.Expanded,
			"elapsed", rep.Dual.Elapsed,
		)

		return nil
	})
	if err = eg.Wait(); err != nil {
		return Report{}, fmt.Errorf("%s: %w", opSolve, err)
	}

	return rep, nil
}
