// SPDX-License-Identifier: MIT
// Package reduce collapses a tunnel network into the dense form the search
// runs on: shortest-path distances between the start valve and every valve
// with positive flow, plus the matching valve catalog.
//
// Steps:
//  1. Order all valves: start first, the rest ascending by name.
//  2. Build the unit adjacency matrix and close it with Floyd–Warshall.
//  3. Keep the start valve and every valve with flow > 0, preserving order.
//  4. Project the closed matrix onto the kept rows and columns.
//
// Disconnected valves keep matrix.Unreachable entries; the search never
// selects them because no time limit admits the trip.
//
// Complexity: O(V³) time, O(V²) space for the full closure.
package reduce

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/valveflow/catalog"
	"github.com/katalvlaran/valveflow/core"
	"github.com/katalvlaran/valveflow/matrix"
)

// DefaultStart is the valve both agents start from in the puzzle input.
const DefaultStart = "AA"

const opReduce = "Reduce"

var (
	// ErrGraphNil is returned for a nil network.
	ErrGraphNil = errors.New("reduce: graph is nil")

	// ErrStartNotFound is returned when the start valve is not in the network.
	ErrStartNotFound = errors.New("reduce: start valve not found")

	// ErrTooManyValves is returned when the reduced set does not fit catalog.MaxValves.
	ErrTooManyValves = errors.New("reduce: too many useful valves")
)

// Network is the reduced form of a tunnel network. It is read-only after Reduce.
type Network struct {
	// Distances[i][j] is the tunnel-step count between reduced valves i and j.
	Distances *matrix.Dense

	// Catalog lists the reduced valves; index 0 is the start.
	Catalog *catalog.Catalog
}

// Len returns the number of reduced valves, start included.
func (n *Network) Len() int { return n.Catalog.Len() }

// Distance returns the cost from i to j. It panics on a bad index.
func (n *Network) Distance(i, j int) int { return int(n.Distances.MustAt(i, j)) }

// Reduce builds the Network for g with agents starting at start.
func Reduce(g *core.Graph, start string) (*Network, error) {
	if g == nil {
		return nil, fmt.Errorf("%s: %w", opReduce, ErrGraphNil)
	}
	if !g.HasValve(start) {
		return nil, fmt.Errorf("%s: %q: %w", opReduce, start, ErrStartNotFound)
	}

	order := make([]string, 0, g.ValveCount())
	order = append(order, start)
	for _, id := range g.Valves() {
		if id != start {
			order = append(order, id)
		}
	}

	full, err := matrix.FromGraph(g, order)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opReduce, err)
	}
	if err = matrix.FloydWarshall(full); err != nil {
		return nil, fmt.Errorf("%s: %w", opReduce, err)
	}

	keep := make([]int, 0, len(order))
	entries := make([]catalog.Entry, 0, len(order))
	for i, id := range order {
		v, err := g.Valve(id)
		if err != nil {
			return nil, fmt.Errorf("%s: Valve(%q): %w", opReduce, id, err)
		}
		if i == 0 || v.Flow > 0 {
			keep = append(keep, i)
			entries = append(entries, catalog.Entry{Name: v.ID, Flow: v.Flow})
		}
	}
	if len(keep) > catalog.MaxValves {
		return nil, fmt.Errorf("%s: %d useful valves, max %d: %w",
			opReduce, len(keep), catalog.MaxValves, ErrTooManyValves)
	}

	dist, err := full.Project(keep)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opReduce, err)
	}
	cat, err := catalog.New(entries)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opReduce, err)
	}

	return &Network{Distances: dist, Catalog: cat}, nil
}
