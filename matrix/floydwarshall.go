// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Unit-weight adjacency from a tunnel network, and in-place APSP closure.
//
// Contract:
//   - Diagonal is 0, Unreachable means "no path"; distances saturate at Unreachable.

package matrix

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/valveflow/core"
)

const (
	opFromGraph     = "FromGraph"
	opFloydWarshall = "FloydWarshall"
)

var (
	// ErrGraphNil is returned when a nil network is passed in.
	ErrGraphNil = errors.New("matrix: graph is nil")

	// ErrUnknownValve is returned when order names a valve absent from the network.
	ErrUnknownValve = errors.New("matrix: unknown valve id")
)

// FromGraph builds the one-step adjacency matrix of g over the valves in order:
// 0 on the diagonal, 1 for a tunnel, Unreachable otherwise.
//
// order fixes the row/column index of each valve; tunnels to valves outside
// order are ignored.
//
// Complexity: O(V + E).
func FromGraph(g *core.Graph, order []string) (*Dense, error) {
	if g == nil {
		return nil, fmt.Errorf("%s: %w", opFromGraph, ErrGraphNil)
	}
	index := make(map[string]int, len(order))
	for i, id := range order {
		if !g.HasValve(id) {
			return nil, fmt.Errorf("%s: %q: %w", opFromGraph, id, ErrUnknownValve)
		}
		index[id] = i
	}

	d, err := NewDense(len(order))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFromGraph, err)
	}
	for i, id := range order {
		out, err := g.Tunnels(id)
		if err != nil {
			return nil, fmt.Errorf("%s: Tunnels(%q): %w", opFromGraph, id, err)
		}
		for _, to := range out {
			j, ok := index[to]
			if !ok {
				continue
			}
			d.data[i*d.n+j] = 1
		}
	}

	return d, nil
}

// FloydWarshall runs all-pairs shortest-path relaxation on d in place.
//
// Loop order is fixed (k → i → j). Unreachable legs are skipped, so the
// saturating Add never has to manufacture a path.
//
// Complexity: Time O(n³), extra space O(1).
func FloydWarshall(d *Dense) error {
	if d == nil {
		return fmt.Errorf("%s: %w", opFloydWarshall, ErrGraphNil)
	}

	n := d.n
	data := d.data

	var (
		k, i, j      int
		baseK, baseI int
		ik, kj, cand Distance
	)
	for k = 0; k < n; k++ {
		baseK = k * n
		for i = 0; i < n; i++ {
			ik = data[i*n+k]
			if ik == Unreachable {
				continue
			}
			baseI = i * n
			for j = 0; j < n; j++ {
				kj = data[baseK+j]
				if kj == Unreachable {
					continue
				}
				cand = ik.Add(kj)
				if cand < data[baseI+j] {
					data[baseI+j] = cand
				}
			}
		}
	}

	return nil
}
