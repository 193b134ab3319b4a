// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Dense square table of small unsigned distances between valves.
//   - Unreachable (255) is the "no path" sentinel; addition saturates at it.
//
// Contract:
//   - Row-major flat storage; At/Set are bounds-checked and return ErrOutOfRange.
//   - MustAt panics instead; it is meant for hot loops whose indices are
//     produced internally and can only be wrong if a caller broke an invariant.

package matrix

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidDimensions is returned for a negative order.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be >= 0")

	// ErrOutOfRange is returned for an index outside [0, n).
	ErrOutOfRange = errors.New("matrix: index out of range")
)

// Distance is a tunnel-step count between two valves.
type Distance uint8

// Unreachable marks the absence of any path.
const Unreachable Distance = math.MaxUint8

// Add returns d+e, saturating at Unreachable.
func (d Distance) Add(e Distance) Distance {
	if d == Unreachable || e == Unreachable {
		return Unreachable
	}
	s := uint16(d) + uint16(e)
	if s >= uint16(Unreachable) {
		return Unreachable
	}

	return Distance(s)
}

// Dense is an n×n distance table.
type Dense struct {
	n    int
	data []Distance
}

// NewDense returns an n×n matrix with 0 on the diagonal and Unreachable elsewhere.
// Complexity: O(n²).
func NewDense(n int) (*Dense, error) {
	if n < 0 {
		return nil, fmt.Errorf("NewDense(%d): %w", n, ErrInvalidDimensions)
	}
	d := &Dense{n: n, data: make([]Distance, n*n)}
	for i := range d.data {
		d.data[i] = Unreachable
	}
	for i := 0; i < n; i++ {
		d.data[i*n+i] = 0
	}

	return d, nil
}

// Order returns n.
func (d *Dense) Order() int { return d.n }

func (d *Dense) inRange(i, j int) bool {
	return i >= 0 && i < d.n && j >= 0 && j < d.n
}

// At returns the distance from i to j.
func (d *Dense) At(i, j int) (Distance, error) {
	if !d.inRange(i, j) {
		return 0, fmt.Errorf("At(%d,%d) on %dx%d: %w", i, j, d.n, d.n, ErrOutOfRange)
	}

	return d.data[i*d.n+j], nil
}

// MustAt is At without the error return. It panics on a bad index.
func (d *Dense) MustAt(i, j int) Distance {
	v, err := d.At(i, j)
	if err != nil {
		panic(err)
	}

	return v
}

// Set writes the distance from i to j.
func (d *Dense) Set(i, j int, v Distance) error {
	if !d.inRange(i, j) {
		return fmt.Errorf("Set(%d,%d) on %dx%d: %w", i, j, d.n, d.n, ErrOutOfRange)
	}
	d.data[i*d.n+j] = v

	return nil
}

// Clone returns an independent copy.
func (d *Dense) Clone() *Dense {
	c := &Dense{n: d.n, data: make([]Distance, len(d.data))}
	copy(c.data, d.data)

	return c
}

// Equal reports whether both matrices have the same order and entries.
func (d *Dense) Equal(o *Dense) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.n != o.n {
		return false
	}
	for i := range d.data {
		if d.data[i] != o.data[i] {
			return false
		}
	}

	return true
}

// Rows returns a [][]Distance copy, handy for printing and structural diffs.
func (d *Dense) Rows() [][]Distance {
	out := make([][]Distance, d.n)
	for i := 0; i < d.n; i++ {
		out[i] = append([]Distance(nil), d.data[i*d.n:(i+1)*d.n]...)
	}

	return out
}

// Project returns the sub-matrix on rows and columns idx, in the order given.
// Complexity: O(k²) for k = len(idx).
func (d *Dense) Project(idx []int) (*Dense, error) {
	for _, i := range idx {
		if i < 0 || i >= d.n {
			return nil, fmt.Errorf("Project: index %d on %dx%d: %w", i, d.n, d.n, ErrOutOfRange)
		}
	}
	k := len(idx)
	p := &Dense{n: k, data: make([]Distance, k*k)}
	for a, i := range idx {
		for b, j := range idx {
			p.data[a*k+b] = d.data[i*d.n+j]
		}
	}

	return p, nil
}

// String renders the matrix one row per line; "-" marks Unreachable.
func (d *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < d.n; i++ {
		for j := 0; j < d.n; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			v := d.data[i*d.n+j]
			if v == Unreachable {
				sb.WriteByte('-')
			} else {
				fmt.Fprintf(&sb, "%d", v)
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
