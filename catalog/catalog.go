// SPDX-License-Identifier: MIT
// Package catalog holds the reduced valve set: the start valve at index 0
// followed by every valve with positive flow, densely re-indexed so that an
// open-valve set fits one machine word.
//
// Catalog lookups sit on the search hot path; a bad index is a programming
// error and panics with ErrIndexOutOfRange rather than returning an error.
package catalog

import (
	"errors"
	"fmt"
	"math/bits"
)

// MaxValves is the widest reduced set a Set can describe.
const MaxValves = 64

var (
	// ErrEmpty is returned when no entries (not even the start valve) are given.
	ErrEmpty = errors.New("catalog: no valves")

	// ErrTooManyValves is returned when more than MaxValves entries are given.
	ErrTooManyValves = errors.New("catalog: too many valves")

	// ErrNegativeFlow is returned for an entry with a flow rate below zero.
	ErrNegativeFlow = errors.New("catalog: negative flow rate")

	// ErrDuplicateName is returned when two entries share a name.
	ErrDuplicateName = errors.New("catalog: duplicate valve name")

	// ErrIndexOutOfRange is the panic value for a bad reduced index.
	ErrIndexOutOfRange = errors.New("catalog: index out of range")

	// ErrNegativeWindow is the panic value when a valve would open at or after the limit.
	ErrNegativeWindow = errors.New("catalog: valve opened after the time limit")
)

// Entry is one reduced valve.
type Entry struct {
	Name string
	Flow int
}

// Catalog is an immutable, indexed list of reduced valves.
type Catalog struct {
	entries []Entry
	index   map[string]int
	useful  []int
}

// New builds a Catalog. entries[0] is the start valve.
func New(entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}
	if len(entries) > MaxValves {
		return nil, fmt.Errorf("%d entries, max %d: %w", len(entries), MaxValves, ErrTooManyValves)
	}

	c := &Catalog{
		entries: make([]Entry, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if e.Flow < 0 {
			return nil, fmt.Errorf("entry %d (%q): %w", i, e.Name, ErrNegativeFlow)
		}
		if _, dup := c.index[e.Name]; dup {
			return nil, fmt.Errorf("entry %d (%q): %w", i, e.Name, ErrDuplicateName)
		}
		c.entries[i] = e
		c.index[e.Name] = i
		if i > 0 && e.Flow > 0 {
			c.useful = append(c.useful, i)
		}
	}

	return c, nil
}

// Len returns the number of reduced valves, start included.
func (c *Catalog) Len() int { return len(c.entries) }

func (c *Catalog) entry(i int) Entry {
	if i < 0 || i >= len(c.entries) {
		panic(fmt.Errorf("index %d of %d: %w", i, len(c.entries), ErrIndexOutOfRange))
	}

	return c.entries[i]
}

// Flow returns the flow rate of valve i.
func (c *Catalog) Flow(i int) int { return c.entry(i).Flow }

// Name returns the original name of valve i.
func (c *Catalog) Name(i int) string { return c.entry(i).Name }

// Index returns the reduced index of name.
func (c *Catalog) Index(name string) (int, bool) {
	i, ok := c.index[name]

	return i, ok
}

// Useful returns the non-start indices with positive flow, ascending. The
// start valve is never a destination, whatever its flow. Callers must not
// modify it.
func (c *Catalog) Useful() []int { return c.useful }

// Entries returns a copy of the catalog contents.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// PressureContribution is the total pressure valve i releases when its
// opening completes at minute openedAt: flow * (limit - openedAt - 1).
// The opening minute itself yields nothing.
func (c *Catalog) PressureContribution(i, openedAt, limit int) int {
	window := limit - openedAt - 1
	if window < 0 {
		panic(fmt.Errorf("valve %d at %d with limit %d: %w", i, openedAt, limit, ErrNegativeWindow))
	}

	return c.Flow(i) * window
}

// Set is a bitmask of reduced valve indices.
type Set uint64

// Has reports whether i is in the set.
func (s Set) Has(i int) bool { return s>>uint(i)&1 == 1 }

// With returns s ∪ {i}.
func (s Set) With(i int) Set { return s | 1<<uint(i) }

// Len returns the number of members.
func (s Set) Len() int { return bits.OnesCount64(uint64(s)) }
