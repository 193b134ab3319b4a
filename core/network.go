// SPDX-License-Identifier: MIT
// Package core defines the tunnel network: valves (vertices carrying a flow
// rate) joined by unit-length tunnels (edges).
//
// All APIs are safe for concurrent use. muValve guards the valve catalog,
// muTunnel guards the adjacency sets; the two are never held together.
//
// Errors:
//
//	ErrEmptyValveID   - valve ID is the empty string.
//	ErrValveNotFound  - requested valve does not exist.
//	ErrNegativeFlow   - a flow rate below zero was supplied.
//	ErrFlowConflict   - a valve was re-declared with a different flow rate.
//	ErrLoopNotAllowed - tunnel from a valve to itself.
package core

import (
	"errors"
	"sort"
	"sync"
)

// Sentinel errors for network operations.
var (
	// ErrEmptyValveID indicates that the provided valve ID is empty.
	ErrEmptyValveID = errors.New("core: valve ID is empty")

	// ErrValveNotFound indicates an operation referenced a non-existent valve.
	ErrValveNotFound = errors.New("core: valve not found")

	// ErrNegativeFlow indicates a negative flow rate.
	ErrNegativeFlow = errors.New("core: negative flow rate")

	// ErrFlowConflict indicates AddValve was called twice for the same ID with different flows.
	ErrFlowConflict = errors.New("core: conflicting flow rate for valve")

	// ErrLoopNotAllowed indicates a tunnel from a valve back to itself.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")
)

// Valve is a node of the tunnel network.
type Valve struct {
	// ID is the unique name of the valve ("AA", "BB", ...).
	ID string

	// Flow is the pressure released per minute once the valve is open.
	Flow int
}

// GraphOption configures a Graph before creation.
type GraphOption func(g *Graph)

// WithDirected makes tunnels one-way (from → to). The default is undirected,
// which matches the puzzle input where every tunnel is listed from both ends.
func WithDirected(directed bool) GraphOption {
	return func(g *Graph) { g.directed = directed }
}

// Graph is the in-memory tunnel network.
type Graph struct {
	muValve  sync.RWMutex // guards valves
	muTunnel sync.RWMutex // guards tunnels

	directed bool

	valves  map[string]*Valve
	tunnels map[string]map[string]struct{} // from → set(to)
}

// NewGraph creates an empty, undirected network.
// Complexity: O(len(opts)).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		valves:  make(map[string]*Valve),
		tunnels: make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Directed reports whether tunnels are one-way.
func (g *Graph) Directed() bool {
	g.muValve.RLock()
	defer g.muValve.RUnlock()

	return g.directed
}

// AddValve registers a valve with the given flow rate.
//
// Re-adding an existing valve with the same flow is a no-op; a different flow
// returns ErrFlowConflict. Valves created implicitly by AddTunnel carry flow 0
// until they are declared, and declaring them then is allowed once.
//
// Complexity: O(1).
func (g *Graph) AddValve(id string, flow int) error {
	if id == "" {
		return ErrEmptyValveID
	}
	if flow < 0 {
		return ErrNegativeFlow
	}

	g.muValve.Lock()
	v, ok := g.valves[id]
	switch {
	case !ok:
		g.valves[id] = &Valve{ID: id, Flow: flow}
	case v.Flow == flow:
		// idempotent
	case v.Flow == 0:
		v.Flow = flow
	default:
		g.muValve.Unlock()
		return ErrFlowConflict
	}
	g.muValve.Unlock()

	g.muTunnel.Lock()
	g.tunnelSet(id)
	g.muTunnel.Unlock()

	return nil
}

// AddTunnel joins two valves with a unit-length tunnel. Missing endpoints are
// created with flow 0. Adding an existing tunnel is a no-op.
//
// Complexity: O(1).
func (g *Graph) AddTunnel(from, to string) error {
	if from == "" || to == "" {
		return ErrEmptyValveID
	}
	if from == to {
		return ErrLoopNotAllowed
	}
	if err := g.ensureValve(from); err != nil {
		return err
	}
	if err := g.ensureValve(to); err != nil {
		return err
	}

	directed := g.Directed()

	g.muTunnel.Lock()
	defer g.muTunnel.Unlock()

	g.tunnelSet(from)[to] = struct{}{}
	if !directed {
		g.tunnelSet(to)[from] = struct{}{}
	}

	return nil
}

// tunnelSet returns the outgoing set of id, creating it if needed.
// Caller must hold muTunnel for writing.
func (g *Graph) tunnelSet(id string) map[string]struct{} {
	set, ok := g.tunnels[id]
	if !ok {
		set = make(map[string]struct{})
		g.tunnels[id] = set
	}

	return set
}

// ensureValve creates id with flow 0 if it is not yet known.
func (g *Graph) ensureValve(id string) error {
	g.muValve.RLock()
	_, ok := g.valves[id]
	g.muValve.RUnlock()
	if ok {
		return nil
	}

	return g.AddValve(id, 0)
}

// HasValve reports whether id is part of the network.
func (g *Graph) HasValve(id string) bool {
	g.muValve.RLock()
	defer g.muValve.RUnlock()

	_, ok := g.valves[id]

	return ok
}

// Valve returns a copy of the valve registered under id.
func (g *Graph) Valve(id string) (Valve, error) {
	g.muValve.RLock()
	defer g.muValve.RUnlock()

	v, ok := g.valves[id]
	if !ok {
		return Valve{}, ErrValveNotFound
	}

	return *v, nil
}

// Valves returns all valve IDs sorted lexicographically ascending.
// Complexity: O(V log V).
func (g *Graph) Valves() []string {
	g.muValve.RLock()
	ids := make([]string, 0, len(g.valves))
	for id := range g.valves {
		ids = append(ids, id)
	}
	g.muValve.RUnlock()

	sort.Strings(ids)

	return ids
}

// ValveCount returns the number of valves.
func (g *Graph) ValveCount() int {
	g.muValve.RLock()
	defer g.muValve.RUnlock()

	return len(g.valves)
}

// Tunnels returns the IDs reachable from id through one tunnel, sorted ascending.
func (g *Graph) Tunnels(id string) ([]string, error) {
	g.muTunnel.RLock()
	defer g.muTunnel.RUnlock()

	out, ok := g.tunnels[id]
	if !ok {
		return nil, ErrValveNotFound
	}
	ids := make([]string, 0, len(out))
	for to := range out {
		ids = append(ids, to)
	}
	sort.Strings(ids)

	return ids, nil
}

// HasTunnel reports whether a tunnel leads from → to.
func (g *Graph) HasTunnel(from, to string) bool {
	g.muTunnel.RLock()
	defer g.muTunnel.RUnlock()

	_, ok := g.tunnels[from][to]

	return ok
}

// TunnelCount returns the number of tunnels. Undirected tunnels count once.
func (g *Graph) TunnelCount() int {
	g.muTunnel.RLock()
	defer g.muTunnel.RUnlock()

	n := 0
	for _, out := range g.tunnels {
		n += len(out)
	}
	if !g.directed {
		n /= 2
	}

	return n
}

// Clone returns a deep copy of the network.
// Complexity: O(V+E).
func (g *Graph) Clone() *Graph {
	c := NewGraph(WithDirected(g.Directed()))

	g.muValve.RLock()
	for id, v := range g.valves {
		c.valves[id] = &Valve{ID: v.ID, Flow: v.Flow}
	}
	g.muValve.RUnlock()

	g.muTunnel.RLock()
	for from, out := range g.tunnels {
		set := make(map[string]struct{}, len(out))
		for to := range out {
			set[to] = struct{}{}
		}
		c.tunnels[from] = set
	}
	g.muTunnel.RUnlock()

	return c
}
