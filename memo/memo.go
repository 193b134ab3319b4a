// SPDX-License-Identifier: MIT
// Package memo is the pruning oracle of the dual-agent search: it remembers,
// per key, the best accumulated pressure of any fully expanded state.
//
// Protocol (per search state):
//  1. Dominated(key, p): true iff a stored value is strictly greater than p;
//     the caller abandons the state and returns p.
//  2. expand the state.
//  3. Record(key, p): stored = max(stored, p).
//
// Which fields make up a Key is the caller's policy. Keys with Frame left
// zero compare states by open-valve set alone.
package memo

import (
	"sync"

	"github.com/katalvlaran/valveflow/catalog"
)

// Frame is the agent-side part of a key. Agents are interchangeable, so
// callers should store them in a canonical order.
type Frame struct {
	Time    int
	AtA     int
	TimerA  int
	AtB     int
	TimerB  int
	Defined bool
}

// Key identifies a class of comparable states.
type Key struct {
	Open  catalog.Set
	Frame Frame
}

// Table stores best pressures. Record must be an atomic max-update.
type Table interface {
	Dominated(k Key, pressure int) bool
	Record(k Key, pressure int)
	Len() int
}

// Map is a Table for a single goroutine.
type Map struct {
	best map[Key]int
}

// NewMap returns an empty Map.
func NewMap() *Map { return &Map{best: make(map[Key]int)} }

// Dominated implements Table.
func (m *Map) Dominated(k Key, pressure int) bool {
	v, ok := m.best[k]

	return ok && v > pressure
}

// Record implements Table.
func (m *Map) Record(k Key, pressure int) {
	if v, ok := m.best[k]; !ok || pressure > v {
		m.best[k] = pressure
	}
}

// Len implements Table.
func (m *Map) Len() int { return len(m.best) }

// DefaultShards is the shard count used by NewSharded(0).
const DefaultShards = 64

// Sharded is a Table safe for concurrent use. Each shard has its own lock,
// and the read-compare-update in Record runs entirely under it.
type Sharded struct {
	shards []shard
}

type shard struct {
	mu   sync.Mutex
	best map[Key]int
}

// NewSharded returns an empty Sharded table with n shards (DefaultShards if n <= 0).
func NewSharded(n int) *Sharded {
	if n <= 0 {
		n = DefaultShards
	}
	s := &Sharded{shards: make([]shard, n)}
	for i := range s.shards {
		s.shards[i].best = make(map[Key]int)
	}

	return s
}

func (s *Sharded) shardFor(k Key) *shard {
	h := uint64(k.Open)*0x9e3779b97f4a7c15 ^
		uint64(k.Frame.Time)<<40 ^ uint64(k.Frame.AtA)<<32 ^ uint64(k.Frame.AtB)<<24 ^
		uint64(k.Frame.TimerA)<<16 ^ uint64(k.Frame.TimerB)<<8
	h ^= h >> 29

	return &s.shards[h%uint64(len(s.shards))]
}

// Dominated implements Table.
func (s *Sharded) Dominated(k Key, pressure int) bool {
	sh := s.shardFor(k)
	sh.mu.Lock()
	v, ok := sh.best[k]
	sh.mu.Unlock()

	return ok && v > pressure
}

// Record implements Table.
func (s *Sharded) Record(k Key, pressure int) {
	sh := s.shardFor(k)
	sh.mu.Lock()
	if v, ok := sh.best[k]; !ok || pressure > v {
		sh.best[k] = pressure
	}
	sh.mu.Unlock()
}

// Len implements Table.
func (s *Sharded) Len() int {
	n := 0
	for i := range s.shards {
		s.shards[i].mu.Lock()
		n += len(s.shards[i].best)
		s.shards[i].mu.Unlock()
	}

	return n
}
