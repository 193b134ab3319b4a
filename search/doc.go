// Package search finds the maximum pressure two agents (a player and an
// elephant) can release from a reduced valve network within a time limit,
// and the simpler single-agent variant.
//
// The dual search is an exhaustive depth-first exploration of State values.
// Each agent carries a busy timer: 0 means idle, 1 means its current trip and
// opening end after the next minute. Transitions by joint timer state:
//
//	(0,0)      both pick distinct destinations; if no pair exists, each
//	           agent alone tries every destination
//	(0,t)      the player picks a destination
//	(t,0)      the elephant picks a destination
//	(1,t)(t,1) one minute passes
//	(t,t')     t,t' > 1 is unreachable and panics with ErrInvalidTimers
//
// A commit credits the valve's whole future pressure immediately and marks it
// open, then advances time only as far as the other agent's timer allows, so
// the two timelines stay interleaved.
//
// Destinations are the non-start valves with positive flow. A destination
// is eligible when it is not the agent's location, not yet open, and
// time + distance + 1 < limit.
//
// The memo table prunes a state when a previously expanded state with the same
// key had strictly more accumulated pressure. PruneExact keys on the open set
// and both agents' position, timer and the elapsed time, which keeps the
// result exact. PruneMask keys on the open set only. It is faster but can
// miss the optimum: on the reference ten-valve network it returns 1705
// where the optimum is 1707.
//
// Complexity: exponential in the number of useful valves (≤ 64, practical
// ≤ ~16); recursion depth is bounded by twice that number.
package search
