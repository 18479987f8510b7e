// Package search explores composite state spaces built on top of a grid.
//
// Two modes share one state/transition abstraction:
//
// Flood mode (Reach, ReachWithin, Flood) expands states from a FIFO
// frontier. A state is finalized the first time it is derived and is never
// expanded again, so cyclic transition graphs (light bouncing between
// mirrors, a guard walking a loop) terminate.
//
// Weighted mode (Dijkstra) pops states in ascending cost order and stops at
// the first goal state popped. Ties are broken by a caller ordering and then
// by insertion sequence, so runs are deterministic.
//
// States are any comparable value. Crucible is the canonical grid key when
// a run-length counter matters, and HeatWalk turns a weighted grid plus a
// RunLimits policy into a Dijkstra transition.
//
// Long simulations whose configuration eventually repeats are shortcut with
// Detector and Simulate: once a fingerprint recurs, the state at any later
// step is the state at Start + (target-Start) mod Period.
package search
