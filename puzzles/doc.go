// Package puzzles is the dispatch table of puzzle families.
//
// Every family lives in its own subpackage and only composes the grid model
// with the search engine. This package adapts the families to a common Part
// signature and carries the named parameters a family needs, e.g. the
// garden walk length or the number of spin cycles.
//
// The puzzles package implements:
//   - Registry with lookup by name or by year and day
//   - Params with converting accessors
//   - Builtin, the registry of every family
package puzzles
