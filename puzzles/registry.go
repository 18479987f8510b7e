package puzzles

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrUnknownPuzzle = errors.New("unknown puzzle")
	ErrUnknownPart   = errors.New("unknown part")
	ErrBadParam      = errors.New("bad puzzle parameter")
	ErrDuplicate     = errors.New("puzzle already registered")
)

// Part solves one part of a puzzle. params already include the defaults.
type Part func(ctx context.Context, input string, params Params) (int, error)

// Puzzle is one entry of the dispatch table
type Puzzle struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Year     int    `json:"year"`
	Day      int    `json:"day"`
	Defaults Params `json:"defaults,omitempty"`
	Parts    []Part `json:"-"`
}

// PartCount returns the number of solvable parts
func (p *Puzzle) PartCount() int {
	return len(p.Parts)
}

// Solve runs part (1-based) on input. Caller params override the defaults.
func (p *Puzzle) Solve(ctx context.Context, part int, input string, params Params) (int, error) {
	if part < 1 || part > len(p.Parts) {
		return 0, fmt.Errorf("%w: %s has no part %d", ErrUnknownPart, p.Name, part)
	}
	return p.Parts[part-1](ctx, input, params.With(p.Defaults))
}

// Registry maps puzzle names to puzzles
type Registry struct {
	puzzles map[string]*Puzzle
	mu      sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{puzzles: make(map[string]*Puzzle)}
}

// Register adds p. Names must be unique.
func (r *Registry) Register(p *Puzzle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.puzzles[p.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, p.Name)
	}
	r.puzzles[p.Name] = p
	return nil
}

// Lookup returns the puzzle registered as name
func (r *Registry) Lookup(name string) (*Puzzle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.puzzles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPuzzle, name)
	}
	return p, nil
}

// ByDay returns the puzzle published on the given year and day
func (r *Registry) ByDay(year, day int) (*Puzzle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.puzzles {
		if p.Year == year && p.Day == day {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %d day %d", ErrUnknownPuzzle, year, day)
}

// List returns every puzzle ordered by year and day
func (r *Registry) List() []*Puzzle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Puzzle, 0, len(r.puzzles))
	for _, p := range r.puzzles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Day < out[j].Day
	})
	return out
}
