package search

import (
	"errors"
	"fmt"

	"github.com/SzymonKubica/advent-of-code/grid"
)

var (
	ErrEmptyGrid        = errors.New("empty grid")
	ErrStartOutOfBounds = errors.New("start out of bounds")
	ErrGoalOutOfBounds  = errors.New("goal out of bounds")
	ErrGoalUnreachable  = errors.New("goal unreachable from start")
	ErrNoStart          = errors.New("no start state")
)

// ConfigError reports a search that cannot run (or cannot reach its goal)
// because of how it was set up
type ConfigError struct {
	Err   error
	Point *grid.Point
}

func (e *ConfigError) Error() string {
	if e.Point != nil {
		return fmt.Sprintf("search configuration: %v at %v", e.Err, *e.Point)
	}
	return fmt.Sprintf("search configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configError(err error, p *grid.Point) error {
	return &ConfigError{Err: err, Point: p}
}

// CheckGrid fails fast when a grid of the given size cannot host a search
// from starts to goals
func CheckGrid(width, height int, starts []grid.Point, goals ...grid.Point) error {
	if width <= 0 || height <= 0 {
		return configError(ErrEmptyGrid, nil)
	}
	if len(starts) == 0 {
		return configError(ErrNoStart, nil)
	}
	inside := func(p grid.Point) bool {
		return p.X >= 0 && p.Y >= 0 && p.X < width && p.Y < height
	}
	for _, p := range starts {
		if !inside(p) {
			return configError(ErrStartOutOfBounds, &p)
		}
	}
	for _, p := range goals {
		if !inside(p) {
			return configError(ErrGoalOutOfBounds, &p)
		}
	}
	return nil
}
