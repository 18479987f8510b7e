package service

import (
	"context"

	"github.com/SzymonKubica/advent-of-code/runner/config"
	"github.com/SzymonKubica/advent-of-code/runner/runs"
)

// SolverService defines all puzzle-related operations
type SolverService interface {
	// Puzzles
	ListPuzzles(ctx context.Context) ([]*PuzzleInfo, error)
	GetPuzzle(ctx context.Context, name string) (*PuzzleInfo, error)

	// Solving
	Solve(ctx context.Context, req *SolveRequest) (*runs.Run, error)

	// Runs
	ListRuns(ctx context.Context, puzzle string) ([]*runs.Run, error)
	GetRun(ctx context.Context, id string) (*runs.Run, error)
	DeleteRun(ctx context.Context, id string) error

	// Inputs
	ListInputs(ctx context.Context) ([]*config.Input, error)
}

// InputManager resolves input names to text
type InputManager interface {
	Load(name string) (*config.Input, error)
	List() ([]*config.Input, error)
}

// RunManager stores run records
type RunManager interface {
	Record(run *runs.Run) (*runs.Run, error)
	Get(id string) (*runs.Run, error)
	List(puzzle string) []*runs.Run
	Delete(id string) error
}

// Notifier is told about every finished run
type Notifier interface {
	RunCompleted(run *runs.Run)
}
