package runs

import (
	"time"

	"github.com/SzymonKubica/advent-of-code/puzzles"
)

// Run is one solve request and its outcome
type Run struct {
	ID         string         `json:"id"`
	Puzzle     string         `json:"puzzle"`
	Part       int            `json:"part"`
	Input      string         `json:"input"`
	Params     puzzles.Params `json:"params,omitempty"`
	Answer     int            `json:"answer"`
	Error      string         `json:"error,omitempty"`
	Cached     bool           `json:"cached"`
	Duration   time.Duration  `json:"duration_ns"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

// Failed reports whether the run ended with an error
func (r *Run) Failed() bool {
	return r.Error != ""
}
