package service

import (
	"github.com/SzymonKubica/advent-of-code/puzzles"
)

// PuzzleInfo describes a registered puzzle
type PuzzleInfo struct {
	Name     string         `json:"name"`
	Title    string         `json:"title"`
	Year     int            `json:"year"`
	Day      int            `json:"day"`
	Parts    int            `json:"parts"`
	Defaults puzzles.Params `json:"defaults,omitempty"`
}

func newPuzzleInfo(p *puzzles.Puzzle) *PuzzleInfo {
	return &PuzzleInfo{
		Name:     p.Name,
		Title:    p.Title,
		Year:     p.Year,
		Day:      p.Day,
		Parts:    p.PartCount(),
		Defaults: p.Defaults,
	}
}

// SolveRequest asks for one part of one puzzle. Text, when set, is solved
// directly; otherwise the input called Input (default: the puzzle name) is
// loaded.
type SolveRequest struct {
	Puzzle  string         `json:"puzzle"`
	Part    int            `json:"part"`
	Input   string         `json:"input,omitempty"`
	Text    string         `json:"text,omitempty"`
	Params  puzzles.Params `json:"params,omitempty"`
	NoCache bool           `json:"no_cache,omitempty"`
}

// inlineInput names runs whose text came with the request
const inlineInput = "<inline>"
