// Command analyze prints quick, human-readable facts about the puzzle inputs
// in the input directory: dimensions, symbol counts and how the open cells
// split into connected regions when '#' is treated as a wall.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/SzymonKubica/advent-of-code/grid"
	"github.com/SzymonKubica/advent-of-code/runner/config"
	"github.com/SzymonKubica/advent-of-code/search"
	"github.com/dustin/go-humanize"
)

// Wall is the symbol treated as impassable when counting regions
const Wall = '#'

// SymbolCount is how often one symbol occurs in an input
type SymbolCount struct {
	Symbol rune
	Count  int
}

// Analysis summarizes one input file
type Analysis struct {
	Name     string
	Rows     int
	Cols     int
	Bytes    int
	Symbols  []SymbolCount
	Regions  []int // open-region sizes, largest first
	Gridless bool  // rows differ in width
}

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}
	dir := settings.InputDir
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	inputs, err := config.NewManager(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening input directory: %v\n", err)
		os.Exit(1)
	}
	list, err := inputs.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing inputs: %v\n", err)
		os.Exit(1)
	}

	for _, in := range list {
		fmt.Printf("\n=== Analyzing %s ===\n", in.Name)
		analyzeInput(in).Print(os.Stdout)
	}
}

func analyzeInput(in *config.Input) *Analysis {
	a := &Analysis{
		Name:  in.Name,
		Rows:  in.Rows,
		Cols:  in.Cols,
		Bytes: in.Bytes,
	}

	g, err := grid.ParseFunc(in.Text, func(r rune) (rune, bool) { return r, true })
	if err != nil {
		a.Gridless = true
		a.Symbols = countSymbols(grid.Lines(in.Text))
		return a
	}

	counts := make(map[rune]int)
	for _, p := range g.Points() {
		counts[g.At(p)]++
	}
	a.Symbols = sortCounts(counts)
	a.Regions = openRegions(g)
	return a
}

func countSymbols(lines []string) []SymbolCount {
	counts := make(map[rune]int)
	for _, line := range lines {
		for _, r := range line {
			counts[r]++
		}
	}
	return sortCounts(counts)
}

func sortCounts(counts map[rune]int) []SymbolCount {
	out := make([]SymbolCount, 0, len(counts))
	for r, n := range counts {
		out = append(out, SymbolCount{Symbol: r, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

// openRegions flood-fills every non-wall cell and returns region sizes
func openRegions(g *grid.Grid[rune]) []int {
	open := func(p grid.Point) bool {
		c, ok := g.Get(p)
		return ok && c != Wall
	}
	next := func(p grid.Point) []grid.Point {
		var out []grid.Point
		for _, q := range g.Adjacent(p) {
			if open(q) {
				out = append(out, q)
			}
		}
		return out
	}

	seen := grid.OverlayFor[bool](g)
	var sizes []int
	for _, p := range g.Points() {
		if done, _ := seen.Get(p); done || !open(p) {
			continue
		}
		region := search.Reach(next, p)
		for _, q := range region.States() {
			seen.Set(q, true)
		}
		sizes = append(sizes, region.Len())
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))
	return sizes
}

// Print writes the analysis in the command's text format
func (a *Analysis) Print(w io.Writer) {
	fmt.Fprintf(w, "Size: %d x %d (%s)\n", a.Cols, a.Rows, humanize.Bytes(uint64(a.Bytes)))
	if a.Gridless {
		fmt.Fprintf(w, "Not a rectangular grid\n")
	}

	fmt.Fprintf(w, "Symbols: %d distinct\n", len(a.Symbols))
	for i, s := range a.Symbols {
		if i == 8 {
			fmt.Fprintf(w, "   ... and %d more\n", len(a.Symbols)-8)
			break
		}
		fmt.Fprintf(w, "   %q: %s\n", s.Symbol, humanize.Comma(int64(s.Count)))
	}

	if a.Gridless {
		return
	}
	switch len(a.Regions) {
	case 0:
		fmt.Fprintf(w, "No open cells\n")
	case 1:
		fmt.Fprintf(w, "All %s open cells are connected\n", humanize.Comma(int64(a.Regions[0])))
	default:
		fmt.Fprintf(w, "%d open regions, largest %s cells\n", len(a.Regions), humanize.Comma(int64(a.Regions[0])))
	}
}
