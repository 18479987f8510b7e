package grid

import "fmt"

// Heading is one of the four axis movement directions
type Heading uint8

const (
	Up Heading = iota
	Right
	Down
	Left
)

// Headings lists all headings in clockwise order starting from Up
var Headings = [4]Heading{Up, Right, Down, Left}

// Delta returns the x,y offset of a single step in this heading
func (h Heading) Delta() (dx, dy int) {
	switch h {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	default:
		return -1, 0
	}
}

// Reverse returns the opposite heading
func (h Heading) Reverse() Heading {
	return (h + 2) % 4
}

// TurnRight returns the heading after a clockwise quarter turn
func (h Heading) TurnRight() Heading {
	return (h + 1) % 4
}

// TurnLeft returns the heading after a counter-clockwise quarter turn
func (h Heading) TurnLeft() Heading {
	return (h + 3) % 4
}

// Horizontal reports whether the heading moves along the x axis
func (h Heading) Horizontal() bool {
	return h == Left || h == Right
}

func (h Heading) String() string {
	switch h {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return fmt.Sprintf("heading(%d)", uint8(h))
}

// ParseHeading maps a direction name to a heading
func ParseHeading(name string) (Heading, error) {
	switch name {
	case "up", "north", "^":
		return Up, nil
	case "right", "east", ">":
		return Right, nil
	case "down", "south", "v":
		return Down, nil
	case "left", "west", "<":
		return Left, nil
	}
	return 0, fmt.Errorf("unknown heading %q", name)
}

// Point is an x,y coordinate with y growing downwards
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the point one cell away in heading h
func (p Point) Step(h Heading) Point {
	dx, dy := h.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Add returns the component-wise sum of p and q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Manhattan returns the taxicab distance between p and q
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Move is a position together with the heading it is travelling in
type Move struct {
	Pos     Point   `json:"pos"`
	Heading Heading `json:"heading"`
}

// Next advances the move one cell along its heading
func (m Move) Next() Move {
	return Move{Pos: m.Pos.Step(m.Heading), Heading: m.Heading}
}

// Turn re-aims the move at heading h and steps once
func (m Move) Turn(h Heading) Move {
	return Move{Pos: m.Pos.Step(h), Heading: h}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
