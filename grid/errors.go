package grid

import (
	"errors"
	"fmt"
)

var (
	ErrUnrecognizedSymbol = errors.New("unrecognized symbol")
	ErrNonRectangular     = errors.New("non-rectangular grid")
)

// ParseErrorKind classifies why the input could not be turned into a grid
type ParseErrorKind int

const (
	UnrecognizedSymbol ParseErrorKind = iota + 1
	NonRectangular
)

// ParseError reports the first problem found while building a grid.
// Row and Col are zero-based; the message prints them one-based.
type ParseError struct {
	Kind   ParseErrorKind
	Row    int
	Col    int
	Symbol rune
	Want   int // expected row width for NonRectangular
	Got    int // actual row width for NonRectangular
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnrecognizedSymbol:
		return fmt.Sprintf("grid parse: unrecognized symbol %q at row %d, col %d", e.Symbol, e.Row+1, e.Col+1)
	case NonRectangular:
		return fmt.Sprintf("grid parse: row %d has %d cells, expected %d", e.Row+1, e.Got, e.Want)
	}
	return "grid parse: invalid input"
}

// Unwrap lets errors.Is match the sentinel for the error kind
func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case UnrecognizedSymbol:
		return ErrUnrecognizedSymbol
	case NonRectangular:
		return ErrNonRectangular
	}
	return nil
}
