package frechet

import (
	"errors"
	"fmt"
)

// ErrTooFewPoints is returned when a path has fewer than two points.
var ErrTooFewPoints = errors.New("path needs at least two points")

// ErrDuplicatePoints is returned when a path has two consecutive equal points.
var ErrDuplicatePoints = errors.New("consecutive duplicate points")

// ErrNotFinite is returned when a coordinate is NaN or infinite.
var ErrNotFinite = errors.New("coordinate is not finite")

// ErrDegenerate is returned when a geometric construction has no defined result, such as a steepest descent starting in the minimum of a cell.
var ErrDegenerate = errors.New("degenerate geometry")

// ErrSearchExhausted is returned when no traversal could be synthesized although the paths are valid.
var ErrSearchExhausted = errors.New("no traversal found")

// ErrRecursionLimit is returned when the traversal synthesis exceeds its recursion budget.
var ErrRecursionLimit = errors.New("recursion limit exceeded")

// InputError is an error in one of the input paths.
type InputError struct {
	Path  string
	Index int
	Err   error
}

func (err *InputError) Error() string {
	return fmt.Sprintf("path %s at point %d: %v", err.Path, err.Index, err.Err)
}

func (err *InputError) Unwrap() error {
	return err.Err
}

// DegeneracyError is a geometric degeneracy in the cell (I,J) at point P.
type DegeneracyError struct {
	I, J int
	P    Vector
	Msg  string
}

func (err *DegeneracyError) Error() string {
	return fmt.Sprintf("cell (%d,%d) at %v: %s", err.I, err.J, err.P, err.Msg)
}

func (err *DegeneracyError) Unwrap() error {
	return ErrDegenerate
}
