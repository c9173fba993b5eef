package frechet

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tdewolff/test"
)

func TestPath(t *testing.T) {
	p, err := NewPath("P", []Vector{{0.0, 0.0}, {3.0, 4.0}, {3.0, 10.0}})
	test.Error(t, err)
	test.T(t, p.Count(), 2)
	test.T(t, p.Offsets, []float64{0.0, 5.0, 11.0})
	test.Float(t, p.Length, 11.0)
	test.T(t, p.Bounds(), Interval{0.0, 11.0})
	test.T(t, p.SegmentBounds(1), Interval{5.0, 11.0})
	test.String(t, p.String(), "(0,0) (3,4) (3,10)")

	var tts = []struct {
		rl           float64
		pointIndex   int
		segmentIndex int
		at           Vector
	}{
		{-1.0, 0, 0, Vector{0.0, 0.0}},
		{0.0, 0, 0, Vector{0.0, 0.0}},
		{2.5, 0, 0, Vector{1.5, 2.0}},
		{5.0 - 1e-14, 1, 1, Vector{3.0, 4.0}},
		{5.0, 1, 1, Vector{3.0, 4.0}},
		{8.0, 1, 1, Vector{3.0, 7.0}},
		{11.0, 2, 1, Vector{3.0, 10.0}},
		{12.0, 2, 1, Vector{3.0, 10.0}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			test.T(t, p.PointIndex(tt.rl), tt.pointIndex)
			test.T(t, p.SegmentIndex(tt.rl), tt.segmentIndex)
			at := p.At(tt.rl)
			test.Float(t, at.X, tt.at.X)
			test.Float(t, at.Y, tt.at.Y)
		})
	}

	q, err := p.Scale("Q", 2.0)
	test.Error(t, err)
	test.Float(t, q.Length, 22.0)
}

func TestPathErrors(t *testing.T) {
	var tts = []struct {
		points []Vector
		err    error
		index  int
	}{
		{nil, ErrTooFewPoints, 0},
		{[]Vector{{0.0, 0.0}}, ErrTooFewPoints, 1},
		{[]Vector{{0.0, 0.0}, {0.0, 0.0}}, ErrDuplicatePoints, 1},
		{[]Vector{{0.0, 0.0}, {1.0, 0.0}, {1.0, 1e-14}}, ErrDuplicatePoints, 2},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			_, err := NewPath("P", tt.points)
			test.That(t, errors.Is(err, tt.err), err)

			var inputErr *InputError
			test.That(t, errors.As(err, &inputErr))
			test.String(t, inputErr.Path, "P")
			test.T(t, inputErr.Index, tt.index)
		})
	}
}

func TestRemoveConsecutiveDuplicates(t *testing.T) {
	test.T(t, RemoveConsecutiveDuplicates([]Vector{{0.0, 0.0}, {0.0, 0.0}, {1.0, 1.0}, {1.0, 1.0}, {0.0, 0.0}}), []Vector{{0.0, 0.0}, {1.0, 1.0}, {0.0, 0.0}})
	test.T(t, RemoveConsecutiveDuplicates([]Vector{{2.0, 1.0}}), []Vector{{2.0, 1.0}})
	test.T(t, len(RemoveConsecutiveDuplicates(nil)), 0)
}
