package frechet

import (
	"runtime"

	"go.uber.org/zap"
)

// Options are the options for building a CellMatrix.
type Options struct {
	// Logger receives warnings about degenerate geometry and debug traces of the traversal synthesis. Nil disables logging.
	Logger *zap.Logger

	// ComputeTraversal enables the synthesis of a realizing traversal.
	ComputeTraversal bool

	// MaxDepth is the maximum recursion depth of the traversal synthesis.
	MaxDepth int

	// MaxAlternatives is the maximum number of equally good traversals kept for each sub-problem.
	MaxAlternatives int

	// Concurrency limits the number of goroutines used while building cells and critical events, zero or less uses GOMAXPROCS.
	Concurrency int
}

// DefaultOptions are the default options for Build.
var DefaultOptions = Options{
	ComputeTraversal: true,
	MaxDepth:         128,
	MaxAlternatives:  4,
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) concurrency() int {
	if o.Concurrency <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Concurrency
}
