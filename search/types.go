package search

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

// DefaultIterations is the number of proposed moves per run.
const DefaultIterations = 20000

// deadlineMask: the time limit and the context are polled every 256 moves.
const deadlineMask = 255

// Sentinel errors returned by Run and RunParallel.
var (
	// ErrNilModel indicates a nil model or instance.
	ErrNilModel = errors.New("search: nil model")

	// ErrBadIterations indicates Iterations < 0.
	ErrBadIterations = errors.New("search: negative iteration count")

	// ErrBadWorkers indicates Workers < 1.
	ErrBadWorkers = errors.New("search: at least one worker is required")

	// ErrNegativeTimeLimit indicates TimeLimit < 0.
	ErrNegativeTimeLimit = errors.New("search: negative time limit")
)

// Options configures the local search.
type Options struct {
	// Seed drives every random choice; 0 means the fixed default seed.
	Seed int64

	// Iterations is the number of moves proposed by each worker.
	Iterations int

	// TimeLimit stops a worker early when positive. Polled, so it is soft.
	TimeLimit time.Duration

	// Workers is the number of independent runs of RunParallel.
	Workers int

	// Logger receives one Info entry per finished run and the Debug
	// entries of the filter manager.
	Logger *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithSeed sets the RNG seed.
func WithSeed(seed int64) Option { return func(o *Options) { o.Seed = seed } }

// WithIterations sets the number of moves proposed per worker.
func WithIterations(n int) Option { return func(o *Options) { o.Iterations = n } }

// WithTimeLimit sets a soft wall-clock limit per worker.
func WithTimeLimit(d time.Duration) Option { return func(o *Options) { o.TimeLimit = d } }

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option { return func(o *Options) { o.Workers = n } }

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// DefaultOptions returns one worker, DefaultIterations moves, no time limit
// and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Iterations: DefaultIterations,
		Workers:    1,
		Logger:     zap.NewNop(),
	}
}

func gatherOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	switch {
	case o.Iterations < 0:
		return o, ErrBadIterations
	case o.Workers < 1:
		return o, ErrBadWorkers
	case o.TimeLimit < 0:
		return o, ErrNegativeTimeLimit
	}
	return o, nil
}

// Result is the outcome of one run.
type Result struct {
	Worker int
	Seed   int64

	// Routes are the committed routes, one per vehicle, terminals included.
	Routes [][]int

	EnergyCost int64
	Penalty    int64
	Objective  int64

	Iterations int // moves proposed
	Accepted   int // moves committed
	TimedOut   bool
	Elapsed    time.Duration
}
