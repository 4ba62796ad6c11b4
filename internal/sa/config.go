package sa

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNoBudget is returned when neither a time limit nor an iteration bound is set.
	ErrNoBudget = errors.New("sa: TimeLimit or MaxIterations must be > 0")
	// ErrTimeLimit is returned for a negative time limit.
	ErrTimeLimit = errors.New("sa: TimeLimit must be >= 0")
	// ErrIterations is returned for a negative iteration bound.
	ErrIterations = errors.New("sa: MaxIterations must be >= 0")
	// ErrLimitTemp is returned when the final temperature is not a positive finite number.
	ErrLimitTemp = errors.New("sa: LimitTemp must be a positive finite number")
)

// Options controls a single annealing run. The value is read-only for the
// duration of Run.
type Options struct {
	// TimeLimit is the wall-clock budget of the run.
	TimeLimit time.Duration
	// LimitTemp is the temperature reached at the end of the budget. It must
	// be lower than the start temperature returned by the problem.
	LimitTemp float64
	// Silent suppresses progress reporting. It never changes the search.
	Silent bool

	// MaxIterations bounds the run by iteration count; 0 disables the bound.
	// When set without TimeLimit the schedule ignores the clock and the run is
	// fully reproducible for a given seed.
	MaxIterations int

	// Clock is the time source; nil means the system monotonic clock.
	Clock Clock
	// Logger receives progress reports; nil means no output.
	Logger *zap.Logger
	// Observer receives per-iteration events; nil disables them.
	Observer Observer
}

// DefaultOptions returns a one second run cooling down to 1e-3.
func DefaultOptions() Options {
	return Options{
		TimeLimit: time.Second,
		LimitTemp: 1e-3,
	}
}

func (o Options) Validate() error {
	if o.TimeLimit < 0 {
		return fmt.Errorf("%w (got %s)", ErrTimeLimit, o.TimeLimit)
	}
	if o.MaxIterations < 0 {
		return fmt.Errorf("%w (got %d)", ErrIterations, o.MaxIterations)
	}
	if o.TimeLimit == 0 && o.MaxIterations == 0 {
		return ErrNoBudget
	}
	if o.LimitTemp <= 0 || math.IsNaN(o.LimitTemp) || math.IsInf(o.LimitTemp, 0) {
		return fmt.Errorf("%w (got %f)", ErrLimitTemp, o.LimitTemp)
	}
	return nil
}
