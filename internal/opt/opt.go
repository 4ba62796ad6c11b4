package opt

import (
	"context"
	"time"

	"annealer/internal/flowshop"
)

type Optimizer interface {
	Solve(ctx context.Context, inst *flowshop.Instance) (Result, error)
}

type Result struct {
	Permutation []int
	Makespan    int
	// Evaluations counts scored permutations, the initial one included.
	Evaluations int
	// Iterations counts proposed moves.
	Iterations  int
	Accepted    int
	Duration    time.Duration
	// Stopped names the termination condition that ended the run.
	Stopped string
	Meta    map[string]any
}
