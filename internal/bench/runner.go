package bench

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"annealer/internal/flowshop"
	"annealer/internal/opt"
)

type Algorithm struct {
	Name    string
	Factory func(seed int64) (opt.Optimizer, error)
}

type Case struct {
	Jobs         int
	Machines     int
	InstanceSeed int64
}

// Instance generates the case instance with processing times in [1, 99].
func (c Case) Instance() *flowshop.Instance {
	rng := rand.New(rand.NewSource(c.InstanceSeed))
	return flowshop.RandomInstance(c.Jobs, c.Machines, 1, 99, rng)
}

type Record struct {
	Algo       string
	Jobs       int
	Machines   int
	Runs       int
	LowerBound int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	MakespanBest int
	MakespanMean float64
	MakespanStd  float64

	// GapMeanPct is the mean relative distance to LowerBound, in percent.
	GapMeanPct      float64
	EvaluationsMean float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout
	// Workers bounds concurrent runs; <= 0 means GOMAXPROCS.
	Workers int
}

type runOutcome struct {
	makespan    int
	evaluations int
	ms          float64
}

// RunCase solves the case instance Runs times with seeds BaseSeed+i. Every
// run gets its own optimizer, so results depend only on the seed.
func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	if r.Runs <= 0 {
		return Record{}, fmt.Errorf("runs must be > 0 (got %d)", r.Runs)
	}
	inst := c.Instance()

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]runOutcome, r.Runs)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < r.Runs; i++ {
		i := i
		g.Go(func() error {
			out, err := r.runOnce(gctx, inst, algo, r.BaseSeed+int64(i))
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Record{}, err
	}

	makespans := make([]int, r.Runs)
	timesMs := make([]float64, r.Runs)
	evals := make([]int, r.Runs)
	gaps := make([]float64, r.Runs)
	lb := inst.LowerBound()
	for i, o := range outcomes {
		makespans[i] = o.makespan
		timesMs[i] = o.ms
		evals[i] = o.evaluations
		if lb > 0 {
			gaps[i] = 100 * float64(o.makespan-lb) / float64(lb)
		}
	}

	msStats := CalcStats(makespans)
	tStats := CalcStats(timesMs)

	return Record{
		Algo:       algo.Name,
		Jobs:       c.Jobs,
		Machines:   c.Machines,
		Runs:       r.Runs,
		LowerBound: lb,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		MakespanBest: msStats.Best,
		MakespanMean: msStats.Mean,
		MakespanStd:  msStats.Std,

		GapMeanPct:      CalcStats(gaps).Mean,
		EvaluationsMean: CalcStats(evals).Mean,
	}, nil
}

func (r Runner) runOnce(ctx context.Context, inst *flowshop.Instance, algo Algorithm, seed int64) (runOutcome, error) {
	op, err := algo.Factory(seed)
	if err != nil {
		return runOutcome{}, fmt.Errorf("build optimizer: %w", err)
	}

	runCtx := ctx
	cancel := func() {}
	if r.PerRunTimeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
	}
	defer cancel()

	start := time.Now()
	res, err := op.Solve(runCtx, inst)
	dur := time.Since(start)

	if err != nil && runCtx.Err() != nil {
		return runOutcome{}, fmt.Errorf("cancelled/timeout: %w", err)
	}
	if err != nil {
		return runOutcome{}, fmt.Errorf("solve error: %w", err)
	}
	if err := flowshop.ValidatePermutation(res.Permutation, inst.Jobs); err != nil {
		return runOutcome{}, err
	}

	return runOutcome{
		makespan:    res.Makespan,
		evaluations: res.Evaluations,
		ms:          float64(dur.Microseconds()) / 1000.0,
	}, nil
}
