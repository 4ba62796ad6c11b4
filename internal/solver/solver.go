// Package solver runs the annealing engine on flow-shop instances behind the
// opt.Optimizer interface.
package solver

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"annealer/internal/flowshop"
	"annealer/internal/opt"
	"annealer/internal/sa"
)

// minStartTempRatio keeps the start temperature at least this many times
// above LimitTemp.
const minStartTempRatio = 10

type Solver struct {
	Cfg  Config
	Seed int64
	Log  *zap.Logger
}

// New validates cfg and returns a solver bound to seed. A nil logger disables
// progress output.
func New(cfg Config, seed int64, log *zap.Logger) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Solver{Cfg: cfg, Seed: seed, Log: log}, nil
}

func (s *Solver) Solve(ctx context.Context, inst *flowshop.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}

	problem, err := flowshop.NewProblem(inst, s.Cfg.Neighborhood, s.Cfg.TempFactor)
	if err != nil {
		return opt.Result{}, err
	}
	// Small makespans would otherwise start below LimitTemp and heat up.
	problem.MinStartTemp = minStartTempRatio * s.Cfg.LimitTemp

	opts := sa.Options{
		TimeLimit:     s.Cfg.TimeLimit,
		LimitTemp:     s.Cfg.LimitTemp,
		Silent:        s.Cfg.Silent,
		MaxIterations: s.Cfg.iterations(inst.Jobs),
		Logger: s.Log.With(
			zap.Int("jobs", inst.Jobs),
			zap.Int("machines", inst.Machines),
			zap.Int64("seed", s.Seed),
		),
	}

	res, err := sa.Run[[]int, flowshop.Move](ctx, problem, opts, s.Seed)
	out := opt.Result{
		Permutation: res.State,
		Makespan:    int(math.Round(res.Score)),
		Evaluations: res.Iterations + 1,
		Iterations:  res.Iterations,
		Accepted:    res.Accepted,
		Duration:    time.Since(start),
		Stopped:     string(res.Stop),
		Meta: map[string]any{
			"initial_makespan": res.InitialScore,
			"start_temp":       res.StartTemp,
			"final_temp":       res.FinalTemp,
			"improvements":     res.Improvements,
			"neighborhood":     string(s.Cfg.Neighborhood),
		},
	}
	return out, err
}
