package solver_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"annealer/internal/flowshop"
	"annealer/internal/opt"
	"annealer/internal/solver"
)

var _ opt.Optimizer = (*solver.Solver)(nil)

func instance() *flowshop.Instance {
	return flowshop.RandomInstance(20, 5, 1, 99, rand.New(rand.NewSource(777)))
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, solver.DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*solver.Config)
	}{
		{"negative time", func(c *solver.Config) { c.TimeLimit = -time.Second }},
		{"negative iterations", func(c *solver.Config) { c.MaxIterations = -1 }},
		{"no budget", func(c *solver.Config) { c.IterationsPerJob = 0 }},
		{"limit temp", func(c *solver.Config) { c.LimitTemp = 0 }},
		{"temp factor", func(c *solver.Config) { c.TempFactor = -1 }},
		{"neighborhood", func(c *solver.Config) { c.Neighborhood = "rotate" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := solver.DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())

			_, err := solver.New(cfg, 1, nil)
			assert.Error(t, err)
		})
	}
}

func TestSolver_Solve(t *testing.T) {
	inst := instance()
	for _, nb := range []flowshop.Neighborhood{flowshop.NeighborhoodSwap, flowshop.NeighborhoodInsert} {
		t.Run(string(nb), func(t *testing.T) {
			cfg := solver.DefaultConfig()
			cfg.Neighborhood = nb
			cfg.IterationsPerJob = 500

			s, err := solver.New(cfg, 1000, nil)
			require.NoError(t, err)

			res, err := s.Solve(context.Background(), inst)
			require.NoError(t, err)
			require.NoError(t, flowshop.ValidatePermutation(res.Permutation, inst.Jobs))

			eval, err := flowshop.NewEvaluator(inst)
			require.NoError(t, err)
			assert.Equal(t, eval.MustMakespan(res.Permutation), res.Makespan)
			assert.GreaterOrEqual(t, res.Makespan, inst.LowerBound())
			assert.LessOrEqual(t, float64(res.Makespan), res.Meta["initial_makespan"])
			assert.LessOrEqual(t, res.Evaluations, 500*inst.Jobs+1)
			assert.Contains(t, []string{"iterations", "done"}, res.Stopped)
		})
	}
}

func TestSolver_SameSeedSameResult(t *testing.T) {
	inst := instance()
	cfg := solver.DefaultConfig()
	cfg.MaxIterations = 20_000

	solve := func(seed int64) opt.Result {
		s, err := solver.New(cfg, seed, nil)
		require.NoError(t, err)
		res, err := s.Solve(context.Background(), inst)
		require.NoError(t, err)
		return res
	}

	a, b := solve(5), solve(5)
	assert.Equal(t, a.Permutation, b.Permutation)
	assert.Equal(t, a.Makespan, b.Makespan)
	assert.Equal(t, a.Evaluations, b.Evaluations)
	assert.Equal(t, a.Accepted, b.Accepted)
	assert.Equal(t, a.Iterations, b.Iterations)
}

func TestSolver_ReportsIterations(t *testing.T) {
	cfg := solver.DefaultConfig()
	cfg.MaxIterations = 5_000
	s, err := solver.New(cfg, 3, nil)
	require.NoError(t, err)

	res, err := s.Solve(context.Background(), instance())
	require.NoError(t, err)

	assert.Equal(t, res.Evaluations-1, res.Iterations)
	assert.LessOrEqual(t, res.Accepted, res.Iterations)
	if res.Stopped == "iterations" {
		assert.Equal(t, 5_000, res.Iterations)
	}
}

func TestSolver_StartTempFloor(t *testing.T) {
	// Both orders give makespan 2, so TempFactor alone would start at 0.1,
	// below LimitTemp.
	inst, err := flowshop.NewInstance(2, 1, []int{1, 1})
	require.NoError(t, err)

	cfg := solver.DefaultConfig()
	cfg.MaxIterations = 1_000
	s, err := solver.New(cfg, 1, nil)
	require.NoError(t, err)

	res, err := s.Solve(context.Background(), inst)
	require.NoError(t, err)

	assert.Equal(t, 10*cfg.LimitTemp, res.Meta["start_temp"])
	assert.LessOrEqual(t, res.Meta["final_temp"], res.Meta["start_temp"])
}

func TestSolver_TimeLimit(t *testing.T) {
	cfg := solver.DefaultConfig()
	cfg.TimeLimit = 50 * time.Millisecond

	s, err := solver.New(cfg, 1, nil)
	require.NoError(t, err)

	res, err := s.Solve(context.Background(), instance())
	require.NoError(t, err)
	assert.Contains(t, []string{"time", "done"}, res.Stopped)
	assert.Less(t, res.Duration, 5*time.Second)
}

func TestSolver_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := solver.New(solver.DefaultConfig(), 1, nil)
	require.NoError(t, err)

	res, err := s.Solve(ctx, instance())
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "context", res.Stopped)
	require.NoError(t, flowshop.ValidatePermutation(res.Permutation, 20))
}

func TestSolver_InvalidInstance(t *testing.T) {
	s, err := solver.New(solver.DefaultConfig(), 1, nil)
	require.NoError(t, err)

	_, err = s.Solve(context.Background(), &flowshop.Instance{Jobs: 1})
	require.ErrorIs(t, err, flowshop.ErrInstance)
}

func TestSolver_ProgressLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := solver.DefaultConfig()
	cfg.MaxIterations = 5_000
	cfg.Silent = false

	s, err := solver.New(cfg, 3, zap.New(core))
	require.NoError(t, err)
	_, err = s.Solve(context.Background(), instance())
	require.NoError(t, err)

	initial := logs.FilterMessage("initial score").All()
	require.Len(t, initial, 1)
	assert.Equal(t, int64(20), initial[0].ContextMap()["jobs"])
	assert.Equal(t, int64(3), initial[0].ContextMap()["seed"])
}
