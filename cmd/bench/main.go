package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"annealer/internal/bench"
	"annealer/internal/flowshop"
	"annealer/internal/opt"
	"annealer/internal/solver"
)

var (
	// Global flags
	verbose    bool
	configPath string

	logger *zap.Logger

	cfg = bench.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark simulated annealing on random flow-shop instances",
	Long: `Runs the time-bounded annealing engine on random permutation flow-shop
instances, once per seed, and writes best/mean/std statistics to CSV.

Settings come from --config (YAML) and are overridden by explicit flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runBench,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	f := rootCmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML config file")
	f.StringVar(&cfg.Out, "out", cfg.Out, "output CSV path")
	f.StringSliceVar(&cfg.Pairs, "pairs", cfg.Pairs, "cases as jobs x machines, e.g. 20x5,50x10")
	f.StringSliceVar(&cfg.Algos, "algos", cfg.Algos, "neighborhoods to compare: swap, insert")
	f.IntVar(&cfg.Runs, "runs", cfg.Runs, "runs per algorithm and case (distinct seeds)")
	f.Int64Var(&cfg.Seed, "seed", cfg.Seed, "base seed of the runs")
	f.Int64Var(&cfg.InstanceSeed, "instance-seed", cfg.InstanceSeed, "base seed of the generated instances")
	f.DurationVar(&cfg.PerRunTimeout, "per-run-timeout", cfg.PerRunTimeout, "timeout of a single run; 0 disables it")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent runs; 0 means GOMAXPROCS")

	f.DurationVar(&cfg.Solver.TimeLimit, "time-limit", cfg.Solver.TimeLimit, "annealing time budget per run")
	f.IntVar(&cfg.Solver.MaxIterations, "iterations", cfg.Solver.MaxIterations, "iteration bound per run")
	f.IntVar(&cfg.Solver.IterationsPerJob, "iter-per-job", cfg.Solver.IterationsPerJob, "iterations per job when no other budget is set")
	f.Float64Var(&cfg.Solver.LimitTemp, "limit-temp", cfg.Solver.LimitTemp, "final temperature")
	f.Float64Var(&cfg.Solver.TempFactor, "temp-factor", cfg.Solver.TempFactor, "start temperature as a fraction of the initial makespan")
	f.Bool("progress", false, "log best-score improvements of every run")

	rootCmd.AddCommand(lineCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBench(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cases, err := c.Cases()
	if err != nil {
		return err
	}

	available := map[string]bench.Algorithm{}
	for _, nb := range []flowshop.Neighborhood{flowshop.NeighborhoodSwap, flowshop.NeighborhoodInsert} {
		sc := c.Solver
		sc.Neighborhood = nb
		available[string(nb)] = bench.Algorithm{Name: "SA-" + string(nb), Factory: newSAFactory(sc)}
	}

	var selected []bench.Algorithm
	for _, a := range c.Algos {
		al, ok := available[strings.TrimSpace(a)]
		if !ok {
			return fmt.Errorf("unknown algo %q; available: %v", a, keys(available))
		}
		selected = append(selected, al)
	}

	runner := bench.Runner{
		Runs:          c.Runs,
		BaseSeed:      c.Seed,
		PerRunTimeout: c.PerRunTimeout,
		Workers:       c.Workers,
	}

	var records []bench.Record
	for _, cs := range cases {
		for _, a := range selected {
			logger.Info("running",
				zap.String("algo", a.Name),
				zap.Int("jobs", cs.Jobs),
				zap.Int("machines", cs.Machines),
				zap.Int("runs", runner.Runs),
			)

			rec, err := runner.RunCase(ctx, cs, a)
			if err != nil {
				return fmt.Errorf("%s %dx%d: %w", a.Name, cs.Jobs, cs.Machines, err)
			}
			records = append(records, rec)

			fmt.Fprintf(cmd.OutOrStdout(),
				"%-10s %4dx%-3d makespan best=%d mean=%.2f std=%.2f gap=%.2f%% | time mean=%.2fms std=%.2fms\n",
				rec.Algo, rec.Jobs, rec.Machines,
				rec.MakespanBest, rec.MakespanMean, rec.MakespanStd, rec.GapMeanPct,
				rec.TimeMeanMs, rec.TimeStdMs,
			)
		}
	}

	if err := bench.WriteCSV(c.Out, records); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	logger.Info("saved", zap.String("path", c.Out), zap.Int("records", len(records)))
	return nil
}

// resolveConfig loads --config when given and re-applies explicitly set
// flags on top of it.
func resolveConfig(cmd *cobra.Command) (bench.Config, error) {
	flagged := cfg
	if configPath == "" {
		flagged.Solver.Silent = !progressFlag(cmd)
		return flagged, flagged.Validate()
	}

	c, err := bench.LoadConfig(configPath)
	if err != nil {
		return bench.Config{}, err
	}
	overrides := map[string]func(){
		"out":             func() { c.Out = flagged.Out },
		"pairs":           func() { c.Pairs = flagged.Pairs },
		"algos":           func() { c.Algos = flagged.Algos },
		"runs":            func() { c.Runs = flagged.Runs },
		"seed":            func() { c.Seed = flagged.Seed },
		"instance-seed":   func() { c.InstanceSeed = flagged.InstanceSeed },
		"per-run-timeout": func() { c.PerRunTimeout = flagged.PerRunTimeout },
		"workers":         func() { c.Workers = flagged.Workers },
		"time-limit":      func() { c.Solver.TimeLimit = flagged.Solver.TimeLimit },
		"iterations":      func() { c.Solver.MaxIterations = flagged.Solver.MaxIterations },
		"iter-per-job":    func() { c.Solver.IterationsPerJob = flagged.Solver.IterationsPerJob },
		"limit-temp":      func() { c.Solver.LimitTemp = flagged.Solver.LimitTemp },
		"temp-factor":     func() { c.Solver.TempFactor = flagged.Solver.TempFactor },
		"progress":        func() { c.Solver.Silent = !progressFlag(cmd) },
	}
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	return c, c.Validate()
}

func progressFlag(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("progress")
	return v
}

func newSAFactory(sc solver.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		s, err := solver.New(sc, seed, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func keys(m map[string]bench.Algorithm) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
