package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"annealer/internal/line"
	"annealer/internal/sa"
)

var lineArgs struct {
	target     int
	start      int
	temp       float64
	limitTemp  float64
	timeLimit  time.Duration
	iterations int
	seed       int64
	silent     bool
}

var lineCmd = &cobra.Command{
	Use:   "line",
	Short: "Anneal an integer towards a target, minimizing (x - target)^2",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := line.Problem{Target: lineArgs.target, Start: lineArgs.start, Temp: lineArgs.temp}
		opts := sa.Options{
			TimeLimit:     lineArgs.timeLimit,
			LimitTemp:     lineArgs.limitTemp,
			Silent:        lineArgs.silent,
			MaxIterations: lineArgs.iterations,
			Logger:        logger.Named("line"),
		}

		res, err := sa.Run[int, line.Move](cmd.Context(), p, opts, lineArgs.seed)
		if err != nil {
			return err
		}
		logger.Debug("line finished",
			zap.String("stop", string(res.Stop)),
			zap.Int("iterations", res.Iterations),
			zap.Int("accepted", res.Accepted),
			zap.Duration("duration", res.Duration),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "best x=%d score=%.3f (stop=%s, iterations=%d)\n",
			res.State, res.Score, res.Stop, res.Iterations)
		return nil
	},
}

func init() {
	f := lineCmd.Flags()
	f.IntVar(&lineArgs.target, "target", 42, "target value")
	f.IntVar(&lineArgs.start, "start", 0, "initial value")
	f.Float64Var(&lineArgs.temp, "temp", 1000, "start temperature")
	f.Float64Var(&lineArgs.limitTemp, "limit-temp", 0.01, "final temperature")
	f.DurationVar(&lineArgs.timeLimit, "time-limit", 100*time.Millisecond, "time budget")
	f.IntVar(&lineArgs.iterations, "iterations", 0, "iteration bound; 0 disables it")
	f.Int64Var(&lineArgs.seed, "seed", 1, "random seed")
	f.BoolVar(&lineArgs.silent, "silent", false, "suppress progress reports")
}
