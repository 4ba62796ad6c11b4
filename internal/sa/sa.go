package sa

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

const (
	// checkInterval is the number of iterations between two schedule updates.
	checkInterval = 100
	// reportEps is the smallest best-score gain that is reported.
	reportEps = 1e-6
)

// StopReason tells why a run ended.
type StopReason string

const (
	StopTime       StopReason = "time"
	StopIterations StopReason = "iterations"
	StopDone       StopReason = "done"
	StopContext    StopReason = "context"
)

// Result is the outcome of Run. Score and State are the best pair found;
// State is never aliased by the engine after Run returns.
type Result[S any] struct {
	Score float64
	State S

	InitialScore float64
	StartTemp    float64
	FinalTemp    float64

	Iterations   int
	Accepted     int
	Improvements int
	Duration     time.Duration
	Stop         StopReason
}

// Run minimizes p with simulated annealing and returns the best state seen.
//
// The temperature follows t(r) = StartTemp * (LimitTemp/StartTemp)^r where r
// is the elapsed share of the budget, recomputed every checkInterval
// iterations. Worse moves are accepted with probability exp((cur-new)/t).
// Randomness is consumed only by Neighbour and the acceptance draw, so a
// fixed seed with MaxIterations reproduces the run exactly.
//
// ctx is polled together with the schedule; on cancellation the best pair so
// far is returned with ctx.Err(). Panics raised by p are not recovered.
func Run[S, M any](ctx context.Context, p Problem[S, M], opts Options, seed int64) (Result[S], error) {
	if err := opts.Validate(); err != nil {
		return Result[S]{}, err
	}

	clock := opts.Clock
	if clock == nil {
		clock = systemClock{}
	}
	log := opts.Logger
	if log == nil || opts.Silent {
		log = zap.NewNop()
	}
	obs := opts.Observer
	doner, _ := any(p).(Doner)
	applyEval, _ := any(p).(ApplyEvaluator[S, M])

	rng := rand.New(rand.NewSource(seed))

	state := p.InitState(rng)
	curScore := p.Eval(state)
	bestScore := curScore
	best := p.Clone(state)

	log.Info("initial score", zap.Float64("score", curScore))

	tMax := p.StartTemp(curScore)
	tMin := opts.LimitTemp
	temp := tMax

	res := Result[S]{InitialScore: curScore, StartTemp: tMax}
	start := clock.Now()

	finish := func(stop StopReason) Result[S] {
		res.Score = bestScore
		res.State = best
		res.FinalTemp = temp
		res.Duration = clock.Now().Sub(start)
		res.Stop = stop
		return res
	}

	for iter := 0; ; iter++ {
		if opts.MaxIterations > 0 && iter >= opts.MaxIterations {
			return finish(StopIterations), nil
		}

		if iter%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return finish(StopContext), err
			}

			ratio := 0.0
			reason := StopIterations
			if opts.MaxIterations > 0 {
				ratio = float64(iter) / float64(opts.MaxIterations)
			}
			if opts.TimeLimit > 0 {
				elapsed := float64(clock.Now().Sub(start)) / float64(opts.TimeLimit)
				if elapsed >= ratio {
					ratio = elapsed
					reason = StopTime
				}
			}
			if ratio >= 1 {
				return finish(reason), nil
			}

			temp = tMax * math.Pow(tMin/tMax, ratio)
			if obs != nil {
				obs.OnTemperature(iter, ratio, temp)
			}
		}

		mov := p.Neighbour(state, rng)
		var newScore float64
		if applyEval != nil {
			newScore = applyEval.ApplyAndEval(&state, mov, curScore)
		} else {
			p.Apply(&state, mov)
			newScore = p.Eval(state)
		}
		res.Iterations++

		// Improvements and ties never consume a random draw.
		accepted := newScore <= curScore ||
			rng.Float64() <= math.Exp((curScore-newScore)/temp)
		if obs != nil {
			obs.OnMove(iter, curScore, newScore, accepted)
		}

		if !accepted {
			p.Unapply(&state, mov)
			continue
		}

		res.Accepted++
		curScore = newScore
		if curScore < bestScore {
			if bestScore-curScore > reportEps {
				log.Info("best",
					zap.Int("iter", iter),
					zap.Float64("score", curScore),
					zap.Float64("temp", temp),
				)
			}
			bestScore = curScore
			best = p.Clone(state)
			res.Improvements++
			if obs != nil {
				obs.OnBest(iter, bestScore, temp)
			}
		}
		if doner != nil && doner.IsDone(curScore) {
			return finish(StopDone), nil
		}
	}
}
