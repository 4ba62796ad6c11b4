package sa

import (
	"math/rand"
	"time"
)

// Problem describes an optimization problem for Run. S is the candidate
// solution and M a reversible local perturbation of it. Lower scores are
// better.
type Problem[S, M any] interface {
	InitState(rng *rand.Rand) S
	StartTemp(initScore float64) float64
	Eval(state S) float64
	Neighbour(state S, rng *rand.Rand) M

	// Apply and Unapply mutate the state in place. Unapply must exactly
	// reverse the matching Apply.
	Apply(state *S, mov M)
	Unapply(state *S, mov M)

	// Clone returns a copy that shares no mutable memory with state.
	Clone(state S) S
}

// Doner is implemented by problems that know a target score. Run stops as
// soon as an accepted move reaches it.
type Doner interface {
	IsDone(score float64) bool
}

// ApplyEvaluator is implemented by problems that can score a move
// incrementally from the previous score. It must leave the state exactly as
// Apply would.
type ApplyEvaluator[S, M any] interface {
	ApplyAndEval(state *S, mov M, prevScore float64) float64
}

// Clock is the time source of a run.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Observer receives engine events. Calls happen synchronously on the
// goroutine running the search.
type Observer interface {
	// OnTemperature is called each time the schedule is recomputed.
	OnTemperature(iter int, ratio, temp float64)
	// OnMove is called for every evaluated candidate.
	OnMove(iter int, curScore, newScore float64, accepted bool)
	// OnBest is called after the best state snapshot is replaced.
	OnBest(iter int, bestScore, temp float64)
}
