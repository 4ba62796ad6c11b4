package flowshop

import (
	"fmt"
	"math/rand"
	"slices"
)

// Neighborhood selects the kind of local move.
type Neighborhood string

const (
	NeighborhoodSwap   Neighborhood = "swap"
	NeighborhoodInsert Neighborhood = "insert"
)

func (nb Neighborhood) Validate() error {
	switch nb {
	case NeighborhoodSwap, NeighborhoodInsert:
		return nil
	default:
		return fmt.Errorf("unknown neighborhood %q", string(nb))
	}
}

// DefaultTempFactor scales the initial makespan into the start temperature.
const DefaultTempFactor = 0.05

// Move is a swap of two positions or the relocation of the job at From to
// position To.
type Move struct {
	Kind     Neighborhood
	From, To int
}

// Problem is the permutation flow-shop makespan minimization expressed as an
// annealing problem over job orders.
type Problem struct {
	Inst         *Instance
	Neighborhood Neighborhood
	TempFactor   float64
	// MinStartTemp is a floor for StartTemp; 0 disables it.
	MinStartTemp float64

	eval       *Evaluator
	lowerBound float64
}

func NewProblem(inst *Instance, nb Neighborhood, tempFactor float64) (*Problem, error) {
	eval, err := NewEvaluator(inst)
	if err != nil {
		return nil, err
	}
	if err := nb.Validate(); err != nil {
		return nil, err
	}
	if tempFactor <= 0 {
		return nil, fmt.Errorf("temp factor must be > 0 (got %f)", tempFactor)
	}
	return &Problem{
		Inst:         inst,
		Neighborhood: nb,
		TempFactor:   tempFactor,
		eval:         eval,
		lowerBound:   float64(inst.LowerBound()),
	}, nil
}

func (p *Problem) InitState(rng *rand.Rand) []int {
	return RandomPermutation(p.Inst.Jobs, rng)
}

func (p *Problem) StartTemp(initScore float64) float64 {
	return max(p.TempFactor*initScore, p.MinStartTemp)
}

func (p *Problem) Eval(perm []int) float64 {
	return float64(p.eval.MustMakespan(perm))
}

// ApplyAndEval skips the permutation check: moves keep perm valid.
func (p *Problem) ApplyAndEval(perm *[]int, mov Move, _ float64) float64 {
	p.Apply(perm, mov)
	return float64(p.eval.makespan(*perm))
}

func (p *Problem) Neighbour(perm []int, rng *rand.Rand) Move {
	if len(perm) < 2 {
		return Move{Kind: p.Neighborhood}
	}
	from, to := distinctPair(len(perm), rng)
	return Move{Kind: p.Neighborhood, From: from, To: to}
}

func (p *Problem) Apply(perm *[]int, mov Move) {
	s := *perm
	switch mov.Kind {
	case NeighborhoodInsert:
		moveTo(s, mov.From, mov.To)
	default:
		s[mov.From], s[mov.To] = s[mov.To], s[mov.From]
	}
}

func (p *Problem) Unapply(perm *[]int, mov Move) {
	s := *perm
	switch mov.Kind {
	case NeighborhoodInsert:
		moveTo(s, mov.To, mov.From)
	default:
		s[mov.From], s[mov.To] = s[mov.To], s[mov.From]
	}
}

func (p *Problem) Clone(perm []int) []int { return slices.Clone(perm) }

// IsDone reports that the makespan has reached the instance lower bound.
func (p *Problem) IsDone(score float64) bool { return score <= p.lowerBound }
