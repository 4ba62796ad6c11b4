// Package line is the smallest useful annealing problem: walk an integer
// towards a target with ±1 steps, scoring (x - target)^2.
package line

import "math/rand"

// Move is a signed unit step.
type Move int

const (
	Down Move = -1
	Up   Move = 1
)

type Problem struct {
	Target int
	Start  int
	// Temp is the start temperature regardless of the initial score.
	Temp float64
}

func (p Problem) InitState(*rand.Rand) int { return p.Start }

func (p Problem) StartTemp(float64) float64 { return p.Temp }

func (p Problem) Eval(x int) float64 {
	d := float64(x - p.Target)
	return d * d
}

func (p Problem) Neighbour(_ int, rng *rand.Rand) Move {
	if rng.Intn(2) == 0 {
		return Down
	}
	return Up
}

func (p Problem) Apply(x *int, m Move)   { *x += int(m) }
func (p Problem) Unapply(x *int, m Move) { *x -= int(m) }
func (p Problem) Clone(x int) int        { return x }

// IsDone reports that the target has been reached.
func (p Problem) IsDone(score float64) bool { return score == 0 }
