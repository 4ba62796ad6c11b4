package flowshop

import "fmt"

// Evaluator computes makespans with a reusable completion-time buffer. It is
// not safe for concurrent use.
type Evaluator struct {
	inst              *Instance
	machineCompletion []int
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{inst: inst, machineCompletion: make([]int, inst.Machines)}, nil
}

func (e *Evaluator) Makespan(perm []int) (int, error) {
	if e == nil || e.inst == nil {
		return 0, fmt.Errorf("nil evaluator")
	}
	if err := ValidatePermutation(perm, e.inst.Jobs); err != nil {
		return 0, err
	}
	return e.makespan(perm), nil
}

func (e *Evaluator) MustMakespan(perm []int) int {
	ms, err := e.Makespan(perm)
	if err != nil {
		panic(err)
	}
	return ms
}

// makespan assumes perm is a valid permutation.
func (e *Evaluator) makespan(perm []int) int {
	for m := range e.machineCompletion {
		e.machineCompletion[m] = 0
	}
	last := e.inst.Machines - 1
	for _, job := range perm {
		e.machineCompletion[0] += e.inst.Time(job, 0)
		for m := 1; m <= last; m++ {
			start := max(e.machineCompletion[m-1], e.machineCompletion[m])
			e.machineCompletion[m] = start + e.inst.Time(job, m)
		}
	}
	return e.machineCompletion[last]
}
