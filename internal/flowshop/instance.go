package flowshop

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	ErrInstance    = errors.New("flowshop: invalid instance")
	ErrPermutation = errors.New("flowshop: invalid permutation")
)

type Instance struct {
	Jobs     int
	Machines int
	// ProcTimes length must be Jobs*Machines.
	ProcTimes []int
}

func NewInstance(jobs, machines int, procTimes []int) (*Instance, error) {
	inst := &Instance{Jobs: jobs, Machines: machines, ProcTimes: procTimes}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return fmt.Errorf("%w: instance is nil", ErrInstance)
	}
	if inst.Jobs <= 0 {
		return fmt.Errorf("%w: jobs must be > 0 (got %d)", ErrInstance, inst.Jobs)
	}
	if inst.Machines <= 0 {
		return fmt.Errorf("%w: machines must be > 0 (got %d)", ErrInstance, inst.Machines)
	}
	if len(inst.ProcTimes) != inst.Jobs*inst.Machines {
		return fmt.Errorf("%w: procTimes length must be jobs*machines=%d (got %d)",
			ErrInstance, inst.Jobs*inst.Machines, len(inst.ProcTimes))
	}
	for i, v := range inst.ProcTimes {
		if v < 0 {
			return fmt.Errorf("%w: procTimes[%d] must be >= 0 (got %d)", ErrInstance, i, v)
		}
	}
	return nil
}

func (inst *Instance) Time(job, machine int) int {
	return inst.ProcTimes[job*inst.Machines+machine]
}

// LowerBound is max(longest machine load, longest job). No schedule can
// finish earlier.
func (inst *Instance) LowerBound() int {
	lb := 0
	for m := 0; m < inst.Machines; m++ {
		load := 0
		for j := 0; j < inst.Jobs; j++ {
			load += inst.Time(j, m)
		}
		lb = max(lb, load)
	}
	for j := 0; j < inst.Jobs; j++ {
		length := 0
		for m := 0; m < inst.Machines; m++ {
			length += inst.Time(j, m)
		}
		lb = max(lb, length)
	}
	return lb
}

// RandomInstance draws processing times uniformly from [minTime, maxTime].
func RandomInstance(jobs, machines, minTime, maxTime int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("flowshop: nil rng")
	}
	if minTime < 0 || maxTime < 0 || maxTime < minTime {
		panic("flowshop: invalid time bounds")
	}
	pt := make([]int, jobs*machines)
	span := maxTime - minTime + 1
	for i := range pt {
		pt[i] = minTime
		if span > 1 {
			pt[i] += rng.Intn(span)
		}
	}
	inst, err := NewInstance(jobs, machines, pt)
	if err != nil {
		panic(err)
	}
	return inst
}
