package flowshop

import (
	"fmt"
	"math/rand"
)

func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("%w: length must be %d (got %d)", ErrPermutation, n, len(perm))
	}
	seen := make([]bool, n)
	for i, v := range perm {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: perm[%d]=%d out of range [0,%d)", ErrPermutation, i, v, n)
		}
		if seen[v] {
			return fmt.Errorf("%w: duplicate job id %d", ErrPermutation, v)
		}
		seen[v] = true
	}
	return nil
}

// RandomPermutation returns a uniformly shuffled [0, n).
func RandomPermutation(n int, rng *rand.Rand) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// distinctPair draws i != j uniformly from [0, n). n must be >= 2.
func distinctPair(n int, rng *rand.Rand) (int, int) {
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}
	return i, j
}

// moveTo extracts p[from] and reinserts it at position to, shifting the
// elements in between. moveTo(p, to, from) undoes it.
func moveTo(p []int, from, to int) {
	val := p[from]
	if from < to {
		copy(p[from:to], p[from+1:to+1])
	} else {
		copy(p[to+1:from+1], p[to:from])
	}
	p[to] = val
}
