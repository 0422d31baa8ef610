// Package refstr generates synthetic page reference strings with locality
// of reference.
package refstr

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"framesim/simulation/memsim/vmem"
)

const (
	PAGE_BOUND = 20 // pages are in [1, PAGE_BOUND-1]
	MIN_JUMP   = 4
)

// Step kinds and their weights (in percent)
const (
	MOVE = iota
	JUMP
	STAY
)

var stepWeights = []float64{
	MOVE: 90,
	JUMP: 1,
	STAY: 9,
}

// RefStr is an infinite reference string, consumed one page at a time
// through Next. Each process owns its own RefStr.
type RefStr struct {
	rand  *rand.Rand
	steps distuv.Categorical
	bound vmem.Tpage
	jump  vmem.Tpage
	cur   vmem.Tpage
}

func NewRefStr(rnd *rand.Rand) *RefStr {
	return NewRefStrBound(rnd, PAGE_BOUND)
}

func NewRefStrBound(rnd *rand.Rand, bound int) *RefStr {
	if bound < 2 {
		bound = 2
	}
	jump := bound / 3
	if jump < MIN_JUMP {
		jump = MIN_JUMP
	}
	return &RefStr{
		rand:  rnd,
		steps: distuv.NewCategorical(stepWeights, rnd),
		bound: vmem.Tpage(bound),
		jump:  vmem.Tpage(jump),
		cur:   vmem.Tpage(rnd.Intn(bound-1) + 1),
	}
}

func (r *RefStr) direction() vmem.Tpage {
	if r.rand.Intn(2) == 0 {
		return -1
	}
	return 1
}

func (r *RefStr) clamp(pg vmem.Tpage) vmem.Tpage {
	if pg < 1 {
		return 1
	}
	if pg > r.bound-1 {
		return r.bound - 1
	}
	return pg
}

// Next returns the current page and advances the string by one step.
func (r *RefStr) Next() vmem.Tpage {
	pg := r.cur
	switch int(r.steps.Rand()) {
	case MOVE:
		r.cur += r.direction()
	case JUMP:
		r.cur += r.jump * r.direction()
	default:
	}
	r.cur = r.clamp(r.cur)
	return pg
}
