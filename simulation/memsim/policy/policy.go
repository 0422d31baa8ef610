// Package policy implements the frame allocation policies: equal,
// random, size-proportional, page-fault-frequency and working-set.
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	db "framesim/debug"
	"framesim/simulation/memsim"
)

const (
	EQ   = "EQ"
	RAND = "RAND"
	PROP = "PROP"
	PFF  = "PFF"
	WS   = "WS"
)

var Names = []string{EQ, RAND, PROP, PFF, WS}

// Lookup returns the policy called name. rnd is only used by RAND.
func Lookup(name string, rnd *rand.Rand) (memsim.Policy, error) {
	switch name {
	case EQ:
		return Equal, nil
	case RAND:
		return NewRandom(rnd), nil
	case PROP:
		return Proportional, nil
	case PFF:
		return FaultFreq, nil
	case WS:
		return WorkingSet, nil
	default:
		return nil, fmt.Errorf("unknown policy %q, want one of %v", name, Names)
	}
}

// Every process gets nframe/nproc frames; the remainder is not handed out.
func Equal(procs []*memsim.Proc, nframe int) memsim.Allocation {
	al := make(memsim.Allocation, len(procs))
	if len(procs) == 0 {
		return al
	}
	n := nframe / len(procs)
	for _, p := range procs {
		al[p.Pid()] = n
	}
	return al
}

// Every process gets a random number of frames in [0, nframe). Used as
// a baseline.
func NewRandom(rnd *rand.Rand) memsim.Policy {
	return func(procs []*memsim.Proc, nframe int) memsim.Allocation {
		al := make(memsim.Allocation, len(procs))
		for _, p := range procs {
			if nframe > 0 {
				al[p.Pid()] = rnd.Intn(nframe)
			} else {
				al[p.Pid()] = 0
			}
		}
		return al
	}
}

// Frames in proportion to the processes' sizes
func Proportional(procs []*memsim.Proc, nframe int) memsim.Allocation {
	return share(procs, nframe, func(p *memsim.Proc) float64 {
		return float64(p.Size())
	})
}

// Frames in proportion to the processes' recent fault rates
func FaultFreq(procs []*memsim.Proc, nframe int) memsim.Allocation {
	return share(procs, nframe, (*memsim.Proc).FaultRate)
}

// Frames in proportion to the processes' working-set sizes
func WorkingSet(procs []*memsim.Proc, nframe int) memsim.Allocation {
	return share(procs, nframe, func(p *memsim.Proc) float64 {
		return float64(p.WorkingSetSize())
	})
}

// Split nframe in proportion to weight, rounding down. If all weights are
// zero, every process gets 0.
func share(procs []*memsim.Proc, nframe int, weight func(*memsim.Proc) float64) memsim.Allocation {
	al := make(memsim.Allocation, len(procs))
	ws := make([]float64, len(procs))
	tot := 0.0
	for i, p := range procs {
		ws[i] = weight(p)
		tot += ws[i]
	}
	sum := 0
	for i, p := range procs {
		n := 0
		if tot > 0 {
			n = int(float64(nframe) * ws[i] / tot)
		}
		al[p.Pid()] = n
		sum += n
	}
	// Guard against floating-point rounding up past nframe
	for i := 0; sum > nframe; i = (i + 1) % len(procs) {
		if pid := procs[i].Pid(); al[pid] > 0 {
			al[pid]--
			sum--
		}
	}
	db.DPrintf(db.SIM_POLICY, "share tot %v: %v", tot, al)
	return al
}
