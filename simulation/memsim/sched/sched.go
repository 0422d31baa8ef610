// Package sched admits and retires processes at random, keeping the
// number of live processes between a lower and an upper bound.
package sched

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	db "framesim/debug"
	"framesim/simulation/memsim"
)

const (
	MIN_PROCS     = 5
	MAX_PROCS     = 10
	CHANGE_CHANCE = 2 // percent
)

type RandomSched struct {
	rand     *rand.Rand
	gen      *ProcGen
	coin     distuv.Bernoulli
	minProcs int
	maxProcs int
}

func NewRandomSched(rnd *rand.Rand, gen *ProcGen, minProcs, maxProcs, chance int) *RandomSched {
	return &RandomSched{
		rand:     rnd,
		gen:      gen,
		coin:     distuv.Bernoulli{P: float64(chance) / 100.0, Src: rnd},
		minProcs: minProcs,
		maxProcs: maxProcs,
	}
}

func NewRandomSchedParams(rnd *rand.Rand, p *memsim.Params, name NameFn) *RandomSched {
	gen := NewProcGen(rnd, p.Sched.MIN_SIZE, p.Sched.MAX_SIZE, name)
	return NewRandomSched(rnd, gen, p.Sched.MIN_PROCS, p.Sched.MAX_PROCS, p.Sched.CHANGE_CHANCE)
}

func (s *RandomSched) maybe() bool {
	return s.coin.Rand() == 1
}

// A process that cannot be admitted is dropped.
func (s *RandomSched) admit(a *memsim.Allocator) bool {
	p := s.gen.NewProc()
	if !a.AllocProc(p) {
		db.DPrintf(db.SIM_SCHED, "admit %v: no memory", p.Pid())
		return false
	}
	db.DPrintf(db.SIM_SCHED, "admit %v", p)
	return true
}

func (s *RandomSched) Init(a *memsim.Allocator) {
	for i := 0; i < s.minProcs; i++ {
		s.admit(a)
	}
}

func (s *RandomSched) Tick(t uint64, a *memsim.Allocator) {
	if a.NProc() < s.maxProcs && s.maybe() {
		s.admit(a)
	}
	if a.NProc() > s.minProcs && s.maybe() {
		procs := a.Procs()
		p := procs[s.rand.Intn(len(procs))]
		db.DPrintf(db.SIM_SCHED, "[t=%v] retire %v", t, p)
		a.FreeProc(p)
	}
}
