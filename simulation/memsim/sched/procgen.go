package sched

import (
	"github.com/thanhpk/randstr"
	"golang.org/x/exp/rand"

	"framesim/simulation/memsim"
	"framesim/simulation/memsim/refstr"
)

type NameFn func() string

func RandName() string {
	return "proc-" + randstr.Hex(4)
}

// ProcGen creates processes with increasing pids, each with its own
// reference string.
type ProcGen struct {
	rand    *rand.Rand
	next    memsim.Tpid
	minSize int
	maxSize int
	name    NameFn
}

func NewProcGen(rnd *rand.Rand, minSize, maxSize int, name NameFn) *ProcGen {
	if name == nil {
		name = RandName
	}
	return &ProcGen{
		rand:    rnd,
		minSize: minSize,
		maxSize: maxSize,
		name:    name,
	}
}

func (g *ProcGen) NewProc() *memsim.Proc {
	sz := g.minSize + g.rand.Intn(g.maxSize-g.minSize+1)
	p := memsim.NewProc(g.name(), g.next, sz, refstr.NewRefStr(g.rand))
	g.next++
	return p
}
