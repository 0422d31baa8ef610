package memsim

import (
	db "framesim/debug"
)

// A Scheduler admits and retires processes through the allocator. Init is
// called once when the world is created, Tick once at the end of every
// tick.
type Scheduler interface {
	Init(a *Allocator)
	Tick(t uint64, a *Allocator)
}

type World struct {
	t      uint64 // # ticks that have passed since the beginning of the simulation
	alloc  *Allocator
	policy Policy
	sched  Scheduler
	check  bool
}

func NewWorld(alloc *Allocator, policy Policy, sched Scheduler, opts ...WorldOpt) *World {
	w := &World{
		alloc:  alloc,
		policy: policy,
		sched:  sched,
	}
	wo := DefaultWorldOpts
	for _, o := range opts {
		o.Apply(&wo)
	}
	w.check = wo.CheckInvariants
	alloc.Stats().RecordStats(wo.StatsWindow)
	if w.sched != nil {
		w.sched.Init(alloc)
	}
	return w
}

func (w *World) T() uint64 {
	return w.t
}

func (w *World) Allocator() *Allocator {
	return w.alloc
}

func (w *World) Stats() *Stats {
	return w.alloc.Stats()
}

func (w *World) Snapshot() *Snapshot {
	return w.alloc.Snapshot()
}

// Tick runs one step of the simulation: rebalance frames, let every live
// process make one reference, then admit and retire processes.
func (w *World) Tick() {
	w.alloc.Rebalance(w.policy)
	w.checkInvariants("rebalance")
	procs := w.alloc.Procs()
	nref, nfault := uint64(0), uint64(0)
	for _, p := range procs {
		r, f := p.NRef(), p.NFault()
		p.Execute()
		nref += p.NRef() - r
		nfault += p.NFault() - f
	}
	w.alloc.Stats().tick(w.t, procs, nref, nfault)
	if w.sched != nil {
		w.sched.Tick(w.t, w.alloc)
		w.checkInvariants("schedule")
	}
	db.DPrintf(db.SIM_WORLD, "[t=%v] %v refs %d faults %d", w.t, w.alloc, nref, nfault)
	w.t++
}

// Run ntick ticks, or forever if ntick is 0.
func (w *World) Run(ntick uint64) {
	for i := uint64(0); ntick == 0 || i < ntick; i++ {
		w.Tick()
	}
}

func (w *World) checkInvariants(when string) {
	if !w.check {
		return
	}
	if err := w.alloc.CheckInvariants(); err != nil {
		db.DFatalf("[t=%v] after %v: %v", w.t, when, err)
	}
}
