package memsim

import (
	"fmt"
	"math"

	"golang.org/x/exp/slices"

	db "framesim/debug"
	"framesim/simulation/memsim/vmem"
)

const (
	MIN_FRAMES = 2 // a process never runs with fewer frames, unless memory is starved
)

// Allocator owns the frame pool: which process owns each frame, and the
// list of admitted processes, in admission order.
type Allocator struct {
	nframe int
	owner  map[vmem.Tframe]Tpid
	procs  []*Proc
	st     *Stats
}

func NewAllocator(nframe int) *Allocator {
	return &Allocator{
		nframe: nframe,
		owner:  make(map[vmem.Tframe]Tpid),
		procs:  []*Proc{},
		st:     NewStats(),
	}
}

func (a *Allocator) String() string {
	return fmt.Sprintf("{nframe %d nfree %d procs %d}", a.nframe, a.NFree(), len(a.procs))
}

func (a *Allocator) NFrame() int {
	return a.nframe
}

func (a *Allocator) NFree() int {
	return a.nframe - len(a.owner)
}

func (a *Allocator) NProc() int {
	return len(a.procs)
}

// Live processes in admission order
func (a *Allocator) Procs() []*Proc {
	return slices.Clone(a.procs)
}

func (a *Allocator) Stats() *Stats {
	return a.st
}

func (a *Allocator) IsLive(p *Proc) bool {
	return slices.Index(a.procs, p) >= 0
}

// Owner of frame f, or NO_PID
func (a *Allocator) Owner(f vmem.Tframe) Tpid {
	if pid, ok := a.owner[f]; ok {
		return pid
	}
	return NO_PID
}

// AllocProc admits p with MIN_FRAMES frames, reclaiming frames from other
// processes if necessary. It returns false if not enough frames can be
// found, in which case p is not admitted and holds no frames.
func (a *Allocator) AllocProc(p *Proc) bool {
	if a.IsLive(p) {
		db.DPrintf(db.SIM_ALLOC, "AllocProc %v: already admitted", p.pid)
		return true
	}
	free := a.requestFreeFrames(MIN_FRAMES)
	if len(free) < MIN_FRAMES {
		n := a.forceDealloc(MIN_FRAMES - len(free))
		a.st.nforced += uint64(n)
		free = a.requestFreeFrames(MIN_FRAMES)
	}
	if len(free) < MIN_FRAMES {
		db.DPrintf(db.SIM_ALLOC, "AllocProc %v: fail, %d free frames", p.pid, len(free))
		a.st.nfail++
		return false
	}
	a.grant(p, free)
	a.procs = append(a.procs, p)
	a.st.nadmit++
	db.DPrintf(db.SIM_ALLOC, "AllocProc %v: frames %v", p.pid, free)
	return true
}

// FreeProc reclaims all of p's frames and retires it.
func (a *Allocator) FreeProc(p *Proc) {
	fs := p.Dealloc(math.MaxInt)
	a.release(fs)
	if i := slices.Index(a.procs, p); i >= 0 {
		a.procs = slices.Delete(a.procs, i, i+1)
		a.st.nretire++
	}
	db.DPrintf(db.SIM_ALLOC, "FreeProc %v: frames %v", p.pid, fs)
}

// Rebalance moves frames toward the allocation pol desires. Every
// process keeps at least MIN_FRAMES. Shrinking happens before growing,
// so frames taken from one process can go to another in the same call.
// Rebalance never reclaims frames beyond what pol asks for.
func (a *Allocator) Rebalance(pol Policy) {
	procs := a.Procs()
	desired := pol(procs, a.nframe)
	db.DPrintf(db.SIM_POLICY, "desired %v", desired)
	target := func(p *Proc) int {
		return max(desired[p.pid], MIN_FRAMES)
	}
	for _, p := range procs {
		if n := p.AllocatedSpace() - target(p); n > 0 {
			fs := p.Dealloc(n)
			a.release(fs)
			a.st.nmoved += uint64(len(fs))
		}
	}
	for _, p := range procs {
		if n := target(p) - p.AllocatedSpace(); n > 0 {
			fs := a.requestFreeFrames(n)
			a.grant(p, fs)
		}
	}
}

// Up to n unassigned frames, lowest frame first
func (a *Allocator) requestFreeFrames(n int) []vmem.Tframe {
	fs := make([]vmem.Tframe, 0, n)
	for f := vmem.Tframe(0); int(f) < a.nframe && len(fs) < n; f++ {
		if _, ok := a.owner[f]; !ok {
			fs = append(fs, f)
		}
	}
	return fs
}

// Reclaim up to n frames from the live processes, in admission order,
// taking only frames above each process's MIN_FRAMES.
func (a *Allocator) forceDealloc(n int) int {
	freed := 0
	for _, p := range a.procs {
		if freed >= n {
			break
		}
		excess := p.AllocatedSpace() - MIN_FRAMES
		if excess <= 0 {
			continue
		}
		fs := p.Dealloc(min(excess, n-freed))
		a.release(fs)
		freed += len(fs)
		db.DPrintf(db.SIM_ALLOC, "forceDealloc %v: frames %v", p.pid, fs)
	}
	return freed
}

func (a *Allocator) release(fs []vmem.Tframe) {
	for _, f := range fs {
		delete(a.owner, f)
	}
}

func (a *Allocator) grant(p *Proc, fs []vmem.Tframe) {
	if len(fs) == 0 {
		return
	}
	p.Alloc(fs)
	for _, f := range fs {
		a.owner[f] = p.pid
	}
}

// CheckInvariants verifies that no frame is held by two processes and
// that the pool's owner table agrees with what each process holds.
func (a *Allocator) CheckInvariants() error {
	held := make(map[vmem.Tframe]Tpid)
	for _, p := range a.procs {
		for _, f := range p.Frames() {
			if int(f) < 0 || int(f) >= a.nframe {
				return fmt.Errorf("proc %v holds frame %v out of range", p.pid, f)
			}
			if pid, ok := held[f]; ok {
				return fmt.Errorf("frame %v held by %v and %v", f, pid, p.pid)
			}
			held[f] = p.pid
			if pid, ok := a.owner[f]; !ok || pid != p.pid {
				return fmt.Errorf("frame %v held by %v but owned by %v", f, p.pid, a.Owner(f))
			}
		}
	}
	if len(held) != len(a.owner) {
		return fmt.Errorf("%d frames owned but %d held", len(a.owner), len(held))
	}
	return nil
}
