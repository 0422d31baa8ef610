package memsim

import (
	"github.com/montanaflynn/stats"

	db "framesim/debug"
	"framesim/simulation/memsim/vmem"
	"framesim/util/ringbuf"
)

type Tpid int

const (
	NO_PID Tpid = -1

	FAULT_WINDOW = 10 // # of last references the fault rate is computed over
	WS_WINDOW    = 5  // base # of last references in the working set; size is added
)

// Reference string of a process
type Refs interface {
	Next() vmem.Tpage
}

type Proc struct {
	name   string
	pid    Tpid
	size   int // synthetic weight
	refs   Refs
	mem    *vmem.Memory
	faults *ringbuf.RingBuf[float64]
	ws     *ringbuf.RingBuf[vmem.Tpage]
	cur    vmem.Tpage
	nref   uint64
	nfault uint64
}

func NewProc(name string, pid Tpid, size int, refs Refs) *Proc {
	return &Proc{
		name:   name,
		pid:    pid,
		size:   size,
		refs:   refs,
		mem:    vmem.NewMemory(),
		faults: ringbuf.NewRingBuf[float64](FAULT_WINDOW),
		ws:     ringbuf.NewRingBuf[vmem.Tpage](WS_WINDOW + size),
		cur:    vmem.NO_PAGE,
	}
}

func (p *Proc) String() string {
	return p.Summary().String()
}

func (p *Proc) Summary() ProcSummary {
	return ProcSummary{
		Name:      p.name,
		Pid:       p.pid,
		NFrame:    p.AllocatedSpace(),
		Frames:    p.mem.String(),
		WSSize:    p.WorkingSetSize(),
		FaultRate: p.FaultRate(),
	}
}

func (p *Proc) Name() string {
	return p.name
}

func (p *Proc) Pid() Tpid {
	return p.pid
}

func (p *Proc) Size() int {
	return p.size
}

func (p *Proc) AllocatedSpace() int {
	return p.mem.Len()
}

func (p *Proc) Frames() []vmem.Tframe {
	return p.mem.Frames()
}

func (p *Proc) Memory() *vmem.Memory {
	return p.mem
}

// Page referenced by the last Execute
func (p *Proc) CurPage() vmem.Tpage {
	return p.cur
}

func (p *Proc) NRef() uint64 {
	return p.nref
}

func (p *Proc) NFault() uint64 {
	return p.nfault
}

func (p *Proc) Alloc(frames []vmem.Tframe) {
	p.mem.Alloc(frames)
}

func (p *Proc) Dealloc(n int) []vmem.Tframe {
	return p.mem.Dealloc(n)
}

// Execute references the next page of p's reference string. A process
// without frames does not run.
func (p *Proc) Execute() {
	if p.mem.Len() == 0 {
		db.DPrintf(db.SIM_PROC, "%v: no frames, skip", p.pid)
		return
	}
	p.cur = p.refs.Next()
	f := p.mem.ProcessPage(p.cur)
	p.nref++
	if f == vmem.FAULT {
		p.nfault++
	}
	p.faults.Push(float64(f))
	p.ws.Push(p.cur)
}

// Number of distinct pages among the last WS_WINDOW+size references
func (p *Proc) WorkingSetSize() int {
	pgs := make(map[vmem.Tpage]bool)
	p.ws.Do(func(pg vmem.Tpage) {
		pgs[pg] = true
	})
	return len(pgs)
}

// Fraction of the last FAULT_WINDOW references that faulted; 0 before the
// first reference.
func (p *Proc) FaultRate() float64 {
	if p.faults.Len() == 0 {
		return 0.0
	}
	r, err := stats.Mean(stats.Float64Data(p.faults.Elems()))
	if err != nil {
		db.DFatalf("Error calculating mean: %v", err)
	}
	return r
}
