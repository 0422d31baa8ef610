package memsim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"framesim/simulation/memsim/vmem"
)

// Reference string that cycles through pgs
type seqRefs struct {
	pgs []vmem.Tpage
	i   int
}

func (r *seqRefs) Next() vmem.Tpage {
	pg := r.pgs[r.i%len(r.pgs)]
	r.i++
	return pg
}

func newTestProc(pid Tpid, size int, pgs ...vmem.Tpage) *Proc {
	if len(pgs) == 0 {
		pgs = []vmem.Tpage{1, 2, 3}
	}
	return NewProc("test", pid, size, &seqRefs{pgs: pgs})
}

func TestFaultRateBeforeExecute(t *testing.T) {
	p := newTestProc(0, 0)
	assert.Equal(t, 0.0, p.FaultRate())
	assert.Equal(t, 0, p.WorkingSetSize())
}

func TestExecuteWithoutFrames(t *testing.T) {
	p := newTestProc(0, 0)
	p.Execute()
	assert.Equal(t, uint64(0), p.NRef())
	assert.Equal(t, vmem.NO_PAGE, p.CurPage())
	assert.Equal(t, 0.0, p.FaultRate())
}

func TestFaultRate(t *testing.T) {
	p := newTestProc(0, 0, 1, 2)
	p.Alloc([]vmem.Tframe{0, 1})
	for i := 0; i < 4; i++ {
		p.Execute()
	}
	assert.Equal(t, uint64(4), p.NRef())
	assert.Equal(t, uint64(2), p.NFault())
	assert.Equal(t, 0.5, p.FaultRate())
	assert.Equal(t, 2, p.WorkingSetSize())
}

func TestFaultWindowSlides(t *testing.T) {
	pgs := []vmem.Tpage{}
	for pg := vmem.Tpage(1); pg <= FAULT_WINDOW; pg++ {
		pgs = append(pgs, pg)
	}
	for i := 0; i < FAULT_WINDOW; i++ {
		pgs = append(pgs, FAULT_WINDOW)
	}
	p := newTestProc(0, 0, pgs...)
	p.Alloc([]vmem.Tframe{0, 1})
	for i := 0; i < FAULT_WINDOW; i++ {
		p.Execute()
	}
	assert.Equal(t, 1.0, p.FaultRate())
	for i := 0; i < FAULT_WINDOW/2; i++ {
		p.Execute()
	}
	assert.Equal(t, 0.5, p.FaultRate())
	for i := 0; i < FAULT_WINDOW/2; i++ {
		p.Execute()
	}
	assert.Equal(t, 0.0, p.FaultRate())
	assert.Equal(t, uint64(FAULT_WINDOW), p.NFault())
}

func TestWorkingSetWindow(t *testing.T) {
	p := newTestProc(0, 0, 1, 2, 3, 4, 5, 6, 7)
	p.Alloc([]vmem.Tframe{0, 1})
	for i := 0; i < 7; i++ {
		p.Execute()
	}
	assert.Equal(t, WS_WINDOW, p.WorkingSetSize())

	// A larger process has a larger window
	p = newTestProc(1, 3, 1, 2, 3, 4, 5, 6, 7)
	p.Alloc([]vmem.Tframe{0, 1})
	for i := 0; i < 7; i++ {
		p.Execute()
	}
	assert.Equal(t, 7, p.WorkingSetSize())
}

func TestProcString(t *testing.T) {
	p := NewProc("app1.kt", 3, 10, &seqRefs{pgs: []vmem.Tpage{4}})
	p.Alloc([]vmem.Tframe{5, 6})
	p.Execute()
	assert.Equal(t, "app1.kt (ID 3): [5:4][6:-], |WS| = 1, Fault Rate = 100.00%", p.String())
}
