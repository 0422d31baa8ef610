package memsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	NTICK = 100
)

// Scheduler that admits a fixed set of processes and records the ticks
// it was called in.
type testSched struct {
	procs []*Proc
	ticks []uint64
	nref  []uint64 // references made by procs[0] by the time Tick is called
}

func (s *testSched) Init(a *Allocator) {
	for _, p := range s.procs {
		a.AllocProc(p)
	}
}

func (s *testSched) Tick(t uint64, a *Allocator) {
	s.ticks = append(s.ticks, t)
	s.nref = append(s.nref, s.procs[0].NRef())
}

func TestWorldTick(t *testing.T) {
	s := &testSched{procs: []*Proc{newTestProc(0, 0), newTestProc(1, 5), newTestProc(2, 10)}}
	w := NewWorld(NewAllocator(32), equal, s, WithInvariantChecks())
	assert.Equal(t, 3, w.Allocator().NProc())
	w.Tick()
	assert.Equal(t, uint64(1), w.T())
	assert.Equal(t, []uint64{0}, s.ticks)
	// Processes execute before the scheduler runs
	assert.Equal(t, []uint64{1}, s.nref)
	for _, p := range s.procs {
		assert.Equal(t, 10, p.AllocatedSpace())
	}
}

func TestWorldRun(t *testing.T) {
	s := &testSched{procs: []*Proc{newTestProc(0, 0), newTestProc(1, 5)}}
	w := NewWorld(NewAllocator(9), equal, s, WithInvariantChecks(), WithStatsWindow(10))
	w.Run(NTICK)
	assert.Equal(t, uint64(NTICK), w.T())
	assert.Equal(t, NTICK, len(s.ticks))
	st := w.Stats()
	assert.Equal(t, uint64(2*NTICK), st.NRef())
	// Each process cycles through 3 pages with 4 frames: only cold faults
	assert.Equal(t, uint64(6), st.NFault())
	assert.Equal(t, uint64(2), st.NAdmit())
	rst := st.GetRecordedStats()
	assert.Equal(t, NTICK, len(rst.Time))
	assert.Equal(t, 0.0, rst.AvgFaultRate[NTICK-1])
	assert.Equal(t, 0.0, rst.P90FaultRate[NTICK-1])
	assert.Nil(t, w.Allocator().CheckInvariants())
}

func TestWorldNoSched(t *testing.T) {
	w := NewWorld(NewAllocator(4), equal, nil)
	p := newTestProc(0, 0)
	assert.True(t, w.Allocator().AllocProc(p))
	w.Run(10)
	assert.Equal(t, 4, p.AllocatedSpace())
	assert.Equal(t, uint64(10), p.NRef())
	assert.Equal(t, 0, len(w.Stats().GetRecordedStats().Time))
}
