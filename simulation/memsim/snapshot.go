package memsim

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"framesim/simulation/memsim/vmem"
)

type ProcSummary struct {
	Name      string
	Pid       Tpid
	NFrame    int
	Frames    string // frame:page pairs
	WSSize    int
	FaultRate float64
}

func (ps ProcSummary) String() string {
	return fmt.Sprintf("%v (ID %d): %v, |WS| = %d, Fault Rate = %.2f%%", ps.Name, ps.Pid, ps.Frames, ps.WSSize, ps.FaultRate*100)
}

// Read-only copy of the pool: the owner of every frame, and the live
// processes in admission order.
type Snapshot struct {
	Owner []Tpid
	Procs []ProcSummary
}

func (a *Allocator) Snapshot() *Snapshot {
	s := &Snapshot{
		Owner: make([]Tpid, a.nframe),
		Procs: make([]ProcSummary, 0, len(a.procs)),
	}
	for f := range s.Owner {
		s.Owner[f] = a.Owner(vmem.Tframe(f))
	}
	for _, p := range a.procs {
		s.Procs = append(s.Procs, p.Summary())
	}
	return s
}

// Frames per row when dumping the owner table
func (s *Snapshot) ChunkSize() int {
	return max(1, int(math.Sqrt(float64(len(s.Owner)))*1.5))
}

func (s *Snapshot) Rows() [][]Tpid {
	n := s.ChunkSize()
	rows := [][]Tpid{}
	for i := 0; i < len(s.Owner); i += n {
		rows = append(rows, s.Owner[i:min(i+n, len(s.Owner))])
	}
	return rows
}

// One character per frame: X if free, the owner's pid in hex if below
// 16, and 0 otherwise.
func ownerTag(pid Tpid) string {
	switch {
	case pid == NO_PID:
		return "X"
	case pid < 16:
		return strings.ToUpper(strconv.FormatInt(int64(pid), 16))
	default:
		return "0"
	}
}

func (s *Snapshot) MemoryDump() string {
	rows := s.Rows()
	lines := make([]string, len(rows))
	for i, r := range rows {
		var sb strings.Builder
		for _, pid := range r {
			sb.WriteString(ownerTag(pid))
		}
		lines[i] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func (s *Snapshot) ProcDump() string {
	lines := make([]string, len(s.Procs))
	for i, ps := range s.Procs {
		lines[i] = fmt.Sprintf("%d) %v", i+1, ps)
	}
	return strings.Join(lines, "\n")
}

func (s *Snapshot) String() string {
	return s.MemoryDump() + "\n\n" + s.ProcDump()
}
