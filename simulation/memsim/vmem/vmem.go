// Package vmem models the frames handed to one process and the least
// recently used replacement of the pages resident in them.
package vmem

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	db "framesim/debug"
)

type Tframe int
type Tpage int
type Tfault int

const (
	NO_PAGE Tpage = -1
	NEVER   int64 = -1 // use time of a page that was never referenced
)

const (
	HIT   Tfault = 0
	FAULT Tfault = 1
)

type slot struct {
	frame Tframe
	page  Tpage
}

func (s slot) String() string {
	if s.page == NO_PAGE {
		return fmt.Sprintf("[%d:-]", s.frame)
	}
	return fmt.Sprintf("[%d:%d]", s.frame, s.page)
}

type Memory struct {
	slots   []slot
	clock   int64
	useTime map[Tpage]int64
}

func NewMemory() *Memory {
	return &Memory{
		slots:   []slot{},
		useTime: make(map[Tpage]int64),
	}
}

func (m *Memory) String() string {
	var sb strings.Builder
	for _, s := range m.slots {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Number of frames currently held
func (m *Memory) Len() int {
	return len(m.slots)
}

func (m *Memory) Clock() int64 {
	return m.clock
}

func (m *Memory) UseTime(pg Tpage) int64 {
	if t, ok := m.useTime[pg]; ok {
		return t
	}
	return NEVER
}

func (m *Memory) slotUseTime(s slot) int64 {
	if s.page == NO_PAGE {
		return NEVER
	}
	return m.UseTime(s.page)
}

// Frames held, in slot order
func (m *Memory) Frames() []Tframe {
	fs := make([]Tframe, len(m.slots))
	for i, s := range m.slots {
		fs[i] = s.frame
	}
	return fs
}

// Page resident in frame f, or NO_PAGE if f is empty or not held.
func (m *Memory) Page(f Tframe) Tpage {
	for _, s := range m.slots {
		if s.frame == f {
			return s.page
		}
	}
	return NO_PAGE
}

// Append frames as empty slots
func (m *Memory) Alloc(frames []Tframe) {
	for _, f := range frames {
		m.slots = append(m.slots, slot{frame: f, page: NO_PAGE})
	}
}

// Give up the n least recently used slots (at most all of them) and return
// their frames, least recently used first. Ties keep slot order.
func (m *Memory) Dealloc(n int) []Tframe {
	if n <= 0 || len(m.slots) == 0 {
		return nil
	}
	if n > len(m.slots) {
		n = len(m.slots)
	}
	lru := slices.Clone(m.slots)
	slices.SortStableFunc(lru, func(a, b slot) int {
		ta, tb := m.slotUseTime(a), m.slotUseTime(b)
		switch {
		case ta < tb:
			return -1
		case ta > tb:
			return 1
		}
		return 0
	})
	freed := make([]Tframe, n)
	gone := make(map[Tframe]bool, n)
	for i, s := range lru[:n] {
		freed[i] = s.frame
		gone[s.frame] = true
	}
	m.slots = slices.DeleteFunc(m.slots, func(s slot) bool {
		return gone[s.frame]
	})
	db.DPrintf(db.SIM_MEM, "Dealloc %d frames %v left %v", n, freed, m)
	return freed
}

// Reference page pg. On a fault pg replaces the least recently used
// resident page; empty slots are filled first.
func (m *Memory) ProcessPage(pg Tpage) Tfault {
	if len(m.slots) == 0 {
		db.DFatalf("ProcessPage %v with no frames", pg)
	}
	m.useTime[pg] = m.clock
	m.clock++
	victim := 0
	for i, s := range m.slots {
		if s.page == pg {
			return HIT
		}
		if m.slotUseTime(s) < m.slotUseTime(m.slots[victim]) {
			victim = i
		}
	}
	db.DPrintf(db.SIM_MEM, "Fault pg %v replaces %v", pg, m.slots[victim])
	m.slots[victim].page = pg
	return FAULT
}
