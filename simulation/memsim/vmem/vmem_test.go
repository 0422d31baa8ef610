package vmem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocEmpty(t *testing.T) {
	m := NewMemory()
	m.Alloc([]Tframe{3, 7})
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []Tframe{3, 7}, m.Frames())
	assert.Equal(t, NO_PAGE, m.Page(3))
	assert.Equal(t, "[3:-][7:-]", m.String())
}

func TestHitThenFault(t *testing.T) {
	m := NewMemory()
	m.Alloc([]Tframe{0, 1})
	assert.Equal(t, FAULT, m.ProcessPage(1))
	assert.Equal(t, FAULT, m.ProcessPage(2))
	assert.Equal(t, int64(0), m.UseTime(1))
	assert.Equal(t, int64(1), m.UseTime(2))

	assert.Equal(t, HIT, m.ProcessPage(1))
	assert.Equal(t, Tpage(1), m.Page(0))
	assert.Equal(t, Tpage(2), m.Page(1))
	assert.Equal(t, int64(2), m.UseTime(1))

	// Page 2 is now the least recently used
	assert.Equal(t, FAULT, m.ProcessPage(3))
	assert.Equal(t, Tpage(1), m.Page(0))
	assert.Equal(t, Tpage(3), m.Page(1))
	assert.Equal(t, int64(4), m.Clock())
}

func TestFaultFillsEmptyFirst(t *testing.T) {
	m := NewMemory()
	m.Alloc([]Tframe{0})
	m.ProcessPage(9)
	m.Alloc([]Tframe{1})
	assert.Equal(t, FAULT, m.ProcessPage(4))
	assert.Equal(t, Tpage(9), m.Page(0))
	assert.Equal(t, Tpage(4), m.Page(1))
}

func TestDeallocLRU(t *testing.T) {
	m := NewMemory()
	m.Alloc([]Tframe{10, 11, 12})
	m.ProcessPage(5)
	m.ProcessPage(6)
	m.ProcessPage(7)
	assert.Equal(t, Tpage(5), m.Page(10))
	fs := m.Dealloc(1)
	assert.Equal(t, []Tframe{10}, fs)
	assert.Equal(t, []Tframe{11, 12}, m.Frames())
}

func TestDeallocEmptySlotsFirst(t *testing.T) {
	m := NewMemory()
	m.Alloc([]Tframe{0, 1, 2})
	m.ProcessPage(4)
	fs := m.Dealloc(2)
	assert.Equal(t, []Tframe{1, 2}, fs)
	assert.Equal(t, []Tframe{0}, m.Frames())
	assert.Equal(t, Tpage(4), m.Page(0))
}

func TestDeallocTooMany(t *testing.T) {
	m := NewMemory()
	m.Alloc([]Tframe{0, 1, 2})
	assert.Nil(t, m.Dealloc(0))
	fs := m.Dealloc(100)
	assert.Equal(t, 3, len(fs))
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Dealloc(1))
}

func TestUseTimeSurvivesEviction(t *testing.T) {
	m := NewMemory()
	m.Alloc([]Tframe{0})
	m.ProcessPage(1)
	m.ProcessPage(2)
	assert.Equal(t, Tpage(2), m.Page(0))
	assert.Equal(t, int64(0), m.UseTime(1))
	assert.Equal(t, NEVER, m.UseTime(3))
}
