package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLabels(t *testing.T) {
	m := parseLabels("SIM_MEM;SIM_ALLOC")
	assert.True(t, m[SIM_MEM])
	assert.True(t, m[SIM_ALLOC])
	assert.False(t, m[SIM_PROC])
	assert.Equal(t, 0, len(parseLabels("")))
}

func TestAlwaysPrinted(t *testing.T) {
	assert.True(t, WillBePrinted(ALWAYS))
}
