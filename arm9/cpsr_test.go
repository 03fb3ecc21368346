package arm9

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeFromBits(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		bits uint8
		mode Mode
		ok   bool
	}{
		{0b10000, ModeUser, true},
		{0b10001, ModeFIQ, true},
		{0b10010, ModeIRQ, true},
		{0b10011, ModeSupervisor, true},
		{0b10111, ModeAbort, true},
		{0b11011, ModeUndefined, true},
		{0b11111, ModeSystem, true},
		{0b10100, 0, false},
		{0b00000, 0, false},
	}

	for _, entry := range table {
		mode, ok := ModeFromBits(entry.bits)
		assert.Equal(entry.ok, ok, "bits %#05b", entry.bits)
		if ok {
			assert.Equal(entry.mode, mode, "bits %#05b", entry.bits)
		}
	}

	// Bits above the mode field must be ignored.
	mode, ok := ModeFromBits(0xD3)
	assert.True(ok)
	assert.Equal(ModeSupervisor, mode)
}

func TestCPSRAccessors(t *testing.T) {
	assert := assert.New(t)

	r := CPSR(0xD3) // Supervisor, I and F set
	mode, ok := r.Mode()
	assert.True(ok)
	assert.Equal(ModeSupervisor, mode)
	assert.True(r.IRQDisabled())
	assert.True(r.FIQDisabled())

	r = CPSR(ModeSystem)
	assert.False(r.IRQDisabled())
	assert.False(r.FIQDisabled())

	r = r.WithMode(ModeIRQ)
	mode, _ = r.Mode()
	assert.Equal(ModeIRQ, mode)
	assert.Equal(uint32(ModeIRQ), r.Bits()&0x1F)
}

func TestResetState(t *testing.T) {
	// The emulated core powers up in Supervisor mode with both lines
	// masked, matching the architectural reset value.
	r := ReadCPSR()
	mode, ok := r.Mode()
	assert.True(t, ok)
	assert.Equal(t, ModeSupervisor, mode)
	assert.True(t, r.IRQDisabled())
	assert.True(t, r.FIQDisabled())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "Supervisor", ModeSupervisor.String())
	assert.Equal(t, "FIQ", ModeFIQ.String())
	assert.Contains(t, Mode(0b10100).String(), "Mode(")
}
