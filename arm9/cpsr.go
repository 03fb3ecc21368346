package arm9

import "fmt"

// Mode is an ARM9 processor mode, encoded in CPSR bits 4:0.
type Mode uint8

const (
	ModeUser       Mode = 0b10000
	ModeFIQ        Mode = 0b10001
	ModeIRQ        Mode = 0b10010
	ModeSupervisor Mode = 0b10011
	ModeAbort      Mode = 0b10111
	ModeUndefined  Mode = 0b11011
	ModeSystem     Mode = 0b11111
)

// ModeFromBits decodes the mode field of a raw CPSR value. The second result
// is false for the encodings the architecture does not define.
func ModeFromBits(bits uint8) (Mode, bool) {
	switch Mode(bits & modeMask) {
	case ModeUser, ModeFIQ, ModeIRQ, ModeSupervisor, ModeAbort, ModeUndefined, ModeSystem:
		return Mode(bits & modeMask), true
	}
	return 0, false
}

func (m Mode) String() string {
	switch m {
	case ModeUser:
		return "User"
	case ModeFIQ:
		return "FIQ"
	case ModeIRQ:
		return "IRQ"
	case ModeSupervisor:
		return "Supervisor"
	case ModeAbort:
		return "Abort"
	case ModeUndefined:
		return "Undefined"
	case ModeSystem:
		return "System"
	}
	return fmt.Sprintf("Mode(%#05b)", uint8(m))
}

const (
	modeMask = 0x1F

	// FBit and IBit are the FIQ and IRQ disable bits of the CPSR.
	FBit = 1 << 6
	IBit = 1 << 7

	// MaskBits covers both interrupt disable bits.
	MaskBits = IBit | FBit
)

// CPSR is a value of the current program status register.
type CPSR uint32

// Bits returns the raw register value.
func (r CPSR) Bits() uint32 {
	return uint32(r)
}

// Mode returns the processor mode field.
func (r CPSR) Mode() (Mode, bool) {
	return ModeFromBits(uint8(r))
}

// IRQDisabled reports whether the I bit is set.
func (r CPSR) IRQDisabled() bool {
	return r&IBit != 0
}

// FIQDisabled reports whether the F bit is set.
func (r CPSR) FIQDisabled() bool {
	return r&FBit != 0
}

// WithMode returns the register value with the mode field replaced.
func (r CPSR) WithMode(m Mode) CPSR {
	return (r &^ modeMask) | CPSR(m)
}

// The emulated status register of the single core. Hardware reset enters
// Supervisor mode with both interrupt lines masked.
var cpsr = CPSR(ModeSupervisor) | MaskBits

// ReadCPSR returns the current value of the emulated status register.
func ReadCPSR() CPSR {
	return cpsr
}

// SetMode switches the processor mode, leaving all other status bits
// untouched. Startup code uses this while installing the banked stack
// pointers; ordinary code has no reason to call it.
func SetMode(m Mode) {
	cpsr = cpsr.WithMode(m)
}
