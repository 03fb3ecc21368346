package rt

import (
	"omibyte.io/arm9rt/arm9"
	"omibyte.io/arm9rt/layout"
)

// State is the machine's lifecycle state.
type State int

const (
	StateReady State = iota
	StateRunning
	StateHung
)

// HangCode records why the machine entered the terminal spin state.
type HangCode int

const (
	HangNone HangCode = iota
	// HangNoEntry: the reset sequence found no registered entry point.
	HangNoEntry
	// HangEntryReturned: the entry point returned, violating its contract.
	HangEntryReturned
	// HangUnhandledException: an exception kind with no user override was
	// taken. Resuming from an unhandled fault would leave the processor in
	// undefined state, so the default handler traps instead.
	HangUnhandledException
	// HangBadVector: dispatch read a vector slot that points at nothing the
	// machine knows about.
	HangBadVector
)

// Machine models the single ARM9 core and its RAM. A zero machine is not
// usable; construct one with NewMachine.
type Machine struct {
	mem    []byte
	layout layout.Layout

	// Banked stack pointers, one per mode with a private stack.
	sp map[arm9.Mode]uint32

	// CP15 control register V bit. When clear, the vector table is
	// consulted at the bottom of the address space.
	highVectors bool

	state    State
	hangCode HangCode

	// OnHang, when set, observes the terminal state instead of spinning
	// forever. Host-side tests install it; on the real target there is
	// nothing to return to.
	OnHang func(HangCode)

	// vectors maps the absolute addresses written into the table back to
	// the handlers they stand for.
	vectors map[uint32]func()
}

// NewMachine creates a powered-down machine with ramSize bytes of RAM using
// the given memory layout.
func NewMachine(l layout.Layout, ramSize uint32) *Machine {
	return &Machine{
		mem:     make([]byte, ramSize),
		layout:  l,
		sp:      map[arm9.Mode]uint32{},
		vectors: map[uint32]func(){},
	}
}

// stackModes is the order the reset sequence installs the banked stack
// pointers in.
var stackModes = []arm9.Mode{
	arm9.ModeFIQ,
	arm9.ModeIRQ,
	arm9.ModeAbort,
	arm9.ModeUndefined,
	arm9.ModeSupervisor,
	arm9.ModeSystem,
}

// Reset runs the fixed boot sequence, strictly ordered:
//
//  1. mask both interrupt lines
//  2. clear the vector relocation control bit
//  3. install the six banked stack pointers from the layout
//  4. run the pre-init hook
//  5. zero-fill the bss region
//  6. copy the data region from its load address to its runtime address
//  7. transfer control to the entry point
//
// The entry point must not return; if it does, the machine hangs. Reset
// returns only on a machine with OnHang installed.
func (m *Machine) Reset() {
	arm9.Disable()

	m.highVectors = false

	for _, mode := range stackModes {
		arm9.SetMode(mode)
		m.sp[mode] = m.layout.StackTop(mode)
	}
	// The last stack installed leaves the core in System mode, which is
	// where the entry point runs.

	m.materializeVectors()

	if preInit != nil {
		preInit()
	}

	for addr := m.layout.BSS.Start; addr < m.layout.BSS.End; addr += 4 {
		m.Write32(addr, 0)
	}

	src := m.layout.Data.Load
	for dst := m.layout.Data.Start; dst < m.layout.Data.End; dst += 4 {
		m.Write32(dst, m.Read32(src))
		src += 4
	}

	if entry == nil {
		m.hang(HangNoEntry)
		return
	}

	m.state = StateRunning
	entry()

	// By signature contract the entry point never returns.
	m.hang(HangEntryReturned)
}

// materializeVectors resolves the handler registry into the fixed table at
// the bottom of RAM. On the real target the linker does this; the emulation
// assigns each handler a synthetic absolute address inside the code region
// and records the mapping for dispatch.
func (m *Machine) materializeVectors() {
	clear(m.vectors)

	// The reset slot holds the hardware jump target of the boot image.
	m.Write32(VectorBase+VectorReset, ImageCodeOffset)
	m.Write32(VectorBase+VectorReserved, 0)

	for e := Exception(0); e < numExceptions; e++ {
		addr := handlerAddress(e)
		fn := handlers[e]
		if fn == nil {
			fn = m.defaultHandler
		}
		m.vectors[addr] = fn
		m.Write32(VectorBase+e.VectorOffset(), addr)
	}
}

// handlerAddress is the synthetic absolute address standing in for the
// kind's trampoline, placed past the image jump target.
func handlerAddress(e Exception) uint32 {
	return ImageCodeOffset + VectorTableSize + 4*uint32(e)
}

// defaultHandler is the trap for any kind without a user override.
func (m *Machine) defaultHandler() {
	m.hang(HangUnhandledException)
}

// Dispatch delivers an exception to the core the way the hardware does:
// consult the mask bits, enter the kind's mode with the appropriate lines
// masked, read the kind's vector slot, and run the handler it addresses.
// It reports whether the exception was delivered; a masked IRQ or FIQ is
// simply not taken.
func (m *Machine) Dispatch(e Exception) bool {
	cpsr := arm9.ReadCPSR()
	switch e {
	case IRQ:
		if cpsr.IRQDisabled() {
			return false
		}
	case FIQ:
		if cpsr.FIQDisabled() {
			return false
		}
	}

	// Exception entry banks the status register, switches mode, and masks
	// IRQ (FIQ entry masks both lines).
	saved := uint32(cpsr) & arm9.MaskBits
	arm9.SetMode(e.entryMode())
	arm9.Disable()
	if e != FIQ {
		arm9.Restore(saved | arm9.IBit)
	}

	fn, ok := m.vectors[m.Read32(VectorBase+e.VectorOffset())]
	if !ok {
		m.hang(HangBadVector)
		return true
	}
	fn()

	// Exception return restores the banked status register.
	mode, _ := cpsr.Mode()
	arm9.SetMode(mode)
	arm9.Restore(saved)
	return true
}

// hang enters the terminal spin state. Nothing ever resumes from it.
func (m *Machine) hang(code HangCode) {
	m.state = StateHung
	m.hangCode = code
	if m.OnHang != nil {
		m.OnHang(code)
		return
	}
	for {
	}
}

// State returns the machine's lifecycle state.
func (m *Machine) State() State {
	return m.state
}

// Hang returns why the machine hung, or HangNone.
func (m *Machine) Hang() HangCode {
	return m.hangCode
}

// StackPointer returns the banked stack pointer installed for a mode.
func (m *Machine) StackPointer(mode arm9.Mode) uint32 {
	return m.sp[mode]
}

// HighVectors reports the vector relocation control bit. It is cleared at
// reset; this table is never relocated.
func (m *Machine) HighVectors() bool {
	return m.highVectors
}

// HeapStart returns the heap start marker from the layout.
func (m *Machine) HeapStart() uint32 {
	return m.layout.HeapStart()
}
