package rt

import (
	"fmt"

	"omibyte.io/arm9rt/arm9"
)

// Exception is one of the six overridable ARM9 exception kinds. Reset is
// not among them; its vector is owned by the boot sequence.
type Exception int

const (
	Undefined Exception = iota
	SWI
	PrefetchAbort
	DataAbort
	IRQ
	FIQ

	numExceptions
)

var exceptionNames = [numExceptions]string{
	Undefined:     "Undefined",
	SWI:           "SWI",
	PrefetchAbort: "PrefetchAbort",
	DataAbort:     "DataAbort",
	IRQ:           "IRQ",
	FIQ:           "FIQ",
}

func (e Exception) String() string {
	if e < 0 || e >= numExceptions {
		return fmt.Sprintf("Exception(%d)", int(e))
	}
	return exceptionNames[e]
}

// ExceptionByName maps a literal kind name to its exception. These are the
// exact names the vector table references and the stub generator exports.
func ExceptionByName(name string) (Exception, bool) {
	for e, n := range exceptionNames {
		if n == name {
			return Exception(e), true
		}
	}
	return 0, false
}

// ExceptionNames returns the six kind names in vector order.
func ExceptionNames() []string {
	return exceptionNames[:]
}

// Vector table byte layout. Eight consecutive 4 byte absolute addresses at
// the base of memory, 32 byte aligned, never relocated.
const (
	VectorBase      = 0x00000000
	VectorAlignment = 32
	VectorTableSize = 0x20

	VectorReset     = 0x00
	VectorUndefined = 0x04
	VectorSWI       = 0x08
	VectorPrefetch  = 0x0C
	VectorDataAbort = 0x10
	VectorReserved  = 0x14
	VectorIRQ       = 0x18
	VectorFIQ       = 0x1C
)

// VectorOffset returns the table offset of the kind's slot.
func (e Exception) VectorOffset() uint32 {
	switch e {
	case Undefined:
		return VectorUndefined
	case SWI:
		return VectorSWI
	case PrefetchAbort:
		return VectorPrefetch
	case DataAbort:
		return VectorDataAbort
	case IRQ:
		return VectorIRQ
	case FIQ:
		return VectorFIQ
	}
	return VectorReserved
}

// entryMode returns the processor mode the core enters when the kind is
// taken.
func (e Exception) entryMode() arm9.Mode {
	switch e {
	case Undefined:
		return arm9.ModeUndefined
	case SWI:
		return arm9.ModeSupervisor
	case PrefetchAbort, DataAbort:
		return arm9.ModeAbort
	case IRQ:
		return arm9.ModeIRQ
	case FIQ:
		return arm9.ModeFIQ
	}
	return arm9.ModeSupervisor
}
