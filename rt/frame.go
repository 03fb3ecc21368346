package rt

import "fmt"

// ExceptionFrame is the register set a handler prologue saves on entry.
type ExceptionFrame struct {
	R0   uint32
	R1   uint32
	R2   uint32
	R3   uint32
	R12  uint32
	LR   uint32
	PC   uint32
	CPSR uint32
}

func (f ExceptionFrame) String() string {
	return fmt.Sprintf(
		"ExceptionFrame{r0: 0x%08x, r1: 0x%08x, r2: 0x%08x, r3: 0x%08x, r12: 0x%08x, lr: 0x%08x, pc: 0x%08x, cpsr: 0x%08x}",
		f.R0, f.R1, f.R2, f.R3, f.R12, f.LR, f.PC, f.CPSR)
}
