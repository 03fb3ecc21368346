package arm9

// Miscellaneous instruction shims. On hardware these are single
// instructions; the emulated core only needs their timing-free semantics.

// Nop does nothing.
func Nop() {}

// Wfi waits for an interrupt. The emulated core has no sleep state, so the
// call returns immediately; delivery happens through the machine's
// dispatch path.
func Wfi() {}

// Delay spins for roughly the given number of core cycles, assuming four
// cycles per loop iteration.
func Delay(cycles uint32) {
	for i := uint32(0); i < cycles/4; i++ {
		Nop()
	}
}
