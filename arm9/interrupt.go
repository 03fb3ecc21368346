package arm9

// IntState holds the saved I and F bits returned by Disable. Only the two
// mask bits are meaningful; all other bits are zero.
type IntState = uint32

// Disable masks both interrupt lines and returns their prior state.
func Disable() IntState {
	prev := IntState(cpsr) & MaskBits
	cpsr |= MaskBits
	return prev
}

// Enable unmasks both interrupt lines unconditionally. The caller asserts
// that it is safe for handlers to run immediately.
func Enable() {
	cpsr &^= MaskBits
}

// Restore sets the two mask bits to exactly state, leaving every other
// status bit untouched. state must come from a matching Disable; restoring
// out of order leaves the mask in an incorrect state.
func Restore(state IntState) {
	cpsr = (cpsr &^ MaskBits) | CPSR(state&MaskBits)
}

// Free runs body with both interrupt lines masked and restores the prior
// mask state on every exit path, returning body's result.
func Free[R any](body func() R) R {
	state := Disable()
	defer Restore(state)
	return body()
}
