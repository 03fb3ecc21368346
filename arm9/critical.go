package arm9

// Token is an opaque snapshot of the interrupt mask state taken when a
// critical section was entered. A token is only valid for closing the same
// nesting level that produced it; sections must be released in strict
// reverse order of acquisition.
type Token struct {
	state IntState
}

// Acquire enters a critical section and returns the token that closes it.
func Acquire() Token {
	return Token{state: Disable()}
}

// Release leaves the critical section identified by tok, restoring the mask
// state captured at the matching Acquire.
func Release(tok Token) {
	Restore(tok.state)
}

// With runs body inside a critical section. The section is released on every
// exit path of body, normal or abnormal.
func With(body func()) {
	tok := Acquire()
	defer Release(tok)
	body()
}
