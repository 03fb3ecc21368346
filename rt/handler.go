package rt

import "fmt"

// The handler registry. Generated trampolines register themselves here from
// init functions; the machine resolves the registry into the in-memory
// vector table at reset. A kind nobody overrides falls back to the default
// trap handler.

var (
	entry    func()
	preInit  func()
	handlers [numExceptions]func()
)

// RegisterEntry installs the program entry point. Exactly one entry point
// may exist per program; a second registration is a contract violation and
// panics. The compile-time generator enforces the same invariant across the
// declarations it sees; this check covers hand-wired programs.
func RegisterEntry(fn func()) {
	if entry != nil {
		panic("rt: entry point already registered")
	}
	if fn == nil {
		panic("rt: nil entry point")
	}
	entry = fn
}

// RegisterHandler installs the handler for one exception kind, replacing
// the default trap handler. Each kind has exactly one active handler.
func RegisterHandler(e Exception, fn func()) {
	if e < 0 || e >= numExceptions {
		panic(fmt.Sprintf("rt: invalid exception kind %d", int(e)))
	}
	if fn == nil {
		panic("rt: nil exception handler")
	}
	handlers[e] = fn
}

// RegisterPreInit overrides the pre-init hook that runs after the stack
// pointers are installed and before memory initialization.
func RegisterPreInit(fn func()) {
	preInit = fn
}

// resetRegistry restores the power-on registry. Tests use it to isolate
// machine configurations from one another.
func resetRegistry() {
	entry = nil
	preInit = nil
	handlers = [numExceptions]func(){}
}
