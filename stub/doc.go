// Package stub validates annotated function declarations and generates the
// trampolines that bind them to the fixed boot and exception symbols.
//
// Two directives annotate a declaration:
//
//	//arm9:entry      the program entry point; must never return
//	//arm9:exception  an exception handler; the function name selects the kind
//
// Both take no arguments. An annotated function may open with persistent
// state declarations:
//
//	//arm9:entry
//	func main() {
//		var COUNT uint32 = 0 // extracted: exclusive, program lifetime
//		const banner = "up"  // immutable, left in place
//		...
//	}
//
// Every leading `var NAME TYPE [= INIT]` is lifted out of the body into
// program-lifetime storage and handed back to the function as an exclusive
// pointer parameter, so the shared mutable global disappears from the
// package scope entirely. Inside the body the name is thereby rebound to
// *TYPE and uses are written as dereferences; annotated sources are staged
// through the generator before they build. Scanning stops at the first
// statement that is not a persistent declaration; later declarations stay
// ordinary locals.
package stub
