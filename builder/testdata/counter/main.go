// Annotated input for the stub generator. Running "arm9rt gen" over this
// package produces the staged sources that actually build for the target.
package main

//arm9:layout board.yaml

// IRQ counts controller ticks. TICKS is rebound to an exclusive reference
// once the generator lifts it into program-lifetime storage.
//
//arm9:exception
func IRQ() {
	var TICKS uint32 = 0
	(*TICKS)++
}

//arm9:entry
func main() {
	var HANDLED uint32
	for {
		(*HANDLED)++
	}
}
