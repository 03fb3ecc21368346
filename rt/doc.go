// Package rt is the startup and exception layer for an ARM9 target: the
// fixed vector table contract, the reset sequence, the handler registry the
// generated trampolines hook into, and the vendor boot image layout.
//
// The hardware consumes three fixed contracts:
//
//	| Vector offset | Exception      |
//	|---------------|----------------|
//	| 0x00          | Reset          |
//	| 0x04          | Undefined      |
//	| 0x08          | SWI            |
//	| 0x0C          | Prefetch Abort |
//	| 0x10          | Data Abort     |
//	| 0x14          | Reserved       |
//	| 0x18          | IRQ            |
//	| 0x1C          | FIQ            |
//
// The table lives at the lowest addresses and is never relocated. The boot
// image begins with the vendor (eGON.BT0) header, followed by a range the
// boot ROM overwrites with boot device information, followed by user code
// at the fixed jump target.
//
// The package models the core and its memory in process so the contracts
// are executable on the host. Dispatch consults the in-memory vector table
// exactly the way the hardware does; a kind without a registered handler
// falls back to the default trap handler, which hangs the machine rather
// than resuming from undefined processor state.
package rt
