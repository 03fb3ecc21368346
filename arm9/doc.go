// Package arm9 models the low level processor state of an ARM9
// (ARMv4T/ARMv5TE) core and provides the runtime primitives built on it:
// interrupt masking, critical sections, and software emulated atomic
// operations.
//
// ARM9 is significantly different from Cortex-M:
//
//   - No NVIC; the interrupt controller is external and chip specific
//   - No SysTick timer
//   - Seven processor modes (User/FIQ/IRQ/SVC/ABT/UND/SYS), each with a
//     banked stack pointer
//   - CPSR instead of xPSR
//   - No LDREX/STREX, so atomics are emulated with interrupt masking
//
// The package models a single core. Everything here assumes the only source
// of preemption is a hardware exception; none of it is safe across cores.
package arm9
