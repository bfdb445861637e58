// Package irq defines the capability a CPU needs from anything driving
// its interrupt lines (IRQ or NMI), so the CPU engine never has to know
// what's on the other end: a timer chip, a test harness, or nothing at
// all (a nil Line means the line is simply never asserted).
package irq

// Line is an interrupt source the CPU samples once per Step, before
// fetching the next opcode.
type Line interface {
	// Raised reports whether the line is currently held high.
	Raised() bool
}
