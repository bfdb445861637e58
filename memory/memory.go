// Package memory defines the bus capability the CPU requires of its host
// and a flat RAM implementation suitable for tests and the CLI tools.
// Adapted from the teacher's memory.Bank: the Parent/DatabusVal chaining
// that existed to support banked, memory-mapped host chips is dropped
// since those peripherals are out of scope here (see DESIGN.md); what's
// kept is exactly the read/write capability the spec calls for, plus the
// teacher's PowerOn randomization idiom.
package memory

import (
	"fmt"
	"math/rand"
	"time"
)

// Bus is the capability a host must provide the CPU. Neither operation
// may fail: unmapped addresses return whatever the implementation treats
// as open-bus/zero, and writes to ROM-backed regions are silently
// dropped.
type Bus interface {
	// Read returns the data byte stored at addr.
	Read(addr uint16) uint8
	// Write updates addr with the new value. For ROM-backed addresses
	// this is simply a no-op without any error.
	Write(addr uint16, val uint8)
}

// PowerOnBus is implemented by buses that support power-on
// initialization. This is implementation specific as to whether it's
// randomized or preset to all zeros.
type PowerOnBus interface {
	Bus
	PowerOn()
}

// ram implements a flat R/W address space for 8 bit systems.
type ram struct {
	ram []uint8
}

// NewFlatRAM creates a flat, randomized-on-power-on R/W memory bank of
// the given size. Size must be a power of 2. If this is smaller than 64k
// (uint16 max) aliasing will occur on Read/Write.
func NewFlatRAM(size int) (PowerOnBus, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("invalid size: %d must be a power of 2", size)
	}
	if size > 1<<16 {
		return nil, fmt.Errorf("invalid size: %d is bigger than 64k", size)
	}
	b := &ram{}
	// Go ahead and completely preallocate this now.
	b.ram = make([]uint8, size, size)
	return b, nil
}

// Read implements Bus. Address is masked based on length of the ram buffer.
func (r *ram) Read(addr uint16) uint8 {
	addr &= uint16(len(r.ram) - 1)
	return r.ram[addr]
}

// Write implements Bus. Address is masked based on length of the ram buffer.
func (r *ram) Write(addr uint16, val uint8) {
	addr &= uint16(len(r.ram) - 1)
	r.ram[addr] = val
}

// PowerOn implements PowerOnBus and randomizes the RAM, matching how
// real NMOS RAM powers up in an indeterminate state.
func (r *ram) PowerOn() {
	rand.Seed(time.Now().UnixNano())
	for i := range r.ram {
		r.ram[i] = uint8(rand.Intn(256))
	}
}

// Load copies data into the bus starting at addr, one byte per Write
// call, to seed a program image.
func Load(b Bus, addr uint16, data []byte) {
	for i, v := range data {
		b.Write(addr+uint16(i), v)
	}
}
