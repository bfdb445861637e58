// Package opcodes is the single source of truth for 6502 opcode
// metadata: a static 256-entry table giving the mnemonic, addressing
// mode, base cycle cost, instruction size, and implemented flag for
// every possible opcode byte. The CPU's decoder, the assembler's
// encoder, and the disassembler's formatter all consult this table
// instead of keeping their own copies.
package opcodes

import "github.com/corewerks/nmos6502/addressing"

// Metadata describes one opcode byte.
type Metadata struct {
	// Mnemonic is the 3 ASCII uppercase letter instruction name, or
	// "???" for an opcode with no documented behavior.
	Mnemonic string
	// Mode is the addressing mode this opcode decodes its operand with.
	Mode addressing.Mode
	// BaseCycles is the fixed cycle cost before any page-cross or
	// branch-taken penalty. Zero for undocumented opcodes.
	BaseCycles uint8
	// Size is the total instruction size in bytes (opcode + operand),
	// fully determined by Mode.
	Size uint8
	// Implemented is false for the 105 undocumented opcode slots; the
	// CPU refuses to execute these and reports an ExecutionError.
	Implemented bool
}

// Table is the 256-entry opcode table indexed by opcode byte.
var Table [256]Metadata

// entry is the compact literal form documented opcodes are declared in
// below; Table is built from these plus an all-"???" base at init time.
type entry struct {
	opcode  byte
	mnemo   string
	mode    addressing.Mode
	cycles  uint8
}

// documented lists all 151 documented (legal) opcodes: the 56 standard
// mnemonics across their addressing modes. Cycle counts are the
// well-established NMOS 6502 base costs (worst case for stores/RMW,
// pre-page-cross-penalty for reads — see IsReadMnemonic).
var documented = []entry{
	// ADC
	{0x69, "ADC", addressing.Immediate, 2}, {0x65, "ADC", addressing.ZeroPage, 3},
	{0x75, "ADC", addressing.ZeroPageX, 4}, {0x6D, "ADC", addressing.Absolute, 4},
	{0x7D, "ADC", addressing.AbsoluteX, 4}, {0x79, "ADC", addressing.AbsoluteY, 4},
	{0x61, "ADC", addressing.IndirectX, 6}, {0x71, "ADC", addressing.IndirectY, 5},
	// AND
	{0x29, "AND", addressing.Immediate, 2}, {0x25, "AND", addressing.ZeroPage, 3},
	{0x35, "AND", addressing.ZeroPageX, 4}, {0x2D, "AND", addressing.Absolute, 4},
	{0x3D, "AND", addressing.AbsoluteX, 4}, {0x39, "AND", addressing.AbsoluteY, 4},
	{0x21, "AND", addressing.IndirectX, 6}, {0x31, "AND", addressing.IndirectY, 5},
	// ASL
	{0x0A, "ASL", addressing.Accumulator, 2}, {0x06, "ASL", addressing.ZeroPage, 5},
	{0x16, "ASL", addressing.ZeroPageX, 6}, {0x0E, "ASL", addressing.Absolute, 6},
	{0x1E, "ASL", addressing.AbsoluteX, 7},
	// Branches (all Relative, 2 bytes, base 2 cycles)
	{0x10, "BPL", addressing.Relative, 2}, {0x30, "BMI", addressing.Relative, 2},
	{0x50, "BVC", addressing.Relative, 2}, {0x70, "BVS", addressing.Relative, 2},
	{0x90, "BCC", addressing.Relative, 2}, {0xB0, "BCS", addressing.Relative, 2},
	{0xD0, "BNE", addressing.Relative, 2}, {0xF0, "BEQ", addressing.Relative, 2},
	// BIT
	{0x24, "BIT", addressing.ZeroPage, 3}, {0x2C, "BIT", addressing.Absolute, 4},
	// BRK
	{0x00, "BRK", addressing.Implicit, 7},
	// CMP
	{0xC9, "CMP", addressing.Immediate, 2}, {0xC5, "CMP", addressing.ZeroPage, 3},
	{0xD5, "CMP", addressing.ZeroPageX, 4}, {0xCD, "CMP", addressing.Absolute, 4},
	{0xDD, "CMP", addressing.AbsoluteX, 4}, {0xD9, "CMP", addressing.AbsoluteY, 4},
	{0xC1, "CMP", addressing.IndirectX, 6}, {0xD1, "CMP", addressing.IndirectY, 5},
	// CPX / CPY
	{0xE0, "CPX", addressing.Immediate, 2}, {0xE4, "CPX", addressing.ZeroPage, 3}, {0xEC, "CPX", addressing.Absolute, 4},
	{0xC0, "CPY", addressing.Immediate, 2}, {0xC4, "CPY", addressing.ZeroPage, 3}, {0xCC, "CPY", addressing.Absolute, 4},
	// DEC
	{0xC6, "DEC", addressing.ZeroPage, 5}, {0xD6, "DEC", addressing.ZeroPageX, 6},
	{0xCE, "DEC", addressing.Absolute, 6}, {0xDE, "DEC", addressing.AbsoluteX, 7},
	// EOR
	{0x49, "EOR", addressing.Immediate, 2}, {0x45, "EOR", addressing.ZeroPage, 3},
	{0x55, "EOR", addressing.ZeroPageX, 4}, {0x4D, "EOR", addressing.Absolute, 4},
	{0x5D, "EOR", addressing.AbsoluteX, 4}, {0x59, "EOR", addressing.AbsoluteY, 4},
	{0x41, "EOR", addressing.IndirectX, 6}, {0x51, "EOR", addressing.IndirectY, 5},
	// Flag ops
	{0x18, "CLC", addressing.Implicit, 2}, {0x38, "SEC", addressing.Implicit, 2},
	{0x58, "CLI", addressing.Implicit, 2}, {0x78, "SEI", addressing.Implicit, 2},
	{0xB8, "CLV", addressing.Implicit, 2}, {0xD8, "CLD", addressing.Implicit, 2},
	{0xF8, "SED", addressing.Implicit, 2},
	// INC
	{0xE6, "INC", addressing.ZeroPage, 5}, {0xF6, "INC", addressing.ZeroPageX, 6},
	{0xEE, "INC", addressing.Absolute, 6}, {0xFE, "INC", addressing.AbsoluteX, 7},
	// JMP / JSR
	{0x4C, "JMP", addressing.Absolute, 3}, {0x6C, "JMP", addressing.Indirect, 5},
	{0x20, "JSR", addressing.Absolute, 6},
	// LDA
	{0xA9, "LDA", addressing.Immediate, 2}, {0xA5, "LDA", addressing.ZeroPage, 3},
	{0xB5, "LDA", addressing.ZeroPageX, 4}, {0xAD, "LDA", addressing.Absolute, 4},
	{0xBD, "LDA", addressing.AbsoluteX, 4}, {0xB9, "LDA", addressing.AbsoluteY, 4},
	{0xA1, "LDA", addressing.IndirectX, 6}, {0xB1, "LDA", addressing.IndirectY, 5},
	// LDX
	{0xA2, "LDX", addressing.Immediate, 2}, {0xA6, "LDX", addressing.ZeroPage, 3},
	{0xB6, "LDX", addressing.ZeroPageY, 4}, {0xAE, "LDX", addressing.Absolute, 4},
	{0xBE, "LDX", addressing.AbsoluteY, 4},
	// LDY
	{0xA0, "LDY", addressing.Immediate, 2}, {0xA4, "LDY", addressing.ZeroPage, 3},
	{0xB4, "LDY", addressing.ZeroPageX, 4}, {0xAC, "LDY", addressing.Absolute, 4},
	{0xBC, "LDY", addressing.AbsoluteX, 4},
	// LSR
	{0x4A, "LSR", addressing.Accumulator, 2}, {0x46, "LSR", addressing.ZeroPage, 5},
	{0x56, "LSR", addressing.ZeroPageX, 6}, {0x4E, "LSR", addressing.Absolute, 6},
	{0x5E, "LSR", addressing.AbsoluteX, 7},
	// NOP
	{0xEA, "NOP", addressing.Implicit, 2},
	// ORA
	{0x09, "ORA", addressing.Immediate, 2}, {0x05, "ORA", addressing.ZeroPage, 3},
	{0x15, "ORA", addressing.ZeroPageX, 4}, {0x0D, "ORA", addressing.Absolute, 4},
	{0x1D, "ORA", addressing.AbsoluteX, 4}, {0x19, "ORA", addressing.AbsoluteY, 4},
	{0x01, "ORA", addressing.IndirectX, 6}, {0x11, "ORA", addressing.IndirectY, 5},
	// Register transfers / inc-dec
	{0xAA, "TAX", addressing.Implicit, 2}, {0x8A, "TXA", addressing.Implicit, 2},
	{0xCA, "DEX", addressing.Implicit, 2}, {0xE8, "INX", addressing.Implicit, 2},
	{0xA8, "TAY", addressing.Implicit, 2}, {0x98, "TYA", addressing.Implicit, 2},
	{0x88, "DEY", addressing.Implicit, 2}, {0xC8, "INY", addressing.Implicit, 2},
	// ROL / ROR
	{0x2A, "ROL", addressing.Accumulator, 2}, {0x26, "ROL", addressing.ZeroPage, 5},
	{0x36, "ROL", addressing.ZeroPageX, 6}, {0x2E, "ROL", addressing.Absolute, 6},
	{0x3E, "ROL", addressing.AbsoluteX, 7},
	{0x6A, "ROR", addressing.Accumulator, 2}, {0x66, "ROR", addressing.ZeroPage, 5},
	{0x76, "ROR", addressing.ZeroPageX, 6}, {0x6E, "ROR", addressing.Absolute, 6},
	{0x7E, "ROR", addressing.AbsoluteX, 7},
	// RTI / RTS
	{0x40, "RTI", addressing.Implicit, 6}, {0x60, "RTS", addressing.Implicit, 6},
	// SBC
	{0xE9, "SBC", addressing.Immediate, 2}, {0xE5, "SBC", addressing.ZeroPage, 3},
	{0xF5, "SBC", addressing.ZeroPageX, 4}, {0xED, "SBC", addressing.Absolute, 4},
	{0xFD, "SBC", addressing.AbsoluteX, 4}, {0xF9, "SBC", addressing.AbsoluteY, 4},
	{0xE1, "SBC", addressing.IndirectX, 6}, {0xF1, "SBC", addressing.IndirectY, 5},
	// STA / STX / STY (stores always pay worst case, no page-cross variance)
	{0x85, "STA", addressing.ZeroPage, 3}, {0x95, "STA", addressing.ZeroPageX, 4},
	{0x8D, "STA", addressing.Absolute, 4}, {0x9D, "STA", addressing.AbsoluteX, 5},
	{0x99, "STA", addressing.AbsoluteY, 5}, {0x81, "STA", addressing.IndirectX, 6},
	{0x91, "STA", addressing.IndirectY, 6},
	{0x86, "STX", addressing.ZeroPage, 3}, {0x96, "STX", addressing.ZeroPageY, 4}, {0x8E, "STX", addressing.Absolute, 4},
	{0x84, "STY", addressing.ZeroPage, 3}, {0x94, "STY", addressing.ZeroPageX, 4}, {0x8C, "STY", addressing.Absolute, 4},
	// Stack
	{0x9A, "TXS", addressing.Implicit, 2}, {0xBA, "TSX", addressing.Implicit, 2},
	{0x48, "PHA", addressing.Implicit, 3}, {0x68, "PLA", addressing.Implicit, 4},
	{0x08, "PHP", addressing.Implicit, 3}, {0x28, "PLP", addressing.Implicit, 4},
}

// readPenaltyMnemonics is the set of load/compare/arithmetic mnemonics
// that incur a +1 cycle penalty on AbsoluteX/AbsoluteY/IndirectY when
// the effective address crosses a page. Stores and RMW instructions pay
// the worst-case cost unconditionally (already baked into BaseCycles
// above) and are not in this set.
var readPenaltyMnemonics = map[string]bool{
	"LDA": true, "LDX": true, "LDY": true,
	"AND": true, "ORA": true, "EOR": true,
	"ADC": true, "SBC": true, "CMP": true,
}

// IsReadMnemonic reports whether mnemonic belongs to the set of read
// instructions eligible for the indexed-addressing page-cross penalty.
func IsReadMnemonic(mnemonic string) bool {
	return readPenaltyMnemonics[mnemonic]
}

// illegalMnemonic is an additive, informational lookup naming the 93
// non-halting undocumented opcode slots for disassembler annotation
// purposes; the 12 halt opcodes are listed in illegalHalt instead. It
// never feeds Table: every illegal slot's Metadata keeps "???",
// Implemented=false, Size=1, BaseCycles=0 per the opcode table's
// invariant.
var illegalMnemonic = map[byte]string{
	0x07: "SLO", 0x17: "SLO", 0x0F: "SLO", 0x1F: "SLO", 0x1B: "SLO", 0x03: "SLO", 0x13: "SLO",
	0x27: "RLA", 0x37: "RLA", 0x2F: "RLA", 0x3F: "RLA", 0x3B: "RLA", 0x23: "RLA", 0x33: "RLA",
	0x47: "SRE", 0x57: "SRE", 0x4F: "SRE", 0x5F: "SRE", 0x5B: "SRE", 0x43: "SRE", 0x53: "SRE",
	0x67: "RRA", 0x77: "RRA", 0x6F: "RRA", 0x7F: "RRA", 0x7B: "RRA", 0x63: "RRA", 0x73: "RRA",
	0x87: "SAX", 0x97: "SAX", 0x8F: "SAX", 0x83: "SAX",
	0xA7: "LAX", 0xB7: "LAX", 0xAF: "LAX", 0xBF: "LAX", 0xA3: "LAX", 0xB3: "LAX",
	0xC7: "DCP", 0xD7: "DCP", 0xCF: "DCP", 0xDF: "DCP", 0xDB: "DCP", 0xC3: "DCP", 0xD3: "DCP",
	0xE7: "ISC", 0xF7: "ISC", 0xEF: "ISC", 0xFF: "ISC", 0xFB: "ISC", 0xE3: "ISC", 0xF3: "ISC",
	0x0B: "ANC", 0x2B: "ANC",
	0x4B: "ALR",
	0x6B: "ARR",
	0x8B: "XAA",
	0xCB: "AXS",
	0xAB: "OAL",
	0xBB: "LAS",
	0x9B: "TAS",
	0x9E: "SHX",
	0x9C: "SHY",
	0x93: "AHX", 0x9F: "AHX",
	0xEB: "SBC",
	0x1A: "NOP", 0x3A: "NOP", 0x5A: "NOP", 0x7A: "NOP", 0xDA: "NOP", 0xFA: "NOP",
	0x80: "NOP", 0x82: "NOP", 0x89: "NOP", 0xC2: "NOP", 0xE2: "NOP",
	0x04: "NOP", 0x44: "NOP", 0x64: "NOP",
	0x14: "NOP", 0x34: "NOP", 0x54: "NOP", 0x74: "NOP", 0xD4: "NOP", 0xF4: "NOP",
	0x0C: "NOP",
	0x1C: "NOP", 0x3C: "NOP", 0x5C: "NOP", 0x7C: "NOP", 0xDC: "NOP", 0xFC: "NOP",
}

// illegalHalt is the set of illegal opcodes that lock up an NMOS 6502
// (commonly called HLT/JAM/KIL) rather than perform any computation.
var illegalHalt = map[byte]bool{
	0x02: true, 0x12: true, 0x22: true, 0x32: true, 0x42: true, 0x52: true,
	0x62: true, 0x72: true, 0x92: true, 0xB2: true, 0xD2: true, 0xF2: true,
}

// byMnemonicMode is the assembler's reverse index: (mnemonic, mode) ->
// opcode byte, built once at init from the same documented data the
// forward Table is built from, so the two can never drift apart.
var byMnemonicMode = map[string]map[addressing.Mode]byte{}

func init() {
	for i := range Table {
		Table[i] = Metadata{Mnemonic: "???", Mode: addressing.Implicit, BaseCycles: 0, Size: 1, Implemented: false}
	}
	for _, e := range documented {
		Table[e.opcode] = Metadata{
			Mnemonic:    e.mnemo,
			Mode:        e.mode,
			BaseCycles:  e.cycles,
			Size:        e.mode.Size(),
			Implemented: true,
		}
		if byMnemonicMode[e.mnemo] == nil {
			byMnemonicMode[e.mnemo] = map[addressing.Mode]byte{}
		}
		byMnemonicMode[e.mnemo][e.mode] = e.opcode
	}
}

// OpcodeFor looks up the opcode byte encoding mnemonic in mode, the
// assembler's pass 2 reverse-index lookup.
func OpcodeFor(mnemonic string, mode addressing.Mode) (byte, bool) {
	modes, ok := byMnemonicMode[mnemonic]
	if !ok {
		return 0, false
	}
	op, ok := modes[mode]
	return op, ok
}

// ModesFor returns the set of addressing modes mnemonic is documented
// for, in no particular order, or nil for an unknown mnemonic.
func ModesFor(mnemonic string) []addressing.Mode {
	modes, ok := byMnemonicMode[mnemonic]
	if !ok {
		return nil
	}
	out := make([]addressing.Mode, 0, len(modes))
	for m := range modes {
		out = append(out, m)
	}
	return out
}

// IsMnemonic reports whether mnemonic is one of the 56 documented
// instruction names.
func IsMnemonic(mnemonic string) bool {
	_, ok := byMnemonicMode[mnemonic]
	return ok
}

// IllegalMnemonic returns the informal name for an undocumented opcode,
// for disassembler annotation only (see illegalMnemonic).
func IllegalMnemonic(op byte) (string, bool) {
	m, ok := illegalMnemonic[op]
	return m, ok
}

// Halts reports whether op is one of the NMOS halt/jam opcodes.
func Halts(op byte) bool {
	return illegalHalt[op]
}
