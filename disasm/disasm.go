// Package disasm turns a byte stream back into 6502 assembly text. It
// walks the same opcodes.Table the cpu package executes against, so
// sizes and mnemonics can never drift out of step between execution
// and disassembly. Adapted from the teacher's disassemble.Step, which
// duplicated the opcode table as its own giant switch: here that table
// lives in one place and disasm just formats what it says.
package disasm

import (
	"fmt"
	"strings"

	"github.com/corewerks/nmos6502/addressing"
	"github.com/corewerks/nmos6502/opcodes"
)

// Instruction is one decoded record: either a documented opcode with its
// operand bytes, or (when Illegal) a single raw byte the caller should
// render as a .byte pseudo-op.
type Instruction struct {
	Address    uint16
	Opcode     uint8
	Mnemonic   string
	Mode       addressing.Mode
	Operand    []uint8
	SizeBytes  uint8
	BaseCycles uint8
	Illegal    bool
}

// Disassemble decodes data as a sequence of instructions starting at
// address start. It does not follow control flow: JMP/JSR targets are
// not chased, so data that is not in fact code will simply disassemble
// as whatever instructions its bytes happen to spell out.
func Disassemble(data []byte, start uint16) []Instruction {
	out := make([]Instruction, 0, len(data))
	addr := start
	for i := 0; i < len(data); {
		op := data[i]
		meta := opcodes.Table[op]
		size := int(meta.Size)
		if size < 1 {
			size = 1
		}
		// A truncated trailing instruction (not enough bytes left for
		// its operand) is reported as a one-byte .byte pseudo-record.
		if i+size > len(data) {
			out = append(out, Instruction{Address: addr, Opcode: op, Mnemonic: ".byte", Mode: addressing.Implicit, SizeBytes: 1, Illegal: true})
			i++
			addr++
			continue
		}
		var operand []uint8
		for b := 1; b < size && i+b < len(data); b++ {
			operand = append(operand, data[i+b])
		}
		out = append(out, Instruction{
			Address:    addr,
			Opcode:     op,
			Mnemonic:   meta.Mnemonic,
			Mode:       meta.Mode,
			Operand:    operand,
			SizeBytes:  meta.Size,
			BaseCycles: meta.BaseCycles,
			Illegal:    !meta.Implemented,
		})
		i += size
		addr += uint16(size)
	}
	return out
}

// FormatOptions controls the rendering of a disassembly listing.
type FormatOptions struct {
	ShowOffsets bool // prefix each line with its address
	HexDump     bool // prefix each line with its raw bytes
}

// Format renders instructions as assembly text, one instruction per
// line. Documented opcodes render in conventional 6502 operand syntax
// that the asm package reassembles to the same bytes, except that an
// Absolute, AbsoluteX or AbsoluteY operand below $0100 is read back by
// the assembler as a zero-page operand. Illegal opcodes and truncated
// trailing instructions render as a .byte pseudo-op, annotated with the
// opcode's informal mnemonic when one is known.
func Format(instructions []Instruction, opt FormatOptions) string {
	var b strings.Builder
	for _, inst := range instructions {
		if opt.ShowOffsets {
			fmt.Fprintf(&b, "%04X  ", inst.Address)
		}
		if opt.HexDump {
			fmt.Fprintf(&b, "%02X ", inst.Opcode)
			for _, o := range inst.Operand {
				fmt.Fprintf(&b, "%02X ", o)
			}
			for pad := len(inst.Operand); pad < 2; pad++ {
				b.WriteString("   ")
			}
			b.WriteString(" ")
		}
		if inst.Illegal {
			if name, ok := opcodes.IllegalMnemonic(inst.Opcode); ok {
				fmt.Fprintf(&b, ".byte $%02X ; %s\n", inst.Opcode, name)
			} else {
				fmt.Fprintf(&b, ".byte $%02X\n", inst.Opcode)
			}
			continue
		}
		b.WriteString(operandSyntax(inst))
		b.WriteString("\n")
	}
	return b.String()
}

func operandSyntax(inst Instruction) string {
	switch inst.Mode {
	case addressing.Implicit:
		return inst.Mnemonic
	case addressing.Accumulator:
		return inst.Mnemonic + " A"
	case addressing.Immediate:
		return fmt.Sprintf("%s #$%02X", inst.Mnemonic, inst.Operand[0])
	case addressing.ZeroPage:
		return fmt.Sprintf("%s $%02X", inst.Mnemonic, inst.Operand[0])
	case addressing.ZeroPageX:
		return fmt.Sprintf("%s $%02X,X", inst.Mnemonic, inst.Operand[0])
	case addressing.ZeroPageY:
		return fmt.Sprintf("%s $%02X,Y", inst.Mnemonic, inst.Operand[0])
	case addressing.Relative:
		target := inst.Address + uint16(inst.SizeBytes) + uint16(int8(inst.Operand[0]))
		return fmt.Sprintf("%s $%04X", inst.Mnemonic, target)
	case addressing.Absolute:
		return fmt.Sprintf("%s $%04X", inst.Mnemonic, le16(inst.Operand))
	case addressing.AbsoluteX:
		return fmt.Sprintf("%s $%04X,X", inst.Mnemonic, le16(inst.Operand))
	case addressing.AbsoluteY:
		return fmt.Sprintf("%s $%04X,Y", inst.Mnemonic, le16(inst.Operand))
	case addressing.Indirect:
		return fmt.Sprintf("%s ($%04X)", inst.Mnemonic, le16(inst.Operand))
	case addressing.IndirectX:
		return fmt.Sprintf("%s ($%02X,X)", inst.Mnemonic, inst.Operand[0])
	case addressing.IndirectY:
		return fmt.Sprintf("%s ($%02X),Y", inst.Mnemonic, inst.Operand[0])
	default:
		return inst.Mnemonic
	}
}

func le16(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return uint16(b[0]) | uint16(b[1])<<8
}
