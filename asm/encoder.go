package asm

import (
	"fmt"

	"github.com/corewerks/nmos6502/addressing"
	"github.com/corewerks/nmos6502/opcodes"
)

// AssemblerOutput is everything Assemble produces for one source file:
// the encoded bytes, the fully-resolved symbol table, a source map
// between addresses and source lines, any non-fatal warnings, and
// every error collected across all stages.
type AssemblerOutput struct {
	Bytes       []byte
	BaseAddress uint16
	SymbolTable *SymbolTable
	SourceMap   *SourceMap
	Warnings    []string
	Errors      []*AssemblerError
}

var branchMnemonics = map[string]bool{
	"BCC": true, "BCS": true, "BEQ": true, "BMI": true,
	"BNE": true, "BPL": true, "BVC": true, "BVS": true,
}

func isBranchMnemonic(m string) bool { return branchMnemonics[m] }

// Assemble runs the full lex -> parse -> layout -> encode pipeline
// over source, collecting errors from every stage rather than
// stopping at the first one.
func Assemble(source string) AssemblerOutput {
	out := AssemblerOutput{
		SymbolTable: NewSymbolTable(),
		SourceMap:   NewSourceMap(),
	}

	tokens, lexErrs := Lex(source)
	for _, le := range lexErrs {
		out.Errors = append(out.Errors, &AssemblerError{
			Kind:     LexicalError,
			Message:  le.Message,
			Location: Span{Line: le.Line, Column: le.Column, Length: 1},
		})
	}

	lines, parseErrs := Parse(tokens)
	out.Errors = append(out.Errors, parseErrs...)

	sizes, layoutErrs := layoutPass(lines, out.SymbolTable)
	out.Errors = append(out.Errors, layoutErrs...)

	bytes, base, encodeErrs := encodePass(lines, sizes, out.SymbolTable, out.SourceMap)
	out.Errors = append(out.Errors, encodeErrs...)
	out.Bytes = bytes
	out.BaseAddress = base

	out.SourceMap.Finalize()
	return out
}

// layoutPass is pass 1: it walks the parsed lines maintaining a
// current address (moved by .org and by each instruction/directive's
// size), collects label and constant definitions into the symbol
// table, and records the byte size each line will encode to so pass 2
// never has to re-derive it.
func layoutPass(lines []AssemblyLine, symbols *SymbolTable) ([]uint8, []*AssemblerError) {
	var errs []*AssemblerError
	sizes := make([]uint8, len(lines))
	var addr uint16
	haveOrg := false

	for i, ln := range lines {
		if ln.Label != "" {
			if !symbols.Define(Symbol{Name: ln.Label, Kind: SymbolLabel, Value: addr, DefinedAt: ln.Span}) {
				errs = append(errs, &AssemblerError{Kind: DuplicateLabel, Message: fmt.Sprintf("label %q already defined", ln.Label), Location: ln.Span})
			}
		}

		if ln.ConstantName != "" {
			val, ok := resolveConstantExpr(ln.ConstantExpr, symbols)
			if !ok {
				errs = append(errs, &AssemblerError{Kind: UndefinedLabel, Message: fmt.Sprintf("undefined symbol %q in constant expression", ln.ConstantExpr.Name), Location: ln.Span})
			}
			if !symbols.Define(Symbol{Name: ln.ConstantName, Kind: SymbolConstant, Value: val, DefinedAt: ln.Span}) {
				errs = append(errs, &AssemblerError{Kind: DuplicateLabel, Message: fmt.Sprintf("symbol %q already defined", ln.ConstantName), Location: ln.Span})
			}
			continue
		}

		if ln.Directive == ".org" {
			if len(ln.DirectiveArgs) != 1 || !ln.DirectiveArgs[0].Literal {
				errs = append(errs, &AssemblerError{Kind: Syntax, Message: ".org requires one literal address", Location: ln.Span})
				continue
			}
			addr = ln.DirectiveArgs[0].Value
			haveOrg = true
			continue
		}

		if !haveOrg && (ln.Mnemonic != "" || ln.Directive != "") {
			haveOrg = true // default origin 0x0000 if source never sets one
		}

		size := instructionSize(ln)
		sizes[i] = size
		addr += uint16(size)
	}
	return sizes, errs
}

// instructionSize computes how many bytes a line will encode to,
// without needing the symbol table: branch mnemonics are always 2
// bytes (opcode + relative offset) regardless of the parsed operand
// shape, and a bare label operand, which the parser always tags
// absolute, takes the 3-byte form for non-branch instructions, since the
// assembler never folds labels to zero page automatically.
func instructionSize(ln AssemblyLine) uint8 {
	switch ln.Directive {
	case ".byte":
		return uint8(len(ln.DirectiveArgs))
	case ".word":
		return uint8(len(ln.DirectiveArgs) * 2)
	}

	if ln.Mnemonic == "" {
		return 0
	}
	if isBranchMnemonic(ln.Mnemonic) {
		return 2
	}
	if ln.Operand == nil {
		return 1
	}
	switch ln.Operand.Kind {
	case OperandAccumulator:
		return 1
	case OperandImmediate, OperandZeroPage, OperandZeroPageX, OperandZeroPageY, OperandIndirectX, OperandIndirectY:
		return 2
	default:
		return 3
	}
}

// resolveConstantExpr resolves a constant-definition or operand
// expression against symbols, returning ok=false if it names an
// undefined symbol.
func resolveConstantExpr(expr *Operand, symbols *SymbolTable) (uint16, bool) {
	if expr.Literal {
		return expr.Value, true
	}
	sym, ok := symbols.Lookup(expr.Name)
	if !ok {
		return 0, false
	}
	return sym.Value, true
}

// encodePass is pass 2: it re-walks the lines with the now-complete
// symbol table, emitting bytes and recording source map entries.
func encodePass(lines []AssemblyLine, sizes []uint8, symbols *SymbolTable, srcMap *SourceMap) ([]byte, uint16, []*AssemblerError) {
	var errs []*AssemblerError
	var addr uint16
	var base uint16
	haveBase := false
	var buf []byte

	emit := func(a uint16, data []byte, line int) {
		if !haveBase {
			base = a
			haveBase = true
		}
		gap := int(a) - int(base) - len(buf)
		for i := 0; i < gap; i++ {
			buf = append(buf, 0)
		}
		buf = append(buf, data...)
		srcMap.Record(a, line, uint8(len(data)))
	}

	for i, ln := range lines {
		if ln.ConstantName != "" {
			continue
		}
		if ln.Directive == ".org" {
			if len(ln.DirectiveArgs) == 1 && ln.DirectiveArgs[0].Literal {
				addr = ln.DirectiveArgs[0].Value
			}
			continue
		}
		if ln.Directive == ".byte" {
			data := make([]byte, 0, len(ln.DirectiveArgs))
			for _, arg := range ln.DirectiveArgs {
				v, ok := resolveOperandValue(&arg, symbols)
				if !ok {
					errs = append(errs, &AssemblerError{Kind: UndefinedLabel, Message: fmt.Sprintf("undefined symbol %q", arg.Name), Location: ln.Span})
					continue
				}
				if v > 0xFF {
					errs = append(errs, &AssemblerError{Kind: RangeError, Message: fmt.Sprintf(".byte value $%X out of range", v), Location: ln.Span})
					continue
				}
				data = append(data, byte(v))
			}
			emit(addr, data, ln.LineNumber)
			addr += uint16(len(data))
			continue
		}
		if ln.Directive == ".word" {
			data := make([]byte, 0, len(ln.DirectiveArgs)*2)
			for _, arg := range ln.DirectiveArgs {
				v, ok := resolveOperandValue(&arg, symbols)
				if !ok {
					errs = append(errs, &AssemblerError{Kind: UndefinedLabel, Message: fmt.Sprintf("undefined symbol %q", arg.Name), Location: ln.Span})
					continue
				}
				data = append(data, byte(v), byte(v>>8))
			}
			emit(addr, data, ln.LineNumber)
			addr += uint16(len(data))
			continue
		}
		if ln.Mnemonic == "" {
			continue
		}

		data, err := encodeInstruction(ln, addr, symbols)
		if err != nil {
			errs = append(errs, err)
			addr += uint16(sizes[i])
			continue
		}
		emit(addr, data, ln.LineNumber)
		addr += uint16(len(data))
	}

	return buf, base, errs
}

func resolveOperandValue(op *Operand, symbols *SymbolTable) (uint16, bool) {
	if op.Literal {
		return op.Value, true
	}
	sym, ok := symbols.Lookup(op.Name)
	if !ok {
		return 0, false
	}
	return sym.Value, true
}

// encodeInstruction resolves mode and operand bytes for one
// instruction line, already positioned at address addr, and returns
// its encoded bytes.
func encodeInstruction(ln AssemblyLine, addr uint16, symbols *SymbolTable) ([]byte, *AssemblerError) {
	mnemonic := ln.Mnemonic

	if isBranchMnemonic(mnemonic) {
		if ln.Operand == nil {
			return nil, &AssemblerError{Kind: Syntax, Message: fmt.Sprintf("%s requires a target operand", mnemonic), Location: ln.Span}
		}
		target, ok := resolveOperandValue(ln.Operand, symbols)
		if !ok {
			return nil, &AssemblerError{Kind: UndefinedLabel, Message: fmt.Sprintf("undefined symbol %q", ln.Operand.Name), Location: ln.Span}
		}
		op, ok := opcodes.OpcodeFor(mnemonic, addressing.Relative)
		if !ok {
			return nil, &AssemblerError{Kind: InvalidMnemonic, Message: fmt.Sprintf("unknown mnemonic %q", mnemonic), Location: ln.Span}
		}
		offset := int(target) - int(addr+2)
		if offset < -128 || offset > 127 {
			return nil, &AssemblerError{Kind: BranchOutOfRange, Message: fmt.Sprintf("branch target $%04X out of range from $%04X", target, addr), Location: ln.Span}
		}
		return []byte{op, byte(int8(offset))}, nil
	}

	if !opcodes.IsMnemonic(mnemonic) {
		return nil, &AssemblerError{Kind: InvalidMnemonic, Message: fmt.Sprintf("unknown mnemonic %q", mnemonic), Location: ln.Span}
	}

	if ln.Operand == nil {
		op, ok := opcodes.OpcodeFor(mnemonic, addressing.Implicit)
		if !ok {
			return nil, &AssemblerError{Kind: InvalidAddressingMode, Message: fmt.Sprintf("%s requires an operand", mnemonic), Location: ln.Span}
		}
		return []byte{op}, nil
	}

	mode := ln.Operand.Kind
	switch mode {
	case OperandAccumulator:
		am := addressing.Accumulator
		op, ok := opcodes.OpcodeFor(mnemonic, am)
		if !ok {
			return nil, invalidMode(mnemonic, ln.Span)
		}
		return []byte{op}, nil

	case OperandImmediate:
		v, ok := resolveOperandValue(ln.Operand, symbols)
		if !ok {
			return nil, undefined(ln.Operand.Name, ln.Span)
		}
		if v > 0xFF {
			return nil, rangeErr(v, ln.Span)
		}
		op, ok := opcodes.OpcodeFor(mnemonic, addressing.Immediate)
		if !ok {
			return nil, invalidMode(mnemonic, ln.Span)
		}
		return []byte{op, byte(v)}, nil

	case OperandZeroPage, OperandZeroPageX, OperandZeroPageY:
		v, ok := resolveOperandValue(ln.Operand, symbols)
		if !ok {
			return nil, undefined(ln.Operand.Name, ln.Span)
		}
		if v > 0xFF {
			return nil, rangeErr(v, ln.Span)
		}
		am := zeroPageAddrMode(mode)
		op, ok := opcodes.OpcodeFor(mnemonic, am)
		if !ok {
			return nil, invalidMode(mnemonic, ln.Span)
		}
		return []byte{op, byte(v)}, nil

	case OperandAbsolute, OperandAbsoluteX, OperandAbsoluteY:
		v, ok := resolveOperandValue(ln.Operand, symbols)
		if !ok {
			return nil, undefined(ln.Operand.Name, ln.Span)
		}
		am := absoluteAddrMode(mode)
		op, ok := opcodes.OpcodeFor(mnemonic, am)
		if !ok {
			return nil, invalidMode(mnemonic, ln.Span)
		}
		return []byte{op, byte(v), byte(v >> 8)}, nil

	case OperandIndirect:
		v, ok := resolveOperandValue(ln.Operand, symbols)
		if !ok {
			return nil, undefined(ln.Operand.Name, ln.Span)
		}
		op, ok := opcodes.OpcodeFor(mnemonic, addressing.Indirect)
		if !ok {
			return nil, invalidMode(mnemonic, ln.Span)
		}
		return []byte{op, byte(v), byte(v >> 8)}, nil

	case OperandIndirectX:
		v, ok := resolveOperandValue(ln.Operand, symbols)
		if !ok {
			return nil, undefined(ln.Operand.Name, ln.Span)
		}
		if v > 0xFF {
			return nil, rangeErr(v, ln.Span)
		}
		op, ok := opcodes.OpcodeFor(mnemonic, addressing.IndirectX)
		if !ok {
			return nil, invalidMode(mnemonic, ln.Span)
		}
		return []byte{op, byte(v)}, nil

	case OperandIndirectY:
		v, ok := resolveOperandValue(ln.Operand, symbols)
		if !ok {
			return nil, undefined(ln.Operand.Name, ln.Span)
		}
		if v > 0xFF {
			return nil, rangeErr(v, ln.Span)
		}
		op, ok := opcodes.OpcodeFor(mnemonic, addressing.IndirectY)
		if !ok {
			return nil, invalidMode(mnemonic, ln.Span)
		}
		return []byte{op, byte(v)}, nil

	default:
		return nil, invalidMode(mnemonic, ln.Span)
	}
}

func zeroPageAddrMode(k OperandKind) addressing.Mode {
	switch k {
	case OperandZeroPageX:
		return addressing.ZeroPageX
	case OperandZeroPageY:
		return addressing.ZeroPageY
	default:
		return addressing.ZeroPage
	}
}

func absoluteAddrMode(k OperandKind) addressing.Mode {
	switch k {
	case OperandAbsoluteX:
		return addressing.AbsoluteX
	case OperandAbsoluteY:
		return addressing.AbsoluteY
	default:
		return addressing.Absolute
	}
}

func invalidMode(mnemonic string, span Span) *AssemblerError {
	return &AssemblerError{Kind: InvalidAddressingMode, Message: fmt.Sprintf("%s does not support this addressing mode", mnemonic), Location: span}
}

func undefined(name string, span Span) *AssemblerError {
	return &AssemblerError{Kind: UndefinedLabel, Message: fmt.Sprintf("undefined symbol %q", name), Location: span}
}

func rangeErr(v uint16, span Span) *AssemblerError {
	return &AssemblerError{Kind: RangeError, Message: fmt.Sprintf("value $%X out of range for this addressing mode", v), Location: span}
}
