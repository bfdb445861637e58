package asm

import "testing"

func mustParse(t *testing.T, src string) []AssemblyLine {
	t.Helper()
	tokens, lexErrs := Lex(src)
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	lines, errs := Parse(tokens)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return lines
}

func TestParseLabelAndInstruction(t *testing.T) {
	lines := mustParse(t, "LOOP: LDA #$01\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	ln := lines[0]
	if ln.Label != "LOOP" {
		t.Errorf("Label = %q, want LOOP", ln.Label)
	}
	if ln.Mnemonic != "LDA" {
		t.Errorf("Mnemonic = %q, want LDA", ln.Mnemonic)
	}
	if ln.Operand == nil || ln.Operand.Kind != OperandImmediate || ln.Operand.Value != 1 {
		t.Errorf("Operand = %+v, want Immediate 1", ln.Operand)
	}
}

func TestParseConstantDefinition(t *testing.T) {
	lines := mustParse(t, "SCREEN = $0400\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	ln := lines[0]
	if ln.ConstantName != "SCREEN" {
		t.Errorf("ConstantName = %q, want SCREEN", ln.ConstantName)
	}
	if !ln.ConstantExpr.Literal || ln.ConstantExpr.Value != 0x0400 {
		t.Errorf("ConstantExpr = %+v, want literal 0x0400", ln.ConstantExpr)
	}
}

func TestParseDirectiveOrgByteWord(t *testing.T) {
	lines := mustParse(t, ".org $8000\n.byte $01,$02,$03\n.word $1234\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0].Directive != ".org" || lines[0].DirectiveArgs[0].Value != 0x8000 {
		t.Errorf("line 0 = %+v", lines[0])
	}
	if lines[1].Directive != ".byte" || len(lines[1].DirectiveArgs) != 3 {
		t.Errorf("line 1 = %+v", lines[1])
	}
	if lines[2].Directive != ".word" || lines[2].DirectiveArgs[0].Value != 0x1234 {
		t.Errorf("line 2 = %+v", lines[2])
	}
}

func TestParseIndexedAndIndirectOperands(t *testing.T) {
	lines := mustParse(t, "STA $10,X\nLDA ($20,X)\nLDA ($20),Y\nJMP ($FFFC)\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	if lines[0].Operand.Kind != OperandZeroPageX {
		t.Errorf("line0 kind = %v, want ZeroPageX", lines[0].Operand.Kind)
	}
	if lines[1].Operand.Kind != OperandIndirectX {
		t.Errorf("line1 kind = %v, want IndirectX", lines[1].Operand.Kind)
	}
	if lines[2].Operand.Kind != OperandIndirectY {
		t.Errorf("line2 kind = %v, want IndirectY", lines[2].Operand.Kind)
	}
	if lines[3].Operand.Kind != OperandIndirect {
		t.Errorf("line3 kind = %v, want Indirect", lines[3].Operand.Kind)
	}
}

func TestParseAccumulatorOperand(t *testing.T) {
	lines := mustParse(t, "ASL A\nCLC\n")
	if lines[0].Operand == nil || lines[0].Operand.Kind != OperandAccumulator {
		t.Errorf("ASL A operand = %+v, want Accumulator", lines[0].Operand)
	}
	if lines[1].Operand != nil {
		t.Errorf("CLC operand = %+v, want nil (implicit)", lines[1].Operand)
	}
}

func TestParseLabelAsAbsoluteNoFolding(t *testing.T) {
	lines := mustParse(t, "JMP FOO\n")
	op := lines[0].Operand
	if op == nil || op.Kind != OperandAbsolute || op.Literal || op.Name != "FOO" {
		t.Errorf("operand = %+v, want unresolved Absolute FOO", op)
	}
}

func TestParseRecoversAfterSyntaxError(t *testing.T) {
	tokens, _ := Lex("LDA #$01 garbage\nSTA $10\n")
	lines, errs := Parse(tokens)
	if len(errs) == 0 {
		t.Fatal("expected a syntax error")
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines after recovery, want 2: %+v", len(lines), lines)
	}
	if lines[1].Mnemonic != "STA" {
		t.Errorf("second line mnemonic = %q, want STA (recovery should continue parsing)", lines[1].Mnemonic)
	}
}
