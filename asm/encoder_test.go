package asm

import (
	"testing"

	"github.com/go-test/deep"
)

func TestAssembleSimpleProgram(t *testing.T) {
	src := ".org $8000\nSTART:\n  LDA #$01\n  STA $10\n  JMP START\n"
	out := Assemble(src)
	if len(out.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", out.Errors)
	}
	want := []byte{
		0xA9, 0x01, // LDA #$01
		0x85, 0x10, // STA $10
		0x4C, 0x00, 0x80, // JMP $8000
	}
	if diff := deep.Equal(out.Bytes, want); diff != nil {
		t.Errorf("bytes diff: %v", diff)
	}
	if out.BaseAddress != 0x8000 {
		t.Errorf("BaseAddress = %#04x, want $8000", out.BaseAddress)
	}
	sym, ok := out.SymbolTable.Lookup("START")
	if !ok || sym.Value != 0x8000 {
		t.Errorf("START = %+v, ok=%v, want 0x8000", sym, ok)
	}
}

func TestAssembleBranchOffsets(t *testing.T) {
	src := ".org $8000\nLOOP:\n  DEX\n  BNE LOOP\n"
	out := Assemble(src)
	if len(out.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", out.Errors)
	}
	want := []byte{0xCA, 0xD0, 0xFD} // DEX; BNE -3
	if diff := deep.Equal(out.Bytes, want); diff != nil {
		t.Errorf("bytes diff: %v", diff)
	}
}

func TestAssembleBranchOutOfRange(t *testing.T) {
	var src string
	src = ".org $8000\nBNE TARGET\n"
	for i := 0; i < 200; i++ {
		src += "NOP\n"
	}
	src += "TARGET:\nNOP\n"
	out := Assemble(src)
	found := false
	for _, e := range out.Errors {
		if e.Kind == BranchOutOfRange {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a BranchOutOfRange error, got: %v", out.Errors)
	}
}

func TestAssembleUndefinedLabelAndLexicalErrors(t *testing.T) {
	src := "LDA $ZG\nSTA $100,X\nJMP FOO\n"
	out := Assemble(src)
	if len(out.Errors) < 3 {
		t.Fatalf("got %d errors, want >= 3: %v", len(out.Errors), out.Errors)
	}
	var sawLexical, sawUndefinedFoo bool
	for _, e := range out.Errors {
		if e.Kind == LexicalError && e.Location.Line == 1 {
			sawLexical = true
		}
		if e.Kind == UndefinedLabel && e.Location.Line == 3 {
			sawUndefinedFoo = true
		}
	}
	if !sawLexical {
		t.Errorf("expected a LexicalError on line 1, got: %v", out.Errors)
	}
	if !sawUndefinedFoo {
		t.Errorf("expected an UndefinedLabel for FOO on line 3, got: %v", out.Errors)
	}
}

func TestAssembleDuplicateLabel(t *testing.T) {
	src := ".org $8000\nHERE:\n  NOP\nHERE:\n  NOP\n"
	out := Assemble(src)
	var found bool
	for _, e := range out.Errors {
		if e.Kind == DuplicateLabel {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a DuplicateLabel error, got: %v", out.Errors)
	}
}

func TestAssembleImmediateRangeError(t *testing.T) {
	out := Assemble("LDA #$0100\n")
	var found bool
	for _, e := range out.Errors {
		if e.Kind == RangeError {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a RangeError for an out-of-range immediate, got: %v", out.Errors)
	}
}

func TestSourceMapRoundTrip(t *testing.T) {
	out := Assemble(".org $C000\nLDA #$01\nSTA $10\n")
	if len(out.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", out.Errors)
	}
	out.SourceMap.Finalize()
	line, ok := out.SourceMap.LineForAddress(0xC000)
	if !ok || line != 2 {
		t.Errorf("LineForAddress(0xC000) = %d, %v, want 2, true", line, ok)
	}
	start, end, ok := out.SourceMap.AddressRangeForLine(3)
	if !ok || start != 0xC002 || end != 0xC004 {
		t.Errorf("AddressRangeForLine(3) = %#04x,%#04x,%v, want 0xC002,0xC004,true", start, end, ok)
	}
}
