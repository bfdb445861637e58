package disasm

import (
	"strings"
	"testing"
)

func TestDisassembleDocumented(t *testing.T) {
	data := []byte{0xA9, 0x42, 0x8D, 0x00, 0x20, 0x60} // LDA #$42; STA $2000; RTS
	got := Disassemble(data, 0x8000)
	want := []struct {
		mnemonic string
		address  uint16
		size     uint8
	}{
		{"LDA", 0x8000, 2},
		{"STA", 0x8002, 3},
		{"RTS", 0x8005, 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d instructions, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Mnemonic != w.mnemonic || got[i].Address != w.address || got[i].SizeBytes != w.size {
			t.Errorf("instruction %d = %+v, want mnemonic %s address %#04x size %d", i, got[i], w.mnemonic, w.address, w.size)
		}
	}
}

func TestDisassembleIllegalAsByteDirective(t *testing.T) {
	data := []byte{0x02} // HLT/JAM, undocumented and halting
	got := Disassemble(data, 0x8000)
	if len(got) != 1 || !got[0].Illegal {
		t.Fatalf("Disassemble(0x02) = %+v, want one illegal instruction", got)
	}
	out := Format(got, FormatOptions{})
	if !strings.HasPrefix(out, ".byte $02") {
		t.Errorf("Format illegal opcode = %q, want .byte pseudo-op", out)
	}
}

func TestFormatOperandSyntax(t *testing.T) {
	data := []byte{0xA9, 0x42, 0x8D, 0x00, 0x20, 0xA1, 0x10, 0xB1, 0x20, 0x6C, 0x00, 0x30}
	got := Disassemble(data, 0x8000)
	out := Format(got, FormatOptions{})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := []string{
		"LDA #$42",
		"STA $2000",
		"LDA ($10,X)",
		"LDA ($20),Y",
		"JMP ($3000)",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(lines), len(want), lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestFormatShowOffsetsAndHexDump(t *testing.T) {
	data := []byte{0xEA} // NOP
	got := Disassemble(data, 0x0600)
	out := Format(got, FormatOptions{ShowOffsets: true, HexDump: true})
	if !strings.HasPrefix(out, "0600  EA") {
		t.Errorf("Format with offsets/hex = %q, want prefix with address and opcode byte", out)
	}
	if !strings.Contains(out, "NOP") {
		t.Errorf("Format output = %q, want NOP", out)
	}
}
