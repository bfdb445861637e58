package asm

import "testing"

func TestLexNumbers(t *testing.T) {
	tokens, errs := Lex("$1A %1010 42")
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	var got []Token
	for _, tok := range tokens {
		if tok.Kind == Whitespace {
			continue
		}
		got = append(got, tok)
	}
	if len(got) != 4 { // hex, binary, decimal, eof
		t.Fatalf("got %d tokens, want 4: %+v", len(got), got)
	}
	if got[0].Kind != HexNumber || got[0].Value != 0x1A {
		t.Errorf("token 0 = %+v, want HexNumber 0x1A", got[0])
	}
	if got[1].Kind != BinaryNumber || got[1].Value != 0x0A {
		t.Errorf("token 1 = %+v, want BinaryNumber 0x0A", got[1])
	}
	if got[2].Kind != DecimalNumber || got[2].Value != 42 {
		t.Errorf("token 2 = %+v, want DecimalNumber 42", got[2])
	}
}

func TestLexBadBinaryDigit(t *testing.T) {
	_, errs := Lex("%210")
	if len(errs) == 0 {
		t.Fatal("expected a lexical error for %210")
	}
}

func TestLexUnexpectedCharacter(t *testing.T) {
	tokens, errs := Lex("LDA @1")
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if tokens[len(tokens)-1].Kind != Eof {
		t.Error("scan did not terminate with Eof despite the bad character")
	}
}

func TestLexComment(t *testing.T) {
	tokens, errs := Lex("LDA #$01 ; load one\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	var found bool
	for _, tok := range tokens {
		if tok.Kind == Comment {
			found = true
			if tok.Text != " load one" {
				t.Errorf("comment text = %q, want %q", tok.Text, " load one")
			}
		}
	}
	if !found {
		t.Error("no Comment token produced")
	}
}
