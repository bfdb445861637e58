// Package asm implements the 6502 assembler: a lexer/parser/encoder
// pipeline that turns source text into a byte image, a symbol table,
// and a source map, collecting every error it finds along the way
// rather than aborting on the first one.
package asm

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

// Token kinds. Numbers are parsed to their final value by the lexer;
// the parser never sees raw digit strings.
const (
	Identifier Kind = iota
	DecimalNumber
	HexNumber
	BinaryNumber
	Colon
	Comma
	Hash
	Equal
	LParen
	RParen
	Dot
	Whitespace
	Newline
	Comment
	Eof
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "identifier"
	case DecimalNumber:
		return "decimal number"
	case HexNumber:
		return "hex number"
	case BinaryNumber:
		return "binary number"
	case Colon:
		return "':'"
	case Comma:
		return "','"
	case Hash:
		return "'#'"
	case Equal:
		return "'='"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Dot:
		return "'.'"
	case Whitespace:
		return "whitespace"
	case Newline:
		return "newline"
	case Comment:
		return "comment"
	case Eof:
		return "end of file"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is one lexed unit of source: its kind, any parsed payload
// (Text for identifiers/comments, Value for numbers), and its source
// location. Line is 1-based, Column is 0-based, Length > 0.
type Token struct {
	Kind   Kind
	Text   string
	Value  uint16
	Line   int
	Column int
	Length int
}
