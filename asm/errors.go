package asm

import "fmt"

// ErrorKind categorizes every way assembly can fail, from character-
// level lexical problems through semantic problems only visible once
// the symbol table is complete.
type ErrorKind int

const (
	ErrLexical ErrorKind = iota
	ErrSyntax
	ErrInvalidMnemonic
	ErrInvalidAddressingMode
	ErrUndefinedLabel
	ErrDuplicateLabel
	ErrInvalidLabel
	ErrRangeError
	ErrBranchOutOfRange
	ErrInvalidDirective
)

// Aliases matching the taxonomy's proper names; used at call sites so
// error construction reads naturally (Kind: Syntax, Kind: UndefinedLabel).
const (
	LexicalError          = ErrLexical
	Syntax                = ErrSyntax
	InvalidMnemonic       = ErrInvalidMnemonic
	InvalidAddressingMode = ErrInvalidAddressingMode
	UndefinedLabel        = ErrUndefinedLabel
	DuplicateLabel        = ErrDuplicateLabel
	InvalidLabel          = ErrInvalidLabel
	RangeError            = ErrRangeError
	BranchOutOfRange      = ErrBranchOutOfRange
	InvalidDirective      = ErrInvalidDirective
)

func (k ErrorKind) String() string {
	switch k {
	case ErrLexical:
		return "LexicalError"
	case ErrSyntax:
		return "Syntax"
	case ErrInvalidMnemonic:
		return "InvalidMnemonic"
	case ErrInvalidAddressingMode:
		return "InvalidAddressingMode"
	case ErrUndefinedLabel:
		return "UndefinedLabel"
	case ErrDuplicateLabel:
		return "DuplicateLabel"
	case ErrInvalidLabel:
		return "InvalidLabel"
	case ErrRangeError:
		return "RangeError"
	case ErrBranchOutOfRange:
		return "BranchOutOfRange"
	case ErrInvalidDirective:
		return "InvalidDirective"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// AssemblerError is one collected failure. Assemble never stops at the
// first one; every AssemblerError it can find is returned together.
type AssemblerError struct {
	Kind     ErrorKind
	Message  string
	Location Span
}

func (e *AssemblerError) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Location.Line, e.Location.Column, e.Kind, e.Message)
}
