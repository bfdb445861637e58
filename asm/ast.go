package asm

// Span locates a run of source text for error reporting and the
// source map.
type Span struct {
	Line   int
	Column int
	Length int
}

// OperandKind is the syntactic shape of an instruction operand as the
// parser sees it, before label/constant resolution. Bare identifiers
// are tagged Absolute/AbsoluteX/AbsoluteY (the "no automatic zero-page
// folding" rule); the encoder additionally forces Relative whenever
// the owning mnemonic is a branch, regardless of this tag.
type OperandKind int

const (
	OperandAccumulator OperandKind = iota
	OperandImmediate
	OperandZeroPage
	OperandZeroPageX
	OperandZeroPageY
	OperandAbsolute
	OperandAbsoluteX
	OperandAbsoluteY
	OperandIndirect
	OperandIndirectX
	OperandIndirectY
)

// Operand is a parsed instruction operand, directive argument, or
// constant-definition value. If Literal is true, Value already holds
// the final number; otherwise Name must be resolved against the
// symbol table in the encoder's passes.
type Operand struct {
	Kind    OperandKind
	Literal bool
	Value   uint16
	Name    string
}

// AssemblyLine is one parsed logical line of source.
type AssemblyLine struct {
	LineNumber int

	Label        string
	ConstantName string
	ConstantExpr *Operand

	Mnemonic string
	Operand  *Operand

	Directive     string // ".org", ".byte", ".word"; empty if none
	DirectiveArgs []Operand

	Comment string
	Span    Span
}
