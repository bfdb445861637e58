package asm

import "strings"

// SymbolKind distinguishes a jump target from a named constant value;
// both share one namespace so a label and a constant can never collide.
type SymbolKind int

const (
	SymbolLabel SymbolKind = iota
	SymbolConstant
)

// Symbol is one entry of the symbol table: a label's address or a
// constant's value, plus where it was defined (for DuplicateLabel
// diagnostics).
type Symbol struct {
	Name      string
	Kind      SymbolKind
	Value     uint16
	DefinedAt Span
}

// SymbolTable maps label and constant names, case-insensitively, to
// their resolved values. Labels are populated during pass 1's layout
// walk; constants are resolved as their defining line is reached.
type SymbolTable struct {
	symbols map[string]Symbol
}

// NewSymbolTable returns an empty table ready for Define/Lookup.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]Symbol)}
}

func normalize(name string) string { return strings.ToUpper(name) }

// Define records sym, returning false without modifying the table if a
// symbol of the same name (case-insensitive) is already defined.
func (t *SymbolTable) Define(sym Symbol) bool {
	key := normalize(sym.Name)
	if _, exists := t.symbols[key]; exists {
		return false
	}
	t.symbols[key] = sym
	return true
}

// Lookup returns the symbol named name, if any.
func (t *SymbolTable) Lookup(name string) (Symbol, bool) {
	sym, ok := t.symbols[normalize(name)]
	return sym, ok
}

// Names returns every defined symbol name, for listings.
func (t *SymbolTable) Names() []string {
	names := make([]string, 0, len(t.symbols))
	for _, sym := range t.symbols {
		names = append(names, sym.Name)
	}
	return names
}
