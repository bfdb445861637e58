package asm

import (
	"fmt"
	"strings"
)

// Parse consumes a lexed token stream line-by-line into AssemblyLine
// records, along with the parser-stage errors it found (Syntax,
// InvalidLabel, InvalidDirective; InvalidMnemonic is deferred to the
// encoder, which is the only stage that knows the opcode table). A
// line with a syntax error is recorded up to the point of failure and
// parsing resumes at the next newline — one bad line never aborts the
// whole source.
func Parse(tokens []Token) ([]AssemblyLine, []*AssemblerError) {
	stream := NewTokenStream(tokens)
	var lines []AssemblyLine
	var errs []*AssemblerError

	for {
		stream.SkipWhitespace()
		for stream.Peek().Kind == Newline {
			stream.Consume()
			stream.SkipWhitespace()
		}
		if stream.IsEOF() {
			break
		}
		ln, lnErrs := parseLine(stream)
		errs = append(errs, lnErrs...)
		if ln != nil {
			lines = append(lines, *ln)
		}
	}
	return lines, errs
}

func parseLine(stream *TokenStream) (*AssemblyLine, []*AssemblerError) {
	var errs []*AssemblerError
	start := stream.Peek()
	ln := &AssemblyLine{
		LineNumber: start.Line,
		Span:       Span{Line: start.Line, Column: start.Column, Length: start.Length},
	}

	// Label definition: IDENT ':'
	if stream.Peek().Kind == Identifier && stream.PeekN(1).Kind == Colon {
		nameTok := stream.Consume()
		stream.Consume() // colon
		if !isValidSymbolName(nameTok.Text) {
			errs = append(errs, &AssemblerError{Kind: InvalidLabel, Message: fmt.Sprintf("invalid label name %q", nameTok.Text), Location: ln.Span})
		}
		ln.Label = nameTok.Text
		stream.SkipWhitespace()
	}

	// Constant definition: IDENT '=' expression
	eq := 1
	for stream.PeekN(eq).Kind == Whitespace {
		eq++
	}
	if stream.Peek().Kind == Identifier && stream.PeekN(eq).Kind == Equal {
		nameTok := stream.Consume()
		stream.SkipWhitespace()
		stream.Consume() // equal
		stream.SkipWhitespace()
		if !isValidSymbolName(nameTok.Text) {
			errs = append(errs, &AssemblerError{Kind: InvalidLabel, Message: fmt.Sprintf("invalid constant name %q", nameTok.Text), Location: ln.Span})
		}
		val, name, literal, err := parseValueAtom(stream)
		if err != nil {
			errs = append(errs, err)
			recoverLine(stream)
			return ln, errs
		}
		ln.ConstantName = nameTok.Text
		ln.ConstantExpr = &Operand{Literal: literal, Value: val, Name: name}
		finishLine(stream, ln, &errs)
		return ln, errs
	}

	stream.SkipWhitespace()

	// Directive: '.' IDENT args...
	if stream.Peek().Kind == Dot {
		stream.Consume()
		nameTok := stream.Peek()
		if nameTok.Kind != Identifier {
			errs = append(errs, syntaxErr(nameTok, "expected directive name after '.'"))
			recoverLine(stream)
			return ln, errs
		}
		stream.Consume()
		directive := strings.ToLower(nameTok.Text)
		switch directive {
		case "org", "byte", "word":
			ln.Directive = "." + directive
		default:
			errs = append(errs, &AssemblerError{Kind: InvalidDirective, Message: fmt.Sprintf("unknown directive %q", nameTok.Text), Location: ln.Span})
			recoverLine(stream)
			return ln, errs
		}
		stream.SkipWhitespace()
		for !isLineEnd(stream.Peek()) {
			val, name, literal, err := parseValueAtom(stream)
			if err != nil {
				errs = append(errs, err)
				recoverLine(stream)
				return ln, errs
			}
			ln.DirectiveArgs = append(ln.DirectiveArgs, Operand{Literal: literal, Value: val, Name: name})
			stream.SkipWhitespace()
			if stream.Peek().Kind == Comma {
				stream.Consume()
				stream.SkipWhitespace()
				continue
			}
			break
		}
		finishLine(stream, ln, &errs)
		return ln, errs
	}

	// Instruction: MNEMONIC operand?
	if stream.Peek().Kind == Identifier {
		mnemTok := stream.Consume()
		ln.Mnemonic = strings.ToUpper(mnemTok.Text)
		stream.SkipWhitespace()
		if !isLineEnd(stream.Peek()) {
			op, err := parseOperand(stream)
			if err != nil {
				errs = append(errs, err)
				recoverLine(stream)
				return ln, errs
			}
			ln.Operand = op
		}
		finishLine(stream, ln, &errs)
		return ln, errs
	}

	finishLine(stream, ln, &errs)
	return ln, errs
}

func isLineEnd(t Token) bool {
	return t.Kind == Newline || t.Kind == Eof || t.Kind == Comment
}

// finishLine consumes a trailing comment and the line-ending newline.
// Anything else left over is a syntax error; the line is recovered by
// skipping to the next newline.
func finishLine(stream *TokenStream, ln *AssemblyLine, errs *[]*AssemblerError) {
	stream.SkipWhitespace()
	if stream.Peek().Kind == Comment {
		ln.Comment = stream.Consume().Text
		stream.SkipWhitespace()
	}
	switch stream.Peek().Kind {
	case Newline:
		stream.Consume()
	case Eof:
	default:
		*errs = append(*errs, syntaxErr(stream.Peek(), "unexpected trailing token"))
		recoverLine(stream)
	}
}

func recoverLine(stream *TokenStream) {
	for {
		k := stream.Peek().Kind
		if k == Newline || k == Eof {
			break
		}
		stream.Consume()
	}
	if stream.Peek().Kind == Newline {
		stream.Consume()
	}
}

// parseOperand parses one instruction operand. Returning (nil, nil)
// means no operand is present (implicit addressing; the accumulator
// form needs an explicit A).
func parseOperand(stream *TokenStream) (*Operand, *AssemblerError) {
	stream.SkipWhitespace()
	t := stream.Peek()

	switch t.Kind {
	case Newline, Eof, Comment:
		return nil, nil

	case Hash:
		stream.Consume()
		stream.SkipWhitespace()
		val, name, literal, err := parseValueAtom(stream)
		if err != nil {
			return nil, err
		}
		return &Operand{Kind: OperandImmediate, Literal: literal, Value: val, Name: name}, nil

	case LParen:
		return parseIndirectOperand(stream)

	case Identifier:
		if strings.EqualFold(t.Text, "A") && isAccumulatorBare(stream) {
			stream.Consume()
			return &Operand{Kind: OperandAccumulator}, nil
		}
		return parseDirectOperand(stream)

	case DecimalNumber, HexNumber, BinaryNumber:
		return parseDirectOperand(stream)

	default:
		return nil, syntaxErr(t, fmt.Sprintf("unexpected %s in operand", t.Kind))
	}
}

// isAccumulatorBare reports whether the 'A' identifier at the cursor
// stands alone as the operand (shift/rotate "A" form) rather than
// being the start of a one-letter label or constant reference.
func isAccumulatorBare(stream *TokenStream) bool {
	n := 1
	for stream.PeekN(n).Kind == Whitespace {
		n++
	}
	switch stream.PeekN(n).Kind {
	case Newline, Eof, Comment:
		return true
	default:
		return false
	}
}

func parseDirectOperand(stream *TokenStream) (*Operand, *AssemblerError) {
	val, name, literal, err := parseValueAtom(stream)
	if err != nil {
		return nil, err
	}
	kind := OperandAbsolute
	if literal && val <= 0xFF {
		kind = OperandZeroPage
	}
	stream.SkipWhitespace()
	if stream.Peek().Kind == Comma {
		stream.Consume()
		stream.SkipWhitespace()
		idxTok := stream.Peek()
		if idxTok.Kind != Identifier {
			return nil, syntaxErr(idxTok, "expected index register X or Y")
		}
		switch strings.ToUpper(idxTok.Text) {
		case "X":
			stream.Consume()
			if kind == OperandZeroPage {
				kind = OperandZeroPageX
			} else {
				kind = OperandAbsoluteX
			}
		case "Y":
			stream.Consume()
			if kind == OperandZeroPage {
				kind = OperandZeroPageY
			} else {
				kind = OperandAbsoluteY
			}
		default:
			return nil, syntaxErr(idxTok, "expected index register X or Y")
		}
	}
	return &Operand{Kind: kind, Literal: literal, Value: val, Name: name}, nil
}

func parseIndirectOperand(stream *TokenStream) (*Operand, *AssemblerError) {
	stream.Consume() // '('
	stream.SkipWhitespace()
	val, name, literal, err := parseValueAtom(stream)
	if err != nil {
		return nil, err
	}
	stream.SkipWhitespace()

	if stream.Peek().Kind == Comma {
		stream.Consume()
		stream.SkipWhitespace()
		idxTok := stream.Peek()
		if idxTok.Kind != Identifier || !strings.EqualFold(idxTok.Text, "X") {
			return nil, syntaxErr(idxTok, "expected ,X before ')'")
		}
		stream.Consume()
		stream.SkipWhitespace()
		if _, ok := stream.Expect(RParen); !ok {
			return nil, syntaxErr(stream.Peek(), "expected ')'")
		}
		return &Operand{Kind: OperandIndirectX, Literal: literal, Value: val, Name: name}, nil
	}

	if _, ok := stream.Expect(RParen); !ok {
		return nil, syntaxErr(stream.Peek(), "expected ')'")
	}
	stream.SkipWhitespace()
	if stream.Peek().Kind == Comma {
		stream.Consume()
		stream.SkipWhitespace()
		idxTok := stream.Peek()
		if idxTok.Kind != Identifier || !strings.EqualFold(idxTok.Text, "Y") {
			return nil, syntaxErr(idxTok, "expected ,Y after ')'")
		}
		stream.Consume()
		return &Operand{Kind: OperandIndirectY, Literal: literal, Value: val, Name: name}, nil
	}
	return &Operand{Kind: OperandIndirect, Literal: literal, Value: val, Name: name}, nil
}

// parseValueAtom consumes either a number token (a literal value) or
// an identifier token (a label/constant reference to resolve later).
func parseValueAtom(stream *TokenStream) (value uint16, name string, literal bool, err *AssemblerError) {
	t := stream.Peek()
	switch t.Kind {
	case DecimalNumber, HexNumber, BinaryNumber:
		stream.Consume()
		return t.Value, "", true, nil
	case Identifier:
		stream.Consume()
		return 0, t.Text, false, nil
	default:
		return 0, "", false, syntaxErr(t, "expected a number or identifier")
	}
}

func syntaxErr(t Token, msg string) *AssemblerError {
	return &AssemblerError{
		Kind:     Syntax,
		Message:  msg,
		Location: Span{Line: t.Line, Column: t.Column, Length: t.Length},
	}
}

func isValidSymbolName(name string) bool {
	return len(name) > 0 && len(name) <= 64
}
