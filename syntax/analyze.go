package syntax

import (
	"strconv"
	"strings"
)

// Features summarizes the constructs used by a pattern.
type Features struct {
	// Captures is the number of capturing groups, named ones included.
	Captures int

	// Names lists named group names in the order of their opening parens.
	Names []string

	Backrefs   bool
	Lookaround bool
	Atomic     bool
	Possessive bool

	// UnicodeClasses is set when the pattern uses \p or \P classes.
	UnicodeClasses bool

	// Atom is set when a quantifier placed right after the pattern
	// applies to the whole of it.
	Atom bool

	// TopLevelAlt is set for x|y patterns that are not enclosed in a group.
	TopLevelAlt bool

	// InlineFlags is set when a (?flags) group changes flags
	// for the rest of the enclosing pattern.
	InlineFlags bool

	// Literal is the text matched by a pattern without metachars.
	// It's only meaningful when IsLiteral is set.
	Literal   string
	IsLiteral bool
}

// NeedsBacktracking reports whether the pattern uses anything
// that an automata-based engine can't execute.
func (f *Features) NeedsBacktracking() bool {
	return f.Backrefs || f.Lookaround || f.Atomic || f.Possessive
}

// Analyze parses pattern and collects its Features.
func Analyze(pattern string) (*Features, error) {
	p := NewParser(&ParserOptions{NoLiterals: true})
	re, err := p.Parse(pattern)
	if err != nil {
		return nil, err
	}
	var f Features
	f.walk(re.Expr)
	f.top(re.Expr)
	return &f, nil
}

func (f *Features) top(e Expr) {
	switch e.Op {
	case OpAlt:
		f.TopLevelAlt = true
	case OpFlagOnlyGroup:
		f.InlineFlags = true
	case OpConcat:
		for _, a := range e.Args {
			if a.Op == OpFlagOnlyGroup {
				f.InlineFlags = true
			}
		}
	}

	switch e.Op {
	case OpChar, OpDot, OpCaret, OpDollar, OpBackref,
		OpEscape, OpEscapeMeta, OpEscapeOctal, OpEscapeUni, OpEscapeUniFull, OpEscapeHex, OpEscapeHexFull,
		OpCharClass, OpNegCharClass,
		OpCapture, OpNamedCapture, OpGroup, OpGroupWithFlags, OpAtomicGroup,
		OpPositiveLookahead, OpNegativeLookahead, OpPositiveLookbehind, OpNegativeLookbehind:
		f.Atom = true
	}

	var b strings.Builder
	args := []Expr{e}
	if e.Op == OpConcat {
		args = e.Args
	}
	for _, a := range args {
		if !literalChar(&b, a) {
			return
		}
	}
	f.Literal = b.String()
	f.IsLiteral = true
}

func literalChar(b *strings.Builder, e Expr) bool {
	switch e.Op {
	case OpChar:
		b.WriteString(e.Value)
	case OpEscapeMeta:
		b.WriteString(e.Value[len(`\`):])
	case OpEscape:
		switch e.Value {
		case `\t`:
			b.WriteByte('\t')
		case `\n`:
			b.WriteByte('\n')
		case `\r`:
			b.WriteByte('\r')
		case `\f`:
			b.WriteByte('\f')
		case `\v`:
			b.WriteByte('\v')
		default:
			return false
		}
	case OpEscapeHex, OpEscapeHexFull:
		digits := strings.Trim(e.Value[len(`\x`):], "{}")
		code, err := strconv.ParseUint(digits, 16, 32)
		if err != nil {
			return false
		}
		b.WriteRune(rune(code))
	default:
		return false
	}
	return true
}

func (f *Features) walk(e Expr) {
	switch e.Op {
	case OpCapture:
		f.Captures++
	case OpNamedCapture:
		f.Captures++
		f.Names = append(f.Names, e.Args[1].Value)
		f.walk(e.Args[0])
		return
	case OpBackref:
		f.Backrefs = true
	case OpAtomicGroup:
		f.Atomic = true
	case OpPossessive:
		f.Possessive = true
	case OpPositiveLookahead, OpNegativeLookahead, OpPositiveLookbehind, OpNegativeLookbehind:
		f.Lookaround = true
	case OpEscapeUni, OpEscapeUniFull:
		f.UnicodeClasses = true
	case OpCharClass, OpNegCharClass:
		// Class members never contain groups.
		for _, a := range e.Args {
			if a.Op == OpEscapeUni || a.Op == OpEscapeUniFull {
				f.UnicodeClasses = true
			}
		}
		return
	}
	for _, a := range e.Args {
		f.walk(a)
	}
}
