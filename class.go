package re

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"
)

type classKind uint8

const (
	classSet    classKind = iota // [abc]
	classEscape                  // \s, \p{L}
	classAnd                     // intersection
	classUnion                   // union that can't be a single bracket
)

// C is a character class.
//
// Classes are immutable. Not, And and Or return new classes.
// A *C can be used anywhere an Expr is expected.
type C struct {
	kind    classKind
	members string // escaped bracket content or escape sequence
	negated bool
	base    *C
	ops     []*C

	once sync.Once
	node *RE
}

// CC returns a class matching any of the characters of spec.
// A range is written as lo-hi. Characters that are special
// inside brackets are escaped.
//
// An empty spec or a range with hi < lo is a construction error.
func CC(spec string) *C {
	if spec == "" {
		throwf("CC", spec, ErrMalformedClass)
	}

	var b strings.Builder
	for i := 0; i < len(spec); {
		lo, n := utf8.DecodeRuneInString(spec[i:])
		i += n
		writeClassRune(&b, lo)

		if i+1 < len(spec) && spec[i] == '-' {
			hi, m := utf8.DecodeRuneInString(spec[i+1:])
			if hi < lo {
				throwf("CC", spec, ErrMalformedClass)
			}
			b.WriteByte('-')
			writeClassRune(&b, hi)
			i += 1 + m
		}
	}
	return &C{kind: classSet, members: b.String()}
}

func writeClassRune(b *strings.Builder, ch rune) {
	switch ch {
	case ']', '\\', '^', '[', '-':
		b.WriteByte('\\')
		b.WriteRune(ch)
	case '\t':
		b.WriteString(`\t`)
	case '\n':
		b.WriteString(`\n`)
	case '\r':
		b.WriteString(`\r`)
	case '\f':
		b.WriteString(`\f`)
	case '\v':
		b.WriteString(`\v`)
	default:
		if ch < 0x20 || ch == 0x7f {
			fmt.Fprintf(b, `\x%02X`, ch)
			return
		}
		b.WriteRune(ch)
	}
}

func escapeClass(esc string) *C {
	return &C{kind: classEscape, members: esc}
}

// Category returns the Unicode category or script class \p{name}.
func Category(name string) *C {
	if name == "" {
		throwf("Category", name, ErrMalformedClass)
	}
	for i := 0; i < len(name); i++ {
		if !isLetter(name[i]) && name[i] != '_' {
			throwf("Category", name, ErrMalformedClass)
		}
	}
	return escapeClass(`\p{` + name + `}`)
}

// Predefined classes.
var (
	WS     = escapeClass(`\s`)
	Digit  = escapeClass(`\d`)
	Word   = escapeClass(`\w`)
	Letter = escapeClass(`\p{L}`)
	Upper  = escapeClass(`\p{Lu}`)
	Lower  = escapeClass(`\p{Ll}`)

	Alnum  = CC("0-9A-Za-z")
	Alpha  = CC("A-Za-z")
	Punct  = CC("!-/:-@[-`{-~")
	XDigit = CC("0-9A-Fa-f")
	Blank  = CC("\t ")
	Cntrl  = CC("\x00-\x1f\x7f")
	Graph  = CC("!-~")
	Print  = CC(" -~")
)

// Not returns the complement of c.
// Negating twice gives back a class that renders like c.
func (c *C) Not() *C {
	return &C{
		kind:    c.kind,
		members: c.members,
		negated: !c.negated,
		base:    c.base,
		ops:     c.ops,
	}
}

// And returns the intersection of c and other.
// A chain a.And(b).And(c) is kept flat.
func (c *C) And(other *C) *C {
	if c.kind == classAnd && !c.negated {
		return &C{kind: classAnd, base: c.base, ops: append(c.ops[:len(c.ops):len(c.ops)], other)}
	}
	return &C{kind: classAnd, base: c, ops: []*C{other}}
}

// Or returns the union of c and other.
// Plain member sets and escapes merge into a single bracket expression.
func (c *C) Or(other *C) *C {
	if c.plain() && other.plain() {
		return &C{kind: classSet, members: c.bracketMembers() + other.bracketMembers()}
	}
	if c.kind == classUnion && !c.negated {
		return &C{kind: classUnion, ops: append(c.ops[:len(c.ops):len(c.ops)], other)}
	}
	return &C{kind: classUnion, ops: []*C{c, other}}
}

func (c *C) plain() bool {
	switch c.kind {
	case classSet:
		return !c.negated
	case classEscape:
		return true
	}
	return false
}

func (c *C) bracketMembers() string {
	if c.kind == classEscape {
		return c.escape()
	}
	return c.members
}

// escape returns the escape sequence with negation applied:
// \s becomes \S and \p{L} becomes \P{L}.
func (c *C) escape() string {
	if !c.negated {
		return c.members
	}
	b := []byte(c.members)
	ch := b[1]
	if ch >= 'a' && ch <= 'z' {
		b[1] = ch - 'a' + 'A'
	} else {
		b[1] = ch - 'A' + 'a'
	}
	return string(b)
}

// String returns the class rendering.
func (c *C) String() string {
	switch c.kind {
	case classSet:
		if c.negated {
			return "[^" + c.members + "]"
		}
		return "[" + c.members + "]"
	case classEscape:
		return c.escape()
	}

	var b strings.Builder
	if c.negated {
		b.WriteString("(?:(?!")
	}
	switch c.kind {
	case classAnd:
		b.WriteString("(?:")
		for _, op := range c.ops {
			b.WriteString("(?=")
			b.WriteString(op.String())
			b.WriteString(")")
		}
		b.WriteString(c.base.String())
		b.WriteString(")")
	case classUnion:
		b.WriteString("(?:")
		for i, op := range c.ops {
			if i != 0 {
				b.WriteByte('|')
			}
			b.WriteString(op.String())
		}
		b.WriteString(")")
	}
	if c.negated {
		b.WriteString(`)[\s\S])`)
	}
	return b.String()
}

func (c *C) expr() *RE {
	c.once.Do(func() {
		c.node = newRE(def{kind: kindClass, class: c, text: c.String(), atom: true})
	})
	return c.node
}
