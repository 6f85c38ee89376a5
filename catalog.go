package re

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bndtools/bnd-sub028/syntax"
)

// Anchors and other single-token expressions.
var (
	BeginOfLine     = anchor(`^`)
	EndOfLine       = anchor(`$`)
	BeginOfInput    = anchor(`\A`)
	EndOfInput      = anchor(`\z`)
	WordBoundary    = anchor(`\b`)
	NotWordBoundary = anchor(`\B`)

	// Dot matches any character but a newline, unless DotAll is in effect.
	Dot = newRE(def{kind: kindAnchor, text: `.`, atom: true})

	SetAll  = Set(Dot)
	SomeAll = Some(Dot)
)

func anchor(s string) *RE {
	return newRE(def{kind: kindAnchor, text: s})
}

// Lit matches text literally. The text must be valid UTF-8.
func Lit(text string) *RE {
	if !utf8.ValidString(text) {
		throwf("Lit", text, ErrInvalidUTF8)
	}
	var b strings.Builder
	for _, ch := range text {
		switch ch {
		case '\\', '.', '+', '*', '?', '(', ')', '|', '[', ']', '{', '}', '^', '$':
			b.WriteByte('\\')
			b.WriteRune(ch)
		case ' ':
			b.WriteString(`\x20`)
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
			b.WriteRune(ch)
		}
	}
	return newRE(def{
		kind: kindLit,
		text: b.String(),
		atom: utf8.RuneCountInString(text) == 1,
	})
}

// Raw embeds a pattern fragment written by hand.
//
// The fragment is parsed right away: syntax errors and invalid or
// duplicated group names are construction errors.
// Fragments with a top-level | or inline flag toggles are wrapped
// into a group so they can't affect their neighbours.
func Raw(pattern string) *RE {
	f, err := syntax.Analyze(pattern)
	if err != nil {
		throwf("Raw", pattern, fmt.Errorf("%w: %w", ErrBadFragment, err))
	}
	for _, name := range f.Names {
		if !validGroupName(name) {
			throwf("Raw", name, ErrInvalidGroupName)
		}
	}

	text := pattern
	atom := f.Atom
	if f.TopLevelAlt || f.InlineFlags {
		text = "(?:" + pattern + ")"
		atom = true
	}
	return newRE(def{
		kind:   kindRaw,
		text:   text,
		atom:   atom,
		groups: mergeGroups("Raw", groupSet(f.Names)),
	})
}

// G matches xs in sequence, rendering (?:xs).
func G(xs ...Expr) *RE {
	return group("G", "", xs)
}

// Seq is an alias for G.
func Seq(xs ...Expr) *RE {
	return group("Seq", "", xs)
}

// Named is like G, but captures the match under name: (?<name>xs).
func Named(name string, xs ...Expr) *RE {
	if !validGroupName(name) {
		throwf("Named", name, ErrInvalidGroupName)
	}
	return group("Named", name, xs)
}

func group(op, name string, xs []Expr) *RE {
	children := exprs(xs)
	parts := childGroups(children)
	if name != "" {
		parts = append([]groupSet{{name}}, parts...)
	}
	return newRE(def{
		kind:     kindSeq,
		name:     name,
		children: children,
		groups:   mergeGroups(op, parts...),
		atom:     true,
	})
}

// Or matches any of xs, rendering (?:x1|x2|...).
func Or(xs ...Expr) *RE {
	children := exprs(xs)
	return newRE(def{
		kind:     kindAlt,
		children: children,
		groups:   mergeGroups("Or", childGroups(children)...),
		atom:     true,
	})
}

// Opt matches xs zero or one time.
func Opt(xs ...Expr) *RE { return repeat("Opt", 0, 1, xs) }

// Some matches xs one or more times.
func Some(xs ...Expr) *RE { return repeat("Some", 1, -1, xs) }

// Set matches xs zero or more times.
func Set(xs ...Expr) *RE { return repeat("Set", 0, -1, xs) }

// AtLeast matches xs n or more times.
func AtLeast(n int, xs ...Expr) *RE {
	if n < 0 {
		throwf("AtLeast", "", ErrBadRepeat)
	}
	return repeat("AtLeast", n, -1, xs)
}

// Multiple matches xs from min to max times.
func Multiple(min, max int, xs ...Expr) *RE {
	if min < 0 || max < min {
		throwf("Multiple", "", ErrBadRepeat)
	}
	return repeat("Multiple", min, max, xs)
}

func repeat(op string, min, max int, xs []Expr) *RE {
	x := body(op, xs)
	return newRE(def{
		kind:     kindRepeat,
		children: []*RE{x},
		min:      min,
		max:      max,
		groups:   x.groups,
	})
}

// Maybe skips anything, then matches xs if they follow: (?:.*xs?).
func Maybe(xs ...Expr) *RE {
	return Seq(SetAll, Opt(xs...))
}

// Reluctant returns a lazy version of the quantifier x.
func Reluctant(x Expr) *RE { return x.expr().Reluctant() }

// Possessive returns a version of the quantifier x that never gives back
// what it matched.
func Possessive(x Expr) *RE { return x.expr().Possessive() }

// Ahead asserts that xs match at the current position
// without consuming input. Not turns it into a negative lookahead.
func Ahead(xs ...Expr) *RE { return look("Ahead", false, xs) }

// Behind asserts that xs match right before the current position.
func Behind(xs ...Expr) *RE { return look("Behind", true, xs) }

func look(op string, behind bool, xs []Expr) *RE {
	x := body(op, xs)
	return newRE(def{
		kind:     kindLook,
		children: []*RE{x},
		behind:   behind,
		groups:   x.groups,
		atom:     true,
	})
}

// Atomic matches xs and discards their backtracking positions: (?>xs).
func Atomic(xs ...Expr) *RE {
	x := body("Atomic", xs)
	return newRE(def{
		kind:     kindAtomic,
		children: []*RE{x},
		groups:   x.groups,
		atom:     true,
	})
}

// Back matches the text captured by the group number n.
//
// Group numbers change when expressions are composed.
// Prefer Named groups with BackNamed.
func Back(n int) *RE {
	if n < 1 {
		throwf("Back", strconv.Itoa(n), ErrBadBackref)
	}
	return newRE(def{kind: kindBackref, text: `\` + strconv.Itoa(n), atom: true})
}

// BackNamed matches the text captured by the named group.
func BackNamed(name string) *RE {
	if !validGroupName(name) {
		throwf("BackNamed", name, ErrInvalidGroupName)
	}
	return newRE(def{kind: kindBackref, name: name, text: `\k<` + name + `>`, atom: true})
}

// If matches then when cond matches at the current position,
// and the first matching else branch otherwise:
// (?:(?=cond)then|else).
func If(cond, then Expr, els ...Expr) *RE {
	guarded := body("If", []Expr{Ahead(cond), then})
	return Or(append([]Expr{guarded}, els...)...)
}

// While checks that cond matches at the current position and then
// repeats xs greedily: (?:(?=cond)xs*).
func While(cond Expr, xs ...Expr) *RE {
	return group("While", "", []Expr{Ahead(cond), repeat("While", 0, -1, xs)})
}

// Term matches xs surrounded by optional whitespace.
func Term(xs ...Expr) *RE {
	children := make([]Expr, 0, len(xs)+2)
	children = append(children, Set(WS))
	children = append(children, xs...)
	children = append(children, Set(WS))
	return Seq(children...)
}

// List matches one or more items separated by sep.
// Whitespace is allowed around items and separators.
func List(item, sep Expr) *RE {
	return Seq(
		Set(WS),
		item,
		Set(Seq(Set(WS), sep, Set(WS), item)),
		Set(WS),
	)
}
