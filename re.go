// Package re builds regular expressions out of small composable fragments.
//
// Expressions are immutable trees of *RE nodes produced by combinators
// like G, Or, Opt and Lit. A tree tracks the names of its capture groups,
// renders into a single pattern string on first use and compiles into
// a *Pattern that delegates matching to an engine.
package re

import (
	"slices"
	"strings"
	"sync"
)

// Expr is anything that can be embedded into an expression tree.
// It's implemented by *RE and *C.
type Expr interface {
	expr() *RE
}

type kind uint8

const (
	kindLit     kind = iota // escaped literal text
	kindRaw                 // pre-written pattern fragment
	kindAnchor              // ^, $, \b and other zero-width or single-char tokens
	kindClass               // character class
	kindSeq                 // (?:x) or (?<name>x)
	kindConcat              // xy without a group
	kindAlt                 // (?:x|y)
	kindRepeat              // x*, x+, x?, x{n,m}
	kindLook                // (?=x), (?!x), (?<=x), (?<!x)
	kindBackref             // \1, \k<name>
	kindAtomic              // (?>x)
	kindFlags               // (?i:x)
	kindToggle              // (?i)
)

type greed uint8

const (
	greedy greed = iota
	reluctant
	possessive
)

// def holds the immutable part of a node.
type def struct {
	kind     kind
	text     string
	class    *C
	children []*RE
	name     string // group name for kindSeq and kindBackref

	min, max int // repeat bounds; max<0 means no upper bound
	greed    greed

	behind  bool
	negated bool

	on, off flags

	groups groupSet

	// atom is set when a quantifier can follow the rendering directly.
	atom bool

	// scoped is set when the rendering depends on the enclosing flags.
	scoped bool
}

// RE is an expression tree node.
//
// The zero value is not usable; nodes are created by combinators.
// An RE is safe for concurrent use.
type RE struct {
	def

	renderOnce sync.Once
	pattern    string

	compileOnce sync.Once
	compiled    *Pattern
	compileErr  error
}

func newRE(d def) *RE {
	if d.kind == kindFlags || d.kind == kindToggle {
		d.scoped = true
	}
	for _, c := range d.children {
		if c.scoped {
			d.scoped = true
		}
	}
	return &RE{def: d}
}

func (x *RE) expr() *RE { return x }

// String returns the rendered pattern.
// The rendering is computed once and cached.
func (x *RE) String() string {
	x.renderOnce.Do(func() {
		var b strings.Builder
		x.write(&b, flagScope{})
		x.pattern = b.String()
	})
	return x.pattern
}

// GroupNames returns the names of all named groups declared in x.
func (x *RE) GroupNames() []string {
	return slices.Clone([]string(x.groups))
}

// Not flips a lookaround between its positive and negative forms.
// For a class, it returns the complementary class.
func (x *RE) Not() *RE {
	switch x.kind {
	case kindLook:
		d := x.def
		d.negated = !d.negated
		return newRE(d)
	case kindClass:
		return x.class.Not().expr()
	}
	throwf("Not", "", ErrNotNegatable)
	return nil
}

// Reluctant returns a lazy version of the quantifier x.
func (x *RE) Reluctant() *RE { return x.withGreed("Reluctant", reluctant) }

// Possessive returns a version of the quantifier x that never gives back
// what it matched.
func (x *RE) Possessive() *RE { return x.withGreed("Possessive", possessive) }

func (x *RE) withGreed(op string, g greed) *RE {
	if x.kind != kindRepeat {
		throwf(op, "", ErrNotQuantifier)
	}
	d := x.def
	d.greed = g
	d.atom = g == possessive
	return newRE(d)
}

func exprs(xs []Expr) []*RE {
	out := make([]*RE, len(xs))
	for i, x := range xs {
		out[i] = x.expr()
	}
	return out
}

// body turns a combinator argument list into a single node.
func body(op string, xs []Expr) *RE {
	if len(xs) == 1 {
		return xs[0].expr()
	}
	children := exprs(xs)
	return newRE(def{
		kind:     kindConcat,
		children: children,
		groups:   mergeGroups(op, childGroups(children)...),
	})
}
