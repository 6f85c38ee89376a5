package re

import (
	"strings"
)

type flags uint8

const (
	flagIgnoreCase flags = 1 << iota
	flagMultiline
	flagDotAll

	// flagUnicodeCase is tracked like the others, but has no letter:
	// both engines fold case by Unicode rules already.
	flagUnicodeCase
)

var flagLetters = []struct {
	flag   flags
	letter byte
}{
	{flagIgnoreCase, 'i'},
	{flagMultiline, 'm'},
	{flagDotAll, 's'},
}

func (f flags) letters() string {
	var b strings.Builder
	for _, l := range flagLetters {
		if f&l.flag != 0 {
			b.WriteByte(l.letter)
		}
	}
	return b.String()
}

// flagModifiers returns the modifier text of an inline group
// that sets flags on and clears flags off, like "i-s".
func flagModifiers(on, off flags) string {
	set := on.letters()
	clear := off.letters()
	if clear == "" {
		return set
	}
	return set + "-" + clear
}

// flagScope is the flag state at some point of a rendering.
// known holds the flags that an enclosing node set or cleared;
// the others are left to the engine options. on is a subset of known.
type flagScope struct {
	on, known flags
}

func (s flagScope) off() flags { return s.known &^ s.on }

// diff returns the modifiers that switch the s scope to the to scope.
func (s flagScope) diff(to flagScope) string {
	return flagModifiers(to.on&^s.on, to.off()&^s.off())
}

func (x *RE) applyFlags(scope flagScope) flagScope {
	return flagScope{
		on:    (scope.on | x.on) &^ x.off,
		known: scope.known | x.on | x.off,
	}
}

func flagNode(op string, on, off flags, xs []Expr) *RE {
	if len(xs) == 0 {
		return newRE(def{kind: kindToggle, on: on, off: off})
	}
	children := exprs(xs)
	return newRE(def{
		kind:     kindFlags,
		children: children,
		on:       on,
		off:      off,
		groups:   mergeGroups(op, childGroups(children)...),
		atom:     true,
	})
}

// CaseInsensitive matches xs ignoring case, rendering (?i:xs).
//
// Without arguments it returns a toggle, (?i), that turns the flag on
// for the rest of the enclosing group. Adjacent toggles merge into
// one modifier group, and toggles that don't change the flags in effect
// render nothing.
func CaseInsensitive(xs ...Expr) *RE {
	return flagNode("CaseInsensitive", flagIgnoreCase, 0, xs)
}

// CaseInsensitiveOff is the opposite of CaseInsensitive: (?-i:xs) or (?-i).
func CaseInsensitiveOff(xs ...Expr) *RE {
	return flagNode("CaseInsensitiveOff", 0, flagIgnoreCase, xs)
}

// DotAll makes . match a newline inside xs: (?s:xs) or (?s).
func DotAll(xs ...Expr) *RE {
	return flagNode("DotAll", flagDotAll, 0, xs)
}

// DotAllOff renders (?-s:xs) or (?-s).
func DotAllOff(xs ...Expr) *RE {
	return flagNode("DotAllOff", 0, flagDotAll, xs)
}

// Multiline makes ^ and $ match at line boundaries inside xs: (?m:xs) or (?m).
func Multiline(xs ...Expr) *RE {
	return flagNode("Multiline", flagMultiline, 0, xs)
}

// MultilineOff renders (?-m:xs) or (?-m).
func MultilineOff(xs ...Expr) *RE {
	return flagNode("MultilineOff", 0, flagMultiline, xs)
}

// UnicodeCase requests Unicode-aware case folding for xs.
// Folding is always Unicode-aware, so the flag only shapes the tree:
// UnicodeCase(xs) renders (?:xs) and the toggle renders nothing.
func UnicodeCase(xs ...Expr) *RE {
	return flagNode("UnicodeCase", flagUnicodeCase, 0, xs)
}

// UnicodeCaseOff is the opposite of UnicodeCase.
func UnicodeCaseOff(xs ...Expr) *RE {
	return flagNode("UnicodeCaseOff", 0, flagUnicodeCase, xs)
}
