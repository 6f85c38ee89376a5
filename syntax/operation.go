package syntax

import (
	"strconv"
)

// Operation constants describe the expression kinds produced by the parser.
//
// Unless stated otherwise, an operation has no Args and its Value
// is the source text it was parsed from.
const (
	OpNone Operation = iota

	// OpConcat is a concatenation of Args.
	// Empty concatenation is used for empty patterns and empty groups.
	OpConcat

	// OpDot is a `.` wildcard.
	OpDot

	// OpAlt is x|y alternation of Args.
	OpAlt

	// OpStar is a x* quantifier. Args[0] is x.
	OpStar

	// OpPlus is a x+ quantifier. Args[0] is x.
	OpPlus

	// OpQuestion is a x? quantifier. Args[0] is x.
	OpQuestion

	// OpNonGreedy makes its quantifier Args[0] reluctant: x*?, x+?, x??, x{n}?.
	OpNonGreedy

	// OpPossessive makes its quantifier Args[0] possessive: x*+, x++, x?+, x{n}+.
	OpPossessive

	// OpCaret is ^ anchor.
	OpCaret

	// OpDollar is $ anchor.
	OpDollar

	// OpLiteral is a collection of consecutive chars.
	// Args are OpChar expressions.
	OpLiteral

	// OpChar is a single literal char.
	OpChar

	// OpString is an artificial element that is used in other expressions.
	OpString

	// OpQuote is a \Q...\E quoted literal.
	OpQuote

	// OpEscape is a single char escape, like \d or \n.
	OpEscape

	// OpEscapeMeta is an escaped meta char, like \( or \+.
	OpEscapeMeta

	// OpEscapeOctal is an octal char code escape: \0, \012.
	OpEscapeOctal

	// OpEscapeUni is a Unicode class escape with a one-letter name: \pL.
	OpEscapeUni

	// OpEscapeUniFull is a Unicode class escape with a braced name: \p{Greek}.
	OpEscapeUniFull

	// OpEscapeHex is a hex char code escape: \xFF.
	OpEscapeHex

	// OpEscapeHexFull is a braced hex char code escape: \x{10FFFF}.
	OpEscapeHexFull

	// OpBackref is a backreference: \1 or \k<name>.
	OpBackref

	// OpCharClass is a [chars] class. Args are the class members.
	OpCharClass

	// OpNegCharClass is a [^chars] class. Args are the class members.
	OpNegCharClass

	// OpCharRange is a x-y range inside a char class.
	// Args[0] is x, Args[1] is y.
	OpCharRange

	// OpPosixClass is a [:name:] class inside a char class.
	OpPosixClass

	// OpRepeat is a x{n}, x{n,} or x{n,m} quantifier.
	// Args[0] is x, Args[1] is an OpString holding the {...} part.
	OpRepeat

	// OpCapture is a (x) capturing group. Args[0] is x.
	OpCapture

	// OpNamedCapture is a (?<name>x) capturing group, also written as
	// (?P<name>x) or (?'name'x). Args[0] is x, Args[1] is an OpString name.
	OpNamedCapture

	// OpGroup is a (?:x) non-capturing group. Args[0] is x.
	OpGroup

	// OpGroupWithFlags is a (?flags:x) group.
	// Args[0] is x, Args[1] is an OpString holding the flags.
	OpGroupWithFlags

	// OpFlagOnlyGroup is a (?flags) group. Args[0] is an OpString holding the flags.
	OpFlagOnlyGroup

	// OpAtomicGroup is a (?>x) group. Args[0] is x.
	OpAtomicGroup

	// OpPositiveLookahead is a (?=x) assertion. Args[0] is x.
	OpPositiveLookahead

	// OpNegativeLookahead is a (?!x) assertion. Args[0] is x.
	OpNegativeLookahead

	// OpPositiveLookbehind is a (?<=x) assertion. Args[0] is x.
	OpPositiveLookbehind

	// OpNegativeLookbehind is a (?<!x) assertion. Args[0] is x.
	OpNegativeLookbehind

	// OpComment is a (?#text) comment.
	OpComment

	// OpNone2 is a sentinel value that is never part of the AST.
	OpNone2
)

var operationNames = [...]string{
	OpNone:               "None",
	OpConcat:             "Concat",
	OpDot:                "Dot",
	OpAlt:                "Alt",
	OpStar:               "Star",
	OpPlus:               "Plus",
	OpQuestion:           "Question",
	OpNonGreedy:          "NonGreedy",
	OpPossessive:         "Possessive",
	OpCaret:              "Caret",
	OpDollar:             "Dollar",
	OpLiteral:            "Literal",
	OpChar:               "Char",
	OpString:             "String",
	OpQuote:              "Quote",
	OpEscape:             "Escape",
	OpEscapeMeta:         "EscapeMeta",
	OpEscapeOctal:        "EscapeOctal",
	OpEscapeUni:          "EscapeUni",
	OpEscapeUniFull:      "EscapeUniFull",
	OpEscapeHex:          "EscapeHex",
	OpEscapeHexFull:      "EscapeHexFull",
	OpBackref:            "Backref",
	OpCharClass:          "CharClass",
	OpNegCharClass:       "NegCharClass",
	OpCharRange:          "CharRange",
	OpPosixClass:         "PosixClass",
	OpRepeat:             "Repeat",
	OpCapture:            "Capture",
	OpNamedCapture:       "NamedCapture",
	OpGroup:              "Group",
	OpGroupWithFlags:     "GroupWithFlags",
	OpFlagOnlyGroup:      "FlagOnlyGroup",
	OpAtomicGroup:        "AtomicGroup",
	OpPositiveLookahead:  "PositiveLookahead",
	OpNegativeLookahead:  "NegativeLookahead",
	OpPositiveLookbehind: "PositiveLookbehind",
	OpNegativeLookbehind: "NegativeLookbehind",
	OpComment:            "Comment",
	OpNone2:              "None2",
}

func (op Operation) String() string {
	if int(op) < len(operationNames) {
		return operationNames[op]
	}
	return "Operation(" + strconv.Itoa(int(op)) + ")"
}
