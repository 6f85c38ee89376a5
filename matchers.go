package re

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/coregx/coregex"
	"github.com/dlclark/regexp2"

	"github.com/bndtools/bnd-sub028/syntax"
)

// programConstructors are tried in order by AutoEngine.
// A constructor returns a nil Program when it can't handle the pattern.
var programConstructors = []func(patternData) (Program, error){
	patternData.literalProgram,
	patternData.backtrackProgram,
	patternData.re2Program,
}

type patternData struct {
	pattern  string
	features *syntax.Features // nil if the pattern could not be parsed
	engine   AutoEngine
}

func (d patternData) literalProgram() (Program, error) {
	if d.features == nil || !d.features.IsLiteral || d.features.Literal == "" {
		return nil, nil
	}
	return &literalProgram{lit: d.features.Literal}, nil
}

func (d patternData) backtrackProgram() (Program, error) {
	if d.features == nil {
		return nil, nil
	}
	// coregex splits matches of \p classes on multibyte input.
	if !d.features.NeedsBacktracking() && !d.features.UnicodeClasses {
		return nil, nil
	}
	return d.engine.Backtrack.Compile(d.pattern)
}

func (d patternData) re2Program() (Program, error) {
	p, err := d.engine.RE2.Compile(d.pattern)
	if err != nil && d.features == nil {
		// Let the backtracking engine have a try.
		return nil, nil
	}
	return p, err
}

type literalProgram struct {
	lit string
}

func (p *literalProgram) Exec(s string) []int {
	i := strings.Index(s, p.lit)
	if i == -1 {
		return nil
	}
	return []int{i, i + len(p.lit)}
}

func (p *literalProgram) Each(s string, yield func([]int) bool) {
	offset := 0
	for {
		i := strings.Index(s[offset:], p.lit)
		if i == -1 {
			return
		}
		start := offset + i
		offset = start + len(p.lit)
		if !yield([]int{start, offset}) {
			return
		}
	}
}

func (p *literalProgram) SubexpNames() []string { return []string{""} }

type re2Program struct {
	re *coregex.Regex
}

func (p *re2Program) Exec(s string) []int {
	return p.re.FindStringSubmatchIndex(s)
}

// Each asks coregex for a growing number of matches, so a caller that
// stops early doesn't pay for scanning the whole input. It skips empty
// matches right after a previous match, like the regexp package does.
func (p *re2Program) Each(s string, yield func([]int) bool) {
	prevEnd := -1
	done := 0
	for n := re2Batch; ; n *= 2 {
		all := p.re.FindAllStringSubmatchIndex(s, n)
		for _, m := range all[done:] {
			if m[0] == m[1] && m[0] == prevEnd {
				continue
			}
			prevEnd = m[1]
			if !yield(m) {
				return
			}
		}
		if len(all) < n {
			return
		}
		done = len(all)
	}
}

const re2Batch = 8

func (p *re2Program) SubexpNames() []string { return p.re.SubexpNames() }

type backtrackProgram struct {
	re *regexp2.Regexp

	// numbers lists regexp2 group numbers in match pair order.
	numbers []int
	names   []string
}

func newBacktrackProgram(re *regexp2.Regexp) *backtrackProgram {
	numbers := re.GetGroupNumbers()
	names := make([]string, len(numbers))
	for i, n := range numbers {
		// Unnamed groups are named after their number.
		if name := re.GroupNameFromNumber(n); name != strconv.Itoa(n) {
			names[i] = name
		}
	}
	return &backtrackProgram{re: re, numbers: numbers, names: names}
}

// Exec reports a match error, such as a timeout, as no match.
func (p *backtrackProgram) Exec(s string) []int {
	m, err := p.re.FindStringMatch(s)
	if err != nil || m == nil {
		return nil
	}
	return p.spans(m, runeOffsets(s))
}

// Each follows the same empty match rule as re2Program.Each.
func (p *backtrackProgram) Each(s string, yield func([]int) bool) {
	offsets := runeOffsets(s)
	prevEnd := -1
	m, err := p.re.FindStringMatch(s)
	for err == nil && m != nil {
		span := p.spans(m, offsets)
		if span[0] != span[1] || span[0] != prevEnd {
			prevEnd = span[1]
			if !yield(span) {
				return
			}
		}
		m, err = p.re.FindNextMatch(m)
	}
}

func (p *backtrackProgram) SubexpNames() []string { return p.names }

// spans converts regexp2 groups that are measured in runes
// into byte offset pairs.
func (p *backtrackProgram) spans(m *regexp2.Match, offsets []int) []int {
	out := make([]int, 2*len(p.numbers))
	for i, n := range p.numbers {
		g := &m.Group
		if n != 0 {
			g = m.GroupByNumber(n)
		}
		if g == nil || (n != 0 && len(g.Captures) == 0) {
			out[2*i] = -1
			out[2*i+1] = -1
			continue
		}
		out[2*i] = byteOffset(offsets, g.Index)
		out[2*i+1] = byteOffset(offsets, g.Index+g.Length)
	}
	return out
}

// runeOffsets maps rune indexes of s to byte offsets.
// The last element is len(s). For ASCII strings it returns nil.
func runeOffsets(s string) []int {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return nil
	}

	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}

func byteOffset(offsets []int, runeIndex int) int {
	if offsets == nil {
		return runeIndex
	}
	return offsets[runeIndex]
}
