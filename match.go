package re

// Match is a successful match.
type Match struct {
	input string
	spans []int
	p     *Pattern
}

// String returns the matched text.
func (m *Match) String() string { return m.input[m.spans[0]:m.spans[1]] }

// Start returns the byte offset of the match in the input.
func (m *Match) Start() int { return m.spans[0] }

// End returns the byte offset right after the match.
func (m *Match) End() int { return m.spans[1] }

// Group returns the text captured by the named group.
// It reports false if there is no such group or it didn't participate
// in the match.
func (m *Match) Group(name string) (string, bool) {
	i, ok := m.p.index[name]
	if !ok {
		return "", false
	}
	return m.Submatch(i)
}

// Submatch returns the text captured by the group number i,
// 0 being the whole match.
//
// Group numbers depend on how the expression was composed
// and on the engine. Use Group when possible.
func (m *Match) Submatch(i int) (string, bool) {
	return submatch(m.input, m.spans, i)
}

// Pattern returns the pattern that produced the match.
func (m *Match) Pattern() *Pattern { return m.p }

// NumGroups returns the number of capturing groups.
func (m *Match) NumGroups() int { return len(m.spans)/2 - 1 }

func submatch(input string, spans []int, i int) (string, bool) {
	if i < 0 || 2*i+1 >= len(spans) || spans[2*i] < 0 {
		return "", false
	}
	return input[spans[2*i]:spans[2*i+1]], true
}

// Matcher is a match state bound to an input.
// Each successful Find, Matches or LookingAt replaces the current match.
//
// A Matcher is not safe for concurrent use.
type Matcher struct {
	p     *Pattern
	input string

	found [][]int
	next  int

	cur []int
}

// Find advances to the next match and reports whether there was one.
func (m *Matcher) Find() bool {
	if m.found == nil {
		m.found = [][]int{}
		m.p.find.Each(m.input, func(spans []int) bool {
			m.found = append(m.found, spans)
			return true
		})
	}
	if m.next >= len(m.found) {
		m.cur = nil
		return false
	}
	m.cur = m.found[m.next]
	m.next++
	return true
}

// Matches reports whether the whole input matches.
func (m *Matcher) Matches() bool {
	m.cur = m.p.full.Exec(m.input)
	return m.cur != nil
}

// LookingAt reports whether a prefix of the input matches.
func (m *Matcher) LookingAt() bool {
	m.cur = m.p.prefix.Exec(m.input)
	return m.cur != nil
}

// Reset clears the current match and restarts Find from the beginning.
func (m *Matcher) Reset() {
	m.next = 0
	m.cur = nil
}

// Match returns the current match, or nil.
func (m *Matcher) Match() *Match {
	return m.p.newMatch(m.input, m.cur)
}

// Group returns the text captured by the group number i in the current match.
func (m *Matcher) Group(i int) (string, bool) {
	return submatch(m.input, m.cur, i)
}

// NamedGroup returns the text captured by the named group in the current match.
func (m *Matcher) NamedGroup(name string) (string, bool) {
	i, ok := m.p.index[name]
	if !ok {
		return "", false
	}
	return submatch(m.input, m.cur, i)
}

// Start returns the start of the current match, or -1.
func (m *Matcher) Start() int {
	if m.cur == nil {
		return -1
	}
	return m.cur[0]
}

// End returns the end of the current match, or -1.
func (m *Matcher) End() int {
	if m.cur == nil {
		return -1
	}
	return m.cur[1]
}

// GroupCount returns the number of capturing groups.
func (m *Matcher) GroupCount() int { return len(m.p.names) - 1 }
