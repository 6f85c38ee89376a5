package re

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/google/go-cmp/cmp"
)

var inputChunk = strings.Repeat("The quick brown fox jumps over the lazy dog; it was dark.\n", 200)

type matcherTest struct {
	expr        *RE    // Expression being tested/benchmarked
	match       string // A string that matches tested expression
	almostMatch string // Almost-matching string
}

var matcherTests = []*matcherTest{
	// Unbound head; literal suffix.
	{expr: G(Some(CC("A-Z")), Lit("_SUSPEND")), match: "THREAD_SUSPEND", almostMatch: "123_SUSPEND"},

	// Pure literal.
	{expr: Lit("THREAD_SUSPEND"), match: "THREAD_SUSPEND", almostMatch: "THREAD_SUSPENT"},

	// Lookbehind.
	{expr: G(Behind(Lit("$")), Some(Digit)), match: "$100", almostMatch: "#100"},
}

func BenchmarkMatcher(b *testing.B) {
	runSingleBench := func(name, input string, want bool, p *Pattern) {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				have := p.Find(input) != nil
				if have != want {
					b.Fatalf("unexpected result: have %v, want %v", have, want)
				}
			}
		})
	}

	for _, test := range matcherTests {
		// input contains a match inside middle part of the text.
		input := inputChunk + " " + test.match + " " + inputChunk
		// inputTiny is a minimal input that matches the pattern.
		inputTiny := test.match
		// inputNoMatch contains no matches at all.
		inputNoMatch := inputChunk
		// inputNoMatchTiny is a non-matching tiny input text.
		inputNoMatchTiny := "(@Qs_&^$^&*#^$(@*@#))"
		// inputHard contains a lot of almost matching substrings.
		inputHard := strings.ReplaceAll(inputChunk, "it", test.almostMatch)

		backtrack, err := test.expr.CompileWithConfig(Config{Engine: BacktrackEngine{}})
		if err != nil {
			b.Fatalf("compile(`%s`): %v", test.expr, err)
		}
		auto, err := test.expr.Compile()
		if err != nil {
			b.Fatalf("compile(`%s`): %v", test.expr, err)
		}

		runBench := func(kind, input string, want bool) {
			nameTail := test.expr.String() + "/" + kind + "/" + fmt.Sprint(len(input))
			runSingleBench("backtrack/"+nameTail, input, want, backtrack)
			runSingleBench(auto.Engine()+"/"+nameTail, input, want, auto)
		}

		runBench("match", input, true)
		runBench("match", inputTiny, true)
		runBench("nomatch", inputNoMatch, false)
		runBench("nomatch", inputNoMatchTiny, false)
		runBench("almost", inputHard, false)
	}
}

func TestAutoEngine(t *testing.T) {
	tests := []struct {
		expr *RE
		want string
	}{
		{Lit("abc"), "literal"},
		{Lit("a.b c"), "literal"},
		{G(Lit("a"), Dot), "re2"},
		{CaseInsensitive(Lit("abc")), "re2"},
		{Named("x", Lit("abc")), "re2"},
		{Some(Letter), "backtrack"},
		{G(Category("Greek")), "backtrack"},
		{G(CC("a-z"), Upper.Not()), "backtrack"},
		{Some(Word), "re2"},
		{Ahead(Lit("a")), "backtrack"},
		{G(Behind(Lit("a")), Lit("b")), "backtrack"},
		{Atomic(Lit("a")), "backtrack"},
		{Possessive(Some(Digit)), "backtrack"},
		{G(Named("x", Dot), BackNamed("x")), "backtrack"},
		{G(CC("a-z").And(CC("aeiou").Not())), "backtrack"},
	}

	for _, test := range tests {
		p, err := test.expr.Compile()
		if err != nil {
			t.Errorf("compile(`%s`): %v", test.expr, err)
			continue
		}
		if have := p.Engine(); have != test.want {
			t.Errorf("engine(`%s`):\nhave: %s\nwant: %s", test.expr, have, test.want)
		}
	}
}

func TestEngineErrors(t *testing.T) {
	x := G(Ahead(Lit("a")), Dot)
	_, err := x.CompileWithConfig(Config{Engine: RE2Engine{}})
	if err == nil {
		t.Fatalf("compile(`%s`) with re2: expected an error", x)
	}
	var cerr *CompileError
	if !errors.As(err, &cerr) || cerr.Engine != "re2" || cerr.Pattern != x.String() {
		t.Errorf("unexpected error: %v", err)
	}

	p, err := x.CompileWithConfig(Config{Engine: BacktrackEngine{}})
	if err != nil {
		t.Fatalf("compile(`%s`) with backtrack: %v", x, err)
	}
	if m := p.Find("ba"); m == nil || m.String() != "a" {
		t.Errorf("find(`%s`, ba): unexpected result %v", x, m)
	}
}

func TestEngineParity(t *testing.T) {
	spans := func(p *Pattern, input string) [][2]int {
		var out [][2]int
		for m := range p.FindAll(input) {
			out = append(out, [2]int{m.Start(), m.End()})
		}
		return out
	}

	tests := []struct {
		expr  *RE
		input string
		want  [][2]int
	}{
		{Set(Lit("a")), "baab", [][2]int{{0, 0}, {1, 3}, {4, 4}}},
		{Set(Digit), "a12b", [][2]int{{0, 0}, {1, 3}, {4, 4}}},
		{Opt(Lit("x")), "xx", [][2]int{{0, 1}, {1, 2}}},
		{Some(Digit), "a1b22c333", [][2]int{{1, 2}, {3, 5}, {6, 9}}},
		{G(WordBoundary, Some(Word)), "go to it", [][2]int{{0, 2}, {3, 5}, {6, 8}}},
		{CaseInsensitive(Lit("ab")), "AB ab aB", [][2]int{{0, 2}, {3, 5}, {6, 8}}},
		{Multiline(G(BeginOfLine, Lit("a"))), "a\nba\na", [][2]int{{0, 1}, {5, 6}}},
		{G(Named("k", Some(Word)), Lit("="), Named("v", Set(Digit))), "a=1 b= c=22", [][2]int{{0, 3}, {4, 6}, {7, 11}}},
	}

	for _, test := range tests {
		re2, err := test.expr.CompileWithConfig(Config{Engine: RE2Engine{}})
		if err != nil {
			t.Fatalf("compile(`%s`) with re2: %v", test.expr, err)
		}
		backtrack, err := test.expr.CompileWithConfig(Config{Engine: BacktrackEngine{}})
		if err != nil {
			t.Fatalf("compile(`%s`) with backtrack: %v", test.expr, err)
		}
		if diff := cmp.Diff(test.want, spans(re2, test.input)); diff != "" {
			t.Errorf("re2 find all `%s` in %q (-want +have):\n%s", test.expr, test.input, diff)
		}
		if diff := cmp.Diff(test.want, spans(backtrack, test.input)); diff != "" {
			t.Errorf("backtrack find all `%s` in %q (-want +have):\n%s", test.expr, test.input, diff)
		}
	}
}

func TestBacktrackEngineOptions(t *testing.T) {
	x := G(Lit("a"), CaseInsensitiveOff(Lit("b")))
	if have := x.String(); have != `(?:a(?-i:b))` {
		t.Fatalf("render mismatch:\nhave: %s\nwant: (?:a(?-i:b))", have)
	}
	p, err := x.CompileWithConfig(Config{Engine: BacktrackEngine{Options: regexp2.IgnoreCase}})
	if err != nil {
		t.Fatalf("compile(`%s`): %v", x, err)
	}
	for s, want := range map[string]bool{"ab": true, "Ab": true, "aB": false} {
		if have := p.Matches(s) != nil; have != want {
			t.Errorf("match(`%s`, %q): have %v, want %v", x, s, have, want)
		}
	}
}

func TestRE2ProgramBatches(t *testing.T) {
	var input strings.Builder
	var want []string
	for i := range 5*re2Batch + 3 {
		fmt.Fprintf(&input, "%d,", i)
		want = append(want, fmt.Sprint(i))
	}

	p, err := Some(Digit).CompileWithConfig(Config{Engine: RE2Engine{}})
	if err != nil {
		t.Fatal(err)
	}
	var have []string
	for m := range p.FindAll(input.String()) {
		have = append(have, m.String())
	}
	if diff := cmp.Diff(want, have); diff != "" {
		t.Errorf("find all mismatch (-want +have):\n%s", diff)
	}

	have = have[:0]
	for m := range p.FindAll(input.String()) {
		have = append(have, m.String())
		if len(have) == re2Batch+1 {
			break
		}
	}
	if diff := cmp.Diff(want[:re2Batch+1], have); diff != "" {
		t.Errorf("early break mismatch (-want +have):\n%s", diff)
	}
}

func TestLiteralProgram(t *testing.T) {
	p := &literalProgram{lit: "ab"}

	tests := []struct {
		input string
		want  [][]int
	}{
		{"", nil},
		{"a", nil},
		{"ab", [][]int{{0, 2}}},
		{"xabab", [][]int{{1, 3}, {3, 5}}},
		{"aab", [][]int{{1, 3}}},
		{"λab", [][]int{{2, 4}}},
	}

	for _, test := range tests {
		var have [][]int
		p.Each(test.input, func(m []int) bool {
			have = append(have, m)
			return true
		})
		if diff := cmp.Diff(test.want, have); diff != "" {
			t.Errorf("each(%q) mismatch (-want +have):\n%s", test.input, diff)
		}

		var first []int
		if len(test.want) != 0 {
			first = test.want[0]
		}
		if diff := cmp.Diff(first, p.Exec(test.input)); diff != "" {
			t.Errorf("exec(%q) mismatch (-want +have):\n%s", test.input, diff)
		}
	}
}

func TestRuneOffsets(t *testing.T) {
	tests := []string{
		"",
		"a",
		"λ",
		"abc",
		"狐b犬c",
		"😈imp",
		"←→↑↓",
		"a\xffb",
	}

	for _, s := range tests {
		offsets := runeOffsets(s)
		ascii := utf8.ValidString(s) && len(s) == utf8.RuneCountInString(s)
		if ascii {
			if offsets != nil {
				t.Errorf("offsets(%q): expected nil for ASCII input", s)
			}
			continue
		}
		runes := []rune(s)
		if len(offsets) != len(runes)+1 {
			t.Fatalf("offsets(%q): have %d offsets, want %d", s, len(offsets), len(runes)+1)
		}
		for i, r := range runes {
			ch, _ := utf8.DecodeRuneInString(s[offsets[i]:])
			if ch != r {
				t.Errorf("offsets(%q)[%d]: have %c, want %c", s, i, ch, r)
			}
		}
		if offsets[len(runes)] != len(s) {
			t.Errorf("offsets(%q): last offset is %d, want %d", s, offsets[len(runes)], len(s))
		}
	}
}

func TestBacktrackProgramNames(t *testing.T) {
	re := regexp2.MustCompile(`(?<a>x)(y)(?<b>z)?`, regexp2.RE2)
	p := newBacktrackProgram(re)

	names := p.SubexpNames()
	if len(names) != 4 {
		t.Fatalf("have %d names, want 4: %q", len(names), names)
	}
	var named []string
	for _, name := range names {
		if name != "" {
			named = append(named, name)
		}
	}
	if diff := cmp.Diff([]string{"a", "b"}, named); diff != "" {
		t.Errorf("names mismatch (-want +have):\n%s", diff)
	}

	m := p.Exec("xy")
	if m == nil {
		t.Fatal("expected a match")
	}
	for i, name := range names {
		if name == "b" && m[2*i] != -1 {
			t.Errorf("group b: have %d, want -1", m[2*i])
		}
		if name == "a" && (m[2*i] != 0 || m[2*i+1] != 1) {
			t.Errorf("group a: have [%d %d], want [0 1]", m[2*i], m[2*i+1])
		}
	}
}
