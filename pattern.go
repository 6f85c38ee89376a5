package re

import (
	"iter"
	"strings"
)

// Pattern is a compiled expression.
// It is safe for concurrent use.
type Pattern struct {
	expr string

	find   Program
	prefix Program // anchored at the start of input
	full   Program // anchored at both ends

	names []string
	index map[string]int
}

// CompilePattern compiles a rendered expression with cfg.
func CompilePattern(expr string, cfg Config) (*Pattern, error) {
	e := cfg.engine()

	find, err := e.Compile(expr)
	if err != nil {
		return nil, err
	}
	prefix, err := e.Compile(`\A(?:` + expr + `)`)
	if err != nil {
		return nil, err
	}
	full, err := e.Compile(`\A(?:` + expr + `)\z`)
	if err != nil {
		return nil, err
	}

	names := find.SubexpNames()
	index := make(map[string]int)
	for i, name := range names {
		if name != "" {
			index[name] = i
		}
	}
	return &Pattern{
		expr:   expr,
		find:   find,
		prefix: prefix,
		full:   full,
		names:  names,
		index:  index,
	}, nil
}

// String returns the source text of the pattern.
func (p *Pattern) String() string { return p.expr }

// Engine names the program kind that executes searches:
// "literal", "re2" or "backtrack".
func (p *Pattern) Engine() string {
	switch p.find.(type) {
	case *literalProgram:
		return "literal"
	case *re2Program:
		return "re2"
	case *backtrackProgram:
		return "backtrack"
	default:
		return "custom"
	}
}

// GroupNames returns the names of named groups in the order
// of their group numbers.
func (p *Pattern) GroupNames() []string {
	var out []string
	for _, name := range p.names {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

func (p *Pattern) newMatch(input string, spans []int) *Match {
	if spans == nil {
		return nil
	}
	return &Match{input: input, spans: spans, p: p}
}

// Matches matches the whole input. It returns nil if there is no match.
func (p *Pattern) Matches(input string) *Match {
	return p.newMatch(input, p.full.Exec(input))
}

// Find returns the leftmost match in input, or nil.
func (p *Pattern) Find(input string) *Match {
	return p.newMatch(input, p.find.Exec(input))
}

// LookingAt matches a prefix of input. It returns nil if there is no match.
func (p *Pattern) LookingAt(input string) *Match {
	return p.newMatch(input, p.prefix.Exec(input))
}

// FindAll iterates over successive non-overlapping matches in input.
// Every iteration searches from the start of input.
func (p *Pattern) FindAll(input string) iter.Seq[*Match] {
	return func(yield func(*Match) bool) {
		p.find.Each(input, func(spans []int) bool {
			return yield(p.newMatch(input, spans))
		})
	}
}

// Append returns input with every match replaced by fn(match).
// Text between matches is copied unchanged.
func (p *Pattern) Append(input string, fn func(*Match) string) string {
	var b strings.Builder
	last := 0
	for m := range p.FindAll(input) {
		b.WriteString(input[last:m.Start()])
		b.WriteString(fn(m))
		last = m.End()
	}
	b.WriteString(input[last:])
	return b.String()
}

// Matcher returns a stateful matcher over input.
func (p *Pattern) Matcher(input string) *Matcher {
	return &Matcher{p: p, input: input}
}

// Compile compiles x with DefaultConfig.
// The result is computed once and cached.
func (x *RE) Compile() (*Pattern, error) {
	x.compileOnce.Do(func() {
		x.compiled, x.compileErr = CompilePattern(x.String(), DefaultConfig())
	})
	return x.compiled, x.compileErr
}

// CompileWithConfig compiles x with cfg. The result is not cached.
func (x *RE) CompileWithConfig(cfg Config) (*Pattern, error) {
	return CompilePattern(x.String(), cfg)
}

// MustCompile is like Compile but panics if x can't be compiled.
func (x *RE) MustCompile() *Pattern {
	p, err := x.Compile()
	if err != nil {
		panic(err)
	}
	return p
}

// Matches matches the whole input. It returns nil if there is no match.
// Like the other match methods of RE, it panics if x doesn't compile.
func (x *RE) Matches(input string) *Match { return x.MustCompile().Matches(input) }

// Find returns the leftmost match in input, or nil.
func (x *RE) Find(input string) *Match { return x.MustCompile().Find(input) }

// LookingAt matches a prefix of input.
func (x *RE) LookingAt(input string) *Match { return x.MustCompile().LookingAt(input) }

// FindAll iterates over successive non-overlapping matches in input.
func (x *RE) FindAll(input string) iter.Seq[*Match] { return x.MustCompile().FindAll(input) }

// Append returns input with every match replaced by fn(match).
func (x *RE) Append(input string, fn func(*Match) string) string {
	return x.MustCompile().Append(input, fn)
}

// Matcher returns a stateful matcher over input.
func (x *RE) Matcher(input string) *Matcher { return x.MustCompile().Matcher(input) }
