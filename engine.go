package re

import (
	"github.com/coregx/coregex"
	"github.com/coregx/coregex/meta"
	"github.com/dlclark/regexp2"

	"github.com/bndtools/bnd-sub028/syntax"
)

// Engine compiles rendered patterns into executable programs.
type Engine interface {
	Compile(pattern string) (Program, error)
}

// Program is a compiled pattern.
//
// Match positions are reported the way the regexp package does it:
// pairs of byte offsets, the whole match first, then one pair per
// capturing group; -1 marks a group that did not participate.
//
// A Program is safe for concurrent use.
type Program interface {
	// Exec returns the leftmost match in input, or nil.
	Exec(input string) []int

	// Each calls yield for successive non-overlapping matches in input
	// until yield returns false.
	Each(input string, yield func([]int) bool)

	// SubexpNames returns capturing group names, indexed like match pairs.
	// The first element and the elements of unnamed groups are empty.
	SubexpNames() []string
}

// Config controls how patterns are compiled.
type Config struct {
	// Engine used for compilation. Nil means AutoEngine.
	Engine Engine
}

// DefaultConfig returns the configuration used by the *RE match methods.
func DefaultConfig() Config {
	return Config{Engine: AutoEngine{}}
}

func (c Config) engine() Engine {
	if c.Engine == nil {
		return AutoEngine{}
	}
	return c.Engine
}

// AutoEngine picks an engine by looking at the pattern.
//
// Literal patterns get a substring search. Patterns that use
// backreferences, lookarounds, atomic groups, possessive quantifiers
// or Unicode property classes go to the backtracking engine.
// Everything else goes to the RE2 engine.
//
// The zero value is ready to use.
type AutoEngine struct {
	RE2       RE2Engine
	Backtrack BacktrackEngine
}

func (e AutoEngine) Compile(pattern string) (Program, error) {
	// A pattern we can't analyze may still be accepted by one of the engines.
	f, _ := syntax.Analyze(pattern)

	d := patternData{pattern: pattern, features: f, engine: e}
	for _, ctor := range programConstructors {
		p, err := ctor(d)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}
	return e.Backtrack.Compile(pattern)
}

// RE2Engine compiles patterns with coregex.
// It runs in linear time but rejects lookarounds and backreferences.
type RE2Engine struct {
	// Config is passed to coregex.CompileWithConfig when not nil.
	Config *meta.Config
}

func (e RE2Engine) Compile(pattern string) (Program, error) {
	var re *coregex.Regex
	var err error
	if e.Config != nil {
		re, err = coregex.CompileWithConfig(pattern, *e.Config)
	} else {
		re, err = coregex.Compile(pattern)
	}
	if err != nil {
		return nil, &CompileError{Engine: "re2", Pattern: pattern, Err: err}
	}
	return &re2Program{re: re}, nil
}

// BacktrackEngine compiles patterns with regexp2 in its RE2-compatible mode.
// It supports the whole rendered dialect.
type BacktrackEngine struct {
	// Options are added to regexp2.RE2.
	Options regexp2.RegexOptions
}

func (e BacktrackEngine) Compile(pattern string) (Program, error) {
	re, err := regexp2.Compile(pattern, e.Options|regexp2.RE2)
	if err != nil {
		return nil, &CompileError{Engine: "backtrack", Pattern: pattern, Err: err}
	}
	return newBacktrackProgram(re), nil
}
