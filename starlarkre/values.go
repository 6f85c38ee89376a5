package starlarkre

import (
	"fmt"
	"sort"
	"sync"

	"go.starlark.net/starlark"

	re "github.com/bndtools/bnd-sub028"
)

// Expr is a Starlark value wrapping an expression.
type Expr struct {
	x *re.RE
}

// NewExpr wraps x for Starlark.
func NewExpr(x *re.RE) *Expr { return &Expr{x: x} }

// RE returns the wrapped expression.
func (e *Expr) RE() *re.RE { return e.x }

func (e *Expr) String() string        { return e.x.String() }
func (e *Expr) Type() string          { return "re.expr" }
func (e *Expr) Freeze()               {}
func (e *Expr) Truth() starlark.Bool  { return true }
func (e *Expr) Hash() (uint32, error) { return starlark.String(e.x.String()).Hash() }

func (e *Expr) Attr(name string) (starlark.Value, error) {
	switch name {
	case "pattern":
		return starlark.String(e.x.String()), nil
	case "group_names":
		return stringList(e.x.GroupNames()), nil
	}
	return builtinAttr(e, name, exprMethods)
}

func (e *Expr) AttrNames() []string {
	names := append(builtinAttrNames(exprMethods), "group_names", "pattern")
	sort.Strings(names)
	return names
}

// Class is a Starlark value wrapping a character class.
type Class struct {
	c *re.C

	once sync.Once
	x    *re.RE
}

// NewClass wraps c for Starlark.
func NewClass(c *re.C) *Class { return &Class{c: c} }

// C returns the wrapped class.
func (c *Class) C() *re.C { return c.c }

// RE returns the class as a matchable expression.
func (c *Class) RE() *re.RE {
	c.once.Do(func() { c.x = re.G(c.c) })
	return c.x
}

func (c *Class) String() string        { return c.c.String() }
func (c *Class) Type() string          { return "re.class" }
func (c *Class) Freeze()               {}
func (c *Class) Truth() starlark.Bool  { return true }
func (c *Class) Hash() (uint32, error) { return starlark.String(c.c.String()).Hash() }

func (c *Class) Attr(name string) (starlark.Value, error) {
	switch name {
	case "pattern":
		return starlark.String(c.c.String()), nil
	case "group_names":
		return starlark.NewList(nil), nil
	}
	if b := classMethods[name]; b != nil {
		return b.BindReceiver(c), nil
	}
	return builtinAttr(c, name, exprMethods)
}

func (c *Class) AttrNames() []string {
	names := append(builtinAttrNames(exprMethods), builtinAttrNames(classMethods)...)
	names = append(names, "group_names", "pattern")
	sort.Strings(names)
	return names
}

// Match is a Starlark value wrapping a successful match.
type Match struct {
	m *re.Match
}

func (m *Match) String() string        { return fmt.Sprintf("<re.match %q>", m.m.String()) }
func (m *Match) Type() string          { return "re.match" }
func (m *Match) Freeze()               {}
func (m *Match) Truth() starlark.Bool  { return true }
func (m *Match) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: re.match") }

func (m *Match) Attr(name string) (starlark.Value, error) {
	switch name {
	case "text":
		return starlark.String(m.m.String()), nil
	case "start":
		return starlark.MakeInt(m.m.Start()), nil
	case "end":
		return starlark.MakeInt(m.m.End()), nil
	}
	return builtinAttr(m, name, matchMethods)
}

func (m *Match) AttrNames() []string {
	names := append(builtinAttrNames(matchMethods), "end", "start", "text")
	sort.Strings(names)
	return names
}

var exprMethods = map[string]*starlark.Builtin{
	"not_":       starlark.NewBuiltin("not_", exprNot),
	"reluctant":  starlark.NewBuiltin("reluctant", exprReluctant),
	"possessive": starlark.NewBuiltin("possessive", exprPossessive),
	"matches":    starlark.NewBuiltin("matches", matches),
	"find":       starlark.NewBuiltin("find", find),
	"looking_at": starlark.NewBuiltin("looking_at", lookingAt),
	"find_all":   starlark.NewBuiltin("find_all", findAll),
	"append":     starlark.NewBuiltin("append", appendMatches),
}

var classMethods = map[string]*starlark.Builtin{
	"and_": starlark.NewBuiltin("and_", classAnd),
	"or_":  starlark.NewBuiltin("or_", classOr),
}

var matchMethods = map[string]*starlark.Builtin{
	"group":  starlark.NewBuiltin("group", matchGroup),
	"groups": starlark.NewBuiltin("groups", matchGroups),
}

func builtinAttr(recv starlark.Value, name string, methods map[string]*starlark.Builtin) (starlark.Value, error) {
	b := methods[name]
	if b == nil {
		return nil, nil // no such method
	}
	return b.BindReceiver(recv), nil
}

func builtinAttrNames(methods map[string]*starlark.Builtin) []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func stringList(xs []string) *starlark.List {
	elems := make([]starlark.Value, len(xs))
	for i, x := range xs {
		elems[i] = starlark.String(x)
	}
	return starlark.NewList(elems)
}

func receiverRE(b *starlark.Builtin) *re.RE {
	switch recv := b.Receiver().(type) {
	case *Expr:
		return recv.x
	case *Class:
		return recv.RE()
	}
	panic(fmt.Sprintf("%s: unexpected receiver %s", b.Name(), b.Receiver().Type()))
}

func receiverPattern(b *starlark.Builtin) (*re.Pattern, error) {
	p, err := receiverRE(b).Compile()
	if err != nil {
		return nil, fmt.Errorf("%s: %v", b.Name(), err)
	}
	return p, nil
}

func exprNot(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	defer recoverConstruction(&err)
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	if c, ok := b.Receiver().(*Class); ok {
		return NewClass(c.c.Not()), nil
	}
	return NewExpr(receiverRE(b).Not()), nil
}

func exprReluctant(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	defer recoverConstruction(&err)
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return NewExpr(receiverRE(b).Reluctant()), nil
}

func exprPossessive(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	defer recoverConstruction(&err)
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return NewExpr(receiverRE(b).Possessive()), nil
}

func wrapMatch(m *re.Match) starlark.Value {
	if m == nil {
		return starlark.None
	}
	return &Match{m: m}
}

func matchWith(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, fn func(*re.Pattern, string) *re.Match) (starlark.Value, error) {
	var src string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &src); err != nil {
		return nil, err
	}
	p, err := receiverPattern(b)
	if err != nil {
		return nil, err
	}
	return wrapMatch(fn(p, src)), nil
}

func matches(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return matchWith(b, args, kwargs, (*re.Pattern).Matches)
}

func find(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return matchWith(b, args, kwargs, (*re.Pattern).Find)
}

func lookingAt(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return matchWith(b, args, kwargs, (*re.Pattern).LookingAt)
}

func findAll(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		src string
		max int = -1
	)
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &src, &max); err != nil {
		return nil, err
	}
	p, err := receiverPattern(b)
	if err != nil {
		return nil, err
	}
	var elems []starlark.Value
	for m := range p.FindAll(src) {
		if max >= 0 && len(elems) == max {
			break
		}
		elems = append(elems, &Match{m: m})
	}
	return starlark.NewList(elems), nil
}

func appendMatches(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		src  string
		repl starlark.Value
	)
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &src, &repl); err != nil {
		return nil, err
	}
	p, err := receiverPattern(b)
	if err != nil {
		return nil, err
	}

	switch x := repl.(type) {
	case starlark.Callable:
		var fnErr error
		result := p.Append(src, func(m *re.Match) string {
			if fnErr != nil {
				return ""
			}
			res, err := starlark.Call(thread, repl, starlark.Tuple{&Match{m: m}}, nil)
			if err != nil {
				fnErr = fmt.Errorf("%s: %s: %v", b.Name(), x.Name(), err)
				return ""
			}
			s, ok := starlark.AsString(res)
			if !ok {
				fnErr = fmt.Errorf("%s: %s returned %s, want string", b.Name(), x.Name(), res.Type())
				return ""
			}
			return s
		})
		if fnErr != nil {
			return nil, fnErr
		}
		return starlark.String(result), nil
	case starlark.String:
		return starlark.String(p.Append(src, func(*re.Match) string { return string(x) })), nil
	}
	return nil, fmt.Errorf("%s: got %s, want a string or callable", b.Name(), repl.Type())
}

func classAnd(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var other *Class
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &other); err != nil {
		return nil, err
	}
	return NewClass(b.Receiver().(*Class).c.And(other.c)), nil
}

func classOr(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var other *Class
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &other); err != nil {
		return nil, err
	}
	return NewClass(b.Receiver().(*Class).c.Or(other.c)), nil
}

func matchGroup(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	s, ok := b.Receiver().(*Match).m.Group(name)
	if !ok {
		return starlark.None, nil
	}
	return starlark.String(s), nil
}

func matchGroups(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	m := b.Receiver().(*Match).m
	names := m.Pattern().GroupNames()
	d := starlark.NewDict(len(names))
	for _, name := range names {
		s, ok := m.Group(name)
		if !ok {
			continue
		}
		if err := d.SetKey(starlark.String(name), starlark.String(s)); err != nil {
			return nil, err
		}
	}
	return d, nil
}
