// Package starlarkre exposes expression building to Starlark scripts.
package starlarkre

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	re "github.com/bndtools/bnd-sub028"
)

// Module re is a Starlark module of expression combinators.
//
// Combinators accept expressions, classes and strings; a string
// argument is matched literally, like lit(s). Constructing an invalid
// expression, like declaring a group name twice, is a Starlark error.
//
//	digits = re.some(re.DIGIT)
//	version = re.g(re.named("major", digits), ".", re.named("minor", digits))
//	m = version.find("go1.22")
//	print(m.group("minor"))  # 22
var Module = &starlarkstruct.Module{
	Name: "re",
	Members: starlark.StringDict{
		"lit":      starlark.NewBuiltin("lit", lit),
		"raw":      starlark.NewBuiltin("raw", raw),
		"cc":       starlark.NewBuiltin("cc", cc),
		"category": starlark.NewBuiltin("category", category),

		"g":      variadic("g", re.G),
		"seq":    variadic("seq", re.Seq),
		"named":  starlark.NewBuiltin("named", named),
		"or_":    variadic("or_", re.Or),
		"opt":    variadic("opt", re.Opt),
		"some":   variadic("some", re.Some),
		"set":    variadic("set", re.Set),
		"maybe":  variadic("maybe", re.Maybe),
		"ahead":  variadic("ahead", re.Ahead),
		"behind": variadic("behind", re.Behind),
		"atomic": variadic("atomic", re.Atomic),
		"term":   variadic("term", re.Term),

		"at_least":   starlark.NewBuiltin("at_least", atLeast),
		"multiple":   starlark.NewBuiltin("multiple", multiple),
		"back":       starlark.NewBuiltin("back", back),
		"back_named": starlark.NewBuiltin("back_named", backNamed),
		"if_":        starlark.NewBuiltin("if_", if_),
		"while_":     starlark.NewBuiltin("while_", while_),
		"list":       starlark.NewBuiltin("list", list),
		"reluctant":  starlark.NewBuiltin("reluctant", reluctant),
		"possessive": starlark.NewBuiltin("possessive", possessive),

		"case_insensitive":     variadic("case_insensitive", re.CaseInsensitive),
		"case_insensitive_off": variadic("case_insensitive_off", re.CaseInsensitiveOff),
		"dotall":               variadic("dotall", re.DotAll),
		"dotall_off":           variadic("dotall_off", re.DotAllOff),
		"multiline":            variadic("multiline", re.Multiline),
		"multiline_off":        variadic("multiline_off", re.MultilineOff),
		"unicode_case":         variadic("unicode_case", re.UnicodeCase),
		"unicode_case_off":     variadic("unicode_case_off", re.UnicodeCaseOff),

		"WS":     NewClass(re.WS),
		"DIGIT":  NewClass(re.Digit),
		"WORD":   NewClass(re.Word),
		"LETTER": NewClass(re.Letter),
		"UPPER":  NewClass(re.Upper),
		"LOWER":  NewClass(re.Lower),
		"ALNUM":  NewClass(re.Alnum),
		"ALPHA":  NewClass(re.Alpha),
		"PUNCT":  NewClass(re.Punct),
		"XDIGIT": NewClass(re.XDigit),
		"BLANK":  NewClass(re.Blank),
		"CNTRL":  NewClass(re.Cntrl),
		"GRAPH":  NewClass(re.Graph),
		"PRINT":  NewClass(re.Print),

		"BEGIN_OF_LINE":     NewExpr(re.BeginOfLine),
		"END_OF_LINE":       NewExpr(re.EndOfLine),
		"BEGIN_OF_INPUT":    NewExpr(re.BeginOfInput),
		"END_OF_INPUT":      NewExpr(re.EndOfInput),
		"WORD_BOUNDARY":     NewExpr(re.WordBoundary),
		"NOT_WORD_BOUNDARY": NewExpr(re.NotWordBoundary),
		"DOT":               NewExpr(re.Dot),
		"SET_ALL":           NewExpr(re.SetAll),
		"SOME_ALL":          NewExpr(re.SomeAll),
	},
}

// recoverConstruction turns a combinator panic into a Starlark error.
func recoverConstruction(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(*re.ConstructionError); ok {
		*errp = err
		return
	}
	panic(r)
}

// toExpr converts a builtin argument into an expression.
func toExpr(fnname string, v starlark.Value) (re.Expr, error) {
	switch v := v.(type) {
	case *Expr:
		return v.x, nil
	case *Class:
		return v.c, nil
	case starlark.String:
		return re.Lit(string(v)), nil
	}
	return nil, fmt.Errorf("%s: got %s, want re.expr, re.class or string", fnname, v.Type())
}

func toExprs(fnname string, args starlark.Tuple) ([]re.Expr, error) {
	xs := make([]re.Expr, len(args))
	for i, arg := range args {
		x, err := toExpr(fnname, arg)
		if err != nil {
			return nil, err
		}
		xs[i] = x
	}
	return xs, nil
}

func noKwargs(b *starlark.Builtin, kwargs []starlark.Tuple) error {
	if len(kwargs) != 0 {
		return fmt.Errorf("%s: unexpected keyword arguments", b.Name())
	}
	return nil
}

// variadic adapts a combinator that takes any number of expressions.
func variadic(name string, fn func(...re.Expr) *re.RE) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
		defer recoverConstruction(&err)
		if err := noKwargs(b, kwargs); err != nil {
			return nil, err
		}
		xs, err := toExprs(b.Name(), args)
		if err != nil {
			return nil, err
		}
		return NewExpr(fn(xs...)), nil
	})
}

func lit(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	defer recoverConstruction(&err)
	var text string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &text); err != nil {
		return nil, err
	}
	return NewExpr(re.Lit(text)), nil
}

func raw(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	defer recoverConstruction(&err)
	var pattern string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &pattern); err != nil {
		return nil, err
	}
	return NewExpr(re.Raw(pattern)), nil
}

func cc(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	defer recoverConstruction(&err)
	var spec string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &spec); err != nil {
		return nil, err
	}
	return NewClass(re.CC(spec)), nil
}

func category(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	defer recoverConstruction(&err)
	var name string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	return NewClass(re.Category(name)), nil
}

func named(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	defer recoverConstruction(&err)
	if err := noKwargs(b, kwargs); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%s: missing group name", b.Name())
	}
	name, ok := starlark.AsString(args[0])
	if !ok {
		return nil, fmt.Errorf("%s: got %s for group name, want string", b.Name(), args[0].Type())
	}
	xs, err := toExprs(b.Name(), args[1:])
	if err != nil {
		return nil, err
	}
	return NewExpr(re.Named(name, xs...)), nil
}

func atLeast(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	defer recoverConstruction(&err)
	if err := noKwargs(b, kwargs); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%s: missing count", b.Name())
	}
	var n int
	if err := starlark.AsInt(args[0], &n); err != nil {
		return nil, fmt.Errorf("%s: %v", b.Name(), err)
	}
	xs, err := toExprs(b.Name(), args[1:])
	if err != nil {
		return nil, err
	}
	return NewExpr(re.AtLeast(n, xs...)), nil
}

func multiple(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	defer recoverConstruction(&err)
	if err := noKwargs(b, kwargs); err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, fmt.Errorf("%s: missing repeat bounds", b.Name())
	}
	var min, max int
	if err := starlark.AsInt(args[0], &min); err != nil {
		return nil, fmt.Errorf("%s: %v", b.Name(), err)
	}
	if err := starlark.AsInt(args[1], &max); err != nil {
		return nil, fmt.Errorf("%s: %v", b.Name(), err)
	}
	xs, err := toExprs(b.Name(), args[2:])
	if err != nil {
		return nil, err
	}
	return NewExpr(re.Multiple(min, max, xs...)), nil
}

func back(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	defer recoverConstruction(&err)
	var n int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n); err != nil {
		return nil, err
	}
	return NewExpr(re.Back(n)), nil
}

func backNamed(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	defer recoverConstruction(&err)
	var name string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	return NewExpr(re.BackNamed(name)), nil
}

func if_(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	defer recoverConstruction(&err)
	if err := noKwargs(b, kwargs); err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, fmt.Errorf("%s: want a condition and a branch", b.Name())
	}
	xs, err := toExprs(b.Name(), args)
	if err != nil {
		return nil, err
	}
	return NewExpr(re.If(xs[0], xs[1], xs[2:]...)), nil
}

func while_(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	defer recoverConstruction(&err)
	if err := noKwargs(b, kwargs); err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, fmt.Errorf("%s: want a condition and a body", b.Name())
	}
	xs, err := toExprs(b.Name(), args)
	if err != nil {
		return nil, err
	}
	return NewExpr(re.While(xs[0], xs[1:]...)), nil
}

func list(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	defer recoverConstruction(&err)
	var item, sep starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "item", &item, "sep", &sep); err != nil {
		return nil, err
	}
	x, err := toExpr(b.Name(), item)
	if err != nil {
		return nil, err
	}
	s, err := toExpr(b.Name(), sep)
	if err != nil {
		return nil, err
	}
	return NewExpr(re.List(x, s)), nil
}

func reluctant(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	defer recoverConstruction(&err)
	var arg starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &arg); err != nil {
		return nil, err
	}
	x, err := toExpr(b.Name(), arg)
	if err != nil {
		return nil, err
	}
	return NewExpr(re.Reluctant(x)), nil
}

func possessive(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (v starlark.Value, err error) {
	defer recoverConstruction(&err)
	var arg starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &arg); err != nil {
		return nil, err
	}
	x, err := toExpr(b.Name(), arg)
	if err != nil {
		return nil, err
	}
	return NewExpr(re.Possessive(x)), nil
}
