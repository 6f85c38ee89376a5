package re

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateGroup   = errors.New("duplicate group name")
	ErrInvalidGroupName = errors.New("invalid group name")
	ErrMalformedClass   = errors.New("malformed character class")
	ErrNotQuantifier    = errors.New("not a quantifier")
	ErrNotNegatable     = errors.New("only lookarounds and classes can be negated")
	ErrBadRepeat        = errors.New("invalid repeat bounds")
	ErrBadBackref       = errors.New("invalid backreference")
	ErrBadFragment      = errors.New("invalid pattern fragment")
	ErrInvalidUTF8      = errors.New("invalid UTF-8 in literal")
	ErrDuplicateBinding = errors.New("duplicate binding")
)

// ConstructionError describes a combinator call that can't produce a valid expression.
//
// Combinators panic with *ConstructionError; Build and Catalog.Define
// turn such panics into returned errors.
type ConstructionError struct {
	Op   string // combinator name, like "Named" or "CC"
	Name string // offending group name or class spec, if any
	Err  error
}

func (e *ConstructionError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("re.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("re.%s: %v: %q", e.Op, e.Err, e.Name)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

func throwf(op, name string, err error) {
	panic(&ConstructionError{Op: op, Name: name, Err: err})
}

// CompileError is returned when an engine rejects a rendered pattern.
type CompileError struct {
	Engine  string
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: compile `%s`: %v", e.Engine, e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// recoverConstruction converts a *ConstructionError panic into *errp.
// Other panics are propagated.
func recoverConstruction(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(*ConstructionError); ok {
		*errp = err
		return
	}
	panic(r)
}
