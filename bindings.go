package re

import (
	"iter"
	"slices"
)

// Catalog is a set of named expressions.
//
// Expressions are usually built from ones defined earlier:
//
//	cat := re.NewCatalog()
//	cat.Define("digits", func() *re.RE { return re.Some(re.Digit) })
//	cat.Define("version", func() *re.RE {
//		d := cat.Lookup("digits")
//		return re.G(d, re.Opt(re.Lit("."), d))
//	})
//
// A Catalog is not safe for concurrent modification.
type Catalog struct {
	names []string
	exprs map[string]*RE
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{exprs: make(map[string]*RE)}
}

// Define builds an expression with fn and binds it to name.
// Construction errors raised by fn are returned, not propagated.
func (c *Catalog) Define(name string, fn func() *RE) error {
	x, err := Build(fn)
	if err != nil {
		return err
	}
	return c.Bind(name, x)
}

// Bind binds x to name.
func (c *Catalog) Bind(name string, x *RE) error {
	if _, ok := c.exprs[name]; ok {
		return &ConstructionError{Op: "Bind", Name: name, Err: ErrDuplicateBinding}
	}
	c.names = append(c.names, name)
	c.exprs[name] = x
	return nil
}

// Lookup returns the expression bound to name, or nil.
func (c *Catalog) Lookup(name string) *RE {
	return c.exprs[name]
}

// Names returns binding names in definition order.
func (c *Catalog) Names() []string {
	return slices.Clone(c.names)
}

// All iterates over bindings in definition order.
func (c *Catalog) All() iter.Seq2[string, *RE] {
	return func(yield func(string, *RE) bool) {
		for _, name := range c.names {
			if !yield(name, c.exprs[name]) {
				return
			}
		}
	}
}

// Len returns the number of bindings.
func (c *Catalog) Len() int { return len(c.names) }

// Build calls fn and returns the expression it builds.
// A construction error raised inside fn is returned as err.
func Build(fn func() *RE) (x *RE, err error) {
	defer recoverConstruction(&err)
	return fn(), nil
}
