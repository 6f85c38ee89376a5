package starlarkre

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	re "github.com/bndtools/bnd-sub028"
)

// LoadCatalog executes a Starlark catalog file and binds every global
// expression or class it defines, in the order of first assignment.
// Globals whose names start with an underscore stay private.
//
// If src is nil, the file is read from disk. Otherwise src may be
// a string, a []byte or an io.Reader.
func LoadCatalog(filename string, src any) (*re.Catalog, error) {
	data, err := readSource(filename, src)
	if err != nil {
		return nil, err
	}

	f, err := syntax.Parse(filename, data, 0)
	if err != nil {
		return nil, err
	}

	thread := &starlark.Thread{Name: "catalog " + filename}
	globals, err := starlark.ExecFile(thread, filename, data, starlark.StringDict{"re": Module})
	if err != nil {
		return nil, err
	}

	cat := re.NewCatalog()
	for _, name := range assignedNames(f) {
		if strings.HasPrefix(name, "_") {
			continue
		}
		var x *re.RE
		switch v := globals[name].(type) {
		case *Expr:
			x = v.RE()
		case *Class:
			x = v.RE()
		default:
			continue
		}
		if err := cat.Bind(name, x); err != nil {
			return nil, fmt.Errorf("%s: %v", filename, err)
		}
	}
	return cat, nil
}

func readSource(filename string, src any) ([]byte, error) {
	switch src := src.(type) {
	case nil:
		return os.ReadFile(filename)
	case string:
		return []byte(src), nil
	case []byte:
		return src, nil
	case io.Reader:
		return io.ReadAll(src)
	}
	return nil, fmt.Errorf("%s: invalid source type %T", filename, src)
}

// assignedNames lists top-level assigned identifiers without repeats.
func assignedNames(f *syntax.File) []string {
	var names []string
	seen := make(map[string]bool)
	var collect func(e syntax.Expr)
	collect = func(e syntax.Expr) {
		switch e := e.(type) {
		case *syntax.Ident:
			if !seen[e.Name] {
				seen[e.Name] = true
				names = append(names, e.Name)
			}
		case *syntax.TupleExpr:
			for _, x := range e.List {
				collect(x)
			}
		case *syntax.ListExpr:
			for _, x := range e.List {
				collect(x)
			}
		case *syntax.ParenExpr:
			collect(e.X)
		}
	}
	for _, stmt := range f.Stmts {
		if assign, ok := stmt.(*syntax.AssignStmt); ok {
			collect(assign.LHS)
		}
	}
	return names
}
