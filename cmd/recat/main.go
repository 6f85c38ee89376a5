// The recat command searches text with expressions built in Starlark.
//
// Usage:
//
//	recat [-c catalog.star] -p NAME [FILE...]
//	recat [-c catalog.star] -e EXPR [FILE...]
//	recat -c catalog.star -print [NAME...]
//	recat
//
// With -p, the pattern is the catalog binding NAME. With -e, EXPR is
// a Starlark expression that may refer to the re module and to every
// catalog binding. With -print, the rendered patterns of the catalog
// are printed. With no arguments, recat starts a read-eval-print loop
// in which the re module is predeclared.
//
// The exit status is 0 if a line matched, 1 if none did and 2 on error.
package main // import "github.com/bndtools/bnd-sub028/cmd/recat"

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"golang.org/x/term"

	re "github.com/bndtools/bnd-sub028"
	"github.com/bndtools/bnd-sub028/starlarkre"
)

const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

func main() {
	os.Exit(doMain())
}

func doMain() int {
	log.SetPrefix("recat: ")
	log.SetFlags(0)

	if len(os.Args) == 1 {
		fmt.Println("Welcome to recat; the re module is predeclared")
		starlark.Universe["re"] = starlarkre.Module
		thread := &starlark.Thread{Name: "REPL", Load: repl.MakeLoad()}
		repl.REPL(thread, make(starlark.StringDict))
		return exitMatch
	}

	color := term.IsTerminal(int(os.Stdout.Fd()))
	return run(os.Args[1:], os.Stdin, os.Stdout, color)
}

type options struct {
	catalog  string
	name     string
	expr     string
	only     bool
	numbers  bool
	color    bool
	printing bool
}

func run(args []string, stdin io.Reader, stdout io.Writer, tty bool) int {
	var opts options
	fs := flag.NewFlagSet("recat", flag.ContinueOnError)
	fs.StringVar(&opts.catalog, "c", "", "load catalog `file`")
	fs.StringVar(&opts.name, "p", "", "search for the catalog binding `name`")
	fs.StringVar(&opts.expr, "e", "", "search for the Starlark expression `expr`")
	fs.BoolVar(&opts.only, "o", false, "print only the matched parts of lines")
	fs.BoolVar(&opts.numbers, "n", false, "prefix lines with their line numbers")
	fs.BoolVar(&opts.printing, "print", false, "print the patterns of catalog bindings and exit")
	colorMode := fs.String("color", "auto", "highlight matches: auto, always or never")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	switch *colorMode {
	case "auto":
		opts.color = tty
	case "always":
		opts.color = true
	case "never":
	default:
		log.Printf("invalid -color value %q", *colorMode)
		return exitError
	}

	cat := re.NewCatalog()
	if opts.catalog != "" {
		var err error
		cat, err = starlarkre.LoadCatalog(opts.catalog, nil)
		if err != nil {
			repl.PrintError(err)
			return exitError
		}
	}

	if opts.printing {
		if err := printCatalog(stdout, cat, fs.Args()); err != nil {
			log.Print(err)
			return exitError
		}
		return exitMatch
	}

	x, err := selectExpr(cat, opts)
	if err != nil {
		log.Print(err)
		return exitError
	}
	p, err := x.Compile()
	if err != nil {
		log.Print(err)
		return exitError
	}

	g := &grep{p: p, opts: opts, w: bufio.NewWriter(stdout)}
	defer g.w.Flush()

	paths := fs.Args()
	if len(paths) == 0 {
		if err := g.scan("", stdin); err != nil {
			log.Print(err)
			return exitError
		}
	}
	for _, path := range paths {
		if err := g.scanFile(path, len(paths) > 1); err != nil {
			log.Print(err)
			return exitError
		}
	}

	if g.found {
		return exitMatch
	}
	return exitNoMatch
}

func printCatalog(w io.Writer, cat *re.Catalog, names []string) error {
	if len(names) == 0 {
		for name, x := range cat.All() {
			fmt.Fprintf(w, "%s = %s\n", name, x)
		}
		return nil
	}
	for _, name := range names {
		x := cat.Lookup(name)
		if x == nil {
			return fmt.Errorf("no binding named %q", name)
		}
		fmt.Fprintf(w, "%s = %s\n", name, x)
	}
	return nil
}

func selectExpr(cat *re.Catalog, opts options) (*re.RE, error) {
	switch {
	case opts.name != "" && opts.expr != "":
		return nil, errors.New("-p and -e are mutually exclusive")
	case opts.name != "":
		x := cat.Lookup(opts.name)
		if x == nil {
			return nil, fmt.Errorf("no binding named %q", opts.name)
		}
		return x, nil
	case opts.expr != "":
		return evalExpr(cat, opts.expr)
	}
	return nil, errors.New("want a pattern: use -p or -e")
}

// evalExpr evaluates src with the catalog bindings predeclared.
func evalExpr(cat *re.Catalog, src string) (*re.RE, error) {
	predeclared := starlark.StringDict{"re": starlarkre.Module}
	for name, x := range cat.All() {
		predeclared[name] = starlarkre.NewExpr(x)
	}

	thread := &starlark.Thread{Name: "exec cmdline"}
	globals, err := starlark.ExecFile(thread, "cmdline", "pattern = "+src, predeclared)
	if err != nil {
		return nil, err
	}
	switch v := globals["pattern"].(type) {
	case *starlarkre.Expr:
		return v.RE(), nil
	case *starlarkre.Class:
		return v.RE(), nil
	case starlark.String:
		return re.Build(func() *re.RE { return re.Lit(string(v)) })
	default:
		return nil, fmt.Errorf("-e: got %s, want re.expr", v.Type())
	}
}

type grep struct {
	p     *re.Pattern
	opts  options
	w     *bufio.Writer
	found bool
}

func (g *grep) scanFile(path string, prefix bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if !prefix {
		path = ""
	}
	return g.scan(path, f)
}

const (
	colorStart = "\x1b[01;31m"
	colorEnd   = "\x1b[m"
)

// maxLineSize bounds the length of a scanned line.
const maxLineSize = 256 << 20

// scan prints the lines of r that contain a match, prefixed with
// filename when it is not empty.
func (g *grep) scan(filename string, r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		var spans [][2]int
		for m := range g.p.FindAll(line) {
			spans = append(spans, [2]int{m.Start(), m.End()})
		}
		if len(spans) == 0 {
			continue
		}
		g.found = true

		prefix := ""
		if filename != "" {
			prefix = filename + ":"
		}
		if g.opts.numbers {
			prefix += fmt.Sprintf("%d:", n)
		}

		if g.opts.only {
			for _, s := range spans {
				if s[0] == s[1] {
					continue
				}
				fmt.Fprintf(g.w, "%s%s\n", prefix, g.highlight(line[s[0]:s[1]]))
			}
			continue
		}

		g.w.WriteString(prefix)
		last := 0
		for _, s := range spans {
			g.w.WriteString(line[last:s[0]])
			g.w.WriteString(g.highlight(line[s[0]:s[1]]))
			last = s[1]
		}
		g.w.WriteString(line[last:])
		g.w.WriteByte('\n')
	}
	return sc.Err()
}

func (g *grep) highlight(s string) string {
	if !g.opts.color || s == "" {
		return s
	}
	return colorStart + s + colorEnd
}
