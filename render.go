package re

import (
	"strconv"
	"strings"
)

// write appends the rendering of x in the given flag scope to b.
// It returns the scope in effect after x: only toggles that are not
// enclosed in a group change it.
func (x *RE) write(b *strings.Builder, scope flagScope) flagScope {
	switch x.kind {
	case kindLit, kindRaw, kindAnchor, kindClass, kindBackref:
		b.WriteString(x.text)

	case kindConcat:
		return writeChildren(b, x.children, scope)

	case kindSeq:
		if x.name != "" {
			b.WriteString("(?<")
			b.WriteString(x.name)
			b.WriteString(">")
		} else {
			b.WriteString("(?:")
		}
		writeChildren(b, x.children, scope)
		b.WriteByte(')')

	case kindAlt:
		b.WriteString("(?:")
		for i, c := range x.children {
			if i != 0 {
				b.WriteByte('|')
			}
			// A toggle stays in effect up to the closing parenthesis,
			// so a branch that ends with one gets its own group.
			var branch strings.Builder
			if render(&branch, c, scope) != scope {
				b.WriteString("(?:")
				b.WriteString(branch.String())
				b.WriteByte(')')
			} else {
				b.WriteString(branch.String())
			}
		}
		b.WriteByte(')')

	case kindRepeat:
		writeRepeat(b, x, scope)

	case kindLook:
		switch {
		case x.behind && x.negated:
			b.WriteString("(?<!")
		case x.behind:
			b.WriteString("(?<=")
		case x.negated:
			b.WriteString("(?!")
		default:
			b.WriteString("(?=")
		}
		render(b, x.children[0], scope)
		b.WriteByte(')')

	case kindAtomic:
		b.WriteString("(?>")
		render(b, x.children[0], scope)
		b.WriteByte(')')

	case kindFlags:
		inner := x.applyFlags(scope)
		b.WriteString("(?")
		b.WriteString(scope.diff(inner))
		b.WriteByte(':')
		writeChildren(b, x.children, inner)
		b.WriteByte(')')

	case kindToggle:
		to := x.applyFlags(scope)
		if m := scope.diff(to); m != "" {
			b.WriteString("(?")
			b.WriteString(m)
			b.WriteByte(')')
		}
		return to
	}

	return scope
}

// render writes a child node. Nodes that don't depend on the enclosing
// flags reuse their memoized rendering.
func render(b *strings.Builder, x *RE, scope flagScope) flagScope {
	if !x.scoped {
		b.WriteString(x.String())
		return scope
	}
	return x.write(b, scope)
}

func writeChildren(b *strings.Builder, children []*RE, scope flagScope) flagScope {
	for i := 0; i < len(children); i++ {
		c := children[i]

		if c.kind == kindToggle {
			to := scope
			for i < len(children) && children[i].kind == kindToggle {
				to = children[i].applyFlags(to)
				i++
			}
			i--
			if m := scope.diff(to); m != "" {
				b.WriteString("(?")
				b.WriteString(m)
				b.WriteByte(')')
			}
			scope = to
			continue
		}

		// \1 followed by 0 would read as \10. Toggles may render
		// nothing, so look at what the rest of the children render.
		if c.kind == kindBackref && c.name == "" && i+1 < len(children) {
			var rest strings.Builder
			scope = writeChildren(&rest, children[i+1:], scope)
			if startsWithDigit(rest.String()) {
				b.WriteString("(?:")
				b.WriteString(c.text)
				b.WriteByte(')')
			} else {
				b.WriteString(c.text)
			}
			b.WriteString(rest.String())
			return scope
		}

		scope = render(b, c, scope)
	}
	return scope
}

func writeRepeat(b *strings.Builder, x *RE, scope flagScope) {
	if x.greed == possessive {
		b.WriteString("(?>")
	}

	c := x.children[0]
	if c.atom {
		render(b, c, scope)
	} else {
		b.WriteString("(?:")
		render(b, c, scope)
		b.WriteByte(')')
	}

	switch {
	case x.min == 0 && x.max == 1:
		b.WriteByte('?')
	case x.min == 0 && x.max < 0:
		b.WriteByte('*')
	case x.min == 1 && x.max < 0:
		b.WriteByte('+')
	case x.min == x.max:
		b.WriteByte('{')
		b.WriteString(strconv.Itoa(x.min))
		b.WriteByte('}')
	case x.max < 0:
		b.WriteByte('{')
		b.WriteString(strconv.Itoa(x.min))
		b.WriteString(",}")
	default:
		b.WriteByte('{')
		b.WriteString(strconv.Itoa(x.min))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(x.max))
		b.WriteByte('}')
	}

	switch x.greed {
	case reluctant:
		b.WriteByte('?')
	case possessive:
		b.WriteByte(')')
	}
}

func startsWithDigit(s string) bool {
	return s != "" && isDigit(s[0])
}
