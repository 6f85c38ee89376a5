package re

// groupSet lists the named capture groups declared inside an expression,
// in the order their opening parens appear in the rendered pattern.
type groupSet []string

// mergeGroups concatenates the group lists of sibling subtrees.
// A name declared twice is a construction error reported against op.
func mergeGroups(op string, parts ...groupSet) groupSet {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	if n == 0 {
		return nil
	}
	seen := make(map[string]struct{}, n)
	out := make(groupSet, 0, n)
	for _, p := range parts {
		for _, name := range p {
			if _, ok := seen[name]; ok {
				throwf(op, name, ErrDuplicateGroup)
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

func childGroups(children []*RE) []groupSet {
	parts := make([]groupSet, len(children))
	for i, c := range children {
		parts[i] = c.groups
	}
	return parts
}

func validGroupName(name string) bool {
	if name == "" || !isLetter(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		ch := name[i]
		if !isLetter(ch) && !isDigit(ch) && ch != '_' {
			return false
		}
	}
	return true
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
