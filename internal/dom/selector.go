package dom

import (
	"fmt"
	"strings"
)

// selector is a parsed simple selector: optional tag, optional #id, any
// number of .class terms and [attr] / [attr=value] terms. Combinators are
// not supported; delegation selectors in this codebase are single compound
// selectors keyed on stable data attributes.
type selector struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatch
}

type attrMatch struct {
	name     string
	value    string
	hasValue bool
}

func parseSelector(s string) (selector, error) {
	var sel selector
	s = strings.TrimSpace(s)
	if s == "" {
		return sel, fmt.Errorf("empty selector")
	}

	i := 0
	// Leading tag name.
	for i < len(s) && s[i] != '#' && s[i] != '.' && s[i] != '[' {
		i++
	}
	sel.tag = s[:i]

	for i < len(s) {
		switch s[i] {
		case '#':
			j := i + 1
			for j < len(s) && s[j] != '#' && s[j] != '.' && s[j] != '[' {
				j++
			}
			sel.id = s[i+1 : j]
			i = j
		case '.':
			j := i + 1
			for j < len(s) && s[j] != '#' && s[j] != '.' && s[j] != '[' {
				j++
			}
			sel.classes = append(sel.classes, s[i+1:j])
			i = j
		case '[':
			j := strings.IndexByte(s[i:], ']')
			if j < 0 {
				return sel, fmt.Errorf("unterminated attribute selector in %q", s)
			}
			body := s[i+1 : i+j]
			if name, value, ok := strings.Cut(body, "="); ok {
				value = strings.Trim(value, `"'`)
				sel.attrs = append(sel.attrs, attrMatch{name: name, value: value, hasValue: true})
			} else {
				sel.attrs = append(sel.attrs, attrMatch{name: body})
			}
			i += j + 1
		default:
			return sel, fmt.Errorf("unexpected character %q in selector %q", s[i], s)
		}
	}

	return sel, nil
}

func (sel selector) matches(e *Element) bool {
	if sel.tag != "" && sel.tag != "*" && e.tag != sel.tag {
		return false
	}
	if sel.id != "" && e.AttrOr("id", "") != sel.id {
		return false
	}
	for _, c := range sel.classes {
		if !e.HasClass(c) {
			return false
		}
	}
	for _, a := range sel.attrs {
		v, ok := e.Attr(a.name)
		if !ok {
			return false
		}
		if a.hasValue && v != a.value {
			return false
		}
	}
	return true
}
