package dom

import (
	"sort"
	"strings"
)

// HTML serializes the element and its subtree deterministically: attributes
// sorted by name, classes sorted, two-space indentation. The output is the
// comparison format for golden tests, not a spec-exact HTML rendering.
func (e *Element) HTML() string {
	var b strings.Builder
	e.writeHTML(&b, 0)
	return b.String()
}

func (e *Element) writeHTML(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)

	b.WriteString(indent)
	b.WriteByte('<')
	b.WriteString(e.tag)

	if len(e.classes) > 0 {
		b.WriteString(` class="`)
		b.WriteString(strings.Join(e.ClassList(), " "))
		b.WriteString(`"`)
	}

	names := make([]string, 0, len(e.attrs))
	for name := range e.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(e.attrs[name])
		b.WriteString(`"`)
	}

	if e.text == "" && len(e.children) == 0 {
		b.WriteString("/>\n")
		return
	}
	b.WriteString(">")

	if e.text != "" {
		b.WriteString(e.text)
	}

	if len(e.children) == 0 {
		b.WriteString("</")
		b.WriteString(e.tag)
		b.WriteString(">\n")
		return
	}

	b.WriteString("\n")
	for _, c := range e.children {
		c.writeHTML(b, depth+1)
	}
	b.WriteString(indent)
	b.WriteString("</")
	b.WriteString(e.tag)
	b.WriteString(">\n")
}
