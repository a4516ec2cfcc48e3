package dom

import "sort"

// Element is a node in the document tree.
//
// Fields are unexported; mutation goes through methods so the document can
// keep focus and dispatch state consistent with the tree.
type Element struct {
	doc      *Document
	parent   *Element
	children []*Element

	tag     string
	attrs   map[string]string
	classes map[string]struct{}
	text    string

	listeners map[string][]Handler

	// reflows counts ForceReflow calls. Re-adding an animation class only
	// restarts the animation if a reflow happened between remove and add;
	// tests assert on this counter.
	reflows int
}

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.tag }

// Document returns the owning document.
func (e *Element) Document() *Document { return e.doc }

// Parent returns the parent element, or nil for the root and detached nodes.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the child elements in order.
func (e *Element) Children() []*Element { return e.children }

// Append adds child as the last child of e. A child already attached
// elsewhere is moved.
func (e *Element) Append(child *Element) {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
}

// Remove detaches e from its parent. Focus held inside the removed subtree
// is cleared, matching a browser removing the active element.
func (e *Element) Remove() {
	if e.parent != nil {
		e.parent.removeChild(e)
	}
	if active := e.doc.ActiveElement(); active != nil && !active.IsAttached() {
		e.doc.active = nil
	}
}

// RemoveChildren detaches all children. Used by full re-renders.
func (e *Element) RemoveChildren() {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
	if active := e.doc.ActiveElement(); active != nil && !active.IsAttached() {
		e.doc.active = nil
	}
}

func (e *Element) removeChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// IsAttached reports whether e is reachable from the document root.
func (e *Element) IsAttached() bool {
	for n := e; n != nil; n = n.parent {
		if n == e.doc.root {
			return true
		}
	}
	return false
}

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// AttrOr returns the attribute value, or def when absent.
func (e *Element) AttrOr(name, def string) string {
	if v, ok := e.attrs[name]; ok {
		return v
	}
	return def
}

// HasAttr reports attribute presence.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// SetAttr sets an attribute.
func (e *Element) SetAttr(name, value string) {
	e.attrs[name] = value
}

// RemoveAttr removes an attribute if present.
func (e *Element) RemoveAttr(name string) {
	delete(e.attrs, name)
}

// AddClass adds a class to the element's class set.
func (e *Element) AddClass(name string) {
	e.classes[name] = struct{}{}
}

// RemoveClass removes a class if present.
func (e *Element) RemoveClass(name string) {
	delete(e.classes, name)
}

// HasClass reports class membership.
func (e *Element) HasClass(name string) bool {
	_, ok := e.classes[name]
	return ok
}

// ClassList returns the classes in sorted order.
func (e *Element) ClassList() []string {
	out := make([]string, 0, len(e.classes))
	for c := range e.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Text returns the element's text content.
func (e *Element) Text() string { return e.text }

// SetText replaces the element's text content.
func (e *Element) SetText(text string) { e.text = text }

// Visible reports whether the element is rendered: neither it nor any
// ancestor carries the hidden attribute.
func (e *Element) Visible() bool {
	for n := e; n != nil; n = n.parent {
		if n.HasAttr("hidden") {
			return false
		}
	}
	return true
}

// Disabled reports whether the element carries the disabled attribute.
func (e *Element) Disabled() bool {
	return e.HasAttr("disabled")
}

// Focus makes e the document's active element.
func (e *Element) Focus() {
	e.doc.active = e
}

// ForceReflow records a forced style reflow. The browser detail being
// modeled: removing and re-adding an animation class without an intervening
// reflow does not restart the animation.
func (e *Element) ForceReflow() {
	e.reflows++
}

// ReflowCount returns the number of forced reflows. Test hook.
func (e *Element) ReflowCount() int { return e.reflows }

// On registers a direct listener on this element. Most handlers should use
// Document.Delegate instead so they survive subtree replacement.
func (e *Element) On(eventType string, h Handler) {
	if e.listeners == nil {
		e.listeners = make(map[string][]Handler)
	}
	e.listeners[eventType] = append(e.listeners[eventType], h)
}

// Query returns the first descendant matching the selector, or nil.
func (e *Element) Query(selector string) *Element {
	sel, err := parseSelector(selector)
	if err != nil {
		return nil
	}
	return queryFirst(e, sel)
}

// QueryAll returns all descendants matching the selector in document order.
func (e *Element) QueryAll(selector string) []*Element {
	sel, err := parseSelector(selector)
	if err != nil {
		return nil
	}
	var out []*Element
	collect(e, sel, &out)
	return out
}

// Matches reports whether e itself matches the selector.
func (e *Element) Matches(selector string) bool {
	sel, err := parseSelector(selector)
	if err != nil {
		return false
	}
	return sel.matches(e)
}

// Closest returns the nearest ancestor-or-self matching the selector, or nil.
func (e *Element) Closest(selector string) *Element {
	sel, err := parseSelector(selector)
	if err != nil {
		return nil
	}
	for n := e; n != nil; n = n.parent {
		if sel.matches(n) {
			return n
		}
	}
	return nil
}

func queryFirst(e *Element, sel selector) *Element {
	for _, c := range e.children {
		if sel.matches(c) {
			return c
		}
		if found := queryFirst(c, sel); found != nil {
			return found
		}
	}
	return nil
}

func collect(e *Element, sel selector, out *[]*Element) {
	for _, c := range e.children {
		if sel.matches(c) {
			*out = append(*out, c)
		}
		collect(c, sel, out)
	}
}
