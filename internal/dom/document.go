package dom

// Document owns the element tree, the focus slot, and the delegation
// dispatch table.
type Document struct {
	root   *Element
	active *Element

	// delegates is the root dispatch table: registered once, looked up per
	// event. Handlers keyed on stable selectors survive wholesale subtree
	// replacement, which per-element listeners would not.
	delegates []delegate

	// keyListeners receive every keydown regardless of target. The focus
	// trap uses this to intercept Tab traversal globally.
	keyListeners []func(ev *Event)
}

type delegate struct {
	eventType string
	selector  string
	handler   Handler
}

// NewDocument creates a document with an empty body root.
func NewDocument() *Document {
	d := &Document{}
	d.root = d.CreateElement("body")
	return d
}

// Root returns the document's root element.
func (d *Document) Root() *Element { return d.root }

// CreateElement creates a detached element owned by this document.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{
		doc:     d,
		tag:     tag,
		attrs:   make(map[string]string),
		classes: make(map[string]struct{}),
	}
}

// Query returns the first element in the document matching the selector.
func (d *Document) Query(selector string) *Element {
	return d.root.Query(selector)
}

// QueryAll returns every element in the document matching the selector.
func (d *Document) QueryAll(selector string) []*Element {
	return d.root.QueryAll(selector)
}

// ActiveElement returns the element holding focus, or nil. A focused
// element that has since been detached or hidden reads as nil, matching a
// browser dropping focus when the active element leaves the render tree.
func (d *Document) ActiveElement() *Element {
	if d.active == nil || !d.active.IsAttached() || !d.active.Visible() {
		return nil
	}
	return d.active
}

// Delegate registers a handler in the root dispatch table. On dispatch, the
// handler fires if the event target or one of its ancestors matches the
// selector; the matching element is passed alongside the event.
func (d *Document) Delegate(eventType, selector string, h Handler) {
	d.delegates = append(d.delegates, delegate{eventType: eventType, selector: selector, handler: h})
}

// OnKeyDown registers a global keydown listener. Global listeners run before
// delegated handlers, mirroring a capture-phase window listener.
func (d *Document) OnKeyDown(fn func(ev *Event)) {
	d.keyListeners = append(d.keyListeners, fn)
}

// Dispatch delivers an event: global key listeners first, then direct
// listeners bubbling from the target, then the delegation table in
// registration order.
func (d *Document) Dispatch(ev *Event) {
	if ev.Type == EventKeyDown {
		for _, fn := range d.keyListeners {
			fn(ev)
			if ev.stopped {
				return
			}
		}
	}

	if ev.Target != nil {
		for n := ev.Target; n != nil && !ev.stopped; n = n.parent {
			for _, h := range n.listeners[ev.Type] {
				h(ev, n)
				if ev.stopped {
					return
				}
			}
		}
	}

	for _, del := range d.delegates {
		if del.eventType != ev.Type || ev.Target == nil {
			continue
		}
		if match := ev.Target.Closest(del.selector); match != nil {
			del.handler(ev, match)
			if ev.stopped {
				return
			}
		}
	}
}

// Click dispatches a click event targeting el. Test and simulator
// convenience.
func (d *Document) Click(el *Element) *Event {
	ev := &Event{Type: EventClick, Target: el}
	d.Dispatch(ev)
	return ev
}

// KeyDown dispatches a keydown event targeting the active element (or the
// root when nothing is focused).
func (d *Document) KeyDown(key string, shift bool) *Event {
	target := d.ActiveElement()
	if target == nil {
		target = d.root
	}
	ev := &Event{Type: EventKeyDown, Target: target, Key: key, ShiftKey: shift}
	d.Dispatch(ev)
	return ev
}
