package dom

// Event types used by the controllers.
const (
	EventClick   = "click"
	EventKeyDown = "keydown"
	EventInput   = "input"
	EventChange  = "change"
	EventSubmit  = "submit"
)

// Key names carried on keydown events.
const (
	KeyEscape = "Escape"
	KeyTab    = "Tab"
	KeyEnter  = "Enter"
)

// Event is a dispatched UI event.
type Event struct {
	Type   string
	Target *Element

	// Key fields, set for keydown events.
	Key      string
	ShiftKey bool

	defaultPrevented bool
	stopped          bool
}

// Handler handles an event. For delegated handlers, match is the element
// that matched the delegation selector (target or one of its ancestors).
type Handler func(ev *Event, match *Element)

// PreventDefault suppresses the event's default action. For Tab keydown,
// the dispatcher leaves "what the default would have been" to the caller;
// handlers that move focus themselves call this.
func (ev *Event) PreventDefault() { ev.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (ev *Event) DefaultPrevented() bool { return ev.defaultPrevented }

// StopPropagation halts bubbling and any later delegate matches.
func (ev *Event) StopPropagation() { ev.stopped = true }
