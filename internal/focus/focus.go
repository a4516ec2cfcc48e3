// Package focus implements the focus scope manager: a single process-wide
// trap slot constraining keyboard traversal to one container at a time.
package focus

import (
	"log/slog"

	"github.com/nate-a11y/AED-Empire/internal/dom"
)

// Manager owns the document's single focus-trap slot.
//
// Exactly one Manager exists per document; it is constructed once at startup
// and injected into every overlay controller. It registers its global
// keydown interceptor at construction and needs no teardown in a
// page-lifetime process.
//
// Only one container may be trapped at a time. Trapping while already
// trapped replaces the slot (last write wins) and logs a warning, since a
// second surface opening without the first releasing is a programming error
// in the caller.
type Manager struct {
	doc       *dom.Document
	trapped   *dom.Element
	prevFocus *dom.Element
}

// NewManager creates the manager and installs its Tab interceptor.
func NewManager(doc *dom.Document) *Manager {
	m := &Manager{doc: doc}
	doc.OnKeyDown(m.handleKeyDown)
	return m
}

// Trap records the currently focused element, moves focus to the first
// focusable descendant of container, and begins intercepting Tab traversal.
//
// If container has no focusable descendant, focus is left unmoved; that is
// a content defect in the surface markup, logged and tolerated.
func (m *Manager) Trap(container *dom.Element) {
	if m.trapped != nil {
		slog.Warn("focus trap replaced without release",
			"previous", describe(m.trapped),
			"next", describe(container),
		)
	}

	m.trapped = container
	m.prevFocus = m.doc.ActiveElement()

	targets := Focusables(container)
	if len(targets) == 0 {
		slog.Warn("focus trap target has no focusable descendants",
			"container", describe(container),
		)
		return
	}
	targets[0].Focus()
}

// Release clears the trap and restores focus to the element recorded at
// Trap time, provided it is still attached and focusable. A vanished or
// unfocusable previous element is silently dropped.
func (m *Manager) Release() {
	prev := m.prevFocus
	m.trapped = nil
	m.prevFocus = nil

	if prev == nil || !prev.IsAttached() {
		return
	}
	if !IsFocusable(prev) {
		return
	}
	prev.Focus()
}

// Trapped returns the currently trapped container, or nil.
func (m *Manager) Trapped() *dom.Element { return m.trapped }

// handleKeyDown wraps Tab traversal at the edges of the trapped container.
// Tab presses anywhere in the middle of the cycle pass through unmodified.
func (m *Manager) handleKeyDown(ev *dom.Event) {
	if m.trapped == nil || ev.Key != dom.KeyTab {
		return
	}

	targets := Focusables(m.trapped)
	if len(targets) == 0 {
		return
	}

	active := m.doc.ActiveElement()
	first, last := targets[0], targets[len(targets)-1]

	switch {
	case !ev.ShiftKey && active == last:
		first.Focus()
		ev.PreventDefault()
	case ev.ShiftKey && active == first:
		last.Focus()
		ev.PreventDefault()
	}
}

// Focusables returns the ordered focusable descendants of container:
// buttons, links, form controls, and elements with a non-negative tabindex,
// excluding disabled and non-rendered elements.
func Focusables(container *dom.Element) []*dom.Element {
	all := container.QueryAll("*")
	out := make([]*dom.Element, 0, len(all))
	for _, el := range all {
		if IsFocusable(el) {
			out = append(out, el)
		}
	}
	return out
}

// IsFocusable reports whether a single element can receive keyboard focus.
func IsFocusable(el *dom.Element) bool {
	if el.Disabled() || !el.Visible() {
		return false
	}
	switch el.Tag() {
	case "button", "input", "select", "textarea":
		return true
	case "a":
		return el.HasAttr("href")
	}
	if ti, ok := el.Attr("tabindex"); ok {
		return len(ti) > 0 && ti[0] != '-'
	}
	return false
}

func describe(el *dom.Element) string {
	if el == nil {
		return "<nil>"
	}
	if id, ok := el.Attr("id"); ok {
		return el.Tag() + "#" + id
	}
	return el.Tag()
}
