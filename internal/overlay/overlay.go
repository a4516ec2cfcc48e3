// Package overlay implements the shared surface lifecycle: one open/close
// skeleton reused by every drawer, modal, and popup.
package overlay

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nate-a11y/AED-Empire/internal/announce"
	"github.com/nate-a11y/AED-Empire/internal/dom"
	"github.com/nate-a11y/AED-Empire/internal/focus"
)

// scrollLockClass suspends page scroll while any surface is open.
const scrollLockClass = "scroll-locked"

// Surface is one overlay: a container plus optional lifecycle hooks.
// Specializations (drawer refresh, quick-view fetch, search debounce) hang
// off the hooks; the open/close/focus/scroll/announce skeleton is shared.
type Surface struct {
	Name string
	Root *dom.Element

	// OnOpen runs after the surface is visible and the focus trap is held.
	OnOpen func()
	// OnClose runs after the surface is hidden and the trap released.
	OnClose func()

	open bool
}

// Controller owns the surface registry and the shared lifecycle.
type Controller struct {
	doc       *dom.Document
	focus     *focus.Manager
	announcer *announce.Announcer

	surfaces map[string]*Surface

	// trapHolder names the surface currently holding the focus trap.
	// Closing any other surface must not release a trap it does not hold.
	trapHolder string

	scrollLocks int
}

// NewController creates the controller and installs its escape-key and
// backdrop-click routing. Registered once; individual surfaces never bind
// their own close handlers.
func NewController(doc *dom.Document, fm *focus.Manager, a *announce.Announcer) *Controller {
	c := &Controller{
		doc:       doc,
		focus:     fm,
		announcer: a,
		surfaces:  make(map[string]*Surface),
	}

	doc.OnKeyDown(func(ev *dom.Event) {
		if ev.Key != dom.KeyEscape {
			return
		}
		if c.trapHolder != "" {
			c.Close(c.trapHolder)
		}
	})

	doc.Delegate(dom.EventClick, "[data-overlay-backdrop]", func(ev *dom.Event, match *dom.Element) {
		// Only direct backdrop clicks dismiss; clicks on surface content
		// bubble through the backdrop's descendants and must not.
		if ev.Target != match {
			return
		}
		root := match.Closest("[data-surface]")
		if root == nil {
			return
		}
		name, _ := root.Attr("data-surface")
		c.Close(name)
	})

	return c
}

// Register adds a surface to the registry. The surface starts closed:
// hidden and aria-hidden regardless of the markup's initial state.
func (c *Controller) Register(s *Surface) error {
	if s.Name == "" || s.Root == nil {
		return fmt.Errorf("surface requires a name and a root element")
	}
	if _, exists := c.surfaces[s.Name]; exists {
		return fmt.Errorf("surface %q already registered", s.Name)
	}

	s.Root.SetAttr("data-surface", s.Name)
	s.Root.SetAttr("hidden", "")
	s.Root.SetAttr("aria-hidden", "true")
	c.surfaces[s.Name] = s
	return nil
}

// Surface returns a registered surface by name, or nil.
func (c *Controller) Surface(name string) *Surface {
	return c.surfaces[name]
}

// IsOpen reports whether the named surface is open.
func (c *Controller) IsOpen(name string) bool {
	s := c.surfaces[name]
	return s != nil && s.open
}

// Open unhides the surface, clears its accessibility-hidden state, suspends
// page scroll, and takes the focus trap - in that order. Opening a second
// surface without closing the first is a caller bug; the trap moves
// (last write wins) and the focus manager logs the violation.
func (c *Controller) Open(name string) error {
	s := c.surfaces[name]
	if s == nil {
		return fmt.Errorf("unknown surface %q", name)
	}
	if s.open {
		return nil
	}

	s.Root.RemoveAttr("hidden")
	s.Root.SetAttr("aria-hidden", "false")
	c.lockScroll()
	c.focus.Trap(s.Root)
	c.trapHolder = name
	s.open = true

	slog.Info("surface opened", "surface", name)
	c.announcer.Announce(humanize(name)+" opened", announce.Polite)

	if s.OnOpen != nil {
		s.OnOpen()
	}
	return nil
}

// Close reverses Open's four effects in the opposite order: release the
// trap, resume scroll, restore aria-hidden, hide. Runs on every close path
// (close control, escape, backdrop), so trap acquisition is always paired
// with release.
func (c *Controller) Close(name string) error {
	s := c.surfaces[name]
	if s == nil {
		return fmt.Errorf("unknown surface %q", name)
	}
	if !s.open {
		return nil
	}

	if c.trapHolder == name {
		c.focus.Release()
		c.trapHolder = ""
	}
	c.unlockScroll()
	s.Root.SetAttr("aria-hidden", "true")
	s.Root.SetAttr("hidden", "")
	s.open = false

	slog.Info("surface closed", "surface", name)
	c.announcer.Announce(humanize(name)+" closed", announce.Polite)

	if s.OnClose != nil {
		s.OnClose()
	}
	return nil
}

func (c *Controller) lockScroll() {
	c.scrollLocks++
	c.doc.Root().AddClass(scrollLockClass)
}

func (c *Controller) unlockScroll() {
	if c.scrollLocks > 0 {
		c.scrollLocks--
	}
	if c.scrollLocks == 0 {
		c.doc.Root().RemoveClass(scrollLockClass)
	}
}

// humanize turns a surface name like "cart-drawer" into "Cart drawer".
func humanize(name string) string {
	text := strings.ReplaceAll(name, "-", " ")
	if text == "" {
		return text
	}
	return strings.ToUpper(text[:1]) + text[1:]
}
