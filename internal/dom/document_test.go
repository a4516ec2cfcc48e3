package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_DelegateMatchesTarget(t *testing.T) {
	doc := NewDocument()
	button := doc.CreateElement("button")
	button.SetAttr("data-cart-remove", "")
	doc.Root().Append(button)

	var got *Element
	doc.Delegate(EventClick, "[data-cart-remove]", func(ev *Event, match *Element) {
		got = match
	})

	doc.Click(button)
	assert.Same(t, button, got)
}

func TestDocument_DelegateMatchesAncestor(t *testing.T) {
	doc := NewDocument()
	form := doc.CreateElement("form")
	form.SetAttr("data-product-form", "")
	inner := doc.CreateElement("span")
	form.Append(inner)
	doc.Root().Append(form)

	var got *Element
	doc.Delegate(EventClick, "[data-product-form]", func(ev *Event, match *Element) {
		got = match
	})

	doc.Click(inner)
	assert.Same(t, form, got, "match should be the matching ancestor, not the target")
}

func TestDocument_DelegateSurvivesReRender(t *testing.T) {
	doc := NewDocument()
	container := doc.CreateElement("div")
	doc.Root().Append(container)

	var clicks int
	doc.Delegate(EventClick, "[data-cart-remove]", func(ev *Event, match *Element) {
		clicks++
	})

	// Simulate a full re-render: old subtree replaced by a new one.
	old := doc.CreateElement("button")
	old.SetAttr("data-cart-remove", "")
	container.Append(old)
	doc.Click(old)

	container.RemoveChildren()
	fresh := doc.CreateElement("button")
	fresh.SetAttr("data-cart-remove", "")
	container.Append(fresh)
	doc.Click(fresh)

	assert.Equal(t, 2, clicks)
}

func TestDocument_DelegatesFireInRegistrationOrder(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("button")
	el.SetAttr("data-x", "")
	doc.Root().Append(el)

	var order []string
	doc.Delegate(EventClick, "[data-x]", func(ev *Event, match *Element) { order = append(order, "first") })
	doc.Delegate(EventClick, "[data-x]", func(ev *Event, match *Element) { order = append(order, "second") })

	doc.Click(el)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestDocument_StopPropagationHaltsDelegates(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("button")
	el.SetAttr("data-x", "")
	doc.Root().Append(el)

	doc.Delegate(EventClick, "[data-x]", func(ev *Event, match *Element) { ev.StopPropagation() })
	doc.Delegate(EventClick, "[data-x]", func(ev *Event, match *Element) { t.Error("later delegate ran after StopPropagation") })

	doc.Click(el)
}

func TestDocument_DirectListenersBubble(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	child := doc.CreateElement("button")
	parent.Append(child)
	doc.Root().Append(parent)

	var order []string
	child.On(EventClick, func(ev *Event, match *Element) { order = append(order, "child") })
	parent.On(EventClick, func(ev *Event, match *Element) { order = append(order, "parent") })

	doc.Click(child)
	assert.Equal(t, []string{"child", "parent"}, order)
}

func TestDocument_KeyListenersRunFirst(t *testing.T) {
	doc := NewDocument()
	button := doc.CreateElement("button")
	doc.Root().Append(button)
	button.Focus()

	var order []string
	doc.OnKeyDown(func(ev *Event) { order = append(order, "global") })
	doc.Delegate(EventKeyDown, "button", func(ev *Event, match *Element) { order = append(order, "delegate") })

	doc.KeyDown(KeyEnter, false)
	assert.Equal(t, []string{"global", "delegate"}, order)
}

func TestDocument_KeyDownTargetsActiveElement(t *testing.T) {
	doc := NewDocument()
	button := doc.CreateElement("button")
	doc.Root().Append(button)
	button.Focus()

	ev := doc.KeyDown(KeyEscape, false)
	assert.Same(t, button, ev.Target)
	assert.Equal(t, KeyEscape, ev.Key)
}

func TestDocument_KeyDownFallsBackToRoot(t *testing.T) {
	doc := NewDocument()
	ev := doc.KeyDown(KeyEscape, false)
	assert.Same(t, doc.Root(), ev.Target)
}

func TestEvent_PreventDefault(t *testing.T) {
	ev := &Event{Type: EventSubmit}
	assert.False(t, ev.DefaultPrevented())
	ev.PreventDefault()
	assert.True(t, ev.DefaultPrevented())
}
