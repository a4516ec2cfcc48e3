package cart

import (
	"log/slog"
	"strconv"

	"github.com/nate-a11y/AED-Empire/internal/dom"
)

// render rebuilds the line-item list, badges, and subtotal from the
// confirmed snapshot. Always a full rebuild: the UI can never drift from
// server truth even when the server changed fields the user didn't touch
// (price recalculation, line removal at zero quantity).
//
// Missing containers are content defects (the theme's markup contract is
// broken); each renders as a warn-and-skip, never a failure.
func (c *Controller) render() {
	c.renderItems()
	c.renderBadges()
	c.renderSubtotal()
}

func (c *Controller) renderItems() {
	container := c.doc.Query("[data-cart-items]")
	if container == nil {
		slog.Warn("cart items container missing, skipping render")
		return
	}

	container.RemoveChildren()

	if len(c.snapshot.Items) == 0 {
		empty := c.doc.CreateElement("p")
		empty.AddClass("cart-empty")
		empty.SetText("Your cart is empty")
		container.Append(empty)
		return
	}

	for _, item := range c.snapshot.Items {
		container.Append(c.renderLine(item.Key, item.Quantity, item.Title, item.LinePrice))
	}
}

func (c *Controller) renderLine(key string, quantity int, title string, linePrice int64) *dom.Element {
	row := c.doc.CreateElement("div")
	row.AddClass("cart-item")
	row.SetAttr("data-line-key", key)

	name := c.doc.CreateElement("span")
	name.AddClass("cart-item-title")
	name.SetText(title)
	row.Append(name)

	qty := c.doc.CreateElement("input")
	qty.SetAttr("type", "number")
	qty.SetAttr("min", "0")
	qty.SetAttr("data-qty-input", "")
	qty.SetAttr("value", strconv.Itoa(quantity))
	qty.SetAttr("aria-label", "Quantity for "+title)
	row.Append(qty)

	remove := c.doc.CreateElement("button")
	remove.SetAttr("data-cart-remove", "")
	remove.SetAttr("aria-label", "Remove "+title)
	remove.SetText("Remove")
	row.Append(remove)

	price := c.doc.CreateElement("span")
	price.AddClass("cart-item-price")
	price.SetText(c.prices.Format(linePrice))
	row.Append(price)

	return row
}

func (c *Controller) renderBadges() {
	badges := c.doc.QueryAll("[data-cart-count]")
	if len(badges) == 0 {
		slog.Warn("cart count badge missing, skipping render")
		return
	}
	for _, badge := range badges {
		badge.SetText(strconv.Itoa(c.snapshot.ItemCount))
		if c.snapshot.ItemCount == 0 {
			badge.SetAttr("hidden", "")
		} else {
			badge.RemoveAttr("hidden")
		}
	}
}

func (c *Controller) renderSubtotal() {
	subtotal := c.doc.Query("[data-cart-subtotal]")
	if subtotal == nil {
		return
	}
	subtotal.SetText(c.prices.Format(c.snapshot.TotalPrice))
}

// pulseBadges retriggers the badge animation. Removing and re-adding the
// class only restarts a CSS animation if a style reflow happens in between;
// that browser detail is reproduced here, not a business rule.
func (c *Controller) pulseBadges() {
	for _, badge := range c.doc.QueryAll("[data-cart-count]") {
		badge.RemoveClass(pulseClass)
		badge.ForceReflow()
		badge.AddClass(pulseClass)
	}
}

// markPending reflects the requested quantity in the control immediately
// and flags the row as pending. Superseding a prior request for the same
// key simply overwrites the same control state.
func (c *Controller) markPending(lineKey string, quantity int) {
	row := c.doc.Query("[data-line-key=" + lineKey + "]")
	if row == nil {
		return
	}
	row.AddClass("is-pending")
	if input := row.Query("[data-qty-input]"); input != nil {
		input.SetAttr("value", strconv.Itoa(quantity))
	}
}
