package harness

import "github.com/nate-a11y/AED-Empire/internal/dom"

// BuildPage constructs the standard storefront fixture markup: header with
// cart badge, product form, and all seven surface containers. Scenarios and
// controller tests share this page shape.
func BuildPage(doc *dom.Document) {
	body := doc.Root()

	header := doc.CreateElement("header")
	body.Append(header)

	cartButton := doc.CreateElement("button")
	cartButton.SetAttr("id", "CartToggle")
	cartButton.SetAttr("data-open-surface", "cart-drawer")
	cartButton.SetText("Cart")
	header.Append(cartButton)

	badge := doc.CreateElement("span")
	badge.SetAttr("data-cart-count", "")
	badge.SetAttr("hidden", "")
	header.Append(badge)

	main := doc.CreateElement("main")
	body.Append(main)

	form := doc.CreateElement("form")
	form.SetAttr("data-product-form", "")
	main.Append(form)

	idInput := doc.CreateElement("input")
	idInput.SetAttr("type", "hidden")
	idInput.SetAttr("name", "id")
	form.Append(idInput)

	qtyInput := doc.CreateElement("input")
	qtyInput.SetAttr("type", "number")
	qtyInput.SetAttr("name", "quantity")
	qtyInput.SetAttr("value", "1")
	form.Append(qtyInput)

	submit := doc.CreateElement("button")
	submit.SetAttr("id", "AddToCart")
	submit.SetAttr("data-add-submit", "")
	submit.SetText("Add to cart")
	form.Append(submit)

	body.Append(buildDrawer(doc))
	body.Append(buildSearch(doc))
	body.Append(buildSimpleSurface(doc, "menu", "MenuClose"))
	body.Append(buildQuickView(doc))
	body.Append(buildSimpleSurface(doc, "quote-modal", "QuoteClose"))
	body.Append(buildNewsletter(doc))
	body.Append(buildLightbox(doc))
}

func buildDrawer(doc *dom.Document) *dom.Element {
	drawer := doc.CreateElement("aside")
	drawer.SetAttr("data-surface-root", "cart-drawer")
	drawer.SetAttr("id", "CartDrawer")

	backdrop := doc.CreateElement("div")
	backdrop.SetAttr("data-overlay-backdrop", "")
	drawer.Append(backdrop)

	closeBtn := doc.CreateElement("button")
	closeBtn.SetAttr("id", "CartClose")
	closeBtn.SetAttr("data-close-surface", "cart-drawer")
	closeBtn.SetText("Close")
	drawer.Append(closeBtn)

	items := doc.CreateElement("div")
	items.SetAttr("data-cart-items", "")
	drawer.Append(items)

	subtotal := doc.CreateElement("span")
	subtotal.SetAttr("data-cart-subtotal", "")
	drawer.Append(subtotal)

	return drawer
}

func buildSearch(doc *dom.Document) *dom.Element {
	panel := doc.CreateElement("div")
	panel.SetAttr("data-surface-root", "search")
	panel.SetAttr("id", "SearchPanel")

	input := doc.CreateElement("input")
	input.SetAttr("id", "SearchInput")
	input.SetAttr("type", "search")
	input.SetAttr("data-search-input", "")
	panel.Append(input)

	results := doc.CreateElement("div")
	results.SetAttr("data-search-results", "")
	panel.Append(results)

	closeBtn := doc.CreateElement("button")
	closeBtn.SetAttr("id", "SearchClose")
	closeBtn.SetAttr("data-close-surface", "search")
	closeBtn.SetText("Close")
	panel.Append(closeBtn)

	return panel
}

func buildSimpleSurface(doc *dom.Document, name, closeID string) *dom.Element {
	root := doc.CreateElement("div")
	root.SetAttr("data-surface-root", name)

	closeBtn := doc.CreateElement("button")
	closeBtn.SetAttr("id", closeID)
	closeBtn.SetAttr("data-close-surface", name)
	closeBtn.SetText("Close")
	root.Append(closeBtn)

	return root
}

func buildQuickView(doc *dom.Document) *dom.Element {
	root := doc.CreateElement("div")
	root.SetAttr("data-surface-root", "quick-view")

	content := doc.CreateElement("div")
	content.SetAttr("data-quick-view-content", "")
	root.Append(content)

	closeBtn := doc.CreateElement("button")
	closeBtn.SetAttr("id", "QuickViewClose")
	closeBtn.SetAttr("data-close-surface", "quick-view")
	closeBtn.SetText("Close")
	root.Append(closeBtn)

	return root
}

func buildNewsletter(doc *dom.Document) *dom.Element {
	root := doc.CreateElement("div")
	root.SetAttr("data-surface-root", "newsletter-popup")

	dismiss := doc.CreateElement("button")
	dismiss.SetAttr("id", "NewsletterDismiss")
	dismiss.SetAttr("data-newsletter-dismiss", "")
	dismiss.SetText("No thanks")
	root.Append(dismiss)

	return root
}

func buildLightbox(doc *dom.Document) *dom.Element {
	root := doc.CreateElement("div")
	root.SetAttr("data-surface-root", "lightbox")

	img := doc.CreateElement("img")
	img.SetAttr("data-lightbox-image", "")
	root.Append(img)

	counter := doc.CreateElement("span")
	counter.SetAttr("data-lightbox-counter", "")
	root.Append(counter)

	prev := doc.CreateElement("button")
	prev.SetAttr("id", "LightboxPrev")
	prev.SetAttr("data-lightbox-prev", "")
	prev.SetText("Previous")
	root.Append(prev)

	next := doc.CreateElement("button")
	next.SetAttr("id", "LightboxNext")
	next.SetAttr("data-lightbox-next", "")
	next.SetText("Next")
	root.Append(next)

	for _, src := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		item := doc.CreateElement("div")
		item.SetAttr("data-lightbox-item", "")
		item.SetAttr("data-src", src)
		root.Append(item)
	}

	return root
}
