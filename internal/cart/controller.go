package cart

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/nate-a11y/AED-Empire/internal/announce"
	"github.com/nate-a11y/AED-Empire/internal/cartclient"
	"github.com/nate-a11y/AED-Empire/internal/dom"
	"github.com/nate-a11y/AED-Empire/internal/loop"
	"github.com/nate-a11y/AED-Empire/internal/money"
)

// RemoteCart is the slice of the cart client the controller consumes.
type RemoteCart interface {
	FetchCart(ctx context.Context) (*cartclient.CartSnapshot, error)
	AddItem(ctx context.Context, form url.Values) (*cartclient.CartSnapshot, error)
	ChangeQuantity(ctx context.Context, lineKey string, quantity int) (*cartclient.CartSnapshot, error)
}

// Add-to-cart button label sequence.
const (
	LabelAdding = "Adding…"
	LabelAdded  = "Added!"
	LabelError  = "Error"
)

// LabelRestoreDelay is how long a transient add-to-cart label is displayed
// before the control returns to its original text and re-enables. The
// restore always happens, success or failure.
const LabelRestoreDelay = 2000 * time.Millisecond

const pulseClass = "cart-count-pulse"

// Controller owns the visible cart state.
type Controller struct {
	loop      *loop.Loop
	sched     loop.Scheduler
	client    RemoteCart
	doc       *dom.Document
	announcer *announce.Announcer
	prices    *money.Formatter

	// snapshot is the last server-confirmed cart. Optimistic state lives
	// only in the controls; this is never partially mutated.
	snapshot *cartclient.CartSnapshot

	// issued holds the highest issued seq per line key. A response is
	// applied only while its seq still equals issued[key]; anything lower
	// was superseded and is discarded.
	issued  map[string]int64
	pending map[string]*PendingOperation

	subscribers []func(cartclient.CartSnapshot)
	openDrawer  func()
}

// New creates a controller. Call Bind once after the drawer markup exists.
func New(l *loop.Loop, sched loop.Scheduler, client RemoteCart, doc *dom.Document, a *announce.Announcer, prices *money.Formatter) *Controller {
	return &Controller{
		loop:      l,
		sched:     sched,
		client:    client,
		doc:       doc,
		announcer: a,
		prices:    prices,
		snapshot:  &cartclient.CartSnapshot{},
		issued:    make(map[string]int64),
		pending:   make(map[string]*PendingOperation),
	}
}

// SetOpenDrawer installs the hook invoked after a successful add-to-cart.
// Left unset when the store is configured for page-style carts.
func (c *Controller) SetOpenDrawer(fn func()) {
	c.openDrawer = fn
}

// Subscribe registers a callback invoked with every confirmed snapshot.
// Unrelated widgets (shipping progress, header badges elsewhere) observe
// cart state here instead of coupling to the controller.
func (c *Controller) Subscribe(fn func(cartclient.CartSnapshot)) {
	c.subscribers = append(c.subscribers, fn)
}

// Snapshot returns the last server-confirmed cart state.
func (c *Controller) Snapshot() *cartclient.CartSnapshot { return c.snapshot }

// PendingFor returns the in-flight operation for a line key, or nil.
func (c *Controller) PendingFor(lineKey string) *PendingOperation {
	return c.pending[lineKey]
}

// Bind registers the controller's delegated handlers. Delegation keys on
// stable data attributes so the handlers survive full drawer re-renders.
func (c *Controller) Bind() {
	c.doc.Delegate(dom.EventChange, "[data-qty-input]", func(ev *dom.Event, match *dom.Element) {
		row := match.Closest("[data-line-key]")
		if row == nil {
			slog.Warn("quantity input outside a line item row")
			return
		}
		key, _ := row.Attr("data-line-key")
		qty, err := strconv.Atoi(match.AttrOr("value", ""))
		if err != nil || qty < 0 {
			qty = 0
		}
		c.ChangeQuantity(key, qty)
	})

	c.doc.Delegate(dom.EventClick, "[data-cart-remove]", func(ev *dom.Event, match *dom.Element) {
		row := match.Closest("[data-line-key]")
		if row == nil {
			slog.Warn("remove control outside a line item row")
			return
		}
		key, _ := row.Attr("data-line-key")
		c.ChangeQuantity(key, 0)
	})

	c.doc.Delegate(dom.EventSubmit, "form[data-product-form]", func(ev *dom.Event, match *dom.Element) {
		ev.PreventDefault()
		c.AddToCart(FormValues(match), match.Query("[data-add-submit]"))
	})
}

// Refresh fetches the current cart and re-renders on success. Used on
// drawer open and after add-to-cart.
func (c *Controller) Refresh() {
	go func() {
		snap, err := c.client.FetchCart(context.Background())
		c.loop.Post(func() {
			if err != nil {
				slog.Error("cart refresh failed", "error", err)
				return
			}
			c.applySnapshot(snap, false)
		})
	}()
}

// ChangeQuantity optimistically sets a line's quantity and issues the
// change. Quantity 0 removes the line. A newer intent for the same key
// supersedes this one; the superseded response is discarded when it lands.
func (c *Controller) ChangeQuantity(lineKey string, quantity int) {
	if quantity < 0 {
		quantity = 0
	}

	seq := c.loop.Clock().Next()
	c.issued[lineKey] = seq
	op := newPendingOperation(lineKey, quantity, seq)
	c.pending[lineKey] = op

	c.markPending(lineKey, quantity)

	slog.Debug("quantity change issued",
		"op", op.ID, "line_key", lineKey, "quantity", quantity, "seq", seq)

	go func() {
		snap, err := c.client.ChangeQuantity(context.Background(), lineKey, quantity)
		c.loop.Post(func() {
			c.resolveQuantityChange(op, snap, err)
		})
	}()
}

// resolveQuantityChange applies or discards a change response. Runs on the
// loop. The staleness condition is re-checked here, not at issue time,
// because other handlers may have run during the await.
func (c *Controller) resolveQuantityChange(op *PendingOperation, snap *cartclient.CartSnapshot, err error) {
	if c.issued[op.LineKey] != op.Seq {
		slog.Debug("stale cart response discarded",
			"op", op.ID, "line_key", op.LineKey, "seq", op.Seq, "latest", c.issued[op.LineKey])
		return
	}

	delete(c.pending, op.LineKey)
	delete(c.issued, op.LineKey)

	if err != nil {
		slog.Warn("quantity change failed", "op", op.ID, "line_key", op.LineKey, "error", err)
		// Revert: a full render from the last confirmed snapshot restores
		// the control to its known-good value. The cart stays open.
		c.render()
		c.announcer.Announce("Could not update cart", announce.Assertive)
		return
	}

	c.applySnapshot(snap, true)
}

// AddToCart submits an item selection. submit may be nil when the intent
// does not come from a form control (e.g. the simulator); when present it
// is disabled and walked through the Adding/Added/Error label sequence,
// always restored after LabelRestoreDelay.
func (c *Controller) AddToCart(form url.Values, submit *dom.Element) {
	restore := c.beginSubmitLabel(submit)

	go func() {
		snap, err := c.client.AddItem(context.Background(), form)
		c.loop.Post(func() {
			c.resolveAdd(snap, err, restore)
		})
	}()
}

func (c *Controller) resolveAdd(snap *cartclient.CartSnapshot, err error, setLabel func(string)) {
	if err != nil {
		setLabel(LabelError)

		var ve *cartclient.ValidationError
		if errors.As(err, &ve) {
			c.announcer.Announce(ve.Description, announce.Assertive)
		} else {
			c.announcer.Announce("Could not add to cart", announce.Assertive)
		}
		slog.Warn("add to cart failed", "error", err)
		return
	}

	setLabel(LabelAdded)
	c.applySnapshot(snap, true)
	c.announcer.Announce("Added to cart", announce.Polite)

	// The add response already carries the new cart, but drawer content is
	// refreshed from the server so the rendered markup always derives from
	// the cart resource's canonical read.
	c.Refresh()

	if c.openDrawer != nil {
		c.openDrawer()
	}
}

// beginSubmitLabel disables the control, shows the in-progress label, and
// schedules the unconditional restore. The returned func swaps the
// transient outcome label.
func (c *Controller) beginSubmitLabel(submit *dom.Element) func(string) {
	if submit == nil {
		return func(string) {}
	}

	original := submit.Text()
	submit.SetAttr("disabled", "")
	submit.SetText(LabelAdding)

	c.sched.After(LabelRestoreDelay, func() {
		submit.SetText(original)
		submit.RemoveAttr("disabled")
	})

	return func(label string) { submit.SetText(label) }
}

// applySnapshot replaces the confirmed snapshot, re-renders everything, and
// notifies subscribers. mutated selects the badge pulse, which only fires
// for cart mutations, not plain refreshes.
func (c *Controller) applySnapshot(snap *cartclient.CartSnapshot, mutated bool) {
	c.snapshot = snap
	c.render()
	if mutated {
		c.pulseBadges()
	}
	for _, fn := range c.subscribers {
		fn(*snap)
	}
}

// FormValues serializes a form element's named controls into a payload.
func FormValues(form *dom.Element) url.Values {
	values := url.Values{}
	for _, el := range form.QueryAll("[name]") {
		name, _ := el.Attr("name")
		values.Add(name, el.AttrOr("value", ""))
	}
	return values
}
