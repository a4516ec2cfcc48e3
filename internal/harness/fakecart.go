package harness

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/nate-a11y/AED-Empire/internal/cartclient"
)

// FakeCart is an in-process cart resource whose responses are held until
// the scenario releases them. Holding responses is what lets a scenario
// express "the earlier request's response arrives later" directly.
//
// Mutations apply to the fake's server state at delivery time, so delivery
// order is server-visible order, exactly like reordered completions on a
// real network.
type FakeCart struct {
	mu       sync.Mutex
	products map[string]Product
	lines    []cartclient.LineItem
	nextLine int
	held     []*heldCall
	failures map[string][]*FailStep
}

type heldCall struct {
	op       string // "fetch", "add", "change"
	lineKey  string
	quantity int
	form     url.Values
	respond  chan callResult
}

type callResult struct {
	snap *cartclient.CartSnapshot
	err  error
}

// NewFakeCart seeds a fake backend from scenario config.
func NewFakeCart(cfg BackendConfig) *FakeCart {
	f := &FakeCart{
		products: make(map[string]Product),
		failures: make(map[string][]*FailStep),
	}
	for _, p := range cfg.Products {
		f.products[p.ID] = p
	}
	for _, l := range cfg.Lines {
		f.lines = append(f.lines, cartclient.LineItem{
			Key:       l.Key,
			Quantity:  l.Quantity,
			Title:     l.Title,
			Price:     l.Price,
			LinePrice: l.Price * int64(l.Quantity),
		})
	}
	return f
}

// FetchCart implements cart.RemoteCart.
func (f *FakeCart) FetchCart(ctx context.Context) (*cartclient.CartSnapshot, error) {
	return f.hold(&heldCall{op: "fetch", respond: make(chan callResult, 1)})
}

// AddItem implements cart.RemoteCart.
func (f *FakeCart) AddItem(ctx context.Context, form url.Values) (*cartclient.CartSnapshot, error) {
	return f.hold(&heldCall{op: "add", form: form, respond: make(chan callResult, 1)})
}

// ChangeQuantity implements cart.RemoteCart.
func (f *FakeCart) ChangeQuantity(ctx context.Context, lineKey string, quantity int) (*cartclient.CartSnapshot, error) {
	return f.hold(&heldCall{op: "change", lineKey: lineKey, quantity: quantity, respond: make(chan callResult, 1)})
}

func (f *FakeCart) hold(c *heldCall) (*cartclient.CartSnapshot, error) {
	f.mu.Lock()
	f.held = append(f.held, c)
	f.mu.Unlock()

	r := <-c.respond
	return r.snap, r.err
}

// HeldCount returns the number of requests awaiting delivery.
func (f *FakeCart) HeldCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.held)
}

// FailNext programs the next delivered call of fail.Op to fail.
func (f *FakeCart) FailNext(fail *FailStep) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[fail.Op] = append(f.failures[fail.Op], fail)
}

// DeliverOldest releases the oldest held request.
func (f *FakeCart) DeliverOldest() error {
	return f.DeliverAt(1)
}

// DeliverAt releases the nth-oldest held request (1-based).
func (f *FakeCart) DeliverAt(n int) error {
	f.mu.Lock()
	if n < 1 || n > len(f.held) {
		f.mu.Unlock()
		return fmt.Errorf("deliver_at %d: only %d requests held", n, len(f.held))
	}
	c := f.held[n-1]
	f.held = append(f.held[:n-1], f.held[n:]...)
	result := f.resolve(c)
	f.mu.Unlock()

	c.respond <- result
	return nil
}

// resolve computes a call's response against current server state.
// Caller holds f.mu.
func (f *FakeCart) resolve(c *heldCall) callResult {
	if fails := f.failures[c.op]; len(fails) > 0 {
		fail := fails[0]
		f.failures[c.op] = fails[1:]

		if c.op == "add" && fail.Description != "" {
			status := fail.Status
			if status == 0 {
				status = 422
			}
			return callResult{err: &cartclient.ValidationError{Description: fail.Description, Status: status}}
		}
		status := fail.Status
		if status == 0 {
			status = 500
		}
		return callResult{err: &cartclient.NetworkError{Op: c.op, Status: status}}
	}

	switch c.op {
	case "add":
		id := c.form.Get("id")
		p, ok := f.products[id]
		if !ok {
			return callResult{err: &cartclient.ValidationError{Description: "Product not found", Status: 404}}
		}
		qty, err := strconv.Atoi(c.form.Get("quantity"))
		if err != nil || qty < 1 {
			qty = 1
		}
		f.nextLine++
		f.lines = append(f.lines, cartclient.LineItem{
			Key:       fmt.Sprintf("line-%d", f.nextLine),
			Quantity:  qty,
			Title:     p.Title,
			Price:     p.Price,
			LinePrice: p.Price * int64(qty),
		})

	case "change":
		kept := f.lines[:0]
		for _, l := range f.lines {
			if l.Key != c.lineKey {
				kept = append(kept, l)
				continue
			}
			if c.quantity == 0 {
				continue
			}
			l.Quantity = c.quantity
			l.LinePrice = l.Price * int64(c.quantity)
			kept = append(kept, l)
		}
		f.lines = kept
	}

	return callResult{snap: f.snapshotLocked()}
}

// snapshotLocked builds the wire representation of current server state.
// Caller holds f.mu.
func (f *FakeCart) snapshotLocked() *cartclient.CartSnapshot {
	snap := &cartclient.CartSnapshot{Currency: "USD"}
	snap.Items = make([]cartclient.LineItem, len(f.lines))
	copy(snap.Items, f.lines)
	for _, l := range f.lines {
		snap.ItemCount += l.Quantity
		snap.TotalPrice += l.LinePrice
	}
	return snap
}
