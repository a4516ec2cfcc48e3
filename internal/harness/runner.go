package harness

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/nate-a11y/AED-Empire/internal/dom"
	"github.com/nate-a11y/AED-Empire/internal/loop"
	"github.com/nate-a11y/AED-Empire/internal/settings"
	"github.com/nate-a11y/AED-Empire/internal/storefront"
	"github.com/nate-a11y/AED-Empire/internal/testutil"
)

// Result is the outcome of a scenario run: the observable-state trace plus
// the final drawer markup.
type Result struct {
	Trace      []string
	DrawerHTML string
}

// Text renders the result in the golden comparison format.
func (r *Result) Text() string {
	var b strings.Builder
	for _, line := range r.Trace {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("final cart drawer:\n")
	b.WriteString(r.DrawerHTML)
	return b.String()
}

// deliverTimeout bounds the wait for a released response to reach the loop.
const deliverTimeout = 2 * time.Second

var surfaceNames = []string{
	storefront.SurfaceMenu,
	storefront.SurfaceSearch,
	storefront.SurfaceCartDrawer,
	storefront.SurfaceQuickView,
	storefront.SurfaceQuoteModal,
	storefront.SurfaceNewsletter,
	storefront.SurfaceLightbox,
}

// Run executes a scenario against a fresh page fixture and fake backend.
//
// The runner goroutine doubles as the loop goroutine: it drains the loop
// synchronously after every step, so handlers and completion callbacks all
// run here and the trace is deterministic.
func Run(s *Scenario) (*Result, error) {
	doc := dom.NewDocument()
	BuildPage(doc)

	fake := NewFakeCart(s.Backend)

	cfg := settings.Default()
	cfg.NewsletterDelaySeconds = 0
	if s.CartType != "" {
		cfg.CartType = s.CartType
	}

	lp := loop.New()
	sched := testutil.NewManualScheduler(lp)
	rt := storefront.New(doc, cfg, nil,
		storefront.WithLoop(lp),
		storefront.WithScheduler(sched),
		storefront.WithCartClient(fake),
	)

	run := &runner{scenario: s, rt: rt, doc: doc, fake: fake, sched: sched, prev: map[string]string{}}

	rt.Start()
	rt.Loop.Drain()
	run.sample("start")

	for i, step := range s.Steps {
		if err := run.execute(i+1, step); err != nil {
			return nil, err
		}
	}

	drawer := doc.Query("[data-surface-root=cart-drawer]")
	res := &Result{Trace: run.trace}
	if drawer != nil {
		res.DrawerHTML = drawer.HTML()
	}
	return res, nil
}

type runner struct {
	scenario *Scenario
	rt       *storefront.Runtime
	doc      *dom.Document
	fake     *FakeCart
	sched    *testutil.ManualScheduler
	trace    []string
	prev     map[string]string
}

func (r *runner) execute(n int, step Step) error {
	switch {
	case step.OpenSurface != "":
		r.step(n, "open_surface "+step.OpenSurface)
		r.rt.OpenSurface(step.OpenSurface)

	case step.CloseSurface != "":
		r.step(n, "close_surface "+step.CloseSurface)
		r.rt.CloseSurface(step.CloseSurface)

	case step.Click != "":
		r.step(n, "click "+step.Click)
		el := r.doc.Query(step.Click)
		if el == nil {
			return fmt.Errorf("step %d: no element matches %q", n, step.Click)
		}
		r.doc.Click(el)

	case step.Key != "":
		r.step(n, "key "+step.Key)
		key, shift := parseKey(step.Key)
		r.doc.KeyDown(key, shift)

	case step.AddToCart != nil:
		r.step(n, "add_to_cart id="+step.AddToCart["id"])
		form := url.Values{}
		for k, v := range step.AddToCart {
			form.Set(k, v)
		}
		r.rt.AddToCart(form)

	case step.ChangeQuantity != nil:
		r.step(n, fmt.Sprintf("change_quantity %s -> %d", step.ChangeQuantity.LineKey, step.ChangeQuantity.Quantity))
		r.rt.ChangeCartQuantity(step.ChangeQuantity.LineKey, step.ChangeQuantity.Quantity)

	case step.Deliver > 0:
		r.step(n, fmt.Sprintf("deliver %d", step.Deliver))
		for i := 0; i < step.Deliver; i++ {
			if err := r.deliver(1, func() error { return r.fake.DeliverOldest() }); err != nil {
				return fmt.Errorf("step %d: %w", n, err)
			}
		}

	case step.DeliverAt > 0:
		r.step(n, fmt.Sprintf("deliver_at %d", step.DeliverAt))
		if err := r.deliver(step.DeliverAt, func() error { return r.fake.DeliverAt(step.DeliverAt) }); err != nil {
			return fmt.Errorf("step %d: %w", n, err)
		}

	case step.FailNext != nil:
		r.step(n, "fail_next "+step.FailNext.Op)
		r.fake.FailNext(step.FailNext)

	case step.AdvanceMS > 0:
		r.step(n, fmt.Sprintf("advance %dms", step.AdvanceMS))
		r.sched.Advance(time.Duration(step.AdvanceMS) * time.Millisecond)

	default:
		return fmt.Errorf("step %d: empty step", n)
	}

	r.rt.Loop.Drain()
	r.sample(fmt.Sprintf("step %d", n))
	return nil
}

// deliver releases one held response and waits for its completion callback
// to reach the loop before draining. The release waits for at least `need`
// requests to be held first: the client goroutines spawned by earlier steps
// register with the fake asynchronously.
func (r *runner) deliver(need int, release func() error) error {
	deadline := time.Now().Add(deliverTimeout)
	for r.fake.HeldCount() < need {
		if time.Now().After(deadline) {
			return fmt.Errorf("waiting for %d held requests, have %d", need, r.fake.HeldCount())
		}
		time.Sleep(time.Millisecond)
	}

	if err := release(); err != nil {
		return err
	}

	for r.rt.Loop.Len() == 0 {
		if time.Now().After(deadline) {
			return fmt.Errorf("delivered response never reached the loop")
		}
		time.Sleep(time.Millisecond)
	}
	r.rt.Loop.Drain()
	return nil
}

func (r *runner) step(n int, desc string) {
	r.trace = append(r.trace, fmt.Sprintf("step %d: %s", n, desc))
}

// sample appends observable state that changed since the previous sample.
func (r *runner) sample(label string) {
	var open []string
	for _, name := range surfaceNames {
		if r.rt.Overlays.IsOpen(name) {
			open = append(open, name)
		}
	}
	sort.Strings(open)
	surfaces := "-"
	if len(open) > 0 {
		surfaces = strings.Join(open, ", ")
	}
	r.record("surfaces", surfaces)

	snap := r.rt.Cart.Snapshot()
	r.record("cart", fmt.Sprintf("count=%d total=%d", snap.ItemCount, snap.TotalPrice))

	region := r.rt.Announcer.Region()
	announceText := "-"
	if region.Text() != "" {
		announceText = fmt.Sprintf("[%s] %s", region.AttrOr("aria-live", ""), region.Text())
	}
	r.record("announce", announceText)

	focusDesc := "-"
	if active := r.doc.ActiveElement(); active != nil {
		focusDesc = describeElement(active)
	}
	r.record("focus", focusDesc)
}

func (r *runner) record(category, value string) {
	if r.prev[category] == value {
		return
	}
	r.prev[category] = value
	r.trace = append(r.trace, fmt.Sprintf("  %s: %s", category, value))
}

func describeElement(el *dom.Element) string {
	if id, ok := el.Attr("id"); ok {
		return el.Tag() + "#" + id
	}
	return el.Tag()
}

func parseKey(s string) (key string, shift bool) {
	if rest, ok := strings.CutPrefix(s, "Shift+"); ok {
		return rest, true
	}
	return s, false
}
