// Package storefront is the composition root: it wires the event loop,
// focus manager, announcer, overlay controller, cart controller, and search
// dispatcher, and exposes the surface API the surrounding UI glue calls.
package storefront

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/nate-a11y/AED-Empire/internal/announce"
	"github.com/nate-a11y/AED-Empire/internal/cart"
	"github.com/nate-a11y/AED-Empire/internal/cartclient"
	"github.com/nate-a11y/AED-Empire/internal/dom"
	"github.com/nate-a11y/AED-Empire/internal/focus"
	"github.com/nate-a11y/AED-Empire/internal/loop"
	"github.com/nate-a11y/AED-Empire/internal/money"
	"github.com/nate-a11y/AED-Empire/internal/overlay"
	"github.com/nate-a11y/AED-Empire/internal/search"
	"github.com/nate-a11y/AED-Empire/internal/settings"
	"github.com/nate-a11y/AED-Empire/internal/storage"
)

// Surface names registered by the runtime.
const (
	SurfaceMenu       = "menu"
	SurfaceSearch     = "search"
	SurfaceCartDrawer = "cart-drawer"
	SurfaceQuickView  = "quick-view"
	SurfaceQuoteModal = "quote-modal"
	SurfaceNewsletter = "newsletter-popup"
	SurfaceLightbox   = "lightbox"
)

// Runtime is the assembled storefront UI core.
type Runtime struct {
	Loop  *loop.Loop
	Doc   *dom.Document
	Sched loop.Scheduler

	Focus     *focus.Manager
	Announcer *announce.Announcer
	Overlays  *overlay.Controller
	Cart      *cart.Controller
	Search    *search.Dispatcher

	config   settings.Settings
	store    *storage.Store
	httpc    *http.Client
	lightbox *lightboxState

	cartRemote cart.RemoteCart
	suggester  search.Suggester
}

// Option configures the runtime.
type Option func(*Runtime)

// WithLoop substitutes the event loop. Tests construct the loop first so a
// manual scheduler can be built around it.
func WithLoop(l *loop.Loop) Option {
	return func(r *Runtime) { r.Loop = l }
}

// WithScheduler substitutes the delayed-task scheduler. Tests install a
// manual one.
func WithScheduler(s loop.Scheduler) Option {
	return func(r *Runtime) { r.Sched = s }
}

// WithCartClient substitutes the remote cart client.
func WithCartClient(c cart.RemoteCart) Option {
	return func(r *Runtime) { r.cartRemote = c }
}

// WithSuggestClient substitutes the search suggest client.
func WithSuggestClient(c search.Suggester) Option {
	return func(r *Runtime) { r.suggester = c }
}

// WithHTTPClient substitutes the HTTP client used for quick-view content
// fetches and the default remote clients.
func WithHTTPClient(hc *http.Client) Option {
	return func(r *Runtime) { r.httpc = hc }
}

// New assembles a runtime over an existing document whose markup carries
// the surface containers. Missing surface markup degrades per-surface; it
// never fails the whole page.
func New(doc *dom.Document, cfg settings.Settings, store *storage.Store, opts ...Option) *Runtime {
	r := &Runtime{
		Doc:    doc,
		config: cfg,
		store:  store,
		httpc:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Loop == nil {
		r.Loop = loop.New()
	}
	if r.Sched == nil {
		r.Sched = loop.NewTimerScheduler(r.Loop)
	}
	if r.cartRemote == nil {
		r.cartRemote = cartclient.New(cfg.BaseURL, cartclient.WithHTTPClient(r.httpc))
	}
	if r.suggester == nil {
		r.suggester = search.NewClient(cfg.BaseURL, r.httpc, "")
	}

	prices := money.NewFormatter(cfg.Locale, cfg.Currency)

	r.Focus = focus.NewManager(doc)
	r.Announcer = announce.New(doc, r.Sched)
	r.Overlays = overlay.NewController(doc, r.Focus, r.Announcer)
	r.Cart = cart.New(r.Loop, r.Sched, r.cartRemote, doc, r.Announcer, prices)
	r.Search = search.NewDispatcher(r.Loop, r.Sched, r.suggester, doc, prices)

	r.Cart.Bind()
	r.Search.Bind()
	r.registerSurfaces()
	r.bindGlue()

	return r
}

// Start performs the page-load work: initial cart fetch (badge state) and
// the newsletter popup timer. Call once, then drive the loop.
func (r *Runtime) Start() {
	r.Loop.Post(func() {
		r.Cart.Refresh()
		r.scheduleNewsletterPopup()
	})
}

// OpenSurface opens a named surface on the loop.
func (r *Runtime) OpenSurface(name string) {
	r.Loop.Post(func() {
		if err := r.Overlays.Open(name); err != nil {
			slog.Warn("open surface", "surface", name, "error", err)
		}
	})
}

// CloseSurface closes a named surface on the loop.
func (r *Runtime) CloseSurface(name string) {
	r.Loop.Post(func() {
		if err := r.Overlays.Close(name); err != nil {
			slog.Warn("close surface", "surface", name, "error", err)
		}
	})
}

// AddToCart submits an add-to-cart payload on the loop.
func (r *Runtime) AddToCart(form url.Values) {
	r.Loop.Post(func() {
		r.Cart.AddToCart(form, nil)
	})
}

// ChangeCartQuantity issues a quantity change on the loop.
func (r *Runtime) ChangeCartQuantity(lineKey string, quantity int) {
	r.Loop.Post(func() {
		r.Cart.ChangeQuantity(lineKey, quantity)
	})
}

// CartUpdates subscribes to confirmed cart snapshots. Widgets unrelated to
// the drawer (shipping progress bars, header badges) consume this channel
// instead of reaching into the controller.
func (r *Runtime) CartUpdates(fn func(cartclient.CartSnapshot)) {
	r.Loop.Post(func() {
		r.Cart.Subscribe(fn)
	})
}
