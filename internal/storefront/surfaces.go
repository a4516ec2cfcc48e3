package storefront

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/nate-a11y/AED-Empire/internal/dom"
	"github.com/nate-a11y/AED-Empire/internal/overlay"
	"github.com/nate-a11y/AED-Empire/internal/settings"
	"github.com/nate-a11y/AED-Empire/internal/storage"
)

const newsletterDismissKey = "newsletter_dismissed_until"

// registerSurfaces locates each surface container by its data attribute and
// registers it with the overlay controller. A surface whose markup is
// absent is skipped with a warning; the rest of the page keeps working.
func (r *Runtime) registerSurfaces() {
	names := []string{
		SurfaceMenu,
		SurfaceSearch,
		SurfaceCartDrawer,
		SurfaceQuickView,
		SurfaceQuoteModal,
		SurfaceNewsletter,
		SurfaceLightbox,
	}

	for _, name := range names {
		root := r.Doc.Query("[data-surface-root=" + name + "]")
		if root == nil {
			slog.Warn("surface markup missing, surface disabled", "surface", name)
			continue
		}

		s := &overlay.Surface{Name: name, Root: root}
		switch name {
		case SurfaceCartDrawer:
			s.OnOpen = r.Cart.Refresh
		case SurfaceLightbox:
			s.OnOpen = r.showLightbox
		}

		if err := r.Overlays.Register(s); err != nil {
			slog.Warn("surface registration failed", "surface", name, "error", err)
		}
	}

	if r.config.CartType == settings.CartTypeDrawer {
		r.Cart.SetOpenDrawer(func() {
			if err := r.Overlays.Open(SurfaceCartDrawer); err != nil {
				slog.Warn("open cart drawer after add", "error", err)
			}
		})
	}
}

// bindGlue registers the delegated open/close/navigation handlers. One
// registration per behavior; handlers survive any re-render.
func (r *Runtime) bindGlue() {
	r.Doc.Delegate(dom.EventClick, "[data-open-surface]", func(ev *dom.Event, match *dom.Element) {
		name, _ := match.Attr("data-open-surface")
		if err := r.Overlays.Open(name); err != nil {
			slog.Warn("open surface control", "surface", name, "error", err)
		}
	})

	r.Doc.Delegate(dom.EventClick, "[data-close-surface]", func(ev *dom.Event, match *dom.Element) {
		name, _ := match.Attr("data-close-surface")
		if name == "" {
			if root := match.Closest("[data-surface]"); root != nil {
				name, _ = root.Attr("data-surface")
			}
		}
		if err := r.Overlays.Close(name); err != nil {
			slog.Warn("close surface control", "surface", name, "error", err)
		}
	})

	r.Doc.Delegate(dom.EventClick, "[data-quick-view-trigger]", func(ev *dom.Event, match *dom.Element) {
		productURL, _ := match.Attr("data-product-url")
		if err := r.Overlays.Open(SurfaceQuickView); err != nil {
			slog.Warn("open quick view", "error", err)
			return
		}
		r.fetchQuickView(productURL)
	})

	r.Doc.Delegate(dom.EventClick, "[data-newsletter-dismiss]", func(ev *dom.Event, match *dom.Element) {
		r.dismissNewsletter()
	})

	r.Doc.Delegate(dom.EventClick, "[data-lightbox-next]", func(ev *dom.Event, match *dom.Element) {
		r.stepLightbox(1)
	})

	r.Doc.Delegate(dom.EventClick, "[data-lightbox-prev]", func(ev *dom.Event, match *dom.Element) {
		r.stepLightbox(-1)
	})
}

// fetchQuickView loads product content asynchronously and injects it into
// the quick-view body. The surface is already open and trapped; content
// arrives when it arrives.
func (r *Runtime) fetchQuickView(productURL string) {
	container := r.Doc.Query("[data-quick-view-content]")
	if container == nil {
		slog.Warn("quick view content container missing")
		return
	}
	container.SetText("Loading…")

	go func() {
		body, err := r.fetchText(productURL)
		r.Loop.Post(func() {
			if err != nil {
				slog.Warn("quick view fetch failed", "url", productURL, "error", err)
				container.SetText("Could not load product")
				return
			}
			container.SetText(body)
		})
	}()
}

func (r *Runtime) fetchText(url string) (string, error) {
	resp, err := r.httpc.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// scheduleNewsletterPopup opens the newsletter popup after the configured
// delay unless a stored dismissal is still in effect.
func (r *Runtime) scheduleNewsletterPopup() {
	if r.config.NewsletterDelaySeconds <= 0 || r.store == nil {
		return
	}
	if r.Overlays.Surface(SurfaceNewsletter) == nil {
		return
	}

	go func() {
		until, err := r.store.Get(context.Background(), newsletterDismissKey)
		r.Loop.Post(func() {
			if err == nil {
				if t, parseErr := time.Parse(time.RFC3339, until); parseErr == nil && time.Now().Before(t) {
					slog.Debug("newsletter popup suppressed by dismissal", "until", until)
					return
				}
			} else if !errors.Is(err, storage.ErrNotFound) {
				slog.Warn("newsletter dismissal lookup failed", "error", err)
			}

			delay := time.Duration(r.config.NewsletterDelaySeconds) * time.Second
			r.Sched.After(delay, func() {
				if openErr := r.Overlays.Open(SurfaceNewsletter); openErr != nil {
					slog.Warn("open newsletter popup", "error", openErr)
				}
			})
		})
	}()
}

// dismissNewsletter closes the popup and records the dismissal window.
func (r *Runtime) dismissNewsletter() {
	if err := r.Overlays.Close(SurfaceNewsletter); err != nil {
		slog.Warn("close newsletter popup", "error", err)
	}
	if r.store == nil {
		return
	}

	until := time.Now().AddDate(0, 0, r.config.NewsletterDismissDays).Format(time.RFC3339)
	go func() {
		if err := r.store.Set(context.Background(), newsletterDismissKey, until); err != nil {
			slog.Warn("persist newsletter dismissal", "error", err)
		}
	}()
}

// lightboxState is the lightbox's explicit navigation state: the current
// index lives here, owned by the runtime, never captured in handler
// closures.
type lightboxState struct {
	index int
	items []string
}

// showLightbox (re)reads the item list from markup and shows the current
// image. Runs on open.
func (r *Runtime) showLightbox() {
	items := r.Doc.QueryAll("[data-lightbox-item]")
	srcs := make([]string, 0, len(items))
	for _, item := range items {
		srcs = append(srcs, item.AttrOr("data-src", ""))
	}

	if r.lightbox == nil {
		r.lightbox = &lightboxState{}
	}
	r.lightbox.items = srcs
	if r.lightbox.index >= len(srcs) {
		r.lightbox.index = 0
	}
	r.renderLightbox()
}

// stepLightbox moves the index by delta, wrapping at both ends.
func (r *Runtime) stepLightbox(delta int) {
	lb := r.lightbox
	if lb == nil || len(lb.items) == 0 {
		return
	}
	lb.index = (lb.index + delta + len(lb.items)) % len(lb.items)
	r.renderLightbox()
}

func (r *Runtime) renderLightbox() {
	lb := r.lightbox
	if lb == nil || len(lb.items) == 0 {
		return
	}

	if img := r.Doc.Query("[data-lightbox-image]"); img != nil {
		img.SetAttr("src", lb.items[lb.index])
	}
	if counter := r.Doc.Query("[data-lightbox-counter]"); counter != nil {
		counter.SetText(fmt.Sprintf("%d / %d", lb.index+1, len(lb.items)))
	}
}
