package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/nate-a11y/AED-Empire/internal/dom"
	"github.com/nate-a11y/AED-Empire/internal/loop"
	"github.com/nate-a11y/AED-Empire/internal/money"
)

// Suggester is the slice of the suggest client the dispatcher consumes.
type Suggester interface {
	Suggest(ctx context.Context, query string) (Results, error)
}

// Dispatcher debounces query keystrokes and renders grouped results into
// the search panel.
//
// Like cart responses, suggest responses are stamped with an issue sequence
// number and stale ones are discarded, so a slow response for an old query
// never overwrites results for the current one.
//
// All methods run on the event loop.
type Dispatcher struct {
	loop    *loop.Loop
	sched   loop.Scheduler
	client  Suggester
	doc     *dom.Document
	prices  *money.Formatter
	delay   time.Duration
	pending loop.CancelFunc
	issued  int64
}

// NewDispatcher creates a dispatcher with the standard debounce delay.
func NewDispatcher(l *loop.Loop, sched loop.Scheduler, client Suggester, doc *dom.Document, prices *money.Formatter) *Dispatcher {
	return &Dispatcher{
		loop:   l,
		sched:  sched,
		client: client,
		doc:    doc,
		prices: prices,
		delay:  DebounceDelay,
	}
}

// Bind registers the delegated input handler for the search field.
func (d *Dispatcher) Bind() {
	d.doc.Delegate(dom.EventInput, "[data-search-input]", func(ev *dom.Event, match *dom.Element) {
		d.QueryChanged(match.AttrOr("value", ""))
	})
}

// QueryChanged restarts the debounce window for the new query text. An
// empty query clears results immediately without hitting the resource.
func (d *Dispatcher) QueryChanged(query string) {
	if d.pending != nil {
		d.pending()
		d.pending = nil
	}

	if query == "" {
		d.issued = d.loop.Clock().Next()
		d.clearResults()
		return
	}

	d.pending = d.sched.After(d.delay, func() {
		d.pending = nil
		d.dispatch(query)
	})
}

func (d *Dispatcher) dispatch(query string) {
	seq := d.loop.Clock().Next()
	d.issued = seq

	go func() {
		results, err := d.client.Suggest(context.Background(), query)
		d.loop.Post(func() {
			if d.issued != seq {
				slog.Debug("stale suggest response discarded", "query", query, "seq", seq)
				return
			}
			if err != nil {
				slog.Warn("suggest query failed", "query", query, "error", err)
				return
			}
			d.renderResults(results)
		})
	}()
}

func (d *Dispatcher) clearResults() {
	if container := d.doc.Query("[data-search-results]"); container != nil {
		container.RemoveChildren()
	}
}

// renderResults rebuilds the results list. Product entries render with
// title, link, and price; other groups render titles only.
func (d *Dispatcher) renderResults(results Results) {
	container := d.doc.Query("[data-search-results]")
	if container == nil {
		slog.Warn("search results container missing, skipping render")
		return
	}

	container.RemoveChildren()

	for _, group := range []string{"products", "collections", "pages"} {
		entries := results[group]
		if len(entries) == 0 {
			continue
		}

		section := d.doc.CreateElement("ul")
		section.SetAttr("data-result-group", group)

		for _, entry := range entries {
			item := d.doc.CreateElement("li")

			link := d.doc.CreateElement("a")
			link.SetAttr("href", entry.URL)
			link.SetText(entry.Title)
			item.Append(link)

			if group == "products" {
				price := d.doc.CreateElement("span")
				price.AddClass("search-result-price")
				price.SetText(d.prices.Format(entry.Price))
				item.Append(price)
			}

			section.Append(item)
		}
		container.Append(section)
	}
}
