// Package announce provides the assistive-technology announcement channel:
// a persistent visually hidden live region, decoupled from visual state.
package announce

import (
	"time"

	"github.com/nate-a11y/AED-Empire/internal/dom"
	"github.com/nate-a11y/AED-Empire/internal/loop"
)

// Priority selects the live-region politeness level.
type Priority string

const (
	// Polite waits for the screen reader to finish its current utterance.
	Polite Priority = "polite"
	// Assertive interrupts. Reserved for failures the user must hear.
	Assertive Priority = "assertive"
)

// ClearDelay is how long an announcement stays in the region. Clearing the
// text afterwards makes a repeated identical announcement read again;
// leaving it in place would be silently deduplicated by screen readers.
const ClearDelay = 1000 * time.Millisecond

// Announcer writes messages into a single live region.
//
// There is no queue: a new announcement overwrites whatever is currently in
// the region and reschedules the clear. Rapid-fire callers get last-message-
// wins, not FIFO.
type Announcer struct {
	region *dom.Element
	sched  loop.Scheduler
	cancel loop.CancelFunc
}

// New creates the announcer and appends its live region to the document
// root. One announcer serves the whole page.
func New(doc *dom.Document, sched loop.Scheduler) *Announcer {
	region := doc.CreateElement("div")
	region.AddClass("visually-hidden")
	region.SetAttr("aria-live", string(Polite))
	region.SetAttr("role", "status")
	doc.Root().Append(region)

	return &Announcer{region: region, sched: sched}
}

// Announce writes message into the live region at the given priority and
// schedules the region to be emptied after ClearDelay.
func (a *Announcer) Announce(message string, p Priority) {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}

	a.region.SetAttr("aria-live", string(p))
	a.region.SetText(message)

	a.cancel = a.sched.After(ClearDelay, func() {
		a.region.SetText("")
		a.cancel = nil
	})
}

// Region returns the live region element. Test hook.
func (a *Announcer) Region() *dom.Element { return a.region }
