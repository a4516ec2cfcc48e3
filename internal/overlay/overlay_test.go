package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nate-a11y/AED-Empire/internal/announce"
	"github.com/nate-a11y/AED-Empire/internal/dom"
	"github.com/nate-a11y/AED-Empire/internal/focus"
	"github.com/nate-a11y/AED-Empire/internal/loop"
	"github.com/nate-a11y/AED-Empire/internal/testutil"
)

type fixture struct {
	doc  *dom.Document
	ctrl *Controller
	ann  *announce.Announcer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	doc := dom.NewDocument()
	lp := loop.New()
	sched := testutil.NewManualScheduler(lp)
	fm := focus.NewManager(doc)
	ann := announce.New(doc, sched)
	return &fixture{doc: doc, ctrl: NewController(doc, fm, ann), ann: ann}
}

func (f *fixture) addSurface(t *testing.T, name string) *Surface {
	t.Helper()
	root := f.doc.CreateElement("div")
	closeBtn := f.doc.CreateElement("button")
	closeBtn.SetAttr("id", name+"-close")
	root.Append(closeBtn)
	f.doc.Root().Append(root)

	s := &Surface{Name: name, Root: root}
	require.NoError(t, f.ctrl.Register(s))
	return s
}

func TestRegister_StartsClosed(t *testing.T) {
	f := newFixture(t)
	s := f.addSurface(t, "cart-drawer")

	assert.True(t, s.Root.HasAttr("hidden"))
	assert.Equal(t, "true", s.Root.AttrOr("aria-hidden", ""))
	assert.Equal(t, "cart-drawer", s.Root.AttrOr("data-surface", ""))
	assert.False(t, f.ctrl.IsOpen("cart-drawer"))
}

func TestRegister_Duplicate(t *testing.T) {
	f := newFixture(t)
	f.addSurface(t, "menu")

	dup := &Surface{Name: "menu", Root: f.doc.CreateElement("div")}
	assert.Error(t, f.ctrl.Register(dup))
}

func TestRegister_RequiresNameAndRoot(t *testing.T) {
	f := newFixture(t)
	assert.Error(t, f.ctrl.Register(&Surface{Name: "", Root: f.doc.CreateElement("div")}))
	assert.Error(t, f.ctrl.Register(&Surface{Name: "x", Root: nil}))
}

func TestOpen_EffectsInOrder(t *testing.T) {
	f := newFixture(t)
	s := f.addSurface(t, "cart-drawer")

	require.NoError(t, f.ctrl.Open("cart-drawer"))

	assert.True(t, f.ctrl.IsOpen("cart-drawer"))
	assert.False(t, s.Root.HasAttr("hidden"))
	assert.Equal(t, "false", s.Root.AttrOr("aria-hidden", ""))
	assert.True(t, f.doc.Root().HasClass("scroll-locked"))

	active := f.doc.ActiveElement()
	require.NotNil(t, active)
	assert.Equal(t, "cart-drawer-close", active.AttrOr("id", ""))

	assert.Equal(t, "Cart drawer opened", f.ann.Region().Text())
}

func TestOpen_Unknown(t *testing.T) {
	f := newFixture(t)
	assert.Error(t, f.ctrl.Open("nope"))
}

func TestOpen_AlreadyOpenIsNoop(t *testing.T) {
	f := newFixture(t)
	f.addSurface(t, "menu")

	require.NoError(t, f.ctrl.Open("menu"))
	f.ann.Region().SetText("")
	require.NoError(t, f.ctrl.Open("menu"))

	assert.Equal(t, "", f.ann.Region().Text(), "reopening must not re-announce")
}

func TestClose_ReversesOpen(t *testing.T) {
	f := newFixture(t)
	s := f.addSurface(t, "cart-drawer")

	opener := f.doc.CreateElement("button")
	opener.SetAttr("id", "opener")
	f.doc.Root().Append(opener)
	opener.Focus()

	require.NoError(t, f.ctrl.Open("cart-drawer"))
	require.NoError(t, f.ctrl.Close("cart-drawer"))

	assert.False(t, f.ctrl.IsOpen("cart-drawer"))
	assert.True(t, s.Root.HasAttr("hidden"))
	assert.Equal(t, "true", s.Root.AttrOr("aria-hidden", ""))
	assert.False(t, f.doc.Root().HasClass("scroll-locked"))
	assert.Equal(t, "Cart drawer closed", f.ann.Region().Text())

	require.NotNil(t, f.doc.ActiveElement())
	assert.Equal(t, "opener", f.doc.ActiveElement().AttrOr("id", ""))
}

func TestClose_NotOpenIsNoop(t *testing.T) {
	f := newFixture(t)
	f.addSurface(t, "menu")
	require.NoError(t, f.ctrl.Close("menu"))
}

func TestOpenSecondSurface_TrapMoves(t *testing.T) {
	f := newFixture(t)
	f.addSurface(t, "menu")
	f.addSurface(t, "quote-modal")

	require.NoError(t, f.ctrl.Open("menu"))
	require.NoError(t, f.ctrl.Open("quote-modal"))

	assert.Equal(t, "quote-modal-close", f.doc.ActiveElement().AttrOr("id", ""))

	// Closing the first surface must not release the second's trap.
	require.NoError(t, f.ctrl.Close("menu"))
	assert.Equal(t, "quote-modal-close", f.doc.ActiveElement().AttrOr("id", ""))

	// Scroll stays locked until the second surface closes too.
	assert.True(t, f.doc.Root().HasClass("scroll-locked"))
	require.NoError(t, f.ctrl.Close("quote-modal"))
	assert.False(t, f.doc.Root().HasClass("scroll-locked"))
}

func TestEscape_ClosesTrapHolder(t *testing.T) {
	f := newFixture(t)
	f.addSurface(t, "menu")

	require.NoError(t, f.ctrl.Open("menu"))
	f.doc.KeyDown(dom.KeyEscape, false)

	assert.False(t, f.ctrl.IsOpen("menu"))
}

func TestEscape_NoSurfaceOpen(t *testing.T) {
	f := newFixture(t)
	f.addSurface(t, "menu")

	assert.NotPanics(t, func() { f.doc.KeyDown(dom.KeyEscape, false) })
	assert.False(t, f.ctrl.IsOpen("menu"))
}

func TestBackdropClick_ClosesSurface(t *testing.T) {
	f := newFixture(t)

	root := f.doc.CreateElement("div")
	backdrop := f.doc.CreateElement("div")
	backdrop.SetAttr("data-overlay-backdrop", "")
	content := f.doc.CreateElement("button")
	backdrop.Append(content)
	root.Append(backdrop)
	f.doc.Root().Append(root)

	require.NoError(t, f.ctrl.Register(&Surface{Name: "cart-drawer", Root: root}))
	require.NoError(t, f.ctrl.Open("cart-drawer"))

	// Click on content inside the backdrop must not dismiss.
	f.doc.Click(content)
	assert.True(t, f.ctrl.IsOpen("cart-drawer"))

	// Direct backdrop click dismisses.
	f.doc.Click(backdrop)
	assert.False(t, f.ctrl.IsOpen("cart-drawer"))
}

func TestLifecycleHooks(t *testing.T) {
	f := newFixture(t)
	s := f.addSurface(t, "cart-drawer")

	var events []string
	s.OnOpen = func() { events = append(events, "open") }
	s.OnClose = func() { events = append(events, "close") }

	require.NoError(t, f.ctrl.Open("cart-drawer"))
	require.NoError(t, f.ctrl.Close("cart-drawer"))

	assert.Equal(t, []string{"open", "close"}, events)
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Cart drawer", humanize("cart-drawer"))
	assert.Equal(t, "Menu", humanize("menu"))
	assert.Equal(t, "Newsletter popup", humanize("newsletter-popup"))
	assert.Equal(t, "", humanize(""))
}
