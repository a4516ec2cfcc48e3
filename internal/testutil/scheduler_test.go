package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nate-a11y/AED-Empire/internal/loop"
)

func TestManualScheduler_NothingFiresWithoutAdvance(t *testing.T) {
	lp := loop.New()
	s := NewManualScheduler(lp)

	s.After(time.Millisecond, func() { t.Error("fired without Advance") })

	assert.Equal(t, 0, lp.Len())
	lp.Drain()
}

func TestManualScheduler_FiresAtDeadline(t *testing.T) {
	lp := loop.New()
	s := NewManualScheduler(lp)

	var fired bool
	s.After(100*time.Millisecond, func() { fired = true })

	s.Advance(99 * time.Millisecond)
	lp.Drain()
	assert.False(t, fired, "fired before deadline")

	s.Advance(1 * time.Millisecond)
	lp.Drain()
	assert.True(t, fired)
}

func TestManualScheduler_FiresInDeadlineOrder(t *testing.T) {
	lp := loop.New()
	s := NewManualScheduler(lp)

	var order []string
	s.After(200*time.Millisecond, func() { order = append(order, "late") })
	s.After(100*time.Millisecond, func() { order = append(order, "early") })

	s.Advance(300 * time.Millisecond)
	lp.Drain()

	assert.Equal(t, []string{"early", "late"}, order)
}

func TestManualScheduler_RegistrationOrderBreaksTies(t *testing.T) {
	lp := loop.New()
	s := NewManualScheduler(lp)

	var order []int
	s.After(100*time.Millisecond, func() { order = append(order, 1) })
	s.After(100*time.Millisecond, func() { order = append(order, 2) })

	s.Advance(100 * time.Millisecond)
	lp.Drain()

	assert.Equal(t, []int{1, 2}, order)
}

func TestManualScheduler_Cancel(t *testing.T) {
	lp := loop.New()
	s := NewManualScheduler(lp)

	cancel := s.After(100*time.Millisecond, func() { t.Error("cancelled task fired") })
	assert.Equal(t, 1, s.PendingCount())

	cancel()
	assert.Equal(t, 0, s.PendingCount())

	s.Advance(time.Hour)
	lp.Drain()
}

func TestManualScheduler_CancelAfterFireIsNoop(t *testing.T) {
	lp := loop.New()
	s := NewManualScheduler(lp)

	var fired int
	cancel := s.After(10*time.Millisecond, func() { fired++ })

	s.Advance(10 * time.Millisecond)
	lp.Drain()
	cancel()

	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, s.PendingCount())
}

func TestManualScheduler_AdvanceAccumulates(t *testing.T) {
	lp := loop.New()
	s := NewManualScheduler(lp)

	var fired bool
	s.After(100*time.Millisecond, func() { fired = true })

	s.Advance(60 * time.Millisecond)
	s.Advance(60 * time.Millisecond)
	lp.Drain()

	assert.True(t, fired, "advances should accumulate")
}
