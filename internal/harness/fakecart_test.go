package harness

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nate-a11y/AED-Empire/internal/cartclient"
)

func waitHeld(t *testing.T, f *FakeCart, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for f.HeldCount() < n {
		if time.Now().After(deadline) {
			t.Fatalf("waiting for %d held requests, have %d", n, f.HeldCount())
		}
		time.Sleep(time.Millisecond)
	}
}

type fetchResult struct {
	snap *cartclient.CartSnapshot
	err  error
}

func TestFakeCart_HoldsUntilDelivered(t *testing.T) {
	f := NewFakeCart(BackendConfig{
		Lines: []SeedLine{{Key: "line-1", Title: "Alpha Kit", Price: 1000, Quantity: 2}},
	})

	results := make(chan fetchResult, 1)
	go func() {
		snap, err := f.FetchCart(context.Background())
		results <- fetchResult{snap, err}
	}()

	waitHeld(t, f, 1)
	select {
	case <-results:
		t.Fatal("call completed before delivery")
	default:
	}

	require.NoError(t, f.DeliverOldest())

	select {
	case r := <-results:
		require.NoError(t, r.err)
		assert.Equal(t, 2, r.snap.ItemCount)
		assert.Equal(t, int64(2000), r.snap.TotalPrice)
	case <-time.After(2 * time.Second):
		t.Fatal("delivered call never completed")
	}
}

func TestFakeCart_DeliveryOrderIsServerOrder(t *testing.T) {
	f := NewFakeCart(BackendConfig{
		Lines: []SeedLine{{Key: "line-1", Title: "Alpha Kit", Price: 1000, Quantity: 1}},
	})

	first := make(chan fetchResult, 1)
	go func() {
		snap, err := f.ChangeQuantity(context.Background(), "line-1", 3)
		first <- fetchResult{snap, err}
	}()
	waitHeld(t, f, 1)

	second := make(chan fetchResult, 1)
	go func() {
		snap, err := f.ChangeQuantity(context.Background(), "line-1", 5)
		second <- fetchResult{snap, err}
	}()
	waitHeld(t, f, 2)

	// Deliver the second request first: the server sees 5, then 3.
	require.NoError(t, f.DeliverAt(2))
	r := <-second
	require.NoError(t, r.err)
	assert.Equal(t, 5, r.snap.ItemCount)

	require.NoError(t, f.DeliverOldest())
	r = <-first
	require.NoError(t, r.err)
	assert.Equal(t, 3, r.snap.ItemCount, "late delivery applies to current server state")
}

func TestFakeCart_DeliverAtOutOfRange(t *testing.T) {
	f := NewFakeCart(BackendConfig{})
	assert.Error(t, f.DeliverOldest())
	assert.Error(t, f.DeliverAt(3))
}

func TestFakeCart_AddKnownProduct(t *testing.T) {
	f := NewFakeCart(BackendConfig{
		Products: []Product{{ID: "123", Title: "Widget", Price: 2500}},
	})

	results := make(chan fetchResult, 1)
	go func() {
		snap, err := f.AddItem(context.Background(), url.Values{"id": {"123"}, "quantity": {"2"}})
		results <- fetchResult{snap, err}
	}()
	waitHeld(t, f, 1)
	require.NoError(t, f.DeliverOldest())

	r := <-results
	require.NoError(t, r.err)
	assert.Equal(t, 2, r.snap.ItemCount)
	assert.Equal(t, int64(5000), r.snap.TotalPrice)
	require.Len(t, r.snap.Items, 1)
	assert.Equal(t, "line-1", r.snap.Items[0].Key)
	assert.Equal(t, "Widget", r.snap.Items[0].Title)
}

func TestFakeCart_AddUnknownProduct(t *testing.T) {
	f := NewFakeCart(BackendConfig{})

	results := make(chan fetchResult, 1)
	go func() {
		snap, err := f.AddItem(context.Background(), url.Values{"id": {"999"}})
		results <- fetchResult{snap, err}
	}()
	waitHeld(t, f, 1)
	require.NoError(t, f.DeliverOldest())

	r := <-results
	var ve *cartclient.ValidationError
	require.ErrorAs(t, r.err, &ve)
	assert.Equal(t, "Product not found", ve.Description)
}

func TestFakeCart_FailNextProgramsOneFailure(t *testing.T) {
	f := NewFakeCart(BackendConfig{
		Products: []Product{{ID: "123", Title: "Widget", Price: 2500}},
	})
	f.FailNext(&FailStep{Op: "add", Description: "Out of stock"})

	run := func() fetchResult {
		results := make(chan fetchResult, 1)
		go func() {
			snap, err := f.AddItem(context.Background(), url.Values{"id": {"123"}})
			results <- fetchResult{snap, err}
		}()
		waitHeld(t, f, 1)
		require.NoError(t, f.DeliverOldest())
		return <-results
	}

	r := run()
	var ve *cartclient.ValidationError
	require.ErrorAs(t, r.err, &ve)
	assert.Equal(t, "Out of stock", ve.Description)
	assert.Equal(t, 422, ve.Status)

	r = run()
	assert.NoError(t, r.err, "failure applies to a single call")
}

func TestFakeCart_FailNextWithoutDescriptionIsNetworkError(t *testing.T) {
	f := NewFakeCart(BackendConfig{})
	f.FailNext(&FailStep{Op: "fetch"})

	results := make(chan fetchResult, 1)
	go func() {
		snap, err := f.FetchCart(context.Background())
		results <- fetchResult{snap, err}
	}()
	waitHeld(t, f, 1)
	require.NoError(t, f.DeliverOldest())

	r := <-results
	var ne *cartclient.NetworkError
	require.ErrorAs(t, r.err, &ne)
	assert.Equal(t, 500, ne.Status)
}

func TestFakeCart_ChangeToZeroRemovesLine(t *testing.T) {
	f := NewFakeCart(BackendConfig{
		Lines: []SeedLine{{Key: "line-1", Title: "Alpha Kit", Price: 1000, Quantity: 1}},
	})

	results := make(chan fetchResult, 1)
	go func() {
		snap, err := f.ChangeQuantity(context.Background(), "line-1", 0)
		results <- fetchResult{snap, err}
	}()
	waitHeld(t, f, 1)
	require.NoError(t, f.DeliverOldest())

	r := <-results
	require.NoError(t, r.err)
	assert.Equal(t, 0, r.snap.ItemCount)
	assert.Empty(t, r.snap.Items)
}
