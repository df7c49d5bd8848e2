package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/corray333/backend-labs/pricing/internal/service/models/auditlog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuditRepo struct {
	mu      sync.Mutex
	batches [][]auditlog.PriceCorrection
	err     error
}

func (f *fakeAuditRepo) LogPriceCorrections(_ context.Context, events []auditlog.PriceCorrection) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}

	batch := make([]auditlog.PriceCorrection, len(events))
	copy(batch, events)
	f.batches = append(f.batches, batch)

	return nil
}

func (f *fakeAuditRepo) published() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, b := range f.batches {
		n += len(b)
	}

	return n
}

func event(orderID, detailID int64) auditlog.PriceCorrection {
	return auditlog.PriceCorrection{
		OrderID:     orderID,
		DetailID:    detailID,
		ProductCode: "P001",
		NewPrice:    decimal.NewFromInt(1200),
		SalesPrice:  decimal.NewFromInt(2400),
		Quantity:    2,
		CorrectedAt: time.Now(),
	}
}

func TestStopFlushesBufferedEvents(t *testing.T) {
	repo := &fakeAuditRepo{}
	w := NewWorker(repo)

	w.Enqueue(event(1, 1))
	w.Enqueue(event(1, 2))

	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	w.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}

	assert.Equal(t, 2, repo.published())
}

func TestContextCancelFlushesAndStops(t *testing.T) {
	repo := &fakeAuditRepo{}
	w := NewWorker(repo)

	w.Enqueue(event(2, 3))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}

	assert.Equal(t, 1, repo.published())
}

func TestEnqueueNeverBlocksWhenBufferIsFull(t *testing.T) {
	repo := &fakeAuditRepo{}
	w := NewWorker(repo)
	w.events = make(chan auditlog.PriceCorrection, 1)

	finished := make(chan struct{})
	go func() {
		w.Enqueue(event(1, 1))
		w.Enqueue(event(1, 2)) // buffer full, dropped
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full buffer")
	}

	require.Len(t, w.events, 1)
}

func TestPublishFailureIsSwallowed(t *testing.T) {
	repo := &fakeAuditRepo{err: errors.New("broker gone")}
	w := NewWorker(repo)

	w.Enqueue(event(1, 1))

	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	w.Stop()
	<-done

	assert.Equal(t, 0, repo.published())
}
