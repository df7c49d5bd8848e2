package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/pricing/internal/dal/interfaces/iauditrepo"
	"github.com/corray333/backend-labs/pricing/internal/service/models/auditlog"
	"github.com/spf13/viper"
)

// Worker publishes price correction audit events in the background. Events
// wait in a bounded in-memory buffer and are flushed in batches; delivery
// is best-effort and never blocks or fails a price update.
type Worker struct {
	auditRepo     iauditrepo.IAuditRepository
	events        chan auditlog.PriceCorrection
	flushInterval time.Duration
	batchSize     int
	stopCh        chan struct{}
}

// NewWorker creates a new audit worker.
func NewWorker(auditRepo iauditrepo.IAuditRepository) *Worker {
	flushIntervalSeconds := viper.GetInt("rabbitmq.audit.flush_interval_seconds")
	if flushIntervalSeconds == 0 {
		flushIntervalSeconds = 5
	}

	batchSize := viper.GetInt("rabbitmq.audit.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	bufferSize := viper.GetInt("rabbitmq.audit.buffer_size")
	if bufferSize == 0 {
		bufferSize = 1024
	}

	return &Worker{
		auditRepo:     auditRepo,
		events:        make(chan auditlog.PriceCorrection, bufferSize),
		flushInterval: time.Duration(flushIntervalSeconds) * time.Second,
		batchSize:     batchSize,
		stopCh:        make(chan struct{}),
	}
}

// Enqueue hands an event to the worker without blocking. When the buffer
// is full the event is dropped with a warning.
func (w *Worker) Enqueue(ev auditlog.PriceCorrection) {
	select {
	case w.events <- ev:
	default:
		slog.Warn("Audit buffer full, dropping price correction event",
			"order_id", ev.OrderID, "detail_id", ev.DetailID)
	}
}

// Start begins flushing buffered events until the context is cancelled or
// Stop is called. A final flush runs on the way out.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	slog.Info("Audit worker started", "flush_interval", w.flushInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			w.flush(context.Background())
			slog.Info("Audit worker shutting down")

			return
		case <-w.stopCh:
			w.flush(context.Background())
			slog.Info("Audit worker stopped")

			return
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

func (w *Worker) flush(ctx context.Context) {
	for {
		batch := w.nextBatch()
		if len(batch) == 0 {
			return
		}

		if err := w.auditRepo.LogPriceCorrections(ctx, batch); err != nil {
			slog.Error("Failed to publish audit events", "error", err, "count", len(batch))

			return
		}
	}
}

func (w *Worker) nextBatch() []auditlog.PriceCorrection {
	batch := make([]auditlog.PriceCorrection, 0, w.batchSize)
	for len(batch) < w.batchSize {
		select {
		case ev := <-w.events:
			batch = append(batch, ev)
		default:
			return batch
		}
	}

	return batch
}
