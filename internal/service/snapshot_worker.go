package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"ads-report-service/internal/model"
	"ads-report-service/internal/repository"
)

// SnapshotWorker receives campaign rows from live reports and flushes them
// to the archive in batches.
type SnapshotWorker interface {
	Enqueue(snapshots []model.ReportSnapshot)
	Shutdown()
}

type snapshotWorker struct {
	repo          repository.SnapshotRepository
	queue         chan model.ReportSnapshot
	batchSize     int
	flushInterval time.Duration
	log           *zap.Logger
	wg            sync.WaitGroup
}

// NewSnapshotWorker starts the background flush loop. Rows are written when
// the batch fills or the flush interval elapses, whichever comes first.
func NewSnapshotWorker(repo repository.SnapshotRepository, bufferSize, batchSize int, interval time.Duration, log *zap.Logger) SnapshotWorker {
	worker := &snapshotWorker{
		repo:          repo,
		queue:         make(chan model.ReportSnapshot, bufferSize),
		batchSize:     batchSize,
		flushInterval: interval,
		log:           log,
	}
	worker.wg.Add(1)
	go worker.startLoop()
	return worker
}

// Enqueue never blocks the report path: if the buffer is full the rows are
// dropped and logged. The archive is best-effort history, not a ledger.
func (w *snapshotWorker) Enqueue(snapshots []model.ReportSnapshot) {
	for i, snapshot := range snapshots {
		select {
		case w.queue <- snapshot:
		default:
			w.log.Warn("snapshot buffer full, dropping rows",
				zap.Int("dropped", len(snapshots)-i))
			return
		}
	}
}

// Shutdown drains the queue and waits for the final flush.
func (w *snapshotWorker) Shutdown() {
	close(w.queue)
	w.wg.Wait()
}

func (w *snapshotWorker) startLoop() {
	defer w.wg.Done()

	var batch []model.ReportSnapshot
	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case snapshot, ok := <-w.queue:
			if !ok {
				if len(batch) > 0 {
					w.flush(batch)
				}
				return
			}
			batch = append(batch, snapshot)
			if len(batch) >= w.batchSize {
				w.flush(batch)
				batch = nil
			}
		case <-ticker.C:
			if len(batch) > 0 {
				w.flush(batch)
				batch = nil
			}
		}
	}
}

func (w *snapshotWorker) flush(batch []model.ReportSnapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := w.repo.InsertSnapshots(ctx, batch); err != nil {
		w.log.Error("snapshot flush failed", zap.Int("rows", len(batch)), zap.Error(err))
		return
	}
	w.log.Debug("snapshots flushed", zap.Int("rows", len(batch)))
}

// noopWorker satisfies SnapshotWorker when the archive is disabled.
type noopWorker struct{}

// NewNoopWorker returns a worker that discards everything.
func NewNoopWorker() SnapshotWorker { return noopWorker{} }

func (noopWorker) Enqueue([]model.ReportSnapshot) {}
func (noopWorker) Shutdown()                      {}
