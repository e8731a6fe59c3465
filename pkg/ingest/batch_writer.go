package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrBatchWriterClosed is returned by Submit and Close once the writer has
// been closed.
var ErrBatchWriterClosed = errors.New("ingest: batch writer closed")

// WriteFunc stores one narrative inside the batch transaction. tx is nil
// when the writer has no database.
type WriteFunc func(ctx context.Context, tx *sql.Tx) error

// BatchWriter groups narrative writes into transactions of up to size
// writes. Every write of a batch commits together or not at all, so a
// narrative is never stored without its interpretation.
type BatchWriter struct {
	// OnError is called for every failed or dropped batch.
	OnError func(error)
	// Logger receives a debug entry per committed batch.
	Logger *zap.Logger

	db   *sql.DB
	size int

	mu      sync.Mutex
	pending []WriteFunc
	closed  bool

	batches chan []WriteFunc
	ticker  *time.Ticker
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	committed atomic.Int64

	errMu    sync.Mutex
	firstErr error
}

// NewBatchWriter starts a writer that commits once size writes are pending
// and, when flushInterval is positive, whenever the interval elapses.
func NewBatchWriter(db *sql.DB, size int, flushInterval time.Duration) *BatchWriter {
	if size <= 0 {
		size = 10
	}
	ctx, cancel := context.WithCancel(context.Background())
	bw := &BatchWriter{
		Logger:  zap.NewNop(),
		db:      db,
		size:    size,
		pending: make([]WriteFunc, 0, size),
		batches: make(chan []WriteFunc, 2),
		ctx:     ctx,
		cancel:  cancel,
	}

	bw.wg.Add(1)
	go bw.commitLoop()

	if flushInterval > 0 {
		bw.ticker = time.NewTicker(flushInterval)
		bw.wg.Add(1)
		go bw.flushLoop()
	}
	return bw
}

// Submit queues a write. It blocks while two full batches are already
// waiting to commit.
func (bw *BatchWriter) Submit(w WriteFunc) error {
	bw.mu.Lock()
	defer bw.mu.Unlock()
	if bw.closed {
		return ErrBatchWriterClosed
	}
	bw.pending = append(bw.pending, w)
	if len(bw.pending) >= bw.size {
		bw.handOff()
	}
	return nil
}

// Committed reports how many writes have been committed so far.
func (bw *BatchWriter) Committed() int {
	return int(bw.committed.Load())
}

// handOff moves the pending writes to the commit loop. bw.mu must be held.
func (bw *BatchWriter) handOff() {
	if len(bw.pending) == 0 {
		return
	}
	batch := bw.pending
	bw.pending = make([]WriteFunc, 0, bw.size)

	select {
	case bw.batches <- batch:
	case <-bw.ctx.Done():
		bw.fail(fmt.Errorf("dropped batch of %d narratives: %w", len(batch), bw.ctx.Err()))
	}
}

func (bw *BatchWriter) fail(err error) {
	bw.errMu.Lock()
	if bw.firstErr == nil {
		bw.firstErr = err
	}
	bw.errMu.Unlock()
	if bw.OnError != nil {
		bw.OnError(err)
	}
}

func (bw *BatchWriter) commitLoop() {
	defer bw.wg.Done()
	for batch := range bw.batches {
		start := time.Now()
		if err := bw.commit(batch); err != nil {
			bw.fail(err)
			continue
		}
		total := bw.committed.Add(int64(len(batch)))
		bw.Logger.Debug("narrative batch committed",
			zap.Int("size", len(batch)),
			zap.Int64("total", total),
			zap.Duration("took", time.Since(start)))
	}
}

func (bw *BatchWriter) commit(batch []WriteFunc) error {
	if bw.db == nil {
		for _, w := range batch {
			if err := w(bw.ctx, nil); err != nil {
				return err
			}
		}
		return nil
	}

	// A batch handed off before Close still commits after bw.ctx is
	// cancelled.
	ctx := context.Background()
	tx, err := bw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin narrative batch: %w", err)
	}
	for i, w := range batch {
		if err := w(ctx, tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("narrative %d of %d: %w", i+1, len(batch), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch of %d narratives: %w", len(batch), err)
	}
	return nil
}

func (bw *BatchWriter) flushLoop() {
	defer bw.wg.Done()
	for {
		select {
		case <-bw.ctx.Done():
			return
		case <-bw.ticker.C:
			bw.mu.Lock()
			bw.handOff()
			bw.mu.Unlock()
		}
	}
}

// Close commits what is pending, waits for the commit loop and returns the
// first failure. A second Close returns ErrBatchWriterClosed.
func (bw *BatchWriter) Close() error {
	bw.mu.Lock()
	if bw.closed {
		bw.mu.Unlock()
		return ErrBatchWriterClosed
	}
	bw.closed = true
	if bw.ticker != nil {
		bw.ticker.Stop()
	}
	bw.handOff()
	bw.mu.Unlock()

	bw.cancel()
	close(bw.batches)
	bw.wg.Wait()

	bw.errMu.Lock()
	defer bw.errMu.Unlock()
	return bw.firstErr
}
