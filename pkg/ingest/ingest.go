// Package ingest imports narratives in bulk: requests are interpreted on a
// worker pool and stored in input order through batched transactions.
package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/japaniel/visionary/pkg/db"
	"github.com/japaniel/visionary/pkg/service"
)

// WorkerPoolInterface abstracts the worker pool so tests can inject failing implementations.
type WorkerPoolInterface interface {
	Start(ctx context.Context)
	Submit(Job) error
	SubmitCtx(ctx context.Context, job Job) error
	Close()
}

// Interpreter turns a request into its rendered interpretation.
// *service.Service implements it.
type Interpreter interface {
	Interpret(req service.SubmitRequest) (service.Submission, error)
}

// Ingester stores narratives with their interpretations.
type Ingester struct {
	DB            *sql.DB
	Interpreter   Interpreter
	BatchSize     int
	FlushInterval time.Duration
	Workers       int
	Logger        *zap.Logger
	// OnProgress is called with the number of narratives handled so far.
	OnProgress func(current, total int)

	// PoolFactory allows tests to inject custom worker pool implementations.
	PoolFactory func(workers, queue int) WorkerPoolInterface
}

func NewIngester(conn *sql.DB, interp Interpreter) *Ingester {
	return &Ingester{
		DB:            conn,
		Interpreter:   interp,
		BatchSize:     50,
		FlushInterval: 100 * time.Millisecond,
		Workers:       4,
	}
}

type interpreted struct {
	Index      int
	Request    service.SubmitRequest
	Submission service.Submission
	Err        error
}

// Ingest interprets and stores requests, returning how many were
// committed. Invalid requests are logged and skipped. Records keep the input
// order in their submission times.
func (ig *Ingester) Ingest(ctx context.Context, requests []service.SubmitRequest) (int, error) {
	if ig.DB == nil || ig.Interpreter == nil {
		return 0, errors.New("ingest: database and interpreter are required")
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(requests) == 0 {
		return 0, nil
	}

	workers := ig.Workers
	if workers <= 0 {
		workers = 1
	}
	var wp WorkerPoolInterface
	if ig.PoolFactory != nil {
		wp = ig.PoolFactory(workers, workers*2)
	} else {
		wp = NewWorkerPool(workers, workers*2)
	}
	bw := NewBatchWriter(ig.DB, ig.BatchSize, ig.FlushInterval)
	if ig.Logger != nil {
		bw.Logger = ig.Logger
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resultCh := make(chan interpreted, workers*2)
	doneCh := make(chan error, 1)
	base := time.Now().UTC()

	wp.Start(ctx)
	go func() {
		doneCh <- ig.consume(ctx, cancel, bw, resultCh, len(requests), base)
	}()

	var submitErr error
	for i, req := range requests {
		job := func(ctx context.Context) error {
			sub, err := ig.Interpreter.Interpret(req)
			select {
			case resultCh <- interpreted{Index: i, Request: req, Submission: sub, Err: err}:
			case <-ctx.Done():
			}
			return nil
		}
		if err := wp.SubmitCtx(ctx, job); err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, ErrPoolClosed) {
				submitErr = err
				cancel()
			}
			break
		}
	}

	// Close waits for the workers, so nothing sends on resultCh afterwards.
	wp.Close()
	close(resultCh)

	err := <-doneCh
	if submitErr != nil {
		err = submitErr
	}
	if cerr := bw.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return bw.Committed(), err
}

// consume re-orders results by index and hands them to the batch writer.
func (ig *Ingester) consume(ctx context.Context, cancel context.CancelFunc, bw *BatchWriter,
	resultCh <-chan interpreted, total int, base time.Time) error {
	logger := ig.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	pending := make(map[int]interpreted)
	next := 0
	skipped := 0

	for res := range resultCh {
		pending[res.Index] = res
		for {
			item, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)

			if item.Err != nil {
				if !errors.Is(item.Err, service.ErrInvalidSubmission) {
					cancel()
					return fmt.Errorf("narrative %d: %w", item.Index, item.Err)
				}
				logger.Warn("skipping narrative", zap.Int("index", item.Index), zap.Error(item.Err))
				skipped++
			} else if err := bw.Submit(writeVision(item, base)); err != nil {
				cancel()
				return err
			}

			next++
			if ig.OnProgress != nil && (next%max(ig.BatchSize, 1) == 0 || next == total) {
				ig.OnProgress(next, total)
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	logger.Info("ingest finished", zap.Int("narratives", total), zap.Int("skipped", skipped))
	return nil
}

func writeVision(item interpreted, base time.Time) WriteFunc {
	v := db.Vision{
		ID:          db.NewVisionID(),
		Title:       strings.TrimSpace(item.Request.Title),
		Description: item.Request.Description,
		Context:     item.Request.Context,
		SubmittedAt: base.Add(time.Duration(item.Index) * time.Microsecond),
	}
	interpretation := item.Submission.Interpretation
	return func(ctx context.Context, tx *sql.Tx) error {
		if err := db.InsertVision(ctx, tx, v); err != nil {
			return fmt.Errorf("failed to persist vision %s: %w", v.ID, err)
		}
		if err := db.SetInterpretation(ctx, tx, v.ID, interpretation); err != nil {
			return fmt.Errorf("failed to attach interpretation %s: %w", v.ID, err)
		}
		return nil
	}
}
