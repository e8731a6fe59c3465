package ingest

import (
	"context"
	"sync"
)

// Job is a unit of work run by the WorkerPool. The pool ignores the
// returned error; jobs report results through their own channels.
type Job func(ctx context.Context) error

// WorkerPool runs jobs on a fixed number of goroutines. The Ingester uses it
// to analyse narratives in parallel.
type WorkerPool struct {
	jobs    chan Job
	quit    chan struct{}
	wg      sync.WaitGroup
	workers int

	// submitMu is held shared by in-flight submits so Close can wait for
	// them before closing the job queue.
	submitMu  sync.RWMutex
	closeOnce sync.Once
}

// NewWorkerPool creates a pool with the given number of workers and job
// queue capacity.
func NewWorkerPool(workers, queue int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queue <= 0 {
		queue = workers * 2
	}
	return &WorkerPool{
		jobs:    make(chan Job, queue),
		quit:    make(chan struct{}),
		workers: workers,
	}
}

// Start launches the workers. They run until ctx is done or Close has
// drained the queue.
func (p *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job, ok := <-p.jobs:
					if !ok {
						return
					}
					_ = job(ctx)
				}
			}
		}()
	}
}

// Submit enqueues a job, blocking while the queue is full. It returns
// ErrPoolClosed once Close has been called.
func (p *WorkerPool) Submit(job Job) error {
	return p.SubmitCtx(context.Background(), job)
}

// SubmitCtx is Submit that also gives up when ctx is done.
func (p *WorkerPool) SubmitCtx(ctx context.Context, job Job) error {
	p.submitMu.RLock()
	defer p.submitMu.RUnlock()

	select {
	case <-p.quit:
		return ErrPoolClosed
	default:
	}
	select {
	case p.jobs <- job:
		return nil
	case <-p.quit:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting jobs, lets the workers finish what is queued and
// waits for them to exit.
func (p *WorkerPool) Close() {
	p.closeOnce.Do(func() {
		close(p.quit)
		p.submitMu.Lock()
		close(p.jobs)
		p.submitMu.Unlock()
	})
	p.wg.Wait()
}

// ErrPoolClosed is returned by Submit after Close.
var ErrPoolClosed = &PoolError{"worker pool closed"}

// PoolError is the error type for pool operations.
type PoolError struct{ msg string }

func (e *PoolError) Error() string { return e.msg }
