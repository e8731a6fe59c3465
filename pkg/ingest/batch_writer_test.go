package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func openScratchDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })
	if _, err := conn.Exec("CREATE TABLE notes (id INTEGER PRIMARY KEY, val TEXT)"); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	return conn
}

func insertNote(val string) WriteFunc {
	return func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO notes (val) VALUES (?)", val)
		return err
	}
}

func countNotes(t *testing.T, conn *sql.DB) int {
	t.Helper()
	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM notes").Scan(&count); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	return count
}

func TestBatchWriterTransactions(t *testing.T) {
	conn := openScratchDB(t)

	bw := NewBatchWriter(conn, 2, 0)
	for _, v := range []string{"A", "B", "C"} {
		if err := bw.Submit(insertNote(v)); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	doneCh := make(chan error, 1)
	go func() {
		doneCh <- bw.Close()
	}()
	select {
	case err := <-doneCh:
		if err != nil {
			t.Fatalf("close failed: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for batch commit/close")
	}

	if got := countNotes(t, conn); got != 3 {
		t.Fatalf("expected 3 rows, got %d", got)
	}
	if got := bw.Committed(); got != 3 {
		t.Fatalf("expected 3 committed writes, got %d", got)
	}
}

func TestBatchWriterRollback(t *testing.T) {
	conn := openScratchDB(t)

	bw := NewBatchWriter(conn, 2, 0)
	errCh := make(chan error, 1)
	bw.OnError = func(e error) {
		errCh <- e
	}

	// The second write fails, so the first must roll back with it.
	bw.Submit(insertNote("C"))
	bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
		return fmt.Errorf("intentional error")
	})

	if err := bw.Close(); err == nil || !strings.Contains(err.Error(), "intentional") {
		t.Fatalf("expected Close to return the batch error, got %v", err)
	}
	select {
	case err := <-errCh:
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	default:
		t.Fatal("expected OnError to be called")
	}

	if got := countNotes(t, conn); got != 0 {
		t.Fatalf("expected 0 rows (rollback), got %d", got)
	}
	if got := bw.Committed(); got != 0 {
		t.Fatalf("expected 0 committed writes, got %d", got)
	}
}

func TestBatchWriterFlushesBySize(t *testing.T) {
	bw := NewBatchWriter(nil, 5, 0)
	var mu sync.Mutex
	called := 0
	for i := 0; i < 12; i++ {
		if err := bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
			mu.Lock()
			called++
			mu.Unlock()
			return nil
		}); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if called != 12 {
		t.Fatalf("expected 12 calls, got %d", called)
	}
}

func TestBatchWriterFlushesOnInterval(t *testing.T) {
	bw := NewBatchWriter(nil, 10, 20*time.Millisecond)
	flushed := make(chan struct{})
	if err := bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
		close(flushed)
		return nil
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	select {
	case <-flushed:
	case <-time.After(time.Second):
		t.Fatal("timer flush did not happen")
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestBatchWriterSubmitAfterClose(t *testing.T) {
	bw := NewBatchWriter(nil, 1, 0)
	if err := bw.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := bw.Submit(insertNote("late")); err != ErrBatchWriterClosed {
		t.Fatalf("expected ErrBatchWriterClosed, got %v", err)
	}
	if err := bw.Close(); err != ErrBatchWriterClosed {
		t.Fatalf("expected ErrBatchWriterClosed on second close, got %v", err)
	}
}

func TestBatchWriterDropsBatchOnCancel(t *testing.T) {
	bw := NewBatchWriter(nil, 1, 0)
	errCh := make(chan error, 4)
	bw.OnError = func(e error) {
		errCh <- e
	}

	blocker := make(chan struct{})
	started := make(chan struct{})
	if err := bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
		close(started)
		<-blocker
		return nil
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	<-started

	// Fill the commit queue while the committer is busy.
	for i := 0; i < 2; i++ {
		if err := bw.Submit(func(ctx context.Context, tx *sql.Tx) error { return nil }); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	bw.cancel()

	// The queue is full and the writer is cancelled, so this batch is dropped.
	if err := bw.Submit(func(ctx context.Context, tx *sql.Tx) error { return nil }); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	close(blocker)

	select {
	case e := <-errCh:
		if e == nil || !strings.Contains(e.Error(), "dropped batch") {
			t.Fatalf("unexpected OnError value: %v", e)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected OnError to be called when batch dropped")
	}

	if err := bw.Close(); err == nil || !strings.Contains(err.Error(), "dropped batch") {
		t.Fatalf("expected Close to report the dropped batch, got %v", err)
	}
	if got := bw.Committed(); got != 3 {
		t.Fatalf("expected 3 committed writes, got %d", got)
	}
}

func TestBatchWriterLogsCommittedBatches(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	bw := NewBatchWriter(nil, 2, 0)
	bw.Logger = zap.New(core)

	for i := 0; i < 3; i++ {
		if err := bw.Submit(func(ctx context.Context, tx *sql.Tx) error { return nil }); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	entries := logs.FilterMessage("narrative batch committed").All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 batch log entries, got %d", len(entries))
	}
	if got := entries[1].ContextMap()["total"]; got != int64(3) {
		t.Fatalf("expected running total 3, got %v", got)
	}
}
