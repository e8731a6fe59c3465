package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/japaniel/visionary/pkg/symbols"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// Ensure single connection to avoid separate in-memory DBs per connection.
	db.SetMaxOpenConns(1)
	if err := InitDB(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func setupTestStore(t *testing.T) *Store {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertVisionValidates(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	if err := InsertVision(ctx, db, Vision{ID: "", Description: "x"}); err == nil {
		t.Fatalf("expected error for empty id")
	}
	if err := InsertVision(ctx, db, Vision{ID: "a", Description: " "}); err == nil {
		t.Fatalf("expected error for blank description")
	}
	if err := InsertVision(ctx, db, Vision{ID: "a", Description: "a lion", SubmittedAt: time.Now()}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := InsertVision(ctx, db, Vision{ID: "a", Description: "a lion", SubmittedAt: time.Now()}); err == nil {
		t.Fatalf("expected duplicate id to fail")
	}
}

func TestSetInterpretationOnlyOnce(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	if err := InsertVision(ctx, db, Vision{ID: "v1", Description: "a dove", SubmittedAt: time.Now()}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := SetInterpretation(ctx, db, "v1", "Themes:\n• Guidance"); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := SetInterpretation(ctx, db, "v1", "changed"); !errors.Is(err, ErrInterpretationSet) {
		t.Fatalf("expected ErrInterpretationSet, got %v", err)
	}
	if err := SetInterpretation(ctx, db, "missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var got string
	if err := db.QueryRow(`SELECT interpretation FROM visions WHERE id = 'v1'`).Scan(&got); err != nil {
		t.Fatalf("query: %v", err)
	}
	if got != "Themes:\n• Guidance" {
		t.Fatalf("interpretation was mutated: %q", got)
	}
}

func TestStoreVisionLifecycle(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	v := &Vision{Title: "Night", Description: "I saw a lion", Context: "after prayer"}
	if err := s.CreateVision(ctx, v); err != nil {
		t.Fatalf("create: %v", err)
	}
	if v.ID == "" || v.SubmittedAt.IsZero() {
		t.Fatalf("expected id and timestamp to be filled, got %+v", v)
	}

	got, err := s.GetVision(ctx, v.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Interpretation.Valid {
		t.Fatalf("expected NULL interpretation before attach")
	}
	if got.Title != "Night" || got.Context != "after prayer" {
		t.Fatalf("unexpected record %+v", got)
	}

	if err := s.AttachInterpretation(ctx, v.ID, "rendered"); err != nil {
		t.Fatalf("attach: %v", err)
	}
	got, err = s.GetVision(ctx, v.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.InterpretationText() != "rendered" {
		t.Fatalf("expected interpretation, got %q", got.InterpretationText())
	}

	if _, err := s.GetVision(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreListVisionsNewestFirst(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		v := &Vision{ID: id, Description: "d", SubmittedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := s.CreateVision(ctx, v); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	got, err := s.ListVisions(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "new" || got[1].ID != "mid" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestStoreResetSymbolsIsIdempotent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	entries := []symbols.Entry{
		{Symbol: "Water", Meaning: "Spirit", Category: "Elements", References: []string{"John 7:38"}},
		{Symbol: "Lion", Meaning: "Authority", Category: "Animals"},
	}

	for i := 0; i < 2; i++ {
		n, err := s.ResetSymbols(ctx, entries)
		if err != nil {
			t.Fatalf("reset %d: %v", i, err)
		}
		if n != 2 {
			t.Fatalf("expected 2 symbols, got %d", n)
		}
	}

	count, err := s.CountSymbols(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 stored symbols, got %d", count)
	}

	got, err := s.ListSymbols(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got[0].Symbol != "Water" || got[1].Symbol != "Lion" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if len(got[0].References) != 1 || got[0].References[0] != "John 7:38" {
		t.Fatalf("references not round-tripped: %+v", got[0].References)
	}
	if got[1].References == nil || len(got[1].References) != 0 {
		t.Fatalf("expected empty reference list, got %#v", got[1].References)
	}
}

func TestStoreResetSymbolsRollsBackOnDuplicate(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if _, err := s.ResetSymbols(ctx, []symbols.Entry{{Symbol: "Dove", Category: "Animals"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, err := s.ResetSymbols(ctx, []symbols.Entry{
		{Symbol: "Lion", Category: "Animals"},
		{Symbol: "lion", Category: "Animals"},
	})
	if err == nil {
		t.Fatalf("expected duplicate symbols to fail")
	}

	got, err := s.ListSymbols(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Symbol != "Dove" {
		t.Fatalf("expected previous table to survive, got %+v", got)
	}
}

func TestStorePing(t *testing.T) {
	s := setupTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if s.DB() == nil {
		t.Fatalf("expected underlying connection")
	}
	var _ DBExecutor = s.DB()
	var _ DBExecutor = (*sqlx.Tx)(nil)
}
