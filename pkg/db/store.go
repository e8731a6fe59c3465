package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/japaniel/visionary/pkg/symbols"
)

var (
	// ErrNotFound is returned when a vision id does not exist.
	ErrNotFound = errors.New("vision not found")
	// ErrInterpretationSet is returned when a vision already carries an
	// interpretation.
	ErrInterpretationSet = errors.New("interpretation already attached")
)

// DBExecutor is an interface that allows functions to accept *sql.DB,
// *sql.Tx, *sqlx.DB or *sqlx.Tx.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// isBusyErr reports whether err is a transient sqlite lock error.
func isBusyErr(err error) bool {
	if err == nil {
		return false
	}
	var se sqlite3.Error
	if errors.As(err, &se) && (se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "database is locked") || strings.Contains(s, "busy")
}

// InsertVision stores a new vision record without an interpretation.
func InsertVision(ctx context.Context, db DBExecutor, v Vision) error {
	if strings.TrimSpace(v.ID) == "" {
		return fmt.Errorf("vision id must be non-empty")
	}
	if strings.TrimSpace(v.Description) == "" {
		return fmt.Errorf("vision description must be non-empty")
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO visions (id, title, description, context, submitted_at) VALUES (?, ?, ?, ?, ?)`,
		v.ID, v.Title, v.Description, v.Context, v.SubmittedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert vision: %w", err)
	}
	return nil
}

// SetInterpretation attaches the rendered interpretation to a vision. It
// succeeds only while the interpretation is still NULL.
func SetInterpretation(ctx context.Context, db DBExecutor, id, interpretation string) error {
	res, err := db.ExecContext(ctx,
		`UPDATE visions SET interpretation = ? WHERE id = ? AND interpretation IS NULL`,
		interpretation, id)
	if err != nil {
		return fmt.Errorf("set interpretation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set interpretation: %w", err)
	}
	if n == 1 {
		return nil
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM visions WHERE id = ?`, id).Scan(&count); err != nil {
		return fmt.Errorf("check vision: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrInterpretationSet
}

// ReplaceSymbols drops every stored symbol and inserts entries in order.
// Run it inside a transaction so readers never see a partial table.
func ReplaceSymbols(ctx context.Context, db DBExecutor, entries []symbols.Entry) (int, error) {
	if _, err := db.ExecContext(ctx, `DELETE FROM symbols`); err != nil {
		return 0, fmt.Errorf("clear symbols: %w", err)
	}
	for i, e := range entries {
		refs := e.References
		if refs == nil {
			refs = []string{}
		}
		refsJSON, err := json.Marshal(refs)
		if err != nil {
			return 0, err
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO symbols (position, symbol, meaning, category, scripture_references) VALUES (?, ?, ?, ?, ?)`,
			i, e.Symbol, e.Meaning, e.Category, string(refsJSON)); err != nil {
			return 0, fmt.Errorf("insert symbol %q: %w", e.Symbol, err)
		}
	}
	return len(entries), nil
}

// Store is the record store used by the service layer.
type Store struct {
	db            *sqlx.DB
	resetAttempts uint
	resetDelay    time.Duration
}

// Open opens (creating if needed) the sqlite database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// Each connection would otherwise see its own empty database.
		conn.SetMaxOpenConns(1)
	}
	if err := InitDB(conn.DB); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return NewStore(conn), nil
}

// NewStore wraps an already migrated connection.
func NewStore(conn *sqlx.DB) *Store {
	return &Store{
		db:            conn,
		resetAttempts: 5,
		resetDelay:    50 * time.Millisecond,
	}
}

// DB exposes the underlying connection for transactional writers.
func (s *Store) DB() *sqlx.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateVision inserts v, filling in its id and submission time when unset.
func (s *Store) CreateVision(ctx context.Context, v *Vision) error {
	if v.ID == "" {
		v.ID = NewVisionID()
	}
	if v.SubmittedAt.IsZero() {
		v.SubmittedAt = time.Now().UTC()
	}
	return InsertVision(ctx, s.db, *v)
}

// AttachInterpretation sets the interpretation of an existing vision once.
func (s *Store) AttachInterpretation(ctx context.Context, id, interpretation string) error {
	return SetInterpretation(ctx, s.db, id, interpretation)
}

// GetVision returns a single vision or ErrNotFound.
func (s *Store) GetVision(ctx context.Context, id string) (Vision, error) {
	var v Vision
	err := s.db.GetContext(ctx, &v,
		`SELECT id, title, description, context, submitted_at, interpretation FROM visions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Vision{}, ErrNotFound
	}
	if err != nil {
		return Vision{}, fmt.Errorf("get vision: %w", err)
	}
	return v, nil
}

// ListVisions returns the most recent visions first.
func (s *Store) ListVisions(ctx context.Context, limit int) ([]Vision, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []Vision
	err := s.db.SelectContext(ctx, &out,
		`SELECT id, title, description, context, submitted_at, interpretation FROM visions ORDER BY submitted_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list visions: %w", err)
	}
	return out, nil
}

// ResetSymbols replaces the stored symbol table in one transaction. Lock
// contention is retried; any other failure aborts immediately.
func (s *Store) ResetSymbols(ctx context.Context, entries []symbols.Entry) (int, error) {
	var count int
	err := retry.Do(
		func() error {
			n, err := s.replaceSymbolsTx(ctx, entries)
			if err != nil {
				if !isBusyErr(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			count = n
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(s.resetAttempts),
		retry.Delay(s.resetDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return 0, fmt.Errorf("reset symbols: %w", err)
	}
	return count, nil
}

func (s *Store) replaceSymbolsTx(ctx context.Context, entries []symbols.Entry) (int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	n, err := ReplaceSymbols(ctx, tx, entries)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

// ListSymbols returns the stored symbol table in load order.
func (s *Store) ListSymbols(ctx context.Context) ([]symbols.Entry, error) {
	var rows []symbolRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT position, symbol, meaning, category, scripture_references FROM symbols ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list symbols: %w", err)
	}
	out := make([]symbols.Entry, 0, len(rows))
	for _, r := range rows {
		e, err := r.entry()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// CountSymbols reports how many symbols are stored.
func (s *Store) CountSymbols(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM symbols`); err != nil {
		return 0, fmt.Errorf("count symbols: %w", err)
	}
	return n, nil
}
