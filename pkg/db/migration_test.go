package db

import (
	"database/sql"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func tableColumns(t *testing.T, conn *sql.DB, table string) map[string]bool {
	t.Helper()
	rows, err := conn.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		t.Fatalf("pragmas: %v", err)
	}
	defer rows.Close()
	cols := map[string]bool{}
	for rows.Next() {
		var cid int
		var colName, ctype string
		var notnull, pk int
		var dfltVal interface{}
		if err := rows.Scan(&cid, &colName, &ctype, &notnull, &dfltVal, &pk); err != nil {
			t.Fatalf("scan col: %v", err)
		}
		cols[colName] = true
	}
	return cols
}

// TestInitDBCreatesSchema verifies a fresh database gets both tables with
// the expected columns, and that running the migration twice is harmless.
func TestInitDBCreatesSchema(t *testing.T) {
	dbConn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer dbConn.Close()
	dbConn.SetMaxOpenConns(1)

	if err := InitDB(dbConn); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	if err := InitDB(dbConn); err != nil {
		t.Fatalf("InitDB second run failed: %v", err)
	}

	visions := tableColumns(t, dbConn, "visions")
	for _, c := range []string{"id", "title", "description", "context", "submitted_at", "interpretation"} {
		if !visions[c] {
			t.Fatalf("expected column %s in visions, got %v", c, visions)
		}
	}

	syms := tableColumns(t, dbConn, "symbols")
	for _, c := range []string{"position", "symbol", "meaning", "category", "scripture_references"} {
		if !syms[c] {
			t.Fatalf("expected column %s in symbols, got %v", c, syms)
		}
	}
}

func TestInitDBNamesFailingStatement(t *testing.T) {
	dbConn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer dbConn.Close()
	dbConn.SetMaxOpenConns(1)

	// A view named visions satisfies CREATE TABLE IF NOT EXISTS but cannot
	// be indexed, so the second statement fails.
	if _, err := dbConn.Exec(`CREATE VIEW visions AS SELECT 1 AS submitted_at`); err != nil {
		t.Fatalf("create view: %v", err)
	}
	err = InitDB(dbConn)
	if err == nil {
		t.Fatal("expected InitDB to fail")
	}
	if !strings.Contains(err.Error(), "schema statement 2 (CREATE INDEX IF NOT EXISTS idx_visions_submitted_at") {
		t.Fatalf("expected the failing statement in the error, got %v", err)
	}
	if cols := tableColumns(t, dbConn, "symbols"); len(cols) != 0 {
		t.Fatalf("expected the schema transaction to roll back, got symbols columns %v", cols)
	}
}

func TestSchemaStatementsSkipBlanks(t *testing.T) {
	stmts := schemaStatements()
	if len(stmts) != 3 {
		t.Fatalf("expected 3 schema statements, got %d", len(stmts))
	}
	if got := summary(stmts[0]); got != "CREATE TABLE IF NOT EXISTS visions (" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestSchemaRejectsBlankDescription(t *testing.T) {
	dbConn := setupTestDB(t)
	defer dbConn.Close()

	_, err := dbConn.Exec(`INSERT INTO visions (id, description, submitted_at) VALUES ('x', '   ', CURRENT_TIMESTAMP)`)
	if err == nil {
		t.Fatalf("expected check constraint failure for blank description")
	}
}

func TestSchemaSymbolNamesAreCaseInsensitive(t *testing.T) {
	dbConn := setupTestDB(t)
	defer dbConn.Close()

	if _, err := dbConn.Exec(`INSERT INTO symbols (position, symbol, meaning, category) VALUES (0, 'Lion', 'm', 'Animals')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := dbConn.Exec(`INSERT INTO symbols (position, symbol, meaning, category) VALUES (1, 'LION', 'm', 'Animals')`); err == nil {
		t.Fatalf("expected unique violation for differently cased symbol")
	}
}
