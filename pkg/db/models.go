package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/japaniel/visionary/pkg/symbols"
)

// Vision is a submitted narrative and, once computed, its interpretation.
type Vision struct {
	ID             string         `db:"id" json:"id"`
	Title          string         `db:"title" json:"title"`
	Description    string         `db:"description" json:"description"`
	Context        string         `db:"context" json:"context"`
	SubmittedAt    time.Time      `db:"submitted_at" json:"submitted_at"`
	Interpretation sql.NullString `db:"interpretation" json:"-"`
}

// InterpretationText returns the attached interpretation or "".
func (v Vision) InterpretationText() string {
	if v.Interpretation.Valid {
		return v.Interpretation.String
	}
	return ""
}

// NewVisionID returns a fresh record id.
func NewVisionID() string {
	return uuid.NewString()
}

// symbolRow is the stored form of a symbols.Entry.
type symbolRow struct {
	Position   int    `db:"position"`
	Symbol     string `db:"symbol"`
	Meaning    string `db:"meaning"`
	Category   string `db:"category"`
	References string `db:"scripture_references"`
}

func (r symbolRow) entry() (symbols.Entry, error) {
	e := symbols.Entry{
		Symbol:   r.Symbol,
		Meaning:  r.Meaning,
		Category: r.Category,
	}
	if r.References != "" {
		if err := json.Unmarshal([]byte(r.References), &e.References); err != nil {
			return symbols.Entry{}, fmt.Errorf("decode references for %q: %w", r.Symbol, err)
		}
	}
	return e, nil
}
