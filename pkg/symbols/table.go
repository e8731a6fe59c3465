package symbols

import "strings"

// Match is a symbol found in a piece of text. Symbol is the lowercased
// table name.
type Match struct {
	Symbol     string   `json:"symbol"`
	Category   string   `json:"category"`
	Meaning    string   `json:"meaning"`
	References []string `json:"references"`
}

// Table is an ordered, read-only view over the symbol entries. It is safe
// for concurrent use once built.
type Table struct {
	entries []Entry
	// alternatives[i] holds the lowercased names that select entries[i].
	alternatives [][]string
}

// NewTable indexes entries. Names such as "Serpent/Snake" are split so that
// either alternative selects the entry.
func NewTable(entries []Entry) *Table {
	t := &Table{
		entries:      make([]Entry, len(entries)),
		alternatives: make([][]string, len(entries)),
	}
	copy(t.entries, entries)
	for i, e := range entries {
		for _, alt := range strings.Split(e.Symbol, "/") {
			alt = strings.ToLower(strings.TrimSpace(alt))
			if alt != "" {
				t.alternatives[i] = append(t.alternatives[i], alt)
			}
		}
	}
	return t
}

// Entries returns a copy of the table in load order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len reports the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Find scans text for every known symbol by case-insensitive substring
// containment. Results follow table order; each entry matches at most once.
func (t *Table) Find(text string) []Match {
	lower := strings.ToLower(text)
	var found []Match
	for i, e := range t.entries {
		for _, alt := range t.alternatives[i] {
			if !strings.Contains(lower, alt) {
				continue
			}
			refs := make([]string, len(e.References))
			copy(refs, e.References)
			found = append(found, Match{
				Symbol:     strings.ToLower(e.Symbol),
				Category:   e.Category,
				Meaning:    e.Meaning,
				References: refs,
			})
			break
		}
	}
	return found
}
