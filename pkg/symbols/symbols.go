// Package symbols holds the static table of symbolic motifs and their
// meanings. The table is loaded once and treated as read-only.
package symbols

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed symbols.yaml
var embedded []byte

// Entry is one row of the symbol table.
type Entry struct {
	Symbol     string   `yaml:"symbol" json:"symbol" db:"symbol"`
	Meaning    string   `yaml:"meaning" json:"meaning" db:"meaning"`
	Category   string   `yaml:"category" json:"category" db:"category"`
	References []string `yaml:"references" json:"references" db:"-"`
}

// Load parses the table shipped with the binary.
func Load() ([]Entry, error) {
	return parse(embedded, false)
}

// LoadFile reads a replacement table. Files ending in .json are decoded as
// JSON, everything else as YAML.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data, strings.EqualFold(filepath.Ext(path), ".json"))
}

func parse(data []byte, isJSON bool) ([]Entry, error) {
	var entries []Entry
	if isJSON {
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse symbol table: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse symbol table: %w", err)
	}

	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		name := strings.TrimSpace(e.Symbol)
		if name == "" {
			return nil, fmt.Errorf("symbol table entry %d has no name", i)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate symbol %q", name)
		}
		seen[key] = struct{}{}
		entries[i].Symbol = name
	}
	return entries, nil
}

// GroupByCategory buckets entries by category, keeping table order inside
// each bucket.
func GroupByCategory(entries []Entry) map[string][]Entry {
	groups := make(map[string][]Entry)
	for _, e := range entries {
		groups[e.Category] = append(groups[e.Category], e)
	}
	return groups
}

// Categories returns the distinct categories in sorted order.
func Categories(entries []Entry) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range entries {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		out = append(out, e.Category)
	}
	sort.Strings(out)
	return out
}
