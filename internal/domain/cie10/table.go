package cie10

import (
	"fmt"
	"strings"
)

// Entry holds the official description and the typical leave-duration range
// (in days) for one CIE-10 code, per occupational-medicine protocols.
type Entry struct {
	Description string `yaml:"description"`
	MinDays     int    `yaml:"minDays"`
	MaxDays     int    `yaml:"maxDays"`
}

// Table maps CIE-10 codes to their reference entries. Loaded once at process
// start and read-only afterwards, so it is safe to share across requests.
type Table struct {
	entries map[string]Entry
}

// NewTable validates and builds a table. An empty or inconsistent table is a
// configuration defect and must abort startup.
func NewTable(entries map[string]Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("cie10: reference table is empty")
	}
	normalized := make(map[string]Entry, len(entries))
	for code, e := range entries {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			return nil, fmt.Errorf("cie10: entry with empty code")
		}
		if e.Description == "" {
			return nil, fmt.Errorf("cie10: code %s has no description", code)
		}
		if e.MinDays < 0 || e.MaxDays < e.MinDays {
			return nil, fmt.Errorf("cie10: code %s has invalid day range [%d,%d]", code, e.MinDays, e.MaxDays)
		}
		normalized[code] = e
	}
	return &Table{entries: normalized}, nil
}

// Lookup finds an entry by exact code, then by the code truncated before its
// first dot (J06.9 falls back to J06). The second return is the code the
// entry was actually found under.
func (t *Table) Lookup(code string) (Entry, string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if e, ok := t.entries[code]; ok {
		return e, code, true
	}
	if i := strings.IndexByte(code, '.'); i > 0 {
		prefix := code[:i]
		if e, ok := t.entries[prefix]; ok {
			return e, prefix, true
		}
	}
	return Entry{}, "", false
}

// Len reports the number of codes in the table.
func (t *Table) Len() int { return len(t.entries) }
