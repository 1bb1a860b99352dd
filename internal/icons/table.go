// Package icons holds the ordered icon table and the decoded sprite set.
//
// The table maps a quantized brightness level k in [0, Len()) to an icon
// identifier. Identifiers may repeat when the icon set is coarser than the
// number of levels. Neither the table nor the loaded images change after
// construction.
package icons

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	ErrEmptyTable = errors.New("icons: table has no entries")
	ErrEmptyID    = errors.New("icons: empty identifier")
)

type Table struct {
	ids []string
}

func NewTable(ids []string) (*Table, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyTable
	}
	cp := make([]string, len(ids))
	for i, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w at level %d", ErrEmptyID, i)
		}
		cp[i] = id
	}
	return &Table{ids: cp}, nil
}

// LoadMapping reads a JSON array of identifiers, one per level.
func LoadMapping(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("icons: parse %s: %w", path, err)
	}
	return NewTable(ids)
}

// Len is the number of brightness levels L.
func (t *Table) Len() int { return len(t.ids) }

// At returns the identifier for level.
func (t *Table) At(level int) string { return t.ids[level] }

func (t *Table) IDs() []string {
	cp := make([]string, len(t.ids))
	copy(cp, t.ids)
	return cp
}

// Distinct returns each identifier once, in first-seen order.
func (t *Table) Distinct() []string {
	seen := make(map[string]struct{}, len(t.ids))
	out := make([]string, 0, len(t.ids))
	for _, id := range t.ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Counts reports how many levels map to each identifier.
func (t *Table) Counts() map[string]int {
	counts := make(map[string]int)
	for _, id := range t.ids {
		counts[id]++
	}
	return counts
}
