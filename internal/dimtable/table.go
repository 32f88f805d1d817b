// Package dimtable provides the read-only fitting dimension reference table.
package dimtable

import (
	"fmt"
	"sort"

	"github.com/piwi3910/SpoolCut/internal/model"
)

// Table is an immutable set of dimension rows keyed by nominal diameter.
// It is safe for concurrent use.
type Table struct {
	rows  []model.DimensionRow
	index map[int]int
}

// New builds a table from rows. The rows are copied. An empty slice or a
// repeated nominal diameter is rejected.
func New(rows []model.DimensionRow) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("dimension table is empty")
	}
	t := &Table{
		rows:  make([]model.DimensionRow, len(rows)),
		index: make(map[int]int, len(rows)),
	}
	for i, r := range rows {
		if _, dup := t.index[r.NominalDiameter]; dup {
			return nil, fmt.Errorf("duplicate nominal diameter DN%d", r.NominalDiameter)
		}
		t.rows[i] = r
		t.index[r.NominalDiameter] = i
	}
	return t, nil
}

// Lookup returns the row for dn. When dn is not in the table the first row
// is returned instead of an error: callers have always relied on this
// lenient default, so it must not be turned into a failure. Use Has to
// detect the substitution.
func (t *Table) Lookup(dn int) model.DimensionRow {
	if i, ok := t.index[dn]; ok {
		return t.rows[i]
	}
	return t.rows[0]
}

// Has reports whether dn has its own row.
func (t *Table) Has(dn int) bool {
	_, ok := t.index[dn]
	return ok
}

// Rows returns a copy of all rows in table order.
func (t *Table) Rows() []model.DimensionRow {
	out := make([]model.DimensionRow, len(t.rows))
	copy(out, t.rows)
	return out
}

// NominalDiameters returns the diameters in ascending order.
func (t *Table) NominalDiameters() []int {
	dns := make([]int, 0, len(t.rows))
	for _, r := range t.rows {
		dns = append(dns, r.NominalDiameter)
	}
	sort.Ints(dns)
	return dns
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}
