// Package label implements the first-sight-allocates label interning
// scheme shared by the Whitespace, DT, and Assembly front-ends (spec.md
// §4.2.1): the same textual label always resolves to the same id, and the
// k-th distinct label text seen resolves to id k.
package label

// Table interns label text to positive int64 ids, allocated in the order
// first seen, starting at 1.
type Table struct {
	ids  map[string]int64
	next int64
}

// NewTable returns an empty Table whose counter starts at 1.
func NewTable() *Table {
	return &Table{ids: make(map[string]int64), next: 1}
}

// ID returns the id for name, allocating a fresh one on first sight.
func (t *Table) ID(name string) int64 {
	if id, ok := t.ids[name]; ok {
		return id
	}
	id := t.next
	t.next++
	t.ids[name] = id
	return id
}
