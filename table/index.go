package table

import (
	"sort"
	"strings"

	"github.com/miniql/miniql/errs"
)

// Kind selects an Index's storage discipline.
type Kind int

const (
	// Ordered keeps a sorted multimap keyed by the stringified value of the
	// index's first column, permitting duplicate keys.
	Ordered Kind = iota
	// Unordered keeps a hash map keyed by the pipe-joined stringification of
	// every indexed column.
	Unordered
)

// ParseKind maps a CREATE INDEX kind keyword to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(s) {
	case "ORDERED":
		return Ordered, nil
	case "UNORDERED":
		return Unordered, nil
	default:
		return 0, errs.BadIndexKind.New(s)
	}
}

type orderedEntry struct {
	key string
	id  int64
}

// Index is a secondary index over one or more columns of a Table, maintained
// incrementally on every insert, update, and delete rather than rebuilt.
type Index struct {
	Kind    Kind
	Columns []string

	ordered   []orderedEntry      // Kind == Ordered, sorted by key
	unordered map[string][]int64  // Kind == Unordered
}

func newIndex(kind Kind, columns []string) *Index {
	idx := &Index{Kind: kind, Columns: columns}
	if kind == Unordered {
		idx.unordered = make(map[string][]int64)
	}
	return idx
}

// key computes this index's key for a row, given the owning schema.
func (idx *Index) key(schema *Schema, row Row) (string, error) {
	if idx.Kind == Ordered {
		pos, ok := schema.Pos(idx.Columns[0])
		if !ok {
			return "", errs.UnknownColumn.New(idx.Columns[0])
		}
		return row[pos].String(), nil
	}
	parts := make([]string, len(idx.Columns))
	for i, col := range idx.Columns {
		pos, ok := schema.Pos(col)
		if !ok {
			return "", errs.UnknownColumn.New(col)
		}
		parts[i] = row[pos].String()
	}
	return strings.Join(parts, "|"), nil
}

func (idx *Index) insert(key string, id int64) {
	if idx.Kind == Unordered {
		idx.unordered[key] = append(idx.unordered[key], id)
		return
	}
	i := sort.Search(len(idx.ordered), func(i int) bool { return idx.ordered[i].key >= key })
	idx.ordered = append(idx.ordered, orderedEntry{})
	copy(idx.ordered[i+1:], idx.ordered[i:])
	idx.ordered[i] = orderedEntry{key: key, id: id}
}

func (idx *Index) remove(key string, id int64) {
	if idx.Kind == Unordered {
		ids := idx.unordered[key]
		for i, existing := range ids {
			if existing == id {
				idx.unordered[key] = append(ids[:i], ids[i+1:]...)
				break
			}
		}
		if len(idx.unordered[key]) == 0 {
			delete(idx.unordered, key)
		}
		return
	}
	lo := sort.Search(len(idx.ordered), func(i int) bool { return idx.ordered[i].key >= key })
	for i := lo; i < len(idx.ordered) && idx.ordered[i].key == key; i++ {
		if idx.ordered[i].id == id {
			idx.ordered = append(idx.ordered[:i], idx.ordered[i+1:]...)
			return
		}
	}
}

// Lookup returns the row IDs stored under key.
func (idx *Index) Lookup(key string) []int64 {
	if idx.Kind == Unordered {
		return idx.unordered[key]
	}
	lo := sort.Search(len(idx.ordered), func(i int) bool { return idx.ordered[i].key >= key })
	var out []int64
	for i := lo; i < len(idx.ordered) && idx.ordered[i].key == key; i++ {
		out = append(out, idx.ordered[i].id)
	}
	return out
}
