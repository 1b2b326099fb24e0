package memory

// table is an id-keyed row set with predicate lookups. It is not
// synchronized; Storage guards every table with one lock.
type table[T any] struct {
	rows map[string]*T
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[string]*T)}
}

func (t *table[T]) put(id string, row *T) {
	t.rows[id] = row
}

func (t *table[T]) get(id string) (*T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) find(match func(*T) bool) (*T, bool) {
	for _, row := range t.rows {
		if match(row) {
			return row, true
		}
	}
	return nil, false
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

func (t *table[T]) removeWhere(match func(*T) bool) int {
	removed := 0
	for id, row := range t.rows {
		if match(row) {
			delete(t.rows, id)
			removed++
		}
	}
	return removed
}

func (t *table[T]) len() int {
	return len(t.rows)
}
