package docstore

import (
	"encoding/json"
	"fmt"
)

// Predicate reports whether a decoded document matches. Constructors
// for equality and compound-key ("fragment") matches live with the
// record types that know their own identity fields.
type Predicate[T any] func(T) bool

// Table is a typed view over one named table of a Store. Documents are
// decoded on every read so callers always observe the persisted state.
type Table[T any] struct {
	store *Store
	name  string
}

func TableOf[T any](store *Store, name string) Table[T] {
	return Table[T]{store: store, name: name}
}

func (t Table[T]) decode() ([]T, error) {
	raw := t.store.tables[t.name]
	docs := make([]T, len(raw))
	for i, buf := range raw {
		err := json.Unmarshal(buf, &docs[i])
		if err != nil {
			return nil, fmt.Errorf("table %s: malformed document %d: %w", t.name, i, err)
		}
	}
	return docs, nil
}

func (t Table[T]) encode(docs []T) error {
	raw := make([]json.RawMessage, len(docs))
	for i, doc := range docs {
		buf, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("table %s: %w", t.name, err)
		}
		raw[i] = buf
	}
	t.store.tables[t.name] = raw
	return t.store.flush()
}

func (t Table[T]) Len() int {
	return len(t.store.tables[t.name])
}

// All returns every document in insertion order.
func (t Table[T]) All() ([]T, error) {
	return t.decode()
}

func (t Table[T]) Search(match Predicate[T]) ([]T, error) {
	docs, err := t.decode()
	if err != nil {
		return nil, err
	}
	var out []T
	for _, doc := range docs {
		if match(doc) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (t Table[T]) Contains(match Predicate[T]) (bool, error) {
	docs, err := t.decode()
	if err != nil {
		return false, err
	}
	for _, doc := range docs {
		if match(doc) {
			return true, nil
		}
	}
	return false, nil
}

func (t Table[T]) Insert(doc T) error {
	buf, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("table %s: %w", t.name, err)
	}
	t.store.tables[t.name] = append(t.store.tables[t.name], buf)
	return t.store.flush()
}

// Update applies mutate to every matching document and reports how
// many were touched.
func (t Table[T]) Update(mutate func(*T), match Predicate[T]) (int, error) {
	docs, err := t.decode()
	if err != nil {
		return 0, err
	}
	updated := 0
	for i := range docs {
		if match(docs[i]) {
			mutate(&docs[i])
			updated++
		}
	}
	if updated == 0 {
		return 0, nil
	}
	return updated, t.encode(docs)
}

// Remove deletes every matching document and reports how many were
// removed.
func (t Table[T]) Remove(match Predicate[T]) (int, error) {
	docs, err := t.decode()
	if err != nil {
		return 0, err
	}
	kept := docs[:0:0]
	for _, doc := range docs {
		if !match(doc) {
			kept = append(kept, doc)
		}
	}
	removed := len(docs) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, t.encode(kept)
}
