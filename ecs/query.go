package ecs

import "iter"

// Query is a View meant to live as a field of a System. The Scheduler
// initializes it on Register; it also remembers which archetypes matched so
// repeated frames skip the type check until a new archetype appears.
type Query[T any] struct {
	view     *View[T]
	storage  *Storage
	matched  []*Archetype
	seenArch int
}

// NewQuery creates a ready-to-use query outside of a scheduler.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.matched = nil
	q.seenArch = -1
}

func (q *Query[T]) refresh() {
	if q.view == nil {
		panic("Query used before Init")
	}
	count := q.storage.archetypes.Len()
	if count == q.seenArch {
		return
	}
	q.matched = q.matched[:0]
	for archetype := range q.storage.Archetypes() {
		if q.view.matches(archetype) {
			q.matched = append(q.matched, archetype)
		}
	}
	q.seenArch = count
}

// Iter yields every matching entity with its populated view.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.refresh()
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range q.matched {
			if !q.view.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

// Values is Iter without the entity ids.
func (q *Query[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range q.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	n := 0
	for range q.Iter() {
		n++
	}
	return n
}
