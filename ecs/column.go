package ecs

import (
	"iter"
	"reflect"
)

// column is type-erased storage for one component type inside an archetype.
type column interface {
	Append(item any) int
	Get(index int) any
	Delete(index int)
	Len() int
	Iter() iter.Seq[int]
}

// ComponentRegistry maps component types to column constructors. Every
// component type has to be registered before an entity carrying it can be
// spawned.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent makes T usable as a component in storages built from r.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() column {
		return &typedColumn[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory, ok := r.factories[t]
	if !ok {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}

// typedColumn keeps values densely in a slice. Deleted slots are zeroed and
// recycled so the index of a live entity never moves.
type typedColumn[T any] struct {
	items []T
	live  []bool
	free  []int
	count int
}

func (c *typedColumn[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		return -1
	}

	c.count++
	if n := len(c.free); n > 0 {
		index := c.free[n-1]
		c.free = c.free[:n-1]
		c.items[index] = value
		c.live[index] = true
		return index
	}

	c.items = append(c.items, value)
	c.live = append(c.live, true)
	return len(c.items) - 1
}

func (c *typedColumn[T]) Get(index int) any {
	if index < 0 || index >= len(c.items) || !c.live[index] {
		return nil
	}
	return &c.items[index]
}

func (c *typedColumn[T]) Delete(index int) {
	if index < 0 || index >= len(c.items) || !c.live[index] {
		return
	}
	var zero T
	c.items[index] = zero
	c.live[index] = false
	c.free = append(c.free, index)
	c.count--
}

func (c *typedColumn[T]) Len() int {
	return c.count
}

func (c *typedColumn[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, ok := range c.live {
			if ok && !yield(i) {
				return
			}
		}
	}
}
