package ecs

import (
	"reflect"
	"slices"
	"strings"
)

// Archetype groups every entity that has exactly the same set of component
// types. Each component type gets its own column and an entity's slot index
// is shared across all columns.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
	}
	for i, t := range types {
		a.columns[i] = registry.newColumn(t)
	}
	return a
}

// ID returns the archetype hash.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types, sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

// HasComponent reports whether t is part of this archetype.
func (a *Archetype) HasComponent(t reflect.Type) bool {
	return slices.Contains(a.types, t)
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	return slices.Index(a.types, t)
}

// spawn appends one value per column. components must already match the
// archetype's types one-to-one.
func (a *Archetype) spawn(components []any) uint32 {
	var index int
	for _, c := range components {
		idx := a.columnIndex(componentType(c))
		if idx < 0 {
			continue
		}
		index = a.columns[idx].Append(c)
	}
	return uint32(index)
}

func (a *Archetype) component(index uint32, t reflect.Type) any {
	idx := a.columnIndex(t)
	if idx < 0 {
		return nil
	}
	return a.columns[idx].Get(int(index))
}

func (a *Archetype) delete(index uint32) {
	for _, c := range a.columns {
		c.Delete(int(index))
	}
}

// Iter yields the ids of every live entity in the archetype.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for index := range a.columns[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}

// String lists the component type names, mostly for debug output.
func (a *Archetype) String() string {
	names := make([]string, len(a.types))
	for i, t := range a.types {
		names[i] = t.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}
