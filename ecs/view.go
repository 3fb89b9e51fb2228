package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View reads entities through a struct of component pointers, e.g.
//
//	ecs.NewView[struct {
//		*Transform
//		*Sprite
//	}](storage)
//
// Embedded fields are required. Named fields tagged `ecs:"optional"` are
// filled when present and left nil otherwise.
type View[T any] struct {
	storage *Storage
	fields  []viewField
}

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
}

// NewView builds a view over storage. It panics if T is not a struct of
// pointer fields.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Pointer {
			panic("View struct fields must be pointer types")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = true
		}
		v.fields = append(v.fields, viewField{
			typ:      field.Type.Elem(),
			offset:   field.Offset,
			optional: optional,
		})
	}
	return v
}

func (v *View[T]) matches(archetype *Archetype) bool {
	for _, f := range v.fields {
		if !f.optional && !archetype.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

// columnsFor maps each view field to a column of archetype, -1 when absent.
func (v *View[T]) columnsFor(archetype *Archetype) []int {
	cols := make([]int, len(v.fields))
	for i, f := range v.fields {
		cols[i] = archetype.columnIndex(f.typ)
	}
	return cols
}

func (v *View[T]) populate(dst unsafe.Pointer, archetype *Archetype, index int, cols []int) bool {
	for i, col := range cols {
		fieldPtr := (*unsafe.Pointer)(unsafe.Add(dst, v.fields[i].offset))

		var component any
		if col >= 0 {
			component = archetype.columns[col].Get(index)
		}
		if component == nil {
			if !v.fields[i].optional {
				return false
			}
			*fieldPtr = nil
			continue
		}
		*fieldPtr = (*iface)(unsafe.Pointer(&component)).data
	}
	return true
}

// Fill populates dst for one entity. It returns false when the entity is
// missing a required component.
func (v *View[T]) Fill(id EntityId, dst *T) bool {
	archetype := v.storage.Archetype(id)
	if archetype == nil {
		return false
	}
	return v.populate(unsafe.Pointer(dst), archetype, int(id.Index()), v.columnsFor(archetype))
}

// Get returns the view of one entity, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

func (v *View[T]) iterArchetype(archetype *Archetype, yield func(EntityId, T) bool) bool {
	if len(archetype.columns) == 0 {
		return true
	}
	cols := v.columnsFor(archetype)

	var result T
	dst := unsafe.Pointer(&result)
	for index := range archetype.columns[0].Iter() {
		if !v.populate(dst, archetype, index, cols) {
			continue
		}
		if !yield(NewEntityId(archetype.id, uint32(index)), result) {
			return false
		}
	}
	return true
}

// Iter yields every matching entity with its populated view.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for archetype := range v.storage.Archetypes() {
			if !v.matches(archetype) {
				continue
			}
			if !v.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

// Values is Iter without the entity ids.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (v *View[T]) Count() int {
	n := 0
	for range v.Iter() {
		n++
	}
	return n
}
