package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/blockfall/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, id.ArchetypeId())
			assert.Equal(t, tt.index, id.Index())
		})
	}
}

func TestSpawnAndGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3, Y: 4}, Name("tile"))

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 3, Y: 4}, *pos)

	name := storage.GetComponent(id, reflect.TypeFor[Name]())
	require.NotNil(t, name)
	assert.Equal(t, Name("tile"), *name.(*Name))

	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Position]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
}

func TestComponentOrderDoesNotMatter(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(Velocity{}, Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotEqual(t, a.Index(), b.Index())
}

func TestComponentsArePointersIntoStorage(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1})

	ecs.ReadComponent[Position](storage, id).X = 42

	assert.Equal(t, float32(42), ecs.ReadComponent[Position](storage, id).X)
}

func TestDeleteReusesSlot(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1})
	storage.Spawn(Position{X: 2})
	assert.Equal(t, 2, storage.Count())

	storage.Delete(first)
	assert.Equal(t, 1, storage.Count())
	assert.Nil(t, ecs.ReadComponent[Position](storage, first))

	reused := storage.Spawn(Position{X: 3})
	assert.Equal(t, first, reused)
	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, reused).X)

	// unknown ids are ignored
	storage.Delete(ecs.NewEntityId(12345, 0))
	assert.Equal(t, 2, storage.Count())
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
	assert.Panics(t, func() { storage.Spawn(struct{ Unregistered int }{}) })
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.True(t, storage.AddSingleton(Health{Current: 5, Max: 10}))
	assert.False(t, storage.AddSingleton(Health{Current: 1, Max: 1}), "singletons are write-once")

	var health *Health
	require.True(t, storage.ReadSingleton(&health))
	assert.Equal(t, Health{Current: 5, Max: 10}, *health)

	var missing *Velocity
	assert.False(t, storage.ReadSingleton(&missing))
	assert.Nil(t, missing)

	assert.Panics(t, func() { storage.ReadSingleton(health) })
}

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stats := storage.CollectStats()
	assert.Zero(t, stats.ArchetypeCount)
	assert.Zero(t, stats.TotalEntityCount)
	assert.Zero(t, stats.SingletonCount)

	storage.Spawn(Position{}, Name("a"))
	storage.Spawn(Position{}, Name("b"))
	storage.Spawn(Velocity{}, Name("c"))
	ecs.NewSingleton[Health](storage, Health{Max: 3})

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Health"}, stats.SingletonTypes)

	counts := []int{}
	for _, arch := range stats.ArchetypeBreakdown {
		assert.Len(t, arch.ComponentTypes, 2)
		counts = append(counts, arch.EntityCount)
	}
	assert.ElementsMatch(t, []int{2, 1}, counts)
}
