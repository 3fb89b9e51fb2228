package ecs_test

import (
	"fmt"

	"github.com/plus3/blockfall/ecs"
)

type Board struct {
	Rows, Cols int
}

type Score struct {
	Points int
}

// ExampleNewSingleton shows that singletons hold world-wide state that is
// not attached to any entity.
func ExampleNewSingleton() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	board := ecs.NewSingleton[Board](storage, Board{Rows: 20, Cols: 10})
	fmt.Printf("board: %dx%d\n", board.Get().Rows, board.Get().Cols)

	// A second accessor sees the same value; the initializer is ignored.
	again := ecs.NewSingleton[Board](storage, Board{Rows: 1, Cols: 1})
	fmt.Printf("again: %dx%d\n", again.Get().Rows, again.Get().Cols)

	// Output:
	// board: 20x10
	// again: 20x10
}

type ScoreSystem struct {
	Score ecs.Singleton[Score]
}

func (s *ScoreSystem) Execute(frame *ecs.UpdateFrame) {
	if score := s.Score.Get(); score != nil {
		score.Points += 100
	}
}

// ExampleSingleton_systemField shows a Singleton field bound by the
// scheduler. The field resolves lazily, so the value may be added after
// the system is registered.
func ExampleSingleton_systemField() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ScoreSystem{})

	scheduler.Once(0)
	fmt.Println("exists after add:", ecs.NewSingleton[Score](storage).Exists())

	scheduler.Once(0)
	scheduler.Once(0)

	var score *Score
	storage.ReadSingleton(&score)
	fmt.Println("points:", score.Points)

	// Output:
	// exists after add: true
	// points: 200
}
