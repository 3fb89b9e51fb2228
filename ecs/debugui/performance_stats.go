package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/ecs"
)

// FrameHistory is a fixed-size ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
}

// NewFrameHistory keeps the last size frame times.
func NewFrameHistory(size int) *FrameHistory {
	if size < 1 {
		size = 1
	}
	return &FrameHistory{samples: make([]float32, size)}
}

// Push records one frame that took dt seconds.
func (h *FrameHistory) Push(dt float64) {
	h.samples[h.next] = float32(dt * 1000)
	h.next = (h.next + 1) % len(h.samples)
	if h.filled < len(h.samples) {
		h.filled++
	}
}

// Average returns the mean of the recorded frame times, or 0 when empty.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, s := range h.samples[:h.filled] {
		sum += s
	}
	return sum / float32(h.filled)
}

// Samples returns the ring in storage order, for plotting.
func (h *FrameHistory) Samples() []float32 {
	return h.samples
}

// StatsWindow shows storage and scheduler statistics.
type StatsWindow struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	History   *FrameHistory

	timer frameTimer
}

// NewStatsWindow returns a window reporting on storage and scheduler.
func NewStatsWindow(storage *ecs.Storage, scheduler *ecs.Scheduler) *StatsWindow {
	return &StatsWindow{
		Storage:   storage,
		Scheduler: scheduler,
		History:   NewFrameHistory(120),
	}
}

// Item wraps the window as an ImguiItem ready to spawn.
func (w *StatsWindow) Item() ImguiItem {
	return ImguiItem{Render: w.Render}
}

func (w *StatsWindow) Render() {
	w.History.Push(w.timer.tick())

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	if !imgui.BeginV("ECS Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := w.Storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	avg := w.History.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}
	samples := w.History.Samples()
	imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))

	if imgui.TreeNodeStr("Archetypes") {
		renderArchetypeTable(stats)
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, name := range stats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	if w.Scheduler != nil && imgui.TreeNodeStr("Systems") {
		for _, sys := range w.Scheduler.GetStats().Systems {
			imgui.BulletText(fmt.Sprintf("%s: %d runs, avg %s, max %s",
				sys.Name, sys.ExecutionCount, sys.AvgDuration, sys.MaxDuration))
		}
		imgui.TreePop()
	}

	imgui.End()
}

type frameTimer struct {
	last time.Time
}

// tick returns the seconds since the previous tick, or 0 on the first.
func (t *frameTimer) tick() float64 {
	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		return 0
	}
	dt := now.Sub(t.last).Seconds()
	t.last = now
	return dt
}
