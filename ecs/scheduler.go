package ecs

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"
)

// ErrAlreadyStarted is returned by Scheduler.Startup on a second call.
var ErrAlreadyStarted = errors.New("ecs: startup already ran")

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type timing struct {
	name  string
	count int64
	min   time.Duration
	max   time.Duration
	last  time.Duration
	total time.Duration
}

func newTiming(v any) *timing {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return &timing{name: t.Name(), min: time.Duration(1<<63 - 1)}
}

func (t *timing) record(d time.Duration) {
	t.count++
	t.last = d
	t.total += d
	t.min = min(t.min, d)
	t.max = max(t.max, d)
}

func (t *timing) stats() SystemStats {
	var avg time.Duration
	if t.count > 0 {
		avg = t.total / time.Duration(t.count)
	}
	return SystemStats{
		Name:           t.name,
		ExecutionCount: t.count,
		MinDuration:    t.min,
		MaxDuration:    t.max,
		AvgDuration:    avg,
		LastDuration:   t.last,
		TotalDuration:  t.total,
	}
}

// Scheduler runs startup steps once, in registration order, and frame
// systems on every Once call.
type Scheduler struct {
	storage *Storage

	startup []StartupSystem
	started bool

	systems []System
	timings []*timing
}

// NewScheduler creates a scheduler for storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Storage returns the storage systems operate on.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register appends a frame system and initializes its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	s.bindFields(system)
	s.systems = append(s.systems, system)
	s.timings = append(s.timings, newTiming(system))
}

// RegisterStartup appends a startup step and initializes its fields.
func (s *Scheduler) RegisterStartup(step StartupSystem) {
	s.bindFields(step)
	s.startup = append(s.startup, step)
}

type storageBinder interface {
	Init(storage *Storage)
}

// bindFields calls Init(storage) on every addressable struct field that has
// one, which covers Query[T] and Singleton[T].
func (s *Scheduler) bindFields(system any) {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}
		if binder, ok := field.Addr().Interface().(storageBinder); ok {
			binder.Init(s.storage)
		}
	}
}

// Startup runs every startup step strictly in registration order. Commands
// queued by a step are flushed before the next step starts. The first
// failing step stops the sequence and its error is returned.
func (s *Scheduler) Startup(ctx context.Context) error {
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	frame := newUpdateFrame(0, s.storage)
	for _, step := range s.startup {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step.Setup(ctx, frame); err != nil {
			return fmt.Errorf("startup %s: %w", newTiming(step).name, err)
		}
		frame.Commands.Flush(s.storage)
	}
	return nil
}

// Once runs every frame system once with the given delta time.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.storage)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		s.timings[i].record(time.Since(start))
	}

	frame.Commands.Flush(s.storage)
}

// Run calls Once on every tick of interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(last).Seconds())
			last = now
		}
	}
}

// GetStats returns execution statistics for the frame systems.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.timings)),
	}
	for i, t := range s.timings {
		stats.Systems[i] = t.stats()
		stats.TotalExecutions += t.count
	}
	return stats
}
