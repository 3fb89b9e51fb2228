package ecs

import "context"

// System runs once per frame. Query and Singleton fields of a system
// struct are initialized by Scheduler.Register; other fields keep their
// values between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// StartupSystem runs exactly once, before the first frame. An error aborts
// the remaining startup steps.
type StartupSystem interface {
	Setup(ctx context.Context, frame *UpdateFrame) error
}
