package ecs

import "unsafe"

// iface mirrors the runtime layout of a non-empty interface value so the
// data word can be read without reflection.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}
