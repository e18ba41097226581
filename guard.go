package dbuf

import "github.com/clarkmcc/go-dbuf/strategy"

// ReadGuard borrows the reader-side buffer half for as long as it is held.
// The buffer flag may flip while a ReadGuard is outstanding (TryStartBufferSwap
// flips it immediately), but the guard's underlying buffer half is never
// mutated out from under it: the writer does not touch its new writer-side
// (the half this guard may still be reading) until FinishSwap confirms every
// guard captured by that swap has called Release.
type ReadGuard[T any] struct {
	tag      strategy.ReaderTag
	strategy strategy.Strategy
	guard    strategy.Guard
	value    *T
}

// Get returns the guarded value.
func (g *ReadGuard[T]) Get() *T { return g.value }

// Release ends the guard, letting any pending swap that captured this
// reader proceed once every other captured reader has also released.
//
// A ReadGuard must be released exactly once; releasing it more than once,
// or using Get after Release, is a programming error the strategy does not
// guard against (matching the unchecked-by-design contract of the
// underlying hazard/local strategies).
func (g *ReadGuard[T]) Release() {
	g.strategy.EndReadGuard(g.tag, g.guard)
}

// MappedGuard holds a ReadGuard alive while exposing a derived value, so
// callers can read a projection of T without copying the whole buffer out
// from under the guard.
type MappedGuard[T, U any] struct {
	parent *ReadGuard[T]
	value  U
}

// Get returns the mapped value.
func (g *MappedGuard[T, U]) Get() U { return g.value }

// Release releases the underlying ReadGuard.
func (g *MappedGuard[T, U]) Release() { g.parent.Release() }

// MapReadGuard projects a ReadGuard[T] into a MappedGuard[T, U], keeping the
// original guard's reader registered until the mapped guard is released.
func MapReadGuard[T, U any](g *ReadGuard[T], f func(*T) U) *MappedGuard[T, U] {
	return &MappedGuard[T, U]{parent: g, value: f(g.Get())}
}
