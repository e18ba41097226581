package dbuf

import (
	"weak"

	"github.com/clarkmcc/go-dbuf/strategy"
)

// Reader observes a double buffer's reader-side half. It holds only a weak
// reference to the Shared state: once the owning Writer (and with it, the
// sole strong reference to Shared) is garbage collected, every Reader's
// TryGet starts returning ErrUpgradeFailed instead of panicking or reading
// freed memory, matching the upgrade-failure contract of the original
// strong/weak reference design without any manual refcounting.
type Reader[T any] struct {
	tag    strategy.ReaderTag
	shared weak.Pointer[Shared[T]]
}

func newReader[T any](tag strategy.ReaderTag, shared *Shared[T]) *Reader[T] {
	return &Reader[T]{tag: tag, shared: weak.Make(shared)}
}

// TryGet acquires a read guard over the current reader-side buffer half. It
// returns ErrUpgradeFailed if the Writer that owns this double buffer (and
// therefore the buffer itself) has already been garbage collected.
func (r *Reader[T]) TryGet() (*ReadGuard[T], error) {
	shared := r.shared.Value()
	if shared == nil {
		return nil, ErrUpgradeFailed
	}

	guard := shared.strategy.BeginReadGuard(r.tag)
	return &ReadGuard[T]{
		tag:      r.tag,
		strategy: shared.strategy,
		guard:    guard,
		value:    shared.readerBuffer(),
	}, nil
}

// Get is like TryGet but panics if the Writer has been garbage collected.
// Use it only when the caller can independently guarantee the Writer
// outlives this call, e.g. because it also holds a reference to the Writer.
func (r *Reader[T]) Get() *ReadGuard[T] {
	g, err := r.TryGet()
	if err != nil {
		panic(err)
	}
	return g
}

// Clone creates an independent Reader observing the same double buffer. If
// the Writer has already been garbage collected, the clone still succeeds
// but its TryGet will also always fail, matching this Reader's behavior.
func (r *Reader[T]) Clone() *Reader[T] {
	shared := r.shared.Value()
	if shared == nil {
		return &Reader[T]{tag: r.tag.CloneTag(), shared: r.shared}
	}

	tag := shared.strategy.CreateReaderTagFromReader(r.tag)
	return &Reader[T]{tag: tag, shared: r.shared}
}
