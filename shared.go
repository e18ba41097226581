package dbuf

import "github.com/clarkmcc/go-dbuf/strategy"

// Shared is the state a Writer and all of its Readers hold in common: the
// synchronization strategy, the front/back flag, and the two buffer halves
// themselves. A Writer owns the sole strong reference to a Shared; every
// Reader holds only a weak reference (see reader.go), so a Shared becomes
// unreachable the moment its Writer is dropped, regardless of how many
// Readers still exist.
type Shared[T any] struct {
	strategy strategy.Strategy
	flag     Flag
	buffers  RawBufferPair[T]
}

// NewShared constructs a Shared from two initial buffer values and a
// synchronization strategy. front and back occupy the two buffer slots in
// that order; the flag's zero value selects buffers[0] as the writer-side
// and buffers[1] as the reader-side (see RawBufferPair.Get).
func NewShared[T any](front, back T, strat strategy.Strategy) *Shared[T] {
	return &Shared[T]{
		strategy: strat,
		flag:     &AtomicFlag{},
		buffers:  NewRawBufferPair(front, back),
	}
}

// NewLocalShared constructs a Shared meant for single-goroutine use: it pairs
// an UnsyncFlag with a LocalStrategy, matching the original implementation's
// split between a concurrent-safe default and an explicitly unsynchronized
// fast path (see strategy.LocalStrategy).
func NewLocalShared[T any](front, back T) *Shared[T] {
	return &Shared[T]{
		strategy: strategy.NewLocalStrategy(),
		flag:     &UnsyncFlag{},
		buffers:  NewRawBufferPair(front, back),
	}
}

// writerBuffers returns pointers to the writer-side and reader-side buffer
// halves as observed synchronously by the writer (i.e. without requiring the
// flag's atomic load).
func (s *Shared[T]) writerBuffers() (writerSide, readerSide *T) {
	return s.buffers.Get(s.flag.LoadUnsync())
}

// readerBuffer returns a pointer to the buffer half currently exposed to
// readers, using the flag's synchronized load.
func (s *Shared[T]) readerBuffer() *T {
	_, readerSide := s.buffers.Get(s.flag.Load())
	return readerSide
}
