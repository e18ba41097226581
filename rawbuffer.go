package dbuf

// RawBufferPair holds two buffers of the same type at fixed, disjoint
// addresses for the lifetime of the pair. Neither slot ever moves; only the
// flag that decides which slot is the writer-side changes. This package
// performs no data-race checking of its own — that is the synchronization
// strategy's job (see package strategy).
type RawBufferPair[T any] struct {
	buffers [2]T
}

// NewRawBufferPair creates a pair from two initial, equal-enough buffer
// values: front becomes slot 0, back becomes slot 1.
func NewRawBufferPair[T any](front, back T) RawBufferPair[T] {
	return RawBufferPair[T]{buffers: [2]T{front, back}}
}

// Get returns (writer-side, reader-side) pointers for the given flag value.
// The writer-side is the slot indexed by w; the reader-side is the other.
func (p *RawBufferPair[T]) Get(w bool) (writerSide, readerSide *T) {
	wi, ri := 0, 1
	if w {
		wi, ri = 1, 0
	}
	return &p.buffers[wi], &p.buffers[ri]
}
