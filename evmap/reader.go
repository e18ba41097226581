package evmap

import dbuf "github.com/clarkmcc/go-dbuf"

// Reader is an independent handle onto a Map's current state, usable from a
// goroutine that shouldn't share the Map's own reader registration. Like
// the Map's own Get, a Reader's view only ever moves forward when the Map
// it was created from refreshes.
type Reader[K comparable, V any] struct {
	reader *dbuf.Reader[map[K]V]
	closed bool
}

// NewReader creates a Reader observing m.
func NewReader[K comparable, V any](m *Map[K, V]) *Reader[K, V] {
	return &Reader[K, V]{reader: m.reader.Clone()}
}

// Get returns the value at key and whether it exists. It panics if the
// reader has been closed.
func (r *Reader[K, V]) Get(key K) (V, bool) {
	guard := r.mustGet()
	defer guard.Release()

	v, ok := (*guard.Get())[key]
	return v, ok
}

// Has returns whether key exists. It panics if the reader has been closed.
func (r *Reader[K, V]) Has(key K) bool {
	guard := r.mustGet()
	defer guard.Release()

	_, ok := (*guard.Get())[key]
	return ok
}

func (r *Reader[K, V]) mustGet() *dbuf.ReadGuard[map[K]V] {
	if r.closed {
		panic("evmap: reader closed")
	}
	guard, err := r.reader.TryGet()
	if err != nil {
		panic("evmap: reader closed")
	}
	return guard
}

// Close marks the reader unusable. Reading after close will result in a
// panic. Unlike the mutex-backed original, Close needs no bookkeeping on
// the Map side: the underlying dbuf.Reader is independently garbage
// collected once this Reader drops, so there is no readers slice to prune.
func (r *Reader[K, V]) Close() {
	r.closed = true
}
