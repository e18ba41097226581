package dbuf

import "sync/atomic"

// Flag is a single bit indicating which physical buffer is currently the
// writer-side (see RawBufferPair.Get). Flip must synchronize-with every
// later Load: once a flip returns, any reader that subsequently calls Load
// observes either that flip, or a later one, never a stale value.
type Flag interface {
	// Load returns the current value, synchronized against concurrent Flip
	// calls from the writer. Safe to call from any goroutine.
	Load() bool

	// LoadUnsync returns the current value without establishing any
	// synchronization. It is sound only when called by the sole writer that
	// also calls Flip: the writer cannot race with its own flips.
	LoadUnsync() bool

	// Flip toggles the flag. Only the writer may call this.
	Flip()
}

// UnsyncFlag is the single-threaded variant of Flag: a plain boolean with no
// synchronization at all. Suitable only for strategies (such as
// strategy.LocalStrategy) that guarantee the writer and all readers run on
// the same goroutine, one at a time.
type UnsyncFlag struct {
	v bool
}

func (f *UnsyncFlag) Load() bool      { return f.v }
func (f *UnsyncFlag) LoadUnsync() bool { return f.v }
func (f *UnsyncFlag) Flip()           { f.v = !f.v }

// AtomicFlag is the multithreaded variant of Flag, built on an atomic bool
// with release-on-flip / acquire-on-load ordering. LoadUnsync is backed by a
// plain field that only the writer goroutine ever touches (mirrored in Flip)
// rather than a raw reinterpretation of the atomic value's memory, since Go
// does not guarantee the internal layout of atomic.Bool.
type AtomicFlag struct {
	v          atomic.Bool
	writerSide bool // written only by the writer, alongside every Flip
}

func (f *AtomicFlag) Load() bool { return f.v.Load() }

func (f *AtomicFlag) LoadUnsync() bool { return f.writerSide }

func (f *AtomicFlag) Flip() {
	next := !f.v.Load()
	f.writerSide = next
	f.v.Store(next)
}

var (
	_ Flag = (*UnsyncFlag)(nil)
	_ Flag = (*AtomicFlag)(nil)
)
