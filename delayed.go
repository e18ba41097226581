package dbuf

import "runtime"

// DelayedWriter wraps a Writer so that starting a swap and waiting for it to
// finish are split into two steps, letting the caller do other work (or
// service other readers) while a swap drains. At most one swap may be in
// flight per DelayedWriter at a time.
type DelayedWriter[T any] struct {
	writer *Writer[T]
	swap   *Swap
}

// NewDelayedWriter wraps writer in a DelayedWriter.
func NewDelayedWriter[T any](writer *Writer[T]) *DelayedWriter[T] {
	d := &DelayedWriter[T]{writer: writer}
	// Best-effort: if the caller drops a DelayedWriter with a swap still in
	// flight, let it finish instead of leaving captured readers referenced
	// forever. This is a backstop, not a substitute for calling FinishSwap.
	runtime.SetFinalizer(d, func(d *DelayedWriter[T]) {
		if d.swap != nil {
			d.writer.FinishSwap(d.swap)
			d.swap = nil
		}
	})
	return d
}

// Writer returns the wrapped Writer for operations that don't require
// exclusive access while a swap may be outstanding, such as creating new
// Readers.
func (d *DelayedWriter[T]) Writer() *Writer[T] { return d.writer }

// TryStartBufferSwap starts a new swap if none is already in flight. It is a
// no-op, returning nil, if a swap is already outstanding.
func (d *DelayedWriter[T]) TryStartBufferSwap() error {
	if d.swap != nil {
		return nil
	}
	swap, err := d.writer.TryStartBufferSwap()
	if err != nil {
		return err
	}
	d.swap = swap
	return nil
}

// StartBufferSwap is like TryStartBufferSwap but panics on a validation
// error. Use it only with strategies whose ValidateSwap never fails, such as
// strategy.HazardStrategy.
func (d *DelayedWriter[T]) StartBufferSwap() {
	if err := d.TryStartBufferSwap(); err != nil {
		panic(err)
	}
}

// IsSwapFinished reports whether the in-flight swap, if any, has completed.
// Once it returns true it also clears the outstanding swap, so subsequent
// calls do no further work until another swap is started.
func (d *DelayedWriter[T]) IsSwapFinished() bool {
	if d.swap == nil {
		return true
	}
	if !d.writer.IsSwapFinished(d.swap) {
		return false
	}
	d.swap = nil
	return true
}

// FinishSwap blocks until any in-flight swap completes and returns the
// wrapped Writer.
func (d *DelayedWriter[T]) FinishSwap() *Writer[T] {
	if d.swap != nil {
		d.writer.FinishSwap(d.swap)
		d.swap = nil
	}
	return d.writer
}

// TryWriterMut returns the wrapped Writer only if no swap is currently
// outstanding, so callers can never mutate the writer-side buffer while a
// swap is in flight.
func (d *DelayedWriter[T]) TryWriterMut() (*Writer[T], bool) {
	if !d.IsSwapFinished() {
		return nil, false
	}
	return d.writer, true
}

// TrySwapBuffers finishes any in-flight swap, starts a new one, and blocks
// until it too finishes.
func (d *DelayedWriter[T]) TrySwapBuffers() error {
	d.FinishSwap()
	if err := d.TryStartBufferSwap(); err != nil {
		return err
	}
	d.FinishSwap()
	return nil
}

// SwapBuffers is like TrySwapBuffers but panics on a validation error. Use it
// only with strategies whose ValidateSwap never fails.
func (d *DelayedWriter[T]) SwapBuffers() *Writer[T] {
	d.FinishSwap()
	d.StartBufferSwap()
	return d.FinishSwap()
}
