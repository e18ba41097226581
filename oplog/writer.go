package oplog

import dbuf "github.com/clarkmcc/go-dbuf"

// Writer pairs a DelayedWriter with a Log, so that applying an operation
// never touches a buffer directly: it is only ever queued, and the queue is
// replayed against each buffer half exactly when that half becomes the
// writer-side again.
//
// Writer requires a synchronization strategy whose ValidateSwap never
// fails (such as strategy.HazardStrategy) — Publish/SwapBuffers panic on a
// validation error rather than propagating one, matching the same
// constraint the original imposes via a trait bound Go cannot express.
type Writer[B any, O Operation[B]] struct {
	writer *dbuf.DelayedWriter[B]
	log    *Log[B, O]
}

// NewWriter wraps an existing DelayedWriter with a fresh, empty Log.
func NewWriter[B any, O Operation[B]](writer *dbuf.DelayedWriter[B]) *Writer[B, O] {
	return &Writer[B, O]{writer: writer, log: New[B, O]()}
}

// FromWriter wraps a plain Writer, creating the DelayedWriter for it.
func FromWriter[B any, O Operation[B]](writer *dbuf.Writer[B]) *Writer[B, O] {
	return NewWriter[B, O](dbuf.NewDelayedWriter(writer))
}

// Reader creates a new reader over the underlying double buffer.
func (w *Writer[B, O]) Reader() *dbuf.Reader[B] {
	return w.writer.Writer().Reader()
}

// Writer finishes any swap still in flight, blocking until its captured
// readers have exited, and then exposes the underlying dbuf.Writer so
// callers can mutate the writer-side buffer directly (e.g. to apply a write
// immediately, ahead of when Publish next replays the log against the other
// half).
func (w *Writer[B, O]) Writer() *dbuf.Writer[B] {
	return w.writer.FinishSwap()
}

// Apply queues op without touching either buffer half.
func (w *Writer[B, O]) Apply(op O) {
	w.log.Push(op)
}

// Unapplied returns the operations queued since the last SwapBuffers.
func (w *Writer[B, O]) Unapplied() []O {
	return w.log.Unapplied()
}

// Publish swaps the buffers, and therefore replays the queued operations,
// only if there is at least one unapplied operation. It is a no-op
// otherwise, avoiding a pointless swap when nothing changed.
func (w *Writer[B, O]) Publish() {
	if len(w.log.Unapplied()) > 0 {
		w.SwapBuffers()
	}
}

// SwapBuffers finishes any swap already in flight (so the current
// writer-side buffer is safe to mutate), replays the log against that
// buffer to bring it up to date, then starts a fresh swap: the flag flips
// immediately, exposing the just-replayed buffer to readers as the new
// reader-side, while the old reader-side becomes the writer-side for the
// next round.
func (w *Writer[B, O]) SwapBuffers() {
	writer := w.writer.FinishSwap()
	writerSide, _ := writer.SplitMut()
	w.log.Apply(writerSide)
	w.writer.StartBufferSwap()
}
