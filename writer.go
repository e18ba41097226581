package dbuf

import (
	"fmt"

	"github.com/clarkmcc/go-dbuf/strategy"
)

// Writer is the sole mutator of a double buffer. There is at most one Writer
// per Shared at any time; it alone may start a swap, and it alone sees the
// writer-side buffer half via Split/SplitMut.
type Writer[T any] struct {
	tag    strategy.WriterTag
	shared *Shared[T]
}

// NewWriter creates a Writer owning the given Shared. shared must not already
// have a Writer: constructing a second Writer over the same Shared violates
// every strategy's single-writer assumption.
func NewWriter[T any](shared *Shared[T]) *Writer[T] {
	return &Writer[T]{
		tag:    shared.strategy.CreateWriterTag(),
		shared: shared,
	}
}

// Reader creates a new Reader observing this Writer's Shared.
func (w *Writer[T]) Reader() *Reader[T] {
	tag := w.shared.strategy.CreateReaderTagFromWriter(w.tag)
	return newReader(tag, w.shared)
}

// Split returns the writer-side and reader-side buffer halves by value's
// address for reading: writer is the half only the Writer may mutate,
// reader is the half concurrently visible to Readers.
func (w *Writer[T]) Split() (writer, reader *T) {
	return w.shared.writerBuffers()
}

// SplitMut is an alias for Split kept for symmetry with the original API's
// split/split_mut distinction; both return the same pair of pointers, since
// Go does not distinguish &T from &mut T at the type level.
func (w *Writer[T]) SplitMut() (writer, reader *T) {
	return w.shared.writerBuffers()
}

// Swap is an in-progress buffer swap started by TryStartBufferSwap. It holds
// the strategy-specific capture needed to determine when every reader that
// observed the pre-swap generation has exited.
type Swap struct {
	capture strategy.Capture
}

// TryStartBufferSwap validates that a swap may begin and, if so, flips the
// buffer flag and captures the set of readers that must exit before the
// swap may be finished. The flip happens here, between ValidateSwap and
// CaptureReaders, exactly per spec §4.4's flip timing: any reader whose
// BeginReadGuard is observed by the strategy after this point sees both the
// bumped generation and the flipped flag, so it is simultaneously excluded
// from the capture and already reading the new reader-side — never the old
// one the writer is about to reclaim. It does not block: the caller must
// later poll IsSwapFinished and eventually call FinishSwap.
func (w *Writer[T]) TryStartBufferSwap() (*Swap, error) {
	token, err := w.shared.strategy.ValidateSwap(w.tag)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSwapValidationFailed, err)
	}
	w.shared.flag.Flip()
	return &Swap{capture: w.shared.strategy.CaptureReaders(w.tag, token)}, nil
}

// IsSwapFinished reports whether every reader captured by swap has exited,
// without blocking. Once it returns true for a given swap, it continues to
// return true for that same swap.
func (w *Writer[T]) IsSwapFinished(swap *Swap) bool {
	return w.shared.strategy.HaveReadersExited(w.tag, swap.capture)
}

// FinishSwap blocks, using the strategy's pause/wait policy, until every
// reader captured by swap has exited. The buffer flag was already flipped
// by TryStartBufferSwap; by the time FinishSwap returns, the writer-side
// buffer half (now the former reader-side) is safe to mutate again.
func (w *Writer[T]) FinishSwap(swap *Swap) {
	if w.IsSwapFinished(swap) {
		return
	}
	pause := w.shared.strategy.NewPauseState()
	for !w.IsSwapFinished(swap) {
		w.shared.strategy.Pause(w.tag, pause)
	}
}

// TrySwapBuffers starts a swap and blocks until it completes, returning any
// validation error from the start of the swap. It is equivalent to calling
// TryStartBufferSwap followed by FinishSwap.
func (w *Writer[T]) TrySwapBuffers() error {
	swap, err := w.TryStartBufferSwap()
	if err != nil {
		return err
	}
	w.FinishSwap(swap)
	return nil
}
