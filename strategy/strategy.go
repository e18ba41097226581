// Package strategy defines the abstract synchronization contract between a
// double buffer's writer and its readers, and provides two implementations:
// HazardStrategy, a lock-free hazard-pointer design suitable for concurrent
// use, and LocalStrategy, a minimal single-threaded strategy that validates
// swaps eagerly instead of tracking readers at all.
package strategy

// WriterTag is an opaque token identifying the single writer to a Strategy.
// It is created exactly once, by CreateWriterTag, from a freshly constructed
// strategy.
type WriterTag any

// ReaderTag is an opaque token identifying one reader to a Strategy. A
// reader tag may be cloned via CloneTag without needing to reach back into
// the strategy that created it, so that cloning remains possible even after
// the shared state (and therefore the strategy) has been collected.
type ReaderTag interface {
	CloneTag() ReaderTag
}

// ValidationToken is returned by ValidateSwap and consumed by
// CaptureReaders.
type ValidationToken any

// Capture is the writer's snapshot of readers that must drain before a swap
// completes.
type Capture any

// Guard is returned by BeginReadGuard and consumed by EndReadGuard.
type Guard any

// PauseState carries per-writer backoff state across repeated Pause calls
// while waiting for a swap to drain.
type PauseState any

// Strategy owns all coordination between one writer and many readers. A
// Strategy value is embedded inside a dbuf.Shared value and is otherwise
// only ever touched through this interface by the dbuf package.
type Strategy interface {
	// CreateWriterTag produces the unique writer tag. Called exactly once,
	// on a freshly initialized strategy.
	CreateWriterTag() WriterTag

	// CreateReaderTagFromWriter mints a reader tag from the writer tag.
	CreateReaderTagFromWriter(WriterTag) ReaderTag

	// CreateReaderTagFromReader mints a sibling reader tag from an existing
	// reader tag.
	CreateReaderTagFromReader(ReaderTag) ReaderTag

	// DanglingReaderTag returns a reader tag that need never be used.
	DanglingReaderTag() ReaderTag

	// BeginReadGuard registers that the given reader is entering the
	// reader-side buffer now. It must be observed by any subsequent
	// ValidateSwap/CaptureReaders pair, or the reader must be invisible to
	// that capture.
	BeginReadGuard(ReaderTag) Guard

	// EndReadGuard releases a guard previously returned by BeginReadGuard.
	EndReadGuard(ReaderTag, Guard)

	// ValidateSwap checks whether a swap may proceed. Strategies that only
	// allow a swap when no reader is present return an error here; the
	// hazard strategy never fails.
	ValidateSwap(WriterTag) (ValidationToken, error)

	// CaptureReaders records which readers are currently in the pre-swap
	// buffer, given a token produced by ValidateSwap.
	CaptureReaders(WriterTag, ValidationToken) Capture

	// HaveReadersExited is a non-destructive probe: readers that have
	// drained are removed from the capture. Idempotent.
	HaveReadersExited(WriterTag, Capture) bool

	// NewPauseState creates fresh backoff state for a single swap's drain
	// loop.
	NewPauseState() PauseState

	// Pause yields the writer's thread while waiting for readers to drain.
	Pause(WriterTag, PauseState)
}
