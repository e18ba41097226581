package strategy

import (
	"sync/atomic"

	"github.com/clarkmcc/go-dbuf/wait"
)

// HazardStrategy is a lock-free synchronization strategy built on an
// append-only linked list of reader slots.
//
// Each slot has three fields: next (immutable once linked, traverses the
// full list), nextInCapture (writer-owned, traverses only the subsequence of
// slots captured at the last swap), and generation (atomic, zero when free,
// otherwise the generation the reader began reading at).
//
// Begin-read-guard first tries the reader's cached slot, then walks the
// full list for any free slot, and only allocates a new one if none are
// free. Slots are never freed while the strategy lives, bounding the list by
// the peak number of concurrently active readers.
type HazardStrategy struct {
	head       atomic.Pointer[hazardSlot]
	generation atomic.Uint32
	wait       wait.Strategy
}

type hazardSlot struct {
	next          *hazardSlot
	nextInCapture *hazardSlot
	generation    atomic.Uint32
}

// NewHazardStrategy creates a hazard strategy using the default wait policy.
func NewHazardStrategy() *HazardStrategy {
	return NewHazardStrategyWithWait(wait.Default())
}

// NewHazardStrategyWithWait creates a hazard strategy using the given wait
// policy for the writer's drain loop.
func NewHazardStrategyWithWait(w wait.Strategy) *HazardStrategy {
	s := &HazardStrategy{wait: w}
	// Generations are always odd so that 0 remains the unambiguous "slot is
	// free" marker; each swap adds 2.
	s.generation.Store(1)
	return s
}

type hazardWriterTag struct{}

type hazardReaderTag struct {
	node *hazardSlot
}

func (t *hazardReaderTag) CloneTag() ReaderTag { return &hazardReaderTag{} }

type hazardValidationToken struct {
	generation uint32
}

type hazardCapture struct {
	generation uint32
	start      *hazardSlot
}

type hazardGuard struct{}

func (s *HazardStrategy) CreateWriterTag() WriterTag { return &hazardWriterTag{} }

func (s *HazardStrategy) CreateReaderTagFromWriter(WriterTag) ReaderTag {
	return &hazardReaderTag{}
}

func (s *HazardStrategy) CreateReaderTagFromReader(ReaderTag) ReaderTag {
	return &hazardReaderTag{}
}

func (s *HazardStrategy) DanglingReaderTag() ReaderTag {
	return &hazardReaderTag{}
}

// ValidateSwap is infallible for the hazard strategy: it simply advances the
// generation counter by 2 (keeping it odd) and returns the prior value as
// the validation token.
func (s *HazardStrategy) ValidateSwap(WriterTag) (ValidationToken, error) {
	next := s.generation.Add(2)
	return &hazardValidationToken{generation: next - 2}, nil
}

// CaptureReaders walks the full reader-slot list once, stitching every slot
// whose generation matches the validation token's generation into a
// nextInCapture chain.
//
// Deviation from the original Rust implementation (dbuf/src/strategy/
// hazard.rs): that version always returns start=head regardless of whether
// head is itself part of the capture, relying on an invariant that a
// non-participating head's nextInCapture either got freshly nulled out this
// round or was never non-nil to begin with. This version starts the chain
// at the first slot that actually matches, or nil if none do — simpler, and
// correct without depending on that invariant.
func (s *HazardStrategy) CaptureReaders(_ WriterTag, token ValidationToken) Capture {
	gen := token.(*hazardValidationToken).generation

	var start, prev *hazardSlot
	for p := s.head.Load(); p != nil; p = p.next {
		if p.generation.Load() == gen {
			if start == nil {
				start = p
			} else {
				prev.nextInCapture = p
			}
			prev = p
		}
	}
	if prev != nil {
		prev.nextInCapture = nil
	}

	return &hazardCapture{generation: gen, start: start}
}

// HaveReadersExited walks the capture subsequence, removing slots that are
// no longer at the captured generation (either freed or re-acquired at a
// later generation) by advancing capture.start past them. It is idempotent:
// repeated calls with no intervening reader progress return the same
// result.
func (s *HazardStrategy) HaveReadersExited(_ WriterTag, capture Capture) bool {
	c := capture.(*hazardCapture)

	for p := c.start; p != nil; p = p.nextInCapture {
		if p.generation.Load() == c.generation {
			c.start = p
			return false
		}
	}

	c.start = nil
	return true
}

func (s *HazardStrategy) BeginReadGuard(tag ReaderTag) Guard {
	t := tag.(*hazardReaderTag)
	gen := s.generation.Load()

	if t.node != nil && t.node.generation.CompareAndSwap(0, gen) {
		return hazardGuard{}
	}

	t.node = s.acquireSlot(gen)
	return hazardGuard{}
}

// acquireSlot implements the reader fast path of §4.4: walk the list for any
// free slot, claiming it with a CAS; if none are free, allocate a new one
// and push it onto the head, retrying on contention.
func (s *HazardStrategy) acquireSlot(gen uint32) *hazardSlot {
	for p := s.head.Load(); p != nil; p = p.next {
		if p.generation.CompareAndSwap(0, gen) {
			return p
		}
	}

	n := &hazardSlot{}
	n.generation.Store(gen)
	for {
		head := s.head.Load()
		n.next = head
		if s.head.CompareAndSwap(head, n) {
			return n
		}
	}
}

func (s *HazardStrategy) EndReadGuard(tag ReaderTag, _ Guard) {
	t := tag.(*hazardReaderTag)
	t.node.generation.Store(0)
	s.wait.Notify()
}

func (s *HazardStrategy) NewPauseState() PauseState { return s.wait.NewState() }

func (s *HazardStrategy) Pause(_ WriterTag, state PauseState) {
	s.wait.Wait(state)
}

var _ Strategy = (*HazardStrategy)(nil)
