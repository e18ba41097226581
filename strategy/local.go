package strategy

// LocalStrategy is a minimal single-threaded strategy: instead of tracking
// individual readers, it keeps a single active-reader count and refuses to
// validate a swap while that count is non-zero. It never blocks: a failed
// validation is reported immediately as ErrLocalStrategyActiveReader via
// ValidateSwap's return (dbuf.Writer wraps it with
// dbuf.ErrSwapValidationFailed), rather than via any pause/drain loop.
//
// It requires external discipline matching its name: the writer and every
// reader must run on the same goroutine, never interleaved concurrently,
// since none of its state is synchronized.
type LocalStrategy struct {
	activeReaders int
}

// NewLocalStrategy creates a ready-to-use LocalStrategy.
func NewLocalStrategy() *LocalStrategy {
	return &LocalStrategy{}
}

type localWriterTag struct{}

type localReaderTag struct{}

func (localReaderTag) CloneTag() ReaderTag { return localReaderTag{} }

type localValidationToken struct{}

type localCapture struct{}

type localGuard struct{}

// ErrLocalStrategyActiveReader is returned by LocalStrategy.ValidateSwap
// when at least one read guard is currently outstanding.
var ErrLocalStrategyActiveReader = localValidationError{}

type localValidationError struct{}

func (localValidationError) Error() string {
	return "dbuf/strategy: tried to swap buffers while a reader is active"
}

func (s *LocalStrategy) CreateWriterTag() WriterTag { return localWriterTag{} }

func (s *LocalStrategy) CreateReaderTagFromWriter(WriterTag) ReaderTag {
	return localReaderTag{}
}

func (s *LocalStrategy) CreateReaderTagFromReader(ReaderTag) ReaderTag {
	return localReaderTag{}
}

func (s *LocalStrategy) DanglingReaderTag() ReaderTag { return localReaderTag{} }

func (s *LocalStrategy) ValidateSwap(WriterTag) (ValidationToken, error) {
	if s.activeReaders != 0 {
		return nil, ErrLocalStrategyActiveReader
	}
	return localValidationToken{}, nil
}

func (s *LocalStrategy) CaptureReaders(WriterTag, ValidationToken) Capture {
	return localCapture{}
}

// HaveReadersExited always reports true: ValidateSwap already guaranteed no
// reader was active at swap time, and LocalStrategy forbids any reader from
// appearing between validation and capture (single-goroutine discipline).
func (s *LocalStrategy) HaveReadersExited(WriterTag, Capture) bool {
	return true
}

func (s *LocalStrategy) BeginReadGuard(ReaderTag) Guard {
	s.activeReaders++
	return localGuard{}
}

func (s *LocalStrategy) EndReadGuard(ReaderTag, Guard) {
	s.activeReaders--
}

func (s *LocalStrategy) NewPauseState() PauseState { return nil }

// Pause is never actually reached in practice: HaveReadersExited always
// returns true immediately, so a drain loop never needs to wait. It is
// implemented as a no-op purely to satisfy the Strategy contract.
func (s *LocalStrategy) Pause(WriterTag, PauseState) {}

var _ Strategy = (*LocalStrategy)(nil)
