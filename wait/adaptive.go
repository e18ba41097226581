package wait

import "sync"

// AdaptiveWait spins first using the same exponential backoff as SpinWait;
// once spinning has saturated it parks the calling goroutine on an internal
// condition variable. Notify wakes one parked goroutine.
//
// Wait does not hold mu across its own predicate check (there is no shared
// predicate here, only the caller's own IsSwapFinished polling loop), so a
// Notify landing between the caller's last failed poll and this goroutine
// actually reaching cv.Wait is a lost wakeup: nothing else will wake this
// waiter. The drain loop bounds this by retrying, but a pathological
// scheduling interleaving can in principle delay a finish past the reader
// that unblocked it. This mirrors the original implementation's own
// condvar/parker shape, which has the same unguarded-predicate window.
type AdaptiveWait struct {
	mu sync.Mutex
	cv *sync.Cond
}

// NewAdaptive creates a ready-to-use AdaptiveWait.
func NewAdaptive() *AdaptiveWait {
	a := &AdaptiveWait{}
	a.cv = sync.NewCond(&a.mu)
	return a
}

func (a *AdaptiveWait) NewState() State { return &spinState{} }

func (a *AdaptiveWait) Wait(state State) {
	if !spin(state.(*spinState)) {
		return
	}

	a.mu.Lock()
	a.cv.Wait()
	a.mu.Unlock()
}

func (a *AdaptiveWait) Notify() {
	a.mu.Lock()
	a.cv.Signal()
	a.mu.Unlock()
}

var _ Strategy = (*AdaptiveWait)(nil)
