package wait

import "runtime"

// maxSpinIterations is the saturating exponent for SpinWait's backoff: once
// reached, each Wait call spins for 1<<maxSpinIterations iterations and
// never grows further.
const maxSpinIterations = 10

// SpinWait spins with exponential backoff and never blocks. Notify is a
// no-op, since there is nothing parked to wake.
type SpinWait struct{}

// spinState is the exponent tracked across repeated Wait calls.
type spinState struct {
	count uint32
}

func (SpinWait) NewState() State { return &spinState{} }

func (SpinWait) Wait(state State) {
	spin(state.(*spinState))
}

func (SpinWait) Notify() {}

// spin performs one exponential-backoff spin step and reports whether the
// backoff has saturated (used by AdaptiveWait to decide when to stop
// spinning and park instead).
func spin(s *spinState) bool {
	count := s.count
	if count < maxSpinIterations {
		s.count++
	}

	for i := 0; i < 1<<count; i++ {
		runtime.Gosched()
	}

	return count == maxSpinIterations
}

var _ Strategy = SpinWait{}
