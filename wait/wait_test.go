package wait

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopWait(t *testing.T) {
	w := NoopWait{}
	w.Wait(w.NewState())
	w.Notify()
}

func TestSpinWaitSaturates(t *testing.T) {
	w := SpinWait{}
	state := w.NewState()

	start := time.Now()
	for i := 0; i < maxSpinIterations+5; i++ {
		w.Wait(state)
	}
	assert.Less(t, time.Since(start), time.Second, "spin backoff should never block")

	s := state.(*spinState)
	assert.Equal(t, uint32(maxSpinIterations), s.count)
}

func TestAdaptiveWaitWakesOnNotify(t *testing.T) {
	a := NewAdaptive()

	var wg sync.WaitGroup
	wg.Add(1)
	done := make(chan struct{})

	go func() {
		defer wg.Done()
		state := a.NewState()
		for i := 0; i < maxSpinIterations+1; i++ {
			a.Wait(state)
		}
		close(done)
	}()

	// Give the waiter time to park, then wake it. If Notify never reaches a
	// parked waiter the select below fails the test after five seconds.
	time.Sleep(10 * time.Millisecond)
	a.Notify()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("adaptive waiter was never woken")
	}

	wg.Wait()
}
