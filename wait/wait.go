// Package wait provides pluggable policies for how a writer pauses while
// waiting for readers to drain during a buffer swap.
package wait

// State carries a single pause loop's backoff state across repeated Wait
// calls.
type State any

// Strategy is a wait policy: Wait pauses the calling goroutine for some
// bounded amount of time given its evolving state, and Notify wakes any
// goroutine blocked in Wait (called by a reader as it exits a guard).
type Strategy interface {
	// NewState creates fresh state for one drain loop.
	NewState() State

	// Wait pauses briefly, mutating state as it goes (e.g. to track an
	// exponential backoff counter).
	Wait(state State)

	// Notify wakes one goroutine parked in Wait, if any.
	Notify()
}

// Default returns the strategy's default wait policy: spin first, then park
// on a condition variable once spinning has saturated.
func Default() Strategy {
	return NewAdaptive()
}
