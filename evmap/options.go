package evmap

import "github.com/clarkmcc/go-dbuf/wait"

// OptionFunc allows customizing the Options with functions.
type OptionFunc func(*Options)

type Options struct {
	// MaxReplicationWriteLag determines the maximum number of writes that the
	// map can observe before those writes are replicated to the readers.
	MaxReplicationWriteLag int

	// Wait selects the backoff policy the map's hazard strategy uses while
	// draining readers during a Refresh. Defaults to wait.Default() if unset.
	Wait wait.Strategy
}

// WithMaxReplicationWriteLag sets the MaxReplicationWriteLag.
func WithMaxReplicationWriteLag(writes int) OptionFunc {
	return func(options *Options) {
		options.MaxReplicationWriteLag = writes
	}
}

// WithWaitStrategy overrides the default wait/backoff policy used while a
// Refresh drains outstanding readers.
func WithWaitStrategy(w wait.Strategy) OptionFunc {
	return func(options *Options) {
		options.Wait = w
	}
}
