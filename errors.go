package dbuf

import "errors"

var (
	// ErrSwapValidationFailed wraps every error a Strategy's ValidateSwap
	// returns, so callers can check for "some swap was refused" with
	// errors.Is(err, ErrSwapValidationFailed) without depending on which
	// concrete strategy they're using; the strategy-specific error (for
	// example strategy.ErrLocalStrategyActiveReader) is still available via
	// the same errors.Is/errors.As chain. The hazard strategy never returns
	// an error here at all.
	ErrSwapValidationFailed = errors.New("dbuf: swap validation failed")

	// ErrUpgradeFailed is returned by Reader.TryGet when the shared state the
	// reader's weak reference points to has already been collected (the
	// writer that owned it is gone). Once this occurs for a given reader, it
	// will continue to occur on every subsequent call.
	ErrUpgradeFailed = errors.New("dbuf: reader's shared state is gone")
)
