package dbuf

import (
	"runtime"
	"testing"

	"github.com/clarkmcc/go-dbuf/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLocalStrategySingleThreaded(t *testing.T) {
	shared := NewLocalShared(1, 2)
	writer := NewWriter[int](shared)

	writerSide, readerSide := writer.Split()
	assert.Equal(t, 1, *writerSide)
	assert.Equal(t, 2, *readerSide)

	*writerSide = 42
	require.NoError(t, writer.TrySwapBuffers())

	writerSide, readerSide = writer.Split()
	assert.Equal(t, 2, *writerSide)
	assert.Equal(t, 42, *readerSide)

	reader := writer.Reader()
	guard, err := reader.TryGet()
	require.NoError(t, err)
	assert.Equal(t, 42, *guard.Get())
	guard.Release()
}

func TestWriterLocalStrategyRefusesSwapWithActiveReader(t *testing.T) {
	shared := NewLocalShared(1, 2)
	writer := NewWriter[int](shared)
	reader := writer.Reader()

	guard, err := reader.TryGet()
	require.NoError(t, err)

	err = writer.TrySwapBuffers()
	assert.ErrorIs(t, err, strategy.ErrLocalStrategyActiveReader)
	assert.ErrorIs(t, err, ErrSwapValidationFailed, "the strategy-specific error must still be reachable through the generic sentinel")

	guard.Release()
	assert.NoError(t, writer.TrySwapBuffers())
}

func TestWriterHazardStrategyDrainsBeforeFinishing(t *testing.T) {
	shared := NewShared(1, 2, strategy.NewHazardStrategy())
	writer := NewWriter[int](shared)
	reader := writer.Reader()

	guard, err := reader.TryGet()
	require.NoError(t, err)

	swap, err := writer.TryStartBufferSwap()
	require.NoError(t, err)
	assert.False(t, writer.IsSwapFinished(swap), "the active reader must block completion")

	guard.Release()
	assert.True(t, writer.IsSwapFinished(swap))

	writer.FinishSwap(swap)
}

// TestWriterHazardStrategyReaderDuringDrainSeesNewSide covers spec §8
// scenario 3: a reader that begins after a swap has started (but before it
// has finished draining) must observe the new reader-side immediately, must
// not itself be captured by that swap, and must not block or invalidate the
// still-draining reader that was captured.
func TestWriterHazardStrategyReaderDuringDrainSeesNewSide(t *testing.T) {
	shared := NewShared(1, 2, strategy.NewHazardStrategy())
	writer := NewWriter[int](shared)
	readerA := writer.Reader()

	guardA, err := readerA.TryGet()
	require.NoError(t, err)
	assert.Equal(t, 2, *guardA.Get())

	writerSide, _ := writer.Split()
	*writerSide = 42

	swap, err := writer.TryStartBufferSwap()
	require.NoError(t, err)
	assert.False(t, writer.IsSwapFinished(swap), "A is still active and was captured")

	readerB := writer.Reader()
	guardB, err := readerB.TryGet()
	require.NoError(t, err)
	assert.Equal(t, 42, *guardB.Get(), "B began after the swap started and must see the new reader-side")
	assert.False(t, writer.IsSwapFinished(swap), "B began after capture and must not affect it")

	guardA.Release()
	assert.True(t, writer.IsSwapFinished(swap))
	assert.Equal(t, 42, *guardB.Get(), "B's guard must remain valid once the swap finishes")

	guardB.Release()
	writer.FinishSwap(swap)
}

func TestWriterHazardStrategyReaderSeesStableSnapshotDuringSwap(t *testing.T) {
	shared := NewShared(1, 2, strategy.NewHazardStrategy())
	writer := NewWriter[int](shared)
	reader := writer.Reader()

	guard, err := reader.TryGet()
	require.NoError(t, err)
	before := *guard.Get()

	writerSide, _ := writer.Split()
	*writerSide = 999
	swap, err := writer.TryStartBufferSwap()
	require.NoError(t, err)

	assert.Equal(t, before, *guard.Get(), "a guard acquired before the swap must keep observing its original buffer")
	guard.Release()
	writer.FinishSwap(swap)

	guard2, err := reader.TryGet()
	require.NoError(t, err)
	assert.Equal(t, 999, *guard2.Get())
	guard2.Release()
}

func TestReaderUpgradeFailsAfterWriterCollected(t *testing.T) {
	var reader *Reader[int]
	func() {
		shared := NewShared(1, 2, strategy.NewHazardStrategy())
		writer := NewWriter[int](shared)
		reader = writer.Reader()
		// writer (and its Shared) become unreachable once this closure returns.
	}()

	var err error
	for i := 0; i < 10; i++ {
		runtime.GC()
		_, err = reader.TryGet()
		if err != nil {
			break
		}
	}
	require.ErrorIs(t, err, ErrUpgradeFailed)

	cloned := reader.Clone()
	_, err = cloned.TryGet()
	assert.ErrorIs(t, err, ErrUpgradeFailed)
}

func TestDelayedWriterSplitsStartAndFinish(t *testing.T) {
	shared := NewShared(1, 2, strategy.NewHazardStrategy())
	dw := NewDelayedWriter(NewWriter[int](shared))

	reader := dw.Writer().Reader()
	guard, err := reader.TryGet()
	require.NoError(t, err)

	require.NoError(t, dw.TryStartBufferSwap())
	assert.False(t, dw.IsSwapFinished())

	_, ok := dw.TryWriterMut()
	assert.False(t, ok, "writer-side mutation must be blocked while a swap is outstanding")

	guard.Release()
	assert.True(t, dw.IsSwapFinished())

	w, ok := dw.TryWriterMut()
	require.True(t, ok)
	assert.NotNil(t, w)
}
