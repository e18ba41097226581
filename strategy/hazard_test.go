package strategy

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHazardStrategyDrainSemantics(t *testing.T) {
	s := NewHazardStrategy()
	writer := s.CreateWriterTag()

	readerA := s.CreateReaderTagFromWriter(writer)
	guardA := s.BeginReadGuard(readerA)

	token, err := s.ValidateSwap(writer)
	require.NoError(t, err)
	capture := s.CaptureReaders(writer, token)

	assert.False(t, s.HaveReadersExited(writer, capture), "reader A is still active")

	readerB := s.CreateReaderTagFromReader(readerA)
	guardB := s.BeginReadGuard(readerB)
	assert.False(t, s.HaveReadersExited(writer, capture), "B began after capture and must not affect it")

	s.EndReadGuard(readerA, guardA)
	assert.True(t, s.HaveReadersExited(writer, capture), "only A was captured, and A has exited")

	s.EndReadGuard(readerB, guardB)
}

func TestHazardStrategyNoReadersFinishesWithoutCapture(t *testing.T) {
	s := NewHazardStrategy()
	writer := s.CreateWriterTag()

	token, err := s.ValidateSwap(writer)
	require.NoError(t, err)
	capture := s.CaptureReaders(writer, token)

	assert.True(t, s.HaveReadersExited(writer, capture))
}

func TestHazardStrategyHaveReadersExitedIsIdempotent(t *testing.T) {
	s := NewHazardStrategy()
	writer := s.CreateWriterTag()
	reader := s.CreateReaderTagFromWriter(writer)
	guard := s.BeginReadGuard(reader)

	token, err := s.ValidateSwap(writer)
	require.NoError(t, err)
	capture := s.CaptureReaders(writer, token)

	first := s.HaveReadersExited(writer, capture)
	second := s.HaveReadersExited(writer, capture)
	assert.Equal(t, first, second)

	s.EndReadGuard(reader, guard)
}

func TestHazardStrategyReaderSlotReuse(t *testing.T) {
	s := NewHazardStrategy()
	writer := s.CreateWriterTag()
	reader := s.CreateReaderTagFromWriter(writer)

	for i := 0; i < 1000; i++ {
		guard := s.BeginReadGuard(reader)
		s.EndReadGuard(reader, guard)
	}

	count := 0
	for p := s.head.Load(); p != nil; p = p.next {
		count++
	}
	assert.Equal(t, 1, count, "only one slot should ever have been allocated")
}

func TestHazardStrategyGenerationWraparound(t *testing.T) {
	s := NewHazardStrategy()
	writer := s.CreateWriterTag()
	s.generation.Store(^uint32(0)) // largest odd generation: the next swap wraps to 1

	reader := s.CreateReaderTagFromWriter(writer)
	guard := s.BeginReadGuard(reader)

	token, err := s.ValidateSwap(writer)
	require.NoError(t, err)
	capture := s.CaptureReaders(writer, token)
	assert.False(t, s.HaveReadersExited(writer, capture))

	s.EndReadGuard(reader, guard)
	assert.True(t, s.HaveReadersExited(writer, capture))

	// A second swap right after the wrap must still work correctly.
	reader2 := s.CreateReaderTagFromReader(reader)
	guard2 := s.BeginReadGuard(reader2)
	token2, err := s.ValidateSwap(writer)
	require.NoError(t, err)
	capture2 := s.CaptureReaders(writer, token2)
	assert.False(t, s.HaveReadersExited(writer, capture2))
	s.EndReadGuard(reader2, guard2)
	assert.True(t, s.HaveReadersExited(writer, capture2))
}

func TestHazardStrategyConcurrentReaders(t *testing.T) {
	s := NewHazardStrategy()
	writer := s.CreateWriterTag()

	const readers = 32
	const iterations = 500

	var wg sync.WaitGroup
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			tag := s.CreateReaderTagFromWriter(writer)
			for j := 0; j < iterations; j++ {
				guard := s.BeginReadGuard(tag)
				s.EndReadGuard(tag, guard)
			}
		}()
	}
	wg.Wait()

	token, err := s.ValidateSwap(writer)
	require.NoError(t, err)
	capture := s.CaptureReaders(writer, token)
	assert.True(t, s.HaveReadersExited(writer, capture), "all readers have finished")
}
