package oplog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

type appendOp struct {
	value int
}

func (o appendOp) Apply(buffer *[]int) {
	*buffer = append(*buffer, o.value)
}

type countingOp struct {
	value      int
	applyCount *int
	lastCount  *int
}

func (o countingOp) Apply(buffer *[]int) {
	*o.applyCount++
	*buffer = append(*buffer, o.value)
}

func (o countingOp) ApplyLast(buffer *[]int) {
	*o.lastCount++
	*buffer = append(*buffer, o.value)
}

func TestLogAppliesPendingThenFinalizesOnNextApply(t *testing.T) {
	log := New[[]int, appendOp]()
	log.Push(appendOp{value: 1})
	log.Push(appendOp{value: 2})

	var front, back []int

	log.Apply(&front)
	assert.Equal(t, []int{1, 2}, front)
	assert.Empty(t, back, "back buffer has not seen the ops yet")

	log.Apply(&back)
	if diff := cmp.Diff(front, back); diff != "" {
		t.Errorf("front and back buffers diverged after both replayed the same ops (-front +back):\n%s", diff)
	}

	log.Push(appendOp{value: 3})
	log.Apply(&front)
	assert.Equal(t, []int{1, 2, 3}, front, "front buffer only gets the new op, not a replay of 1 and 2")
}

func TestLogUnappliedOnlyReturnsPendingOps(t *testing.T) {
	log := New[[]int, appendOp]()
	log.Push(appendOp{value: 1})
	assert.Len(t, log.Unapplied(), 1)

	var buf []int
	log.Apply(&buf)
	assert.Empty(t, log.Unapplied())

	log.Push(appendOp{value: 2})
	assert.Len(t, log.Unapplied(), 1)
}

func TestLogUsesApplyLastForTheFinalizingPass(t *testing.T) {
	var applyCount, lastCount int
	log := New[[]int, countingOp]()
	log.Push(countingOp{value: 1, applyCount: &applyCount, lastCount: &lastCount})

	var front, back []int
	log.Apply(&front)
	assert.Equal(t, 1, applyCount)
	assert.Equal(t, 0, lastCount)

	log.Apply(&back)
	assert.Equal(t, 1, applyCount, "the second buffer's pass is a finalizing apply_last, not another apply")
	assert.Equal(t, 1, lastCount)
}
