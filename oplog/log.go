package oplog

// Log tracks a sequence of operations of type O against a buffer of type B,
// and how many of them have already been applied to the "previous" buffer
// half (the one that was the writer-side as of the last Apply call).
//
// The two-phase replay — apply_last the already-seen prefix and drop it,
// then apply the rest non-terminally — lets a caller swap buffer halves and
// bring both forward to the same state, one Apply call per half, without
// ever replaying an operation more times than there are halves.
//
// If an operation panics mid-Apply, the log has already committed to having
// consumed the previously-applied prefix (the prefix is dropped and applied
// is updated before either batch runs): the two buffer halves may end up observably
// different. This is a documented, not silently-swallowed, limitation —
// callers that cannot tolerate divergence on panic must not panic inside
// Apply/ApplyLast.
type Log[B any, O Operation[B]] struct {
	ops     []O
	applied int
}

// New creates an empty Log.
func New[B any, O Operation[B]]() *Log[B, O] {
	return &Log[B, O]{}
}

// FromSlice creates a Log that already owns ops, none of which are
// considered applied yet.
func FromSlice[B any, O Operation[B]](ops []O) *Log[B, O] {
	return &Log[B, O]{ops: ops}
}

// Push appends op to the log.
func (l *Log[B, O]) Push(op O) {
	l.ops = append(l.ops, op)
}

// Unapplied returns the operations that have not yet been applied to the
// previous buffer half.
func (l *Log[B, O]) Unapplied() []O {
	return l.ops[l.applied:]
}

// Len returns the total number of operations still retained by the log,
// applied or not.
func (l *Log[B, O]) Len() int {
	return len(l.ops)
}

// Apply drops the previously-applied prefix from the log and records the
// remaining length as the new applied count; then finalizes that prefix
// against buffer via ApplyLast (or Apply, if the operation doesn't
// implement LastApplier); then applies the remaining (still-pending) batch
// against buffer via Apply, without dropping it.
//
// Call this once per buffer half immediately before or after flipping which
// half is the writer-side, so each half eventually sees every operation
// applied to it exactly once per occasion it was the writer-side buffer.
func (l *Log[B, O]) Apply(buffer *B) {
	prefix := l.ops[:l.applied]
	l.ops = l.ops[l.applied:]
	l.applied = len(l.ops)

	for _, op := range prefix {
		applyLast[B](op, buffer)
	}

	for i := range l.ops {
		l.ops[i].Apply(buffer)
	}
}

// ShrinkToFit releases any spare capacity retained by the log's backing
// slice beyond what its current length needs.
func (l *Log[B, O]) ShrinkToFit() {
	if len(l.ops) == cap(l.ops) {
		return
	}
	trimmed := make([]O, len(l.ops))
	copy(trimmed, l.ops)
	l.ops = trimmed
}
