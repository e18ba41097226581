// Package dbuf implements a concurrent double-buffered data store: a single
// writer mutates one half of a pair of buffers while many readers
// concurrently observe a consistent, unchanging snapshot of the other half.
//
// At controlled moments (Writer.TrySwapBuffers, or the two-phase
// TryStartBufferSwap/FinishSwap) the two halves are swapped. Once no reader
// is still observing the old write-side, the writer may resume mutating it.
// Readers never wait on the writer; the writer waits on readers only when
// finishing a swap, for those still reading the half it is about to
// reclaim. Readers may observe a buffer up to one swap behind the writer,
// never a torn or mixed view.
//
// The low-level coordination between writer and readers is delegated to a
// pluggable strategy (see package strategy); the primary implementation is a
// hazard-pointer strategy that tracks reader presence without putting
// readers on a lock.
//
// This package has no persistence, no cross-process sharing, and supports at
// most one writer at a time. Readers are not guaranteed to see the newest
// value, only a consistent one.
package dbuf
