/*
Copyright (C) 2020 Print Tracker, LLC - All Rights Reserved

Unauthorized copying of this file, via any medium is strictly prohibited
as this source code is proprietary and confidential. Dissemination of this
information or reproduction of this material is strictly forbidden unless
prior written permission is obtained from Print Tracker, LLC.
*/

// Package evmap is a generic, double-buffered hash map offering low-
// contention concurrent access: readers never wait on writers, and writers
// wait only for readers still reading the buffer half they are about to
// reuse, at the cost of eventual consistency — readers only observe writes
// once the writer explicitly calls Refresh. It is built on top of the
// package dbuf double buffer and its oplog replication layer instead of a
// mutex-guarded pointer swap.
package evmap

import (
	"sync"

	dbuf "github.com/clarkmcc/go-dbuf"
	"github.com/clarkmcc/go-dbuf/oplog"
	"github.com/clarkmcc/go-dbuf/strategy"
)

// Map is a generic hashmap that provides low-contention, concurrent access
// to the underlying values. Readers never wait on writers, and writers wait
// only for readers still reading the half they are about to reuse, which
// makes this data structure optimal for high-read, low-write
// scenarios. It does this by introducing eventual consistency, where
// readers are exposed to writes only when you explicitly say so.
//
// The underlying data structure is a package dbuf double buffer of
// map[K]V. Writes are applied immediately to the writer-side map and
// queued in an oplog; reads observe the reader-side map via a registered
// dbuf.Reader. At the point where a writer wants to expose its writes to
// readers, it calls Refresh: the oplog replays its queued writes onto the
// writer-side map, then the double buffer swaps which half is writer-side.
// The half that just became writer-side receives those same writes at the
// following Refresh, so both halves stay eventually in sync.
type Map[K comparable, V any] struct {
	writer *oplog.Writer[map[K]V, Op[K, V]]
	reader *dbuf.Reader[map[K]V]

	// writeLock serializes writers and the oplog they share; it plays the
	// same role as the teacher's own writeLock.
	writeLock sync.Mutex

	// Tracks the number of writes since the last refresh.
	replicationWriteLag int

	// The number of writes that are allowed to occur without making them
	// available to the readers.
	maxReplicationWriteLag int
}

// NewMap creates a new Map of the given type with the provided options.
func NewMap[K comparable, V any](options ...OptionFunc) *Map[K, V] {
	opts := Options{}
	for _, fn := range options {
		fn(&opts)
	}

	var hazard *strategy.HazardStrategy
	if opts.Wait != nil {
		hazard = strategy.NewHazardStrategyWithWait(opts.Wait)
	} else {
		hazard = strategy.NewHazardStrategy()
	}

	shared := dbuf.NewShared(map[K]V{}, map[K]V{}, hazard)
	writer := oplog.FromWriter[map[K]V, Op[K, V]](dbuf.NewWriter[map[K]V](shared))

	return &Map[K, V]{
		writer:                 writer,
		reader:                 writer.Reader(),
		maxReplicationWriteLag: opts.MaxReplicationWriteLag,
	}
}

// Refresh exposes the current state of the map to the readers. Under the
// hood, refreshing replays the oplog onto the writer-side half and then
// swaps which buffer half is writer-side; the half that becomes writer-side
// receives the same writes at the next Refresh.
func (m *Map[K, V]) Refresh() {
	m.writeLock.Lock()
	defer m.writeLock.Unlock()

	m.writer.SwapBuffers()
	m.replicationWriteLag = 0
}

// Insert adds or overwrites the value at key, visible to readers only after
// the next Refresh.
func (m *Map[K, V]) Insert(key K, value V) {
	m.writeLock.Lock()
	defer m.writeLock.Unlock()
	defer m.observeWrite()

	writerSide, _ := m.writer.Writer().Split()
	(*writerSide)[key] = value
	m.writer.Apply(insertOp[K, V]{key: key, value: value})
}

// Delete removes key and reports whether it was present beforehand.
func (m *Map[K, V]) Delete(key K) bool {
	m.writeLock.Lock()
	defer m.writeLock.Unlock()
	defer m.observeWrite()

	// The writer-side half has not yet received the last published batch, so
	// presence is the reader-side state plus the writes queued since.
	writerSide, readerSide := m.writer.Writer().Split()
	_, ok := (*readerSide)[key]
	for _, op := range m.writer.Unapplied() {
		switch op := op.(type) {
		case insertOp[K, V]:
			ok = ok || op.key == key
		case deleteOp[K, V]:
			ok = ok && op.key != key
		case clearOp[K, V]:
			ok = false
		}
	}
	delete(*writerSide, key)
	m.writer.Apply(deleteOp[K, V]{key: key})
	return ok
}

// Clear removes every key from the map.
func (m *Map[K, V]) Clear() {
	m.writeLock.Lock()
	defer m.writeLock.Unlock()
	defer m.observeWrite()

	writerSide, _ := m.writer.Writer().Split()
	*writerSide = make(map[K]V)
	m.writer.Apply(clearOp[K, V]{})
}

// Has returns whether the map, as last refreshed, has the specified key.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Get returns the value at the provided key as of the last Refresh, and
// whether the key exists. If the map's Writer has somehow become
// unreachable (it normally outlives every Map method call; see
// dbuf.ErrUpgradeFailed) Get reports the key as absent rather than
// panicking.
func (m *Map[K, V]) Get(key K) (V, bool) {
	guard, err := m.reader.TryGet()
	if err != nil {
		var zero V
		return zero, false
	}
	defer guard.Release()

	v, ok := (*guard.Get())[key]
	return v, ok
}

// observeWrite observes a write and determines whether to refresh based on
// configuration.
func (m *Map[K, V]) observeWrite() {
	m.replicationWriteLag++
	if m.maxReplicationWriteLag > 0 && m.replicationWriteLag > m.maxReplicationWriteLag {
		m.writer.SwapBuffers()
		m.replicationWriteLag = 0
	}
}
