package engine

import (
	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"
)

// Bound tells how a stored value relates to the true value of a position.
type Bound uint8

const (
	// Exact: the value is the true value at the stored depth.
	Exact Bound = iota
	// LowerBound: the search failed high, the true value is at least this.
	LowerBound
	// UpperBound: the search failed low, the true value is at most this.
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case LowerBound:
		return "lower"
	case UpperBound:
		return "upper"
	}
	return "exact"
}

type TTEntry struct {
	Hash     uint64
	Value    int32
	Bound    Bound
	Depth    int
	BestMove dragontoothmg.Move
}

// TableStats counts writes since creation or the last Clear.
type TableStats struct {
	Stores     uint64
	Overwrites uint64
	Evictions  uint64
}

func (s TableStats) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("stores", s.Stores).
		Uint64("overwrites", s.Overwrites).
		Uint64("evictions", s.Evictions)
}

// TransTable caches search results by position hash. It holds at most
// Capacity entries and evicts the oldest inserted one when full. Only the
// hash is compared, so a 64-bit collision returns a foreign entry.
//
// A TransTable is not safe for concurrent use.
type TransTable struct {
	capacity int
	entries  map[uint64]TTEntry
	// ring holds hashes in insertion order; next is the slot to overwrite
	// once the ring is full.
	ring  []uint64
	next  int
	stats TableStats
}

// NewTransTable returns a table holding up to maxEntries entries. A table
// with no capacity stores nothing.
func NewTransTable(maxEntries int) *TransTable {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &TransTable{
		capacity: maxEntries,
		entries:  make(map[uint64]TTEntry),
	}
}

// Store records a search result. An existing entry for hash is only
// replaced by a strictly deeper result and keeps its place in the eviction
// order.
func (tt *TransTable) Store(hash uint64, value int32, bound Bound, depth int, bestMove dragontoothmg.Move) {
	if tt.capacity == 0 {
		return
	}
	entry := TTEntry{Hash: hash, Value: value, Bound: bound, Depth: depth, BestMove: bestMove}

	if old, ok := tt.entries[hash]; ok {
		if depth > old.Depth {
			tt.entries[hash] = entry
			tt.stats.Overwrites++
		}
		return
	}

	if len(tt.ring) < tt.capacity {
		tt.ring = append(tt.ring, hash)
	} else {
		delete(tt.entries, tt.ring[tt.next])
		tt.ring[tt.next] = hash
		tt.next = (tt.next + 1) % tt.capacity
		tt.stats.Evictions++
	}
	tt.entries[hash] = entry
	tt.stats.Stores++
}

// Lookup returns the entry stored for hash. It is a pure read.
func (tt *TransTable) Lookup(hash uint64) (TTEntry, bool) {
	entry, ok := tt.entries[hash]
	return entry, ok
}

func (tt *TransTable) Len() int {
	return len(tt.entries)
}

func (tt *TransTable) Capacity() int {
	return tt.capacity
}

func (tt *TransTable) Stats() TableStats {
	return tt.stats
}

// Clear drops every entry and resets the counters.
func (tt *TransTable) Clear() {
	tt.entries = make(map[uint64]TTEntry)
	tt.ring = tt.ring[:0]
	tt.next = 0
	tt.stats = TableStats{}
}
