package engine_test

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/matryer/is"

	"chess-search/engine"
)

func TestStoreLookup(t *testing.T) {
	is := is.New(t)
	tt := engine.NewTransTable(8)

	_, ok := tt.Lookup(42)
	is.True(!ok)

	tt.Store(42, 120, engine.LowerBound, 3, dragontoothmg.Move(77))
	e, ok := tt.Lookup(42)
	is.True(ok)
	is.Equal(e, engine.TTEntry{Hash: 42, Value: 120, Bound: engine.LowerBound, Depth: 3, BestMove: 77})
	is.Equal(tt.Len(), 1)
	is.Equal(tt.Capacity(), 8)
}

func TestReplaceOnlyDeeper(t *testing.T) {
	is := is.New(t)
	tt := engine.NewTransTable(8)

	tt.Store(1, 10, engine.Exact, 3, 0)
	tt.Store(1, 20, engine.UpperBound, 3, 0)
	tt.Store(1, 30, engine.UpperBound, 2, 0)
	e, _ := tt.Lookup(1)
	is.Equal(e.Value, int32(10))
	is.Equal(e.Bound, engine.Exact)

	tt.Store(1, 40, engine.LowerBound, 4, 5)
	e, _ = tt.Lookup(1)
	is.Equal(e.Value, int32(40))
	is.Equal(e.Depth, 4)
	is.Equal(e.BestMove, dragontoothmg.Move(5))
	is.Equal(tt.Len(), 1)
}

func TestFIFOEviction(t *testing.T) {
	is := is.New(t)
	tt := engine.NewTransTable(3)

	for h := uint64(1); h <= 4; h++ {
		tt.Store(h, int32(h), engine.Exact, 1, 0)
	}
	is.Equal(tt.Len(), 3)
	_, ok := tt.Lookup(1)
	is.True(!ok) // oldest went first

	// Deepening an entry does not make it younger, and neither do lookups.
	tt.Store(2, 99, engine.Exact, 5, 0)
	for i := 0; i < 10; i++ {
		tt.Lookup(2)
	}
	tt.Store(5, 5, engine.Exact, 1, 0)
	_, ok = tt.Lookup(2)
	is.True(!ok)

	tt.Store(6, 6, engine.Exact, 1, 0)
	_, ok = tt.Lookup(3)
	is.True(!ok)
	for _, h := range []uint64{4, 5, 6} {
		_, ok = tt.Lookup(h)
		is.True(ok)
	}
	is.Equal(tt.Stats().Evictions, uint64(3))
}

func TestZeroCapacityStoresNothing(t *testing.T) {
	is := is.New(t)
	tt := engine.NewTransTable(0)
	tt.Store(7, 1, engine.Exact, 1, 0)
	_, ok := tt.Lookup(7)
	is.True(!ok)
	is.Equal(tt.Len(), 0)
}

func TestClear(t *testing.T) {
	is := is.New(t)
	tt := engine.NewTransTable(2)
	tt.Store(1, 1, engine.Exact, 1, 0)
	tt.Store(2, 2, engine.Exact, 1, 0)
	tt.Clear()
	is.Equal(tt.Len(), 0)
	is.Equal(tt.Stats(), engine.TableStats{})

	// the ring starts over after a clear
	tt.Store(3, 3, engine.Exact, 1, 0)
	tt.Store(4, 4, engine.Exact, 1, 0)
	tt.Store(5, 5, engine.Exact, 1, 0)
	_, ok := tt.Lookup(3)
	is.True(!ok)
	_, ok = tt.Lookup(4)
	is.True(ok)
}

func TestLookupIsPure(t *testing.T) {
	is := is.New(t)
	tt := engine.NewTransTable(2)
	tt.Store(1, 1, engine.Exact, 1, 0)
	tt.Store(2, 2, engine.Exact, 1, 0)
	before := tt.Stats()

	for h := uint64(0); h < 5; h++ {
		tt.Lookup(h)
	}
	is.Equal(tt.Stats(), before)
	is.Equal(tt.Len(), 2)

	// eviction order is untouched by the reads above
	tt.Store(3, 3, engine.Exact, 1, 0)
	_, ok := tt.Lookup(1)
	is.True(!ok)
}
