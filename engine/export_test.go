package engine

import (
	"context"
	"time"

	"github.com/dylhunn/dragontoothmg"
)

// Searcher exposes the recursive search to the external tests.
type Searcher struct {
	s *searcher
}

func NewSearcher(table *TransTable, opts Options) *Searcher {
	limit := opts.TimeLimit
	if limit == 0 {
		limit = time.Hour
	}
	return &Searcher{s: &searcher{
		table:           table,
		qDepth:          opts.QuiescenceDepth,
		trustQuiescence: opts.TrustQuiescence,
		timer:           newTimeHandler(context.Background(), opts.Clock, limit),
	}}
}

func (s *Searcher) Search(pos Position, depth int, maximizing bool) (int32, dragontoothmg.Move, error) {
	return s.s.search(pos, depth, maximizing, -Infinity, Infinity)
}

func (s *Searcher) Quiesce(pos Position, maximizing bool, depth int) (int32, error) {
	return s.s.quiesce(pos, maximizing, depth, -Infinity, Infinity)
}

func (s *Searcher) Stats() SearchStats {
	return s.s.stats
}

func OrderMoves(pos Position, moves []dragontoothmg.Move, maximizing bool, ttMove dragontoothmg.Move, ttHit bool) []dragontoothmg.Move {
	return orderMoves(pos, moves, maximizing, ttMove, ttHit)
}
