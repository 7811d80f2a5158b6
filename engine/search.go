package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog/log"
)

// maxSearchDepth caps iterative deepening when no depth limit is given, so
// a search of a tiny tree cannot loop until the deadline.
const maxSearchDepth = 128

// Options tune a single Play call.
type Options struct {
	TimeLimit       time.Duration
	QuiescenceDepth int
	// TableSize is the entry capacity of a Session's table.
	TableSize int
	// MaxDepth stops deepening after this many plies; zero means no limit.
	MaxDepth int
	// TrustQuiescence makes leaves adopt the quiescence value as is, instead
	// of only when it is worse for the side to move than the static score.
	TrustQuiescence bool
	// Clock replaces time.Now, for tests.
	Clock Clock
}

// Result is the outcome of a Play call.
type Result struct {
	Move dragontoothmg.Move
	// Score is the static evaluation of the searched position from the
	// maximizing side's point of view.
	Score int32
	// Depth is the deepest completed iteration.
	Depth int
	// SearchScore is the value that iteration returned for Move.
	SearchScore int32
	Stats       SearchStats
	Elapsed     time.Duration
}

type searcher struct {
	table           *TransTable
	qDepth          int
	trustQuiescence bool
	timer           *TimeHandler
	stats           SearchStats
}

// Play picks a move for pos by iterative deepening within timeLimit,
// sharing table across iterations. maximizing names the side whose score is
// maximized, normally the side to move.
func Play(ctx context.Context, pos Position, maximizing bool, table *TransTable, quiescenceDepth int, timeLimit time.Duration) (Result, error) {
	return PlayWith(ctx, pos, maximizing, table, Options{
		TimeLimit:       timeLimit,
		QuiescenceDepth: quiescenceDepth,
	})
}

// PlayWith is Play with the full set of options. pos is left unchanged.
func PlayWith(ctx context.Context, pos Position, maximizing bool, table *TransTable, opts Options) (Result, error) {
	if outcome := pos.Outcome(); outcome.Over() {
		return Result{}, fmt.Errorf("%w (%s): %s", ErrGameOver, outcome, pos.FEN())
	}

	s := &searcher{
		table:           table,
		qDepth:          opts.QuiescenceDepth,
		trustQuiescence: opts.TrustQuiescence,
		timer:           newTimeHandler(ctx, opts.Clock, opts.TimeLimit),
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 || maxDepth > maxSearchDepth {
		maxDepth = maxSearchDepth
	}

	var res Result
	for depth := 1; depth <= maxDepth; depth++ {
		// Every iteration starts from a fresh copy so nothing of an aborted
		// iteration leaks into the next.
		value, move, err := s.search(pos.Clone(), depth, maximizing, -Infinity, Infinity)
		if errors.Is(err, ErrTimeout) {
			s.stats.Timeouts++
			log.Debug().Int("depth", depth).Dur("elapsed", s.timer.Elapsed()).Msg("iteration-timed-out")
			break
		}
		if err != nil {
			return Result{}, err
		}
		res.Move, res.Depth, res.SearchScore = move, depth, value
		log.Debug().
			Int("plies", depth).
			Str("move", move.String()).
			Int32("score", value).
			Object("stats", s.stats).
			Dur("elapsed", s.timer.Elapsed()).
			Msg("deepening-iteratively")
	}

	if res.Depth == 0 {
		return Result{}, fmt.Errorf("%w: limit %s", ErrBudgetTooSmall, opts.TimeLimit)
	}
	res.Score = perspective(Evaluate(pos), maximizing)
	res.Stats = s.stats
	res.Elapsed = s.timer.Elapsed()

	log.Info().
		Str("move", res.Move.String()).
		Int("depth", res.Depth).
		Int32("score", res.Score).
		Int32("search-score", res.SearchScore).
		Object("stats", res.Stats).
		Object("table", table.Stats()).
		Dur("elapsed", res.Elapsed).
		Msg("best-move")
	return res, nil
}

// search is negamax with alpha-beta pruning. The value is from the
// maximizing side's point of view; the move is meaningful at the root only.
// pos is restored before search returns, including on timeout.
func (s *searcher) search(pos Position, depth int, maximizing bool, alpha, beta int32) (int32, dragontoothmg.Move, error) {
	s.stats.Nodes++
	alphaOrig := alpha

	entry, ttHit := s.probe(pos)
	if ttHit && entry.Depth >= depth {
		switch entry.Bound {
		case Exact:
			s.stats.TTCutoffs++
			return entry.Value, entry.BestMove, nil
		case LowerBound:
			alpha = max32(alpha, entry.Value)
		case UpperBound:
			beta = min32(beta, entry.Value)
		}
		if alpha >= beta {
			s.stats.TTCutoffs++
			return entry.Value, entry.BestMove, nil
		}
	}

	outcome := pos.Outcome()
	if depth == 0 || outcome.Over() {
		value, err := s.leaf(pos, outcome, maximizing, alpha, beta)
		return value, 0, err
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return 0, 0, fmt.Errorf("%w: %s", ErrNoLegalMoves, pos.FEN())
	}
	moves = orderMoves(pos, moves, maximizing, entry.BestMove, ttHit)

	value := -Infinity
	bestIdx := 0
	for i, m := range moves {
		v, err := s.child(pos, m, depth, maximizing, alpha, beta)
		if err != nil {
			return 0, 0, err
		}
		if v > value {
			value = v
			bestIdx = i
		}
		alpha = max32(alpha, value)
		if alpha >= beta {
			s.stats.BetaCutoffs++
			break
		}
	}

	bound := Exact
	switch {
	case value <= alphaOrig:
		bound = UpperBound
	case value >= beta:
		bound = LowerBound
	}
	s.table.Store(pos.Hash(), value, bound, depth, moves[bestIdx])
	return value, moves[bestIdx], nil
}

func (s *searcher) probe(pos Position) (TTEntry, bool) {
	entry, ok := s.table.Lookup(pos.Hash())
	if ok {
		s.stats.TTHits++
	} else {
		s.stats.TTMisses++
	}
	return entry, ok
}

func (s *searcher) child(pos Position, m dragontoothmg.Move, depth int, maximizing bool, alpha, beta int32) (int32, error) {
	undo := pos.Apply(m)
	defer undo()
	if s.timer.TimeStatus() {
		return 0, ErrTimeout
	}
	v, _, err := s.search(pos, depth-1, !maximizing, -beta, -alpha)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

// leaf scores a horizon or terminal node. The quiescence value replaces the
// static one only when it is lower, unless quiescence is trusted.
func (s *searcher) leaf(pos Position, outcome Outcome, maximizing bool, alpha, beta int32) (int32, error) {
	static := perspective(evaluate(pos, outcome), maximizing)
	if outcome.Over() {
		return static, nil
	}
	q, err := s.quiesce(pos, maximizing, s.qDepth, alpha, beta)
	if err != nil {
		return 0, err
	}
	if s.trustQuiescence || q < static {
		return q, nil
	}
	return static, nil
}
