package engine

import (
	"github.com/dylhunn/dragontoothmg"
	"github.com/samber/lo"
)

// quiesce extends a leaf along captures and checks until the position is
// quiet or depth runs out. Fail-hard: the result lies in [alpha, beta]
// except when the stand-pat score is returned at the horizon.
func (s *searcher) quiesce(pos Position, maximizing bool, depth int, alpha, beta int32) (int32, error) {
	s.stats.QNodes++
	outcome := pos.Outcome()
	standPat := perspective(evaluate(pos, outcome), maximizing)
	if standPat >= beta {
		s.stats.QStandPatCutoffs++
		return beta, nil
	}
	alpha = max32(alpha, standPat)

	if depth == 0 || outcome.Over() {
		return standPat, nil
	}

	tactical := lo.Filter(pos.LegalMoves(), func(m dragontoothmg.Move, _ int) bool {
		return pos.IsCapture(m) || pos.GivesCheck(m)
	})
	entry, ttHit := s.probe(pos)
	tactical = orderMoves(pos, tactical, maximizing, entry.BestMove, ttHit)

	for _, m := range tactical {
		v, err := s.quiesceChild(pos, m, maximizing, depth, alpha, beta)
		if err != nil {
			return 0, err
		}
		if v >= beta {
			s.stats.QBetaCutoffs++
			return beta, nil
		}
		alpha = max32(alpha, v)
	}
	return alpha, nil
}

func (s *searcher) quiesceChild(pos Position, m dragontoothmg.Move, maximizing bool, depth int, alpha, beta int32) (int32, error) {
	undo := pos.Apply(m)
	defer undo()
	if s.timer.TimeStatus() {
		return 0, ErrTimeout
	}
	v, err := s.quiesce(pos, !maximizing, depth-1, -beta, -alpha)
	if err != nil {
		return 0, err
	}
	return -v, nil
}
