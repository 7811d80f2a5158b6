package engine

import (
	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/slices"
)

type scoredMove struct {
	move  dragontoothmg.Move
	score int32
}

// orderMoves returns moves in search order: the table move first when it is
// among them, then the rest by EvaluateMove, best for the mover first. Equal
// scores keep their enumeration order. A single move is returned unscored.
func orderMoves(pos Position, moves []dragontoothmg.Move, maximizing bool, ttMove dragontoothmg.Move, ttHit bool) []dragontoothmg.Move {
	if len(moves) <= 1 {
		return moves
	}

	rest := slices.Clone(moves)
	pvFirst := false
	if ttHit {
		if i := slices.Index(rest, ttMove); i >= 0 {
			rest = slices.Delete(rest, i, i+1)
			pvFirst = true
		}
	}

	scorer := newMoveScorer(pos)
	list := make([]scoredMove, len(rest))
	for i, m := range rest {
		list[i] = scoredMove{move: m, score: scorer.score(m)}
	}
	// Scores are white-positive: white wants them high, black low.
	slices.SortStableFunc(list, func(a, b scoredMove) bool {
		if maximizing {
			return a.score > b.score
		}
		return a.score < b.score
	})

	for i := range list {
		rest[i] = list[i].move
	}
	if pvFirst {
		rest = slices.Insert(rest, 0, ttMove)
	}
	return rest
}
