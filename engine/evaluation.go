package engine

import (
	"math"

	"github.com/dylhunn/dragontoothmg"
)

// Infinity scores a decided game. Evaluate returns +Infinity when white has
// won and -Infinity when black has.
const Infinity int32 = math.MaxInt32

// Material values in centipawns indexed by piece. The king carries no
// material in Evaluate.
var pieceValues = [7]int32{
	dragontoothmg.Pawn:   100,
	dragontoothmg.Knight: 320,
	dragontoothmg.Bishop: 330,
	dragontoothmg.Rook:   500,
	dragontoothmg.Queen:  900,
}

// kingValue only matters as the capturing piece in EvaluateMove.
const kingValue int32 = 20000

// FlipView maps a square to the same square seen from the other side of
// the board. Black looks up the tables through it.
var FlipView = [64]uint8{
	56, 57, 58, 59, 60, 61, 62, 63,
	48, 49, 50, 51, 52, 53, 54, 55,
	40, 41, 42, 43, 44, 45, 46, 47,
	32, 33, 34, 35, 36, 37, 38, 39,
	24, 25, 26, 27, 28, 29, 30, 31,
	16, 17, 18, 19, 20, 21, 22, 23,
	8, 9, 10, 11, 12, 13, 14, 15,
	0, 1, 2, 3, 4, 5, 6, 7,
}

// Piece-square tables from white's point of view. The first row is rank 1,
// so the table index is the square index (a1 = 0).
var (
	pawnTable = [64]int32{
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	knightTable = [64]int32{
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	}
	bishopTable = [64]int32{
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	}
	rookTable = [64]int32{
		0, 0, 0, 5, 5, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	queenTable = [64]int32{
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	}
	kingTable = [64]int32{
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	}
	kingEndgameTable = [64]int32{
		50, -30, -30, -30, -30, -30, -30, -50,
		-30, -30, 0, 0, 0, 0, -30, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -20, -10, 0, 0, -10, -20, -30,
		-50, -40, -30, -20, -20, -30, -40, -50,
	}
)

var pieceTables = [7]*[64]int32{
	dragontoothmg.Pawn:   &pawnTable,
	dragontoothmg.Knight: &knightTable,
	dragontoothmg.Bishop: &bishopTable,
	dragontoothmg.Rook:   &rookTable,
	dragontoothmg.Queen:  &queenTable,
	dragontoothmg.King:   &kingTable,
}

// placement is the table bonus of piece p of side s on sq, unsigned.
func placement(p dragontoothmg.Piece, s Side, sq uint8, endgame bool) int32 {
	if s == Black {
		sq = FlipView[sq]
	}
	if p == dragontoothmg.King && endgame {
		return kingEndgameTable[sq]
	}
	return pieceTables[p][sq]
}

type occupant struct {
	piece dragontoothmg.Piece
	side  Side
}

// census is a snapshot of the piece placement with per-side piece counts.
type census struct {
	squares [64]occupant
	counts  [2][7]int
}

func takeCensus(pos Position) *census {
	c := &census{}
	for sq := uint8(0); sq < 64; sq++ {
		p, s := pos.PieceAt(sq)
		c.squares[sq] = occupant{piece: p, side: s}
		if p != dragontoothmg.Nothing {
			c.counts[s][p]++
		}
	}
	return c
}

// endgame: nobody has a queen, or a side with a queen is missing either a
// knight or a bishop.
func (c *census) endgame() bool {
	wq := c.counts[White][dragontoothmg.Queen] > 0
	bq := c.counts[Black][dragontoothmg.Queen] > 0
	if !wq && !bq {
		return true
	}
	for _, s := range []Side{White, Black} {
		if c.counts[s][dragontoothmg.Queen] == 0 {
			continue
		}
		if c.counts[s][dragontoothmg.Knight] == 0 || c.counts[s][dragontoothmg.Bishop] == 0 {
			return true
		}
	}
	return false
}

// IsEndgame reports whether the endgame king table applies to pos.
func IsEndgame(pos Position) bool {
	return takeCensus(pos).endgame()
}

// Evaluate scores pos from white's point of view: material plus
// piece-square bonuses, or the result of a finished game.
func Evaluate(pos Position) int32 {
	return evaluate(pos, pos.Outcome())
}

func evaluate(pos Position, outcome Outcome) int32 {
	switch outcome {
	case WhiteWins:
		return Infinity
	case BlackWins:
		return -Infinity
	case Draw:
		return 0
	}

	c := takeCensus(pos)
	endgame := c.endgame()
	var score int32
	for sq, o := range c.squares {
		if o.piece == dragontoothmg.Nothing {
			continue
		}
		score += sign(o.side) * (pieceValues[o.piece] + placement(o.piece, o.side, uint8(sq), endgame))
	}
	return score
}

// moveScorer ranks moves of a single position without making them.
type moveScorer struct {
	pos     Position
	endgame bool
}

func newMoveScorer(pos Position) moveScorer {
	return moveScorer{pos: pos, endgame: IsEndgame(pos)}
}

func (ms moveScorer) score(m dragontoothmg.Move) int32 {
	from, to := m.From(), m.To()
	mover, side := ms.pos.PieceAt(from)
	sgn := sign(side)
	if promo := m.Promote(); promo != dragontoothmg.Nothing {
		return sgn * pieceValues[promo]
	}

	value := placement(mover, side, to, ms.endgame) - placement(mover, side, from, ms.endgame)
	switch {
	case ms.pos.IsEnPassant(m):
		value += pieceValues[dragontoothmg.Pawn]
	case ms.pos.IsCapture(m):
		victim, _ := ms.pos.PieceAt(to)
		value += pieceValues[victim] - capturingValue(mover)
	}
	return sgn * value
}

func capturingValue(p dragontoothmg.Piece) int32 {
	if p == dragontoothmg.King {
		return kingValue
	}
	return pieceValues[p]
}

// EvaluateMove estimates how much m gains for the mover, white-positive,
// without making it.
func EvaluateMove(pos Position, m dragontoothmg.Move) int32 {
	return newMoveScorer(pos).score(m)
}
