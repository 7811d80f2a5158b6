// Package rules adapts the dragontoothmg move generator to the engine's
// Position interface and adds the termination rules the generator lacks.
package rules

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/dylhunn/dragontoothmg"

	"chess-search/engine"
)

// Startpos is the FEN of the initial chess position.
const Startpos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	ErrInvalidFEN  = errors.New("invalid FEN")
	ErrIllegalMove = errors.New("illegal move")
)

const (
	darkSquares  uint64 = 0xaa55aa55aa55aa55
	lightSquares uint64 = ^darkSquares
)

// Board is a chess position with a repetition history.
type Board struct {
	b    dragontoothmg.Board
	hist history
}

var _ engine.Position = (*Board)(nil)

// ParseFEN builds a board from a FEN string. The move counters may be
// omitted.
func ParseFEN(fen string) (board *Board, err error) {
	fields := strings.Fields(fen)
	if len(fields) == 4 {
		fields = append(fields, "0", "1")
	}
	if len(fields) != 6 {
		return nil, fmt.Errorf("%w: %q: want 6 fields, got %d", ErrInvalidFEN, fen, len(fields))
	}
	if err := validatePlacement(fields[0]); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidFEN, fen, err)
	}
	if fields[1] != "w" && fields[1] != "b" {
		return nil, fmt.Errorf("%w: %q: bad side to move %q", ErrInvalidFEN, fen, fields[1])
	}
	defer func() {
		// dragontoothmg panics on malformed rights or counters
		if r := recover(); r != nil {
			board = nil
			err = fmt.Errorf("%w: %q: %v", ErrInvalidFEN, fen, r)
		}
	}()
	board = &Board{b: dragontoothmg.ParseFen(strings.Join(fields, " "))}
	board.hist.reset(board.b.Hash(), int(board.b.Halfmoveclock))
	return board, nil
}

// MustParseFEN is like ParseFEN but panics on error. For tests and constants.
func MustParseFEN(fen string) *Board {
	b, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

// NewGame returns the initial position.
func NewGame() *Board {
	return MustParseFEN(Startpos)
}

func validatePlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("want 8 ranks, got %d", len(ranks))
	}
	kings := map[rune]int{}
	for _, rank := range ranks {
		width := 0
		for _, c := range rank {
			switch {
			case c >= '1' && c <= '8':
				width += int(c - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", c):
				width++
				if c == 'k' || c == 'K' {
					kings[c]++
				}
			default:
				return fmt.Errorf("bad piece %q", c)
			}
		}
		if width != 8 {
			return fmt.Errorf("rank %q is %d squares wide", rank, width)
		}
	}
	if kings['K'] != 1 || kings['k'] != 1 {
		return errors.New("each side needs exactly one king")
	}
	return nil
}

func (b *Board) LegalMoves() []dragontoothmg.Move {
	return b.b.GenerateLegalMoves()
}

func (b *Board) Apply(m dragontoothmg.Move) func() {
	unapply := b.b.Apply(m)
	b.hist.push(b.b.Hash(), int(b.b.Halfmoveclock))
	return func() {
		unapply()
		b.hist.pop()
	}
}

// Push makes m permanently, as a game driver does after a search.
func (b *Board) Push(m dragontoothmg.Move) {
	b.Apply(m)
}

// Nice helper to get what piece is at a square :)
func pieceTypeAt(sq uint8, bitboards *dragontoothmg.Bitboards) (dragontoothmg.Piece, bool) {
	bb := uint64(1) << sq
	switch {
	case bitboards.All&bb == 0:
		return dragontoothmg.Nothing, false
	case bitboards.Pawns&bb != 0:
		return dragontoothmg.Pawn, true
	case bitboards.Knights&bb != 0:
		return dragontoothmg.Knight, true
	case bitboards.Bishops&bb != 0:
		return dragontoothmg.Bishop, true
	case bitboards.Rooks&bb != 0:
		return dragontoothmg.Rook, true
	case bitboards.Queens&bb != 0:
		return dragontoothmg.Queen, true
	case bitboards.Kings&bb != 0:
		return dragontoothmg.King, true
	}
	return dragontoothmg.Nothing, false
}

func (b *Board) PieceAt(sq uint8) (dragontoothmg.Piece, engine.Side) {
	if p, ok := pieceTypeAt(sq, &b.b.White); ok {
		return p, engine.White
	}
	if p, ok := pieceTypeAt(sq, &b.b.Black); ok {
		return p, engine.Black
	}
	return dragontoothmg.Nothing, engine.White
}

func (b *Board) SideToMove() engine.Side {
	if b.b.Wtomove {
		return engine.White
	}
	return engine.Black
}

func (b *Board) them() *dragontoothmg.Bitboards {
	if b.b.Wtomove {
		return &b.b.Black
	}
	return &b.b.White
}

func (b *Board) us() *dragontoothmg.Bitboards {
	if b.b.Wtomove {
		return &b.b.White
	}
	return &b.b.Black
}

// IsEnPassant reports a pawn changing file onto an empty square.
func (b *Board) IsEnPassant(m dragontoothmg.Move) bool {
	from, to := m.From(), m.To()
	if b.us().Pawns&(uint64(1)<<from) == 0 {
		return false
	}
	if from%8 == to%8 {
		return false
	}
	return (b.b.White.All|b.b.Black.All)&(uint64(1)<<to) == 0
}

func (b *Board) IsCapture(m dragontoothmg.Move) bool {
	return b.them().All&(uint64(1)<<m.To()) != 0 || b.IsEnPassant(m)
}

func (b *Board) GivesCheck(m dragontoothmg.Move) bool {
	unapply := b.b.Apply(m)
	defer unapply()
	return b.b.OurKingInCheck()
}

func (b *Board) InCheck() bool {
	return b.b.OurKingInCheck()
}

// Outcome applies checkmate, stalemate, insufficient material, the
// seventy-five-move rule and fivefold repetition, in that order.
func (b *Board) Outcome() engine.Outcome {
	if len(b.b.GenerateLegalMoves()) == 0 {
		if !b.b.OurKingInCheck() {
			return engine.Draw
		}
		if b.b.Wtomove {
			return engine.BlackWins
		}
		return engine.WhiteWins
	}
	if b.InsufficientMaterial() {
		return engine.Draw
	}
	if b.hist.rule50() >= seventyFiveMoveLimit {
		return engine.Draw
	}
	if b.hist.repetitions() >= fivefoldRepetition {
		return engine.Draw
	}
	return engine.Ongoing
}

// InsufficientMaterial reports positions where neither side can mate: bare
// kings, a single minor piece, or bishops that all stand on one color.
func (b *Board) InsufficientMaterial() bool {
	w, bl := &b.b.White, &b.b.Black
	if w.Pawns|bl.Pawns|w.Rooks|bl.Rooks|w.Queens|bl.Queens != 0 {
		return false
	}
	knights := bits.OnesCount64(w.Knights | bl.Knights)
	bishops := w.Bishops | bl.Bishops
	if knights == 0 && bishops == 0 {
		return true
	}
	if knights == 1 && bishops == 0 {
		return true
	}
	if knights == 0 {
		return bishops&lightSquares == 0 || bishops&darkSquares == 0
	}
	return false
}

func (b *Board) Hash() uint64 {
	return b.b.Hash()
}

// Clone copies the position; the repetition history starts over.
func (b *Board) Clone() engine.Position {
	return b.Copy()
}

func (b *Board) Copy() *Board {
	c := &Board{b: b.b}
	c.hist.reset(c.b.Hash(), int(c.b.Halfmoveclock))
	return c
}

func (b *Board) FEN() string {
	return b.b.ToFen()
}

// Plies is the number of moves made since the board was created.
func (b *Board) Plies() int {
	return b.hist.len()
}

// ParseMove finds the legal move written in UCI notation (e2e4, e7e8q).
func (b *Board) ParseMove(uci string) (dragontoothmg.Move, error) {
	uci = strings.ToLower(strings.TrimSpace(uci))
	for _, m := range b.b.GenerateLegalMoves() {
		if m.String() == uci {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %s in %s", ErrIllegalMove, uci, b.FEN())
}
