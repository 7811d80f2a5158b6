package engine

import (
	"github.com/dylhunn/dragontoothmg"
)

// Side identifies one of the two players. White is the reference side for
// every score returned by Evaluate.
type Side uint8

const (
	White Side = iota
	Black
)

func (s Side) Other() Side {
	return s ^ 1
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

// Outcome is the termination state of a position as reported by the rules
// collaborator.
type Outcome uint8

const (
	Ongoing Outcome = iota
	WhiteWins
	BlackWins
	Draw
)

// Over reports whether the game has ended.
func (o Outcome) Over() bool {
	return o != Ongoing
}

func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	}
	return "*"
}

// Position is the view of a game state the search needs. Implementations own
// move generation and the game rules; the search only reads it and mutates it
// through Apply, always calling the returned undo before leaving a frame.
type Position interface {
	// LegalMoves lists the legal moves in a deterministic order.
	LegalMoves() []dragontoothmg.Move
	// Apply makes m and returns a closure restoring the previous state,
	// castling/en-passant rights and move history included.
	Apply(m dragontoothmg.Move) (undo func())
	// PieceAt returns the piece on sq (0 = a1, 63 = h8), or dragontoothmg.Nothing.
	PieceAt(sq uint8) (dragontoothmg.Piece, Side)
	SideToMove() Side
	IsCapture(m dragontoothmg.Move) bool
	IsEnPassant(m dragontoothmg.Move) bool
	GivesCheck(m dragontoothmg.Move) bool
	Outcome() Outcome
	// Hash must cover side to move, placement, castling and en-passant rights.
	Hash() uint64
	// Clone returns an independent copy that keeps placement, rights and
	// clocks but starts with an empty move history.
	Clone() Position
	FEN() string
}
