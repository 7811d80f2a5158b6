package engine

import "errors"

var (
	// ErrTimeout unwinds a search whose budget ran out. It never leaves Play.
	ErrTimeout = errors.New("search timed out")
	// ErrNoLegalMoves means the position has no moves yet reports the game as
	// ongoing: the rules implementation is broken.
	ErrNoLegalMoves = errors.New("no legal moves in an ongoing game")
	// ErrBudgetTooSmall is returned when not even a depth 1 search fits in
	// the time limit.
	ErrBudgetTooSmall = errors.New("time limit too small to complete depth 1")
	ErrGameOver       = errors.New("game is over")
)
