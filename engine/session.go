package engine

import (
	"context"
	"time"
)

// DefaultOptions are the settings of a session nobody configured.
func DefaultOptions() Options {
	return Options{
		TimeLimit:       time.Second,
		QuiescenceDepth: 3,
		TableSize:       100_000,
	}
}

// Session plays successive moves of one game, keeping its transposition
// table between them.
type Session struct {
	opts  Options
	table *TransTable
}

func NewSession(opts Options) *Session {
	return &Session{opts: opts, table: NewTransTable(opts.TableSize)}
}

func (s *Session) Options() Options {
	return s.opts
}

// SetOptions changes the search settings. A new table size takes effect by
// reallocating the table.
func (s *Session) SetOptions(opts Options) {
	if opts.TableSize != s.opts.TableSize {
		s.table = NewTransTable(opts.TableSize)
	}
	s.opts = opts
}

func (s *Session) Table() *TransTable {
	return s.table
}

// NewGame forgets everything learned in the previous game.
func (s *Session) NewGame() {
	s.table.Clear()
}

// Play searches pos for the side to move.
func (s *Session) Play(ctx context.Context, pos Position) (Result, error) {
	return s.PlayWith(ctx, pos, s.opts)
}

// PlayWith searches pos for the side to move with one-off options. The
// table size of opts is ignored.
func (s *Session) PlayWith(ctx context.Context, pos Position, opts Options) (Result, error) {
	return PlayWith(ctx, pos, pos.SideToMove() == White, s.table, opts)
}
