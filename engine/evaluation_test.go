package engine_test

import (
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"chess-search/engine"
	"chess-search/rules"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

var evalPositions = []string{
	rules.Startpos,
	kiwipete,
	"4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1",
	"r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"1n1qk3/8/8/8/8/8/8/1NBQK3 b - - 0 1",
}

func TestEvaluateStartposIsLevel(t *testing.T) {
	is := is.New(t)
	is.Equal(engine.Evaluate(rules.NewGame()), int32(0))
}

func TestEvaluateMaterialAndPlacement(t *testing.T) {
	is := is.New(t)
	// queen 900, queen on d1 -5, both kings on their endgame e-file square
	b := rules.MustParseFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	is.Equal(engine.Evaluate(b), int32(895))
}

func TestEvaluateZeroSum(t *testing.T) {
	for _, fen := range evalPositions {
		t.Run(fen, func(t *testing.T) {
			is := is.New(t)
			mirrored, err := rules.MirrorFEN(fen)
			is.NoErr(err)
			is.Equal(engine.Evaluate(rules.MustParseFEN(mirrored)), -engine.Evaluate(rules.MustParseFEN(fen)))
		})
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	is := is.New(t)
	for _, fen := range evalPositions {
		b := rules.MustParseFEN(fen)
		hash := b.Hash()
		first := engine.Evaluate(b)
		is.Equal(engine.Evaluate(b), first)
		is.Equal(b.FEN(), rules.MustParseFEN(fen).FEN())
		is.Equal(b.Hash(), hash)
	}
}

func TestEvaluateFinishedGames(t *testing.T) {
	is := is.New(t)
	is.Equal(engine.Evaluate(rules.MustParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")), -engine.Infinity)
	is.Equal(engine.Evaluate(rules.MustParseFEN("R5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 1 1")), engine.Infinity)
	is.Equal(engine.Evaluate(rules.MustParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")), int32(0))
	is.Equal(engine.Evaluate(rules.MustParseFEN("8/8/8/4k3/8/8/8/2B1K3 w - - 0 1")), int32(0))
}

func TestIsEndgame(t *testing.T) {
	cases := []struct {
		fen  string
		want bool
	}{
		{rules.Startpos, false},
		{"4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNB1KBNR w KQkq - 0 1", true},
		{"1nbqk3/8/8/8/8/8/8/1NBQK3 w - - 0 1", false},
		{"1n1qk3/8/8/8/8/8/8/1NBQK3 w - - 0 1", true},
		// two minors of one kind still lack the other kind
		{"nn1qk3/8/8/8/8/8/8/1NBQK3 w - - 0 1", true},
		{"4k3/8/8/8/8/8/8/1NBQK3 w - - 0 1", false},
	}
	for _, c := range cases {
		is := is.New(t)
		is.Equal(engine.IsEndgame(rules.MustParseFEN(c.fen)), c.want) // c.fen
	}
}

func TestEvaluateMove(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		move string
		want int32
	}{
		{"pawn push", rules.Startpos, "e2e4", 40},
		{"black pawn push", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", "e7e5", -40},
		{"rook takes queen", "4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1", "d1d5", 395},
		{"black rook takes queen", "3rk3/8/8/8/3Q4/8/8/4K3 b - - 0 1", "d8d4", -395},
		{"queen promotion", "8/4P3/8/8/8/8/k7/4K3 w - - 0 1", "e7e8q", 900},
		{"knight promotion", "8/4P3/8/8/8/8/k7/4K3 w - - 0 1", "e7e8n", 320},
		{"en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1", "e5d6", 105},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			is := is.New(t)
			b := rules.MustParseFEN(c.fen)
			m, err := b.ParseMove(c.move)
			is.NoErr(err)
			is.Equal(engine.EvaluateMove(b, m), c.want)
			is.Equal(b.FEN(), rules.MustParseFEN(c.fen).FEN())
		})
	}
}
