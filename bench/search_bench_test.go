package bench

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"chess-search/engine"
	"chess-search/rules"
)

func benchEvaluate(b *testing.B, fen string) {
	board, err := rules.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.Evaluate(board)
	}
}

func BenchmarkEvaluate_Initial(b *testing.B) {
	benchEvaluate(b, rules.Startpos)
}

func BenchmarkEvaluate_Kiwipete(b *testing.B) {
	benchEvaluate(b, kiwipete)
}

func benchPlay(b *testing.B, fen string, depth int) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	board, err := rules.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	opts := engine.Options{TimeLimit: time.Hour, QuiescenceDepth: 3, MaxDepth: depth}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// a fresh table per run, otherwise later runs only hit the cache
		table := engine.NewTransTable(100_000)
		if _, err := engine.PlayWith(context.Background(), board, true, table, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPlay_Initial_D3(b *testing.B) {
	benchPlay(b, rules.Startpos, 3)
}

func BenchmarkPlay_Kiwipete_D2(b *testing.B) {
	benchPlay(b, kiwipete, 2)
}
