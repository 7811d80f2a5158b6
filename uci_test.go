package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chess-search/engine"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func runUCI(t *testing.T, commands ...string) []string {
	t.Helper()
	var out bytes.Buffer
	opts := engine.DefaultOptions()
	opts.TimeLimit = time.Minute
	u := newUCI(engine.NewSession(opts), &out)
	u.loop(strings.NewReader(strings.Join(commands, "\n")))
	return strings.Split(strings.TrimSpace(out.String()), "\n")
}

func TestHandshake(t *testing.T) {
	lines := runUCI(t, "uci", "isready", "bogus")
	require.Len(t, lines, 5)
	assert.Equal(t, "uciok", lines[2])
	assert.Equal(t, "readyok", lines[3])
	assert.Equal(t, "info string Unknown command: bogus", lines[4])
}

func TestGoDepthFindsMate(t *testing.T) {
	lines := runUCI(t,
		"ucinewgame",
		"position fen 6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1",
		"go depth 2",
	)
	require.NotEmpty(t, lines)
	assert.Equal(t, "bestmove a1a8", lines[len(lines)-1])
	assert.True(t, strings.HasPrefix(lines[len(lines)-2], "info depth 2 score cp 32000"), lines)
}

func TestPositionWithMoves(t *testing.T) {
	var out bytes.Buffer
	u := newUCI(engine.NewSession(engine.DefaultOptions()), &out)
	u.loop(strings.NewReader("position startpos moves e2e4 e7e5 g1f3"))
	assert.Equal(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2", u.board.FEN())
	assert.Empty(t, out.String())

	u.loop(strings.NewReader("position startpos moves e2e5"))
	assert.Contains(t, out.String(), "illegal move")
	assert.Equal(t, engine.Black, u.board.SideToMove(), "a bad command keeps the old position")
}

func TestSearchOptions(t *testing.T) {
	u := newUCI(engine.NewSession(engine.DefaultOptions()), &bytes.Buffer{})

	opts := u.searchOptions(strings.Fields("movetime 250"))
	assert.Equal(t, 250*time.Millisecond, opts.TimeLimit)

	opts = u.searchOptions(strings.Fields("wtime 40000 btime 1000 winc 0 binc 0"))
	assert.Equal(t, time.Second, opts.TimeLimit)

	opts = u.searchOptions(strings.Fields("depth 3"))
	assert.Equal(t, 3, opts.MaxDepth)
	assert.Equal(t, unlimited, opts.TimeLimit)
}

func TestStopCancelsInfiniteSearch(t *testing.T) {
	var out bytes.Buffer
	u := newUCI(engine.NewSession(engine.DefaultOptions()), &out)
	u.goSearch([]string{"infinite"})
	time.Sleep(50 * time.Millisecond)
	u.stop()
	assert.Contains(t, out.String(), "bestmove ")
}

func BenchmarkMain(b *testing.B) {
	opts := engine.DefaultOptions()
	opts.MaxDepth = 3
	opts.TimeLimit = time.Hour
	for i := 0; i < b.N; i++ {
		u := newUCI(engine.NewSession(opts), &bytes.Buffer{})
		u.loop(strings.NewReader("position startpos\ngo"))
	}
}
