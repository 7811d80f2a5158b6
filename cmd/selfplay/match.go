package main

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"chess-search/engine"
	"chess-search/rules"
)

const (
	engineOne = "engine-1"
	engineTwo = "engine-2"
)

type gameRecord struct {
	Game     int      `yaml:"game"`
	White    string   `yaml:"white"`
	Black    string   `yaml:"black"`
	Result   string   `yaml:"result"`
	Winner   string   `yaml:"winner,omitempty"`
	Plies    int      `yaml:"plies"`
	AvgDepth float64  `yaml:"avg-depth"`
	FinalFEN string   `yaml:"final-fen"`
	Moves    []string `yaml:"moves"`
}

type summary struct {
	Games         int          `yaml:"games"`
	EngineOneWins int          `yaml:"engine-1-wins"`
	EngineTwoWins int          `yaml:"engine-2-wins"`
	Draws         int          `yaml:"draws"`
	Unfinished    int          `yaml:"unfinished"`
	Records       []gameRecord `yaml:"records"`
}

type match struct {
	fen      string
	games    int
	parallel int
	maxPlies int
	one, two engine.Options
}

// run plays the games concurrently. Every game owns its sessions, so no
// table is shared between goroutines.
func (m match) run(ctx context.Context) (summary, error) {
	records := make([]gameRecord, m.games)
	g, ctx := errgroup.WithContext(ctx)
	if m.parallel > 0 {
		g.SetLimit(m.parallel)
	}
	for i := 0; i < m.games; i++ {
		g.Go(func() error {
			rec, err := m.play(ctx, i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary{}, err
	}
	return summarize(records), nil
}

// play runs game i. Engine one has white in even games.
func (m match) play(ctx context.Context, i int) (gameRecord, error) {
	board, err := rules.ParseFEN(m.fen)
	if err != nil {
		return gameRecord{}, err
	}
	sessions := map[engine.Side]*engine.Session{
		engine.White: engine.NewSession(m.one),
		engine.Black: engine.NewSession(m.two),
	}
	rec := gameRecord{Game: i + 1, White: engineOne, Black: engineTwo}
	if i%2 == 1 {
		sessions[engine.White], sessions[engine.Black] = sessions[engine.Black], sessions[engine.White]
		rec.White, rec.Black = rec.Black, rec.White
	}

	depths := 0
	for !board.Outcome().Over() && (m.maxPlies <= 0 || rec.Plies < m.maxPlies) {
		res, err := sessions[board.SideToMove()].Play(ctx, board)
		if err != nil {
			return rec, err
		}
		board.Push(res.Move)
		rec.Moves = append(rec.Moves, res.Move.String())
		rec.Plies++
		depths += res.Depth
	}

	outcome := board.Outcome()
	rec.Result = outcome.String()
	switch outcome {
	case engine.WhiteWins:
		rec.Winner = rec.White
	case engine.BlackWins:
		rec.Winner = rec.Black
	}
	if rec.Plies > 0 {
		rec.AvgDepth = float64(depths) / float64(rec.Plies)
	}
	rec.FinalFEN = board.FEN()
	return rec, nil
}

func summarize(records []gameRecord) summary {
	return summary{
		Games:         len(records),
		EngineOneWins: lo.CountBy(records, func(r gameRecord) bool { return r.Winner == engineOne }),
		EngineTwoWins: lo.CountBy(records, func(r gameRecord) bool { return r.Winner == engineTwo }),
		Draws:         lo.CountBy(records, func(r gameRecord) bool { return r.Result == engine.Draw.String() }),
		Unfinished:    lo.CountBy(records, func(r gameRecord) bool { return r.Result == engine.Ongoing.String() }),
		Records:       records,
	}
}
