// Command selfplay plays the engine against itself, possibly with different
// settings per side, and writes a YAML summary.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"chess-search/config"
	"chess-search/rules"
)

func main() {
	fs := config.NewFlagSet("selfplay")
	fen := fs.String("fen", rules.Startpos, "starting position of every game")
	games := fs.Int("games", 2, "number of games; engines swap colors every game")
	parallel := fs.Int("parallel", 2, "games played at the same time")
	maxPlies := fs.Int("max-plies", 200, "adjourn games after this many plies, 0 for no limit")
	opponentQDepth := fs.Int("opponent-quiescence-depth", -1, "quiescence depth of engine 2, -1 to match engine 1")
	out := fs.String("out", "", "write the summary here instead of stdout")

	var cfg config.Config
	if err := cfg.LoadFlags(fs, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := cfg.ApplyLogLevel(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	m := match{
		fen:      *fen,
		games:    *games,
		parallel: *parallel,
		maxPlies: *maxPlies,
		one:      cfg.EngineOptions(),
		two:      cfg.EngineOptions(),
	}
	if *opponentQDepth >= 0 {
		m.two.QuiescenceDepth = *opponentQDepth
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sum, err := m.run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("selfplay-failed")
	}
	log.Info().
		Int("games", sum.Games).
		Int("engine-1-wins", sum.EngineOneWins).
		Int("engine-2-wins", sum.EngineTwoWins).
		Int("draws", sum.Draws).
		Msg("selfplay-done")

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal().Err(err).Msg("create-summary")
		}
		defer f.Close()
		w = f
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(sum); err != nil {
		log.Fatal().Err(err).Msg("write-summary")
	}
	enc.Close()
}
