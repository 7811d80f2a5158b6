package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chess-search/config"
	"chess-search/engine"
	"chess-search/rules"
)

func main() {
	fs := config.NewFlagSet("searchbench")
	fen := fs.String("fen", rules.Startpos, "FEN to search")
	repeat := fs.Int("repeat", 1, "number of searches to run")
	prof := fs.String("profile", "", "cpu or mem profile of the whole run")
	profDir := fs.String("profile-dir", ".", "directory for the profile")

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

	switch *prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profDir)).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(*profDir)).Stop()
	default:
		log.Fatal().Str("profile", *prof).Msg("unknown-profile-kind")
	}

	board, err := rules.ParseFEN(*fen)
	if err != nil {
		log.Fatal().Err(err).Msg("bad-fen")
	}

	opts := cfg.EngineOptions()
	fmt.Printf("searchbench: fen=%q limit=%s max-depth=%d repeat=%d\n", board.FEN(), opts.TimeLimit, opts.MaxDepth, *repeat)

	var nodes uint64
	startAll := time.Now()
	for i := 0; i < *repeat; i++ {
		// fresh table for each run
		session := engine.NewSession(opts)
		res, err := session.Play(context.Background(), board)
		if err != nil {
			log.Fatal().Err(err).Int("iteration", i+1).Msg("search-failed")
		}
		nodes += res.Stats.Nodes + res.Stats.QNodes
		fmt.Printf("iteration %d: bestmove %v depth=%d score=%d time=%v\n",
			i+1, res.Move.String(), res.Depth, res.SearchScore, res.Elapsed)
	}
	total := time.Since(startAll)
	fmt.Printf("total time: %v nodes: %d nps: %.0f\n", total, nodes, float64(nodes)/total.Seconds())
}
