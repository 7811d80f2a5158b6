package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chess-search/config"
	"chess-search/engine"
	"chess-search/rules"
)

// Upper bound for "go infinite" and "go depth"; stop ends those earlier.
const unlimited = 24 * time.Hour

func main() {
	var cfg config.Config
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	// stdout belongs to the protocol
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := cfg.ApplyLogLevel(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	u := newUCI(engine.NewSession(cfg.EngineOptions()), os.Stdout)
	u.loop(os.Stdin)
}

type uci struct {
	session *engine.Session
	board   *rules.Board

	outMu sync.Mutex
	out   io.Writer

	// set while a search runs
	cancel context.CancelFunc
	done   chan struct{}
}

func newUCI(session *engine.Session, out io.Writer) *uci {
	return &uci{session: session, board: rules.NewGame(), out: out}
}

func (u *uci) println(a ...any) {
	u.outMu.Lock()
	defer u.outMu.Unlock()
	fmt.Fprintln(u.out, a...)
}

// loop reads commands until quit or the end of input. At the end of input
// a running search is allowed to finish.
func (u *uci) loop(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			u.println("id name chess-search")
			u.println("id author chess-search developers")
			u.println("uciok")
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			u.stop()
			u.session.NewGame()
			u.board = rules.NewGame()
		case "position":
			u.stop()
			if err := u.position(tokens[1:]); err != nil {
				u.println("info string", err)
			}
		case "go":
			u.stop()
			u.goSearch(tokens[1:])
		case "stop":
			u.stop()
		case "eval":
			u.println("info string eval", engine.Evaluate(u.board), "endgame", engine.IsEndgame(u.board))
		case "quit":
			u.stop()
			return
		default:
			u.println("info string Unknown command:", line)
		}
	}
	u.wait()
}

func (u *uci) position(args []string) error {
	if len(args) == 0 {
		return errors.New("malformed position command")
	}
	var (
		board *rules.Board
		err   error
		rest  []string
	)
	switch strings.ToLower(args[0]) {
	case "startpos":
		board, rest = rules.NewGame(), args[1:]
	case "fen":
		i := 1
		for i < len(args) && strings.ToLower(args[i]) != "moves" {
			i++
		}
		board, err = rules.ParseFEN(strings.Join(args[1:i], " "))
		if err != nil {
			return err
		}
		rest = args[i:]
	default:
		return fmt.Errorf("invalid position subcommand %q", args[0])
	}

	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, s := range rest[1:] {
			m, err := board.ParseMove(s)
			if err != nil {
				return err
			}
			board.Push(m)
		}
	}
	u.board = board
	return nil
}

// searchOptions turns the arguments of a go command into search options.
func (u *uci) searchOptions(args []string) engine.Options {
	opts := u.session.Options()
	var remaining, increment [2]time.Duration
	clock := false

	for i := 0; i < len(args); i++ {
		token := strings.ToLower(args[i])
		if token == "infinite" {
			opts.TimeLimit = unlimited
			continue
		}
		if i+1 >= len(args) {
			u.println("info string Malformed go command option", token)
			break
		}
		n, err := strconv.Atoi(args[i+1])
		if err != nil {
			u.println("info string Malformed go command option; could not convert", token)
			i++
			continue
		}
		ms := time.Duration(n) * time.Millisecond
		switch token {
		case "movetime":
			opts.TimeLimit = ms
		case "depth":
			opts.MaxDepth = n
			opts.TimeLimit = unlimited
		case "wtime":
			remaining[engine.White], clock = ms, true
		case "btime":
			remaining[engine.Black], clock = ms, true
		case "winc":
			increment[engine.White] = ms
		case "binc":
			increment[engine.Black] = ms
		default:
			u.println("info string Unknown go subcommand", token)
		}
		i++
	}

	if clock {
		side := u.board.SideToMove()
		opts.TimeLimit = engine.AllocateMoveTime(remaining[side], increment[side])
	}
	return opts
}

func (u *uci) goSearch(args []string) {
	opts := u.searchOptions(args)
	board := u.board.Copy()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	u.cancel, u.done = cancel, done

	go func() {
		defer close(done)
		res, err := u.session.PlayWith(ctx, board, opts)
		if err != nil {
			u.println("info string", err)
			u.println("bestmove 0000")
			return
		}
		u.println("info depth", res.Depth,
			"score cp", clampScore(res.SearchScore),
			"nodes", res.Stats.Nodes+res.Stats.QNodes,
			"time", res.Elapsed.Milliseconds(),
			"pv", res.Move.String())
		u.println("bestmove", res.Move.String())
	}()
}

// stop cancels a running search and waits for its bestmove.
func (u *uci) stop() {
	if u.cancel != nil {
		u.cancel()
	}
	u.wait()
}

func (u *uci) wait() {
	if u.done == nil {
		return
	}
	<-u.done
	u.cancel()
	u.cancel, u.done = nil, nil
}

func clampScore(v int32) int32 {
	const limit = 32000
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
