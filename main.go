package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"hex/config"
	"hex/engine"
	"hex/experiments"
	"hex/experiments/metrics"
	"hex/game"
	"hex/logger"
	"hex/neural"
	"hex/player"
	"hex/record"
	"hex/searcher"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type flags struct {
	configPath  string
	mode        string
	humanFirst  bool
	size        int
	games       int
	seed        uint64
	workers     int
	repetitions int
	logLevel    string
	model       string
	out         string
	board       string
	random      bool
}

func main() {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "YAML config file")
	flag.StringVar(&f.mode, "mode", "experiment", "experiment or play")
	flag.BoolVar(&f.humanFirst, "human-first", true, "Human moves first in play mode")
	flag.IntVar(&f.size, "size", 0, "Board size")
	flag.IntVar(&f.games, "games", 0, "Number of games in experiment mode")
	flag.Uint64Var(&f.seed, "seed", 0, "Random seed")
	flag.IntVar(&f.workers, "workers", 0, "Evaluator goroutines of the main agent")
	flag.IntVar(&f.repetitions, "repetitions", 0, "Rollouts per candidate move of the main agent")
	flag.StringVar(&f.logLevel, "log-level", "", "Log level")
	flag.StringVar(&f.model, "model", "", "ONNX model scoring positions in play mode")
	flag.StringVar(&f.out, "out", "", "Directory for experiment results")
	flag.StringVar(&f.board, "board", "", "Board file to start from")
	flag.BoolVar(&f.random, "random", false, "Sample random positions for training")
	flag.Parse()

	cfg, err := config.Load(f.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	override(&cfg, f)
	logger.Init(cfg.LogLevel, os.Stderr)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}
	if out, err := cfg.YAML(); err == nil {
		log.Debug().Msgf("effective configuration:\n%s", out)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch f.mode {
	case "experiment":
		err = runExperiment(ctx, cfg)
	case "play":
		err = runPlay(cfg, f.humanFirst)
	default:
		err = fmt.Errorf("unknown mode %q", f.mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("")
	}
}

// override applies the flags given on the command line on top of cfg.
func override(cfg *config.Config, f flags) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "size":
			cfg.Size = f.size
		case "games":
			cfg.Games = f.games
		case "seed":
			cfg.Seed = f.seed
		case "workers":
			cfg.Agent.Workers = f.workers
		case "repetitions":
			cfg.Agent.Repetitions = f.repetitions
		case "log-level":
			cfg.LogLevel = f.logLevel
		case "model":
			cfg.ModelPath = f.model
		case "out":
			cfg.OutputDir = f.out
		case "board":
			cfg.BoardFile = f.board
		case "random":
			cfg.Record.Random = f.random
		}
	})
}

func startBoard(cfg config.Config) (*game.Board, error) {
	if cfg.BoardFile == "" {
		return nil, nil
	}
	return game.LoadFile(cfg.BoardFile)
}

func runExperiment(ctx context.Context, cfg config.Config) error {
	start, err := startBoard(cfg)
	if err != nil {
		return err
	}
	runner, err := experiments.NewRunner(experiments.Options{
		Size:          cfg.Size,
		Games:         cfg.Games,
		Seed:          cfg.Seed,
		Agent:         cfg.Agent,
		Opponents:     cfg.Opponents,
		Random:        cfg.Record.Random,
		RandomOptions: cfg.Record.RandomOptions,
		Start:         start,
	})
	if err != nil {
		return err
	}

	result, runErr := runner.Run(ctx)
	if runErr != nil {
		log.Error().Err(runErr).Msgf("stopped after %d games", len(result.Games))
	}
	if len(result.Games) == 0 {
		return runErr
	}

	writer, err := metrics.NewWriter(cfg.OutputDir, "hex")
	if err != nil {
		return err
	}
	if err := runner.Store(writer, result); err != nil {
		return err
	}
	if err := exportLines(writer.Dir(), result.Records, cfg.Record); err != nil {
		return err
	}
	return experiments.Report(os.Stdout, experiments.Summarize(cfg.Agent.ID, result))
}

// exportLines writes the training lines of every game, one file per kind.
func exportLines(dir string, games []*record.Game, opts config.Record) error {
	var played, candidates, outcomes, random []record.Line
	for i, g := range games {
		lines, err := g.PlayedLines()
		if err != nil {
			log.Warn().Err(err).Msgf("skipping played lines of game %d", i+1)
		} else {
			played = append(played, lines...)
		}
		lines, err = g.CandidateLines(record.Options{
			Normalize:       opts.Normalize,
			FirstPlayerOnly: opts.FirstPlayerOnly,
		})
		if err != nil {
			log.Warn().Err(err).Msgf("skipping candidate lines of game %d", i+1)
		} else {
			candidates = append(candidates, lines...)
		}
		lines, err = g.OutcomeLines()
		if err != nil {
			log.Warn().Err(err).Msgf("skipping outcome lines of game %d", i+1)
		} else {
			outcomes = append(outcomes, lines...)
		}
		random = append(random, record.RandomLines(g.Random)...)
	}

	files := []struct {
		name  string
		lines []record.Line
	}{
		{"played.txt", played},
		{"candidates.txt", candidates},
		{"outcomes.txt", outcomes},
		{"random.txt", random},
	}
	for _, file := range files {
		if len(file.lines) == 0 {
			continue
		}
		if err := writeLinesFile(filepath.Join(dir, file.name), file.lines); err != nil {
			return err
		}
		log.Info().Msgf("wrote %d lines to %s", len(file.lines), file.name)
	}
	return nil
}

func writeLinesFile(path string, lines []record.Line) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := record.WriteLines(f, lines); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func runPlay(cfg config.Config, humanFirst bool) error {
	board, err := startBoard(cfg)
	if err != nil {
		return err
	}
	if board == nil {
		board = game.NewBoard(cfg.Size)
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     filepath.Join(os.TempDir(), "hex_history.tmp"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer l.Close()

	human := player.NewHuman(l, l.Stdout())
	engineSide, err := enginePlayer(cfg)
	if err != nil {
		return err
	}

	first, second := player.Player(human), engineSide
	if !humanFirst {
		first, second = engineSide, human
	}
	e := engine.NewEngine(board, first, second)
	result, err := e.Run()
	if errors.Is(err, player.ErrNoInput) {
		fmt.Fprintln(l.Stdout(), "game abandoned")
		return nil
	}
	if err != nil {
		return err
	}
	return printResult(l.Stdout(), board, result)
}

// enginePlayer is the network when a model is configured, else the Monte
// Carlo agent.
func enginePlayer(cfg config.Config) (player.Player, error) {
	if cfg.ModelPath != "" {
		scorer, err := neural.Load(cfg.ModelPath)
		if err != nil {
			return nil, err
		}
		return player.NewEvaluator(scorer), nil
	}
	mode, err := player.ParseMode(cfg.Agent.Mode)
	if err != nil {
		return nil, err
	}
	options := []searcher.Option{
		searcher.WithWorkers(cfg.Agent.Workers),
		searcher.WithRepetitions(cfg.Agent.Repetitions),
	}
	var rng *rand.Rand
	if cfg.Seed != 0 {
		options = append(options, searcher.WithSeed(cfg.Seed))
		rng = rand.New(rand.NewSource(cfg.Seed + 1))
	}
	return player.NewMonteCarlo(searcher.NewMonteCarlo(options...), mode, rng), nil
}

func printResult(w io.Writer, b *game.Board, result engine.Result) error {
	if _, err := fmt.Fprintln(w, b.String()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s wins after %d moves\n", result.Winner, result.Moves)
	return err
}
