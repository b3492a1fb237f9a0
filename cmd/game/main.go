package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/ConnectR/internal/ai"
	"github.com/mitchelldurbincs/ConnectR/internal/ai/heuristic"
	"github.com/mitchelldurbincs/ConnectR/internal/config"
	"github.com/mitchelldurbincs/ConnectR/internal/game"
	"github.com/mitchelldurbincs/ConnectR/internal/game/core"
	"github.com/mitchelldurbincs/ConnectR/internal/game/events"
	"github.com/mitchelldurbincs/ConnectR/internal/game/events/subscribers"
)

// flagKeys maps command line flags onto config keys. Flags only override
// the config when given explicitly.
var flagKeys = map[string]string{
	"rows":      "board.rows",
	"cols":      "board.cols",
	"r":         "board.run_length",
	"depth":     "search.depth",
	"human":     "match.human_player",
	"opening":   "match.random_opening",
	"log-level": "log.level",
}

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Path to config file")
	flag.Int("rows", 0, "Board rows")
	flag.Int("cols", 0, "Board columns")
	flag.Int("r", 0, "Run length needed to win")
	flag.Int("depth", 0, "Search depth in plies")
	flag.String("human", "", "Human player (A, B or none)")
	flag.Int("opening", 0, "Random opening plies")
	flag.String("log-level", "", "Log level (debug, info, warn, error)")
	seed := flag.Int64("seed", 0, "Random seed (0 for time based)")
	noColor := flag.Bool("no-color", false, "Disable colored board output")
	watch := flag.Bool("watch-config", false, "Reload search depth when the config file changes")
	flag.Parse()

	// .env is optional
	envErr := godotenv.Load()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return 1
	}
	if err := config.LoadEnvironmentConfig(os.Getenv("APP_ENV")); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return 1
	}
	if err := applyFlags(*noColor); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return 1
	}
	cfg := config.Get()

	setupLogging(cfg.Log)
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		log.Warn().Err(envErr).Msg("Failed to load .env file")
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	agent, err := ai.NewAgent(agentConfig(cfg), log.Logger)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create search agent")
		return 1
	}

	if *watch {
		config.WatchConfig(log.Logger, func(c *config.Config) {
			if err := agent.SetDepth(c.Search.Depth); err != nil {
				log.Warn().Err(err).Msg("Search depth not updated")
			}
		})
	}

	first, err := parseSeat(cfg.Match.First)
	if err == nil && first == core.Empty {
		err = fmt.Errorf("%w: match.first must be A or B", config.ErrInvalidConfig)
	}
	if err != nil {
		log.Error().Err(err).Msg("Invalid first player")
		return 1
	}
	players, err := buildPlayers(cfg, agent)
	if err != nil {
		log.Error().Err(err).Msg("Invalid player setup")
		return 1
	}

	bus := events.NewEventBus(log.Logger)
	eventLog := subscribers.NewLoggerSubscriber("event-log", log.Logger, zerolog.DebugLevel)
	eventLog.SetDevMode(os.Getenv("APP_ENV") != "production")
	bus.Subscribe(eventLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("config", config.ConfigFilePath()).
		Int("rows", cfg.Board.Rows).
		Int("cols", cfg.Board.Cols).
		Int("run_length", cfg.Board.RunLength).
		Int("depth", cfg.Search.Depth).
		Str("human", cfg.Match.HumanPlayer).
		Int64("seed", *seed).
		Msg("Starting match")

	engine, err := game.NewEngine(ctx, game.GameConfig{
		Rows:         cfg.Board.Rows,
		Cols:         cfg.Board.Cols,
		RunLength:    cfg.Board.RunLength,
		First:        first,
		Players:      players,
		OpeningPlies: cfg.Match.RandomOpening,
		Rng:          rand.New(rand.NewSource(*seed)),
		Logger:       log.Logger,
		EventBus:     bus,
		Output:       os.Stdout,
		Color:        cfg.Match.Color,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create game")
		if errors.Is(err, core.ErrInvalidConfiguration) {
			return 1
		}
		return 2
	}

	if _, err := engine.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info().Msg("Match interrupted")
		} else {
			log.Error().Err(err).Msg("Match aborted")
		}
		return 2
	}
	return 0
}

// applyFlags writes explicitly given flags over the loaded config.
func applyFlags(noColor bool) error {
	var err error
	flag.Visit(func(f *flag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		if setErr := config.Set(key, f.Value.String()); setErr != nil {
			err = fmt.Errorf("--%s=%s: %w", f.Name, f.Value, setErr)
		}
	})
	if err != nil {
		return err
	}
	if noColor {
		return config.Set("match.color", false)
	}
	return nil
}

func agentConfig(cfg *config.Config) ai.AgentConfig {
	ac := ai.DefaultAgentConfig()
	ac.Depth = cfg.Search.Depth
	ac.MaxNodes = cfg.Search.MaxNodes
	ac.Heuristic = heuristic.Config{
		Diagonals: cfg.Search.ScoreDiagonals,
		Weights: heuristic.Weights{
			Win:           cfg.Search.Weights.Win,
			BlockedThreat: cfg.Search.Weights.BlockedThreat,
			NearWin:       cfg.Search.Weights.NearWin,
			Two:           cfg.Search.Weights.Two,
		},
	}
	return ac
}

func buildPlayers(cfg *config.Config, agent *ai.Agent) (map[core.Player]game.MoveSource, error) {
	computer := game.NewAIPlayer(agent)
	players := map[core.Player]game.MoveSource{
		core.PlayerA: computer,
		core.PlayerB: computer,
	}

	human, err := parseSeat(cfg.Match.HumanPlayer)
	if err != nil {
		return nil, err
	}
	if human != core.Empty {
		players[human] = game.NewHumanPlayer(os.Stdin, os.Stdout)
	}
	return players, nil
}

// parseSeat resolves a player setting such as " b" or "none". "none"
// resolves to core.Empty.
func parseSeat(name string) (core.Player, error) {
	normalized, err := config.ParsePlayerName(name)
	if err != nil {
		return core.Empty, err
	}
	if normalized == "none" {
		return core.Empty, nil
	}
	return core.ParsePlayer(normalized)
}

func setupLogging(lc config.LogConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(lc.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Board output owns stdout, logs go to stderr
	if os.Getenv("APP_ENV") == "production" || lc.Format == "json" {
		// JSON output for production
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		// Pretty console output for development
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
