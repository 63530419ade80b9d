package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"territory/agent"
	"territory/experiments"
	"territory/game"
	"territory/gamemaster"
	"territory/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: territory [flags] <command>

commands:
  train     self-play training of the shared q-table
  evaluate  greedy learned policy against the random baseline
  serve     play against the learned policy over HTTP and websocket

flags:
`

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	episodes := flag.Int("episodes", 0, "Override the number of training episodes")
	games := flag.Int("games", 10, "Number of evaluation games")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	setupLogging(*level)

	cfg, err := meta.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *episodes > 0 {
		cfg.Training.Episodes = *episodes
	}

	switch flag.Arg(0) {
	case "train":
		runTraining(cfg)
	case "evaluate":
		runEvaluation(cfg, *games)
	case "serve":
		runServer(cfg)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func setupLogging(level string) {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		l = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(l)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
}

func runTraining(cfg meta.Config) {
	start := time.Now()
	result, err := experiments.Train(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}
	fmt.Printf("Run %s: %d episodes in %s\n", result.RunID, result.Episodes, time.Since(start).Round(time.Millisecond))
	fmt.Printf("White wins: %d, Black wins: %d, Draws: %d\n", result.Wins[game.White], result.Wins[game.Black], result.Draws)
	fmt.Printf("Q-table entries: %d, epsilon: %.4f\n", result.TableSize, result.Epsilon)
}

func runEvaluation(cfg meta.Config, games int) {
	result, err := experiments.Evaluate(cfg, games)
	if err != nil {
		log.Fatal().Err(err).Msg("evaluation failed")
	}
	fmt.Printf("Learned policy vs random over %d games: %d wins, %d losses, %d draws\n",
		result.Games, result.Wins, result.Losses, result.Draws)
}

func runServer(cfg meta.Config) {
	human := game.White
	if cfg.Server.HumanColor == "black" {
		human = game.Black
	}
	opponent := agent.NewEvaluationAgent("q-learner", agent.LoadOrEmpty(cfg.Storage.QTable))

	session, err := gamemaster.NewSession(human, opponent)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start session")
	}
	hub := gamemaster.NewHub(session)
	r := gamemaster.NewRouter(session, hub)

	log.Info().Msgf("listening on %s", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
