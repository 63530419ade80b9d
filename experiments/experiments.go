package experiments

import (
	"fmt"
	"time"

	"territory/agent"
	"territory/engine"
	"territory/experiments/metrics"
	"territory/game"
	"territory/meta"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// TrainingResult summarises a training run.
type TrainingResult struct {
	RunID     string
	Episodes  int
	Wins      map[game.Color]int
	Draws     int
	TableSize int
	Epsilon   float64
}

type Option func(r *runner)

type runner struct {
	runID     string
	recorders []metrics.Recorder
}

// WithRunID overrides the generated run id.
func WithRunID(id string) Option {
	return func(r *runner) {
		if id != "" {
			r.runID = id
		}
	}
}

// WithRecorder adds a recorder next to the configured analysis log.
func WithRecorder(recorder metrics.Recorder) Option {
	return func(r *runner) {
		if recorder != nil {
			r.recorders = append(r.recorders, recorder)
		}
	}
}

func newRunner(options []Option) *runner {
	r := &runner{runID: uuid.NewString()}
	for _, option := range options {
		option(r)
	}
	return r
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

// Train plays cfg.Training.Episodes self-play games between two learners
// sharing one table. The table is loaded once (empty if missing or
// unreadable) and saved once at the end.
func Train(cfg meta.Config, options ...Option) (TrainingResult, error) {
	r := newRunner(options)
	result := TrainingResult{RunID: r.runID, Wins: map[game.Color]int{}}

	table := agent.LoadOrEmpty(cfg.Storage.QTable)
	collector := metrics.NewCollector()
	recorders := append([]metrics.Recorder{collector}, r.recorders...)

	if cfg.Storage.DataDir != "" {
		csvRecorder, err := metrics.NewCSVRecorder(cfg.Storage.DataDir, r.runID)
		if err != nil {
			return result, err
		}
		defer csvRecorder.Close()
		recorders = append(recorders, csvRecorder)
	}

	var store *metrics.Store
	if cfg.Storage.DB != "" {
		var err error
		store, err = metrics.OpenStore(cfg.Storage.DB)
		if err != nil {
			return result, err
		}
		defer store.Close()
	}

	recorder := metrics.Multi(recorders...)
	rng := newRand(cfg.Training.Seed)
	learner := func(name string) *agent.QLearner {
		return agent.NewQLearner(name, table,
			agent.WithAlpha(cfg.Agent.Alpha),
			agent.WithGamma(cfg.Agent.Gamma),
			agent.WithEpsilon(cfg.Agent.Epsilon),
			agent.WithEpsilonDecay(cfg.Agent.EpsilonDecay),
			agent.WithMinEpsilon(cfg.Agent.MinEpsilon),
			agent.WithRand(rng),
			agent.WithRecorder(recorder),
			agent.WithRunID(r.runID),
		)
	}
	white, black := learner("white"), learner("black")

	log.Info().Msgf("starting training run %s with %d episodes...", r.runID, cfg.Training.Episodes)

	g := game.NewGame()
	for episode := 1; episode <= cfg.Training.Episodes; episode++ {
		gameID := uuid.NewString()
		white.BeginEpisode(episode, gameID)
		black.BeginEpisode(episode, gameID)
		g.Reset()

		e := engine.LocalEngine(white, black, engine.WithGame(g), engine.WithMaxTurns(cfg.Training.MaxTurns))
		winner, gameMetric, err := e.Run()
		if err != nil {
			return result, fmt.Errorf("episode %d: %w", episode, err)
		}

		white.EndEpisode()
		black.EndEpisode()
		if err := recorder.EndGame(episode); err != nil {
			log.Warn().Err(err).Int("episode", episode).Msg("failed to record end of game")
		}

		result.Episodes++
		if winner == game.NoColor {
			result.Draws++
		} else {
			result.Wins[winner]++
		}

		if store != nil {
			summary := collector.Last()
			err := store.SaveEpisode(metrics.EpisodeRecord{
				ID:           gameID,
				RunID:        r.runID,
				Episode:      episode,
				StartTime:    gameMetric.StartTime,
				EndTime:      gameMetric.EndTime,
				Winner:       gameMetric.Winner,
				Turns:        gameMetric.Turns,
				Epsilon:      white.Epsilon(),
				TableSize:    table.Len(),
				Decisions:    summary.Decisions,
				Explorations: summary.Explorations,
				TotalReward:  summary.TotalReward,
			})
			if err != nil {
				log.Warn().Err(err).Msg("failed to store episode")
			}
		}

		log.Info().Msgf("completed episode %d of %d with winner: %s", episode, cfg.Training.Episodes, winner)
	}

	result.TableSize = table.Len()
	result.Epsilon = white.Epsilon()
	if err := table.Save(cfg.Storage.QTable); err != nil {
		return result, err
	}

	log.Info().Msgf("completed training run %s: %d white wins, %d black wins, %d draws, %d table entries",
		r.runID, result.Wins[game.White], result.Wins[game.Black], result.Draws, result.TableSize)
	return result, nil
}
