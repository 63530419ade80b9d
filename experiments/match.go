package experiments

import (
	"fmt"

	"territory/agent"
	"territory/engine"
	"territory/experiments/metrics"
	"territory/game"
	"territory/meta"

	"github.com/rs/zerolog/log"
)

// MatchResult counts a series of games from the first agent's point of view.
type MatchResult struct {
	Games   int
	Wins    int
	Losses  int
	Draws   int
	Records []metrics.GameRecord
}

// Match plays games between a and b, swapping colors every game so that a
// opens the odd-numbered ones.
func Match(a, b agent.Agent, games, maxTurns int) (MatchResult, error) {
	var result MatchResult
	g := game.NewGame()

	log.Info().Msgf("starting match between %s and %s...", a.Name(), b.Name())

	for i := 0; i < games; i++ {
		white, black := a, b
		if i%2 == 1 {
			white, black = b, a
		}
		g.Reset()

		e := engine.LocalEngine(white, black, engine.WithGame(g), engine.WithMaxTurns(maxTurns))
		winner, gameMetric, err := e.Run()
		if err != nil {
			return result, fmt.Errorf("game %d: %w", i+1, err)
		}

		result.Games++
		switch {
		case winner == game.NoColor:
			result.Draws++
		case e.Agents[winner] == a:
			result.Wins++
		default:
			result.Losses++
		}
		result.Records = append(result.Records, metrics.GameRecord{
			ID:         i + 1,
			White:      white.Name(),
			Black:      black.Name(),
			GameMetric: gameMetric,
		})

		log.Info().Msgf("completed game %d of %d with winner: %s", i+1, games, winner)
	}

	log.Info().Msgf("completed match: %d wins, %d losses, %d draws for %s", result.Wins, result.Losses, result.Draws, a.Name())
	return result, nil
}

// Evaluate pits the greedy learned policy against the random baseline and
// writes the game records next to the analysis log, if one is configured.
func Evaluate(cfg meta.Config, games int) (MatchResult, error) {
	rng := newRand(cfg.Training.Seed)
	table := agent.LoadOrEmpty(cfg.Storage.QTable)
	learned := agent.NewEvaluationAgent("q-learner", table, agent.WithRand(rng))
	baseline := agent.NewRandomAgent("random", rng)

	result, err := Match(learned, baseline, games, cfg.Training.MaxTurns)
	if err != nil {
		return result, err
	}

	if cfg.Storage.DataDir != "" {
		if err := metrics.WriteGameRecords(cfg.Storage.DataDir, result.Records); err != nil {
			return result, err
		}
		log.Info().Msg("stored game records")
	}
	return result, nil
}
