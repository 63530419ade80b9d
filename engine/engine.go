package engine

import (
	"fmt"
	"time"

	"territory/agent"
	"territory/experiments/metrics"
	"territory/game"

	"github.com/rs/zerolog/log"
)

// Engine runs one game between two agents, indexed by the color they play.
type Engine struct {
	Game     *game.Game
	Agents   [2]agent.Agent
	MaxTurns int
}

// Run executes the entire game loop until a winner is found or MaxTurns
// rounds (a White turn and a Black turn each) have been played, in which
// case the game is drawn.
func (e *Engine) Run() (game.Color, metrics.GameMetric, error) {
	g := e.Game
	metric := metrics.GameMetric{
		StartingColor: g.ActiveColor().String(),
		StartTime:     time.Now(),
	}
	log.Info().Msgf("%s (white) vs %s (black)", e.Agents[game.White].Name(), e.Agents[game.Black].Name())

	for !g.GameOver() && g.TurnsPlayed() < 2*e.MaxTurns {
		color := g.ActiveColor()
		if err := e.Agents[color].TakeTurn(g); err != nil {
			return game.NoColor, metric, fmt.Errorf("%s failed to play %s: %w", e.Agents[color].Name(), color, err)
		}
	}

	if !g.GameOver() {
		g.DeclareDraw()
		log.Info().Msgf("stopped after %d turns (no winner)", g.TurnsPlayed())
	} else {
		log.Info().Msgf("game over after %d turns, winner: %s", g.TurnsPlayed(), g.Winner())
	}

	metric.EndTime = time.Now()
	metric.Duration = metric.EndTime.Sub(metric.StartTime)
	metric.Turns = g.TurnsPlayed()
	if g.Winner() != game.NoColor {
		metric.Winner = g.Winner().String()
	}
	return g.Winner(), metric, nil
}
