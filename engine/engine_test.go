package engine

import (
	"errors"
	"testing"

	"territory/agent"
	"territory/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// passer places its opening pieces and then only passes.
type passer struct{ rng *rand.Rand }

func (p passer) Name() string { return "passer" }

func (p passer) TakeTurn(g *game.Game) error {
	if g.InitialPhase() {
		return agent.PlaceInitial(g, p.rng)
	}
	return g.PassTurn()
}

type broken struct{}

func (broken) Name() string              { return "broken" }
func (broken) TakeTurn(*game.Game) error { return errors.New("boom") }

func TestRun(t *testing.T) {
	t.Run("turn cap ends in a draw", func(t *testing.T) {
		e := LocalEngine(passer{rand.New(rand.NewSource(1))}, passer{rand.New(rand.NewSource(2))}, WithMaxTurns(6))

		winner, metric, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, game.NoColor, winner)
		require.True(t, e.Game.GameOver())
		require.Equal(t, 12, metric.Turns, "Six rounds are twelve turns")
		require.Empty(t, metric.Winner)
		require.Equal(t, "white", metric.StartingColor)
		require.False(t, metric.EndTime.Before(metric.StartTime))
	})

	t.Run("random agents finish", func(t *testing.T) {
		e := LocalEngine(
			agent.NewRandomAgent("white", rand.New(rand.NewSource(3))),
			agent.NewRandomAgent("black", rand.New(rand.NewSource(4))),
			WithMaxTurns(50),
		)

		winner, metric, err := e.Run()

		require.NoError(t, err)
		require.True(t, e.Game.GameOver())
		require.LessOrEqual(t, metric.Turns, 100)
		if winner != game.NoColor {
			require.Equal(t, winner.String(), metric.Winner)
		}
	})

	t.Run("agent errors stop the game", func(t *testing.T) {
		e := LocalEngine(broken{}, passer{rand.New(rand.NewSource(1))})
		_, _, err := e.Run()
		require.Error(t, err)
		require.False(t, e.Game.GameOver())
	})

	t.Run("existing game", func(t *testing.T) {
		g := game.NewGame()
		g.DeclareDraw()
		e := LocalEngine(broken{}, broken{}, WithGame(g))

		winner, _, err := e.Run()

		require.NoError(t, err, "A finished game should not ask the agents to play")
		require.Equal(t, game.NoColor, winner)
	})

	require.Panics(t, func() { LocalEngine(nil, broken{}) })
}
