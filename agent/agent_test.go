package agent

import (
	"testing"

	"territory/experiments/metrics"
	"territory/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type piece struct {
	pos   game.Pos
	kind  game.PieceKind
	color game.Color
}

func gameWith(t *testing.T, toMove game.Color, pieces ...piece) *game.Game {
	t.Helper()
	b := game.NewBoard()
	for _, p := range pieces {
		require.True(t, b.Place(p.pos, p.kind, p.color), "Could not place %s at %s", p.kind, p.pos)
	}
	return game.NewGameFrom(b, toMove)
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestPlaceInitial(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		g := game.NewGame()
		rng := seeded(seed)

		require.NoError(t, PlaceInitial(g, rng))
		require.Equal(t, game.InitialKingBlack, g.Turn(), "White should place both pieces")
		require.NoError(t, PlaceInitial(g, rng))
		require.False(t, g.InitialPhase())

		b := g.Board()
		for _, color := range game.Colors {
			king, ok := b.KingPosition(color)
			require.True(t, ok)
			require.False(t, b.IsInitialExclusionZone(king))
			farms := b.PositionsOf(color, game.Farm)
			require.Len(t, farms, 1)
			require.True(t, b.IsAdjacentToKing(farms[0], color))
			require.False(t, b.IsInitialExclusionZone(farms[0]))
		}
	}
}

func TestDecide(t *testing.T) {
	t.Run("threat upgrade then king shot", func(t *testing.T) {
		g := gameWith(t, game.White,
			piece{game.Pos{Row: 1, Col: 1}, game.King, game.White},
			piece{game.Pos{Row: 1, Col: 2}, game.Farm, game.White},
			piece{game.Pos{Row: 2, Col: 2}, game.Pawn, game.White},
			piece{game.Pos{Row: 3, Col: 1}, game.King, game.Black},
			piece{game.Pos{Row: 4, Col: 1}, game.Farm, game.Black},
		)
		a := NewQLearner("white", NewQTable(), WithEpsilon(1), WithRand(seeded(1)))

		d, err := a.Decide(g)
		require.NoError(t, err)
		require.True(t, d.Heuristic)
		require.Equal(t, game.UpgradeAt(game.Pos{Row: 2, Col: 2}, game.Turret), d.Action)
		require.False(t, d.Exploration, "Heuristics come before exploration")

		require.NoError(t, g.PassTurn())
		require.NoError(t, g.PassTurn())

		d, err = a.Decide(g)
		require.NoError(t, err)
		require.True(t, d.Heuristic)
		require.Equal(t, game.FireAt(game.Pos{Row: 2, Col: 2}, game.Pos{Row: 3, Col: 1}), d.Action)
		require.Equal(t, OutcomeWin, d.Outcome)
		require.Equal(t, 500.0, d.Reward, "Winning shot earns the win reward")
		require.InDelta(t, 50.0, d.QValue, 1e-9, "Terminal target is the reward alone")
		require.True(t, g.GameOver())
		require.Equal(t, game.White, g.Winner())
	})

	t.Run("no legal action is a draw", func(t *testing.T) {
		g := gameWith(t, game.White,
			piece{game.Pos{Row: 0, Col: 0}, game.King, game.White},
			piece{game.Pos{Row: 0, Col: 1}, game.Pawn, game.Black},
			piece{game.Pos{Row: 1, Col: 0}, game.Pawn, game.Black},
			piece{game.Pos{Row: 7, Col: 7}, game.King, game.Black},
		)
		a := NewQLearner("white", NewQTable(), WithRand(seeded(1)))

		d, err := a.Decide(g)

		require.NoError(t, err)
		require.Equal(t, OutcomeDraw, d.Outcome)
		require.True(t, g.GameOver())
		require.Equal(t, game.NoColor, g.Winner())

		_, err = a.Decide(g)
		require.ErrorIs(t, err, game.ErrGameOver)
	})

	t.Run("refused during the opening", func(t *testing.T) {
		a := NewQLearner("white", NewQTable())
		_, err := a.Decide(game.NewGame())
		require.ErrorIs(t, err, game.ErrWrongPhase)
	})

	opening := []piece{
		{game.Pos{Row: 0, Col: 0}, game.King, game.White},
		{game.Pos{Row: 0, Col: 1}, game.Farm, game.White},
		{game.Pos{Row: 7, Col: 7}, game.King, game.Black},
	}

	t.Run("greedy picks the best known action", func(t *testing.T) {
		g := gameWith(t, game.White, opening...)
		table := NewQTable()
		best := game.PlacePawnAt(game.Pos{Row: 1, Col: 1})
		table.Set(g.Snapshot(), best, 5)
		a := NewEvaluationAgent("white", table, WithRand(seeded(3)))

		d, err := a.Decide(g)

		require.NoError(t, err)
		require.Equal(t, best, d.Action)
		require.False(t, d.Exploration)
		require.Equal(t, 1, table.Len(), "Evaluation agents should not learn")
		require.Equal(t, 0.0, a.Epsilon())
	})

	t.Run("exploration learns from the evaluation swing", func(t *testing.T) {
		g := gameWith(t, game.White, opening...)
		table := NewQTable()
		collector := metrics.NewCollector()
		a := NewQLearner("white", table, WithEpsilon(1), WithRand(seeded(5)), WithRecorder(collector))
		state := g.Snapshot()

		d, err := a.Decide(g)

		require.NoError(t, err)
		require.True(t, d.Exploration)
		require.Equal(t, game.PlacePawnAction, d.Action.Type)
		require.Equal(t, float64(game.PawnValue), d.Reward)
		require.InDelta(t, 0.3, d.QValue, 1e-9)
		require.InDelta(t, 0.3, d.QValueChange, 1e-9)
		require.InDelta(t, 0.3, table.Value(state, d.Action), 1e-9)

		require.NoError(t, collector.EndGame(1))
		require.Equal(t, metrics.Summary{Decisions: 1, Explorations: 1, TotalReward: 3}, collector.Last())
	})
}

func TestUpdate(t *testing.T) {
	table := NewQTable()
	a := NewQLearner("white", table, WithAlpha(0.5), WithGamma(0.9))
	state := game.NewBoard().Snapshot()
	nextBoard := game.NewBoard()
	require.True(t, nextBoard.Place(game.Pos{Row: 0, Col: 0}, game.King, game.White))
	next := nextBoard.Snapshot()
	action := game.PlacePawnAt(game.Pos{Row: 1, Col: 0})
	nextAction := game.PlacePawnAt(game.Pos{Row: 2, Col: 0})

	change := a.update(state, action, 10, next, []game.Action{nextAction})
	require.InDelta(t, 5.0, change, 1e-9)
	require.InDelta(t, 5.0, table.Value(state, action), 1e-9)

	table.Set(next, nextAction, 4)
	change = a.update(state, action, 10, next, []game.Action{nextAction})
	require.InDelta(t, 4.3, change, 1e-9, "5 + 0.5*(10 + 0.9*4 - 5)")
	require.InDelta(t, 9.3, table.Value(state, action), 1e-9)
}

func TestEpsilonDecay(t *testing.T) {
	a := NewQLearner("white", NewQTable(), WithEpsilon(0.1), WithEpsilonDecay(0.5), WithMinEpsilon(0.03))

	a.EndEpisode()
	require.InDelta(t, 0.05, a.Epsilon(), 1e-12)
	a.EndEpisode()
	require.InDelta(t, 0.03, a.Epsilon(), 1e-12, "Epsilon should stop at the floor")
	a.EndEpisode()
	require.InDelta(t, 0.03, a.Epsilon(), 1e-12)
}

func TestReward(t *testing.T) {
	require.Equal(t, 500.0, Reward(0, -1000, true, true), "A win overrides the king hit bonus")
	require.Equal(t, 1000.0, Reward(0, 0, true, false))
	require.Equal(t, 500.0, Reward(10, 10, false, true))
	require.Equal(t, 7.0, Reward(10, 3, false, false))
	require.Equal(t, 3.0, Reward(0, 3, false, false))
}

func TestNewQLearner(t *testing.T) {
	require.Panics(t, func() { NewQLearner("white", nil) })

	a := NewQLearner("white", NewQTable(), WithAlpha(0), WithEpsilon(2))
	require.Equal(t, 0.1, a.alpha, "Out of range options should keep defaults")
	require.Equal(t, 0.1, a.Epsilon())
	require.True(t, a.Learning())
}

func TestTakeTurn(t *testing.T) {
	agents := map[string]func(uint64) Agent{
		"q-learner": func(seed uint64) Agent { return NewQLearner("q", NewQTable(), WithRand(seeded(seed))) },
		"random":    func(seed uint64) Agent { return NewRandomAgent("random", seeded(seed)) },
	}
	for name, build := range agents {
		t.Run(name, func(t *testing.T) {
			g := game.NewGame()
			players := [2]Agent{build(1), build(2)}

			for turn := 0; turn < 40 && !g.GameOver(); turn++ {
				color := g.ActiveColor()
				initial := g.InitialPhase()
				require.NoError(t, players[color].TakeTurn(g))
				if g.GameOver() || initial {
					continue
				}
				require.Equal(t, color.Opponent(), g.ActiveColor(), "Turn should pass")
				require.Equal(t, 0, g.Actions(color), "All actions should be spent")
				require.Less(t, g.ActionPoints(color)-g.Board().CountPieceOfKind(color, game.Farm), game.ActionCost,
					"Affordable actions should have been bought before the farm income")
			}
			require.Greater(t, g.TurnsPlayed(), 0)
		})
	}

	t.Run("nothing to do once the game is over", func(t *testing.T) {
		g := gameWith(t, game.White,
			piece{game.Pos{Row: 0, Col: 0}, game.King, game.White},
			piece{game.Pos{Row: 7, Col: 7}, game.King, game.Black},
		)
		g.DeclareDraw()
		require.NoError(t, NewRandomAgent("random", seeded(1)).TakeTurn(g))
	})
}
