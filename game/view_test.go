package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestView(t *testing.T) {
	t.Run("opening", func(t *testing.T) {
		v := openedGame(t).View()

		require.Equal(t, "white", v.Turn)
		require.False(t, v.InitialPhase)
		require.Equal(t, map[string]int{"white": 1, "black": 1}, v.Actions)
		require.Equal(t, map[string]int{"white": 0, "black": 1}, v.ActionPoints)
		require.Equal(t, "idle", v.Mode)
		require.Len(t, v.Pieces, 4)
		require.Equal(t, PieceView{Pos: Pos{0, 0}, Color: "white", Kind: "king"}, v.Pieces[0])
		require.Empty(t, v.Winner)
	})

	t.Run("firing mode exposes targets", func(t *testing.T) {
		g := openedGame(t)
		put(t, g, Pos{2, 2}, Turret, White)
		put(t, g, Pos{4, 4}, Pawn, Black)
		require.NoError(t, g.InitiateFiring())
		require.NoError(t, g.SelectTurret(Pos{2, 2}))

		v := g.View()

		require.Equal(t, "firing", v.Mode)
		require.Equal(t, &Pos{2, 2}, v.Turret)
		require.Equal(t, []Pos{{4, 4}}, v.Targets)
	})

	t.Run("winner", func(t *testing.T) {
		g := openedGame(t)
		put(t, g, Pos{5, 5}, Turret, White)
		require.NoError(t, g.Apply(FireAt(Pos{5, 5}, Pos{7, 7})))

		v := g.View()
		require.True(t, v.GameOver)
		require.Equal(t, "white", v.Winner)
	})
}

func TestParseKind(t *testing.T) {
	for _, kind := range []PieceKind{King, Farm, Pawn, Turret, Shield} {
		parsed, err := ParseKind(kind.String())
		require.NoError(t, err)
		require.Equal(t, kind, parsed)
	}
	_, err := ParseKind("queen")
	require.ErrorIs(t, err, ErrInvalidKind)
}
