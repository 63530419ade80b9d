package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnectedToKing(t *testing.T) {
	b := NewBoard()
	require.True(t, b.Place(Pos{7, 7}, King, Black))
	require.True(t, b.Place(Pos{7, 6}, Farm, Black))
	require.True(t, b.Place(Pos{6, 6}, Pawn, Black))
	require.True(t, b.Place(Pos{5, 5}, Pawn, Black)) // diagonal only
	require.True(t, b.Place(Pos{6, 5}, Pawn, White)) // enemy does not bridge

	connected := ConnectedToKing(b, Black)

	require.Equal(t, map[Pos]bool{{7, 7}: true, {7, 6}: true, {6, 6}: true}, connected)
}

func TestSweepIsolated(t *testing.T) {
	t.Run("removes every disconnected piece as one batch", func(t *testing.T) {
		b := NewBoard()
		require.True(t, b.Place(Pos{7, 7}, King, Black))
		require.True(t, b.Place(Pos{7, 6}, Farm, Black))
		// A chain of three cut off from the king, plus a lone piece.
		require.True(t, b.Place(Pos{5, 5}, Pawn, Black))
		require.True(t, b.Place(Pos{5, 4}, Turret, Black))
		require.True(t, b.Place(Pos{4, 4}, Shield, Black))
		require.True(t, b.Place(Pos{0, 0}, Pawn, Black))
		require.True(t, b.Place(Pos{1, 1}, Pawn, White))

		removed := SweepIsolated(b, Black)

		require.ElementsMatch(t, []Pos{{5, 5}, {5, 4}, {4, 4}, {0, 0}}, removed)
		require.Equal(t, 2, b.CountPieces(Black))
		require.Equal(t, 1, b.CountPieces(White), "Other color should be untouched")
	})

	t.Run("connected board is unchanged", func(t *testing.T) {
		b := NewBoard()
		require.True(t, b.Place(Pos{0, 0}, King, White))
		require.True(t, b.Place(Pos{0, 1}, Farm, White))
		require.True(t, b.Place(Pos{1, 1}, Pawn, White))

		require.Empty(t, SweepIsolated(b, White))
		require.Equal(t, 3, b.CountPieces(White))
	})

	t.Run("no king means no sweep", func(t *testing.T) {
		b := NewBoard()
		require.True(t, b.Place(Pos{1, 1}, Pawn, White))

		require.Empty(t, SweepIsolated(b, White))
		require.Equal(t, 1, b.CountPieces(White))
	})
}
