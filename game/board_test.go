package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestBoardGet(t *testing.T) {
	t.Run("out of bounds is empty", func(t *testing.T) {
		b := NewBoard()
		for _, pos := range []Pos{{-1, 0}, {0, -1}, {8, 0}, {0, 8}} {
			p, ok := b.Get(pos)
			require.False(t, ok, "Square %s should be empty", pos)
			require.True(t, p.IsEmpty())
		}
	})
}

func TestBoardPlace(t *testing.T) {
	t.Run("placing on an empty square", func(t *testing.T) {
		b := NewBoard()

		require.True(t, b.Place(Pos{2, 3}, Pawn, Black))

		p, ok := b.Get(Pos{2, 3})
		require.True(t, ok)
		require.Equal(t, Piece{Color: Black, Kind: Pawn}, p)
	})

	t.Run("placing on an occupied square fails without mutation", func(t *testing.T) {
		b := NewBoard()
		require.True(t, b.Place(Pos{2, 3}, Pawn, Black))
		before := b.Snapshot()

		require.False(t, b.Place(Pos{2, 3}, Turret, White))
		require.Empty(t, cmp.Diff(before, b.Snapshot()), "Board should not change")
	})

	t.Run("placing out of bounds fails", func(t *testing.T) {
		b := NewBoard()
		require.False(t, b.Place(Pos{8, 8}, Pawn, White))
		require.Equal(t, 0, b.CountPieces(White))
	})

	t.Run("placing a king records the cache", func(t *testing.T) {
		b := NewBoard()
		_, ok := b.KingPosition(White)
		require.False(t, ok, "Cache should be empty before the king is placed")

		require.True(t, b.Place(Pos{0, 5}, King, White))

		cached, ok := b.KingPosition(White)
		require.True(t, ok)
		found, ok := b.FindKing(White)
		require.True(t, ok)
		require.Equal(t, found, cached, "Cache should equal the scanned king square")
		_, ok = b.KingPosition(Black)
		require.False(t, ok, "Other color cache should stay empty")
	})
}

func TestBoardQueries(t *testing.T) {
	b := NewBoard()
	require.True(t, b.Place(Pos{0, 0}, King, White))
	require.True(t, b.Place(Pos{0, 1}, Farm, White))
	require.True(t, b.Place(Pos{1, 1}, Pawn, White))
	require.True(t, b.Place(Pos{2, 1}, Pawn, White))
	require.True(t, b.Place(Pos{7, 7}, King, Black))

	t.Run("exclusion zone is the four center squares", func(t *testing.T) {
		zone := 0
		for _, pos := range AllSquares() {
			if b.IsInitialExclusionZone(pos) {
				zone++
			}
		}
		require.Equal(t, 4, zone)
		for _, pos := range []Pos{{3, 3}, {3, 4}, {4, 3}, {4, 4}} {
			require.True(t, b.IsInitialExclusionZone(pos))
		}
	})

	t.Run("adjacent to king", func(t *testing.T) {
		require.True(t, b.IsAdjacentToKing(Pos{1, 0}, White))
		require.True(t, b.IsAdjacentToKing(Pos{0, 1}, White))
		require.False(t, b.IsAdjacentToKing(Pos{1, 1}, White), "Diagonal is not adjacent")
		require.False(t, b.IsAdjacentToKing(Pos{1, 0}, Black))
	})

	t.Run("adjacent to friendly", func(t *testing.T) {
		require.True(t, b.IsAdjacentToFriendly(Pos{3, 1}, White))
		require.False(t, b.IsAdjacentToFriendly(Pos{3, 2}, White), "Diagonal neighbours do not count")
		require.True(t, b.IsAdjacentToFriendly(Pos{6, 7}, Black))
		require.False(t, b.IsAdjacentToFriendly(Pos{3, 1}, Black))
	})

	t.Run("counting pieces", func(t *testing.T) {
		require.Equal(t, 2, b.CountPieceOfKind(White, Pawn))
		require.Equal(t, 1, b.CountPieceOfKind(White, Farm))
		require.Equal(t, 0, b.CountPieceOfKind(Black, Pawn))
		require.True(t, b.HasPieceOfKind(White, Pawn))
		require.False(t, b.HasPieceOfKind(White, Turret))
		require.Equal(t, []Pos{{1, 1}, {2, 1}}, b.PositionsOf(White, Pawn))
	})
}

func TestSnapshot(t *testing.T) {
	b := NewBoard()
	require.True(t, b.Place(Pos{0, 0}, King, White))
	require.True(t, b.Place(Pos{7, 7}, King, Black))
	require.True(t, b.Place(Pos{7, 6}, Shield, Black))

	s := b.Snapshot()

	t.Run("snapshots are comparable keys", func(t *testing.T) {
		other := b.Copy().Snapshot()
		require.Equal(t, s, other)
		require.Equal(t, s.Hash(), other.Hash())

		require.True(t, b.Place(Pos{1, 0}, Pawn, White))
		require.NotEqual(t, s, b.Snapshot(), "Snapshot should not alias the board")
	})

	t.Run("rendering", func(t *testing.T) {
		require.Equal(t, "K......./......../......../......../......../......../......../......sk", s.String())
	})

	t.Run("rebuilding a board", func(t *testing.T) {
		rebuilt := s.Board()
		require.Empty(t, cmp.Diff(s, rebuilt.Snapshot()))
		king, ok := rebuilt.KingPosition(Black)
		require.True(t, ok)
		require.Equal(t, Pos{7, 7}, king)
	})
}
