package agent

import (
	"errors"
	"fmt"
	"time"

	"territory/game"

	"golang.org/x/exp/rand"
)

var ErrNoPlacement = errors.New("no square left for initial placement")

// Agent plays whole turns for the active color of a game.
type Agent interface {
	// TakeTurn plays the active color's turn: its initial placements during
	// the opening, otherwise buy actions, spend them all and pass.
	TakeTurn(g *game.Game) error
	Name() string
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
}

// playTurn drives one turn, calling decide once per action until the
// active color has no actions left or the game ends.
func playTurn(g *game.Game, rng *rand.Rand, decide func(*game.Game) error) error {
	if g.GameOver() {
		return nil
	}
	if g.InitialPhase() {
		return PlaceInitial(g, rng)
	}

	color := g.ActiveColor()
	for g.ActionPoints(color) >= game.ActionCost {
		if err := g.BuyAction(); err != nil {
			return err
		}
	}
	for !g.GameOver() && g.Actions(color) > 0 {
		if err := decide(g); err != nil {
			return err
		}
	}
	if g.GameOver() {
		return nil
	}
	return g.PassTurn()
}

// PlaceInitial plays every consecutive initial sub-state of the active
// color: the King on a random empty square outside the center that leaves
// room for the Farm, then the Farm on a random free orthogonal neighbour.
func PlaceInitial(g *game.Game, rng *rand.Rand) error {
	color := g.ActiveColor()
	for !g.GameOver() && g.InitialPhase() && g.ActiveColor() == color {
		board := g.Board()
		var candidates []game.Pos
		switch g.Turn().InitialKind() {
		case game.King:
			candidates = kingSquares(board)
		case game.Farm:
			candidates = farmSquares(board, color)
		}
		if len(candidates) == 0 {
			return fmt.Errorf("%w: %s %s", ErrNoPlacement, color, g.Turn().InitialKind())
		}
		if err := g.PlaceInitial(candidates[rng.Intn(len(candidates))]); err != nil {
			return err
		}
	}
	return nil
}

func kingSquares(b *game.Board) []game.Pos {
	var squares []game.Pos
	for _, pos := range game.AllSquares() {
		if !openOutsideCenter(b, pos) {
			continue
		}
		for _, n := range pos.Neighbors() {
			if openOutsideCenter(b, n) {
				squares = append(squares, pos)
				break
			}
		}
	}
	return squares
}

func farmSquares(b *game.Board, color game.Color) []game.Pos {
	king, ok := b.KingPosition(color)
	if !ok {
		return nil
	}
	var squares []game.Pos
	for _, n := range king.Neighbors() {
		if openOutsideCenter(b, n) {
			squares = append(squares, n)
		}
	}
	return squares
}

func openOutsideCenter(b *game.Board, pos game.Pos) bool {
	_, occupied := b.Get(pos)
	return !occupied && !b.IsInitialExclusionZone(pos)
}

// kingShot returns a legal shot at the enemy King, if any.
func kingShot(g *game.Game, actions []game.Action) (game.Action, bool) {
	for _, a := range actions {
		if g.HitsKing(a) {
			return a, true
		}
	}
	return game.Action{}, false
}

// threatUpgrade returns the upgrade of a pawn standing on a diagonal of the
// enemy King to a Turret, if any.
func threatUpgrade(g *game.Game, actions []game.Action) (game.Action, bool) {
	king, ok := g.Board().KingPosition(g.ActiveColor().Opponent())
	if !ok {
		return game.Action{}, false
	}
	for _, a := range actions {
		if a.Type == game.UpgradeAction && a.Kind == game.Turret && a.From.OnDiagonal(king) {
			return a, true
		}
	}
	return game.Action{}, false
}
