package game

// LegalActions enumerates every action open to the active player: pawn
// placements on empty squares next to a friendly piece, each own pawn with
// each upgrade kind, and each own turret with each of its current targets.
// It is empty during initial placement and once the game is over.
func (g *Game) LegalActions() []Action {
	if g.over || g.turn.IsInitial() {
		return nil
	}
	color := g.ActiveColor()
	var actions []Action

	for _, pos := range AllSquares() {
		if _, occupied := g.board.Get(pos); !occupied && g.board.IsAdjacentToFriendly(pos, color) {
			actions = append(actions, PlacePawnAt(pos))
		}
	}

	for _, pos := range g.board.PositionsOf(color, Pawn) {
		for _, kind := range UpgradeKinds {
			actions = append(actions, UpgradeAt(pos, kind))
		}
	}

	for _, turret := range g.board.PositionsOf(color, Turret) {
		for _, target := range ValidTargets(g.board, turret, color) {
			actions = append(actions, FireAt(turret, target))
		}
	}

	return actions
}

// HitsKing reports whether a is a shot at the enemy King on the current board.
func (g *Game) HitsKing(a Action) bool {
	if a.Type != FireAction {
		return false
	}
	p, ok := g.board.Get(a.To)
	return ok && p.Kind == King && p.Color != g.ActiveColor()
}
