package game

// PieceView is one occupied square of a View.
type PieceView struct {
	Pos   Pos    `json:"pos"`
	Color string `json:"color"`
	Kind  string `json:"kind"`
}

// View is a read-only, serialisable picture of a game for display and logs.
type View struct {
	Pieces       []PieceView    `json:"pieces"`
	Turn         string         `json:"turn"`
	InitialPhase bool           `json:"initialPhase"`
	Actions      map[string]int `json:"actions"`
	ActionPoints map[string]int `json:"actionPoints"`
	Mode         string         `json:"mode"`
	Turret       *Pos           `json:"turret,omitempty"`
	Targets      []Pos          `json:"targets,omitempty"`
	UpgradeKind  string         `json:"upgradeKind,omitempty"`
	GameOver     bool           `json:"gameOver"`
	Winner       string         `json:"winner,omitempty"`
	Score        int            `json:"score"`
	Board        string         `json:"board"`
}

// View builds the current View of g.
func (g *Game) View() View {
	v := View{
		Turn:         g.turn.String(),
		InitialPhase: g.turn.IsInitial(),
		Actions:      map[string]int{},
		ActionPoints: map[string]int{},
		Mode:         g.mode.Name(),
		GameOver:     g.over,
		Score:        Evaluate(g.board),
		Board:        g.board.Snapshot().String(),
	}
	for _, c := range Colors {
		v.Actions[c.String()] = g.actions[c]
		v.ActionPoints[c.String()] = g.points[c]
	}
	for _, pos := range AllSquares() {
		if p, ok := g.board.Get(pos); ok {
			v.Pieces = append(v.Pieces, PieceView{Pos: pos, Color: p.Color.String(), Kind: p.Kind.String()})
		}
	}
	switch m := g.Mode().(type) {
	case Upgrading:
		v.UpgradeKind = m.Kind.String()
	case Firing:
		v.Turret = m.Turret
		v.Targets = m.Targets
	}
	if g.over && g.winner != NoColor {
		v.Winner = g.winner.String()
	}
	return v
}
