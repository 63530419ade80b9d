package game

import "fmt"

// ActionType represents the kind of a steady-state action.
type ActionType int8

const (
	PlacePawnAction ActionType = iota
	UpgradeAction
	FireAction
)

func (t ActionType) String() string {
	switch t {
	case PlacePawnAction:
		return "place_pawn"
	case UpgradeAction:
		return "upgrade_pawn"
	case FireAction:
		return "fire_turret"
	default:
		return fmt.Sprintf("action(%d)", int8(t))
	}
}

// Action is one committed player action. From is the pawn (upgrade) or the
// turret (fire); To is the placement square (place) or the target (fire);
// Kind is the upgrade kind. Actions are comparable and used as table keys.
type Action struct {
	Type ActionType `json:"type"`
	From Pos        `json:"from"`
	To   Pos        `json:"to"`
	Kind PieceKind  `json:"kind,omitempty"`
}

func PlacePawnAt(pos Pos) Action {
	return Action{Type: PlacePawnAction, To: pos}
}

func UpgradeAt(pos Pos, kind PieceKind) Action {
	return Action{Type: UpgradeAction, From: pos, Kind: kind}
}

func FireAt(turret, target Pos) Action {
	return Action{Type: FireAction, From: turret, To: target}
}

func (a Action) String() string {
	switch a.Type {
	case PlacePawnAction:
		return fmt.Sprintf("%s %s", a.Type, a.To)
	case UpgradeAction:
		return fmt.Sprintf("%s %s %s", a.Type, a.From, a.Kind)
	case FireAction:
		return fmt.Sprintf("%s %s->%s", a.Type, a.From, a.To)
	default:
		return a.Type.String()
	}
}
