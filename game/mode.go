package game

// Mode is the transient interaction mode of the active player. Exactly one
// mode is active at a time: Idle, PlacingPawn, Upgrading or Firing.
type Mode interface {
	Name() string
	isMode()
}

type Idle struct{}

// PlacingPawn waits for the square of a new pawn.
type PlacingPawn struct{}

// Upgrading waits for the pawn to turn into Kind.
type Upgrading struct {
	Kind PieceKind
}

// Firing waits for a turret (Turret == nil) and then for one of its Targets.
type Firing struct {
	Turret  *Pos
	Targets []Pos
}

func (Idle) Name() string        { return "idle" }
func (PlacingPawn) Name() string { return "placing_pawn" }
func (Upgrading) Name() string   { return "upgrading" }
func (Firing) Name() string      { return "firing" }

func (Idle) isMode()        {}
func (PlacingPawn) isMode() {}
func (Upgrading) isMode()   {}
func (Firing) isMode()      {}
