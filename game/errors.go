package game

import "errors"

// Rejections returned by the engine. A rejected call never changes state.
var (
	ErrGameOver           = errors.New("game is over")
	ErrWrongPhase         = errors.New("not allowed in this phase")
	ErrWrongMode          = errors.New("not allowed in this mode")
	ErrIllegalPlacement   = errors.New("illegal placement")
	ErrNoActions          = errors.New("no actions remaining")
	ErrInsufficientPoints = errors.New("not enough action points")
	ErrNoPawn             = errors.New("no pawn to upgrade")
	ErrNoTurret           = errors.New("no turret to fire")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrInvalidTarget      = errors.New("invalid target")
	ErrInvalidKind        = errors.New("invalid piece kind")
)
