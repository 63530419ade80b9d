package game

// Turn is the turn marker: the initial placement sub-states followed by
// alternating steady-state turns.
type Turn int8

const (
	InitialKingWhite Turn = iota
	InitialFarmWhite
	InitialKingBlack
	InitialFarmBlack
	WhiteTurn
	BlackTurn
)

// Color returns the side to act.
func (t Turn) Color() Color {
	switch t {
	case InitialKingWhite, InitialFarmWhite, WhiteTurn:
		return White
	default:
		return Black
	}
}

// IsInitial reports whether t is one of the initial placement sub-states.
func (t Turn) IsInitial() bool {
	return t < WhiteTurn
}

// InitialKind returns the kind placed in an initial sub-state.
func (t Turn) InitialKind() PieceKind {
	switch t {
	case InitialKingWhite, InitialKingBlack:
		return King
	case InitialFarmWhite, InitialFarmBlack:
		return Farm
	default:
		return NoKind
	}
}

func (t Turn) String() string {
	switch t {
	case InitialKingWhite:
		return "white_king"
	case InitialFarmWhite:
		return "white_farm"
	case InitialKingBlack:
		return "black_king"
	case InitialFarmBlack:
		return "black_farm"
	case WhiteTurn:
		return "white"
	case BlackTurn:
		return "black"
	default:
		return "unknown"
	}
}

// turnOf returns the steady-state turn of color.
func turnOf(c Color) Turn {
	if c == White {
		return WhiteTurn
	}
	return BlackTurn
}
