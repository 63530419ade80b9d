package game

import "fmt"

// Color identifies a side. NoColor marks the absence of a side, e.g. the
// winner of a drawn game.
type Color int8

const (
	White Color = iota
	Black
	NoColor Color = -1
)

// Colors lists both sides in turn order.
var Colors = [2]Color{White, Black}

func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// PieceKind is the type of a piece. The zero value marks an empty square.
type PieceKind int8

const (
	NoKind PieceKind = iota
	King
	Farm
	Pawn
	Turret
	Shield
)

// UpgradeKinds are the kinds a pawn may be upgraded to, in enumeration order.
var UpgradeKinds = [3]PieceKind{Farm, Turret, Shield}

func (k PieceKind) String() string {
	switch k {
	case King:
		return "king"
	case Farm:
		return "farm"
	case Pawn:
		return "pawn"
	case Turret:
		return "turret"
	case Shield:
		return "shield"
	default:
		return "empty"
	}
}

// ParseKind maps a kind name (as produced by String) back to a PieceKind.
func ParseKind(name string) (PieceKind, error) {
	for k := King; k <= Shield; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return NoKind, fmt.Errorf("%w: unknown piece kind %q", ErrInvalidKind, name)
}

// IsUpgrade reports whether a pawn may be upgraded to k.
func (k PieceKind) IsUpgrade() bool {
	return k == Farm || k == Turret || k == Shield
}

// Piece is the occupant of a square. A zero Piece is an empty square.
type Piece struct {
	Color Color
	Kind  PieceKind
}

func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Color.String() + " " + p.Kind.String()
}
