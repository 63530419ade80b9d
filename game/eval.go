package game

// Piece values used by the static evaluator.
const (
	KingValue   = 1000
	PawnValue   = 3
	TurretValue = 6
	ShieldValue = 6
	FarmValue   = 7
)

// Evaluator scores a board; positive favours White.
type Evaluator func(*Board) int

// Evaluate sums the signed material value of every piece on the board,
// positive for White and negative for Black. It has no side effects.
func Evaluate(b *Board) int {
	score := 0
	for _, pos := range AllSquares() {
		if p, ok := b.Get(pos); ok {
			score += PieceValue(p)
		}
	}
	return score
}

// PieceValue returns the signed material value of p.
func PieceValue(p Piece) int {
	var value int
	switch p.Kind {
	case King:
		value = KingValue
	case Pawn:
		value = PawnValue
	case Turret:
		value = TurretValue
	case Shield:
		value = ShieldValue
	case Farm:
		value = FarmValue
	}
	if p.Color == Black {
		return -value
	}
	return value
}
