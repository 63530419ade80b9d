package game

// Board is the 8x8 grid plus a cached King position per color. The cache is
// written only when a King is placed.
type Board struct {
	cells   [BoardSize][BoardSize]Piece
	kings   [2]Pos
	hasKing [2]bool
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	c := *b
	return &c
}

// Get returns the piece at pos. Squares outside the grid are always empty.
func (b *Board) Get(pos Pos) (Piece, bool) {
	if !pos.Valid() {
		return Piece{}, false
	}
	p := b.cells[pos.Row][pos.Col]
	return p, !p.IsEmpty()
}

// Place puts a new piece on an empty, on-board square. Placing a King
// records the King position for its color.
func (b *Board) Place(pos Pos, kind PieceKind, color Color) bool {
	if !b.IsValidPosition(pos) || kind == NoKind || (color != White && color != Black) {
		return false
	}
	if _, occupied := b.Get(pos); occupied {
		return false
	}
	b.cells[pos.Row][pos.Col] = Piece{Color: color, Kind: kind}
	if kind == King {
		b.kings[color] = pos
		b.hasKing[color] = true
	}
	return true
}

// replace overwrites an occupied square in place (upgrades, shield hits).
func (b *Board) replace(pos Pos, p Piece) {
	b.cells[pos.Row][pos.Col] = p
}

// remove empties a square.
func (b *Board) remove(pos Pos) {
	b.cells[pos.Row][pos.Col] = Piece{}
}

func (b *Board) IsValidPosition(pos Pos) bool {
	return pos.Valid()
}

// IsInitialExclusionZone reports whether pos is one of the four center squares.
func (b *Board) IsInitialExclusionZone(pos Pos) bool {
	return (pos.Row == 3 || pos.Row == 4) && (pos.Col == 3 || pos.Col == 4)
}

// KingPosition returns the cached King position of color.
func (b *Board) KingPosition(color Color) (Pos, bool) {
	if color != White && color != Black {
		return Pos{}, false
	}
	return b.kings[color], b.hasKing[color]
}

// IsAdjacentToKing reports whether pos orthogonally neighbours color's King.
func (b *Board) IsAdjacentToKing(pos Pos, color Color) bool {
	king, ok := b.KingPosition(color)
	if !ok {
		return false
	}
	for _, d := range orthogonal {
		if king.Add(d) == pos {
			return true
		}
	}
	return false
}

// IsAdjacentToFriendly reports whether any orthogonal neighbour of pos holds
// a piece of color.
func (b *Board) IsAdjacentToFriendly(pos Pos, color Color) bool {
	for _, n := range pos.Neighbors() {
		if p, ok := b.Get(n); ok && p.Color == color {
			return true
		}
	}
	return false
}

func (b *Board) HasPieceOfKind(color Color, kind PieceKind) bool {
	return b.CountPieceOfKind(color, kind) > 0
}

func (b *Board) CountPieceOfKind(color Color, kind PieceKind) int {
	count := 0
	for _, pos := range AllSquares() {
		if p, ok := b.Get(pos); ok && p.Color == color && p.Kind == kind {
			count++
		}
	}
	return count
}

// CountPieces counts every piece of color.
func (b *Board) CountPieces(color Color) int {
	count := 0
	for _, pos := range AllSquares() {
		if p, ok := b.Get(pos); ok && p.Color == color {
			count++
		}
	}
	return count
}

// PositionsOf returns the squares holding color's pieces of kind, row-major.
func (b *Board) PositionsOf(color Color, kind PieceKind) []Pos {
	var squares []Pos
	for _, pos := range AllSquares() {
		if p, ok := b.Get(pos); ok && p.Color == color && p.Kind == kind {
			squares = append(squares, pos)
		}
	}
	return squares
}

// FindKing scans the board for color's King, independently of the cache.
func (b *Board) FindKing(color Color) (Pos, bool) {
	squares := b.PositionsOf(color, King)
	if len(squares) == 0 {
		return Pos{}, false
	}
	return squares[0], true
}

// Snapshot returns the immutable piece-code image of the board.
func (b *Board) Snapshot() Snapshot {
	var s Snapshot
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			s[row*BoardSize+col] = encodePiece(b.cells[row][col])
		}
	}
	return s
}
