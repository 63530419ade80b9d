package game

import (
	"hash/fnv"
	"strings"
)

// Snapshot is a fixed-size image of the board, one code per square in
// row-major order. It is comparable and serves as the value-table key.
type Snapshot [BoardSize * BoardSize]byte

type StateHash uint64

// Piece codes: 0 is empty, 1-5 are white King..Shield, 6-10 black King..Shield.
func encodePiece(p Piece) byte {
	if p.IsEmpty() {
		return 0
	}
	return byte(p.Kind) + byte(p.Color)*byte(Shield)
}

func decodePiece(code byte) Piece {
	if code == 0 {
		return Piece{}
	}
	color := White
	if code > byte(Shield) {
		color = Black
		code -= byte(Shield)
	}
	return Piece{Color: color, Kind: PieceKind(code)}
}

// Piece returns the piece recorded for pos.
func (s Snapshot) Piece(pos Pos) Piece {
	if !pos.Valid() {
		return Piece{}
	}
	return decodePiece(s[pos.Row*BoardSize+pos.Col])
}

// Hash returns an fnv-64a digest of the snapshot.
func (s Snapshot) Hash() StateHash {
	hasher := fnv.New64a()
	hasher.Write(s[:])
	return StateHash(hasher.Sum64())
}

var pieceGlyphs = [...]byte{'.', 'K', 'F', 'P', 'T', 'S', 'k', 'f', 'p', 't', 's'}

// String renders the snapshot as eight '/'-separated rows; upper case is
// white, lower case black, '.' empty.
func (s Snapshot) String() string {
	var sb strings.Builder
	for row := 0; row < BoardSize; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		for col := 0; col < BoardSize; col++ {
			code := s[row*BoardSize+col]
			if int(code) < len(pieceGlyphs) {
				sb.WriteByte(pieceGlyphs[code])
			} else {
				sb.WriteByte('?')
			}
		}
	}
	return sb.String()
}

// Board rebuilds a board from the snapshot. King positions are recovered by
// scanning, since the snapshot carries no cache.
func (s Snapshot) Board() *Board {
	b := NewBoard()
	for _, pos := range AllSquares() {
		if p := s.Piece(pos); !p.IsEmpty() {
			b.Place(pos, p.Kind, p.Color)
		}
	}
	return b
}
