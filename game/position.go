package game

import "fmt"

const BoardSize = 8

// Pos is a (row, col) square coordinate.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Valid reports whether p lies on the board.
func (p Pos) Valid() bool {
	return 0 <= p.Row && p.Row < BoardSize && 0 <= p.Col && p.Col < BoardSize
}

func (p Pos) Add(d Pos) Pos {
	return Pos{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Orthogonal steps: up, down, left, right.
var orthogonal = [4]Pos{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Diagonal steps, in turret scan order.
var diagonal = [4]Pos{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// Neighbors returns the on-board orthogonal neighbours of p.
func (p Pos) Neighbors() []Pos {
	neighbors := make([]Pos, 0, len(orthogonal))
	for _, d := range orthogonal {
		if n := p.Add(d); n.Valid() {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// OnDiagonal reports whether q lies on one of the four diagonal rays from p.
func (p Pos) OnDiagonal(q Pos) bool {
	dr, dc := q.Row-p.Row, q.Col-p.Col
	if dr == 0 {
		return false
	}
	return dr == dc || dr == -dc
}

// AllSquares returns every square in row-major order.
func AllSquares() []Pos {
	squares := make([]Pos, 0, BoardSize*BoardSize)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			squares = append(squares, Pos{Row: row, Col: col})
		}
	}
	return squares
}
