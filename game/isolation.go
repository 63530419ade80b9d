package game

// ConnectedToKing returns the squares reachable from color's King moving
// orthogonally through color's own pieces only. Just BFS.
func ConnectedToKing(b *Board, color Color) map[Pos]bool {
	connected := make(map[Pos]bool)
	king, ok := b.KingPosition(color)
	if !ok {
		return connected
	}
	if p, occupied := b.Get(king); !occupied || p.Color != color {
		return connected
	}

	queue := []Pos{king}
	connected[king] = true
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, n := range current.Neighbors() {
			if connected[n] {
				continue
			}
			if p, occupied := b.Get(n); occupied && p.Color == color {
				connected[n] = true
				queue = append(queue, n)
			}
		}
	}
	return connected
}

// SweepIsolated removes every piece of color not connected to its King and
// returns the emptied squares. The connected set is computed first and the
// removals applied afterwards as one batch. Without a King nothing is swept.
func SweepIsolated(b *Board, color Color) []Pos {
	if _, ok := b.KingPosition(color); !ok {
		return nil
	}
	connected := ConnectedToKing(b, color)

	var isolated []Pos
	for _, pos := range AllSquares() {
		if p, ok := b.Get(pos); ok && p.Color == color && !connected[pos] {
			isolated = append(isolated, pos)
		}
	}
	for _, pos := range isolated {
		b.remove(pos)
	}
	return isolated
}
