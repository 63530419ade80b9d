package game

// ValidTargets returns the squares a turret of color standing on from may
// hit. Each diagonal is walked outward until the border or the first
// occupied square; that square is a target only if it holds an enemy piece.
// At most one target per direction.
func ValidTargets(b *Board, from Pos, color Color) []Pos {
	var targets []Pos
	for _, d := range diagonal {
		for pos := from.Add(d); pos.Valid(); pos = pos.Add(d) {
			p, occupied := b.Get(pos)
			if !occupied {
				continue
			}
			if p.Color != color {
				targets = append(targets, pos)
			}
			break
		}
	}
	return targets
}
