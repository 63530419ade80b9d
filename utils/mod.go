package utils

// FindIndex returns the index of the first occurrence of item, or -1.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// MaxIndices returns the indices of every element sharing the maximum score.
func MaxIndices[T any](slice []T, score func(T) float64) []int {
	var best []int
	for i, v := range slice {
		s := score(v)
		switch {
		case len(best) == 0 || s > score(slice[best[0]]):
			best = []int{i}
		case s == score(slice[best[0]]):
			best = append(best, i)
		}
	}
	return best
}
