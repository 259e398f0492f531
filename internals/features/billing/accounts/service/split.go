package service

// SplitEvenCents divides totalCents evenly across n slots. Every slot gets
// the integer quotient; the last slot additionally absorbs the remainder, so
// the parts always sum back to totalCents.
func SplitEvenCents(totalCents, n int) []int {
	if n <= 0 {
		return nil
	}
	per := totalCents / n
	parts := make([]int, n)
	for i := range parts {
		parts[i] = per
	}
	parts[n-1] += totalCents - per*n
	return parts
}
