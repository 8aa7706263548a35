package analyze

// NCR computes the binomial coefficient "n choose r" as a float64.
//
// The multiplicative form keeps intermediate values near the final
// magnitude, avoiding the factorial blowup that would overflow long before
// the answer does. Results are exact for the magnitudes the puzzle domain
// produces and feed probability weighting, not integer counting.
//
// Out-of-range r (r < 0 or r > n) yields 0.
func NCR(n, r int) float64 {
	if r > n || r < 0 {
		return 0
	}
	if r == 0 || r == n {
		return 1
	}
	value := 1.0
	for i := 0; i < r; i++ {
		value = value * float64(n-i) / float64(r-i)
	}
	return value
}
