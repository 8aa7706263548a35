package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNCR(t *testing.T) {
	testCases := []struct {
		name string
		n, r int
		want float64
	}{
		{"0 choose 0", 0, 0, 1},
		{"n choose 0", 5, 0, 1},
		{"n choose n", 5, 5, 1},
		{"n choose 1", 5, 1, 5},
		{"5 choose 2", 5, 2, 10},
		{"10 choose 3", 10, 3, 120},
		{"20 choose 10", 20, 10, 184756},
		{"8 choose 4", 8, 4, 70},
		{"r greater than n", 1, 2, 0},
		{"negative r", 5, -1, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, NCR(tc.n, tc.r), 1e-9)
		})
	}
}

func TestNCR_Symmetry(t *testing.T) {
	for r := 0; r <= 12; r++ {
		assert.InDelta(t, NCR(12, r), NCR(12, 12-r), 1e-6, "nCr(12,%d) must equal nCr(12,%d)", r, 12-r)
	}
}

func TestNCR_PascalIdentity(t *testing.T) {
	// C(n, r) == C(n-1, r-1) + C(n-1, r)
	for n := 2; n <= 16; n++ {
		for r := 1; r < n; r++ {
			assert.InDelta(t, NCR(n-1, r-1)+NCR(n-1, r), NCR(n, r), 1e-6)
		}
	}
}
