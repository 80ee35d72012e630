package searcher

import "math"

type explorer struct {
	numerator float64
}

// newExplorer precomputes c*ln(N) for a parent with N visits.
func newExplorer(c float64, N int) explorer {
	if N == 0 {
		panic("N cannot be 0")
	}
	return explorer{numerator: c * math.Log(float64(N))}
}

// evaluate = q/n + sqrt(c*ln(N)/n)
func (e explorer) evaluate(q float64, n int) float64 {
	return ucb1(q, n, e.numerator)
}
