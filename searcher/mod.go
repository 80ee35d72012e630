package searcher

import (
	"fmt"
	"math"
)

// DefaultExploreParam is the UCB1 exploration constant.
const DefaultExploreParam = 2.0

// Policy selects the best play among the children of a fully expanded node.
type Policy int

const (
	Robust Policy = iota // most visits
	Max                  // best win ratio
)

func (p Policy) String() string {
	switch p {
	case Robust:
		return "robust"
	case Max:
		return "max"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "robust":
		return Robust, nil
	case "max":
		return Max, nil
	}
	return 0, fmt.Errorf("unknown policy %q", name)
}

func ucb1(wins float64, visits int, cLnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}

	return wins/float64(visits) + math.Sqrt(cLnN/float64(visits))
}
