package heuristic

import "github.com/trachwo/masters-of-shithead-sub000/game"

// Values maps a rank to its worth. Cheap cards are played first.
type Values map[game.Rank]int

var (
	// RankValues: 4 to A by strength, then 10, 2 and 3 which fit (almost)
	// every pile.
	RankValues = Values{
		game.Four: 0, game.Five: 1, game.Six: 2, game.Seven: 3, game.Eight: 4,
		game.Nine: 5, game.Jack: 6, game.Queen: 7, game.King: 8, game.Ace: 9,
		game.Ten: 10, game.Two: 11, game.Three: 12,
	}

	// DruckValues plays a 3 before a 2 to keep a 7, K or A in force.
	DruckValues = Values{
		game.Four: 0, game.Five: 1, game.Six: 2, game.Seven: 3, game.Eight: 4,
		game.Nine: 5, game.Jack: 6, game.Queen: 7, game.King: 8, game.Ace: 9,
		game.Ten: 10, game.Three: 11, game.Two: 12,
	}

	CheapShitValues = Values{
		game.Four: 0, game.Five: 1, game.Six: 2, game.Seven: 3, game.Eight: 4,
		game.Nine: 5, game.Jack: 6, game.Queen: 7, game.King: 8, game.Ace: 9,
		game.Three: 10, game.Two: 11, game.Ten: 12,
	}
)

// HoldBackValue: a rank worth this much or more is played one card at a time
// while the talon lasts.
const HoldBackValue = 7

func (v Values) max() int {
	m := 0
	for _, value := range v {
		m = max(m, value)
	}
	return m
}

// ForPile picks DruckValues on a 7, K or A (3s looked through), RankValues
// otherwise.
func ForPile(d game.Discard) Values {
	switch d.TopNon3Rank() {
	case game.Seven, game.King, game.Ace:
		return DruckValues
	}
	return RankValues
}
