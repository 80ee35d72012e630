// Package heuristic holds the greedy rules shared by the AI strategies and
// the rollout policy of the searchers.
package heuristic

import (
	"github.com/trachwo/masters-of-shithead-sub000/game"
	"github.com/trachwo/masters-of-shithead-sub000/utils"
)

func has(plays []game.Play, action game.Action) bool {
	return utils.Any(plays, func(p game.Play) bool { return p.Action == action })
}

// Without drops every play of the given action.
func Without(plays []game.Play, action game.Action) []game.Play {
	return utils.Filter(plays, func(p game.Play) bool { return p.Action != action })
}

// Only keeps the plays of the given action.
func Only(plays []game.Play, action game.Action) []game.Play {
	return utils.Filter(plays, func(p game.Play) bool { return p.Action == action })
}

// CardPlays keeps the plays which refer to a card.
func CardPlays(plays []game.Play) []game.Play {
	return utils.Filter(plays, func(p game.Play) bool { return p.Index >= 0 })
}

// PlayAgainOrEnd: another card of the same rank could follow, or the turn
// could end.
func PlayAgainOrEnd(plays []game.Play) bool {
	return (has(plays, game.Hand) || has(plays, game.FaceUp)) && has(plays, game.End)
}

func RefillOrPlayAgain(plays []game.Play) bool {
	return has(plays, game.Hand) && has(plays, game.Refill)
}

func KillOrPlayAgain(plays []game.Play) bool {
	return (has(plays, game.Hand) || has(plays, game.FaceUp)) && has(plays, game.Kill)
}

// rankOf returns the rank of the card a play refers to. Face down cards are
// unknown.
func rankOf(p *game.Player, play game.Play) (game.Rank, bool) {
	switch play.Action {
	case game.Hand:
		return p.Hand[play.Index].Rank, true
	case game.FaceUp, game.Get:
		return p.FaceUp[play.Index].Rank, true
	}
	return game.NoRank, false
}

// Cheapest returns the hand, face up or pick-up play with the lowest valued
// card. It panics if plays holds none of these.
func Cheapest(p *game.Player, plays []game.Play, values Values) game.Play {
	minValue := values.max() + 1
	cheapest := -1
	for i, play := range plays {
		rank, ok := rankOf(p, play)
		if !ok {
			continue
		}
		if v := values[rank]; v < minValue {
			minValue = v
			cheapest = i
		}
	}
	if cheapest < 0 {
		panic("no card play to pick the cheapest from")
	}
	return plays[cheapest]
}

// RankToPlay finds a hand, face up or pick-up play of the given rank.
func RankToPlay(p *game.Player, rank game.Rank, plays []game.Play) (game.Play, bool) {
	for _, play := range plays {
		if r, ok := rankOf(p, play); ok && r == rank {
			return play, true
		}
	}
	return game.Play{}, false
}

// TurnsPerHand estimates the turns needed to get rid of a hand: one per rank,
// minus one for every rank that gives a free turn (10, Q, four or more of a
// kind).
func TurnsPerHand(hand []game.Rank) int {
	count := make(map[game.Rank]int)
	for _, r := range hand {
		count[r]++
	}
	turns := len(count)
	for rank, n := range count {
		if rank == game.Ten || rank == game.Queen || n >= 4 {
			turns--
		}
	}
	return turns
}

func ranks(d game.Deck) []game.Rank {
	rs := make([]game.Rank, len(d))
	for i, c := range d {
		rs[i] = c.Rank
	}
	return rs
}

// TakeOrNot decides whether the current player should take the pile
// voluntarily. With more than 3 hand cards it is taken if that saves turns.
// With 3 cards or fewer only a pile of known or good ranks holding a 2, 3 or
// A is taken, and only if the hand can shrink to 3 before the talon is gone.
func TakeOrNot(s *game.State) bool {
	hand := ranks(s.CurrentPlayer().Hand)
	pile := ranks(s.Discard.Deck)
	if len(pile) == 0 {
		return false
	}
	taken := append(append([]game.Rank{}, hand...), pile...)

	if len(hand) > 3 {
		return TurnsPerHand(taken)+1 < TurnsPerHand(hand)
	}
	if len(s.Talon) == 0 {
		return false
	}

	allowed := map[game.Rank]bool{game.Two: true, game.Three: true, game.Queen: true, game.King: true, game.Ace: true}
	for _, r := range hand {
		allowed[r] = true
	}
	good := 0
	for _, r := range pile {
		if !allowed[r] {
			return false
		}
		if r == game.Two || r == game.Three || r == game.Ace {
			good++
		}
	}
	if good == 0 {
		return false
	}

	turns := TurnsPerHand(taken) + 1
	if turns <= 3 {
		return true
	}
	_, _, left := s.EstimateRemainingDraws(turns)
	return left <= 3
}
