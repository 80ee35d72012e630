package heuristic

import (
	"github.com/trachwo/masters-of-shithead-sub000/game"
	"github.com/trachwo/masters-of-shithead-sub000/meta"
	"golang.org/x/exp/rand"
)

// SimulatedPlay is the fast policy every player follows during rollouts. It
// never swaps, always shows the requested card, never takes the pile
// voluntarily, holds back good cards while the talon lasts and plays the
// cheapest fitting card. Face down cards are picked at random.
func SimulatedPlay(plays []game.Play, s *game.State, r *rand.Rand) game.Play {
	if len(plays) == 0 {
		panic("no plays to select from")
	}
	if len(plays) == 1 {
		return plays[0]
	}
	switch s.Phase {
	case game.SwappingCards:
		return game.NewPlay(game.End)
	case game.FindStarter:
		return plays[0]
	}

	plays = Without(plays, game.Take)
	if len(plays) == 1 {
		return plays[0]
	}

	top := s.Discard.TopRank()
	if PlayAgainOrEnd(plays) {
		if top == game.Eight && len(s.Players) == 2 {
			return game.NewPlay(game.End)
		}
		if len(s.Talon) > 0 && RankValues[top] >= HoldBackValue {
			return game.NewPlay(game.End)
		}
		plays = Without(plays, game.End)
	}

	if RefillOrPlayAgain(plays) {
		switch top {
		case game.Four, game.Five, game.Six, game.Seven:
			// Bad cards go before refilling.
			plays = Without(plays, game.Refill)
		default:
			return game.NewPlay(game.Refill)
		}
	}

	if KillOrPlayAgain(plays) {
		plays = Without(plays, game.Kill)
	}

	plays = CardPlays(plays)
	if len(plays) == 0 {
		panic("no card play left to select")
	}
	if blind := Only(plays, game.FaceDown); len(blind) > 0 {
		return blind[r.Intn(len(blind))]
	}
	return Cheapest(s.CurrentPlayer(), plays, ForPile(s.Discard))
}

// Rollout plays s to the end with SimulatedPlay. It returns the loser, or
// false if the round is aborted or still running after cutoff more turns.
func Rollout(s *game.State, cutoff int, r *rand.Rand) (string, bool) {
	start := s.TurnCount
	for !s.IsOver() {
		if s.TurnCount-start > cutoff {
			return "", false
		}
		s = s.Apply(SimulatedPlay(game.LegalPlays(s), s, r))
	}
	return s.Loser()
}

// Score opens with play for the current player of s and rolls out the rest
// of the round. It returns the number of opponents left when the player goes
// out, 0 for the shithead and -1 for an aborted rollout.
func Score(s *game.State, play game.Play, r *rand.Rand) int {
	name := s.CurrentPlayer().Name
	cutoff := len(s.Players) * meta.MaxTurnsPerPlayer
	start := s.TurnCount
	s = s.Apply(play)
	for !s.IsOver() {
		if s.TurnCount-start > cutoff {
			return -1
		}
		s = s.Apply(SimulatedPlay(game.LegalPlays(s), s, r))
	}
	return s.Result[name].Score
}
