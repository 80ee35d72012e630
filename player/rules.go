package player

import (
	"github.com/trachwo/masters-of-shithead-sub000/game"
	"github.com/trachwo/masters-of-shithead-sub000/heuristic"
)

// Random never takes, kills or ends voluntarily, always refills and plays
// any card.
type Random struct{ base }

func (p *Random) SelectPlay(plays []game.Play, s *game.State) (game.Play, bool) {
	if play, ok := p.opening(plays, s); ok {
		return play, true
	}
	for _, action := range []game.Action{game.Take, game.Kill, game.End} {
		plays = heuristic.Without(plays, action)
		if len(plays) == 1 {
			return plays[0], true
		}
	}
	if refill := heuristic.Only(plays, game.Refill); len(refill) > 0 {
		return refill[0], true
	}
	return p.any(heuristic.CardPlays(plays)), true
}

func (b *base) any(plays []game.Play) game.Play {
	if len(plays) == 0 {
		panic("left with empty list of plays")
	}
	return plays[b.r.Intn(len(plays))]
}

// Cheap plays the cheapest card, holds back good cards while the talon
// lasts and never takes voluntarily.
type Cheap struct{ base }

func (p *Cheap) SelectPlay(plays []game.Play, s *game.State) (game.Play, bool) {
	if play, ok := p.opening(plays, s); ok {
		return play, true
	}
	for _, action := range []game.Action{game.Take, game.Kill} {
		plays = heuristic.Without(plays, action)
		if len(plays) == 1 {
			return plays[0], true
		}
	}
	if refill := heuristic.Only(plays, game.Refill); len(refill) > 0 {
		return refill[0], true
	}
	if heuristic.PlayAgainOrEnd(plays) {
		if len(s.Talon) > 0 && heuristic.CheapShitValues[s.Discard.TopRank()] >= heuristic.HoldBackValue {
			return game.NewPlay(game.End), true
		}
		plays = heuristic.Without(plays, game.End)
	}
	plays = heuristic.CardPlays(plays)
	if len(plays) == 0 {
		panic("left with empty list of plays")
	}
	if plays[0].Action == game.FaceDown {
		return p.blind(plays), true
	}
	return heuristic.Cheapest(s.CurrentPlayer(), plays, heuristic.CheapShitValues), true
}

// Take plays like Cheap with sharper rules: it completes four of a kind,
// takes the pile when that pays off, saves 8s against a single opponent and
// keeps 3s on a 7, K or A.
type Take struct{ base }

func (p *Take) SelectPlay(plays []game.Play, s *game.State) (game.Play, bool) {
	if play, ok := p.opening(plays, s); ok {
		return play, true
	}
	return p.takeRules(plays, s), true
}

func (b *base) takeRules(plays []game.Play, s *game.State) game.Play {
	me := s.CurrentPlayer()
	top := s.Discard.TopRank()

	if s.NPlayed == 0 && s.Discard.NTop() == 3 {
		if play, ok := heuristic.RankToPlay(me, top, plays); ok {
			return play
		}
	}
	if game.Contains(plays, game.NewPlay(game.Take)) && heuristic.TakeOrNot(s) {
		return game.NewPlay(game.Take)
	}
	if heuristic.PlayAgainOrEnd(plays) {
		if top == game.Eight && len(s.Players) == 2 {
			return game.NewPlay(game.End)
		}
		if len(s.Talon) > 0 && heuristic.RankValues[top] >= heuristic.HoldBackValue {
			return game.NewPlay(game.End)
		}
		plays = heuristic.Without(plays, game.End)
	}
	if heuristic.RefillOrPlayAgain(plays) {
		switch top {
		case game.NoRank, game.Queen:
			return game.NewPlay(game.Refill)
		case game.Four, game.Five, game.Six, game.Seven:
			plays = heuristic.Without(plays, game.Refill)
		default:
			return game.NewPlay(game.Refill)
		}
	}
	if heuristic.KillOrPlayAgain(plays) {
		plays = heuristic.Without(plays, game.Kill)
	}

	plays = heuristic.CardPlays(plays)
	if len(plays) == 0 {
		panic("left with empty list of plays")
	}
	switch plays[0].Action {
	case game.FaceDown:
		return b.blind(plays)
	case game.Get:
		return heuristic.Cheapest(me, plays, heuristic.RankValues)
	}
	return heuristic.Cheapest(me, plays, heuristic.ForPile(s.Discard))
}
