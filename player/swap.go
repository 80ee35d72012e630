package player

import (
	"github.com/trachwo/masters-of-shithead-sub000/fuptable"
	"github.com/trachwo/masters-of-shithead-sub000/game"
	"github.com/trachwo/masters-of-shithead-sub000/heuristic"
)

// swapper takes all face up cards to the hand, puts back the best three
// according to the face up table and ends the swap.
type swapper struct {
	table *fuptable.Table
	best  game.Deck
}

func (w *swapper) selectSwap(plays []game.Play, p *game.Player) game.Play {
	if w.table == nil {
		return game.NewPlay(game.End)
	}
	if w.best == nil {
		if gets := heuristic.Only(plays, game.Get); len(gets) > 0 && len(p.FaceUp) > 0 {
			return gets[0]
		}
		w.best = w.table.FindBest(p.Hand)
	}
	if len(p.FaceUp) < len(w.best) {
		if i := p.Hand.Find(w.best[len(p.FaceUp)]); i >= 0 {
			return game.CardPlay(game.Put, i)
		}
		panic("best face up card is not on the hand")
	}
	w.best = nil
	return game.NewPlay(game.End)
}
