package player

import (
	"github.com/rs/zerolog/log"
	"github.com/trachwo/masters-of-shithead-sub000/experiments/metrics"
	"github.com/trachwo/masters-of-shithead-sub000/game"
	"github.com/trachwo/masters-of-shithead-sub000/searcher"
)

// MCTS plays by the Take rules until the end game, then searches a sample of
// the round in which the cards it cannot know are dealt at random. The
// sample and its tree are kept across turns as long as no new card became
// known.
type MCTS struct {
	base
	search  *searcher.MonteCarlo
	policy  searcher.Policy
	sample  *game.State
	unknown int
	task    task[searchResult]
	last    *metrics.SearchMetric
}

var _ Reporter = (*MCTS)(nil)

type searchResult struct {
	play   game.Play
	metric metrics.SearchMetric
	err    error
}

func (p *MCTS) SelectPlay(plays []game.Play, s *game.State) (game.Play, bool) {
	if p.task.started() {
		res, ok := p.task.poll()
		if !ok {
			return game.Play{}, false
		}
		p.last = &res.metric
		if res.err != nil || !game.Contains(plays, res.play) {
			log.Warn().Msgf("%s: search found no legal play (%v), using the rules", p.name, res.err)
			return p.takeRules(plays, s), true
		}
		return res.play, true
	}
	if play, ok := p.opening(plays, s); ok {
		return play, true
	}
	if !endGame(s) {
		p.sample = nil
		return p.takeRules(plays, s), true
	}

	p.follow(s)
	sample := p.sample
	p.task.start(func() searchResult {
		metric := p.search.RunSearch(sample)
		play, err := p.search.BestPlay(sample, p.policy)
		return searchResult{play: play, metric: metric, err: err}
	})
	return game.Play{}, false
}

func (p *MCTS) LastSearch() (metrics.SearchMetric, bool) {
	if p.last == nil {
		return metrics.SearchMetric{}, false
	}
	m := *p.last
	p.last = nil
	return m, true
}

// follow brings the sample up to date with s. A new sample is drawn and the
// tree dropped when a card became known or the sample left the real round.
func (p *MCTS) follow(s *game.State) {
	unknown := len(s.Unknown(p.name))
	if p.sample != nil && unknown == p.unknown && p.replay(s) {
		return
	}
	p.sample = game.Resample(s, p.name, p.r)
	p.unknown = unknown
	p.search.Reset()
	log.Debug().Msgf("%s: new sample, %d unknown cards", p.name, unknown)
}

// replay applies the plays made since the last search to the sample.
func (p *MCTS) replay(s *game.State) bool {
	sample := p.sample
	if len(sample.History) > len(s.History) {
		return false
	}
	for _, play := range s.History[len(sample.History):] {
		if !game.Contains(game.LegalPlays(sample), play) {
			return false
		}
		sample = sample.Apply(play)
	}
	if !sameView(sample, s, p.name) {
		return false
	}
	p.sample = sample
	return true
}

// sameView compares what viewer can see of both states.
func sameView(a, b *game.State, viewer string) bool {
	if a.Hash() != b.Hash() || a.Player != b.Player || len(a.Players) != len(b.Players) {
		return false
	}
	if a.Discard.String() != b.Discard.String() || len(a.Killed) != len(b.Killed) {
		return false
	}
	for i := range a.Players {
		pa, pb := a.Players[i], b.Players[i]
		if pa.Name != pb.Name || len(pa.Hand) != len(pb.Hand) || len(pa.FaceDown) != len(pb.FaceDown) {
			return false
		}
		if pa.FaceUp.String() != pb.FaceUp.String() {
			return false
		}
		if pa.Name == viewer {
			if pa.Hand.String() != pb.Hand.String() {
				return false
			}
		} else if seen(pa.Hand) != seen(pb.Hand) {
			return false
		}
	}
	return true
}

func seen(d game.Deck) string {
	cards := game.Deck{}
	for _, c := range d {
		if c.Seen {
			cards.Add(c)
		}
	}
	cards.Sort()
	return cards.String()
}
