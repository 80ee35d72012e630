package player

import (
	"github.com/rs/zerolog/log"
	"github.com/trachwo/masters-of-shithead-sub000/game"
	"github.com/trachwo/masters-of-shithead-sub000/heuristic"
	"golang.org/x/exp/rand"
)

// Simulation plays by the Take rules until the end game. From then on every
// legal play is scored by rollouts on resampled states and one of the best
// is chosen.
type Simulation struct {
	base
	simulations int
	task        task[game.Play]
}

func (p *Simulation) SelectPlay(plays []game.Play, s *game.State) (game.Play, bool) {
	if p.task.started() {
		return p.task.poll()
	}
	if play, ok := p.opening(plays, s); ok {
		return play, true
	}
	if !endGame(s) {
		return p.takeRules(plays, s), true
	}

	state := s.Copy()
	choices := append([]game.Play(nil), plays...)
	r := rand.New(rand.NewSource(p.r.Uint64()))
	p.task.start(func() game.Play {
		return simulate(state, choices, p.simulations, r)
	})
	return game.Play{}, false
}

// simulate adds up the rollout scores of every play over n resampled states
// and picks at random among the plays with the best total. Aborted rollouts
// count as lost.
func simulate(s *game.State, plays []game.Play, n int, r *rand.Rand) game.Play {
	scores := make([]int, len(plays))
	for i := 0; i < n; i++ {
		sample := game.Resample(s, "", r)
		for j, play := range plays {
			scores[j] += max(heuristic.Score(sample, play, r), 0)
		}
	}

	best := scores[0]
	for _, score := range scores {
		best = max(best, score)
	}
	var candidates []game.Play
	for j, score := range scores {
		if score == best {
			candidates = append(candidates, plays[j])
		}
	}
	log.Debug().Msgf("simulated %v: scores %v", plays, scores)
	return candidates[r.Intn(len(candidates))]
}
