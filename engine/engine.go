// Package engine drives rounds of Shithead between strategies.
package engine

import (
	"github.com/trachwo/masters-of-shithead-sub000/experiments/metrics"
	"github.com/trachwo/masters-of-shithead-sub000/game"
)

type Engine interface {
	// Run plays a round until a shithead is found or the round is aborted
	Run() (outcome Outcome, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// Outcome is the end of a round.
type Outcome struct {
	Loser   string // empty unless a shithead was found
	Aborted bool
	Stopped bool // ended early by WithStopWhen
	Result  map[string]game.Result
	State   *game.State
}

// Viewer is shown every applied play.
type Viewer interface {
	Show(play game.Play, s *game.State)
}

// recorder buffers the observer events of a round so that they can be
// committed once the round is finished.
type recorder struct {
	events []func(game.Observer)
}

func (r *recorder) PlayerOut(name string, score, turns int) {
	r.events = append(r.events, func(o game.Observer) { o.PlayerOut(name, score, turns) })
}

func (r *recorder) FaceUpStored(name string, cards game.Deck) {
	r.events = append(r.events, func(o game.Observer) { o.FaceUpStored(name, cards) })
}

// commit replays the events to every observer and adds the shithead with
// score 0.
func (r *recorder) commit(s *game.State, observers []game.Observer) {
	loser, ok := s.Loser()
	for _, o := range observers {
		for _, e := range r.events {
			e(o)
		}
		if ok {
			o.PlayerOut(loser, 0, s.Result[loser].Turns)
		}
	}
	r.events = nil
}
