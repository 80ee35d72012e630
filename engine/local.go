package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/trachwo/masters-of-shithead-sub000/experiments/metrics"
	"github.com/trachwo/masters-of-shithead-sub000/game"
	"github.com/trachwo/masters-of-shithead-sub000/gamemaster"
	"github.com/trachwo/masters-of-shithead-sub000/meta"
	"github.com/trachwo/masters-of-shithead-sub000/player"
)

// Seat is a named player and the strategy playing for it.
type Seat struct {
	Name     string
	Strategy player.Strategy
	Human    bool
}

// NewState seats the players of a round. A negative dealer is drawn at
// random.
func NewState(seats []Seat, dealer int, seed uint64) *game.State {
	players := make([]game.Player, len(seats))
	for i, seat := range seats {
		players[i] = game.NewPlayer(seat.Name)
		players[i].IsHuman = seat.Human
	}
	return game.NewState(players, dealer, seed)
}

type Option func(r *Round)

// WithObservers receives the results of the round once it is finished.
// Aborted rounds are not reported.
func WithObservers(observers ...game.Observer) Option {
	return func(r *Round) {
		r.observers = append(r.observers, observers...)
	}
}

// WithTick sets the pause between two polls of a pending strategy.
func WithTick(tick time.Duration) Option {
	return func(r *Round) {
		if tick > 0 {
			r.tick = tick
		}
	}
}

// WithStopWhen ends the round early, unscored, once stop holds for the
// current state.
func WithStopWhen(stop func(*game.State) bool) Option {
	return func(r *Round) {
		r.stop = stop
	}
}

// WithMaxTurns aborts the round once it lasted more than turns turns. The
// default is players × meta.MaxTurnsPerPlayer.
func WithMaxTurns(turns int) Option {
	return func(r *Round) {
		r.maxTurns = turns
	}
}

func WithViewer(v Viewer) Option {
	return func(r *Round) {
		r.viewer = v
	}
}

// Round plays one round on a game master table.
type Round struct {
	strategies map[string]player.Strategy
	table      *gamemaster.Table
	recorder   *recorder
	observers  []game.Observer
	viewer     Viewer
	stop       func(*game.State) bool
	maxTurns   int
	tick       time.Duration
}

var _ Engine = (*Round)(nil)

// NewRound plays state with the given seats. The state may be dealt
// already, as the states loaded from end game files are.
func NewRound(seats []Seat, state *game.State, options ...Option) *Round {
	if len(seats) < 2 {
		panic("need at least two players")
	}
	r := &Round{
		strategies: make(map[string]player.Strategy, len(seats)),
		recorder:   &recorder{},
		tick:       time.Millisecond,
	}
	for _, seat := range seats {
		r.strategies[seat.Name] = seat.Strategy
	}
	for _, name := range state.Names() {
		if _, ok := r.strategies[name]; !ok {
			panic(fmt.Sprintf("no strategy for player %s", name))
		}
	}
	for _, option := range options {
		option(r)
	}
	r.table = gamemaster.NewTable(state, r.recorder)
	return r
}

func (r *Round) must(play game.Play) {
	if err := r.table.Play(play); err != nil {
		panic(fmt.Sprintf("%s: %v", r.table.State().CurrentPlayer().Name, err))
	}
}

// Run deals if needed, playing only the dealer actions still missing, then
// polls the strategy of the current player until
// the round is over. A round which exceeds its turn cap is aborted.
func (r *Round) Run() (Outcome, metrics.GameMetric, []metrics.MoveMetric) {
	getUpdate := r.table.Updates()
	state := r.table.State()
	gameMetric := metrics.GameMetric{
		Round:     uuid.NewString(),
		Players:   state.Names(),
		StartTime: time.Now(),
	}
	maxTurns := r.maxTurns
	if maxTurns <= 0 {
		maxTurns = len(state.Players) * meta.MaxTurnsPerPlayer
	}
	if state.Phase == game.PlayGame {
		// a loaded end game keeps the turns it was saved with
		maxTurns += state.TurnCount
	}

	if !played(state, game.Deal) {
		for _, a := range []game.Action{game.Shuffle, game.Burn, game.Deal} {
			if !played(r.table.State(), a) {
				r.must(game.NewPlay(a))
			}
		}
	}
	r.show(getUpdate)

	var moveMetrics []metrics.MoveMetric
	stopped := false
	for !r.table.State().IsOver() {
		s := r.table.State()
		if s.Phase == game.PlayGame && gameMetric.Starter == "" {
			gameMetric.Starter = s.CurrentPlayer().Name
		}
		if r.stop != nil && r.stop(s) {
			stopped = true
			break
		}
		if s.TurnCount > maxTurns {
			log.Info().Msgf("aborting round after %d turns", s.TurnCount)
			r.must(game.NewPlay(game.Abort))
			break
		}

		name := s.CurrentPlayer().Name
		strategy := r.strategies[name]
		play, ok := strategy.SelectPlay(game.LegalPlays(s), s)
		if !ok {
			time.Sleep(r.tick)
			continue
		}
		r.must(play)
		gameMetric.TotalPlays++
		log.Debug().Msgf("%s: %s", name, play)

		if reporter, ok := strategy.(player.Reporter); ok {
			if m, ok := reporter.LastSearch(); ok {
				moveMetrics = append(moveMetrics, metrics.MoveMetric{Step: gameMetric.TotalPlays, Player: name, SearchMetric: m})
			}
		}
		r.show(getUpdate)
	}

	final := r.table.State()
	outcome := Outcome{Result: final.Result, State: final, Stopped: stopped}
	if stopped {
		log.Debug().Msgf("round stopped after %d turns", final.TurnCount)
	} else if loser, ok := final.Loser(); ok && final.Phase == game.ShitheadFound {
		outcome.Loser = loser
		r.recorder.commit(final, r.observers)
		log.Debug().Msgf("%s is the shithead", loser)
	} else {
		outcome.Aborted = true
	}

	gameMetric.Loser = outcome.Loser
	gameMetric.Aborted = outcome.Aborted
	gameMetric.TotalTurns = final.TurnCount
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	return outcome, gameMetric, moveMetrics
}

func (r *Round) show(getUpdate gamemaster.UpdateGetter) {
	for {
		play, s := getUpdate()
		if s == nil {
			return
		}
		if r.viewer != nil {
			r.viewer.Show(play, s)
		}
	}
}

func played(s *game.State, action game.Action) bool {
	for _, p := range s.History {
		if p.Action == action {
			return true
		}
	}
	return false
}

// Session plays consecutive rounds between the same seats. The shithead of
// a round deals the next one.
type Session struct {
	seats   []Seat
	options []Option
	dealer  int
	seed    uint64
}

// NewSession starts with a random dealer. Round i is shuffled with seed+i.
func NewSession(seats []Seat, seed uint64, options ...Option) *Session {
	return &Session{seats: seats, options: options, dealer: -1, seed: seed}
}

func (s *Session) Next() (Outcome, metrics.GameMetric, []metrics.MoveMetric) {
	state := NewState(s.seats, s.dealer, s.seed)
	s.seed++
	outcome, gameMetric, moveMetrics := NewRound(s.seats, state, s.options...).Run()
	if !outcome.Aborted {
		for i, seat := range s.seats {
			if seat.Name == outcome.Loser {
				s.dealer = i
			}
		}
	}
	return outcome, gameMetric, moveMetrics
}

// Dealer is the seat index of the next dealer, -1 if it is drawn at random.
func (s *Session) Dealer() int {
	return s.dealer
}
