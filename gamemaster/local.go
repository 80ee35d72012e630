// Package gamemaster owns the live state of a round and accepts only legal
// plays.
package gamemaster

import (
	"fmt"

	"github.com/trachwo/masters-of-shithead-sub000/game"
)

// UpdateGetter returns the next unread play and the state it led to. It
// never blocks: a nil state means there is no update yet, or the round is
// over and every update has been read.
type UpdateGetter func() (game.Play, *game.State)

type update struct {
	play  game.Play
	state *game.State
}

// updateBuffer bounds the unread updates. Once it is full the oldest update
// is dropped.
const updateBuffer = 64

// Table applies plays to the state of one round. It is driven from a single
// goroutine; the update getter may be read from another.
type Table struct {
	state     *game.State
	observers []game.Observer
	updateCh  chan update
	gameOver  bool
}

func NewTable(state *game.State, observers ...game.Observer) *Table {
	return &Table{
		state:     state,
		observers: observers,
		updateCh:  make(chan update, updateBuffer),
		gameOver:  state.IsOver(),
	}
}

func (t *Table) State() *game.State {
	return t.state
}

func (t *Table) Updates() UpdateGetter {
	return func() (game.Play, *game.State) {
		select {
		case u, ok := <-t.updateCh:
			if !ok { // Game over
				return game.Play{}, nil
			}
			return u.play, u.state
		default:
			return game.Play{}, nil
		}
	}
}

// Play applies play if it is legal for the current player. QUIT and ABORT
// are accepted at any time, SHUFFLE, BURN, DEAL and DEALER only until the
// cards are dealt.
func (t *Table) Play(play game.Play) error {
	if t.gameOver {
		return fmt.Errorf("game is over - no plays allowed")
	}
	if !t.legal(play) {
		return fmt.Errorf("illegal play %s", play)
	}

	t.state = t.state.Apply(play, t.observers...)
	t.publish(update{play: play, state: t.state})
	if t.state.IsOver() {
		t.gameOver = true
		close(t.updateCh)
	}
	return nil
}

func (t *Table) legal(play game.Play) bool {
	switch play.Action {
	case game.Quit, game.Abort:
		return true
	case game.Shuffle, game.Burn, game.Deal, game.Dealer:
		if t.dealt() {
			return false
		}
		if play.Action == game.Dealer {
			return play.Index >= 0 && play.Index < len(t.state.Players)
		}
		return true
	}
	return game.Contains(game.LegalPlays(t.state), play)
}

func (t *Table) dealt() bool {
	for _, p := range t.state.History {
		if p.Action == game.Deal {
			return true
		}
	}
	return false
}

func (t *Table) publish(u update) {
	select {
	case t.updateCh <- u:
	default:
		<-t.updateCh
		t.updateCh <- u
	}
}
