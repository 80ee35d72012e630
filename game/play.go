package game

import (
	"fmt"
	"strconv"
	"strings"
)

type Action int8

const (
	Shuffle Action = iota // shuffle the talon
	Burn                  // remove surplus cards from the talon
	Deal                  // deal table and hand cards
	Get                   // face up card to hand
	Put                   // hand card to face up cards
	Show                  // show the requested starting card
	Hand                  // play a hand card
	FaceUp                // play a face up card
	FaceDown              // play a face down card blindly
	Out                   // no cards left
	Take                  // take the discard pile
	Kill                  // kill 4 or more cards of the same rank
	Refill                // draw up to 3 hand cards
	End                   // end the turn
	Quit                  // human ends the round
	Abort                 // turn cap reached
	Dealer                // reassign the dealer
)

var actionNames = [...]string{
	"SHUFFLE", "BURN", "DEAL", "GET", "PUT", "SHOW", "HAND", "FUP", "FDOWN",
	"OUT", "TAKE", "KILL", "REFILL", "END", "QUIT", "ABORT", "DEALER",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", a)
	}
	return actionNames[a]
}

func ParseAction(name string) (Action, error) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// IsCardPlay reports whether the action moves a card onto the discard pile.
func (a Action) IsCardPlay() bool {
	return a == Hand || a == FaceUp || a == FaceDown
}

// HasCard reports whether Index refers to a card.
func (a Action) HasCard() bool {
	switch a {
	case Get, Put, Show, Hand, FaceUp, FaceDown:
		return true
	}
	return false
}

// Play is comparable and used as a map key. Index is -1 for actions without a
// card, except DEALER where it names the new dealer.
type Play struct {
	Action Action
	Index  int
}

func NewPlay(action Action) Play {
	return Play{Action: action, Index: -1}
}

func CardPlay(action Action, index int) Play {
	return Play{Action: action, Index: index}
}

func (p Play) String() string {
	return p.Action.String() + ":" + strconv.Itoa(p.Index)
}

func ParsePlay(text string) (Play, error) {
	name, index, ok := strings.Cut(text, ":")
	if !ok {
		return Play{}, fmt.Errorf("malformed play %q", text)
	}
	action, err := ParseAction(name)
	if err != nil {
		return Play{}, err
	}
	i, err := strconv.Atoi(index)
	if err != nil {
		return Play{}, fmt.Errorf("malformed play index %q: %w", text, err)
	}
	return Play{Action: action, Index: i}, nil
}

func (p Play) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Play) UnmarshalText(text []byte) error {
	play, err := ParsePlay(string(text))
	if err != nil {
		return err
	}
	*p = play
	return nil
}

// Contains reports whether play is one of plays.
func Contains(plays []Play, play Play) bool {
	for _, p := range plays {
		if p == play {
			return true
		}
	}
	return false
}
