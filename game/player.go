package game

import (
	"fmt"
	"strings"
)

// Player holds the cards of one participant. The play selection lives in
// the player package.
type Player struct {
	Name      string `json:"name"`
	TurnCount int    `json:"turn_count"`
	FaceDown  Deck   `json:"face_down"`
	FaceUp    Deck   `json:"face_up"`
	Hand      Deck   `json:"hand"`
	// Set after taking the pile while playing from face up cards: the
	// player must pick one or more face up cards of a single rank.
	GetFup     bool `json:"get_fup"`
	GetFupRank Rank `json:"get_fup_rank"`
	IsHuman    bool `json:"is_human"`
}

func NewPlayer(name string) Player {
	return Player{Name: name, FaceDown: Deck{}, FaceUp: Deck{}, Hand: Deck{}}
}

// deal puts the dealt card where the deal order says: 3 face down, 3 face up,
// 3 hand cards.
func (p *Player) deal(card Card) {
	switch {
	case len(p.FaceDown) < 3:
		p.FaceDown.Add(card)
	case len(p.FaceUp) < 3:
		card.TurnUp()
		p.FaceUp.Add(card)
	case len(p.Hand) < 3:
		p.Hand.Add(card)
		p.Hand.Sort()
	default:
		panic("only 9 cards are dealt to a player")
	}
}

// Source returns the action to play the next card with and its cards.
func (p *Player) Source() (Action, Deck) {
	switch {
	case len(p.Hand) > 0:
		return Hand, p.Hand
	case len(p.FaceUp) > 0:
		return FaceUp, p.FaceUp
	case len(p.FaceDown) > 0:
		return FaceDown, p.FaceDown
	default:
		return Out, nil
	}
}

func (p *Player) cards(source Action) *Deck {
	switch source {
	case Hand:
		return &p.Hand
	case FaceUp:
		return &p.FaceUp
	case FaceDown:
		return &p.FaceDown
	}
	panic(fmt.Sprintf("unexpected card source %s", source))
}

func (p *Player) takeToHand(cards ...Card) {
	p.Hand.Add(cards...)
	p.Hand.Sort()
}

func (p *Player) IsOut() bool {
	return len(p.Hand) == 0 && len(p.FaceUp) == 0 && len(p.FaceDown) == 0
}

func (p Player) Copy() Player {
	p.FaceDown = p.FaceDown.Copy()
	p.FaceUp = p.FaceUp.Copy()
	p.Hand = p.Hand.Copy()
	return p
}

// Visibility selects how much of a player's cards String reveals.
type Visibility int

const (
	HideAll Visibility = iota
	RevealSeen
	RevealHand
	RevealAll
)

func (p Player) Format(v Visibility) string {
	var fdown string
	if v == RevealAll {
		fdown = p.FaceDown.String()
	} else {
		slots := make([]string, len(p.FaceDown))
		for i := range slots {
			slots[i] = fmt.Sprintf("X%dX", i)
		}
		fdown = strings.Join(slots, " ")
	}

	var hand string
	switch v {
	case RevealAll, RevealHand:
		hand = p.Hand.String()
	case RevealSeen:
		var seen Deck
		for _, c := range p.Hand {
			if c.Seen {
				seen = append(seen, c)
			}
		}
		hand = strings.Repeat("XX ", len(p.Hand)-len(seen)) + seen.String()
	default:
		hand = strings.Repeat("XX ", len(p.Hand))
	}
	return fmt.Sprintf("%-12s FDOWN: %-12s FUP: %-12s HAND: %s", p.Name, fdown, p.FaceUp.String(), hand)
}
