package game

import (
	"encoding/json"
	"fmt"
)

type Suit int8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

var Suits = [...]Suit{Clubs, Diamonds, Hearts, Spades}

var suitNames = [...]string{"Clubs", "Diamonds", "Hearts", "Spades"}
var suitSymbols = [...]string{"♣", "♢", "♡", "♠"}

func (s Suit) String() string {
	return suitNames[s]
}

func (s Suit) Symbol() string {
	return suitSymbols[s]
}

func (s Suit) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Suit) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range suitNames {
		if n == name {
			*s = Suit(i)
			return nil
		}
	}
	return fmt.Errorf("unknown suit %q", name)
}

// Rank orders cards from Two (lowest) to Ace. NoRank is used where a pile
// has no top card.
type Rank int8

const (
	NoRank Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var Ranks = [...]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

var rankNames = [...]string{"", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

func (r Rank) String() string {
	return rankNames[r]
}

func ParseRank(name string) (Rank, error) {
	for i, n := range rankNames[1:] {
		if n == name {
			return Rank(i + 1), nil
		}
	}
	return NoRank, fmt.Errorf("unknown rank %q", name)
}

func (r Rank) MarshalJSON() ([]byte, error) {
	if r == NoRank {
		return []byte("null"), nil
	}
	return json.Marshal(r.String())
}

func (r *Rank) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = NoRank
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	rank, err := ParseRank(name)
	if err != nil {
		return err
	}
	*r = rank
	return nil
}

// Card is identified by (Deck, Suit, Rank). Seen is sticky: once a card has
// been face up it stays known for the rest of the round.
type Card struct {
	Deck   int  `json:"id"`
	Suit   Suit `json:"suit"`
	Rank   Rank `json:"rank"`
	Seen   bool `json:"seen"`
	Shown  bool `json:"shown"`
	FaceUp bool `json:"is_face_up"`
}

func NewCard(deck int, suit Suit, rank Rank) Card {
	return Card{Deck: deck, Suit: suit, Rank: rank}
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// Less orders by rank, then suit.
func (c Card) Less(other Card) bool {
	if c.Rank == other.Rank {
		return c.Suit < other.Suit
	}
	return c.Rank < other.Rank
}

// Same reports whether both values denote the same physical card.
func (c Card) Same(other Card) bool {
	return c.Deck == other.Deck && c.Suit == other.Suit && c.Rank == other.Rank
}

func (c *Card) TurnUp() {
	c.FaceUp = true
	c.Seen = true
}

func (c *Card) TurnDown() {
	c.FaceUp = false
}
