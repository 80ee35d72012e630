package game

import (
	"sort"
	"strings"

	"golang.org/x/exp/rand"
)

// Deck is an ordered pile of cards. The last element is the top card.
type Deck []Card

// NewDeck returns the 52 cards of one deck in suit-major order.
func NewDeck(id int) Deck {
	deck := make(Deck, 0, len(Suits)*len(Ranks))
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck = append(deck, NewCard(id, suit, rank))
		}
	}
	return deck
}

func (d *Deck) Add(cards ...Card) {
	*d = append(*d, cards...)
}

// Pop removes and returns the top card.
func (d *Deck) Pop() Card {
	return d.PopAt(len(*d) - 1)
}

func (d *Deck) PopAt(i int) Card {
	cards := *d
	if i < 0 || i >= len(cards) {
		panic("card index out of range")
	}
	card := cards[i]
	*d = append(cards[:i], cards[i+1:]...)
	return card
}

// Remove takes the card with the same identity out of the deck.
func (d *Deck) Remove(card Card) (Card, bool) {
	i := d.Find(card)
	if i < 0 {
		return Card{}, false
	}
	return d.PopAt(i), true
}

// Find returns the index of the first card with the same identity, or -1.
func (d Deck) Find(card Card) int {
	for i, c := range d {
		if c.Same(card) {
			return i
		}
	}
	return -1
}

// Take empties the deck and returns its cards.
func (d *Deck) Take() Deck {
	cards := *d
	*d = Deck{}
	return cards
}

func (d Deck) Shuffle(r *rand.Rand) {
	r.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

func (d Deck) Sort() {
	sort.SliceStable(d, func(i, j int) bool {
		return d[i].Less(d[j])
	})
}

func (d Deck) Top() (Card, bool) {
	if len(d) == 0 {
		return Card{}, false
	}
	return d[len(d)-1], true
}

// Ranks counts the distinct ranks in the deck.
func (d Deck) Ranks() int {
	ranks := map[Rank]struct{}{}
	for _, c := range d {
		ranks[c.Rank] = struct{}{}
	}
	return len(ranks)
}

func (d Deck) CountRank(rank Rank) int {
	n := 0
	for _, c := range d {
		if c.Rank == rank {
			n++
		}
	}
	return n
}

func (d Deck) Copy() Deck {
	if d == nil {
		return Deck{}
	}
	cards := make(Deck, len(d))
	copy(cards, d)
	return cards
}

func (d Deck) String() string {
	names := make([]string, len(d))
	for i, c := range d {
		names[i] = c.String()
	}
	return strings.Join(names, " ")
}

// Hidden renders face down cards as XX.
func (d Deck) Hidden() string {
	names := make([]string, len(d))
	for i, c := range d {
		if c.FaceUp {
			names[i] = c.String()
		} else {
			names[i] = "XX"
		}
	}
	return strings.Join(names, " ")
}
