package game

import (
	"encoding/json"
	"strings"
)

// acceptTable lists, for every reference rank at the top of the pile, the
// ranks which may be played on it as first card of a turn. 3s are
// transparent, so the reference is the first non-3 card from the top.
// A 10 kills the pile and never becomes a reference.
var acceptTable = map[Rank][]Rank{
	Two:   {Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace},
	Three: {Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace},
	Four:  {Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace},
	Five:  {Two, Three, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace},
	Six:   {Two, Three, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace},
	Seven: {Two, Three, Four, Five, Six, Seven},
	Eight: {Two, Three, Eight, Nine, Ten, Jack, Queen, King, Ace},
	Nine:  {Two, Three, Nine, Ten, Jack, Queen, King, Ace},
	Ten:   {},
	Jack:  {Two, Three, Ten, Jack, Queen, King, Ace},
	Queen: {Two, Three, Ten, Queen, King, Ace},
	King:  {Two, Three, Ten, King, Ace},
	Ace:   {Two, Three, Ten, Ace},
}

// Accepts reports whether rank may open a turn on the reference rank.
func Accepts(ref, rank Rank) bool {
	if ref == NoRank {
		return true
	}
	for _, r := range acceptTable[ref] {
		if r == rank {
			return true
		}
	}
	return false
}

// Discard is the pile players play their cards on.
type Discard struct {
	Deck
}

func (d Discard) TopRank() Rank {
	if top, ok := d.Top(); ok {
		return top.Rank
	}
	return NoRank
}

// TopNon3Rank skips the trailing run of 3s. NoRank means the pile is empty or
// holds only 3s.
func (d Discard) TopNon3Rank() Rank {
	for i := len(d.Deck) - 1; i >= 0; i-- {
		if d.Deck[i].Rank != Three {
			return d.Deck[i].Rank
		}
	}
	return NoRank
}

// NTop counts the cards with the top card's rank at the top of the pile.
func (d Discard) NTop() int {
	top := d.TopRank()
	n := 0
	for i := len(d.Deck) - 1; i >= 0 && d.Deck[i].Rank == top; i-- {
		n++
	}
	return n
}

// NTopVisible is NTop plus the first non-3 card lying under a run of 3s.
func (d Discard) NTopVisible() int {
	n := d.NTop()
	if d.TopRank() == Three && d.TopNon3Rank() != NoRank {
		n++
	}
	return n
}

// Check reports whether card may be played on the pile. After the first card
// of a turn only the same rank may follow, or anything on fewer than four Qs.
func (d Discard) Check(first bool, card Card) bool {
	if len(d.Deck) == 0 {
		return true
	}
	if first {
		return Accepts(d.TopNon3Rank(), card.Rank)
	}
	top := d.TopRank()
	if top == Queen && d.NTop() < 4 {
		return true
	}
	return card.Rank == top
}

func (d Discard) Copy() Discard {
	return Discard{Deck: d.Deck.Copy()}
}

// TopString renders the visible top of the pile.
func (d Discard) TopString() string {
	n := d.NTopVisible()
	parts := make([]string, 0, n)
	for _, c := range d.Deck[len(d.Deck)-n:] {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " ")
}

func (d Discard) MarshalJSON() ([]byte, error) {
	if d.Deck == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Card(d.Deck))
}

func (d *Discard) UnmarshalJSON(data []byte) error {
	var cards []Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return err
	}
	d.Deck = Deck(cards)
	return nil
}
