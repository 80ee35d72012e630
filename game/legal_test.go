package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// playState seats the given players in a running game with an empty talon
// and an empty pile, the first player to move.
func playState(players ...Player) *State {
	s := &State{
		Players:        players,
		NDecks:         1,
		Talon:          Deck{},
		Discard:        Discard{Deck: Deck{}},
		Burnt:          Deck{},
		Killed:         Deck{},
		Direction:      true,
		NextDirection:  true,
		NextPlayer:     1 % len(players),
		Phase:          PlayGame,
		AuctionMembers: []int{},
		Shown:          []int{},
		Result:         map[string]Result{},
		History:        []Play{},
		hash:           emptyHash,
	}
	for _, p := range players {
		s.Result[p.Name] = Result{}
	}
	return s
}

func withCards(name string, hand, faceUp, faceDown Deck) Player {
	p := NewPlayer(name)
	p.Hand = hand
	p.Hand.Sort()
	p.FaceUp = faceUp
	for i := range p.FaceUp {
		p.FaceUp[i].TurnUp()
	}
	p.FaceDown = faceDown
	return p
}

func TestLegalPlaysFirstCard(t *testing.T) {
	t.Run("on a five the four is rejected", func(t *testing.T) {
		s := playState(
			withCards("a", Deck{card(Four, Diamonds), card(Five, Spades), card(Ten, Hearts)}, nil, nil),
			withCards("b", Deck{card(Two, Clubs)}, nil, nil),
		)
		s.Discard = pile(Five)

		plays := LegalPlays(s)

		require.NotContains(t, plays, CardPlay(Hand, 0), "4♦ does not fit a 5")
		require.Contains(t, plays, CardPlay(Hand, 1), "5♠ fits a 5")
		require.Contains(t, plays, CardPlay(Hand, 2), "10♥ fits a 5")
		require.Contains(t, plays, NewPlay(Take))
		require.NotContains(t, plays, NewPlay(End), "the first card of a turn cannot be skipped")
	})

	t.Run("on a four every card fits", func(t *testing.T) {
		s := playState(
			withCards("a", Deck{card(Four, Diamonds), card(Five, Spades), card(Ten, Hearts)}, nil, nil),
			withCards("b", Deck{card(Two, Clubs)}, nil, nil),
		)
		s.Discard = Discard{Deck: Deck{card(Four, Clubs)}}

		plays := LegalPlays(s)

		require.Equal(t, []Play{CardPlay(Hand, 0), CardPlay(Hand, 1), CardPlay(Hand, 2), NewPlay(Take)}, plays)
	})

	t.Run("empty pile offers no take", func(t *testing.T) {
		s := playState(
			withCards("a", Deck{card(Nine, Diamonds)}, nil, nil),
			withCards("b", Deck{card(Two, Clubs)}, nil, nil),
		)

		require.Equal(t, []Play{CardPlay(Hand, 0)}, LegalPlays(s))
	})

	t.Run("face down cards are played blindly", func(t *testing.T) {
		s := playState(
			withCards("a", nil, nil, Deck{card(Four, Diamonds), card(Ace, Spades)}),
			withCards("b", Deck{card(Two, Clubs)}, nil, nil),
		)
		s.Discard = pile(King)

		plays := LegalPlays(s)

		require.Equal(t, []Play{CardPlay(FaceDown, 0), CardPlay(FaceDown, 1), NewPlay(Take)}, plays)
	})

	t.Run("no cards left means out", func(t *testing.T) {
		s := playState(
			withCards("a", nil, nil, nil),
			withCards("b", Deck{card(Two, Clubs)}, nil, nil),
		)
		s.Discard = pile(King)

		require.Equal(t, []Play{NewPlay(Out)}, LegalPlays(s))
	})
}

func TestLegalPlaysFollowUp(t *testing.T) {
	t.Run("a queen forces any card and no kill", func(t *testing.T) {
		s := playState(
			withCards("a", Deck{card(Four, Diamonds), card(Nine, Clubs)}, nil, nil),
			withCards("b", Deck{card(Two, Clubs)}, nil, nil),
		)
		s.Discard = pile(Queen)
		s.NPlayed = 1

		plays := LegalPlays(s)

		require.Equal(t, []Play{CardPlay(Hand, 0), CardPlay(Hand, 1)}, plays)
		require.NotContains(t, plays, NewPlay(Kill))
		require.NotContains(t, plays, NewPlay(End), "a queen must be covered")
	})

	t.Run("four of a kind offers kill and the fifth card", func(t *testing.T) {
		s := playState(
			withCards("a", Deck{NewCard(1, Clubs, Five), card(Nine, Diamonds)}, nil, nil),
			withCards("b", Deck{card(Two, Clubs)}, nil, nil),
		)
		s.Discard = pile(Five, Five, Five, Five)
		s.NPlayed = 4

		plays := LegalPlays(s)

		require.Contains(t, plays, NewPlay(Kill))
		require.Contains(t, plays, CardPlay(Hand, 0))
		require.NotContains(t, plays, CardPlay(Hand, 1))
	})

	t.Run("kill is never offered below four of a kind", func(t *testing.T) {
		s := playState(
			withCards("a", Deck{NewCard(1, Hearts, Five), card(Nine, Diamonds), card(Ace, Spades)}, nil, nil),
			withCards("b", Deck{card(Two, Clubs)}, nil, nil),
		)
		s.Discard = pile(Five, Five, Five)
		s.NPlayed = 2

		plays := LegalPlays(s)

		require.NotContains(t, plays, NewPlay(Kill))
		require.Equal(t, []Play{CardPlay(Hand, 0), NewPlay(End)}, plays)
	})

	t.Run("refill comes before further cards", func(t *testing.T) {
		s := playState(
			withCards("a", Deck{card(Nine, Hearts)}, nil, nil),
			withCards("b", Deck{card(Two, Clubs)}, nil, nil),
		)
		s.Talon = Deck{card(Jack, Clubs)}
		s.Discard = pile(Nine)
		s.NPlayed = 1

		require.Equal(t, []Play{NewPlay(Refill)}, LegalPlays(s))
	})

	t.Run("blind follow up only on an empty pile", func(t *testing.T) {
		s := playState(
			withCards("a", nil, nil, Deck{card(Four, Diamonds), card(Ace, Spades)}),
			withCards("b", Deck{card(Two, Clubs)}, nil, nil),
		)
		s.NPlayed = 1

		require.Equal(t, []Play{CardPlay(FaceDown, 0), CardPlay(FaceDown, 1)}, LegalPlays(s))

		s.Discard = pile(Seven)
		require.Equal(t, []Play{NewPlay(End)}, LegalPlays(s))
	})
}

func TestLegalPlaysPickFaceUp(t *testing.T) {
	s := playState(
		withCards("a", nil, Deck{card(Six, Clubs), card(Jack, Hearts), card(Six, Spades)}, Deck{card(Two, Clubs)}),
		withCards("b", Deck{card(Two, Hearts)}, nil, nil),
	)
	s.Discard = pile(Ace)

	s = s.Apply(NewPlay(Take))
	require.Equal(t, 0, s.Player, "taking the pile from face up cards does not end the turn")
	require.True(t, s.Players[0].GetFup)
	require.Equal(t, []Play{CardPlay(Get, 0), CardPlay(Get, 1), CardPlay(Get, 2)}, LegalPlays(s))

	s = s.Apply(CardPlay(Get, 0))
	require.Equal(t, Six, s.Players[0].GetFupRank)
	require.Equal(t, []Play{CardPlay(Get, 1), NewPlay(End)}, LegalPlays(s), "only the other 6 may follow")

	s = s.Apply(NewPlay(End))
	require.Equal(t, 1, s.Player)
	require.False(t, s.Players[0].GetFup)
	require.Len(t, s.Players[0].Hand, 2)
}

func TestLegalSwapsAndBids(t *testing.T) {
	t.Run("swap", func(t *testing.T) {
		s := playState(
			withCards("a", Deck{card(Four, Diamonds), card(Five, Spades), card(Ten, Hearts)},
				Deck{card(Two, Clubs), card(Six, Clubs), card(King, Clubs)}, nil),
			withCards("b", Deck{card(Two, Hearts)}, nil, nil),
		)
		s.Phase = SwappingCards

		require.Equal(t, []Play{CardPlay(Get, 0), CardPlay(Get, 1), CardPlay(Get, 2), NewPlay(End)}, LegalPlays(s))

		s = s.Apply(CardPlay(Get, 1))
		require.Equal(t, []Play{
			CardPlay(Get, 0), CardPlay(Get, 1),
			CardPlay(Put, 0), CardPlay(Put, 1), CardPlay(Put, 2), CardPlay(Put, 3),
		}, LegalPlays(s), "end needs exactly 3 face up cards")
	})

	t.Run("bid", func(t *testing.T) {
		s := playState(
			withCards("a", Deck{card(Four, Clubs), card(Four, Spades), card(Ten, Hearts)}, nil, nil),
			withCards("b", Deck{card(Two, Hearts)}, nil, nil),
		)
		s.Phase = FindStarter

		require.Equal(t, []Play{CardPlay(Show, 0), NewPlay(End)}, LegalPlays(s))

		s.StartingCard = 1
		require.Equal(t, []Play{CardPlay(Show, 1), NewPlay(End)}, LegalPlays(s), "second auction card is 4♠")

		s.StartingCard = 2
		require.Equal(t, []Play{NewPlay(End)}, LegalPlays(s))
	})
}
