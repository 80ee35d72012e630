package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func names(n int) []Player {
	players := make([]Player, n)
	for i := range players {
		players[i] = NewPlayer(string(rune('a' + i)))
	}
	return players
}

func dealt(t *testing.T, n int, seed uint64) *State {
	t.Helper()
	s := NewState(names(n), 0, seed)
	for _, action := range []Action{Shuffle, Burn, Deal} {
		s = s.Apply(NewPlay(action))
	}
	return s
}

func requireConserved(t *testing.T, s *State) {
	t.Helper()
	all := s.AllCards()
	require.Len(t, all, s.NDecks*CardsPerDeck, "cards must neither vanish nor appear")
	ids := map[[3]int]bool{}
	for _, c := range all {
		id := [3]int{c.Deck, int(c.Suit), int(c.Rank)}
		require.False(t, ids[id], "card %s of deck %d is duplicated", c, c.Deck)
		ids[id] = true
	}
}

func TestNewStateAndDeal(t *testing.T) {
	s := NewState(names(3), 1, 99)
	require.Equal(t, 2, s.Player, "player after the dealer starts")
	require.Equal(t, 0, s.NextPlayer)
	require.Equal(t, []int{2, 0, 1}, s.AuctionMembers)
	require.Len(t, s.Talon, 52)
	requireConserved(t, s)

	s = s.Apply(NewPlay(Shuffle)).Apply(NewPlay(Burn)).Apply(NewPlay(Deal))
	require.Equal(t, 0, s.NBurnt, "3 players use the whole deck")
	for _, p := range s.Players {
		require.Len(t, p.FaceDown, 3)
		require.Len(t, p.FaceUp, 3)
		require.Len(t, p.Hand, 3)
		for _, c := range p.FaceUp {
			require.True(t, c.Seen && c.FaceUp, "face up cards are visible")
		}
	}
	require.Len(t, s.Talon, 52-27)
	requireConserved(t, s)

	t.Run("random dealer", func(t *testing.T) {
		s := NewState(names(4), -1, 5)
		require.GreaterOrEqual(t, s.Dealer, 0)
		require.Less(t, s.Dealer, 4)
		require.Equal(t, 2, s.NDecks)
		require.Len(t, s.Talon, 104)
	})
}

func TestCalc(t *testing.T) {
	require.Equal(t, 1, CalcDecks(2))
	require.Equal(t, 1, CalcDecks(3))
	require.Equal(t, 2, CalcDecks(4))
	require.Equal(t, 2, CalcDecks(6))
	require.Equal(t, 3, CalcDecks(7))

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		n := CalcBurnt(2, r)
		require.GreaterOrEqual(t, n, 14)
		require.LessOrEqual(t, n, 17)
		require.Equal(t, 0, CalcBurnt(3, r))
		require.Equal(t, 0, CalcBurnt(6, r))
	}
}

func TestApplyIsPure(t *testing.T) {
	s := dealt(t, 2, 3)
	before := s.Copy()

	next := s.Apply(LegalPlays(s)[0])

	require.Equal(t, before, s, "Apply must not change its receiver")
	require.Len(t, next.History, len(s.History)+1)
	require.NotEqual(t, s.Hash(), next.Hash())
}

func TestOut(t *testing.T) {
	t.Run("one of three players goes out", func(t *testing.T) {
		s := playState(
			withCards("a", nil, nil, nil),
			withCards("b", Deck{card(Two, Clubs)}, nil, nil),
			withCards("c", Deck{card(Two, Hearts)}, nil, nil),
		)
		s.Players[0].TurnCount = 12

		s = s.Apply(NewPlay(Out))

		require.Equal(t, []string{"b", "c"}, s.Names())
		require.Equal(t, Result{Score: 2, Turns: 13}, s.Result["a"])
		require.Equal(t, PlayGame, s.Phase)
		require.Equal(t, 0, s.Player, "b moves on")
	})

	t.Run("last player left is the shithead", func(t *testing.T) {
		s := playState(
			withCards("a", Deck{card(Two, Clubs)}, nil, nil),
			withCards("b", nil, nil, nil),
		)
		s.Player = 1
		s.NextPlayer = 0
		s.Result["a"] = Result{Score: 5, Turns: 5}

		var o recorder
		s = s.Apply(NewPlay(Out), &o)

		require.Equal(t, ShitheadFound, s.Phase)
		require.Equal(t, 1, s.Result["b"].Score)
		require.Equal(t, 0, s.Result["a"].Score, "the shithead scores 0")
		loser, ok := s.Loser()
		require.True(t, ok)
		require.Equal(t, "a", loser)
		require.Equal(t, []string{"b"}, o.out)
		require.Empty(t, LegalPlays(s))
	})
}

type recorder struct {
	out    []string
	stored map[string]Deck
}

func (r *recorder) PlayerOut(name string, score, turns int) {
	r.out = append(r.out, name)
}

func (r *recorder) FaceUpStored(name string, cards Deck) {
	if r.stored == nil {
		r.stored = map[string]Deck{}
	}
	r.stored[name] = cards
}

func TestDirectionAndSkips(t *testing.T) {
	t.Run("two eights and a king", func(t *testing.T) {
		ps := make([]Player, 4)
		for i := range ps {
			ps[i] = withCards(string(rune('a'+i)), Deck{card(Two, Suits[i])}, nil, nil)
		}
		s := playState(ps...)
		s.Eights = 2
		s.Kings = 1
		s.NPlayed = 3
		s.Discard = pile(Eight, Eight, King)

		s = s.Apply(NewPlay(End))

		require.False(t, s.Direction, "an odd number of kings reverses")
		require.Equal(t, 1, s.Player, "three steps counter clockwise from 0")
		require.Equal(t, 0, s.Eights)
		require.Equal(t, 0, s.Kings)
		require.Equal(t, 0, s.NPlayed)
		require.Equal(t, 0, s.NextPlayer)
	})

	t.Run("an eight updates the next player at once", func(t *testing.T) {
		ps := make([]Player, 3)
		for i := range ps {
			ps[i] = withCards(string(rune('a'+i)), Deck{card(Eight, Suits[i]), card(Ace, Suits[i])}, nil, nil)
		}
		s := playState(ps...)

		s = s.Apply(CardPlay(Hand, 0))

		require.Equal(t, 1, s.Eights)
		require.Equal(t, 2, s.NextPlayer)
		require.Equal(t, 0, s.Player)
	})

	t.Run("skipping over the seat of a player who went out", func(t *testing.T) {
		s := playState(
			withCards("a", nil, nil, nil),
			withCards("b", Deck{card(Two, Clubs)}, nil, nil),
			withCards("c", Deck{card(Two, Hearts)}, nil, nil),
		)
		s.Eights = 2
		s.NPlayed = 2

		s = s.Apply(NewPlay(Out))

		require.Equal(t, "b", s.Players[s.Player].Name, "b, c, then b again without a's seat")
	})
}

func TestCardEffects(t *testing.T) {
	t.Run("a ten kills the pile", func(t *testing.T) {
		s := playState(
			withCards("a", Deck{card(Ten, Clubs), card(Ace, Clubs)}, nil, nil),
			withCards("b", Deck{card(Two, Clubs)}, nil, nil),
		)
		s.Discard = pile(Five, Six)

		s = s.Apply(CardPlay(Hand, 0))

		require.Empty(t, s.Discard.Deck)
		require.Len(t, s.Killed, 3)
		require.Equal(t, 0, s.Player, "the player goes on")
		require.Equal(t, []Play{CardPlay(Hand, 0)}, LegalPlays(s))
	})

	t.Run("kill resets eights and kings", func(t *testing.T) {
		s := playState(
			withCards("a", Deck{card(Ace, Clubs)}, nil, nil),
			withCards("b", Deck{card(Two, Clubs)}, nil, nil),
		)
		s.Discard = pile(Eight, Eight, Eight, Eight)
		s.Eights = 4
		s.NPlayed = 4

		s = s.Apply(NewPlay(Kill))

		require.Empty(t, s.Discard.Deck)
		require.Len(t, s.Killed, 4)
		require.Equal(t, 0, s.Eights)
	})

	t.Run("a blind card that does not fit takes the pile", func(t *testing.T) {
		s := playState(
			withCards("a", nil, nil, Deck{card(Four, Diamonds), card(Nine, Hearts)}),
			withCards("b", Deck{card(Two, Clubs)}, nil, nil),
		)
		s.Discard = Discard{Deck: Deck{card(Ace, Clubs)}}

		s = s.Apply(CardPlay(FaceDown, 0))

		require.Equal(t, "4♢ A♣", s.Players[0].Hand.String())
		require.True(t, s.Players[0].Hand[0].Seen)
		require.Empty(t, s.Discard.Deck)
		require.Equal(t, 1, s.Player)
		require.Equal(t, 0, s.NPlayed, "the next player starts a fresh turn")
	})

	t.Run("taking the pile ends the turn", func(t *testing.T) {
		s := playState(
			withCards("a", Deck{card(Four, Diamonds)}, nil, nil),
			withCards("b", Deck{card(Two, Clubs)}, nil, nil),
		)
		s.Discard = pile(Ace, King)

		s = s.Apply(NewPlay(Take))

		require.Len(t, s.Players[0].Hand, 3)
		require.Equal(t, 1, s.Player)
		require.Equal(t, 1, s.Players[0].TurnCount)
	})

	t.Run("refill draws from the top of the talon", func(t *testing.T) {
		s := playState(
			withCards("a", Deck{card(Four, Diamonds)}, nil, nil),
			withCards("b", Deck{card(Two, Clubs)}, nil, nil),
		)
		s.Talon = Deck{card(Jack, Clubs), card(Nine, Clubs), card(Three, Spades)}
		s.NPlayed = 1
		s.Discard = pile(Four)

		s = s.Apply(NewPlay(Refill))

		require.Equal(t, "3♠ 4♢ 9♣", s.Players[0].Hand.String())
		require.Len(t, s.Talon, 1)
	})
}

func TestAuction(t *testing.T) {
	auction := func(hands ...Deck) *State {
		ps := make([]Player, len(hands))
		for i, h := range hands {
			ps[i] = withCards(string(rune('a'+i)), h, nil, nil)
		}
		s := playState(ps...)
		s.Phase = FindStarter
		for i := range ps {
			s.AuctionMembers = append(s.AuctionMembers, i)
		}
		return s
	}

	t.Run("single shower starts", func(t *testing.T) {
		s := auction(Deck{card(Ace, Clubs)}, Deck{card(Four, Clubs)}, Deck{card(Five, Clubs)})

		s = s.Apply(NewPlay(End))
		require.Equal(t, 1, s.Player)
		s = s.Apply(CardPlay(Show, 0))
		require.True(t, s.Players[1].Hand[0].Shown)
		require.Equal(t, 2, s.Player)
		s = s.Apply(NewPlay(End))

		require.Equal(t, PlayGame, s.Phase)
		require.Equal(t, 1, s.Player)
		require.Equal(t, 2, s.NextPlayer)
		require.Equal(t, 1, s.TurnCount)
	})

	t.Run("nobody shows", func(t *testing.T) {
		s := auction(Deck{card(Ace, Clubs)}, Deck{card(Ace, Hearts)})

		s = s.Apply(NewPlay(End)).Apply(NewPlay(End))

		require.Equal(t, FindStarter, s.Phase)
		require.Equal(t, 1, s.StartingCard)
		require.Equal(t, 0, s.Player)
		require.Equal(t, 0, s.TurnCount)
	})

	t.Run("all copies shown move on with the showers only", func(t *testing.T) {
		s := auction(Deck{NewCard(0, Clubs, Four)}, Deck{card(Ace, Hearts)}, Deck{NewCard(1, Clubs, Four)})
		s.NDecks = 2

		s = s.Apply(CardPlay(Show, 0)).Apply(NewPlay(End)).Apply(CardPlay(Show, 0))

		require.Equal(t, FindStarter, s.Phase)
		require.Equal(t, 1, s.StartingCard)
		require.Equal(t, []int{0, 2}, s.AuctionMembers)
		require.Equal(t, 0, s.Player)
		require.Equal(t, 2, s.NextPlayer)
	})

	t.Run("exhausted auction falls back to the player after the dealer", func(t *testing.T) {
		s := auction(Deck{card(Ace, Clubs)}, Deck{card(Ace, Hearts)})
		s.StartingCard = CardsPerDeck - 1
		s.Dealer = 0

		s = s.Apply(NewPlay(End)).Apply(NewPlay(End))

		require.Equal(t, PlayGame, s.Phase)
		require.Equal(t, 1, s.Player)
	})
}

func TestSwapPhase(t *testing.T) {
	s := dealt(t, 2, 11)
	require.Equal(t, SwappingCards, s.Phase)

	var o recorder
	first := s.CurrentPlayer().Name
	s = s.Apply(CardPlay(Get, 0), &o).Apply(CardPlay(Put, 0), &o).Apply(NewPlay(End), &o)
	require.Len(t, o.stored[first], 3, "the face up cards of the player who swapped are stored")
	s = s.Apply(NewPlay(End), &o)

	require.Equal(t, FindStarter, s.Phase)
	require.Equal(t, 0, s.TurnCount)
	require.Len(t, o.stored, 2)
}

func TestAbort(t *testing.T) {
	s := playState(
		withCards("a", Deck{card(Four, Diamonds)}, nil, nil),
		withCards("b", Deck{card(Two, Clubs)}, nil, nil),
	)
	s.Result["c"] = Result{Score: 2, Turns: 30}

	s = s.Apply(NewPlay(Abort))

	require.Equal(t, Aborted, s.Phase)
	require.True(t, s.IsOver())
	require.Equal(t, Result{}, s.Result["c"], "an aborted round has no result")
}

func TestRandomRounds(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5} {
		t.Run(string(rune('0'+n))+" players", func(t *testing.T) {
			r := rand.New(rand.NewSource(uint64(n)))
			s := dealt(t, n, uint64(100+n))
			requireConserved(t, s)

			for steps := 0; !s.IsOver(); steps++ {
				if steps > 20000 {
					s = s.Apply(NewPlay(Abort))
					break
				}
				plays := LegalPlays(s)
				require.NotEmpty(t, plays, "a running round always offers a play")
				seen := seenCards(s)
				s = s.Apply(plays[r.Intn(len(plays))])
				requireConserved(t, s)
				for _, c := range s.AllCards() {
					if seen[[3]int{c.Deck, int(c.Suit), int(c.Rank)}] {
						require.True(t, c.Seen, "%s lost its seen flag", c)
					}
				}
			}

			require.Equal(t, HistoryHash(s.History), s.Hash(), "incremental hash equals the history hash")

			replay := NewState(names(n), 0, uint64(100+n))
			for _, p := range s.History {
				replay = replay.Apply(p)
			}
			require.Equal(t, s, replay, "replaying the history reproduces the state")
		})
	}
}

func seenCards(s *State) map[[3]int]bool {
	seen := map[[3]int]bool{}
	for _, c := range s.AllCards() {
		if c.Seen {
			seen[[3]int{c.Deck, int(c.Suit), int(c.Rank)}] = true
		}
	}
	return seen
}

func TestEstimateRemainingDraws(t *testing.T) {
	s := playState(
		withCards("a", Deck{card(Four, Diamonds)}, nil, nil),
		withCards("b", Deck{card(Two, Clubs), card(Two, Hearts), card(Three, Clubs), card(Five, Spades)}, nil, nil),
	)
	s.Talon = Deck{card(Jack, Clubs), card(Nine, Clubs), card(Three, Spades)}

	turns, draws, hand := s.EstimateRemainingDraws(5)

	// a 5 → 4, b 4 → 3, a 4 → 3, then b, a and b draw the three talon cards
	require.Equal(t, 6, turns)
	require.Equal(t, 1, draws)
	require.Equal(t, 3, hand)
}
