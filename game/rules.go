package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Apply returns the state reached by play. The receiver is left untouched.
// A play which can never be legal here (a card from hand or face up cards
// that does not fit the pile, an unknown action) panics.
func (s *State) Apply(play Play, observers ...Observer) *State {
	next := s.Copy()
	next.apply(play, observers)
	next.History = append(next.History, play)
	next.hash = foldHash(next.hash, play)
	return next
}

// rng derives the random source of a play from the seed and the history
// length, so replaying a history reproduces every shuffle.
func (s *State) rng() *rand.Rand {
	return rand.New(rand.NewSource(s.Seed ^ uint64(len(s.History))))
}

func (s *State) apply(play Play, observers []Observer) {
	player := &s.Players[s.Player]
	s.LogPlayer = player.Name
	s.LogAction = play.Action.String()
	s.LogCard = ""

	var card *Card
	switch play.Action {
	case Shuffle:
		s.Talon.Shuffle(s.rng())
		s.LogPlayer = s.Players[s.Dealer].Name

	case Burn:
		n := CalcBurnt(len(s.Players), s.rng())
		for i := 0; i < n; i++ {
			s.Burnt.Add(s.Talon.Pop())
		}
		s.NBurnt = len(s.Burnt)
		s.LogPlayer = s.Players[s.Dealer].Name

	case Deal:
		s.deal()
		s.LogPlayer = s.Players[s.Dealer].Name

	case Get:
		c := player.FaceUp.PopAt(play.Index)
		player.takeToHand(c)
		player.GetFupRank = c.Rank
		card = &c

	case Put:
		c := player.Hand.PopAt(play.Index)
		player.FaceUp.Add(c)
		card = &c

	case Show:
		c := player.Hand.PopAt(play.Index)
		c.Seen = true
		c.Shown = true
		player.takeToHand(c)
		s.Shown = append(s.Shown, s.Player)
		card = &c
		s.endTurn(false, observers)

	case Hand, FaceUp, FaceDown:
		c := player.cards(play.Action).PopAt(play.Index)
		card = &c
		s.discard(play.Action, c, observers)

	case Out:
		s.endTurn(true, observers)

	case Take:
		if len(player.Hand) == 0 && len(player.FaceUp) > 0 {
			// Not over yet: one or more face up cards go to hand first.
			player.GetFup = true
			player.GetFupRank = NoRank
			s.NPlayed++
		}
		player.takeToHand(s.Discard.Take()...)
		if !player.GetFup {
			s.endTurn(false, observers)
		}

	case Kill:
		s.Killed.Add(s.Discard.Take()...)
		s.Eights = 0
		s.Kings = 0

	case Refill:
		for len(player.Hand) < 3 && len(s.Talon) > 0 {
			player.Hand.Add(s.Talon.Pop())
		}
		player.Hand.Sort()

	case End:
		s.endTurn(false, observers)

	case Dealer:
		if play.Index < 0 || play.Index >= len(s.Players) {
			panic(fmt.Sprintf("invalid dealer %d", play.Index))
		}
		s.Dealer = play.Index
		s.seatAfterDealer()

	case Abort, Quit:
		s.Phase = Aborted
		s.ResetResult()

	default:
		panic(fmt.Sprintf("invalid action %s", play.Action))
	}

	if card != nil {
		s.LogCard = card.String()
	}
}

// deal hands out 3 face down, 3 face up and 3 hand cards to every player,
// one card at a time, starting after the dealer.
func (s *State) deal() {
	n := len(s.Players)
	for round := 0; round < 9; round++ {
		for j := 0; j < n; j++ {
			s.Players[(s.Dealer+1+j)%n].deal(s.Talon.Pop())
		}
	}
}

// discard plays card on the pile and resolves its effect. A blind card that
// does not fit goes to hand together with the pile and ends the turn.
func (s *State) discard(source Action, card Card, observers []Observer) {
	player := &s.Players[s.Player]
	card.Seen = true

	if !s.Discard.Check(s.NPlayed == 0, card) {
		if source != FaceDown {
			panic(fmt.Sprintf("%s does not fit the discard pile, cannot play it from %s", card, source))
		}
		player.takeToHand(append(s.Discard.Take(), card)...)
		s.endTurn(false, observers)
		return
	}

	s.Discard.Add(card)
	switch card.Rank {
	case Ten:
		s.Killed.Add(s.Discard.Take()...)
	case Eight:
		s.Eights++
		s.NextDirection, s.NextPlayer = s.findNextPlayer(false)
	case King:
		s.Kings++
		s.NextDirection, s.NextPlayer = s.findNextPlayer(false)
	}
	s.NPlayed++
}

// findNextPlayer flips the direction for an odd number of kings and skips a
// player per eight. With out set the current player's seat is not counted.
func (s *State) findNextPlayer(out bool) (bool, int) {
	direction := s.Direction
	if s.Kings%2 == 1 {
		direction = !direction
	}
	n := len(s.Players)
	step := 1
	if !direction {
		step = n - 1
	}
	next := (s.Player + step) % n
	for i := 0; i < s.Eights; i++ {
		next = (next + step) % n
		if out && next == s.Player {
			next = (next + step) % n
		}
	}
	return direction, next
}

func (s *State) endTurn(out bool, observers []Observer) {
	s.TurnCount++
	current := s.Player
	player := &s.Players[current]
	switch s.Phase {
	case PlayGame:
		player.TurnCount++
	case SwappingCards:
		player.TurnCount = 0
	}
	player.GetFup = false
	player.GetFupRank = NoRank

	direction, next := s.findNextPlayer(out)

	if out {
		name, turns := player.Name, player.TurnCount
		if current < next {
			next--
		}
		s.Players = append(s.Players[:current], s.Players[current+1:]...)
		score := len(s.Players)
		s.Result[name] = Result{Score: score, Turns: turns}
		if score == 1 {
			s.Result[s.Players[next].Name] = Result{Score: 0, Turns: turns}
			s.Phase = ShitheadFound
		}
		for _, o := range observers {
			o.PlayerOut(name, score, turns)
		}
	}

	s.NPlayed = 0
	s.Kings = 0
	s.Eights = 0
	s.Direction = direction
	s.Player = next
	s.NextDirection, s.NextPlayer = s.findNextPlayer(false)

	switch s.Phase {
	case SwappingCards:
		swapped := s.Players[current]
		for _, o := range observers {
			o.FaceUpStored(swapped.Name, swapped.FaceUp.Copy())
		}
		if s.TurnCount == len(s.Players) {
			s.Phase = FindStarter
			s.TurnCount = 0
		}
	case FindStarter:
		if s.TurnCount == len(s.AuctionMembers) {
			s.resolveAuction()
		} else {
			s.Player = s.AuctionMembers[s.TurnCount]
			s.NextPlayer = s.AuctionMembers[(s.TurnCount+1)%len(s.AuctionMembers)]
		}
	}
}

// resolveAuction runs once every auction member had a chance to show the
// requested card. A single shower starts. Nobody showing, or every copy of
// the card shown, moves on to the next starting card.
func (s *State) resolveAuction() {
	n := len(s.Players)
	shown := len(s.Shown)
	switch {
	case shown == 1:
		s.startWith(s.Shown[0])
	case shown == 0 || shown == s.NDecks:
		s.StartingCard++
		if s.StartingCard >= CardsPerDeck {
			s.startWith((s.Dealer + 1) % n)
		}
	}

	if s.Phase == FindStarter {
		if shown > 0 {
			s.AuctionMembers = s.Shown
		}
		s.Shown = []int{}
		s.Player = s.AuctionMembers[0]
		s.NextPlayer = s.AuctionMembers[1%len(s.AuctionMembers)]
		s.TurnCount = 0
	}
}

func (s *State) startWith(player int) {
	s.Player = player
	s.NextPlayer = (player + 1) % len(s.Players)
	s.Phase = PlayGame
	s.TurnCount = 1
}

// ResetResult clears all scores of the round.
func (s *State) ResetResult() {
	for name := range s.Result {
		s.Result[name] = Result{}
	}
}
