package game

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"golang.org/x/exp/rand"
)

// Starting card auction order, from worst to best.
var (
	StartingRanks = [...]Rank{Four, Five, Six, Seven, Eight, Nine, Jack, Queen, King, Ace, Ten, Two, Three}
	StartingSuits = [...]Suit{Clubs, Spades, Hearts, Diamonds}
)

// StartingCard is the card requested in auction round i.
func StartingCard(i int) Card {
	return NewCard(0, StartingSuits[i%4], StartingRanks[i/4])
}

// State is a complete snapshot of a round. States are values: Apply copies
// the receiver and never mutates it.
type State struct {
	TurnCount      int               `json:"turn_count"`
	LogPlayer      string            `json:"log_player"`
	LogAction      string            `json:"log_action"`
	LogCard        string            `json:"log_card"`
	Players        []Player          `json:"players"`
	Dealer         int               `json:"dealer"`
	Player         int               `json:"player"`
	Talon          Deck              `json:"talon"`
	NDecks         int               `json:"n_decks"`
	Discard        Discard           `json:"discard"`
	Burnt          Deck              `json:"burnt"`
	NBurnt         int               `json:"n_burnt"`
	Killed         Deck              `json:"killed"`
	Direction      bool              `json:"direction"` // true is clockwise
	NextDirection  bool              `json:"next_direction"`
	NextPlayer     int               `json:"next_player"`
	NPlayed        int               `json:"n_played"`
	Eights         int               `json:"eights"`
	Kings          int               `json:"kings"`
	Phase          Phase             `json:"game_phase"`
	StartingCard   int               `json:"starting_card"`
	AuctionMembers []int             `json:"auction_members"`
	Shown          []int             `json:"shown_starting_card"`
	Result         map[string]Result `json:"result"`
	LogInfo        LogInfo           `json:"log_info"`
	History        []Play            `json:"history"`
	Seed           uint64            `json:"seed"`

	hash StateHash
}

// NewState creates the undealt state of a round. A negative dealer picks one
// at random. The talon holds CalcDecks(len(players)) decks.
func NewState(players []Player, dealer int, seed uint64) *State {
	n := len(players)
	if n < 2 {
		panic("a round needs at least 2 players")
	}
	if dealer < 0 || dealer >= n {
		dealer = rand.New(rand.NewSource(seed)).Intn(n)
	}

	s := &State{
		Players:       make([]Player, n),
		Dealer:        dealer,
		NDecks:        CalcDecks(n),
		Burnt:         Deck{},
		Killed:        Deck{},
		Discard:       Discard{Deck: Deck{}},
		Direction:     true,
		NextDirection: true,
		Result:        make(map[string]Result, n),
		LogInfo:       LogInfo{Level: "No Secrets"},
		History:       []Play{},
		Seed:          seed,
		hash:          emptyHash,
	}
	for i, p := range players {
		np := NewPlayer(p.Name)
		np.IsHuman = p.IsHuman
		s.Players[i] = np
		s.Result[p.Name] = Result{}
	}
	for id := 0; id < s.NDecks; id++ {
		s.Talon.Add(NewDeck(id)...)
	}
	s.seatAfterDealer()
	return s
}

// seatAfterDealer makes the player after the dealer current and first in
// the auction.
func (s *State) seatAfterDealer() {
	n := len(s.Players)
	s.Player = (s.Dealer + 1) % n
	s.NextPlayer = (s.Player + 1) % n
	s.AuctionMembers = make([]int, n)
	for i := range s.AuctionMembers {
		s.AuctionMembers[i] = (s.Player + i) % n
	}
	s.Shown = []int{}
}

// Copy returns a deep copy.
func (s *State) Copy() *State {
	c := *s
	c.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		c.Players[i] = p.Copy()
	}
	c.Talon = s.Talon.Copy()
	c.Discard = s.Discard.Copy()
	c.Burnt = s.Burnt.Copy()
	c.Killed = s.Killed.Copy()
	c.AuctionMembers = append([]int{}, s.AuctionMembers...)
	c.Shown = append([]int{}, s.Shown...)
	c.Result = make(map[string]Result, len(s.Result))
	for name, r := range s.Result {
		c.Result[name] = r
	}
	c.History = append(make([]Play, 0, len(s.History)+1), s.History...)
	return &c
}

var emptyHash = StateHash(fnv.New64a().Sum64())

const fnvPrime64 = 1099511628211

// foldHash continues the FNV-1a hash over the encoding of one more play, so
// that Hash equals the hash of the whole history without rehashing it.
func foldHash(h StateHash, p Play) StateHash {
	for _, b := range encodePlay(p) {
		h ^= StateHash(b)
		h *= fnvPrime64
	}
	return h
}

func encodePlay(p Play) []byte {
	buf := make([]byte, 5)
	buf[0] = byte(p.Action)
	binary.LittleEndian.PutUint32(buf[1:], uint32(int32(p.Index)))
	return buf
}

// Hash identifies the state by its play history.
func (s *State) Hash() StateHash {
	return s.hash
}

// HistoryHash recomputes the history hash from scratch.
func HistoryHash(history []Play) StateHash {
	hasher := fnv.New64a()
	for _, p := range history {
		hasher.Write(encodePlay(p))
	}
	return StateHash(hasher.Sum64())
}

func (s *State) rehash() {
	s.hash = HistoryHash(s.History)
}

func (s *State) CurrentPlayer() *Player {
	return &s.Players[s.Player]
}

func (s *State) IsPlayer(name string) bool {
	return s.Players[s.Player].Name == name
}

// PlayerIndex returns the index of the named active player, or -1.
func (s *State) PlayerIndex(name string) int {
	for i, p := range s.Players {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func (s *State) Names() []string {
	names := make([]string, len(s.Players))
	for i, p := range s.Players {
		names[i] = p.Name
	}
	return names
}

// IsOver reports whether the round reached a terminal phase.
func (s *State) IsOver() bool {
	return s.Phase == ShitheadFound || s.Phase == Aborted
}

// Loser returns the shithead once a single player is left.
func (s *State) Loser() (string, bool) {
	if len(s.Players) == 1 {
		return s.Players[0].Name, true
	}
	return "", false
}

// RequestedCard is the card asked for in the running auction round.
func (s *State) RequestedCard() Card {
	return StartingCard(s.StartingCard)
}

// Unknown returns the cards whose place viewer cannot know: talon, burnt
// cards, every face down card and the opponents' hand cards which were
// never face up.
func (s *State) Unknown(viewer string) Deck {
	unknown := Deck{}
	unknown.Add(s.Talon...)
	unknown.Add(s.Burnt...)
	for _, p := range s.Players {
		for _, c := range p.Hand {
			if !c.Seen && p.Name != viewer {
				unknown.Add(c)
			}
		}
		unknown.Add(p.FaceDown...)
	}
	unknown.Sort()
	return unknown
}

// SeenOpponentCards returns the hand cards of the current player's opponents
// which have been face up at some point.
func (s *State) SeenOpponentCards() Deck {
	seen := Deck{}
	for i, p := range s.Players {
		if i == s.Player {
			continue
		}
		for _, c := range p.Hand {
			if c.Seen {
				seen.Add(c)
			}
		}
	}
	return seen
}

// EstimateRemainingDraws estimates how long the talon lasts if every player
// plays a single card per turn and the current player holds size cards.
// It returns the remaining turns, the current player's draws and the current
// player's hand size once the talon is empty.
func (s *State) EstimateRemainingDraws(size int) (turns, draws, hand int) {
	n := len(s.Players)
	hands := make([]int, n)
	for i := range hands {
		if i == 0 {
			hands[i] = size
		} else {
			hands[i] = len(s.Players[(s.Player+i)%n].Hand)
		}
	}
	talon := len(s.Talon)
	for talon > 0 {
		i := turns % n
		if hands[i] > 3 {
			hands[i]--
		} else {
			talon--
			if i == 0 {
				draws++
			}
		}
		turns++
	}
	return turns, draws, hands[0]
}

// AllCards returns every card of the state regardless of its container.
func (s *State) AllCards() Deck {
	all := Deck{}
	all.Add(s.Talon...)
	all.Add(s.Discard.Deck...)
	all.Add(s.Burnt...)
	all.Add(s.Killed...)
	for _, p := range s.Players {
		all.Add(p.FaceDown...)
		all.Add(p.FaceUp...)
		all.Add(p.Hand...)
	}
	return all
}

// CalcDecks returns the number of decks needed for n players.
func CalcDecks(n int) int {
	return int(math.Ceil(float64(n*CardsPerPlayer) / CardsPerDeck))
}

// CalcBurnt returns how many talon cards are removed before dealing. Up to
// 2 surplus cards per player are kept at random.
func CalcBurnt(n int, r *rand.Rand) int {
	surplus := CalcDecks(n)*CardsPerDeck - n*CardsPerPlayer
	if surplus < 2*n {
		return 0
	}
	return surplus - (1 + r.Intn(2*n))
}
