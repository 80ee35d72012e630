package gamemaster

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trachwo/masters-of-shithead-sub000/game"
)

type outs struct{ names []string }

func (o *outs) PlayerOut(name string, _, _ int) { o.names = append(o.names, name) }
func (o *outs) FaceUpStored(string, game.Deck) {}

func newRound() *game.State {
	return game.NewState([]game.Player{game.NewPlayer("a"), game.NewPlayer("b")}, 0, 5)
}

func deal(t *testing.T, table *Table) {
	for _, a := range []game.Action{game.Shuffle, game.Burn, game.Deal} {
		require.NoError(t, table.Play(game.NewPlay(a)))
	}
}

func TestTableInit(t *testing.T) {
	table := NewTable(newRound())
	getUpdate := table.Updates()

	_, state := getUpdate()
	require.Nil(t, state, "no update before the first play")
	require.Equal(t, game.SwappingCards, table.State().Phase)
}

func TestTablePlay(t *testing.T) {
	table := NewTable(newRound())
	getUpdate := table.Updates()

	require.NoError(t, table.Play(game.CardPlay(game.Dealer, 1)))
	deal(t, table)

	play, state := getUpdate()
	require.Equal(t, game.CardPlay(game.Dealer, 1), play)
	require.Equal(t, 1, state.Dealer)
	for _, a := range []game.Action{game.Shuffle, game.Burn, game.Deal} {
		play, state = getUpdate()
		require.Equal(t, a, play.Action)
	}
	require.Equal(t, table.State(), state)
	require.Len(t, state.Players[0].Hand, 3)

	plays := game.LegalPlays(table.State())
	require.NoError(t, table.Play(plays[0]))
	play, _ = getUpdate()
	require.Equal(t, plays[0], play)
}

func TestTableIllegalPlay(t *testing.T) {
	table := NewTable(newRound())

	require.Error(t, table.Play(game.CardPlay(game.Hand, 0)), "nothing to play before the deal")
	require.Error(t, table.Play(game.CardPlay(game.Dealer, 2)), "no third seat")

	deal(t, table)
	require.EqualError(t, table.Play(game.NewPlay(game.Deal)), "illegal play DEAL:-1")
	require.Error(t, table.Play(game.CardPlay(game.Dealer, 0)), "dealer is fixed once the cards are dealt")
	require.Error(t, table.Play(game.NewPlay(game.Take)), "no taking while swapping")
}

func TestTableGameOver(t *testing.T) {
	o := &outs{}
	table := NewTable(newRound(), o)
	getUpdate := table.Updates()
	deal(t, table)
	for i := 0; i < 3; i++ {
		getUpdate()
	}

	require.NoError(t, table.Play(game.NewPlay(game.Quit)))
	require.True(t, table.State().IsOver())

	play, state := getUpdate()
	require.Equal(t, game.NewPlay(game.Quit), play, "a final update before the round ends")
	require.Equal(t, game.Aborted, state.Phase)

	_, state = getUpdate()
	require.Nil(t, state, "no updates after the round is over")

	require.EqualError(t, table.Play(game.NewPlay(game.End)), "game is over - no plays allowed")
	require.Empty(t, o.names)
}

func TestTableObservers(t *testing.T) {
	a, b := game.NewPlayer("a"), game.NewPlayer("b")
	b.Hand = game.Deck{game.NewCard(0, game.Hearts, game.Four)}
	s := &game.State{
		Players:        []game.Player{a, b},
		NDecks:         1,
		Talon:          game.Deck{},
		Discard:        game.Discard{Deck: game.Deck{}},
		Burnt:          game.Deck{},
		Killed:         game.Deck{},
		Direction:      true,
		NextDirection:  true,
		NextPlayer:     1,
		Phase:          game.PlayGame,
		AuctionMembers: []int{},
		Shown:          []int{},
		Result:         map[string]game.Result{"a": {}, "b": {}},
		History:        []game.Play{game.NewPlay(game.Deal)},
	}
	o := &outs{}
	table := NewTable(s, o)

	require.NoError(t, table.Play(game.NewPlay(game.Out)))

	require.Equal(t, []string{"a"}, o.names)
	require.True(t, table.State().IsOver())
	loser, ok := table.State().Loser()
	require.True(t, ok)
	require.Equal(t, "b", loser)
}

func TestUpdateBuffer(t *testing.T) {
	table := NewTable(newRound())
	for i := 0; i < updateBuffer+5; i++ {
		table.publish(update{play: game.CardPlay(game.Dealer, i), state: table.State()})
	}

	play, _ := table.Updates()()
	require.Equal(t, game.CardPlay(game.Dealer, 5), play, "the oldest updates are dropped")
}
