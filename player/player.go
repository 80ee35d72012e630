// Package player holds the strategies which choose a play for a seat at the
// table. A strategy is polled by the engine: when a decision needs time it
// starts a background task and reports the play as pending until the task
// is done.
package player

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/trachwo/masters-of-shithead-sub000/experiments/metrics"
	"github.com/trachwo/masters-of-shithead-sub000/fuptable"
	"github.com/trachwo/masters-of-shithead-sub000/game"
	"github.com/trachwo/masters-of-shithead-sub000/meta"
	"github.com/trachwo/masters-of-shithead-sub000/searcher"
	"golang.org/x/exp/rand"
)

// Strategy picks one of the legal plays of the current player. It returns
// false while the decision is pending; the caller asks again with the same
// arguments later.
type Strategy interface {
	SelectPlay(plays []game.Play, s *game.State) (game.Play, bool)
}

// Reporter is implemented by strategies which search. LastSearch returns the
// metric of the search behind the latest play, once.
type Reporter interface {
	LastSearch() (metrics.SearchMetric, bool)
}

type Kind string

const (
	RandomKind     Kind = "random"
	CheapKind      Kind = "cheap"
	TakeKind       Kind = "take"
	SimulationKind Kind = "simulation"
	MCTSKind       Kind = "mcts"
	HumanKind      Kind = "human"
)

var Kinds = []Kind{RandomKind, CheapKind, TakeKind, SimulationKind, MCTSKind, HumanKind}

func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown strategy %q", name)
}

type Options struct {
	// FupTable drives the card swap. Without one the AI keeps its cards.
	FupTable *fuptable.Table
	// FaceDownInOrder plays face down cards left to right instead of at
	// random.
	FaceDownInOrder bool
	Seed            uint64 // 0 seeds from the clock
	Simulations     int    // rollouts per play, simulation only
	Timeout         time.Duration
	Episodes        int // overrides Timeout, mcts only
	Policy          searcher.Policy
	Input           io.Reader
	Output          io.Writer
}

// New builds the strategy of the given kind for the named player.
func New(kind Kind, name string, opts Options) (Strategy, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	b := base{
		name:    name,
		r:       rand.New(rand.NewSource(seed)),
		swap:    swapper{table: opts.FupTable},
		inOrder: opts.FaceDownInOrder,
	}

	switch kind {
	case RandomKind:
		return &Random{base: b}, nil
	case CheapKind:
		return &Cheap{base: b}, nil
	case TakeKind:
		return &Take{base: b}, nil
	case SimulationKind:
		n := opts.Simulations
		if n <= 0 {
			n = meta.SimulationsPerPlay
		}
		return &Simulation{base: b, simulations: n}, nil
	case MCTSKind:
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = meta.MCTSTimeout
		}
		search := searcher.New(
			searcher.WithDuration(timeout),
			searcher.WithEpisodes(opts.Episodes),
			searcher.WithRand(rand.New(rand.NewSource(seed+1))),
			searcher.WithMetrics(),
		)
		return &MCTS{base: b, search: search, policy: opts.Policy}, nil
	case HumanKind:
		in, out := opts.Input, opts.Output
		if in == nil {
			in = os.Stdin
		}
		if out == nil {
			out = os.Stdout
		}
		return newHuman(name, in, out), nil
	}
	return nil, fmt.Errorf("unknown strategy %q", kind)
}

// base is shared by the AI strategies.
type base struct {
	name    string
	r       *rand.Rand
	swap    swapper
	inOrder bool
}

// opening handles the plays made without thought: a forced play, the card
// swap and the auction.
func (b *base) opening(plays []game.Play, s *game.State) (game.Play, bool) {
	if len(plays) == 0 {
		panic("no legal plays to select from")
	}
	if len(plays) == 1 {
		return plays[0], true
	}
	switch s.Phase {
	case game.SwappingCards:
		return b.swap.selectSwap(plays, s.CurrentPlayer()), true
	case game.FindStarter:
		return plays[0], true
	}
	return game.Play{}, false
}

func (b *base) blind(plays []game.Play) game.Play {
	if b.inOrder {
		return plays[0]
	}
	return plays[b.r.Intn(len(plays))]
}

// endGame: talon empty and two players left, the phase the searching
// strategies think about.
func endGame(s *game.State) bool {
	return s.Phase == game.PlayGame && len(s.Talon) == 0 && len(s.Players) == 2
}
