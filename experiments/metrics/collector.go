// Package metrics collects the counters of MCTS searches and the records of
// evaluation rounds.
package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric holds the counters of one RunSearch call.
type SearchMetric struct {
	Duration     time.Duration
	Episodes     int
	Cutoff       int  // turns a rollout may play before it is abandoned
	FullPlayouts int  // rollouts that ended with a shithead
	Nodes        int  // size of the node table after the search
	IsTreeReset  bool // the root was not in the node table
}

// MoveMetric is the search behind one play of an evaluation round. Step
// counts the strategy plays of the round up to and including this one.
type MoveMetric struct {
	Step   int
	Player string
	SearchMetric
}

// GameMetric records one evaluation round.
type GameMetric struct {
	Round      string // uuid
	Players    []string
	Starter    string
	Loser      string
	Aborted    bool
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalPlays int // plays selected by the strategies
	TotalTurns int // TurnCount of the final state
}

// Collector is fed by the searcher while it runs episodes. Search workers
// call AddEpisode and AddFullPlayout concurrently.
type Collector interface {
	Start(cutoff int)
	SetTreeReset(value bool)
	AddFullPlayout()
	AddEpisode()
	Complete(nodes int) SearchMetric
}

type collector struct {
	cutoff       int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	isTreeReset  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset.Store(value)
}

func (m *collector) Start(cutoff int) {
	m.startTime = time.Now()
	m.cutoff = cutoff
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete(nodes int) SearchMetric {
	return SearchMetric{
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Cutoff:       m.cutoff,
		Nodes:        nodes,
		IsTreeReset:  m.isTreeReset.Load(),
	}
}

// dummyCollector drops everything, it is used when metrics are off.
type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(cutoff int)                {}
func (m *dummyCollector) SetTreeReset(value bool)         {}
func (m *dummyCollector) AddFullPlayout()                 {}
func (m *dummyCollector) AddEpisode()                     {}
func (m *dummyCollector) Complete(nodes int) SearchMetric { return SearchMetric{} }
