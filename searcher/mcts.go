package searcher

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/trachwo/masters-of-shithead-sub000/experiments/metrics"
	"github.com/trachwo/masters-of-shithead-sub000/game"
	"github.com/trachwo/masters-of-shithead-sub000/heuristic"
	"github.com/trachwo/masters-of-shithead-sub000/meta"
	"golang.org/x/exp/rand"
)

type Option func(m *MonteCarlo)

// MonteCarlo is a search tree whose nodes are keyed by the hash of their
// play history. The tree survives between searches, so a later search from
// a state already in the table refines the existing subtree. A MonteCarlo is
// not safe for concurrent use.
type MonteCarlo struct {
	duration time.Duration
	episodes int
	explore  float64
	cutoff   int // 0 means players x meta.MaxTurnsPerPlayer
	rng      *rand.Rand
	nodes    map[game.StateHash]*node
	metrics  metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MonteCarlo) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MonteCarlo) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithExploreParam(c float64) Option {
	return func(m *MonteCarlo) {
		if c > 0 {
			m.explore = c
		}
	}
}

// WithCutoff caps rollouts at the given turn count.
func WithCutoff(turns int) Option {
	return func(m *MonteCarlo) {
		if turns > 0 {
			m.cutoff = turns
		}
	}
}

func WithMetrics() Option {
	return func(m *MonteCarlo) {
		m.metrics = metrics.NewCollector()
	}
}

func WithRand(r *rand.Rand) Option {
	return func(m *MonteCarlo) {
		if r != nil {
			m.rng = r
		}
	}
}

func New(options ...Option) *MonteCarlo {
	m := &MonteCarlo{ // Default values
		explore: DefaultExploreParam,
		rng:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		nodes:   make(map[game.StateHash]*node),
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Nodes returns the size of the node table.
func (m *MonteCarlo) Nodes() int {
	return len(m.nodes)
}

// Reset drops the whole tree.
func (m *MonteCarlo) Reset() {
	m.nodes = make(map[game.StateHash]*node)
}

func (m *MonteCarlo) cutoffFor(state *game.State) int {
	if m.cutoff > 0 {
		return m.cutoff
	}
	return len(state.Players) * meta.MaxTurnsPerPlayer
}

// RunSearch grows the tree below state until the budget is spent and every
// play of state has a child.
func (m *MonteCarlo) RunSearch(state *game.State) metrics.SearchMetric {
	cutoff := m.cutoffFor(state)
	m.metrics.Start(cutoff)

	root, created := m.makeNode(state)
	m.metrics.SetTreeReset(created)
	if root.isTerminal() {
		return m.metrics.Complete(len(m.nodes))
	}
	if created {
		loser, ok := m.simulate(root.state, cutoff)
		m.backpropagate(root, root, loser, ok)
	}

	start := time.Now()
	for episode := 0; !m.spent(episode, start) || !root.isFullyExpanded(); episode++ {
		m.episode(root, cutoff)
		m.metrics.AddEpisode()
	}

	metric := m.metrics.Complete(len(m.nodes))
	log.Debug().Msgf("search from %d: %d episodes, %d nodes", state.Hash(), metric.Episodes, metric.Nodes)
	return metric
}

func (m *MonteCarlo) spent(episode int, start time.Time) bool {
	if m.episodes > 0 {
		return episode >= m.episodes
	}
	return time.Since(start) >= m.duration
}

// makeNode looks up the node of state, or adds a new root for it.
func (m *MonteCarlo) makeNode(state *game.State) (*node, bool) {
	if n, ok := m.nodes[state.Hash()]; ok {
		return n, false
	}
	n := newNode(nil, game.Play{}, state.Copy())
	m.nodes[state.Hash()] = n
	return n, true
}

func (m *MonteCarlo) episode(root *node, cutoff int) {
	n := m.selects(root)
	if n.isTerminal() {
		loser, ok := n.state.Loser()
		m.backpropagate(n, root, loser, ok)
		return
	}

	n = m.expand(n)
	var loser string
	var ok bool
	if n.isTerminal() {
		loser, ok = n.state.Loser()
	} else {
		loser, ok = m.simulate(n.state, cutoff)
	}
	m.backpropagate(n, root, loser, ok)
}

// selects descends by UCB1 while nodes are fully expanded.
func (m *MonteCarlo) selects(root *node) *node {
	n := root
	for n.isFullyExpanded() && !n.isTerminal() {
		n = n.bestChild(m.explore)
	}
	return n
}

// expand adds a child for a random unexpanded play of n. Children without a
// choice are expanded right away until a node with a choice, or a terminal
// node, is reached.
func (m *MonteCarlo) expand(n *node) *node {
	plays := n.unexpanded()
	child := m.addChild(n, plays[m.rng.Intn(len(plays))])
	for len(child.plays) == 1 {
		child = m.addChild(child, child.plays[0])
	}
	return child
}

func (m *MonteCarlo) addChild(parent *node, play game.Play) *node {
	child := newNode(parent, play, parent.state.Apply(play))
	parent.children[play] = child
	m.nodes[child.state.Hash()] = child
	return child
}

func (m *MonteCarlo) simulate(state *game.State, cutoff int) (string, bool) {
	loser, ok := heuristic.Rollout(state, cutoff, m.rng)
	if ok {
		m.metrics.AddFullPlayout()
	}
	return loser, ok
}

// backpropagate counts a visit on every node from n up to root. A node wins
// when the player who chose its play is not the loser. Inconclusive rollouts
// only count visits.
func (m *MonteCarlo) backpropagate(n, root *node, loser string, ok bool) {
	for {
		n.visits++
		if ok && n.player != loser {
			n.wins++
		}
		if n == root || n.parent == nil {
			return
		}
		n = n.parent
	}
}

// BestPlay returns the play of the best child of state's node.
func (m *MonteCarlo) BestPlay(state *game.State, policy Policy) (game.Play, error) {
	n, ok := m.nodes[state.Hash()]
	if !ok {
		return game.Play{}, fmt.Errorf("no node for state %d", state.Hash())
	}
	if n.isTerminal() {
		return game.Play{}, fmt.Errorf("state %d is terminal", state.Hash())
	}
	if !n.isFullyExpanded() {
		return game.Play{}, fmt.Errorf("not enough information: %d of %d plays expanded", len(n.children), len(n.plays))
	}

	var best game.Play
	maxValue := -1.0
	for _, p := range n.plays {
		child := n.children[p]
		var value float64
		switch policy {
		case Robust:
			value = float64(child.visits)
		case Max:
			value = child.ratio()
		default:
			return game.Play{}, fmt.Errorf("unknown policy %s", policy)
		}
		if value > maxValue {
			maxValue = value
			best = p
		}
	}
	return best, nil
}

type ChildStats struct {
	Play     game.Play
	Expanded bool
	Plays    int
	Wins     int
}

type Stats struct {
	Plays    int
	Wins     int
	Children []ChildStats
}

// Stats returns the counters of state's node and its children.
func (m *MonteCarlo) Stats(state *game.State) (Stats, error) {
	n, ok := m.nodes[state.Hash()]
	if !ok {
		return Stats{}, fmt.Errorf("no node for state %d", state.Hash())
	}
	stats := Stats{Plays: n.visits, Wins: n.wins}
	for _, p := range n.plays {
		cs := ChildStats{Play: p}
		if child, ok := n.children[p]; ok {
			cs.Expanded = true
			cs.Plays = child.visits
			cs.Wins = child.wins
		}
		stats.Children = append(stats.Children, cs)
	}
	return stats, nil
}

// Check verifies that the visits of state's node are its children's visits
// plus its own rollout. Nodes without a choice have no rollout of their own
// and fail the check.
func (m *MonteCarlo) Check(state *game.State) error {
	stats, err := m.Stats(state)
	if err != nil {
		return err
	}
	sum := 0
	for _, c := range stats.Children {
		sum += c.Plays
	}
	if stats.Plays != sum+1 {
		return fmt.Errorf("node has %d plays, children have %d", stats.Plays, sum)
	}
	return nil
}
