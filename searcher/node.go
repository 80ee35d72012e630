package searcher

import (
	"math"

	"github.com/trachwo/masters-of-shithead-sub000/game"
)

type node struct {
	parent   *node
	play     game.Play   // play leading here from parent
	player   string      // current player of the parent, who chose play
	state    *game.State // private snapshot
	plays    []game.Play // legal plays of state, in generator order
	children map[game.Play]*node
	wins     int
	visits   int
}

func newNode(parent *node, play game.Play, state *game.State) *node {
	n := &node{
		parent: parent,
		play:   play,
		state:  state,
		plays:  game.LegalPlays(state),
	}
	n.children = make(map[game.Play]*node, len(n.plays))
	if parent != nil {
		n.player = parent.state.CurrentPlayer().Name
	} else if !state.IsOver() {
		n.player = state.CurrentPlayer().Name
	}
	return n
}

func (n *node) isTerminal() bool {
	return len(n.plays) == 0
}

func (n *node) isFullyExpanded() bool {
	return len(n.children) == len(n.plays)
}

func (n *node) unexpanded() []game.Play {
	var plays []game.Play
	for _, p := range n.plays {
		if _, ok := n.children[p]; !ok {
			plays = append(plays, p)
		}
	}
	return plays
}

// bestChild returns the child with the highest UCB1 value. Ties go to the
// first play in generator order.
func (n *node) bestChild(c float64) *node {
	if n.visits == 0 {
		panic("node has children but no visits")
	}

	e := newExplorer(c, n.visits)
	var best *node
	maxScore := math.Inf(-1)
	for _, p := range n.plays {
		child := n.children[p]
		score := e.evaluate(float64(child.wins), child.visits)
		if score == math.Inf(1) {
			return child
		}
		if score > maxScore {
			maxScore = score
			best = child
		}
	}
	return best
}

func (n *node) ratio() float64 {
	if n.visits == 0 {
		return 0
	}
	return float64(n.wins) / float64(n.visits)
}
