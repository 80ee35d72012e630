package game

import (
	"math/big"

	"golang.org/x/exp/rand"
)

// Resample returns a copy of s in which every card unknown to viewer is
// redealt at random. Burnt cards, the opponents' never seen hand cards and
// all face down cards go back to the talon, which is shuffled and then
// refills each container to its former size. An empty viewer stands for
// the current player.
func Resample(s *State, viewer string, r *rand.Rand) *State {
	sim := s.Copy()
	if viewer == "" {
		viewer = sim.Players[sim.Player].Name
	}

	nBurnt := len(sim.Burnt)
	sim.Talon.Add(sim.Burnt.Take()...)

	type removed struct{ hand, faceDown int }
	counts := make([]removed, len(sim.Players))
	for i := range sim.Players {
		p := &sim.Players[i]
		if p.Name != viewer {
			kept := Deck{}
			for _, c := range p.Hand {
				if c.Seen {
					kept.Add(c)
				} else {
					sim.Talon.Add(c)
					counts[i].hand++
				}
			}
			p.Hand = kept
		}
		counts[i].faceDown = len(p.FaceDown)
		sim.Talon.Add(p.FaceDown.Take()...)
	}

	sim.Talon.Shuffle(r)

	for i := 0; i < nBurnt; i++ {
		sim.Burnt.Add(sim.Talon.Pop())
	}
	for i := range sim.Players {
		p := &sim.Players[i]
		for j := 0; j < counts[i].hand; j++ {
			p.Hand.Add(sim.Talon.Pop())
		}
		p.Hand.Sort()
		for j := 0; j < counts[i].faceDown; j++ {
			p.FaceDown.Add(sim.Talon.Pop())
		}
	}
	return sim
}

// Redistributions counts the distinct ways the cards unknown to the current
// player can be spread over the other players' hands and all face down
// cards.
func Redistributions(s *State) *big.Int {
	unknown := int64(len(s.Burnt))
	var sizes []int64
	for i, p := range s.Players {
		var hand int64
		if i != s.Player {
			for _, c := range p.Hand {
				if !c.Seen {
					hand++
				}
			}
		}
		sizes = append(sizes, hand, int64(len(p.FaceDown)))
		unknown += hand + int64(len(p.FaceDown))
	}
	total := big.NewInt(1)
	for _, k := range sizes {
		total.Mul(total, new(big.Int).Binomial(unknown, k))
		unknown -= k
	}
	return total
}
