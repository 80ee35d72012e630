package game

// LegalPlays lists every play the current player may choose. The list is
// never empty while the round is running.
func LegalPlays(s *State) []Play {
	if s.IsOver() {
		return nil
	}
	player := &s.Players[s.Player]
	switch s.Phase {
	case SwappingCards:
		return legalSwaps(player)
	case FindStarter:
		return legalBids(player, s.RequestedCard())
	default:
		return legalGamePlays(s, player)
	}
}

// legalSwaps: take face up cards to hand, put hand cards down while fewer
// than 3 lie on the table, end with exactly 3 face up cards.
func legalSwaps(p *Player) []Play {
	var plays []Play
	for i := range p.FaceUp {
		plays = append(plays, CardPlay(Get, i))
	}
	if len(p.FaceUp) < 3 {
		for i := range p.Hand {
			plays = append(plays, CardPlay(Put, i))
		}
	}
	if len(p.FaceUp) == 3 {
		plays = append(plays, NewPlay(End))
	}
	return plays
}

// legalBids: show an unshown copy of the requested card, or pass.
func legalBids(p *Player, requested Card) []Play {
	var plays []Play
	for i, c := range p.Hand {
		if c.Rank == requested.Rank && c.Suit == requested.Suit && !c.Shown {
			plays = append(plays, CardPlay(Show, i))
		}
	}
	return append(plays, NewPlay(End))
}

// cardPlays lists the cards of source which may be played next. Blind cards
// are never checked: any face down card may open a turn, later ones only
// follow on an empty pile or a Q.
func cardPlays(p *Player, first bool, source Action, cards Deck, d Discard) []Play {
	var plays []Play
	switch source {
	case Hand:
		for i, c := range cards {
			if d.Check(first, c) {
				plays = append(plays, CardPlay(Hand, i))
			}
		}
	case FaceUp:
		switch {
		case first || !p.GetFup:
			for i, c := range cards {
				if d.Check(first, c) {
					plays = append(plays, CardPlay(FaceUp, i))
				}
			}
		case p.GetFupRank == NoRank:
			for i := range cards {
				plays = append(plays, CardPlay(Get, i))
			}
		default:
			for i, c := range cards {
				if c.Rank == p.GetFupRank {
					plays = append(plays, CardPlay(Get, i))
				}
			}
		}
	case FaceDown:
		if first || len(d.Deck) == 0 || d.TopRank() == Queen {
			for i := range cards {
				plays = append(plays, CardPlay(FaceDown, i))
			}
		}
	}
	return plays
}

func legalGamePlays(s *State, p *Player) []Play {
	source, cards := p.Source()
	if source == Out {
		return []Play{NewPlay(Out)}
	}

	d := s.Discard
	var plays []Play
	if s.NPlayed == 0 {
		plays = cardPlays(p, true, source, cards, d)
		if len(d.Deck) > 0 {
			plays = append(plays, NewPlay(Take))
		}
		return plays
	}

	switch {
	case p.GetFup:
		// After taking the pile the source is the hand, but the picks come
		// from the face up cards.
		if len(p.FaceUp) > 0 {
			plays = cardPlays(p, false, FaceUp, p.FaceUp, d)
		}
		if p.GetFupRank != NoRank {
			plays = append(plays, NewPlay(End))
		}
	case d.NTop() >= 4:
		plays = append(plays, NewPlay(Kill))
		if source == Hand || source == FaceUp {
			plays = append(plays, cardPlays(p, false, source, cards, d)...)
		}
	case len(s.Talon) > 0 && len(p.Hand) < 3:
		// Refill before anything else; with 4 of a kind on top the kill
		// had to be decided first.
		plays = append(plays, NewPlay(Refill))
	case len(d.Deck) == 0 || d.TopRank() == Queen:
		plays = cardPlays(p, false, source, cards, d)
	default:
		plays = append(cardPlays(p, false, source, cards, d), NewPlay(End))
	}
	return plays
}
