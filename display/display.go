// Package display renders states for the terminal. The level decides how
// much of the hidden cards is revealed.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/trachwo/masters-of-shithead-sub000/game"
)

type Level int

const (
	OneLine Level = iota
	GameDisplay   // what the human players can see
	PerfectMemory // plus every hand card that has been seen
	NoSecrets
	Debugging // state JSON
)

var levelNames = [...]string{"One Line", "Game Display", "Perfect Memory", "No Secrets", "Debugging"}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel accepts the level names ignoring case, with dashes or
// underscores in place of spaces.
func ParseLevel(name string) (Level, error) {
	normalized := strings.NewReplacer("-", " ", "_", " ").Replace(strings.ToLower(name))
	for i, n := range levelNames {
		if strings.ToLower(n) == normalized {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown display level %q", name)
}

const separator = "------------------------------------------------------------------------------"

type Option func(d *Display)

// WithProfile overrides the colour profile detected from the writer.
func WithProfile(p termenv.Profile) Option {
	return func(d *Display) {
		d.out = termenv.NewOutput(d.w, termenv.WithProfile(p))
	}
}

// WithViewer counts the unknown cards as seen by the named player. By
// default every unseen hand card is unknown.
func WithViewer(name string) Option {
	return func(d *Display) {
		d.viewer = name
	}
}

// Display implements engine.Viewer.
type Display struct {
	w      io.Writer
	out    *termenv.Output
	level  Level
	viewer string
}

func New(w io.Writer, level Level, options ...Option) *Display {
	d := &Display{w: w, out: termenv.NewOutput(w), level: level}
	for _, option := range options {
		option(d)
	}
	return d
}

func (d *Display) Show(_ game.Play, s *game.State) {
	fmt.Fprintln(d.out, d.Render(s))
}

func (d *Display) Render(s *game.State) string {
	turn := 0
	if s.Phase == game.PlayGame {
		turn = s.TurnCount
		// END already counts the next turn
		if s.LogAction == game.End.String() {
			turn--
		}
	}

	switch d.level {
	case OneLine:
		return d.oneLine(s, turn)
	case Debugging:
		var b strings.Builder
		b.WriteString(separator + "\n")
		if err := s.Encode(&b); err != nil {
			return fmt.Sprintf("failed to encode state: %v", err)
		}
		return strings.TrimRight(b.String(), "\n")
	default:
		return separator + "\n" + d.overview(s, turn)
	}
}

func direction(s *game.State) string {
	if s.NextDirection {
		return "↻"
	}
	return "↺"
}

func (d *Display) oneLine(s *game.State, turn int) string {
	width := 0
	for _, p := range s.Players {
		width = max(width, len(p.Name))
	}
	switch {
	case width > 15:
		width = 20
	case width > 10:
		width = 16
	default:
		width = 11
	}
	name := fmt.Sprintf("%-*s", width, s.LogPlayer+":")
	return fmt.Sprintf("%3d   %s   Talon:%3d   %s %-7s %-3s   Discard:%3d    %s",
		turn, direction(s), len(s.Talon), name, s.LogAction, d.paint(s.LogCard), len(s.Discard.Deck), d.paint(s.Discard.TopString()))
}

func (d *Display) overview(s *game.State, turn int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Turn:    %3d   %s   %s: %s %s\n", turn, direction(s), s.LogPlayer, s.LogAction, d.paint(s.LogCard))

	unknown := s.Unknown(d.viewer)
	if d.level == NoSecrets {
		fmt.Fprintf(&b, "Unknown: %3d   %s\n", len(unknown), d.paint(unknown.String()))
		fmt.Fprintf(&b, "Talon:   %3d   %s\n", len(s.Talon), d.paint(s.Talon.String()))
		fmt.Fprintf(&b, "Discard: %3d   %s\n", len(s.Discard.Deck), d.paint(s.Discard.Deck.String()))
	} else {
		fmt.Fprintf(&b, "Unknown: %3d   Talon:   %3d   Discard: %3d   %s\n",
			len(unknown), len(s.Talon), len(s.Discard.Deck), d.paint(s.Discard.TopString()))
	}

	for i, p := range s.Players {
		b.WriteString(d.marker(s, i))
		b.WriteString(d.paint(p.Format(d.visibility(p))))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (d *Display) visibility(p game.Player) game.Visibility {
	switch {
	case d.level == NoSecrets:
		return game.RevealAll
	case p.IsHuman:
		return game.RevealHand
	case d.level == PerfectMemory:
		return game.RevealSeen
	default:
		return game.HideAll
	}
}

func (d *Display) marker(s *game.State, i int) string {
	var text string
	switch {
	case i == s.Player && i == s.NextPlayer:
		text = "current/next ---> "
	case i == s.Player:
		text = "     current ---> "
	case i == s.NextPlayer:
		text = "        next ---> "
	default:
		return "                  "
	}
	return d.out.String(text).Bold().String()
}

// paint colours the red suits of every card in text.
func (d *Display) paint(text string) string {
	words := strings.Split(text, " ")
	for i, w := range words {
		if strings.HasSuffix(w, game.Diamonds.Symbol()) || strings.HasSuffix(w, game.Hearts.Symbol()) {
			words[i] = d.out.String(w).Foreground(d.out.Color("1")).String()
		}
	}
	return strings.Join(words, " ")
}
