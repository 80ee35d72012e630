// Package stats keeps the per-player results over many rounds. The share of
// rounds a player ended as shithead is the main measure of its strength.
package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/trachwo/masters-of-shithead-sub000/game"
)

// Counters marshal as [shithead_count, score, games, turns].
type Counters struct {
	Shithead int
	Score    int
	Games    int
	Turns    int
}

func (c Counters) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]int{c.Shithead, c.Score, c.Games, c.Turns})
}

func (c *Counters) UnmarshalJSON(data []byte) error {
	var v [4]int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Counters{Shithead: v[0], Score: v[1], Games: v[2], Turns: v[3]}
	return nil
}

// Statistics implements game.Observer: every player going out is counted.
type Statistics struct {
	table map[string]Counters
}

var _ game.Observer = (*Statistics)(nil)

func New() *Statistics {
	return &Statistics{table: make(map[string]Counters)}
}

// Update adds a round result. A score of 0 marks the shithead.
func (s *Statistics) Update(name string, score, turns int) {
	c := s.table[name]
	c.Score += score
	c.Turns += turns
	c.Games++
	if score == 0 {
		c.Shithead++
	}
	s.table[name] = c
}

func (s *Statistics) Set(name string, c Counters) {
	s.table[name] = c
}

func (s *Statistics) Get(name string) Counters {
	return s.table[name]
}

func (s *Statistics) Players() int {
	return len(s.table)
}

func (s *Statistics) PlayerOut(name string, score, turns int) {
	s.Update(name, score, turns)
}

func (s *Statistics) FaceUpStored(string, game.Deck) {}

// Merge adds the counters of other to s.
func (s *Statistics) Merge(other *Statistics) {
	for name, o := range other.table {
		c := s.table[name]
		c.Shithead += o.Shithead
		c.Score += o.Score
		c.Games += o.Games
		c.Turns += o.Turns
		s.table[name] = c
	}
}

type Row struct {
	Name string
	Counters
}

// ShitheadPercent is the share of games lost, in percent.
func (r Row) ShitheadPercent() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Shithead) / float64(r.Games) * 100
}

func (r Row) AvgTurns() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Turns) / float64(r.Games)
}

// Table returns the rows ordered by shithead count, best first. Equal
// counts are ordered by name.
func (s *Statistics) Table() []Row {
	rows := make([]Row, 0, len(s.table))
	for name, c := range s.table {
		rows = append(rows, Row{Name: name, Counters: c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Shithead != rows[j].Shithead {
			return rows[i].Shithead < rows[j].Shithead
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

var separator = "+" + strings.Join([]string{
	strings.Repeat("-", 20), strings.Repeat("-", 11), strings.Repeat("-", 8), strings.Repeat("-", 10),
	strings.Repeat("-", 10), strings.Repeat("-", 10), strings.Repeat("-", 12),
}, "+") + "+\n"

const rowFormat = "| %-19s|%10d |%6.1f%% |%9d |%9d |%9d |%11.2f |\n"

// Write renders the table as ASCII art. The total row counts the games of
// one player only, since every player takes part in every round.
func (s *Statistics) Write(w io.Writer) error {
	rows := s.Table()
	var total Row
	percent := 0.0
	var buf []byte
	buf = append(buf, separator...)
	buf = fmt.Appendf(buf, "| %-19s|%10s |%7s |%9s |%9s |%9s |%11s |\n",
		"Player", "Shithead", "%", "Score", "Games", "Turns", "Turns/Game")
	buf = append(buf, separator...)
	for _, r := range rows {
		buf = fmt.Appendf(buf, rowFormat, r.Name, r.Shithead, r.ShitheadPercent(), r.Score, r.Games, r.Turns, r.AvgTurns())
		total.Shithead += r.Shithead
		total.Score += r.Score
		total.Turns += r.Turns
		total.Games = r.Games
		percent += r.ShitheadPercent()
	}
	buf = append(buf, separator...)
	buf = fmt.Appendf(buf, rowFormat, strconv.Itoa(len(rows)), total.Shithead, percent, total.Score, total.Games, total.Turns, total.AvgTurns())
	buf = append(buf, separator...)
	_, err := w.Write(buf)
	return err
}

func (s *Statistics) Save(path string) error {
	data, err := json.MarshalIndent(s.table, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode statistics: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write statistics file: %w", err)
	}
	return nil
}

// Load reads the statistics from path. A missing or corrupt file is logged
// and leaves an empty table.
func Load(path string) *Statistics {
	s := New()
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Msgf("couldn't load file %s, continue with empty statistics: %v", path, err)
		return s
	}
	if err := json.Unmarshal(data, &s.table); err != nil {
		log.Warn().Msgf("couldn't parse file %s, continue with empty statistics: %v", path, err)
		return New()
	}
	if s.table == nil {
		s.table = make(map[string]Counters)
	}
	return s
}
