// Package fuptable learns which face up cards are worth keeping on the
// table. Rounds with randomly chosen face up cards are scored per 3-card
// rank combination, and the average decides the best swap.
package fuptable

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/trachwo/masters-of-shithead-sub000/game"
)

// Entry marshals as [total, games, average].
type Entry struct {
	Total   int
	Games   int
	Average float64
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Total, e.Games, e.Average})
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var v [3]float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*e = Entry{Total: int(v[0]), Games: int(v[1]), Average: v[2]}
	return nil
}

// Table maps a combination key like "4-10-A" to its scores. It implements
// game.Observer: stored face up cards are remembered per player and scored
// once the player goes out.
type Table struct {
	entries map[string]Entry
	pending map[string]string
}

var _ game.Observer = (*Table)(nil)

func New() *Table {
	return &Table{entries: make(map[string]Entry), pending: make(map[string]string)}
}

// Key returns the suit independent key of a card combination.
func Key(cards game.Deck) string {
	sorted := cards.Copy()
	sorted.Sort()
	ranks := make([]string, len(sorted))
	for i, c := range sorted {
		ranks[i] = c.Rank.String()
	}
	return strings.Join(ranks, "-")
}

// Store remembers the face up cards a player starts with.
func (t *Table) Store(name string, cards game.Deck) {
	t.pending[name] = Key(cards)
}

// Score enters the result of a player for its stored face up cards.
func (t *Table) Score(name string, score int) {
	key, ok := t.pending[name]
	if !ok {
		log.Debug().Msgf("no face up cards stored for %s", name)
		return
	}
	delete(t.pending, name)
	e := t.entries[key]
	e.Total += score
	e.Games++
	e.Average = float64(e.Total) / float64(e.Games)
	t.entries[key] = e
}

// Get returns the average score of a combination, 0 when it is unknown.
func (t *Table) Get(cards game.Deck) float64 {
	return t.entries[Key(cards)].Average
}

func (t *Table) Entry(key string) (Entry, bool) {
	e, ok := t.entries[key]
	return e, ok
}

func (t *Table) Len() int {
	return len(t.entries)
}

func (t *Table) PlayerOut(name string, score, _ int) {
	t.Score(name, score)
}

func (t *Table) FaceUpStored(name string, cards game.Deck) {
	t.Store(name, cards)
}

// FindBest returns the 3-card combination of cards with the best average.
// The cards are sorted first, and of equal averages the first combination
// in index order wins.
func (t *Table) FindBest(cards game.Deck) game.Deck {
	sorted := cards.Copy()
	sorted.Sort()
	var best game.Deck
	bestScore := -1.0
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			for k := j + 1; k < len(sorted); k++ {
				combo := game.Deck{sorted[i], sorted[j], sorted[k]}
				if score := t.Get(combo); score > bestScore {
					best, bestScore = combo, score
				}
			}
		}
	}
	return best
}

// Totals sums the scores and games over all combinations.
func (t *Table) Totals() (total, games int) {
	for _, e := range t.entries {
		total += e.Total
		games += e.Games
	}
	return total, games
}

type row struct {
	key string
	Entry
}

func (t *Table) sorted() []row {
	rows := make([]row, 0, len(t.entries))
	for k, e := range t.entries {
		rows = append(rows, row{k, e})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Average != rows[j].Average {
			return rows[i].Average > rows[j].Average
		}
		return rows[i].key < rows[j].key
	})
	return rows
}

const separator = "+----------+----------+----------+----------+\n"

// Write renders the table ordered by average, best first.
func (t *Table) Write(w io.Writer) error {
	var buf []byte
	buf = append(buf, separator...)
	buf = append(buf, "| Cards    |    Total |    Games |  Average |\n"...)
	buf = append(buf, separator...)
	rows := t.sorted()
	for _, r := range rows {
		buf = fmt.Appendf(buf, "| %-9s|%9d |%9d |%9.2f |\n", r.key, r.Total, r.Games, r.Average)
	}
	total, games := t.Totals()
	avg := 0.0
	if games > 0 {
		avg = float64(total) / float64(games)
	}
	buf = append(buf, separator...)
	buf = fmt.Appendf(buf, "| %-9d|%9d |%9d |%9.2f |\n", len(rows), total, games, avg)
	buf = append(buf, separator...)
	_, err := w.Write(buf)
	return err
}

func (t *Table) Save(path string) error {
	data, err := json.MarshalIndent(t.entries, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode face up table: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write face up table: %w", err)
	}
	return nil
}

// Load reads a table from path. A missing or corrupt file is logged and
// leaves an empty table.
func Load(path string) *Table {
	t := New()
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Msgf("couldn't load file %s, continue with empty face up table", path)
		return t
	}
	if err := json.Unmarshal(data, &t.entries); err != nil {
		log.Warn().Msgf("couldn't parse file %s, continue with empty face up table: %v", path, err)
		return New()
	}
	if t.entries == nil {
		t.entries = make(map[string]Entry)
	}
	return t
}
