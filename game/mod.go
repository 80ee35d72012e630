package game

import (
	"encoding/json"
	"fmt"
)

const (
	CardsPerPlayer = 17 // table cards, hand cards and about 8 draws
	CardsPerDeck   = 52
)

// StateHash identifies a state by the history of plays leading to it.
type StateHash uint64

type Phase int

const (
	SwappingCards Phase = iota
	FindStarter
	PlayGame
	ShitheadFound
	Aborted
)

var phaseNames = [...]string{"SWAPPING_CARDS", "FIND_STARTER", "PLAY_GAME", "SHITHEAD_FOUND", "ABORTED"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", p)
	}
	return phaseNames[p]
}

// Observer is told about eliminations and stored face up cards while a state
// is being advanced.
type Observer interface {
	PlayerOut(name string, score, turns int)
	FaceUpStored(name string, cards Deck)
}

// Result is a player's score and turn count of one round. It is persisted as
// a [score, turns] pair.
type Result struct {
	Score int
	Turns int
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{r.Score, r.Turns})
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	r.Score, r.Turns = pair[0], pair[1]
	return nil
}

// LogInfo is carried along with a state so that a loaded state keeps the
// logging configuration it was saved with.
type LogInfo struct {
	Level  string
	ToFile bool
	Debug  bool
	File   string
}

func (l LogInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{l.Level, l.ToFile, l.Debug, l.File})
}

func (l *LogInfo) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 4 {
		return fmt.Errorf("log info needs 4 entries, got %d", len(raw))
	}
	targets := []any{&l.Level, &l.ToFile, &l.Debug, &l.File}
	for i, target := range targets {
		if err := json.Unmarshal(raw[i], target); err != nil {
			return err
		}
	}
	return nil
}
