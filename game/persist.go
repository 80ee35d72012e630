package game

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Encode writes s as JSON.
func (s *State) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	return nil
}

// DecodeState reads a state written by Encode.
func DecodeState(r io.Reader) (*State, error) {
	s := &State{}
	if err := json.NewDecoder(r).Decode(s); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	if len(s.Players) < 1 {
		return nil, fmt.Errorf("state has no players")
	}
	if s.Result == nil {
		s.Result = map[string]Result{}
	}
	if s.History == nil {
		s.History = []Play{}
	}
	if s.NDecks == 0 {
		s.NDecks = CalcDecks(len(s.Players))
	}
	s.rehash()
	return s, nil
}

func SaveState(path string, s *State) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create state file: %w", err)
	}
	defer f.Close()
	return s.Encode(f)
}

func LoadState(path string) (*State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state file: %w", err)
	}
	defer f.Close()
	return DecodeState(f)
}
