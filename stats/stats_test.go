package stats

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpdate(t *testing.T) {
	s := New()
	s.Update("alice", 2, 30)
	s.Update("alice", 0, 40)
	s.PlayerOut("bob", 1, 25)

	require.Equal(t, Counters{Shithead: 1, Score: 2, Games: 2, Turns: 70}, s.Get("alice"))
	require.Equal(t, Counters{Score: 1, Games: 1, Turns: 25}, s.Get("bob"))
	require.Equal(t, 2, s.Players())
	require.Equal(t, Counters{}, s.Get("carol"))
}

func TestMerge(t *testing.T) {
	s := New()
	s.Update("alice", 0, 30)
	other := New()
	other.Update("alice", 2, 20)
	other.Update("bob", 1, 25)

	s.Merge(other)

	require.Equal(t, Counters{Shithead: 1, Score: 2, Games: 2, Turns: 50}, s.Get("alice"))
	require.Equal(t, Counters{Score: 1, Games: 1, Turns: 25}, s.Get("bob"))
	require.Equal(t, Counters{Score: 1, Games: 1, Turns: 25}, other.Get("bob"), "other is unchanged")
}

func TestTable(t *testing.T) {
	s := New()
	s.Set("a", Counters{Shithead: 5, Score: 10, Games: 20, Turns: 400})
	s.Set("b", Counters{Shithead: 2, Score: 20, Games: 20, Turns: 380})
	s.Set("c", Counters{Shithead: 2, Score: 15, Games: 20, Turns: 390})

	rows := s.Table()

	require.Equal(t, []string{"b", "c", "a"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})
	require.InDelta(t, 25.0, rows[2].ShitheadPercent(), 1e-9)
	require.InDelta(t, 20.0, rows[2].AvgTurns(), 1e-9)
	require.Zero(t, Row{}.ShitheadPercent())

	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 9)
	for _, l := range lines {
		require.Equal(t, len([]rune(lines[0])), len([]rune(l)), "columns line up: %q", l)
	}
	require.Contains(t, lines[len(lines)-2], "|         9 |  45.0% |")
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	s := New()
	s.Update("alice", 0, 12)
	s.Update("bob", 1, 11)

	require.NoError(t, s.Save(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"alice": [`)

	loaded := Load(path)
	require.Equal(t, s.Table(), loaded.Table())

	t.Run("missing file", func(t *testing.T) {
		require.Zero(t, Load(filepath.Join(t.TempDir(), "none.json")).Players())
	})

	t.Run("corrupt file", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
		require.Zero(t, Load(bad).Players())
	})
}
