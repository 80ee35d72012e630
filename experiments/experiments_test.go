package experiments

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trachwo/masters-of-shithead-sub000/engine"
	"github.com/trachwo/masters-of-shithead-sub000/fuptable"
	"github.com/trachwo/masters-of-shithead-sub000/game"
	"github.com/trachwo/masters-of-shithead-sub000/player"
	"github.com/trachwo/masters-of-shithead-sub000/stats"
)

func TestParseLineup(t *testing.T) {
	lineup, err := ParseLineup(3, "take, cheap,random")
	require.NoError(t, err)
	require.Equal(t, Lineup{ID: 3, Kinds: []player.Kind{player.TakeKind, player.CheapKind, player.RandomKind}}, lineup)
	require.Equal(t, []string{"1-take", "2-cheap", "3-random"}, lineup.Names())

	for _, text := range []string{"take", "take,human", "take,nope"} {
		_, err := ParseLineup(1, text)
		require.Error(t, err, "lineup %q", text)
	}
}

func TestRun(t *testing.T) {
	lineups := []Lineup{
		{ID: 1, Kinds: []player.Kind{player.TakeKind, player.CheapKind}},
		{ID: 2, Kinds: []player.Kind{player.RandomKind, player.CheapKind, player.TakeKind}},
	}
	cfg := Config{Games: 2, Seed: 7, Dir: t.TempDir(), Parallel: 2}

	report, err := Run("lineups", lineups, cfg)

	require.NoError(t, err)
	require.Len(t, report.Games, 2*2+2*3, "every seat deals once per game")
	require.Empty(t, report.Moves, "rule based strategies do not search")
	for i, record := range report.Games {
		require.Equal(t, i+1, record.ID)
	}
	require.Equal(t, 1, report.Games[0].Lineup)
	require.Equal(t, 2, report.Games[len(report.Games)-1].Lineup)

	for _, lineup := range lineups {
		st := report.Stats[lineup.ID]
		finished := 0
		for _, record := range report.Games {
			if record.Lineup == lineup.ID && !record.Aborted {
				finished++
			}
		}
		shitheads := 0
		for _, row := range st.Table() {
			require.Contains(t, lineup.Names(), row.Name)
			require.Equal(t, finished, row.Games)
			shitheads += row.Shithead
		}
		require.Equal(t, finished, shitheads)
	}

	require.True(t, strings.HasPrefix(report.Dir, filepath.Join(cfg.Dir, "lineups")))
	data, err := os.ReadFile(filepath.Join(report.Dir, "lineups.csv"))
	require.NoError(t, err)
	require.Equal(t, "id,kinds\n1,take;cheap\n2,random;cheap;take\n", string(data))
	data, err = os.ReadFile(filepath.Join(report.Dir, "game_records.csv"))
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 1+len(report.Games))
	require.FileExists(t, filepath.Join(report.Dir, "move_records.csv"))
}

func TestRunWithoutFiles(t *testing.T) {
	lineups := []Lineup{{ID: 1, Kinds: []player.Kind{player.CheapKind, player.CheapKind}}}

	report, err := Run("nofiles", lineups, Config{Games: 1, Seed: 3})

	require.NoError(t, err)
	require.Empty(t, report.Dir)
	require.Len(t, report.Games, 2)
}

func TestGenerateFupTable(t *testing.T) {
	table := fuptable.New()
	st := stats.New()

	GenerateFupTable(table, st, 3, 5, 11)

	_, games := table.Totals()
	played := 0
	for _, row := range st.Table() {
		played += row.Games
	}
	require.Equal(t, played, games, "every scored player stored its face up cards")
	if played > 0 {
		require.Positive(t, table.Len())
	}
}

func TestEndGames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "endgames")

	paths, err := GenerateEndGames(dir, 3, 2, 5)

	require.NoError(t, err)
	require.NotEmpty(t, paths)
	for i, path := range paths {
		require.Equal(t, filepath.Join(dir, "end_game_state_"+string(rune('1'+i))+".json"), path)
	}

	state, err := game.LoadState(paths[0])
	require.NoError(t, err)
	require.Len(t, state.Players, 2)
	require.False(t, state.IsOver())

	st := EndGame(state, 4, 9)

	require.LessOrEqual(t, st.Players(), 2)
	shitheads := 0
	for _, row := range st.Table() {
		require.GreaterOrEqual(t, state.PlayerIndex(row.Name), 0, "%s is still playing", row.Name)
		require.LessOrEqual(t, row.Games, 4)
		shitheads += row.Shithead
	}
	require.LessOrEqual(t, shitheads, 4)
	require.Len(t, state.Players, 2, "the loaded state is not modified")

	t.Run("too few players", func(t *testing.T) {
		_, err := GenerateEndGames(dir, 2, 1, 5)
		require.Error(t, err)
	})
}

func TestRunThroughput(t *testing.T) {
	seats := []engine.Seat{{Name: "a"}, {Name: "b"}}
	state := engine.NewState(seats, 0, 13).
		Apply(game.NewPlay(game.Shuffle)).
		Apply(game.NewPlay(game.Burn)).
		Apply(game.NewPlay(game.Deal))
	budgets := []Budget{{ID: 1, Episodes: 20}, {ID: 2, Episodes: 30, Cutoff: 10}}

	results := RunThroughput(state, budgets, 3)

	require.Len(t, results, 2)
	for i, result := range results {
		require.Equal(t, budgets[i], result.Budget)
		require.GreaterOrEqual(t, result.Episodes, budgets[i].Episodes)
		require.Positive(t, result.Nodes)
		require.True(t, result.IsTreeReset, "every budget starts from an empty tree")
	}
	require.Equal(t, 10, results[1].Cutoff)
	require.Equal(t, 2*100, results[0].Cutoff)
	require.Zero(t, Throughput{}.EpisodesPerSecond())
}
