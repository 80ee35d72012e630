package experiments

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/trachwo/masters-of-shithead-sub000/engine"
	"github.com/trachwo/masters-of-shithead-sub000/experiments/metrics"
	"github.com/trachwo/masters-of-shithead-sub000/fuptable"
	"github.com/trachwo/masters-of-shithead-sub000/game"
	"github.com/trachwo/masters-of-shithead-sub000/player"
	"github.com/trachwo/masters-of-shithead-sub000/searcher"
	"github.com/trachwo/masters-of-shithead-sub000/stats"
	"golang.org/x/sync/errgroup"
)

const (
	NumGames   = 30 // Per lineup
	TimeBudget = 10 * time.Millisecond
)

// Lineup is the strategy kind of every seat, in seating order.
type Lineup struct {
	ID    int
	Kinds []player.Kind
}

// ParseLineup reads a comma separated list of strategy kinds.
func ParseLineup(id int, text string) (Lineup, error) {
	lineup := Lineup{ID: id}
	for _, name := range strings.Split(text, ",") {
		kind, err := player.ParseKind(strings.TrimSpace(name))
		if err != nil {
			return Lineup{}, err
		}
		if kind == player.HumanKind {
			return Lineup{}, fmt.Errorf("human players cannot be evaluated")
		}
		lineup.Kinds = append(lineup.Kinds, kind)
	}
	if len(lineup.Kinds) < 2 {
		return Lineup{}, fmt.Errorf("lineup %q needs at least 2 players", text)
	}
	return lineup, nil
}

// Names are the seat names of the lineup, e.g. "1-take".
func (l Lineup) Names() []string {
	names := make([]string, len(l.Kinds))
	for i, kind := range l.Kinds {
		names[i] = fmt.Sprintf("%d-%s", i+1, kind)
	}
	return names
}

func (l Lineup) record() metrics.Lineup {
	kinds := make([]string, len(l.Kinds))
	for i, kind := range l.Kinds {
		kinds[i] = string(kind)
	}
	return metrics.Lineup{ID: l.ID, Kinds: kinds}
}

type Config struct {
	Games    int // evaluation games per lineup, NumGames if 0
	Timeout  time.Duration
	Episodes int
	Policy   searcher.Policy
	FupTable *fuptable.Table // read only, shared by all games
	Seed     uint64          // 0 seeds from the clock
	Dir      string          // root of the results, no files if empty
	Parallel int             // concurrent games, GOMAXPROCS if 0
}

// Report holds the results of Run.
type Report struct {
	Dir   string
	Stats map[int]*stats.Statistics // by lineup ID
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

// evaluation is a single evaluation game: the same shuffled talon is dealt
// once by every seat.
type evaluation struct {
	lineup Lineup
	stats  *stats.Statistics
	games  []metrics.GameMetric
	moves  [][]metrics.MoveMetric
}

// Run plays cfg.Games evaluation games for every lineup, several at a
// time, and writes lineups.csv, game_records.csv and move_records.csv below
// cfg.Dir/name.
func Run(name string, lineups []Lineup, cfg Config) (*Report, error) {
	if cfg.Games <= 0 {
		cfg.Games = NumGames
	}
	if cfg.Parallel <= 0 {
		cfg.Parallel = runtime.GOMAXPROCS(0)
	}
	if cfg.Timeout <= 0 && cfg.Episodes <= 0 {
		cfg.Timeout = TimeBudget
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	log.Info().Msgf("starting %s experiment with %d lineups...", name, len(lineups))

	evaluations := make([]evaluation, len(lineups)*cfg.Games)
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(cfg.Parallel)
	for i, lineup := range lineups {
		for j := 0; j < cfg.Games; j++ {
			k := i*cfg.Games + j
			seed := cfg.Seed + uint64(k)*1000
			g.Go(func() error {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				e, err := evaluate(lineup, cfg, seed)
				if err != nil {
					return err
				}
				evaluations[k] = e
				log.Debug().Msgf("completed game %d of lineup %d", j+1, lineup.ID)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := collect(lineups, evaluations)
	log.Info().Msgf("completed %s experiment: %d rounds", name, len(report.Games))
	for _, lineup := range lineups {
		log.Info().Msgf("lineup %d: %s", lineup.ID, strings.Join(lineup.Names(), " vs "))
	}

	if cfg.Dir == "" {
		return report, nil
	}
	if err := write(report, cfg.Dir, name, lineups); err != nil {
		return nil, err
	}
	return report, nil
}

func evaluate(lineup Lineup, cfg Config, seed uint64) (evaluation, error) {
	e := evaluation{lineup: lineup, stats: stats.New()}
	names := lineup.Names()
	seats := make([]engine.Seat, len(names))
	for i, name := range names {
		seats[i] = engine.Seat{Name: name}
	}
	dealt := engine.NewState(seats, -1, seed).
		Apply(game.NewPlay(game.Shuffle)).
		Apply(game.NewPlay(game.Burn))

	for dealer := range seats {
		for i, kind := range lineup.Kinds {
			strategy, err := player.New(kind, names[i], player.Options{
				FupTable:        cfg.FupTable,
				FaceDownInOrder: true,
				Seed:            seed + uint64(dealer*len(seats)+i+1),
				Timeout:         cfg.Timeout,
				Episodes:        cfg.Episodes,
				Policy:          cfg.Policy,
			})
			if err != nil {
				return evaluation{}, fmt.Errorf("failed to create strategy: %w", err)
			}
			seats[i].Strategy = strategy
		}
		state := dealt.Apply(game.CardPlay(game.Dealer, dealer))
		_, gameMetric, moveMetrics := engine.NewRound(seats, state, engine.WithObservers(e.stats)).Run()
		e.games = append(e.games, gameMetric)
		e.moves = append(e.moves, moveMetrics)
	}
	return e, nil
}

// collect numbers the rounds in lineup order and merges the statistics.
func collect(lineups []Lineup, evaluations []evaluation) *Report {
	report := &Report{Stats: make(map[int]*stats.Statistics, len(lineups))}
	for _, lineup := range lineups {
		report.Stats[lineup.ID] = stats.New()
	}
	count := 0
	for _, e := range evaluations {
		report.Stats[e.lineup.ID].Merge(e.stats)
		for i, gameMetric := range e.games {
			count++
			report.Games = append(report.Games, metrics.GameRecord{
				ID:         count,
				Lineup:     e.lineup.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range e.moves[i] {
				report.Moves = append(report.Moves, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}
		}
	}
	return report
}

func write(report *Report, root, name string, lineups []Lineup) error {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	report.Dir = writer.Dir()

	records := make([]metrics.Lineup, len(lineups))
	for i, lineup := range lineups {
		records[i] = lineup.record()
	}
	if err := writer.WriteLineups(records); err != nil {
		return err
	}
	if err := writer.WriteGameRecords(report.Games); err != nil {
		return err
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(report.Moves); err != nil {
		return err
	}
	log.Info().Msg("stored move records")
	return nil
}

// GenerateFupTable plays games rounds between players cheap strategies and
// scores the face up cards each of them chooses. The strategies choose
// randomly, not from table.
func GenerateFupTable(table *fuptable.Table, st *stats.Statistics, players, games int, seed uint64) {
	seats := make([]engine.Seat, players)
	for i := range seats {
		name := fmt.Sprintf("%d-%s", i+1, player.CheapKind)
		strategy, err := player.New(player.CheapKind, name, player.Options{Seed: seed + uint64(i) + 1})
		if err != nil {
			panic(fmt.Sprintf("failed to create strategy: %v", err))
		}
		seats[i] = engine.Seat{Name: name, Strategy: strategy}
	}

	session := engine.NewSession(seats, seed, engine.WithObservers(table, st))
	aborted := 0
	for i := 0; i < games; i++ {
		outcome, _, _ := session.Next()
		if outcome.Aborted {
			aborted++
		}
		if (i+1)%100 == 0 {
			log.Info().Msgf("played %d of %d rounds, %d combinations", i+1, games, table.Len())
		}
	}
	log.Info().Msgf("generated face up table with %d combinations from %d rounds (%d aborted)", table.Len(), games, aborted)
}

// GenerateEndGames plays rounds between take strategies until only 2
// players are left and saves these states as end_game_state_<i>.json in
// dir. It returns the saved paths.
func GenerateEndGames(dir string, players, count int, seed uint64) ([]string, error) {
	if players < 3 {
		return nil, fmt.Errorf("end games need at least 3 players, got %d", players)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	twoLeft := func(s *game.State) bool { return len(s.Players) == 2 }
	var paths []string
	for round := 0; len(paths) < count && round < count*10; round++ {
		seats := make([]engine.Seat, players)
		for i := range seats {
			name := fmt.Sprintf("%d-%s", i+1, player.TakeKind)
			strategy, err := player.New(player.TakeKind, name, player.Options{Seed: seed + uint64(round*players+i) + 1})
			if err != nil {
				return nil, fmt.Errorf("failed to create strategy: %w", err)
			}
			seats[i] = engine.Seat{Name: name, Strategy: strategy}
		}
		state := engine.NewState(seats, -1, seed+uint64(round))
		outcome, _, _ := engine.NewRound(seats, state, engine.WithStopWhen(twoLeft)).Run()
		if !outcome.Stopped {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("end_game_state_%d.json", len(paths)+1))
		if err := game.SaveState(path, outcome.State); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	log.Info().Msgf("saved %d end games to %s", len(paths), dir)
	return paths, nil
}

// EndGame plays the saved state games times between random strategies. The
// result of each replay only depends on the decisions, the state itself is
// never reshuffled.
func EndGame(state *game.State, games int, seed uint64) *stats.Statistics {
	st := stats.New()
	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < games; i++ {
		g.Go(func() error {
			local := stats.New()
			seats := make([]engine.Seat, len(state.Players))
			for j, p := range state.Players {
				strategy, err := player.New(player.RandomKind, p.Name, player.Options{Seed: seed + uint64(i*len(seats)+j) + 1})
				if err != nil {
					return err
				}
				seats[j] = engine.Seat{Name: p.Name, Strategy: strategy}
			}
			engine.NewRound(seats, state.Copy(), engine.WithObservers(local)).Run()
			mu.Lock()
			st.Merge(local)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(fmt.Sprintf("failed to replay end game: %v", err))
	}
	return st
}
