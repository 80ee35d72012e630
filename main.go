package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/trachwo/masters-of-shithead-sub000/display"
	"github.com/trachwo/masters-of-shithead-sub000/engine"
	"github.com/trachwo/masters-of-shithead-sub000/experiments"
	"github.com/trachwo/masters-of-shithead-sub000/fuptable"
	"github.com/trachwo/masters-of-shithead-sub000/game"
	"github.com/trachwo/masters-of-shithead-sub000/meta"
	"github.com/trachwo/masters-of-shithead-sub000/player"
	"github.com/trachwo/masters-of-shithead-sub000/searcher"
	"github.com/trachwo/masters-of-shithead-sub000/stats"
)

const usage = `usage: shithead <command> [flags]

commands:
  play        play rounds, e.g. -players human,cheap,mcts
  eval        evaluate strategy lineups, e.g. -lineup take,mcts -lineup cheap,take
  endgame     replay an end game state, or generate some with -generate
  fup         generate the face up card lookup table
  throughput  measure the MCTS search throughput`

func main() {
	config := meta.Load()
	zerolog.SetGlobalLevel(config.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	args := os.Args[2:]
	switch os.Args[1] {
	case "play":
		err = runPlay(config, args)
	case "eval":
		err = runEval(config, args)
	case "endgame":
		err = runEndGame(args)
	case "fup":
		err = runFup(config, args)
	case "throughput":
		err = runThroughput(args)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", os.Args[1])
	}
}

// lineupFlags collects every -lineup flag.
type lineupFlags []experiments.Lineup

func (l *lineupFlags) String() string {
	parts := make([]string, len(*l))
	for i, lineup := range *l {
		parts[i] = strings.Join(lineup.Names(), ",")
	}
	return strings.Join(parts, " ")
}

func (l *lineupFlags) Set(value string) error {
	lineup, err := experiments.ParseLineup(len(*l)+1, value)
	if err != nil {
		return err
	}
	*l = append(*l, lineup)
	return nil
}

func seedOrClock(seed uint64) uint64 {
	if seed == 0 {
		return uint64(time.Now().UnixNano())
	}
	return seed
}

func runPlay(config meta.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	players := fs.String("players", "human,cheap,take", "Comma separated strategy kinds in seating order")
	names := fs.String("names", "", "Comma separated player names, defaults to numbered kinds")
	games := fs.Int("games", 1, "Number of rounds")
	level := fs.String("level", display.GameDisplay.String(), "Display level: one-line, game-display, perfect-memory, no-secrets or debugging")
	timeout := fs.Duration("timeout", config.MCTSTimeout, "Search time per MCTS decision")
	policy := fs.String("policy", config.MCTSPolicy, "MCTS best play policy: max or robust")
	seed := fs.Uint64("seed", 0, "Seed of the first round, 0 for the clock")
	fs.Parse(args)

	displayLevel, err := display.ParseLevel(*level)
	if err != nil {
		return err
	}
	bestPolicy, err := searcher.ParsePolicy(*policy)
	if err != nil {
		return err
	}
	kinds := strings.Split(*players, ",")
	var seatNames []string
	if *names != "" {
		seatNames = strings.Split(*names, ",")
		if len(seatNames) != len(kinds) {
			return fmt.Errorf("got %d names for %d players", len(seatNames), len(kinds))
		}
	}

	st := stats.Load(config.StatsFile)
	table := fuptable.Load(config.FupTableFile)
	first := seedOrClock(*seed)

	seats := make([]engine.Seat, len(kinds))
	human := ""
	for i, k := range kinds {
		kind, err := player.ParseKind(strings.TrimSpace(k))
		if err != nil {
			return err
		}
		name := fmt.Sprintf("%d-%s", i+1, kind)
		if seatNames != nil {
			name = strings.TrimSpace(seatNames[i])
		}
		strategy, err := player.New(kind, name, player.Options{
			FupTable: table,
			Seed:     first + uint64(i) + 1,
			Timeout:  *timeout,
			Policy:   bestPolicy,
		})
		if err != nil {
			return err
		}
		seats[i] = engine.Seat{Name: name, Strategy: strategy, Human: kind == player.HumanKind}
		if seats[i].Human && human == "" {
			human = name
		}
	}

	view := display.New(os.Stdout, displayLevel, display.WithViewer(human))
	session := engine.NewSession(seats, first, engine.WithObservers(st), engine.WithViewer(view))
	for i := 0; i < *games; i++ {
		outcome, _, _ := session.Next()
		if outcome.Aborted {
			log.Info().Msgf("round %d aborted", i+1)
			if quit(outcome.State) {
				break
			}
			continue
		}
		log.Info().Msgf("round %d: %s is the shithead", i+1, outcome.Loser)
	}

	if err := st.Write(os.Stdout); err != nil {
		return err
	}
	return st.Save(config.StatsFile)
}

func quit(s *game.State) bool {
	n := len(s.History)
	return n > 0 && s.History[n-1].Action == game.Quit
}

func runEval(config meta.Config, args []string) error {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	var lineups lineupFlags
	fs.Var(&lineups, "lineup", "Comma separated strategy kinds, repeat for more lineups")
	name := fs.String("name", "eval", "Experiment name")
	games := fs.Int("games", experiments.NumGames, "Evaluation games per lineup, every seat deals once per game")
	timeout := fs.Duration("timeout", experiments.TimeBudget, "Search time per MCTS decision")
	episodes := fs.Int("episodes", 0, "Search episodes per MCTS decision, overrides -timeout")
	policy := fs.String("policy", config.MCTSPolicy, "MCTS best play policy: max or robust")
	dir := fs.String("dir", "results", "Directory of the CSV results")
	parallel := fs.Int("parallel", 0, "Concurrent games, 0 for GOMAXPROCS")
	seed := fs.Uint64("seed", 0, "Seed, 0 for the clock")
	fs.Parse(args)

	if len(lineups) == 0 {
		return fmt.Errorf("at least one -lineup is required")
	}
	bestPolicy, err := searcher.ParsePolicy(*policy)
	if err != nil {
		return err
	}

	report, err := experiments.Run(*name, lineups, experiments.Config{
		Games:    *games,
		Timeout:  *timeout,
		Episodes: *episodes,
		Policy:   bestPolicy,
		FupTable: fuptable.Load(config.FupTableFile),
		Seed:     *seed,
		Dir:      *dir,
		Parallel: *parallel,
	})
	if err != nil {
		return err
	}
	for _, lineup := range lineups {
		fmt.Printf("lineup %d:\n", lineup.ID)
		if err := report.Stats[lineup.ID].Write(os.Stdout); err != nil {
			return err
		}
	}
	log.Info().Msgf("results stored in %s", report.Dir)
	return nil
}

func runEndGame(args []string) error {
	fs := flag.NewFlagSet("endgame", flag.ExitOnError)
	file := fs.String("file", "endgames/end_game_state_1.json", "End game state to replay")
	games := fs.Int("games", 100, "Number of replays")
	generate := fs.Int("generate", 0, "Generate this many end game states instead of replaying")
	players := fs.Int("players", 3, "Players of a generated end game")
	dir := fs.String("dir", "endgames", "Directory of generated end games")
	seed := fs.Uint64("seed", 0, "Seed, 0 for the clock")
	fs.Parse(args)

	if *generate > 0 {
		_, err := experiments.GenerateEndGames(*dir, *players, *generate, seedOrClock(*seed))
		return err
	}
	state, err := game.LoadState(*file)
	if err != nil {
		return err
	}
	return experiments.EndGame(state, *games, seedOrClock(*seed)).Write(os.Stdout)
}

func runFup(config meta.Config, args []string) error {
	fs := flag.NewFlagSet("fup", flag.ExitOnError)
	players := fs.Int("players", 3, "Number of players")
	games := fs.Int("games", 1000, "Number of rounds")
	file := fs.String("file", config.FupTableFile, "Face up table file, extended if it exists")
	seed := fs.Uint64("seed", 0, "Seed, 0 for the clock")
	fs.Parse(args)

	if *players < 2 {
		return fmt.Errorf("at least 2 players are required")
	}
	table := fuptable.Load(*file)
	st := stats.New()
	experiments.GenerateFupTable(table, st, *players, *games, seedOrClock(*seed))
	if err := st.Write(os.Stdout); err != nil {
		return err
	}
	return table.Save(*file)
}

func runThroughput(args []string) error {
	fs := flag.NewFlagSet("throughput", flag.ExitOnError)
	file := fs.String("file", "", "State to search from, a freshly dealt 2 player round if empty")
	seed := fs.Uint64("seed", 0, "Seed, 0 for the clock")
	fs.Parse(args)

	var state *game.State
	if *file != "" {
		var err error
		if state, err = game.LoadState(*file); err != nil {
			return err
		}
	} else {
		seats := []engine.Seat{{Name: "1-mcts"}, {Name: "2-mcts"}}
		state = engine.NewState(seats, -1, seedOrClock(*seed)).
			Apply(game.NewPlay(game.Shuffle)).
			Apply(game.NewPlay(game.Burn)).
			Apply(game.NewPlay(game.Deal))
	}
	for _, result := range experiments.RunThroughput(state, experiments.Budgets, seedOrClock(*seed)) {
		fmt.Printf("budget %d: %6d episodes %8.0f/s %6d nodes\n",
			result.Budget.ID, result.Episodes, result.EpisodesPerSecond(), result.Nodes)
	}
	return nil
}
