package experiments

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/trachwo/masters-of-shithead-sub000/experiments/metrics"
	"github.com/trachwo/masters-of-shithead-sub000/game"
	"github.com/trachwo/masters-of-shithead-sub000/searcher"
	"golang.org/x/exp/rand"
)

// Budget limits a single search. Episodes take precedence over Duration.
type Budget struct {
	ID       int
	Duration time.Duration
	Episodes int
	Cutoff   int
}

var Budgets = []Budget{
	{ID: 1, Duration: TimeBudget},
	{ID: 2, Duration: 10 * TimeBudget},
	{ID: 3, Duration: 100 * TimeBudget},
	{ID: 4, Duration: 10 * TimeBudget, Cutoff: 50},
}

type Throughput struct {
	Budget Budget
	metrics.SearchMetric
}

func (t Throughput) EpisodesPerSecond() float64 {
	if t.Duration <= 0 {
		return 0
	}
	return float64(t.Episodes) / t.Duration.Seconds()
}

// RunThroughput searches a resampled copy of state once per budget, each
// time from an empty tree, and reports how much search every budget buys.
func RunThroughput(state *game.State, budgets []Budget, seed uint64) []Throughput {
	r := rand.New(rand.NewSource(seed))
	results := make([]Throughput, 0, len(budgets))

	log.Info().Msg("starting throughput experiment...")
	for _, budget := range budgets {
		m := searcher.New(budgetOptions(budget, r.Uint64())...)
		sample := game.Resample(state, "", r)
		metric := m.RunSearch(sample)
		result := Throughput{Budget: budget, SearchMetric: metric}
		results = append(results, result)
		log.Info().Msgf("budget %d: %d episodes in %s (%.0f/s), %d nodes, %d full playouts",
			budget.ID, metric.Episodes, metric.Duration, result.EpisodesPerSecond(), metric.Nodes, metric.FullPlayouts)
	}
	log.Info().Msg("completed throughput experiment")
	return results
}

func budgetOptions(budget Budget, seed uint64) []searcher.Option {
	options := []searcher.Option{}

	if budget.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(budget.Episodes))
	}
	if budget.Duration > 0 {
		options = append(options, searcher.WithDuration(budget.Duration))
	}
	if budget.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(budget.Cutoff))
	}

	options = append(options, searcher.WithMetrics(), searcher.WithRand(rand.New(rand.NewSource(seed))))
	return options
}
