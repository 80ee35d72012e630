// meta/meta.go
package meta

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MaxTurnsPerPlayer caps a round at this many turns per player before it is
// aborted.
const MaxTurnsPerPlayer = 100

// SimulationsPerPlay defines the number of resampled rollouts per legal play.
const SimulationsPerPlay = 30

// MCTSTimeout defines the default search time per MCTS decision.
const MCTSTimeout = time.Second

// MCTSPolicy defines the default best play policy.
const MCTSPolicy = "max"

// ExploreParam defines the default UCB1 exploration constant.
const ExploreParam = 2.0

const StatsFile = "stats.json"

const FupTableFile = "fup_lookup.json"

// Environment variables read by Load.
const (
	EnvLogLevel     = "SHITHEAD_LOG_LEVEL"
	EnvMCTSTimeout  = "SHITHEAD_MCTS_TIMEOUT"
	EnvMCTSPolicy   = "SHITHEAD_MCTS_POLICY"
	EnvStatsFile    = "SHITHEAD_STATS_FILE"
	EnvFupTableFile = "SHITHEAD_FUP_TABLE_FILE"
)

type Config struct {
	LogLevel     zerolog.Level
	MCTSTimeout  time.Duration
	MCTSPolicy   string
	StatsFile    string
	FupTableFile string
}

func Default() Config {
	return Config{
		LogLevel:     zerolog.InfoLevel,
		MCTSTimeout:  MCTSTimeout,
		MCTSPolicy:   MCTSPolicy,
		StatsFile:    StatsFile,
		FupTableFile: FupTableFile,
	}
}

// Load reads the given dotenv files (".env" if none) into the environment
// and returns the defaults overridden by the environment. Missing files and
// malformed values are logged and ignored.
func Load(files ...string) Config {
	if err := godotenv.Load(files...); err != nil {
		log.Debug().Msgf("no dotenv file loaded: %v", err)
	}

	config := Default()
	if v := os.Getenv(EnvLogLevel); v != "" {
		level, err := zerolog.ParseLevel(v)
		if err != nil {
			log.Warn().Msgf("invalid %s %q: %v", EnvLogLevel, v, err)
		} else {
			config.LogLevel = level
		}
	}
	if v := os.Getenv(EnvMCTSTimeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil || timeout <= 0 {
			log.Warn().Msgf("invalid %s %q", EnvMCTSTimeout, v)
		} else {
			config.MCTSTimeout = timeout
		}
	}
	if v := os.Getenv(EnvMCTSPolicy); v != "" {
		if v != "max" && v != "robust" {
			log.Warn().Msgf("invalid %s %q, want max or robust", EnvMCTSPolicy, v)
		} else {
			config.MCTSPolicy = v
		}
	}
	if v := os.Getenv(EnvStatsFile); v != "" {
		config.StatsFile = v
	}
	if v := os.Getenv(EnvFupTableFile); v != "" {
		config.FupTableFile = v
	}
	return config
}
