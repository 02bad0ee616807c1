package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/hydralabs/forge/internal/config"
	"github.com/hydralabs/forge/internal/generator"
	"github.com/hydralabs/forge/internal/sink"
)

// resolveSeed turns the --seed flag into the run seed. Zero means pick one
// from the clock and tell the user so the run can be replayed.
func resolveSeed(flagSeed int64) int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	seed := time.Now().UnixNano()
	color.Cyan("🎲 Using seed %d (pass --seed %d to reproduce)", seed, seed)
	return seed
}

// newGenerator builds the engine from the project config tunables.
func newGenerator(cfg *config.Config) *generator.Generator {
	return generator.New(generator.Config{
		NullRate:    *cfg.Generation.NullRate,
		MaxAttempts: cfg.Generation.MaxAttempts,
		Oversample:  *cfg.Generation.Oversample,
	})
}

// resolveProvider picks the sink provider: the --sink flag wins, then the
// project config.
func resolveProvider(cfg *config.Config, flagProvider string) string {
	if flagProvider != "" {
		return flagProvider
	}
	return cfg.Sink.Provider
}

func isDatabaseProvider(provider string) bool {
	switch provider {
	case "postgresql", "postgres", "mysql", "sqlite", "sqlite3":
		return true
	}
	return false
}

// sinkDestination picks the destination handed to the sink. Filesystem
// sinks take a directory path; database sinks take a table name, where
// empty means the batch's own table. Joining a path for a database sink
// would end up inside the INSERT statement.
func sinkDestination(provider, outFlag, outputDir, table string) string {
	if isDatabaseProvider(provider) {
		return outFlag
	}
	if outFlag != "" {
		return outFlag
	}
	return filepath.Join(outputDir, table)
}

// openSink builds the sink for an already resolved provider, reading the
// database URL from the environment for database providers. Caller closes
// via closeSink.
func openSink(ctx context.Context, cfg *config.Config, provider string) (sink.Sink, error) {
	var dbURL string
	if isDatabaseProvider(provider) {
		url, err := cfg.GetDatabaseURL()
		if err != nil {
			return nil, err
		}
		dbURL = url
	}
	return sink.New(ctx, provider, dbURL)
}

func closeSink(s sink.Sink) {
	if closer, ok := s.(interface{ Close() error }); ok {
		closer.Close()
	}
}

// parseCounts parses --counts values of the form "users=100,orders=500".
func parseCounts(spec string) (map[string]int, error) {
	counts := make(map[string]int)
	if spec == "" {
		return counts, nil
	}
	for _, pair := range strings.Split(spec, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("invalid count %q, want table=N", pair)
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid row count for table %s: %q", name, value)
		}
		counts[name] = n
	}
	return counts, nil
}

// parseSpikes parses repeated --spike values of the form "2024-01-15=3.0".
func parseSpikes(specs []string) (map[string]float64, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	spikes := make(map[string]float64, len(specs))
	for _, s := range specs {
		date, value, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("invalid spike %q, want date=multiplier", s)
		}
		mult, err := strconv.ParseFloat(value, 64)
		if err != nil || mult < 0 {
			return nil, fmt.Errorf("invalid spike multiplier in %q", s)
		}
		spikes[date] = mult
	}
	return spikes, nil
}
