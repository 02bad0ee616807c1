// Package sink is the output boundary: the engine hands it finished
// record batches and performs no other I/O.
package sink

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hydralabs/forge/internal/schema"
)

// Partition is one (column, value) pair of a partitioned destination.
// Order is significant: keys nest in declared order.
type Partition struct {
	Column string
	Value  string
}

type Options struct {
	// Format selects the file format for file-based sinks: "csv" or "json".
	Format string
	// Partitions nest the output under key=value path segments.
	Partitions []Partition
	// RecordsPerFile caps rows per written file; 0 means the default.
	RecordsPerFile int
}

const DefaultRecordsPerFile = 250

// Sink writes a batch to a destination and returns the paths or URIs it
// produced.
type Sink interface {
	Write(ctx context.Context, batch *schema.Batch, destination string, opts Options) ([]string, error)
}

// New builds a sink for the configured provider. databaseURL is ignored by
// the local sink.
func New(ctx context.Context, provider, databaseURL string) (Sink, error) {
	switch provider {
	case "", "local":
		return &LocalSink{}, nil
	case "postgresql", "postgres", "mysql", "sqlite", "sqlite3":
		return NewDatabaseSink(ctx, provider, databaseURL)
	default:
		return nil, fmt.Errorf("unknown sink provider: %s", provider)
	}
}

// formatValue renders a generated value for text output. Nulls become
// empty strings, dates ISO dates.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.Format("2006-01-02")
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// jsonValue renders a generated value for JSON output, keeping numerics
// numeric.
func jsonValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	return v
}
