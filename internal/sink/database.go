package sink

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hydralabs/forge/internal/schema"
)

// DatabaseSink inserts batches into an existing table through database/sql.
// Partition keys become extra columns so partitioned temporal output stays
// queryable.
type DatabaseSink struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

func NewDatabaseSink(ctx context.Context, provider, url string) (*DatabaseSink, error) {
	var driverName string
	var placeholder squirrel.PlaceholderFormat = squirrel.Question
	switch provider {
	case "postgresql", "postgres":
		driverName = "pgx"
		placeholder = squirrel.Dollar
	case "mysql":
		driverName = "mysql"
	case "sqlite", "sqlite3":
		driverName = "sqlite3"
	default:
		return nil, fmt.Errorf("unknown database provider: %s", provider)
	}

	db, err := sql.Open(driverName, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DatabaseSink{
		db: db,
		qb: squirrel.StatementBuilder.PlaceholderFormat(placeholder),
	}, nil
}

func (s *DatabaseSink) Close() error {
	return s.db.Close()
}

// Write inserts the batch in chunks of RecordsPerFile rows, one multi-row
// INSERT per chunk. destination overrides the batch's table name when set.
func (s *DatabaseSink) Write(ctx context.Context, batch *schema.Batch, destination string, opts Options) ([]string, error) {
	table := destination
	if table == "" {
		table = batch.Table()
	}

	columns := append([]string{}, batch.Names()...)
	for _, p := range opts.Partitions {
		columns = append(columns, p.Column)
	}

	perChunk := opts.RecordsPerFile
	if perChunk <= 0 {
		perChunk = DefaultRecordsPerFile
	}

	total := batch.Len()
	for offset := 0; offset < total; offset += perChunk {
		end := offset + perChunk
		if end > total {
			end = total
		}

		insert := s.qb.Insert(table).Columns(columns...)
		for i := offset; i < end; i++ {
			row := batch.Row(i)
			values := make([]any, 0, len(columns))
			for _, name := range batch.Names() {
				values = append(values, driverValue(row[name]))
			}
			for _, p := range opts.Partitions {
				values = append(values, p.Value)
			}
			insert = insert.Values(values...)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build insert for %s: %w", table, err)
		}
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}

	return []string{table}, nil
}

func driverValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	return v
}
