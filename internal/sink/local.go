package sink

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hydralabs/forge/internal/schema"
)

// LocalSink writes batches to the local filesystem as CSV or JSON,
// splitting at RecordsPerFile and nesting partition keys hive-style:
// destination/key1=value1/key2=value2/part_N.ext.
type LocalSink struct{}

func (s *LocalSink) Write(ctx context.Context, batch *schema.Batch, destination string, opts Options) ([]string, error) {
	format := opts.Format
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	perFile := opts.RecordsPerFile
	if perFile <= 0 {
		perFile = DefaultRecordsPerFile
	}

	outDir := destination
	for _, p := range opts.Partitions {
		outDir = filepath.Join(outDir, fmt.Sprintf("%s=%s", p.Column, p.Value))
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var paths []string
	total := batch.Len()
	for part, offset := 0, 0; offset < total || part == 0; part, offset = part+1, offset+perFile {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		end := offset + perFile
		if end > total {
			end = total
		}
		path := filepath.Join(outDir, fmt.Sprintf("part_%d.%s", part, format))

		var err error
		if format == "csv" {
			err = writeCSV(path, batch, offset, end)
		} else {
			err = writeJSON(path, batch, offset, end)
		}
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)

		if total == 0 {
			break
		}
	}
	return paths, nil
}

func writeCSV(path string, batch *schema.Batch, from, to int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(batch.Names()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	record := make([]string, len(batch.Names()))
	for i := from; i < to; i++ {
		row := batch.Row(i)
		for j, name := range batch.Names() {
			record[j] = formatValue(row[name])
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, batch *schema.Batch, from, to int) error {
	rows := make([]map[string]any, 0, to-from)
	for i := from; i < to; i++ {
		row := batch.Row(i)
		for name, v := range row {
			row[name] = jsonValue(v)
		}
		rows = append(rows, row)
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
