package sink

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestDatabaseSinkSQLite(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "forge_test.db")

	setup, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	_, err = setup.Exec(`CREATE TABLE events (event_id INTEGER, amount REAL, event_date TEXT, note TEXT, period TEXT)`)
	setup.Close()
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	s, err := NewDatabaseSink(ctx, "sqlite", dbPath)
	if err != nil {
		t.Fatalf("NewDatabaseSink failed: %v", err)
	}
	defer s.Close()

	opts := Options{
		RecordsPerFile: 2, // force multiple insert chunks
		Partitions:     []Partition{{Column: "period", Value: "2024-01-01"}},
	}
	if _, err := s.Write(ctx, testBatch(5), "", opts); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	check, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer check.Close()

	var count int
	if err := check.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 5 {
		t.Errorf("inserted %d rows, want 5", count)
	}

	var period string
	if err := check.QueryRow(`SELECT DISTINCT period FROM events`).Scan(&period); err != nil {
		t.Fatal(err)
	}
	if period != "2024-01-01" {
		t.Errorf("partition column = %q, want 2024-01-01", period)
	}
}

func TestDatabaseSinkUnknownProvider(t *testing.T) {
	if _, err := NewDatabaseSink(context.Background(), "oracle", ""); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestEmptyBatchWritesNothing(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "forge_test.db")

	setup, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	_, err = setup.Exec(`CREATE TABLE events (event_id INTEGER, amount REAL, event_date TEXT, note TEXT)`)
	setup.Close()
	if err != nil {
		t.Fatal(err)
	}

	s, err := NewDatabaseSink(ctx, "sqlite3", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, err := s.Write(ctx, testBatch(0), "", Options{}); err != nil {
		t.Fatalf("empty batch should be a no-op, got %v", err)
	}
}
