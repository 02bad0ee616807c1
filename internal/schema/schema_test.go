package schema

import (
	"errors"
	"strings"
	"testing"
)

func validTable() *Table {
	return &Table{
		Name: "users",
		Columns: []Column{
			{Name: "user_id", Type: FieldInteger},
			{Name: "email", Type: FieldString, Nullable: true},
			{Name: "signup_date", Type: FieldDate},
		},
	}
}

func TestValidate(t *testing.T) {
	if err := validTable().Validate(); err != nil {
		t.Fatalf("expected valid table, got %v", err)
	}
}

func TestValidateDuplicateColumn(t *testing.T) {
	table := validTable()
	table.Columns = append(table.Columns, Column{Name: "email", Type: FieldString})
	err := table.Validate()
	if err == nil {
		t.Fatal("expected error for duplicate column")
	}
	if !strings.Contains(err.Error(), "duplicate column email") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateUnknownType(t *testing.T) {
	table := validTable()
	table.Columns[0].Type = "decimal128"
	err := table.Validate()
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Column != "user_id" || schemaErr.Type != "decimal128" {
		t.Errorf("unexpected error detail: %+v", schemaErr)
	}
}

func TestValidateForeignKeyColumn(t *testing.T) {
	table := validTable()
	table.ForeignKeys = []ForeignKey{{Column: "missing", RefTable: "accounts", RefColumn: "id"}}
	if err := table.Validate(); err == nil {
		t.Fatal("expected error for foreign key on unknown column")
	}
}

func TestColumnNamesOrder(t *testing.T) {
	names := validTable().ColumnNames()
	want := []string{"user_id", "email", "signup_date"}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestBatchRows(t *testing.T) {
	batch := NewBatch("users", []string{"a", "b"})
	batch.AppendRow(map[string]any{"a": int64(1), "b": "x"})
	batch.AppendRow(map[string]any{"a": int64(2)})

	if batch.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", batch.Len())
	}
	row := batch.Row(1)
	if row["a"] != int64(2) {
		t.Errorf("row[a] = %v, want 2", row["a"])
	}
	if row["b"] != nil {
		t.Errorf("missing key should append null, got %v", row["b"])
	}
}
