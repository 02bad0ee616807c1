package schema

import (
	"strings"
	"testing"
)

const sampleCSV = `user_id,score,email,signup_date,notes
1,9.5,a@example.com,2024-01-02,hello
2,7.25,b@example.com,2024-02-10,
3,8.0,c@example.com,2024-03-05,world
`

func TestInferTypes(t *testing.T) {
	table, err := Infer("users", strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}

	want := map[string]FieldType{
		"user_id":     FieldInteger,
		"score":       FieldFloat,
		"email":       FieldString,
		"signup_date": FieldDate,
		"notes":       FieldString,
	}
	for name, wantType := range want {
		col, ok := table.Column(name)
		if !ok {
			t.Fatalf("missing column %s", name)
		}
		if col.Type != wantType {
			t.Errorf("column %s inferred as %s, want %s", name, col.Type, wantType)
		}
	}
}

func TestInferNullable(t *testing.T) {
	table, err := Infer("users", strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	notes, _ := table.Column("notes")
	if !notes.Nullable {
		t.Error("notes column saw an empty cell, should be nullable")
	}
	email, _ := table.Column("email")
	if email.Nullable {
		t.Error("email column has no empty cells, should not be nullable")
	}
}

func TestInferStats(t *testing.T) {
	table, err := Infer("users", strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	score, _ := table.Column("score")
	if score.Stats == nil {
		t.Fatal("numeric column should carry stats")
	}
	if score.Stats.Min != 7.25 || score.Stats.Max != 9.5 {
		t.Errorf("score stats = %+v, want min 7.25 max 9.5", score.Stats)
	}
	notes, _ := table.Column("notes")
	if notes.Stats != nil {
		t.Error("string column should not carry stats")
	}
}

func TestInferEmptySample(t *testing.T) {
	if _, err := Infer("empty", strings.NewReader("a,b\n")); err == nil {
		t.Fatal("expected error for sample without data rows")
	}
}
