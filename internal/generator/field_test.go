package generator

import (
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/hydralabs/forge/internal/schema"
)

func newRng(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestFieldDeterminism(t *testing.T) {
	gen := New(DefaultConfig())
	col := schema.Column{Name: "email", Type: schema.FieldString}

	a, err := gen.Field(col, 50, newRng(42))
	if err != nil {
		t.Fatalf("Field failed: %v", err)
	}
	b, err := gen.Field(col, 50, newRng(42))
	if err != nil {
		t.Fatalf("Field failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different values")
	}
}

func TestFieldNonNullableNeverNull(t *testing.T) {
	gen := New(DefaultConfig())
	col := schema.Column{Name: "user_id", Type: schema.FieldInteger}

	values, err := gen.Field(col, 500, newRng(1))
	if err != nil {
		t.Fatalf("Field failed: %v", err)
	}
	for i, v := range values {
		if v == nil {
			t.Fatalf("non-nullable column emitted null at index %d", i)
		}
	}
}

func TestFieldNullableEmitsNulls(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NullRate = 0.5
	gen := New(cfg)
	col := schema.Column{Name: "notes", Type: schema.FieldString, Nullable: true}

	values, err := gen.Field(col, 500, newRng(1))
	if err != nil {
		t.Fatalf("Field failed: %v", err)
	}
	nulls := 0
	for _, v := range values {
		if v == nil {
			nulls++
		}
	}
	if nulls == 0 {
		t.Error("nullable column with 0.5 null rate produced no nulls in 500 rows")
	}
}

func TestFieldZeroNullRate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NullRate = 0
	gen := New(cfg)
	col := schema.Column{Name: "notes", Type: schema.FieldString, Nullable: true}

	values, err := gen.Field(col, 500, newRng(1))
	if err != nil {
		t.Fatalf("Field failed: %v", err)
	}
	for i, v := range values {
		if v == nil {
			t.Fatalf("null rate 0 still emitted null at index %d", i)
		}
	}
}

func TestFieldIntegerStatsRange(t *testing.T) {
	gen := New(DefaultConfig())
	col := schema.Column{
		Name:  "age",
		Type:  schema.FieldInteger,
		Stats: &schema.Stats{Min: 18, Max: 65, Mean: 40},
	}

	values, err := gen.Field(col, 300, newRng(7))
	if err != nil {
		t.Fatalf("Field failed: %v", err)
	}
	for _, v := range values {
		age := v.(int64)
		if age < 18 || age > 65 {
			t.Fatalf("value %d outside sample range [18, 65]", age)
		}
	}
}

func TestFieldFloatStatsRange(t *testing.T) {
	gen := New(DefaultConfig())
	col := schema.Column{
		Name:  "price",
		Type:  schema.FieldFloat,
		Stats: &schema.Stats{Min: 10, Max: 20, Mean: 15},
	}

	values, err := gen.Field(col, 300, newRng(7))
	if err != nil {
		t.Fatalf("Field failed: %v", err)
	}
	for _, v := range values {
		price := v.(float64)
		if price < 10 || price > 20 {
			t.Fatalf("value %f outside sample range [10, 20]", price)
		}
	}
}

func TestFieldDateWithinWindow(t *testing.T) {
	cfg := DefaultConfig()
	gen := New(cfg)
	col := schema.Column{Name: "created", Type: schema.FieldDate}

	values, err := gen.Field(col, 100, newRng(3))
	if err != nil {
		t.Fatalf("Field failed: %v", err)
	}
	for _, v := range values {
		d := v.(time.Time)
		if d.Before(cfg.DateMin) || !d.Before(cfg.DateMax) {
			t.Fatalf("date %s outside [%s, %s)", d, cfg.DateMin, cfg.DateMax)
		}
	}
}

func TestFieldUnknownTypeFails(t *testing.T) {
	gen := New(DefaultConfig())
	col := schema.Column{Name: "blob", Type: "binary"}

	_, err := gen.Field(col, 10, newRng(1))
	var schemaErr *schema.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestStringCategories(t *testing.T) {
	gen := New(DefaultConfig())
	rng := newRng(9)

	cases := []struct {
		column string
		check  func(string) bool
	}{
		{"email", func(s string) bool { return strings.Contains(s, "@") }},
		{"phone_number", func(s string) bool { return strings.HasPrefix(s, "+1-") }},
		{"customer_name", func(s string) bool { return strings.Contains(s, " ") }},
		{"website_url", func(s string) bool { return strings.HasPrefix(s, "https://") }},
		{"order_uuid", func(s string) bool { return len(s) == 36 }},
		{"zip_code", func(s string) bool { return len(s) == 5 }},
	}
	for _, tc := range cases {
		values, err := gen.Field(schema.Column{Name: tc.column, Type: schema.FieldString}, 20, rng)
		if err != nil {
			t.Fatalf("Field(%s) failed: %v", tc.column, err)
		}
		for _, v := range values {
			if !tc.check(v.(string)) {
				t.Errorf("column %s produced out-of-category value %q", tc.column, v)
				break
			}
		}
	}
}
