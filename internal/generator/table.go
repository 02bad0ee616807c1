package generator

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/hydralabs/forge/internal/schema"
)

// Filter is an opaque row predicate supplied by an external rule
// collaborator. The engine assumes nothing about it beyond row → bool.
type Filter func(row map[string]any) bool

// Rule produces a value for one column, replacing the column's normal
// generation. The relational planner uses rules to source foreign-key
// columns from parent data.
type Rule func(rng *rand.Rand) any

// PartialGenerationWarning reports that the filter rejected too many rows
// to reach the requested count within the attempt bound. The accompanying
// batch is still valid, just short.
type PartialGenerationWarning struct {
	Table     string
	Requested int
	Produced  int
	Attempts  int
}

func (w *PartialGenerationWarning) Error() string {
	return fmt.Sprintf("table %s: produced %d of %d requested rows after %d attempts",
		w.Table, w.Produced, w.Requested, w.Attempts)
}

type tableOptions struct {
	filter Filter
	rules  map[string]Rule
}

type Option func(*tableOptions)

// WithFilter drops generated rows the predicate rejects, regenerating in
// oversampled batches until the target count or the attempt bound is hit.
func WithFilter(f Filter) Option {
	return func(o *tableOptions) { o.filter = f }
}

// WithRule overrides generation for one column. The filter, if any, sees
// rows after rules are applied.
func WithRule(column string, r Rule) Option {
	return func(o *tableOptions) { o.rules = setRule(o.rules, column, r) }
}

func setRule(rules map[string]Rule, column string, r Rule) map[string]Rule {
	if rules == nil {
		rules = make(map[string]Rule)
	}
	rules[column] = r
	return rules
}

// Table generates a full record batch for one table spec. Without a filter
// the batch has exactly count rows; with one, the result may be short, in
// which case the returned error is a *PartialGenerationWarning and the
// batch is the best effort.
func (g *Generator) Table(spec *schema.Table, count int, rng *rand.Rand, opts ...Option) (*schema.Batch, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("table %s: negative row count %d", spec.Name, count)
	}

	var o tableOptions
	for _, opt := range opts {
		opt(&o)
	}

	batch := schema.NewBatch(spec.Name, spec.ColumnNames())
	if count == 0 {
		return batch, nil
	}

	if o.filter == nil {
		rows, err := g.rows(spec, count, rng, o.rules)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			batch.AppendRow(row)
		}
		return batch, nil
	}

	attempts := 0
	for attempts < g.cfg.MaxAttempts && batch.Len() < count {
		attempts++
		need := count - batch.Len()
		n := int(math.Ceil(float64(need) * g.cfg.Oversample))

		rows, err := g.rows(spec, n, rng, o.rules)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if o.filter(row) {
				batch.AppendRow(row)
				if batch.Len() == count {
					break
				}
			}
		}
	}

	if batch.Len() < count {
		return batch, &PartialGenerationWarning{
			Table:     spec.Name,
			Requested: count,
			Produced:  batch.Len(),
			Attempts:  attempts,
		}
	}
	return batch, nil
}

// rows generates n rows column by column in declared order, then pivots to
// row maps so rules and filters see whole rows.
func (g *Generator) rows(spec *schema.Table, n int, rng *rand.Rand, rules map[string]Rule) ([]map[string]any, error) {
	cols := make(map[string][]any, len(spec.Columns))
	for _, col := range spec.Columns {
		if rule, ok := rules[col.Name]; ok {
			values := make([]any, n)
			for i := range values {
				values[i] = rule(rng)
			}
			cols[col.Name] = values
			continue
		}
		values, err := g.Field(col, n, rng)
		if err != nil {
			return nil, err
		}
		cols[col.Name] = values
	}

	rows := make([]map[string]any, n)
	for i := range rows {
		row := make(map[string]any, len(spec.Columns))
		for _, col := range spec.Columns {
			row[col.Name] = cols[col.Name][i]
		}
		rows[i] = row
	}
	return rows, nil
}
