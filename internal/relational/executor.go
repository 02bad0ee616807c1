package relational

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/hydralabs/forge/internal/generator"
	"github.com/hydralabs/forge/internal/schema"
)

// DefaultRowCount applies to tables without an explicit count.
const DefaultRowCount = 100

// MissingParentDataError means a child was about to generate but its
// parent's column has no values to sample from. The whole run aborts,
// since partial relational output would break the integrity guarantee.
type MissingParentDataError struct {
	Child  string
	Parent string
}

func (e *MissingParentDataError) Error() string {
	return fmt.Sprintf("table %s: parent %s has no generated data to sample foreign keys from", e.Child, e.Parent)
}

// Result holds the generated batches keyed by table name, plus any
// partial-generation warnings collected along the way. Warnings are
// recoverable; the batches are still internally consistent.
type Result struct {
	Batches  map[string]*schema.Batch
	Warnings []*generator.PartialGenerationWarning
}

type executeOptions struct {
	filters map[string]generator.Filter
}

type ExecuteOption func(*executeOptions)

// WithTableFilter attaches a row predicate to one table. The predicate
// runs after foreign-key columns are populated, so rules may reference
// them.
func WithTableFilter(table string, f generator.Filter) ExecuteOption {
	return func(o *executeOptions) {
		if o.filters == nil {
			o.filters = make(map[string]generator.Filter)
		}
		o.filters[table] = f
	}
}

type Executor struct {
	gen *generator.Generator
}

func NewExecutor(g *generator.Generator) *Executor {
	return &Executor{gen: g}
}

// Execute generates every table in plan order. Each table draws from its
// own rng stream derived from the run seed and table name, so siblings are
// independent of each other and of ordering.
func (e *Executor) Execute(plan *Plan, counts map[string]int, runSeed int64, opts ...ExecuteOption) (*Result, error) {
	var o executeOptions
	for _, opt := range opts {
		opt(&o)
	}

	result := &Result{Batches: make(map[string]*schema.Batch, len(plan.Order))}

	for _, name := range plan.Order {
		table := plan.Tables[name]
		count, ok := counts[name]
		if !ok {
			count = DefaultRowCount
		}

		genOpts, err := e.foreignKeyRules(plan, name, result.Batches)
		if err != nil {
			return nil, err
		}
		if filter, ok := o.filters[name]; ok {
			genOpts = append(genOpts, generator.WithFilter(filter))
		}

		rng := rand.New(rand.NewSource(generator.DeriveSeed(runSeed, name)))
		batch, err := e.gen.Table(table, count, rng, genOpts...)
		if err != nil {
			var warn *generator.PartialGenerationWarning
			if errors.As(err, &warn) {
				result.Warnings = append(result.Warnings, warn)
			} else {
				return nil, fmt.Errorf("failed to generate table %s: %w", name, err)
			}
		}
		result.Batches[name] = batch
	}
	return result, nil
}

// foreignKeyRules builds one sampling rule per incoming edge of the table,
// each drawing with replacement from the already-generated parent column.
func (e *Executor) foreignKeyRules(plan *Plan, table string, batches map[string]*schema.Batch) ([]generator.Option, error) {
	var opts []generator.Option
	for _, edge := range plan.Edges {
		if edge.ChildTable != table || edge.ParentTable == edge.ChildTable {
			continue
		}
		parent, ok := batches[edge.ParentTable]
		if !ok {
			return nil, &MissingParentDataError{Child: table, Parent: edge.ParentTable}
		}
		pool := nonNullValues(parent.Column(edge.ParentColumn))
		if len(pool) == 0 {
			return nil, &MissingParentDataError{Child: table, Parent: edge.ParentTable}
		}
		opts = append(opts, generator.WithRule(edge.ChildColumn, func(rng *rand.Rand) any {
			return pool[rng.Intn(len(pool))]
		}))
	}
	return opts, nil
}

func nonNullValues(values []any) []any {
	pool := make([]any, 0, len(values))
	for _, v := range values {
		if v != nil {
			pool = append(pool, v)
		}
	}
	return pool
}
