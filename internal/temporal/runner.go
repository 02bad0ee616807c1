package temporal

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/hydralabs/forge/internal/generator"
	"github.com/hydralabs/forge/internal/schema"
)

// PeriodBatch pairs a scheduled period with its generated batch. Warning
// is non-nil when the period's batch came up short under a filter.
type PeriodBatch struct {
	Period  Period
	Batch   *schema.Batch
	Warning *generator.PartialGenerationWarning
}

type Runner struct {
	gen *generator.Generator
}

func NewRunner(g *generator.Generator) *Runner {
	return &Runner{gen: g}
}

// Run generates one batch per scheduled period. Date columns draw from
// within the period's window instead of the generator's default range, and
// each period uses its own rng stream derived from the run seed, table
// name, and period label, so periods are independent of one another.
func (r *Runner) Run(spec *schema.Table, policy Policy, runSeed int64, opts ...generator.Option) ([]PeriodBatch, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	periods, err := Schedule(policy)
	if err != nil {
		return nil, err
	}

	out := make([]PeriodBatch, 0, len(periods))
	for _, period := range periods {
		genOpts := append(dateWindowRules(spec, period), opts...)
		rng := rand.New(rand.NewSource(generator.DeriveSeed(runSeed, spec.Name, period.Label)))

		batch, err := r.gen.Table(spec, period.Count, rng, genOpts...)
		pb := PeriodBatch{Period: period, Batch: batch}
		if err != nil {
			var warn *generator.PartialGenerationWarning
			if !errors.As(err, &warn) {
				return nil, fmt.Errorf("failed to generate period %s: %w", period.Label, err)
			}
			pb.Warning = warn
		}
		out = append(out, pb)
	}
	return out, nil
}

// dateWindowRules pins every date column to the period's window.
func dateWindowRules(spec *schema.Table, period Period) []generator.Option {
	var opts []generator.Option
	days := int(period.End.Sub(period.Start).Hours() / 24)
	if days < 1 {
		days = 1
	}
	for _, col := range spec.Columns {
		if col.Type != schema.FieldDate {
			continue
		}
		start := period.Start
		opts = append(opts, generator.WithRule(col.Name, func(rng *rand.Rand) any {
			return start.AddDate(0, 0, rng.Intn(days))
		}))
	}
	return opts
}
