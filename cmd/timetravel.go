package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hydralabs/forge/internal/config"
	"github.com/hydralabs/forge/internal/schema"
	"github.com/hydralabs/forge/internal/sink"
	"github.com/hydralabs/forge/internal/temporal"
)

var (
	ttSchema  string
	ttStart   string
	ttEnd     string
	ttFreq    string
	ttBase    int
	ttTrend   float64
	ttSpikes  []string
	ttSeed    int64
	ttFormat  string
	ttOut     string
	ttSink    string
	ttPreview bool
)

var timetravelCmd = &cobra.Command{
	Use:   "timetravel",
	Short: "Generate temporal data with trends and volume spikes",
	Long: `Generate one batch per period between two dates. Row counts follow a
compounding trend rate with optional date-keyed spike multipliers, and
each period's batch is written under a period=<date> partition.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		table, err := schema.Load(ttSchema)
		if err != nil {
			return err
		}

		policy, err := buildPolicy()
		if err != nil {
			return err
		}

		if ttPreview {
			periods, err := temporal.Schedule(policy)
			if err != nil {
				return err
			}
			color.Cyan("📅 %d periods:", len(periods))
			total := 0
			for _, p := range periods {
				color.White("   %s  %d rows", p.Label, p.Count)
				total += p.Count
			}
			color.Green("Σ  %d rows", total)
			return nil
		}

		seed := resolveSeed(ttSeed)
		runner := temporal.NewRunner(newGenerator(cfg))
		batches, err := runner.Run(table, policy, seed)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		provider := resolveProvider(cfg, ttSink)
		out, err := openSink(ctx, cfg, provider)
		if err != nil {
			return err
		}
		defer closeSink(out)

		dest := sinkDestination(provider, ttOut, cfg.OutputDir, table.Name)

		total := 0
		for _, pb := range batches {
			if pb.Warning != nil {
				color.Yellow("⚠️  %v", pb.Warning)
			}
			_, err := out.Write(ctx, pb.Batch, dest, sink.Options{
				Format:         ttFormat,
				RecordsPerFile: cfg.Generation.RecordsPerFile,
				Partitions:     []sink.Partition{{Column: "period", Value: pb.Period.Label}},
			})
			if err != nil {
				return fmt.Errorf("failed to write period %s: %w", pb.Period.Label, err)
			}
			total += pb.Batch.Len()
		}

		color.Green("✅ Generated %d rows across %d periods for table %s", total, len(batches), table.Name)
		return nil
	},
}

func buildPolicy() (temporal.Policy, error) {
	start, err := time.Parse("2006-01-02", ttStart)
	if err != nil {
		return temporal.Policy{}, fmt.Errorf("invalid start date %q: %w", ttStart, err)
	}
	end, err := time.Parse("2006-01-02", ttEnd)
	if err != nil {
		return temporal.Policy{}, fmt.Errorf("invalid end date %q: %w", ttEnd, err)
	}
	spikes, err := parseSpikes(ttSpikes)
	if err != nil {
		return temporal.Policy{}, err
	}
	return temporal.Policy{
		Start:     start,
		End:       end,
		Frequency: temporal.Frequency(ttFreq),
		BaseCount: ttBase,
		TrendRate: ttTrend,
		Spikes:    spikes,
	}, nil
}

func init() {
	rootCmd.AddCommand(timetravelCmd)
	timetravelCmd.Flags().StringVar(&ttSchema, "schema", "", "YAML schema file")
	timetravelCmd.Flags().StringVar(&ttStart, "start", "", "Start date (YYYY-MM-DD)")
	timetravelCmd.Flags().StringVar(&ttEnd, "end", "", "End date, inclusive (YYYY-MM-DD)")
	timetravelCmd.Flags().StringVar(&ttFreq, "freq", "daily", "Frequency: daily, weekly, or monthly")
	timetravelCmd.Flags().IntVar(&ttBase, "base", 100, "Base rows per period")
	timetravelCmd.Flags().Float64Var(&ttTrend, "trend", 0, "Per-period trend rate in [-0.20, 0.20]")
	timetravelCmd.Flags().StringArrayVar(&ttSpikes, "spike", nil, "Spike override date=multiplier (repeatable)")
	timetravelCmd.Flags().Int64Var(&ttSeed, "seed", 0, "Run seed (0 = random, printed for replay)")
	timetravelCmd.Flags().StringVar(&ttFormat, "format", "csv", "Output format: csv or json")
	timetravelCmd.Flags().StringVar(&ttOut, "out", "", "Output directory for local sinks, table name for database sinks (default: <output_dir>/<table>, or the schema's table)")
	timetravelCmd.Flags().StringVar(&ttSink, "sink", "", "Sink provider: local, postgres, mysql, sqlite")
	timetravelCmd.MarkFlagRequired("schema")
	timetravelCmd.MarkFlagRequired("start")
	timetravelCmd.MarkFlagRequired("end")
}
