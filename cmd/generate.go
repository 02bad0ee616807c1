package cmd

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hydralabs/forge/internal/config"
	"github.com/hydralabs/forge/internal/generator"
	"github.com/hydralabs/forge/internal/schema"
	"github.com/hydralabs/forge/internal/sink"
)

var (
	genSchema string
	genCount  int
	genSeed   int64
	genFormat string
	genOut    string
	genSink   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a single synthetic table",
	Long:  `Generate synthetic records for one YAML table schema and write them through the configured sink.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		table, err := schema.Load(genSchema)
		if err != nil {
			return err
		}

		seed := resolveSeed(genSeed)
		gen := newGenerator(cfg)
		rng := rand.New(rand.NewSource(generator.DeriveSeed(seed, table.Name)))

		color.Cyan("⚙️  Generating %d rows for table %s...", genCount, table.Name)
		batch, err := gen.Table(table, genCount, rng)
		if err != nil {
			var warn *generator.PartialGenerationWarning
			if !errors.As(err, &warn) {
				return err
			}
			color.Yellow("⚠️  %v", warn)
		}

		ctx := cmd.Context()
		provider := resolveProvider(cfg, genSink)
		out, err := openSink(ctx, cfg, provider)
		if err != nil {
			return err
		}
		defer closeSink(out)

		dest := sinkDestination(provider, genOut, cfg.OutputDir, table.Name)
		paths, err := out.Write(ctx, batch, dest, sink.Options{
			Format:         genFormat,
			RecordsPerFile: cfg.Generation.RecordsPerFile,
		})
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		color.Green("✅ Generated %d rows for table %s", batch.Len(), table.Name)
		for _, p := range paths {
			color.White("   %s", p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&genSchema, "schema", "", "YAML schema file")
	generateCmd.Flags().IntVar(&genCount, "count", 100, "Number of rows to generate")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Run seed (0 = random, printed for replay)")
	generateCmd.Flags().StringVar(&genFormat, "format", "csv", "Output format: csv or json")
	generateCmd.Flags().StringVar(&genOut, "out", "", "Output directory for local sinks, table name for database sinks (default: <output_dir>/<table>, or the schema's table)")
	generateCmd.Flags().StringVar(&genSink, "sink", "", "Sink provider: local, postgres, mysql, sqlite")
	generateCmd.MarkFlagRequired("schema")
}
