package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hydralabs/forge/internal/config"
	"github.com/hydralabs/forge/internal/relational"
	"github.com/hydralabs/forge/internal/schema"
	"github.com/hydralabs/forge/internal/sink"
)

var (
	hydraSchemaDir string
	hydraCounts    string
	hydraSeed      int64
	hydraFormat    string
	hydraOut       string
	hydraSink      string
)

var hydraCmd = &cobra.Command{
	Use:   "hydra",
	Short: "Generate multiple related tables with foreign-key integrity",
	Long: `Load every YAML schema in the schema directory, order the tables by
their declared foreign keys (parents before children), and generate them
so that every foreign-key value exists in its parent table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		dir := hydraSchemaDir
		if dir == "" {
			dir = cfg.SchemaDir
		}
		tables, err := schema.LoadDir(dir)
		if err != nil {
			return err
		}

		counts, err := parseCounts(hydraCounts)
		if err != nil {
			return err
		}

		plan, err := relational.NewPlan(tables, relational.EdgesFromSchemas(tables))
		if err != nil {
			return err
		}
		color.Green("📊 Found %d tables", len(plan.Order))
		color.Cyan("📋 Generation order: %s", strings.Join(plan.Order, " → "))

		seed := resolveSeed(hydraSeed)
		executor := relational.NewExecutor(newGenerator(cfg))
		result, err := executor.Execute(plan, counts, seed)
		if err != nil {
			return err
		}
		for _, warn := range result.Warnings {
			color.Yellow("⚠️  %v", warn)
		}

		ctx := cmd.Context()
		provider := resolveProvider(cfg, hydraSink)
		out, err := openSink(ctx, cfg, provider)
		if err != nil {
			return err
		}
		defer closeSink(out)

		outDir := hydraOut
		if outDir == "" {
			outDir = cfg.OutputDir
		}
		for _, name := range plan.Order {
			batch := result.Batches[name]
			paths, err := out.Write(ctx, batch, sinkDestination(provider, "", outDir, name), sink.Options{
				Format:         hydraFormat,
				RecordsPerFile: cfg.Generation.RecordsPerFile,
			})
			if err != nil {
				return fmt.Errorf("failed to write table %s: %w", name, err)
			}
			color.Green("✅ %s: %d rows (%d files)", name, batch.Len(), len(paths))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hydraCmd)
	hydraCmd.Flags().StringVar(&hydraSchemaDir, "schema-dir", "", "Directory of YAML schemas (default: config schema_dir)")
	hydraCmd.Flags().StringVar(&hydraCounts, "counts", "", "Per-table row counts, e.g. users=100,orders=500")
	hydraCmd.Flags().Int64Var(&hydraSeed, "seed", 0, "Run seed (0 = random, printed for replay)")
	hydraCmd.Flags().StringVar(&hydraFormat, "format", "csv", "Output format: csv or json")
	hydraCmd.Flags().StringVar(&hydraOut, "out", "", "Output directory (default: config output_dir)")
	hydraCmd.Flags().StringVar(&hydraSink, "sink", "", "Sink provider: local, postgres, mysql, sqlite")
}
