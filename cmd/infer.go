package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hydralabs/forge/internal/config"
	"github.com/hydralabs/forge/internal/schema"
)

var (
	inferSample string
	inferTable  string
	inferOut    string
)

var inferCmd = &cobra.Command{
	Use:   "infer",
	Short: "Infer a table schema from a CSV sample",
	Long: `Read a CSV sample and infer column names, types, null-ability, and
numeric statistics, then write the result as a YAML schema file the
generate commands consume.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		f, err := os.Open(inferSample)
		if err != nil {
			return fmt.Errorf("failed to open sample: %w", err)
		}
		defer f.Close()

		tableName := inferTable
		if tableName == "" {
			tableName = strings.TrimSuffix(filepath.Base(inferSample), filepath.Ext(inferSample))
		}

		table, err := schema.Infer(tableName, f)
		if err != nil {
			return fmt.Errorf("failed to infer schema: %w", err)
		}

		out := inferOut
		if out == "" {
			out = filepath.Join(cfg.SchemaDir, tableName+".yaml")
		}
		if err := schema.Save(table, out); err != nil {
			return err
		}

		color.Green("✅ Inferred schema for table %s (%d columns)", table.Name, len(table.Columns))
		for _, col := range table.Columns {
			nullable := ""
			if col.Nullable {
				nullable = " (nullable)"
			}
			color.White("   %s: %s%s", col.Name, col.Type, nullable)
		}
		color.Cyan("📄 Written to %s", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inferCmd)
	inferCmd.Flags().StringVar(&inferSample, "sample", "", "CSV sample file to infer from")
	inferCmd.Flags().StringVar(&inferTable, "table", "", "Table name (default: sample filename)")
	inferCmd.Flags().StringVar(&inferOut, "out", "", "Output schema file (default: <schema_dir>/<table>.yaml)")
	inferCmd.MarkFlagRequired("sample")
}
