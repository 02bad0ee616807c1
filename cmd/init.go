package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hydralabs/forge/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a forge project in the current directory",
	Long:  `Create forge.config.json with defaults plus the schema and output directories.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitializeProject(); err != nil {
			return err
		}
		cfg := config.DefaultConfig()
		color.Green("✅ Project initialized")
		color.Cyan("📁 Schemas: %s/", cfg.SchemaDir)
		color.Cyan("📁 Output:  %s/", cfg.OutputDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
