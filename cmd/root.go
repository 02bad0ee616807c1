package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "0.3.1"
)

var rootCmd = &cobra.Command{
	Use:   "forge",
	Short: "Synthetic tabular data generator with relational and temporal modes",
	Long: `
Forge synthesizes artificial tabular datasets that statistically resemble
a sample input.

Modes:
- generate    single-table generation from a YAML schema
- hydra       multi-table generation with foreign-key integrity
- timetravel  temporal generation with trends and volume spikes

Schemas are YAML files, authored by hand or inferred from a CSV sample
with 'forge infer'. Output goes to local CSV/JSON files or straight into
PostgreSQL, MySQL, or SQLite.`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("forge version %s\n", Version)
			return
		}
		cmd.Help()
	},
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		color.Red("❌ %v", err)
		return err
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./forge.config.json)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("forge.config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintln(os.Stderr, "failed to read config:", err)
		}
	}
}
