package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

const ConfigFileName = "forge.config.json"

type Config struct {
	Version    string     `json:"version" mapstructure:"version"`
	SchemaDir  string     `json:"schema_dir" mapstructure:"schema_dir"`
	OutputDir  string     `json:"output_dir" mapstructure:"output_dir"`
	Sink       Sink       `json:"sink" mapstructure:"sink"`
	Generation Generation `json:"generation" mapstructure:"generation"`
}

type Sink struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

// Generation carries the engine tunables, including the bounded-retry
// policy used when a constraint filter rejects rows. NullRate and
// Oversample are pointers so that an explicit 0 or 1.0 in the file is
// distinguishable from an absent key.
type Generation struct {
	NullRate       *float64 `json:"null_rate" mapstructure:"null_rate"`
	MaxAttempts    int      `json:"max_attempts" mapstructure:"max_attempts"`
	Oversample     *float64 `json:"oversample" mapstructure:"oversample"`
	RecordsPerFile int      `json:"records_per_file" mapstructure:"records_per_file"`
}

func DefaultConfig() *Config {
	return &Config{
		Version:   "1",
		SchemaDir: "schemas",
		OutputDir: "out",
		Sink: Sink{
			Provider: "local",
			URLEnv:   "DATABASE_URL",
		},
		Generation: Generation{
			NullRate:       floatPtr(0.1),
			MaxAttempts:    5,
			Oversample:     floatPtr(2.0),
			RecordsPerFile: 250,
		},
	}
}

func floatPtr(v float64) *float64 { return &v }

// Load unmarshals the viper-backed config and fills defaults for anything
// the file leaves out.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	def := DefaultConfig()
	if cfg.Version == "" {
		cfg.Version = def.Version
	}
	if cfg.SchemaDir == "" {
		cfg.SchemaDir = def.SchemaDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = def.OutputDir
	}
	if cfg.Sink.Provider == "" {
		cfg.Sink.Provider = def.Sink.Provider
	}
	if cfg.Sink.URLEnv == "" {
		cfg.Sink.URLEnv = def.Sink.URLEnv
	}
	if cfg.Generation.NullRate == nil {
		cfg.Generation.NullRate = def.Generation.NullRate
	}
	if cfg.Generation.MaxAttempts <= 0 {
		cfg.Generation.MaxAttempts = def.Generation.MaxAttempts
	}
	if cfg.Generation.Oversample == nil {
		cfg.Generation.Oversample = def.Generation.Oversample
	}
	if cfg.Generation.RecordsPerFile <= 0 {
		cfg.Generation.RecordsPerFile = def.Generation.RecordsPerFile
	}
	return &cfg, nil
}

// GetDatabaseURL resolves the database sink URL from the environment
// variable named by the config.
func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Sink.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Sink.URLEnv)
	}
	return dbURL, nil
}

// IsInitialized reports whether a project config exists in the current
// directory.
func IsInitialized() bool {
	_, err := os.Stat(ConfigFileName)
	return err == nil
}

// InitializeProject writes a default forge.config.json and creates the
// schema and output directories. Refuses to overwrite an existing setup.
func InitializeProject() error {
	if IsInitialized() {
		return fmt.Errorf("project already initialized (%s exists)", ConfigFileName)
	}

	cfg := DefaultConfig()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(ConfigFileName, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	for _, dir := range []string{cfg.SchemaDir, cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
