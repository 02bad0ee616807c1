package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a single table spec from a YAML file and validates it.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &table, nil
}

// LoadDir reads every .yaml/.yml table spec in dir, sorted by filename so
// declaration order is stable across runs.
func LoadDir(dir string) ([]*Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no schema files found in %s", dir)
	}

	tables := make([]*Table, 0, len(files))
	seen := make(map[string]string)
	for _, name := range files {
		table, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[table.Name]; dup {
			return nil, fmt.Errorf("table %s defined in both %s and %s", table.Name, prev, name)
		}
		seen[table.Name] = name
		tables = append(tables, table)
	}
	return tables, nil
}

// Save writes a table spec as YAML.
func Save(table *Table, path string) error {
	if err := table.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create schema directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}
