package schema

import (
	"fmt"
)

// FieldType is the closed set of column types the engine can generate.
type FieldType string

const (
	FieldInteger FieldType = "int"
	FieldFloat   FieldType = "float"
	FieldString  FieldType = "string"
	FieldDate    FieldType = "date"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldInteger, FieldFloat, FieldString, FieldDate:
		return true
	}
	return false
}

// Stats holds numeric summary statistics observed in a sample. When present
// they drive the generated value distribution for the column.
type Stats struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Mean float64 `yaml:"mean"`
}

type Column struct {
	Name     string    `yaml:"name"`
	Type     FieldType `yaml:"type"`
	Nullable bool      `yaml:"nullable,omitempty"`
	Stats    *Stats    `yaml:"stats,omitempty"`
}

// ForeignKey declares that Column of this table references RefTable.RefColumn.
type ForeignKey struct {
	Column    string `yaml:"column"`
	RefTable  string `yaml:"ref_table"`
	RefColumn string `yaml:"ref_column"`
}

type Table struct {
	Name        string       `yaml:"table"`
	Columns     []Column     `yaml:"columns"`
	ForeignKeys []ForeignKey `yaml:"foreign_keys,omitempty"`
}

// SchemaError reports a column whose type the engine does not recognize.
type SchemaError struct {
	Table  string
	Column string
	Type   string
}

func (e *SchemaError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("column %s has unrecognized type %q", e.Column, e.Type)
	}
	return fmt.Sprintf("table %s: column %s has unrecognized type %q", e.Table, e.Column, e.Type)
}

// Validate checks column name uniqueness and that every type belongs to the
// closed FieldType set. Generation never starts on an invalid table.
func (t *Table) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("table has no name")
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("table %s has no columns", t.Name)
	}
	seen := make(map[string]bool, len(t.Columns))
	for _, col := range t.Columns {
		if col.Name == "" {
			return fmt.Errorf("table %s has a column with no name", t.Name)
		}
		if seen[col.Name] {
			return fmt.Errorf("table %s: duplicate column %s", t.Name, col.Name)
		}
		seen[col.Name] = true
		if !col.Type.Valid() {
			return &SchemaError{Table: t.Name, Column: col.Name, Type: string(col.Type)}
		}
	}
	for _, fk := range t.ForeignKeys {
		if !seen[fk.Column] {
			return fmt.Errorf("table %s: foreign key on unknown column %s", t.Name, fk.Column)
		}
	}
	return nil
}

// Column returns the spec for the named column.
func (t *Table) Column(name string) (Column, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the column names in declared order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}
