// Package relational drives DAG-ordered multi-table generation with
// foreign-key integrity: parents generate first and child FK columns are
// sampled from materialized parent values.
package relational

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hydralabs/forge/internal/schema"
)

// Edge is one foreign-key relationship: ChildTable.ChildColumn references
// ParentTable.ParentColumn.
type Edge struct {
	ChildTable   string
	ChildColumn  string
	ParentTable  string
	ParentColumn string
}

// Plan is a validated set of tables plus edges with a fixed generation
// order. Built once per run and discarded after execution.
type Plan struct {
	Tables map[string]*schema.Table
	Edges  []Edge
	Order  []string
}

type CyclicDependencyError struct {
	Tables []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("circular dependency detected involving tables: %s", strings.Join(e.Tables, ", "))
}

type UnknownColumnError struct {
	Table  string
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("edge references unknown column %s.%s", e.Table, e.Column)
}

// EdgesFromSchemas collects the foreign_keys declared in table specs into
// planner edges.
func EdgesFromSchemas(tables []*schema.Table) []Edge {
	var edges []Edge
	for _, table := range tables {
		for _, fk := range table.ForeignKeys {
			edges = append(edges, Edge{
				ChildTable:   table.Name,
				ChildColumn:  fk.Column,
				ParentTable:  fk.RefTable,
				ParentColumn: fk.RefColumn,
			})
		}
	}
	return edges
}

// NewPlan validates the tables and edges and computes the generation
// order. It fails before any generation can start: unknown tables or
// columns and dependency cycles are rejected here.
func NewPlan(tables []*schema.Table, edges []Edge) (*Plan, error) {
	byName := make(map[string]*schema.Table, len(tables))
	declared := make([]string, 0, len(tables))
	for _, table := range tables {
		if err := table.Validate(); err != nil {
			return nil, err
		}
		if _, dup := byName[table.Name]; dup {
			return nil, fmt.Errorf("duplicate table %s in plan", table.Name)
		}
		byName[table.Name] = table
		declared = append(declared, table.Name)
	}

	for _, edge := range edges {
		child, ok := byName[edge.ChildTable]
		if !ok {
			return nil, fmt.Errorf("edge references unknown table %s", edge.ChildTable)
		}
		parent, ok := byName[edge.ParentTable]
		if !ok {
			return nil, fmt.Errorf("edge references unknown table %s", edge.ParentTable)
		}
		if _, ok := child.Column(edge.ChildColumn); !ok {
			return nil, &UnknownColumnError{Table: edge.ChildTable, Column: edge.ChildColumn}
		}
		if _, ok := parent.Column(edge.ParentColumn); !ok {
			return nil, &UnknownColumnError{Table: edge.ParentTable, Column: edge.ParentColumn}
		}
	}

	order, err := generationOrder(declared, edges)
	if err != nil {
		return nil, err
	}

	return &Plan{Tables: byName, Edges: edges, Order: order}, nil
}

// generationOrder topologically sorts tables, parents first, using DFS
// with temporary marks for cycle detection. Ties between independent
// tables fall back to declaration order so output is deterministic.
func generationOrder(declared []string, edges []Edge) ([]string, error) {
	deps := make(map[string][]string, len(declared))
	for _, edge := range edges {
		if edge.ParentTable == edge.ChildTable {
			// Self-references cannot be ordered away; skip like any
			// other intra-table constraint.
			continue
		}
		deps[edge.ChildTable] = append(deps[edge.ChildTable], edge.ParentTable)
	}
	for _, parents := range deps {
		sort.Strings(parents)
	}

	visited := make(map[string]bool, len(declared))
	inStack := make(map[string]bool, len(declared))
	order := make([]string, 0, len(declared))

	var visit func(string) error
	visit = func(name string) error {
		if inStack[name] {
			return &CyclicDependencyError{Tables: stackTables(inStack)}
		}
		if visited[name] {
			return nil
		}
		inStack[name] = true
		for _, parent := range deps[name] {
			if err := visit(parent); err != nil {
				return err
			}
		}
		inStack[name] = false
		visited[name] = true
		order = append(order, name)
		return nil
	}

	for _, name := range declared {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func stackTables(inStack map[string]bool) []string {
	var tables []string
	for name, on := range inStack {
		if on {
			tables = append(tables, name)
		}
	}
	sort.Strings(tables)
	return tables
}
