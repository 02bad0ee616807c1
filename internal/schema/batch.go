package schema

// Batch is the output of a single generation call: named columns of equal
// length in declared order. A batch is owned by the caller that requested
// it; nothing in the engine retains a reference after returning one.
type Batch struct {
	table string
	names []string
	cols  map[string][]any
}

func NewBatch(table string, names []string) *Batch {
	cols := make(map[string][]any, len(names))
	for _, name := range names {
		cols[name] = nil
	}
	return &Batch{table: table, names: names, cols: cols}
}

func (b *Batch) Table() string { return b.table }

// Names returns the column names in declared order.
func (b *Batch) Names() []string { return b.names }

func (b *Batch) Len() int {
	if len(b.names) == 0 {
		return 0
	}
	return len(b.cols[b.names[0]])
}

// Column returns the values of the named column, or nil if absent.
func (b *Batch) Column(name string) []any { return b.cols[name] }

// Row materializes row i as a name→value map.
func (b *Batch) Row(i int) map[string]any {
	row := make(map[string]any, len(b.names))
	for _, name := range b.names {
		row[name] = b.cols[name][i]
	}
	return row
}

// AppendRow adds one row. Missing keys append as null.
func (b *Batch) AppendRow(row map[string]any) {
	for _, name := range b.names {
		b.cols[name] = append(b.cols[name], row[name])
	}
}
