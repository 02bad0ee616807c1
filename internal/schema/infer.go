package schema

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Date layouts accepted during inference, most specific first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// Infer builds a table spec from a CSV sample: header row gives column
// names, cell values are sniffed as int → float → date → string, empty
// cells mark the column nullable, and numeric columns carry min/max/mean
// stats for the generator to reproduce.
func Infer(tableName string, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read sample header: %w", err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("sample has no columns")
	}

	sniffers := make([]*columnSniffer, len(header))
	for i := range header {
		sniffers[i] = newColumnSniffer()
	}

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read sample row: %w", err)
		}
		rows++
		for i, cell := range record {
			if i < len(sniffers) {
				sniffers[i].observe(cell)
			}
		}
	}
	if rows == 0 {
		return nil, fmt.Errorf("sample has a header but no data rows")
	}

	table := &Table{Name: tableName, Columns: make([]Column, len(header))}
	for i, name := range header {
		table.Columns[i] = sniffers[i].column(name)
	}
	return table, table.Validate()
}

// columnSniffer narrows a column's type as values are observed. A column
// starts as a candidate for every type and loses candidacy on the first
// value that fails to parse.
type columnSniffer struct {
	canInt, canFloat, canDate bool
	sawNull                   bool
	count                     int
	min, max, sum             float64
}

func newColumnSniffer() *columnSniffer {
	return &columnSniffer{canInt: true, canFloat: true, canDate: true}
}

func (s *columnSniffer) observe(cell string) {
	if cell == "" {
		s.sawNull = true
		return
	}
	var numeric float64
	isNumeric := false

	if s.canInt {
		if v, err := strconv.ParseInt(cell, 10, 64); err == nil {
			numeric, isNumeric = float64(v), true
		} else {
			s.canInt = false
		}
	}
	if s.canFloat && !isNumeric {
		if v, err := strconv.ParseFloat(cell, 64); err == nil {
			numeric, isNumeric = v, true
		} else {
			s.canFloat = false
		}
	}
	if s.canDate && !isNumeric {
		if !parsesAsDate(cell) {
			s.canDate = false
		}
	}

	if isNumeric {
		if s.count == 0 || numeric < s.min {
			s.min = numeric
		}
		if s.count == 0 || numeric > s.max {
			s.max = numeric
		}
		s.sum += numeric
		s.count++
	}
}

func parsesAsDate(cell string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, cell); err == nil {
			return true
		}
	}
	return false
}

func (s *columnSniffer) column(name string) Column {
	col := Column{Name: name, Nullable: s.sawNull}
	switch {
	case s.canInt:
		col.Type = FieldInteger
	case s.canFloat:
		col.Type = FieldFloat
	case s.canDate:
		col.Type = FieldDate
	default:
		col.Type = FieldString
	}
	if (col.Type == FieldInteger || col.Type == FieldFloat) && s.count > 0 {
		col.Stats = &Stats{Min: s.min, Max: s.max, Mean: s.sum / float64(s.count)}
	}
	return col
}
