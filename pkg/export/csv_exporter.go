package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Dataset is a flattened timetable grid: a leading Time column followed by
// one column per working day, with one row per slot time. Cells hold the
// rendered occupant label; absent cells export as empty slots.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// NewDataset builds an empty dataset with a fixed column order.
func NewDataset(headers ...string) Dataset {
	return Dataset{Headers: headers}
}

// AddRow appends one slot-time row. Keys not present in Headers are ignored
// when rendering.
func (d *Dataset) AddRow(cells map[string]string) {
	d.Rows = append(d.Rows, cells)
}

// record projects a row onto the header order, filling gaps with empty cells.
func (d Dataset) record(row map[string]string) []string {
	out := make([]string, len(d.Headers))
	for i, header := range d.Headers {
		out[i] = row[header]
	}
	return out
}

// CSVExporter renders Dataset records into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the dataset.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range data.Rows {
		if err := writer.Write(data.record(row)); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
