package coord

import (
	"fmt"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
)

// ArrowSink is a column-major store that can hand its contents to Apache
// Arrow consumers as a Record without copying row by row at read time.
type ArrowSink struct {
	name string
	rows int
	cols [][]float64
}

// Name returns the name the sink was created under.
func (s *ArrowSink) Name() string { return s.name }

// RowCount returns the fixed number of rows.
func (s *ArrowSink) RowCount() int { return s.rows }

// ColumnCount returns the fixed number of columns.
func (s *ArrowSink) ColumnCount() int { return len(s.cols) }

// SetRow scatters values across the column buffers.
func (s *ArrowSink) SetRow(row int, values []float64) {
	checkRow(row, s.rows)
	checkBuffer(len(values), len(s.cols))
	for i, v := range values {
		s.cols[i][row] = v
	}
}

// GetRow gathers the given row from the column buffers into buf.
func (s *ArrowSink) GetRow(row int, buf []float64) []float64 {
	checkRow(row, s.rows)
	checkBuffer(len(buf), len(s.cols))
	for i := range buf {
		buf[i] = s.cols[i][row]
	}
	return buf
}

// Record materializes the sink as an Arrow record with one float64 field
// per column, named c0..cN-1. The caller must Release the record. A nil
// allocator means the default allocator.
func (s *ArrowSink) Record(mem memory.Allocator) arrow.Record {
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	fields := make([]arrow.Field, len(s.cols))
	for i := range fields {
		fields[i] = arrow.Field{Name: fmt.Sprintf("c%d", i), Type: arrow.PrimitiveTypes.Float64}
	}
	schema := arrow.NewSchema(fields, nil)

	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()
	for i, col := range s.cols {
		builder.Field(i).(*array.Float64Builder).AppendValues(col, nil)
	}
	return builder.NewRecord()
}

// ArrowFactory creates ArrowSinks.
type ArrowFactory struct{}

// NewArrowFactory creates a factory for Arrow-convertible sinks.
func NewArrowFactory() *ArrowFactory {
	return &ArrowFactory{}
}

// CreateSink allocates a column-major sink with the exact given shape.
func (f *ArrowFactory) CreateSink(name string, columnCount, rowCount int) (Sink, error) {
	if err := checkShape(columnCount, rowCount); err != nil {
		return nil, err
	}
	cols := make([][]float64, columnCount)
	for i := range cols {
		cols[i] = make([]float64, rowCount)
	}
	return &ArrowSink{name: name, rows: rowCount, cols: cols}, nil
}
