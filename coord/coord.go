package coord

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by factories.
var (
	// ErrInvalidShape indicates a non-positive row or column count.
	ErrInvalidShape = errors.New("coord: invalid sink shape")

	// ErrDuplicateName indicates that a factory already manages a sink
	// with the requested name.
	ErrDuplicateName = errors.New("coord: duplicate sink name")
)

// Sink is a fixed-shape numeric row/column store. Its shape is set at
// creation and never changes. Implementations are not required to be safe
// for concurrent use.
type Sink interface {
	// Name returns the name the sink was created under.
	Name() string
	// RowCount returns the fixed number of rows.
	RowCount() int
	// ColumnCount returns the fixed number of columns.
	ColumnCount() int
	// SetRow copies values into the given row. The row index must be in
	// range and len(values) must equal ColumnCount; violations panic.
	SetRow(row int, values []float64)
	// GetRow copies the given row into buf and returns buf. The row index
	// must be in range and len(buf) must equal ColumnCount; violations
	// panic.
	GetRow(row int, buf []float64) []float64
}

// Factory allocates sinks of a requested shape. Loaders ask the factory
// for a sink only after the shape of the incoming data is fully known.
type Factory interface {
	// CreateSink allocates a sink with the exact given shape.
	CreateSink(name string, columnCount, rowCount int) (Sink, error)
}

// checkShape rejects non-positive dimensions at creation time.
func checkShape(columnCount, rowCount int) error {
	if columnCount <= 0 || rowCount <= 0 {
		return fmt.Errorf("%w: columns = %d, rows = %d", ErrInvalidShape, columnCount, rowCount)
	}
	return nil
}

// checkRow panics when the row index is out of range.
func checkRow(row, rowCount int) {
	if row < 0 || row >= rowCount {
		panic(fmt.Sprintf("coord: row index %d out of range [0, %d)", row, rowCount))
	}
}

// checkCol panics when the column index is out of range.
func checkCol(col, columnCount int) {
	if col < 0 || col >= columnCount {
		panic(fmt.Sprintf("coord: column index %d out of range [0, %d)", col, columnCount))
	}
}

// checkBuffer panics when a row buffer has the wrong length.
func checkBuffer(length, columnCount int) {
	if length != columnCount {
		panic(fmt.Sprintf("coord: buffer length %d != column count %d", length, columnCount))
	}
}
