package coord

import (
	"fmt"
	"sync"
)

// MemorySink is a dense row-major in-memory store. It is the fastest sink
// and the natural choice when the data fits in memory.
type MemorySink struct {
	name string
	cols int
	rows int
	data []float64
}

// Name returns the name the sink was created under.
func (s *MemorySink) Name() string { return s.name }

// RowCount returns the fixed number of rows.
func (s *MemorySink) RowCount() int { return s.rows }

// ColumnCount returns the fixed number of columns.
func (s *MemorySink) ColumnCount() int { return s.cols }

// SetRow copies values into the given row.
func (s *MemorySink) SetRow(row int, values []float64) {
	checkRow(row, s.rows)
	checkBuffer(len(values), s.cols)
	copy(s.data[row*s.cols:(row+1)*s.cols], values)
}

// GetRow copies the given row into buf and returns buf.
func (s *MemorySink) GetRow(row int, buf []float64) []float64 {
	checkRow(row, s.rows)
	checkBuffer(len(buf), s.cols)
	copy(buf, s.data[row*s.cols:(row+1)*s.cols])
	return buf
}

// Get returns a single value.
func (s *MemorySink) Get(row, col int) float64 {
	checkRow(row, s.rows)
	checkCol(col, s.cols)
	return s.data[row*s.cols+col]
}

// Set stores a single value.
func (s *MemorySink) Set(row, col int, value float64) {
	checkRow(row, s.rows)
	checkCol(col, s.cols)
	s.data[row*s.cols+col] = value
}

// MemoryFactory creates and manages MemorySinks by name.
//
// Thread safety: the factory's own bookkeeping is safe for concurrent use;
// the sinks it creates are not.
type MemoryFactory struct {
	mu    sync.Mutex
	sinks map[string]*MemorySink
}

// NewMemoryFactory creates an empty factory.
func NewMemoryFactory() *MemoryFactory {
	return &MemoryFactory{sinks: make(map[string]*MemorySink)}
}

// CreateSink allocates a dense in-memory sink and registers it under the
// given name. Creating a second sink with the same name fails with
// ErrDuplicateName.
func (f *MemoryFactory) CreateSink(name string, columnCount, rowCount int) (Sink, error) {
	if err := checkShape(columnCount, rowCount); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.sinks[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	sink := &MemorySink{
		name: name,
		cols: columnCount,
		rows: rowCount,
		data: make([]float64, columnCount*rowCount),
	}
	f.sinks[name] = sink
	return sink, nil
}

// Lookup returns the sink registered under name, or nil.
func (f *MemoryFactory) Lookup(name string) *MemorySink {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sinks[name]
}

// Remove drops the sink registered under name.
func (f *MemoryFactory) Remove(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sinks, name)
}
