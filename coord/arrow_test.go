package coord

import (
	"testing"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrowFactory_CreateSink(t *testing.T) {
	t.Parallel()

	t.Run("rows round-trip", func(t *testing.T) {
		t.Parallel()
		f := NewArrowFactory()

		sink, err := f.CreateSink("points", 3, 2)
		require.NoError(t, err)
		assert.Equal(t, "points", sink.Name())
		assert.Equal(t, 3, sink.ColumnCount())
		assert.Equal(t, 2, sink.RowCount())

		sink.SetRow(0, []float64{1, 2, 3})
		sink.SetRow(1, []float64{4, 5, 6})

		buf := make([]float64, 3)
		assert.Equal(t, []float64{1, 2, 3}, sink.GetRow(0, buf))
		assert.Equal(t, []float64{4, 5, 6}, sink.GetRow(1, buf))
	})

	t.Run("rejects non-positive shapes", func(t *testing.T) {
		t.Parallel()
		f := NewArrowFactory()

		_, err := f.CreateSink("empty", -1, 2)
		assert.ErrorIs(t, err, ErrInvalidShape)
	})

	t.Run("out-of-range indices panic", func(t *testing.T) {
		t.Parallel()
		f := NewArrowFactory()
		sink, err := f.CreateSink("points", 2, 2)
		require.NoError(t, err)

		assert.Panics(t, func() { sink.SetRow(2, make([]float64, 2)) })
		assert.Panics(t, func() { sink.GetRow(0, make([]float64, 1)) })
	})
}

func TestArrowSink_Record(t *testing.T) {
	t.Parallel()

	t.Run("materializes columns as float64 fields", func(t *testing.T) {
		t.Parallel()
		mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
		defer mem.AssertSize(t, 0)

		f := NewArrowFactory()
		sink, err := f.CreateSink("points", 2, 3)
		require.NoError(t, err)
		sink.SetRow(0, []float64{1, 10})
		sink.SetRow(1, []float64{2, 20})
		sink.SetRow(2, []float64{3, 30})

		rec := sink.(*ArrowSink).Record(mem)
		defer rec.Release()

		require.EqualValues(t, 2, rec.NumCols())
		require.EqualValues(t, 3, rec.NumRows())
		assert.Equal(t, "c0", rec.ColumnName(0))
		assert.Equal(t, "c1", rec.ColumnName(1))
		assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Float64, rec.Column(0).DataType()))

		c0 := rec.Column(0).(*array.Float64)
		c1 := rec.Column(1).(*array.Float64)
		assert.Equal(t, []float64{1, 2, 3}, c0.Float64Values())
		assert.Equal(t, []float64{10, 20, 30}, c1.Float64Values())
	})

	t.Run("nil allocator uses the default", func(t *testing.T) {
		t.Parallel()
		f := NewArrowFactory()
		sink, err := f.CreateSink("points", 1, 1)
		require.NoError(t, err)
		sink.SetRow(0, []float64{7})

		rec := sink.(*ArrowSink).Record(nil)
		defer rec.Release()

		assert.Equal(t, 7.0, rec.Column(0).(*array.Float64).Value(0))
	})
}
