package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFactory_CreateSink(t *testing.T) {
	t.Parallel()

	t.Run("allocates a zeroed sink of the requested shape", func(t *testing.T) {
		t.Parallel()
		f := NewMemoryFactory()

		sink, err := f.CreateSink("points", 3, 4)
		require.NoError(t, err)

		assert.Equal(t, "points", sink.Name())
		assert.Equal(t, 3, sink.ColumnCount())
		assert.Equal(t, 4, sink.RowCount())

		buf := make([]float64, 3)
		for row := range 4 {
			assert.Equal(t, []float64{0, 0, 0}, sink.GetRow(row, buf))
		}
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		t.Parallel()
		f := NewMemoryFactory()

		_, err := f.CreateSink("points", 2, 2)
		require.NoError(t, err)

		_, err = f.CreateSink("points", 2, 2)
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("rejects non-positive shapes", func(t *testing.T) {
		t.Parallel()
		f := NewMemoryFactory()

		_, err := f.CreateSink("empty", 0, 5)
		assert.ErrorIs(t, err, ErrInvalidShape)

		_, err = f.CreateSink("empty", 5, -1)
		assert.ErrorIs(t, err, ErrInvalidShape)
	})

	t.Run("lookup and remove", func(t *testing.T) {
		t.Parallel()
		f := NewMemoryFactory()

		sink, err := f.CreateSink("points", 2, 2)
		require.NoError(t, err)
		assert.Same(t, sink, Sink(f.Lookup("points")))

		f.Remove("points")
		assert.Nil(t, f.Lookup("points"))

		// The name is reusable after removal.
		_, err = f.CreateSink("points", 2, 2)
		assert.NoError(t, err)
	})
}

func TestMemorySink_RowAccess(t *testing.T) {
	t.Parallel()

	t.Run("rows round-trip", func(t *testing.T) {
		t.Parallel()
		f := NewMemoryFactory()
		sink, err := f.CreateSink("points", 3, 2)
		require.NoError(t, err)

		sink.SetRow(0, []float64{1.5, 2.5, 3.5})
		sink.SetRow(1, []float64{-1, 0, 1})

		buf := make([]float64, 3)
		assert.Equal(t, []float64{1.5, 2.5, 3.5}, sink.GetRow(0, buf))
		assert.Equal(t, []float64{-1, 0, 1}, sink.GetRow(1, buf))
	})

	t.Run("single-value access", func(t *testing.T) {
		t.Parallel()
		f := NewMemoryFactory()
		sink, err := f.CreateSink("points", 2, 2)
		require.NoError(t, err)

		ms := sink.(*MemorySink)
		ms.Set(1, 0, 42.0)
		assert.Equal(t, 42.0, ms.Get(1, 0))
		assert.Equal(t, 0.0, ms.Get(0, 0))
	})

	t.Run("set row does not alias the caller's slice", func(t *testing.T) {
		t.Parallel()
		f := NewMemoryFactory()
		sink, err := f.CreateSink("points", 2, 1)
		require.NoError(t, err)

		values := []float64{1, 2}
		sink.SetRow(0, values)
		values[0] = 99

		buf := make([]float64, 2)
		assert.Equal(t, []float64{1, 2}, sink.GetRow(0, buf))
	})

	t.Run("out-of-range indices panic", func(t *testing.T) {
		t.Parallel()
		f := NewMemoryFactory()
		sink, err := f.CreateSink("points", 2, 2)
		require.NoError(t, err)

		buf := make([]float64, 2)
		assert.Panics(t, func() { sink.SetRow(2, buf) })
		assert.Panics(t, func() { sink.SetRow(-1, buf) })
		assert.Panics(t, func() { sink.GetRow(2, buf) })
	})

	t.Run("wrong buffer length panics", func(t *testing.T) {
		t.Parallel()
		f := NewMemoryFactory()
		sink, err := f.CreateSink("points", 3, 1)
		require.NoError(t, err)

		assert.Panics(t, func() { sink.SetRow(0, []float64{1, 2}) })
		assert.Panics(t, func() { sink.GetRow(0, make([]float64, 4)) })
	})
}
