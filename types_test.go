package coordcsv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		line  string
		delim string
		want  []string
	}{
		{name: "simple comma", line: "a,b,c", delim: ",", want: []string{"a", "b", "c"}},
		{name: "adjacent delimiters collapse", line: "a,,b", delim: ",", want: []string{"a", "b"}},
		{name: "leading and trailing delimiters vanish", line: ",a,b,", delim: ",", want: []string{"a", "b"}},
		{name: "every character of the set separates", line: "a, b\tc", delim: ", \t", want: []string{"a", "b", "c"}},
		{name: "no delimiter in line", line: "abc", delim: ",", want: []string{"abc"}},
		{name: "only delimiters", line: ",,,", delim: ",", want: []string{}},
		{name: "empty line", line: "", delim: ",", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, splitTokens(tt.line, tt.delim))
		})
	}
}

func TestColumnMask(t *testing.T) {
	t.Parallel()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()
		m := NewColumnMask(4)
		m.Set(1)
		m.Set(3)

		assert.False(t, m.Get(0))
		assert.True(t, m.Get(1))
		assert.False(t, m.Get(2))
		assert.True(t, m.Get(3))
	})

	t.Run("grows past its initial size", func(t *testing.T) {
		t.Parallel()
		m := NewColumnMask(2)
		m.Set(200)

		assert.True(t, m.Get(200))
		assert.False(t, m.Get(199))
	})

	t.Run("out-of-range queries answer false", func(t *testing.T) {
		t.Parallel()
		m := NewColumnMask(4)

		assert.False(t, m.Get(-1))
		assert.False(t, m.Get(1000))
	})

	t.Run("negative set is ignored", func(t *testing.T) {
		t.Parallel()
		m := NewColumnMask(4)
		m.Set(-5)

		assert.Equal(t, 0, m.Cardinality())
	})

	t.Run("cardinality and column listing", func(t *testing.T) {
		t.Parallel()
		m := NewColumnMask(0)
		for _, i := range []int{0, 63, 64, 65, 130} {
			m.Set(i)
		}

		assert.Equal(t, 5, m.Cardinality())
		assert.Equal(t, []int{0, 63, 64, 65, 130}, m.Columns())
	})

	t.Run("zero value is empty", func(t *testing.T) {
		t.Parallel()
		var m ColumnMask

		assert.Equal(t, 0, m.Cardinality())
		assert.Empty(t, m.Columns())
		assert.False(t, m.Get(0))
	})
}
