package coordcsv

import (
	"math/bits"
	"strings"
)

// Delimiter constants
const (
	// DefaultDelimiter is the delimiter used when none is configured.
	DefaultDelimiter = ","
	// TabDelimiter reads and writes tab-separated files.
	TabDelimiter = "\t"
)

const wordBits = 64

// ColumnMask records which column positions of a tokenized data row carry
// numeric values. The zero value is an empty mask.
type ColumnMask struct {
	words []uint64
}

// NewColumnMask creates a mask sized for at least n columns.
func NewColumnMask(n int) *ColumnMask {
	if n < 0 {
		n = 0
	}
	return &ColumnMask{words: make([]uint64, (n+wordBits-1)/wordBits)}
}

// Set flags column i as numeric.
func (m *ColumnMask) Set(i int) {
	if i < 0 {
		return
	}
	word := i / wordBits
	for word >= len(m.words) {
		m.words = append(m.words, 0)
	}
	m.words[word] |= 1 << (i % wordBits)
}

// Get reports whether column i is flagged.
func (m *ColumnMask) Get(i int) bool {
	if i < 0 {
		return false
	}
	word := i / wordBits
	if word >= len(m.words) {
		return false
	}
	return m.words[word]&(1<<(i%wordBits)) != 0
}

// Cardinality returns the number of flagged columns.
func (m *ColumnMask) Cardinality() int {
	n := 0
	for _, w := range m.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Columns returns the flagged column positions in ascending order.
func (m *ColumnMask) Columns() []int {
	cols := make([]int, 0, m.Cardinality())
	for wi, w := range m.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			cols = append(cols, wi*wordBits+b)
			w &^= 1 << b
		}
	}
	return cols
}

// SchemaInfo is the result of sniffing a delimited source.
type SchemaInfo struct {
	// StartRow is the 0-based index, among non-blank lines, of the first
	// row treated as data. Rows before it are headers or otherwise
	// ignorable.
	StartRow int
	// RowCount is the number of data rows from StartRow through the end
	// of the source.
	RowCount int
	// Columns flags the token positions that carry numeric data. Token
	// positions below the configured start column are never flagged.
	Columns *ColumnMask
	// TokenCount is the token count of the row that established the mask.
	// Every later non-blank row must tokenize to exactly this count.
	TokenCount int
}

// splitTokens tokenizes a line, treating every character of delim as a
// separator and collapsing adjacent separators. Empty tokens are never
// produced, so there is no quoting or escaping of delimiters within fields.
func splitTokens(line, delim string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return strings.ContainsRune(delim, r)
	})
}
