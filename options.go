package coordcsv

import (
	"github.com/nao1215/coordcsv/progress"
)

// LoadOptions configures Sniff and Load.
//
// Example:
//
//	opts := coordcsv.NewLoadOptions().
//		WithDelimiter(";").
//		WithStartColumn(1)
//
//	sink, err := coordcsv.Load(ctx, src, "points", factory, opts)
type LoadOptions struct {
	// Delimiter is the set of separator characters. Default ",".
	Delimiter string
	// StartColumn is the number of leading columns to ignore, for sources
	// whose rows begin with an id or row number.
	StartColumn int
	// Charset is the IANA name of the source encoding. Empty means UTF-8.
	Charset string
	// Progress, if non-nil, receives one step per loaded row.
	Progress *progress.Handler
}

// NewLoadOptions creates default load options (comma delimiter, no ignored
// columns, UTF-8, no progress reporting).
func NewLoadOptions() LoadOptions {
	return LoadOptions{Delimiter: DefaultDelimiter}
}

// WithDelimiter sets the separator character set.
func (o LoadOptions) WithDelimiter(delim string) LoadOptions {
	if delim != "" {
		o.Delimiter = delim
	}
	return o
}

// WithStartColumn sets the number of leading columns to ignore.
func (o LoadOptions) WithStartColumn(n int) LoadOptions {
	if n > 0 {
		o.StartColumn = n
	}
	return o
}

// WithCharset sets the source character encoding by IANA name, such as
// "ISO-8859-1" or "Shift_JIS".
func (o LoadOptions) WithCharset(name string) LoadOptions {
	o.Charset = name
	return o
}

// WithProgress attaches a progress handler. The loader posts one step per
// row and checks the handler's task for cancellation once per line.
func (o LoadOptions) WithProgress(ph *progress.Handler) LoadOptions {
	o.Progress = ph
	return o
}

// SaveOptions configures Save and Write.
//
// Example:
//
//	opts := coordcsv.NewSaveOptions().
//		WithHeaders([]string{"x", "y", "z"}).
//		WithPattern("%8.3f").
//		WithCompression(CompressionGZ)
type SaveOptions struct {
	// Delimiter is the separator written between values. Default ",".
	Delimiter string
	// Pattern is a fmt verb such as "%5.2f" applied to each value. Empty
	// means the shortest rendering that round-trips exactly.
	Pattern string
	// Headers, if non-empty, are written as the first line. The count must
	// equal the sink's column count.
	Headers []string
	// Charset is the IANA name of the output encoding. Empty means UTF-8.
	Charset string
	// Compression selects output compression. Default none.
	Compression CompressionType
}

// NewSaveOptions creates default save options (comma delimiter, exact
// rendering, no headers, UTF-8, no compression).
func NewSaveOptions() SaveOptions {
	return SaveOptions{Delimiter: DefaultDelimiter}
}

// WithDelimiter sets the separator written between values.
func (o SaveOptions) WithDelimiter(delim string) SaveOptions {
	if delim != "" {
		o.Delimiter = delim
	}
	return o
}

// WithPattern sets a fmt verb applied to each value, such as "%5.2f".
// Values round-trip only to the precision the pattern keeps.
func (o SaveOptions) WithPattern(pattern string) SaveOptions {
	o.Pattern = pattern
	return o
}

// WithHeaders sets the header line values.
func (o SaveOptions) WithHeaders(headers []string) SaveOptions {
	o.Headers = headers
	return o
}

// WithCharset sets the output character encoding by IANA name.
func (o SaveOptions) WithCharset(name string) SaveOptions {
	o.Charset = name
	return o
}

// WithCompression adds compression to the output.
//
// Options:
//   - CompressionNone: no compression (default)
//   - CompressionGZ: gzip (.gz)
//   - CompressionXZ: xz (.xz)
//   - CompressionZSTD: zstandard (.zst)
//
// Bzip2 is read-only: the standard library has no bzip2 writer.
func (o SaveOptions) WithCompression(compression CompressionType) SaveOptions {
	o.Compression = compression
	return o
}
