package coordcsv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/nao1215/coordcsv/coord"
)

// Write emits the sink's values as delimited text: an optional header line,
// then one line per row with values joined by the delimiter in column
// order. No schema inference is involved; the shape comes from the sink.
//
// With no format pattern each value is rendered in the shortest form that
// parses back to the identical float64, so Write followed by Load
// round-trips exactly. A pattern such as "%5.2f" rounds values to the
// pattern's precision.
func Write(sink coord.Sink, w io.Writer, opts ...SaveOptions) (err error) {
	o := NewSaveOptions()
	if len(opts) > 0 {
		o = opts[0]
		if o.Delimiter == "" {
			o.Delimiter = DefaultDelimiter
		}
	}

	cols := sink.ColumnCount()
	if len(o.Headers) > 0 && len(o.Headers) != cols {
		return fmt.Errorf("%w: %d != %d", ErrHeaderMismatch, len(o.Headers), cols)
	}

	encoded, encCleanup, err := encodeWriter(w, o.Charset)
	if err != nil {
		return err
	}
	compressed, compCleanup, err := newCompressedWriter(encoded, o.Compression)
	if err != nil {
		return err
	}
	defer func() {
		// Compressor first, then the charset transformer it feeds.
		var errs []error
		if cleanupErr := compCleanup(); cleanupErr != nil {
			errs = append(errs, cleanupErr)
		}
		if cleanupErr := encCleanup(); cleanupErr != nil {
			errs = append(errs, cleanupErr)
		}
		if err == nil {
			err = errors.Join(errs...)
		}
	}()

	bw := bufio.NewWriter(compressed)

	if len(o.Headers) > 0 {
		for i, h := range o.Headers {
			if i > 0 {
				if _, err := bw.WriteString(o.Delimiter); err != nil {
					return fmt.Errorf("failed to write header: %w", err)
				}
			}
			if _, err := bw.WriteString(h); err != nil {
				return fmt.Errorf("failed to write header: %w", err)
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	buffer := make([]float64, cols)
	for row := range sink.RowCount() {
		sink.GetRow(row, buffer)
		for i, value := range buffer {
			if i > 0 {
				if _, err := bw.WriteString(o.Delimiter); err != nil {
					return fmt.Errorf("failed to write row %d: %w", row, err)
				}
			}
			if _, err := bw.WriteString(formatValue(value, o.Pattern)); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// Save writes the sink to a file. When the options do not request
// compression but the path carries a known compression extension, that
// compression is applied, mirroring how sources are read.
func Save(sink coord.Sink, path string, opts ...SaveOptions) (err error) {
	o := NewSaveOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Compression == CompressionNone {
		o.Compression = detectCompressionType(path)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", closeErr)
		}
	}()

	return Write(sink, file, o)
}

// formatValue renders a single value, with the pattern when one is set.
func formatValue(value float64, pattern string) string {
	if pattern != "" {
		return fmt.Sprintf(pattern, value)
	}
	return strconv.FormatFloat(value, 'g', -1, 64)
}
