package coordcsv

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/nao1215/coordcsv/coord"
)

// Load streams the numeric data of a delimited source into a sink created
// by factory. The source is traversed twice: once by the sniffer to learn
// the shape (see Sniff), then again to parse the masked values of each data
// row into the sink.
//
// The produced sink has exactly SchemaInfo.RowCount rows and one column per
// masked position, filled left to right in mask order. Load fails with
// ErrUnparseableValue when a masked token is not a number, ErrTruncatedRow
// when a data row ends before all masked columns, ErrMalformedRow on an
// arity mismatch against the locked schema, and ErrCanceled when the
// context or the progress handler's task requests cancellation. The source
// is closed on every exit path.
//
// When the options carry a progress handler, the load claims the remainder
// of the handler's current interval and posts one step per row.
func Load(ctx context.Context, src Source, name string, factory coord.Factory, opts ...LoadOptions) (coord.Sink, error) {
	o := NewLoadOptions()
	if len(opts) > 0 {
		o = opts[0]
		if o.Delimiter == "" {
			o.Delimiter = DefaultDelimiter
		}
	}

	info, err := sniffSchema(ctx, src, o)
	if err != nil {
		return nil, err
	}

	cols := info.Columns.Cardinality()
	if info.RowCount == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: rows = %d, columns = %d", ErrNoDataFound, info.RowCount, cols)
	}

	sink, err := factory.CreateSink(name, cols, info.RowCount)
	if err != nil {
		return nil, fmt.Errorf("failed to create sink: %w", err)
	}

	if err := streamRows(ctx, src, sink, info, o); err != nil {
		return nil, err
	}
	return sink, nil
}

// LoadFile is a convenience wrapper around Load for an OS path. Compressed
// files are handled by extension, same as NewFileSource.
func LoadFile(ctx context.Context, path, name string, factory coord.Factory, opts ...LoadOptions) (coord.Sink, error) {
	return Load(ctx, NewFileSource(path), name, factory, opts...)
}

// streamRows is the second pass: it re-reads the source from the top and
// writes each data row's masked values into the sink.
func streamRows(ctx context.Context, src Source, sink coord.Sink, info SchemaInfo, o LoadOptions) (err error) {
	rc, err := src.Open()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close source: %w", closeErr)
		}
	}()

	reader, err := decodeReader(rc, o.Charset)
	if err != nil {
		return err
	}

	if ph := o.Progress; ph != nil {
		ph.PostBegin()
		ph.SubsectionSteps(1.0, info.RowCount)
		defer ph.PostEnd()
	}

	cols := sink.ColumnCount()
	buffer := make([]float64, cols)

	var (
		lineNum = -1 // 0-based index over non-blank lines
		row     int
	)

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	for scanner.Scan() {
		if cancelErr := checkCanceled(ctx, o.Progress); cancelErr != nil {
			return cancelErr
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lineNum++
		if lineNum < info.StartRow {
			continue
		}

		tokens := splitTokens(line, o.Delimiter)
		if len(tokens) < info.TokenCount {
			return fmt.Errorf("%w: too few columns on row %d", ErrTruncatedRow, row)
		}
		if len(tokens) > info.TokenCount {
			return fmt.Errorf(
				"%w: incorrect number of entries on line %d: %d expected, found %d",
				ErrMalformedRow, lineNum+1, info.TokenCount, len(tokens))
		}

		colIndex := 0
		for i, token := range tokens {
			if !info.Columns.Get(i) {
				continue
			}
			value, parseErr := strconv.ParseFloat(token, 64)
			if parseErr != nil {
				return fmt.Errorf("%w: row %d, line %d: %q", ErrUnparseableValue, row, lineNum+1, token)
			}
			buffer[colIndex] = value
			colIndex++
		}

		sink.SetRow(row, buffer)
		row++

		if o.Progress != nil {
			o.Progress.PostStep()
		}
	}
	if scanErr := scanner.Err(); scanErr != nil {
		return fmt.Errorf("failed to read source: %w", scanErr)
	}

	return nil
}
