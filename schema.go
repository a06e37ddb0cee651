package coordcsv

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/nao1215/coordcsv/progress"
)

// maxLineSize is the largest input line the scanner accepts.
const maxLineSize = 1024 * 1024

// Sniff makes a single forward pass over the source and infers the shape of
// its numeric data: the first data row, the data row count, and the set of
// numeric columns.
//
// A row becomes the first data row when, after discarding StartColumn
// leading tokens, at least one remaining token parses as a floating-point
// number. The positions that parse form the column mask, and the row's
// token count is locked in: every later non-blank row must tokenize to
// exactly that count or Sniff fails with ErrMalformedRow. Blank lines are
// skipped and never counted.
//
// Sniff fails with ErrNoDataFound when no row ever yields a non-empty mask,
// and with ErrCanceled when the context is canceled. Cancellation is
// checked once per line.
func Sniff(ctx context.Context, src Source, opts ...LoadOptions) (SchemaInfo, error) {
	o := NewLoadOptions()
	if len(opts) > 0 {
		o = opts[0]
		if o.Delimiter == "" {
			o.Delimiter = DefaultDelimiter
		}
	}
	return sniffSchema(ctx, src, o)
}

func sniffSchema(ctx context.Context, src Source, o LoadOptions) (info SchemaInfo, err error) {
	rc, err := src.Open()
	if err != nil {
		return SchemaInfo{}, err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close source: %w", closeErr)
		}
	}()

	reader, err := decodeReader(rc, o.Charset)
	if err != nil {
		return SchemaInfo{}, err
	}

	var (
		startRow       = -1
		lineNum        = -1 // 0-based index over non-blank lines
		mask           *ColumnMask
		expectedTokens = -1
	)

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	for scanner.Scan() {
		if err := checkCanceled(ctx, o.Progress); err != nil {
			return SchemaInfo{}, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lineNum++

		tokens := splitTokens(line, o.Delimiter)

		if startRow < 0 {
			// Rows with no tokens past the start column cannot establish
			// a mask and are skipped for detection purposes.
			if len(tokens) <= o.StartColumn {
				continue
			}
			trial := NewColumnMask(len(tokens))
			for i := o.StartColumn; i < len(tokens); i++ {
				if _, parseErr := strconv.ParseFloat(tokens[i], 64); parseErr == nil {
					trial.Set(i)
				}
			}
			if trial.Cardinality() > 0 {
				startRow = lineNum
				mask = trial
				expectedTokens = len(tokens)
			}
			continue
		}

		if len(tokens) != expectedTokens {
			return SchemaInfo{}, fmt.Errorf(
				"%w: incorrect number of entries on line %d: %d expected, found %d",
				ErrMalformedRow, lineNum+1, expectedTokens, len(tokens))
		}
	}
	if scanErr := scanner.Err(); scanErr != nil {
		return SchemaInfo{}, fmt.Errorf("failed to read source: %w", scanErr)
	}

	if startRow < 0 {
		return SchemaInfo{}, ErrNoDataFound
	}

	return SchemaInfo{
		StartRow:   startRow,
		RowCount:   lineNum - startRow + 1,
		Columns:    mask,
		TokenCount: expectedTokens,
	}, nil
}

// checkCanceled polls the context and, when a progress handler is attached,
// the handler's task. A positive answer surfaces as ErrCanceled, never as a
// parse failure.
func checkCanceled(ctx context.Context, ph *progress.Handler) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	if ph != nil && ph.Canceled() {
		return fmt.Errorf("%w: task requested cancellation", ErrCanceled)
	}
	return nil
}
