package coordcsv

import (
	"errors"
)

// Sentinel errors returned by Sniff, Load, Save, and Write. All of them are
// terminal for the current operation; the caller decides whether to retry
// with different options (for example another delimiter or start column).
var (
	// ErrNoDataFound indicates that no row in the source produced a
	// non-empty numeric column mask.
	ErrNoDataFound = errors.New("coordcsv: no numeric data found")

	// ErrMalformedRow indicates that a row's token count differs from the
	// token count of the row that established the column mask.
	ErrMalformedRow = errors.New("coordcsv: malformed row")

	// ErrTruncatedRow indicates that a data row ended before all masked
	// columns were seen.
	ErrTruncatedRow = errors.New("coordcsv: truncated row")

	// ErrUnparseableValue indicates that a masked token could not be parsed
	// as a floating-point number.
	ErrUnparseableValue = errors.New("coordcsv: unparseable value")

	// ErrCanceled indicates that the operation observed a cancellation
	// request. Cancellation is a cooperative abort, not malformed input:
	// none of the parse-error sentinels above ever match a canceled load.
	ErrCanceled = errors.New("coordcsv: canceled")

	// ErrHeaderMismatch indicates that Save was given headers whose count
	// differs from the sink's column count.
	ErrHeaderMismatch = errors.New("coordcsv: header count != column count")

	// ErrUnknownCharset indicates a charset name that could not be resolved
	// to an encoding.
	ErrUnknownCharset = errors.New("coordcsv: unknown charset")
)
