package coordcsv

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// resolveCharset looks up an encoding by its IANA name, such as
// "ISO-8859-1" or "Shift_JIS". An empty name means UTF-8 and resolves to
// nil: no transformation is applied.
func resolveCharset(name string) (encoding.Encoding, error) {
	if name == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCharset, name)
	}
	return enc, nil
}

// decodeReader wraps r so that bytes in the named charset come out as
// UTF-8. With an empty name r is returned unchanged.
func decodeReader(r io.Reader, charset string) (io.Reader, error) {
	enc, err := resolveCharset(charset)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// encodeWriter wraps w so that UTF-8 written to it comes out in the named
// charset. The returned cleanup flushes any partial transformation state.
func encodeWriter(w io.Writer, charset string) (io.Writer, func() error, error) {
	enc, err := resolveCharset(charset)
	if err != nil {
		return nil, nil, err
	}
	if enc == nil {
		return w, func() error { return nil }, nil
	}
	tw := transform.NewWriter(w, enc.NewEncoder())
	return tw, tw.Close, nil
}
