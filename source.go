package coordcsv

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Source is a re-openable stream of delimited text. Loading needs two full
// traversals (one to sniff the schema, one to stream values), so sources
// hand out a fresh reader per Open rather than a single consumed stream.
type Source interface {
	// Open returns a reader positioned at the start of the text. The
	// caller must close it; closing releases every resource the open
	// acquired.
	Open() (io.ReadCloser, error)
}

// NewFileSource creates a Source for an OS path. Compression is detected
// from the file extension (.gz, .bz2, .xz, .zst) and undone transparently.
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

// NewFSSource creates a Source for an entry in an fs.FS, such as an
// embedded filesystem. Compression is detected from the path extension.
func NewFSSource(fsys fs.FS, path string) Source {
	return &fsSource{fsys: fsys, path: path}
}

// NewBytesSource creates a Source over an in-memory buffer. The buffer is
// treated as uncompressed text.
func NewBytesSource(data []byte) Source {
	return &bytesSource{data: data}
}

type fileSource struct {
	path string
}

func (s *fileSource) Open() (io.ReadCloser, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return wrapCompressed(file, detectCompressionType(s.path), file.Close)
}

type fsSource struct {
	fsys fs.FS
	path string
}

func (s *fsSource) Open() (io.ReadCloser, error) {
	file, err := s.fsys.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fs file: %w", err)
	}
	return wrapCompressed(file, detectCompressionType(s.path), file.Close)
}

type bytesSource struct {
	data []byte
}

func (s *bytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

// wrapCompressed layers a decompression reader over raw and bundles the
// decoder cleanup with closeRaw into a single ReadCloser.
func wrapCompressed(raw io.Reader, compression CompressionType, closeRaw func() error) (io.ReadCloser, error) {
	reader, cleanup, err := newDecompressedReader(raw, compression)
	if err != nil {
		closeErr := closeRaw()
		if closeErr != nil {
			return nil, errors.Join(err, fmt.Errorf("failed to close source: %w", closeErr))
		}
		return nil, err
	}
	return &compositeReadCloser{reader: reader, closers: []func() error{cleanup, closeRaw}}, nil
}

// compositeReadCloser closes its cleanup functions in order, joining any
// failures.
type compositeReadCloser struct {
	reader  io.Reader
	closers []func() error
}

func (c *compositeReadCloser) Read(p []byte) (int, error) {
	return c.reader.Read(p)
}

func (c *compositeReadCloser) Close() error {
	var errs []error
	for _, closer := range c.closers {
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
