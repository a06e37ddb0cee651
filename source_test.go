package coordcsv

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, src Source) string {
	t.Helper()
	rc, err := src.Open()
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	return string(data)
}

func gzipBytes(t *testing.T, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func TestBytesSource(t *testing.T) {
	t.Parallel()

	t.Run("every open starts from the top", func(t *testing.T) {
		t.Parallel()
		src := NewBytesSource([]byte("1,2\n3,4\n"))

		assert.Equal(t, "1,2\n3,4\n", readAll(t, src))
		assert.Equal(t, "1,2\n3,4\n", readAll(t, src))
	})
}

func TestFileSource(t *testing.T) {
	t.Parallel()

	t.Run("plain file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "data.csv")
		require.NoError(t, os.WriteFile(path, []byte("1,2\n"), 0o600))

		src := NewFileSource(path)
		assert.Equal(t, "1,2\n", readAll(t, src))
		assert.Equal(t, "1,2\n", readAll(t, src))
	})

	t.Run("gzip is undone by extension", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "data.csv.gz")
		require.NoError(t, os.WriteFile(path, gzipBytes(t, "1,2\n3,4\n"), 0o600))

		src := NewFileSource(path)
		assert.Equal(t, "1,2\n3,4\n", readAll(t, src))
	})

	t.Run("missing file fails on open", func(t *testing.T) {
		t.Parallel()
		src := NewFileSource(filepath.Join(t.TempDir(), "absent.csv"))

		_, err := src.Open()
		assert.Error(t, err)
	})

	t.Run("corrupt compressed data fails on open", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "data.csv.gz")
		require.NoError(t, os.WriteFile(path, []byte("not gzip at all"), 0o600))

		_, err := NewFileSource(path).Open()
		assert.Error(t, err)
	})
}

func TestFSSource(t *testing.T) {
	t.Parallel()

	t.Run("reads from an fs.FS", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			"data/points.csv":    {Data: []byte("1,2\n")},
			"data/points.csv.gz": {Data: gzipBytes(t, "3,4\n")},
		}

		assert.Equal(t, "1,2\n", readAll(t, NewFSSource(fsys, "data/points.csv")))
		assert.Equal(t, "3,4\n", readAll(t, NewFSSource(fsys, "data/points.csv.gz")))
	})

	t.Run("missing entry fails on open", func(t *testing.T) {
		t.Parallel()
		_, err := NewFSSource(fstest.MapFS{}, "absent.csv").Open()
		assert.Error(t, err)
	})
}
