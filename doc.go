// Package coordcsv loads numeric data from delimited text files into
// fixed-shape coordinate stores, and writes such stores back out as
// delimited text.
//
// The loader makes two passes over a source. The first pass (the sniffer)
// determines the shape of the data: which row is the first data row, how
// many data rows follow, and which columns hold parseable numbers. The
// second pass streams the matching values into a sink allocated with that
// exact shape. Two passes are required because sink factories need the
// row and column counts up front.
//
// # Basic Usage
//
//	factory := coord.NewMemoryFactory()
//	sink, err := coordcsv.LoadFile(ctx, "points.csv", "points", factory)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	row := make([]float64, sink.ColumnCount())
//	for i := range sink.RowCount() {
//	    sink.GetRow(i, row)
//	    // ...
//	}
//
// Header lines, row-id columns, and non-numeric columns are detected and
// skipped automatically. Blank lines never count as data rows.
//
// # Input Sources
//
// Sources are re-openable so both passes can traverse the same bytes:
//
//   - NewFileSource: an OS path; .gz, .bz2, .xz, and .zst files are
//     decompressed transparently
//   - NewFSSource: an entry in an fs.FS (works with go:embed)
//   - NewBytesSource: an in-memory buffer
//
// # Progress and Cancellation
//
// Long loads can report hierarchical, throttled progress through a
// progress.Handler and are canceled cooperatively through the context,
// checked once per input line:
//
//	ph := progress.NewTaskHandler(task, 0)
//	sink, err := coordcsv.Load(ctx, src, "points", factory,
//	    coordcsv.NewLoadOptions().WithProgress(ph))
//
// # Writing
//
// Save and Write are the inverse of Load: they iterate a sink in row order
// and emit one delimited line per row, optionally with a header line, a
// per-value format pattern, and output compression. With the default
// rendering the written text round-trips through Load without value loss.
package coordcsv
