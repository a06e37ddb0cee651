// Package coord defines the fixed-shape numeric stores that ingestion
// writes into, and ships three implementations: a dense in-memory store,
// a store backed by an in-memory SQLite table, and an Apache Arrow
// columnar store.
//
// A Sink is created by a Factory with a known row and column count and
// never changes shape afterwards. Row and column indices are validated:
// out-of-range access and wrong-length buffers are programming errors and
// panic rather than returning an error.
package coord
