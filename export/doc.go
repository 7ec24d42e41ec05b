// Package export renders decoded events as delimited text tables.
//
// A table has one row per event and one column per parameter. Values are
// written in plain decimal with the shortest digits that round-trip a float32,
// or with a fixed number of significant digits when a precision is set. The
// finished table can be compressed with any codec from the compress package.
//
//	w, err := export.NewCSVWriter(
//	    export.WithHeaderRow(names),
//	    export.WithCompression(format.CompressionZstd),
//	)
//	table, err := w.Render(events)
package export
