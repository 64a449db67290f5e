// Package export writes extracted rows.
//
// [Writer] produces the delimited text format: a header line followed by
// one line per row, every field enclosed in double quotes with embedded
// quotes doubled. Tab and comma delimiters are supported.
//
//	w := export.NewWriter(os.Stdout, export.DelimiterFor(path))
//	if err := w.WriteAll(doc.Rows); err != nil {
//	    return err
//	}
//
// [Create] opens an output file and compresses it with xz when the path
// ends in ".xz". [SQLite] stores documents and their rows in a database.
package export
