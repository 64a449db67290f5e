// Package reader turns worksheet files into normalized page text.
//
// Three inputs are supported, chosen by [format.Detect] with a content
// sniff as fallback:
//
//   - PDF: converted by an external process, pdftotext -layout -fixed 4 by
//     default. The creation date and page count come from the PDF itself.
//   - Text: converter output saved earlier. The creation date is the file
//     modification time unless the caller supplies one.
//   - HTML: pdftotext -htmlmeta output. The creation date comes from the
//     CreationDate meta tag.
//
// # Opening Files
//
//	src, err := reader.Open("HB500.pdf", reader.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i, page := range src.Pages {
//	    fmt.Println(i+1, len(page))
//	}
//
// All text is decoded as UTF-8, or Windows-1252 when it is not valid UTF-8,
// and NFC-normalized. Pages are the pieces between form feeds; the piece
// after the final form feed is discarded.
package reader
