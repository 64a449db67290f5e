// Package htmldoc reads converter output wrapped in HTML, as written by
// pdftotext -htmlmeta: document metadata in head meta tags and the
// layout-preserving text in pre elements.
package htmldoc

import (
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// CreationDateMeta is the meta tag name carrying the PDF creation date.
const CreationDateMeta = "CreationDate"

// Reader provides access to the content of one HTML document.
type Reader struct {
	doc      *html.Node
	title    string
	metadata map[string]string
	text     string
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{
		doc:      doc,
		metadata: make(map[string]string),
	}

	// Extract title and metadata from head
	reader.extractHead(doc)

	// Extract preformatted text from body
	reader.extractBody(doc)

	return reader, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	// Nothing to close for HTML (no file handles kept)
	return nil
}

// Title returns the document title.
func (r *Reader) Title() string {
	return r.title
}

// Metadata returns a copy of the meta tags by name.
func (r *Reader) Metadata() map[string]string {
	return maps.Clone(r.metadata)
}

// Meta returns the content of the named meta tag, or "".
func (r *Reader) Meta(name string) string {
	return r.metadata[name]
}

// CreationDate returns the raw creation date meta value, or "".
func (r *Reader) CreationDate() string {
	return r.metadata[CreationDateMeta]
}

// Text returns the concatenated content of every pre element, with
// whitespace preserved.
func (r *Reader) Text() string {
	return r.text
}

// extractHead extracts title and meta tags from the head element.
func (r *Reader) extractHead(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "head" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				switch c.Data {
				case "title":
					r.title = strings.TrimSpace(rawText(c))
				case "meta":
					name, content := "", ""
					for _, attr := range c.Attr {
						switch attr.Key {
						case "name", "property":
							name = attr.Val
						case "content":
							content = attr.Val
						}
					}
					if name != "" && content != "" {
						r.metadata[name] = content
					}
				}
			}
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.extractHead(c)
	}
}

// extractBody collects the text of the pre elements of the body.
func (r *Reader) extractBody(n *html.Node) {
	body := findElement(n, "body")
	if body == nil {
		// No body tag, try to extract from root
		body = n
	}

	var sb strings.Builder
	for _, pre := range findElements(body, "pre") {
		sb.WriteString(rawText(pre))
	}
	r.text = sb.String()
}

func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// findElements returns every element named tagName in document order,
// without descending into matches.
func findElements(n *html.Node, tagName string) []*html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return []*html.Node{n}
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findElements(c, tagName)...)
	}
	return out
}

// rawText returns the text of n and its descendants without trimming.
func rawText(n *html.Node) string {
	var sb strings.Builder
	rawTextRecursive(n, &sb)
	return sb.String()
}

func rawTextRecursive(n *html.Node, sb *strings.Builder) {
	switch {
	case n.Type == html.TextNode:
		sb.WriteString(n.Data)
	case n.Type == html.ElementNode && n.Data == "br":
		sb.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rawTextRecursive(c, sb)
	}
}
