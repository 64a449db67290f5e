package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
)

// Create creates the output file at path. Paths ending in ".xz" are
// compressed. Closing the returned writer finishes the compressed stream and
// closes the file.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}
	if !isXZ(path) {
		return f, nil
	}

	zw, err := xz.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create xz writer: %w", err)
	}
	return &xzFile{zw: zw, f: f}, nil
}

// Open opens a file written by Create, decompressing ".xz" paths.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	if !isXZ(path) {
		return f, nil
	}

	zr, err := xz.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}
	return struct {
		io.Reader
		io.Closer
	}{zr, f}, nil
}

func isXZ(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xz")
}

type xzFile struct {
	zw *xz.Writer
	f  *os.File
}

func (x *xzFile) Write(p []byte) (int, error) {
	return x.zw.Write(p)
}

func (x *xzFile) Close() error {
	if err := x.zw.Close(); err != nil {
		x.f.Close()
		return fmt.Errorf("failed to finish xz stream: %w", err)
	}
	return x.f.Close()
}
