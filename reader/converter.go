package reader

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"slices"
	"strings"
)

// DefaultBinary is the converter executable used when none is configured.
const DefaultBinary = "pdftotext"

// DefaultArgs returns the layout-preserving converter flags.
func DefaultArgs() []string {
	return []string{"-layout", "-fixed", "4"}
}

// Converter converts a PDF file to layout-preserving text.
type Converter interface {
	Convert(ctx context.Context, path string) ([]byte, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(ctx context.Context, path string) ([]byte, error)

// Convert calls f.
func (f ConverterFunc) Convert(ctx context.Context, path string) ([]byte, error) {
	return f(ctx, path)
}

// PDFToText runs an external pdftotext process and reads its standard
// output.
type PDFToText struct {
	// Binary is the executable name or path.
	// Default: DefaultBinary
	Binary string

	// Args precede the input path and "-".
	// Default: DefaultArgs()
	Args []string
}

// Command returns the command line that converts path.
func (c PDFToText) Command(path string) (string, []string) {
	bin := c.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	args := c.Args
	if args == nil {
		args = DefaultArgs()
	}
	return bin, append(slices.Clone(args), path, "-")
}

// Convert runs the converter on path.
func (c PDFToText) Convert(ctx context.Context, path string) ([]byte, error) {
	bin, args := c.Command(path)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debugf("running %s %s", bin, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s failed: %w: %s", bin, err, msg)
		}
		return nil, fmt.Errorf("%s failed: %w", bin, err)
	}
	return stdout.Bytes(), nil
}
