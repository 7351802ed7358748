// Package pdfutil provides local PDF operations: page counting, single-page
// extraction, and page rasterization to PNG. Rasterization shells out to
// poppler's pdftoppm, which must be present in the execution environment.
package pdfutil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// DefaultDPI is the rasterization resolution used when the caller passes a
// non-positive dpi.
const DefaultDPI = 200

// ErrRendererNotFound is returned by PageToImage when pdftoppm is not on PATH.
var ErrRendererNotFound = errors.New("pdftoppm not found: install poppler-utils to rasterize PDF pages")

// PageRangeError reports a 1-indexed page number outside [1, PageCount].
type PageRangeError struct {
	Page      int
	PageCount int
}

func (e *PageRangeError) Error() string {
	return fmt.Sprintf("page %d out of range (1-%d)", e.Page, e.PageCount)
}

// Hooks for tests; production code never touches these.
var (
	lookPath    = exec.LookPath
	runRenderer = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return exec.CommandContext(ctx, name, args...).CombinedOutput()
	}
)

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages in %s: %w", path, err)
	}
	return n, nil
}

// ExtractPage writes a new single-page PDF containing only the given
// 1-indexed page. On an out-of-range page it returns *PageRangeError and
// never writes the output file.
func ExtractPage(inputPath, outputPath string, page int) error {
	count, err := PageCount(inputPath)
	if err != nil {
		return err
	}
	if page < 1 || page > count {
		return &PageRangeError{Page: page, PageCount: count}
	}
	if err := api.TrimFile(inputPath, outputPath, []string{strconv.Itoa(page)}, nil); err != nil {
		return fmt.Errorf("extracting page %d: %w", page, err)
	}
	return nil
}

// PageToImage rasterizes one 1-indexed page to a PNG at the requested dpi and
// saves it at outputPath. pdftoppm appends ".png" to its output prefix; the
// result is renamed so the caller-supplied path is authoritative.
func PageToImage(ctx context.Context, inputPath, outputPath string, page, dpi int) error {
	count, err := PageCount(inputPath)
	if err != nil {
		return err
	}
	if page < 1 || page > count {
		return &PageRangeError{Page: page, PageCount: count}
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	renderer, err := lookPath("pdftoppm")
	if err != nil {
		return ErrRendererNotFound
	}

	prefix := strings.TrimSuffix(outputPath, ".png")
	args := []string{
		"-png",
		"-r", strconv.Itoa(dpi),
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		"-singlefile",
		inputPath,
		prefix,
	}
	slog.Debug("rasterizing page", "input", inputPath, "page", page, "dpi", dpi)
	if out, err := runRenderer(ctx, renderer, args...); err != nil {
		return fmt.Errorf("pdftoppm failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	if prefix+".png" != outputPath {
		if err := os.Rename(prefix+".png", outputPath); err != nil {
			return fmt.Errorf("renaming rendered image: %w", err)
		}
	}
	return nil
}
