package pdfutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// writeTestPDF writes a minimal but structurally valid PDF with the given
// number of pages: catalog, page tree, one shared empty content stream, and
// one page object per page, with a correct xref table.
func writeTestPDF(t *testing.T, path string, pages int) {
	t.Helper()

	var buf bytes.Buffer
	objCount := 3 + pages
	offsets := make([]int, objCount+1)

	addObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	kids := ""
	for i := 0; i < pages; i++ {
		if i > 0 {
			kids += " "
		}
		kids += fmt.Sprintf("%d 0 R", 4+i)
	}

	addObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	addObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, pages))
	addObj(3, "<< /Length 0 >>\nstream\n\nendstream")
	for i := 0; i < pages; i++ {
		addObj(4+i, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 3 0 R >>")
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", objCount+1)
	buf.WriteString("0000000000 65535 f \n")
	for num := 1; num <= objCount; num++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[num])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", objCount+1, xrefStart)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing fixture PDF: %v", err)
	}
}

func TestPageCount(t *testing.T) {
	dir := t.TempDir()

	for _, pages := range []int{1, 3, 7} {
		path := filepath.Join(dir, fmt.Sprintf("doc%d.pdf", pages))
		writeTestPDF(t, path, pages)

		got, err := PageCount(path)
		if err != nil {
			t.Fatalf("PageCount(%d pages) failed: %v", pages, err)
		}
		if got != pages {
			t.Fatalf("PageCount(%d pages) = %d", pages, got)
		}
	}
}

func TestPageCountMissingFile(t *testing.T) {
	if _, err := PageCount(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPageCountNotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-pdf.pdf")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := PageCount(path); err == nil {
		t.Fatal("expected error for unparseable file")
	}
}

func TestExtractPageYieldsOnePageDocument(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pdf")
	writeTestPDF(t, in, 3)

	for page := 1; page <= 3; page++ {
		out := filepath.Join(dir, fmt.Sprintf("page%d.pdf", page))
		if err := ExtractPage(in, out, page); err != nil {
			t.Fatalf("ExtractPage(%d) failed: %v", page, err)
		}
		got, err := PageCount(out)
		if err != nil {
			t.Fatalf("counting extracted page %d: %v", page, err)
		}
		if got != 1 {
			t.Fatalf("extracted document has %d pages, want 1", got)
		}
	}
}

func TestExtractPageOutOfRange(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pdf")
	writeTestPDF(t, in, 2)

	for _, page := range []int{0, -1, 3, 100} {
		out := filepath.Join(dir, fmt.Sprintf("out%d.pdf", page))
		err := ExtractPage(in, out, page)

		var rangeErr *PageRangeError
		if !errors.As(err, &rangeErr) {
			t.Fatalf("ExtractPage(%d): expected *PageRangeError, got %v", page, err)
		}
		if rangeErr.Page != page || rangeErr.PageCount != 2 {
			t.Fatalf("unexpected range error: %+v", rangeErr)
		}
		if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
			t.Fatalf("ExtractPage(%d) must not write an output file", page)
		}
	}
}

// fakeRenderer installs stub lookPath/runRenderer hooks that write a PNG whose
// dimensions are a pure function of dpi, mimicking pdftoppm's -singlefile
// prefix behavior.
func fakeRenderer(t *testing.T) {
	t.Helper()
	origLook, origRun := lookPath, runRenderer
	t.Cleanup(func() {
		lookPath, runRenderer = origLook, origRun
	})

	lookPath = func(string) (string, error) { return "/usr/bin/pdftoppm", nil }
	runRenderer = func(_ context.Context, _ string, args ...string) ([]byte, error) {
		dpi := 0
		for i := 0; i < len(args)-1; i++ {
			if args[i] == "-r" {
				dpi, _ = strconv.Atoi(args[i+1])
			}
		}
		prefix := args[len(args)-1]

		img := image.NewRGBA(image.Rect(0, 0, dpi*17/2, dpi*11))
		f, err := os.Create(prefix + ".png")
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return nil, png.Encode(f, img)
	}
}

func TestPageToImageStableDimensions(t *testing.T) {
	fakeRenderer(t)

	dir := t.TempDir()
	in := filepath.Join(dir, "in.pdf")
	writeTestPDF(t, in, 2)

	decodeDims := func(path string) (int, int) {
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("opening %s: %v", path, err)
		}
		defer f.Close()
		cfg, err := png.DecodeConfig(f)
		if err != nil {
			t.Fatalf("decoding %s: %v", path, err)
		}
		return cfg.Width, cfg.Height
	}

	first := filepath.Join(dir, "first.png")
	second := filepath.Join(dir, "second.png")
	for _, out := range []string{first, second} {
		if err := PageToImage(context.Background(), in, out, 1, 300); err != nil {
			t.Fatalf("PageToImage failed: %v", err)
		}
	}

	w1, h1 := decodeDims(first)
	w2, h2 := decodeDims(second)
	if w1 != w2 || h1 != h2 {
		t.Fatalf("dimensions differ between runs: %dx%d vs %dx%d", w1, h1, w2, h2)
	}
}

func TestPageToImageRenamesWhenOutputLacksPNGSuffix(t *testing.T) {
	fakeRenderer(t)

	dir := t.TempDir()
	in := filepath.Join(dir, "in.pdf")
	writeTestPDF(t, in, 1)

	out := filepath.Join(dir, "page.raster")
	if err := PageToImage(context.Background(), in, out, 1, 0); err != nil {
		t.Fatalf("PageToImage failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected output at the caller-supplied path: %v", err)
	}
	if _, err := os.Stat(out + ".png"); !os.IsNotExist(err) {
		t.Fatal("intermediate .png file should have been renamed away")
	}
}

func TestPageToImageOutOfRange(t *testing.T) {
	fakeRenderer(t)

	dir := t.TempDir()
	in := filepath.Join(dir, "in.pdf")
	writeTestPDF(t, in, 1)

	var rangeErr *PageRangeError
	err := PageToImage(context.Background(), in, filepath.Join(dir, "out.png"), 2, 200)
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected *PageRangeError, got %v", err)
	}
}

func TestPageToImageRendererMissing(t *testing.T) {
	origLook := lookPath
	t.Cleanup(func() { lookPath = origLook })
	lookPath = func(string) (string, error) { return "", errors.New("not found") }

	dir := t.TempDir()
	in := filepath.Join(dir, "in.pdf")
	writeTestPDF(t, in, 1)

	err := PageToImage(context.Background(), in, filepath.Join(dir, "out.png"), 1, 200)
	if !errors.Is(err, ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}
