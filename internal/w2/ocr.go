package w2

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// OCR turns the first page of a PDF into text.
type OCR interface {
	FirstPageText(ctx context.Context, pdfPath string) (string, error)
}

// Tesseract renders the page with pdftoppm and reads it with tesseract.
type Tesseract struct {
	PdftoppmPath  string
	TesseractPath string
	DPI           int
}

// NewTesseract returns an OCR using the given binaries. Empty paths fall
// back to looking the binaries up on PATH.
func NewTesseract(pdftoppmPath, tesseractPath string, dpi int) *Tesseract {
	if pdftoppmPath == "" {
		pdftoppmPath = "pdftoppm"
	}
	if tesseractPath == "" {
		tesseractPath = "tesseract"
	}
	if dpi <= 0 {
		dpi = 200
	}
	return &Tesseract{PdftoppmPath: pdftoppmPath, TesseractPath: tesseractPath, DPI: dpi}
}

// FirstPageText implements OCR.
func (t *Tesseract) FirstPageText(ctx context.Context, pdfPath string) (string, error) {
	dir, err := os.MkdirTemp("", "w2-page-*")
	if err != nil {
		return "", fmt.Errorf("failed to create render directory: %w", err)
	}
	defer os.RemoveAll(dir)

	prefix := filepath.Join(dir, "page")
	if _, err := run(ctx, t.PdftoppmPath,
		"-f", "1", "-l", "1",
		"-r", strconv.Itoa(t.DPI),
		"-png", "-singlefile",
		pdfPath, prefix,
	); err != nil {
		return "", fmt.Errorf("failed to render pdf: %w", err)
	}

	out, err := run(ctx, t.TesseractPath, prefix+".png", "stdout")
	if err != nil {
		return "", fmt.Errorf("failed to read page text: %w", err)
	}
	return out, nil
}

func run(ctx context.Context, name string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", filepath.Base(name), err, msg)
		}
		return "", fmt.Errorf("%s: %w", filepath.Base(name), err)
	}
	return stdout.String(), nil
}
