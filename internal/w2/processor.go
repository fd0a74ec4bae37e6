package w2

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrEmptyUpload is returned for a zero-length upload.
	ErrEmptyUpload = errors.New("uploaded file is empty")
	// ErrNotPDF is returned when the upload does not look like a PDF.
	ErrNotPDF = errors.New("uploaded file is not a pdf")
	// ErrExtraction is returned when the document could not be read.
	ErrExtraction = errors.New("failed to extract data from W-2")
)

// CheckPDF sniffs data and rejects anything that is not a PDF.
func CheckPDF(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyUpload
	}
	if m := mimetype.Detect(data); !m.Is("application/pdf") {
		return fmt.Errorf("%w: detected %s", ErrNotPDF, m.String())
	}
	return nil
}

// Processor writes uploads to a fixed path and reads them back with OCR.
// Each upload overwrites the previous one, so the write and the read are
// done under one lock.
type Processor struct {
	path string
	ocr  OCR
	mu   sync.Mutex
}

// NewProcessor creates a Processor that stores uploads at path.
func NewProcessor(path string, ocr OCR) *Processor {
	return &Processor{path: path, ocr: ocr}
}

// Process stores data at the upload path and extracts the W-2 figures.
func (p *Processor) Process(ctx context.Context, data []byte) (*Extraction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	text, err := p.ocr.FirstPageText(ctx, p.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	return Parse(text), nil
}
