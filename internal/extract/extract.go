// Package extract turns task documents into plain text.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/weektrack/internal/contract"
	"github.com/ledongthuc/pdf"
)

// Sentinel errors returned by extractors.
var (
	ErrUnsupported = errors.New("unsupported document type")
	ErrCorrupt     = errors.New("corrupt document")
)

// pdfMagic starts every PDF file.
var pdfMagic = []byte("%PDF-")

// textExtensions are read as UTF-8 without conversion.
var textExtensions = map[string]struct{}{
	"":      {},
	".tex":  {},
	".txt":  {},
	".text": {},
	".md":   {},
}

// FileExtractor reads PDF and plain text documents from disk.
type FileExtractor struct{}

var _ contract.Extractor = &FileExtractor{} // Compile-time check

// NewFileExtractor creates a new document extractor.
func NewFileExtractor() *FileExtractor {
	return &FileExtractor{}
}

// New builds the extractor stack used by the scanner: an in-memory cache in
// front of a per-document timeout in front of the file reader.
func New(timeout time.Duration, cacheSize int) (contract.Extractor, error) {
	return WithCache(WithTimeout(NewFileExtractor(), timeout), cacheSize)
}

// Extract implements the contract.Extractor interface.
func (e *FileExtractor) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	isPDF, err := sniffPDF(path)
	if err != nil {
		return "", err
	}
	if isPDF {
		return extractPDF(path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := textExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// sniffPDF reports whether path is a PDF, by extension or by magic bytes.
func sniffPDF(path string) (bool, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return true, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, len(pdfMagic))
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return bytes.Equal(head[:n], pdfMagic), nil
}

// extractPDF concatenates the plain text of every page in order.
// The pdf package panics on some malformed inputs, so panics become ErrCorrupt.
func extractPDF(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: %s: %v", ErrCorrupt, filepath.Base(path), r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrCorrupt, filepath.Base(path), err)
	}
	defer func() { _ = f.Close() }()

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: %s page %d: %v", ErrCorrupt, filepath.Base(path), i, err)
		}
		b.WriteString(pageText)
	}
	return b.String(), nil
}
