package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/weektrack/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileExtractorPlainText(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ub3.tex", "Aufgabe 1 (a)\nAufgabe 2.\n")

	text, err := NewFileExtractor().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Aufgabe 1 (a)\nAufgabe 2.\n", text)
}

func TestFileExtractorUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ub3.docx", "PK\x03\x04")

	_, err := NewFileExtractor().Extract(context.Background(), path)
	assert.ErrorIs(t, err, ErrUnsupported)
}

// twoPagesText is the text of testdata/two_pages.pdf: one line per page,
// joined without any page separator.
const twoPagesText = "Aufgabe 1 (Grenzwerte) Aufgabe 2 (Reihen)" + "Aufgabe 3. Stetigkeit Aufgabe 4 (Bonus)"

func TestFileExtractorPDFPagesInOrder(t *testing.T) {
	text, err := NewFileExtractor().Extract(context.Background(), filepath.Join("testdata", "two_pages.pdf"))
	require.NoError(t, err)
	assert.Equal(t, twoPagesText, text)
}

func TestFileExtractorPDFWithoutExtension(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "two_pages.pdf"))
	require.NoError(t, err)
	path := writeFile(t, t.TempDir(), "uebungsblatt", string(data))

	text, err := NewFileExtractor().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, twoPagesText, text)
}

func TestFileExtractorCorruptPDF(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ub3.pdf", "this is not a pdf")

	text, err := NewFileExtractor().Extract(context.Background(), path)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.Empty(t, text)
}

func TestFileExtractorSniffsPDFMagic(t *testing.T) {
	dir := t.TempDir()
	// No extension, PDF header, broken body: treated as PDF, reported corrupt.
	path := writeFile(t, dir, "uebungsblatt", "%PDF-1.7\ngarbage")

	_, err := NewFileExtractor().Extract(context.Background(), path)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestFileExtractorMissingFile(t *testing.T) {
	_, err := NewFileExtractor().Extract(context.Background(), filepath.Join(t.TempDir(), "nope.tex"))
	assert.Error(t, err)
}

func TestFileExtractorCancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ub1.txt", "Aufgabe 1.")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileExtractor().Extract(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

// blockingExtractor never returns before its context is done.
type blockingExtractor struct{}

func (blockingExtractor) Extract(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	time.Sleep(10 * time.Millisecond)
	return "late", nil
}

func TestWithTimeout(t *testing.T) {
	ex := WithTimeout(blockingExtractor{}, 20*time.Millisecond)

	start := time.Now()
	text, err := ex.Extract(context.Background(), "ub1.pdf")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Empty(t, text)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestWithTimeoutDisabled(t *testing.T) {
	inner := &contract.MockExtractor{}
	assert.Same(t, inner, WithTimeout(inner, 0))
}

func TestWithTimeoutPassesResult(t *testing.T) {
	inner := &contract.MockExtractor{}
	inner.On("Extract", mock.Anything, "ub1.pdf").Return("Aufgabe 1.", nil)

	text, err := WithTimeout(inner, time.Second).Extract(context.Background(), "ub1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Aufgabe 1.", text)
	inner.AssertExpectations(t)
}

func TestWithCache(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ub1.tex", "v1")

	inner := &contract.MockExtractor{}
	inner.On("Extract", mock.Anything, path).Return("Aufgabe 1.", nil).Once()

	ex, err := WithCache(inner, 8)
	require.NoError(t, err)

	for range 3 {
		text, err := ex.Extract(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "Aufgabe 1.", text)
	}
	inner.AssertExpectations(t)
	assert.Equal(t, 1, ex.(*CachedExtractor).Len())
}

func TestWithCacheInvalidatesOnChange(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ub1.tex", "Aufgabe 1.")

	ex, err := WithCache(NewFileExtractor(), 8)
	require.NoError(t, err)

	text, err := ex.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Aufgabe 1.", text)

	require.NoError(t, os.WriteFile(path, []byte("Aufgabe 1. Aufgabe 2."), 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	text, err = ex.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Aufgabe 1. Aufgabe 2.", text)
}

func TestWithCacheDoesNotCacheFailures(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ub1.tex", "x")

	inner := &contract.MockExtractor{}
	inner.On("Extract", mock.Anything, path).Return("", ErrCorrupt).Twice()

	ex, err := WithCache(inner, 8)
	require.NoError(t, err)
	for range 2 {
		_, err := ex.Extract(context.Background(), path)
		assert.ErrorIs(t, err, ErrCorrupt)
	}
	inner.AssertExpectations(t)
}

func TestWithCacheDisabled(t *testing.T) {
	inner := &contract.MockExtractor{}
	ex, err := WithCache(inner, 0)
	require.NoError(t, err)
	assert.Same(t, inner, ex)
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ub2.txt", "Aufgabe 2 (")

	ex, err := New(time.Second, 4)
	require.NoError(t, err)
	text, err := ex.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Aufgabe 2 (", text)
}
