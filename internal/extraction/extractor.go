// Package extraction turns page-oriented documents into plain text.
//
// Extraction never fails from the caller's point of view: an unreadable page
// contributes no text and an unreadable document yields empty text. Callers that
// care about degraded output inspect Extraction.PageCount and FailedPages.
package extraction

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

var (
	errNullPage   = errors.New("page object is missing")
	errNoContents = errors.New("page content stream is missing")
)

// Extraction is the text recovered from one document.
type Extraction struct {
	// Text is the concatenation of all page texts in page order.
	Text string
	// Opened is true when the document container and page tree were read, even if
	// the document has no pages.
	Opened bool
	// PageCount is the number of pages the document declares.
	PageCount int
	// FailedPages lists 1-based page numbers whose text could not be decoded.
	FailedPages []int
}

// Parsed reports whether the document container could be read at all.
func (e Extraction) Parsed() bool {
	return e.Opened
}

// Extractor converts raw document bytes into text.
type Extractor interface {
	Extract(document []byte) Extraction
}

// PDFExtractor extracts text from PDF documents.
type PDFExtractor struct {
	logger *zap.Logger
}

// NewPDFExtractor returns a PDF extractor. A nil logger disables logging.
func NewPDFExtractor(logger *zap.Logger) *PDFExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFExtractor{logger: logger}
}

// Extract returns the text of every page of document.
func (e *PDFExtractor) Extract(document []byte) Extraction {
	reader, err := openPDF(document)
	if err != nil {
		e.logger.Warn("could not parse document, continuing with empty text",
			zap.Int("bytes", len(document)),
			zap.Error(err))
		return Extraction{}
	}

	count, err := safeNumPage(reader)
	if err != nil {
		e.logger.Warn("could not read page tree, continuing with empty text", zap.Error(err))
		return Extraction{}
	}

	result := collectPages(pdfPages{reader: reader, count: count})
	if len(result.FailedPages) > 0 {
		e.logger.Warn("some pages could not be decoded",
			zap.Ints("pages", result.FailedPages),
			zap.Int("page_count", result.PageCount))
	}
	e.logger.Debug("extracted document text",
		zap.Int("page_count", result.PageCount),
		zap.Int("chars", len(result.Text)))

	return result
}

// ExtractText is a convenience wrapper returning only the text.
func (e *PDFExtractor) ExtractText(document []byte) string {
	return e.Extract(document).Text
}

// openPDF constructs a reader, converting library panics on malformed input into errors.
func openPDF(document []byte) (reader *pdf.Reader, err error) {
	if len(document) == 0 {
		return nil, errors.New("document is empty")
	}

	defer func() {
		if r := recover(); r != nil {
			reader, err = nil, fmt.Errorf("malformed document: %v", r)
		}
	}()

	reader, err = pdf.NewReader(bytes.NewReader(document), int64(len(document)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return reader, nil
}

// pdfPages adapts a pdf.Reader to pageSource.
type pdfPages struct {
	reader *pdf.Reader
	count  int
}

func (p pdfPages) NumPage() int {
	return p.count
}

func (p pdfPages) PageText(num int) (string, error) {
	page := p.reader.Page(num)
	if page.V.IsNull() {
		return "", errNullPage
	}
	if page.V.Key("Contents").IsNull() {
		return "", errNoContents
	}
	return page.GetPlainText(nil)
}
