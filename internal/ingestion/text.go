// Package ingestion loads job descriptions from files and URLs as clean text.
package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/extraction"
)

// ErrEmptyContent is returned when a source yields no usable text.
var ErrEmptyContent = errors.New("no text content found")

var (
	spaceRun     = regexp.MustCompile(`[ \t\f\v]+`)
	blankLineRun = regexp.MustCompile(`\n{3,}`)
	pdfMagic     = []byte("%PDF-")
)

// CleanText normalises line endings and whitespace while keeping paragraph and list
// structure. At most one blank line separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLineRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses inner whitespace. Leading indentation survives only on list items.
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	content := spaceRun.ReplaceAllString(trimmed, " ")
	if isBulletLine(trimmed) {
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		return strings.Repeat(" ", indent) + content
	}
	return content
}

func isBulletLine(line string) bool {
	for _, marker := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}

// FromFile reads a job description from a text or PDF file and returns cleaned text.
// PDFs are recognised by their header, not by extension.
func FromFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	text := string(content)
	if bytes.HasPrefix(content, pdfMagic) {
		text = extraction.NewPDFExtractor(nil).ExtractText(content)
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", fmt.Errorf("%s: %w", path, ErrEmptyContent)
	}
	return cleaned, nil
}
