package extraction

import (
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/resume-matcher/internal/extraction/pdftest"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakePages serves canned page texts. A page listed in errs fails with an error;
// a page listed in panics makes the source panic.
type fakePages struct {
	texts  []string
	errs   map[int]bool
	panics map[int]bool
}

func (f fakePages) NumPage() int { return len(f.texts) }

func (f fakePages) PageText(num int) (string, error) {
	if f.panics[num] {
		panic("corrupt content stream")
	}
	if f.errs[num] {
		return "", errors.New("cannot decode page")
	}
	return f.texts[num-1], nil
}

func TestCollectPages_AllPagesSucceed(t *testing.T) {
	got := collectPages(fakePages{texts: []string{"one ", "two ", "three"}})

	assert.Equal(t, "one two three", got.Text)
	assert.Equal(t, 3, got.PageCount)
	assert.Empty(t, got.FailedPages)
}

func TestCollectPages_FailedPageContributesNothing(t *testing.T) {
	src := fakePages{
		texts: []string{"Python ", "ignored", "SQL"},
		errs:  map[int]bool{2: true},
	}
	got := collectPages(src)

	assert.Equal(t, "Python SQL", got.Text)
	assert.Equal(t, []int{2}, got.FailedPages)
}

func TestCollectPages_PanickingPageIsRecovered(t *testing.T) {
	src := fakePages{
		texts:  []string{"first ", "second ", "third"},
		panics: map[int]bool{1: true, 3: true},
	}
	got := collectPages(src)

	assert.Equal(t, "second ", got.Text)
	assert.Equal(t, []int{1, 3}, got.FailedPages)
}

func TestCollectPages_NoPages(t *testing.T) {
	got := collectPages(fakePages{})
	assert.Equal(t, "", got.Text)
	assert.Equal(t, 0, got.PageCount)
	assert.True(t, got.Parsed())
}

func TestPDFExtractor_ExtractsPagesInOrder(t *testing.T) {
	doc := pdftest.Build("Experienced in Python and SQL.", "Docker and AWS on Linux.")

	got := NewPDFExtractor(nil).Extract(doc)

	assert.Equal(t, 2, got.PageCount)
	assert.Empty(t, got.FailedPages)
	assert.Contains(t, got.Text, "Experienced in Python and SQL.")
	assert.Contains(t, got.Text, "Docker and AWS on Linux.")
	assert.Less(t, strings.Index(got.Text, "Python"), strings.Index(got.Text, "Docker"))
}

func TestPDFExtractor_OneBrokenPageAmongThree(t *testing.T) {
	broken := map[string]pdftest.Page{
		"unknown stream filter":  {Text: "Hidden Kubernetes text", Filter: "BogusDecode"},
		"missing content stream": {MissingContents: true},
	}

	for name, page := range broken {
		t.Run(name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)
			doc := pdftest.BuildPages(
				pdftest.Page{Text: "Page one mentions Python."},
				page,
				pdftest.Page{Text: "Page three mentions Docker."},
			)

			got := NewPDFExtractor(zap.New(core)).Extract(doc)

			assert.True(t, got.Parsed())
			assert.Equal(t, 3, got.PageCount)
			assert.Equal(t, []int{2}, got.FailedPages)
			assert.Contains(t, got.Text, "Page one mentions Python.")
			assert.Contains(t, got.Text, "Page three mentions Docker.")
			assert.NotContains(t, got.Text, "Kubernetes")
			assert.Less(t, strings.Index(got.Text, "Python"), strings.Index(got.Text, "Docker"))
			assert.Equal(t, 1, logs.FilterMessage("some pages could not be decoded").Len())
		})
	}
}

func TestPDFExtractor_ZeroPages(t *testing.T) {
	got := NewPDFExtractor(nil).Extract(pdftest.BuildPages())

	assert.True(t, got.Parsed())
	assert.Equal(t, 0, got.PageCount)
	assert.Empty(t, got.FailedPages)
	assert.Equal(t, "", got.Text)
}

func TestPDFExtractor_MalformedDocument(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	extractor := NewPDFExtractor(zap.New(core))

	inputs := map[string][]byte{
		"empty":       nil,
		"not a pdf":   []byte("hello, this is plain text"),
		"header only": []byte("%PDF-1.4\n"),
		"truncated":   pdftest.Build("Python")[:60],
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			got := extractor.Extract(input)
			assert.Equal(t, "", got.Text)
			assert.False(t, got.Parsed())
		})
	}

	assert.Equal(t, len(inputs), logs.FilterMessage("could not parse document, continuing with empty text").Len())
}

func TestPDFExtractor_ExtractText(t *testing.T) {
	doc := pdftest.Build("Kubernetes operator")
	assert.Contains(t, NewPDFExtractor(zap.NewNop()).ExtractText(doc), "Kubernetes operator")
}
