package extraction

import (
	"fmt"
	"strings"
)

// pageSource is an ordered, 1-indexed sequence of pages that can each yield text.
type pageSource interface {
	NumPage() int
	PageText(num int) (string, error)
}

// collectPages concatenates the text of every page in order. Pages that fail to
// decode contribute an empty string and are recorded in FailedPages.
func collectPages(src pageSource) Extraction {
	count := src.NumPage()

	var sb strings.Builder
	var failed []int
	for num := 1; num <= count; num++ {
		text, ok := extractPage(src, num)
		if !ok {
			failed = append(failed, num)
		}
		sb.WriteString(text)
	}

	return Extraction{
		Text:        sb.String(),
		Opened:      true,
		PageCount:   count,
		FailedPages: failed,
	}
}

// extractPage never fails: errors and panics from the source become ("", false).
func extractPage(src pageSource, num int) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			text, ok = "", false
		}
	}()

	text, err := src.PageText(num)
	if err != nil {
		return "", false
	}
	return text, true
}

// safeNumPage guards against sources whose page tree is broken.
func safeNumPage(src interface{ NumPage() int }) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("reading page count: %v", r)
		}
	}()
	return src.NumPage(), nil
}
