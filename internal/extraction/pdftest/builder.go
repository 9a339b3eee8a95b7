// Package pdftest builds small, valid PDF documents in memory for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Page describes one page of a generated document. If RawContent is set it is used
// verbatim as the page content stream; otherwise Text is drawn with a standard font.
//
// Filter names a stream filter declared on the content stream without encoding the data;
// an unknown name makes the page undecodable. MissingContents points /Contents at an
// object that does not exist.
type Page struct {
	Text            string
	RawContent      string
	Filter          string
	MissingContents bool
}

// Build returns a PDF with one page per text.
func Build(texts ...string) []byte {
	pages := make([]Page, len(texts))
	for i, t := range texts {
		pages[i] = Page{Text: t}
	}
	return BuildPages(pages...)
}

// BuildPages returns a PDF with the given pages.
//
// Object layout: 1 catalog, 2 page tree, 3 font, then a (page, content) pair per page.
func BuildPages(pages ...Page) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	objCount := 3 + 2*len(pages)
	offsets := make([]int, objCount+1)

	writeObj := func(id int, body string) {
		offsets[id] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", id, body)
	}

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", pageID(i))
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	writeObj(3, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, p := range pages {
		contentsID := pageID(i) + 1
		if p.MissingContents {
			contentsID = missingID
		}
		writeObj(pageID(i), fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			contentsID))

		content := p.RawContent
		if content == "" {
			content = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", escape(p.Text))
		}
		filter := ""
		if p.Filter != "" {
			filter = " /Filter /" + p.Filter
		}
		writeObj(pageID(i)+1, fmt.Sprintf("<< /Length %d%s >>\nstream\n%s\nendstream", len(content), filter, content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", objCount+1)
	buf.WriteString("0000000000 65535 f \n")
	for id := 1; id <= objCount; id++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[id])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", objCount+1, xref)

	return buf.Bytes()
}

// missingID is an object number past every generated object; it is absent from the xref.
const missingID = 9999

func pageID(index int) int {
	return 4 + 2*index
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
