// Package pdftest builds tiny but structurally valid PDF documents for
// tests, with correct xref offsets so pdfcpu accepts them.
package pdftest

import (
	"fmt"
	"strings"
)

// BuildPDF returns a valid single- or multi-page PDF with one text line per
// page, one page per entry in texts.
func BuildPDF(texts ...string) []byte {
	n := len(texts)
	fontObj := 2 + 2*n + 1
	total := fontObj

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, total+1)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	kids := make([]string, n)
	for k := range kids {
		kids[k] = fmt.Sprintf("%d 0 R", 3+2*k)
	}
	offsets[2] = b.Len()
	fmt.Fprintf(&b, "2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), n)

	for k, text := range texts {
		escaped := strings.ReplaceAll(text, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, "(", `\(`)
		escaped = strings.ReplaceAll(escaped, ")", `\)`)

		pageObj := 3 + 2*k
		contentObj := pageObj + 1

		offsets[pageObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 %d 0 R >> >> >>\nendobj\n",
			pageObj, contentObj, fontObj)

		stream := "BT\n/F1 12 Tf\n72 720 Td\n(" + escaped + ") Tj\nET"
		offsets[contentObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			contentObj, len(stream), stream)
	}

	offsets[fontObj] = b.Len()
	fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n", fontObj)

	xrefOffset := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", total+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= total; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		total+1, xrefOffset)

	return []byte(b.String())
}

// Corrupt returns bytes that are not a decodable PDF.
func Corrupt() []byte {
	return []byte("%PDF-1.4\nthis is not a real pdf body\n%%EOF\n")
}
