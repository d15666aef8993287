package ingest

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// GarbledTextFloor is the minimum extracted-text length, in runes,
// below which a PDF is assumed to be scanned or mis-encoded and routed
// to the vision path instead.
const GarbledTextFloor = 200

// ExtractText pulls the text layer from a PDF, page by page, joining
// pages with blank lines.
func ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse PDF: %w", err)
	}

	var builder strings.Builder
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n\n")
	}

	return builder.String(), nil
}

// LooksGarbled reports whether extracted text is unusable: too short to
// be a real judgment, or carrying replacement runes from a failed
// decode. Callers switch such files to the vision path.
func LooksGarbled(text string) bool {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < GarbledTextFloor {
		return true
	}
	return strings.ContainsRune(trimmed, utf8.RuneError)
}

// IsPDF sniffs the PDF magic header.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}
