// Package cas decodes mutual-fund consolidated account statements (CAS) into
// raw transaction ledgers.
//
// Two inputs are supported: the password-protected PDF statement issued by
// the registrars, and the CSV transaction table produced by statement
// exporters. Either way the output is a raw, unsigned ledger; cashflow
// classification happens downstream in the core.
package cas

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText opens the (possibly encrypted) statement and returns its text
// content page by page. An empty password is used for unprotected files.
func ExtractText(r io.ReaderAt, size int64, password string) ([]string, error) {
	reader, err := pdf.NewReaderEncrypted(r, size, func() string { return password })
	if err != nil {
		return nil, fmt.Errorf("could not open statement PDF (wrong password?): %w", err)
	}
	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("statement PDF has no pages")
	}

	var pages []string
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	if totalTextLen(pages) == 0 {
		return nil, fmt.Errorf("no text could be extracted from the statement; the PDF may be image-based")
	}
	return pages, nil
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}
