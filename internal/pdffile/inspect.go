package pdffile

import (
	"github.com/ledongthuc/pdf"
)

// PageCount reads the page count of a PDF on disk. Used as a
// best-effort sanity check after download; failures are non-fatal.
func PageCount(path string) (int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return r.NumPage(), nil
}
