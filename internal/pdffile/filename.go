// Package pdffile downloads open-access PDFs and embeds paper metadata.
package pdffile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// fallbackBase names a PDF whose paper has no usable title.
const fallbackBase = "Unknown Paper"

// maxBaseLen caps the sanitized title length so derived filenames stay
// within common filesystem limits.
const maxBaseLen = 120

// illegal characters across the three major platforms' filesystems.
const illegalChars = `/\:*?"<>|`

// SafeFilename derives a filename from a paper title and year. The
// derivation is deterministic: the same title and year always yield
// the same name. A nil year omits the parenthetical.
func SafeFilename(title string, year *int) string {
	base := sanitizeTitle(title)
	if base == "" {
		base = fallbackBase
	}
	if year != nil {
		base = fmt.Sprintf("%s (%d)", base, *year)
	}
	return base + ".pdf"
}

// sanitizeTitle strips filesystem-illegal characters and collapses
// whitespace runs left behind by the removal.
func sanitizeTitle(title string) string {
	var sb strings.Builder
	for _, r := range title {
		if strings.ContainsRune(illegalChars, r) || r < 0x20 {
			continue
		}
		sb.WriteRune(r)
	}
	s := strings.Join(strings.Fields(sb.String()), " ")
	runes := []rune(s)
	if len(runes) > maxBaseLen {
		s = strings.TrimSpace(string(runes[:maxBaseLen]))
	}
	return s
}

// UniquePath returns a path in dir for name that does not collide with
// an existing file. On collision a " (2)", " (3)", ... counter is
// inserted before the extension until a free name is found; existing
// files are never overwritten.
func UniquePath(dir, name string) string {
	path := filepath.Join(dir, name)
	if !exists(path) {
		return path
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 2; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		if !exists(candidate) {
			return candidate
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
