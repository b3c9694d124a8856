package pdffile

import (
	"errors"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrAnnotationUnavailable is returned by an Annotator that cannot
// embed metadata. The downloader absorbs it: the file is kept as-is
// and the result reports that metadata was not embedded.
var ErrAnnotationUnavailable = errors.New("PDF metadata embedding unavailable")

// Metadata is the document-info content written into a downloaded PDF.
type Metadata struct {
	Title   string
	Authors string // joined author names
	Year    *int
}

// Annotator embeds paper metadata into a PDF file in place. The
// variant is selected once at startup and injected into the
// downloader; the downloader never probes for library availability at
// call time.
type Annotator interface {
	Annotate(path string, meta Metadata) error
}

// InfoAnnotator writes metadata into the PDF document-info dictionary.
type InfoAnnotator struct {
	conf *model.Configuration
}

// NewInfoAnnotator creates an annotator with a relaxed validation
// configuration, since downloaded PDFs are frequently out of spec.
func NewInfoAnnotator() *InfoAnnotator {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &InfoAnnotator{conf: conf}
}

// Annotate rewrites the document-info properties in place.
func (a *InfoAnnotator) Annotate(path string, meta Metadata) error {
	props := map[string]string{}
	if meta.Title != "" {
		props["Title"] = meta.Title
	}
	if meta.Authors != "" {
		props["Author"] = meta.Authors
	}
	if meta.Year != nil {
		props["Year"] = strconv.Itoa(*meta.Year)
	}
	if len(props) == 0 {
		return nil
	}
	// Empty outFile means pdfcpu rewrites the input file.
	return api.AddPropertiesFile(path, "", props, a.conf)
}

// NoopAnnotator is the no-metadata variant: the downloaded bytes are
// kept unmodified.
type NoopAnnotator struct{}

// Annotate reports that embedding is unavailable.
func (NoopAnnotator) Annotate(string, Metadata) error {
	return ErrAnnotationUnavailable
}
