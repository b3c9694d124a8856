package pdffile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/scholartools/scholar-mcp/internal/s2"
)

// ErrNoPDF indicates the paper record carries no open-access PDF URL.
// It is returned before any network call is made.
var ErrNoPDF = errors.New("no open access PDF available for this paper")

// downloadTimeout bounds a single PDF fetch. Full-text files are
// larger than API responses, so this is longer than the API timeout.
const downloadTimeout = 2 * time.Minute

// Result describes a completed download.
type Result struct {
	Path             string
	Size             int64
	Pages            int  // 0 when inspection failed
	MetadataEmbedded bool // false when annotation was skipped or failed
}

// Downloader fetches open-access PDFs to disk. The metadata annotator
// is injected at construction; annotation failures degrade the result
// rather than failing the download.
type Downloader struct {
	httpClient *http.Client
	annotator  Annotator
	log        *slog.Logger
}

// DownloaderOption configures a Downloader.
type DownloaderOption func(*Downloader)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) DownloaderOption {
	return func(d *Downloader) {
		d.httpClient = hc
	}
}

// WithAnnotator sets the metadata annotator variant.
func WithAnnotator(a Annotator) DownloaderOption {
	return func(d *Downloader) {
		d.annotator = a
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) DownloaderOption {
	return func(d *Downloader) {
		d.log = l
	}
}

// NewDownloader creates a Downloader. By default metadata is embedded
// with the document-info annotator.
func NewDownloader(opts ...DownloaderOption) *Downloader {
	d := &Downloader{
		httpClient: &http.Client{Timeout: downloadTimeout},
		annotator:  NewInfoAnnotator(),
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download fetches the paper's open-access PDF into destDir and
// returns the saved path. The file is streamed to a temporary path
// and atomically renamed into place, so an interrupted download never
// leaves a corrupt file at the final name.
func (d *Downloader) Download(ctx context.Context, paper *s2.Paper, destDir string) (*Result, error) {
	if !paper.HasPDF() {
		return nil, ErrNoPDF
	}

	// Idempotent: creating an existing directory must not fail.
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating download directory: %w", err)
	}

	size, tmpPath, err := d.fetch(ctx, paper.OpenAccessPDF.URL, destDir)
	if err != nil {
		return nil, err
	}

	target := UniquePath(destDir, SafeFilename(paper.Title, paper.Year))
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("moving download into place: %w", err)
	}

	result := &Result{Path: target, Size: size}

	meta := Metadata{
		Title:   paper.Title,
		Authors: joinAuthors(paper.Authors),
		Year:    paper.Year,
	}
	if err := d.annotator.Annotate(target, meta); err != nil {
		// Non-fatal: keep the un-annotated file.
		d.log.Debug("pdf metadata not embedded", "path", target, "error", err)
	} else {
		result.MetadataEmbedded = true
	}

	if pages, err := PageCount(target); err == nil {
		result.Pages = pages
	}

	return result, nil
}

// fetch streams the PDF to a temporary file in destDir and returns its
// size and path. The temporary file is removed on any failure.
func (d *Downloader) fetch(ctx context.Context, url, destDir string) (int64, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, "", fmt.Errorf("creating PDF request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("downloading PDF: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, "", fmt.Errorf("downloading PDF: HTTP %d from %s", resp.StatusCode, url)
	}

	tmp, err := os.CreateTemp(destDir, ".scholar-*.partial")
	if err != nil {
		return 0, "", fmt.Errorf("creating temp file: %w", err)
	}

	size, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return 0, "", fmt.Errorf("writing PDF: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return 0, "", fmt.Errorf("closing temp file: %w", err)
	}

	return size, tmp.Name(), nil
}

func joinAuthors(authors []s2.Author) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return strings.Join(names, ", ")
}
