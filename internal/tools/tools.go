// Package tools binds the API client, formatter, and PDF downloader
// into the named operations exposed to the protocol host.
//
// Every tool returns a single text block. Errors returned here are
// converted to descriptive failure text at the transport boundary; a
// failed call never takes down the server or affects later calls.
package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/scholartools/scholar-mcp/internal/format"
	"github.com/scholartools/scholar-mcp/internal/pdffile"
	"github.com/scholartools/scholar-mcp/internal/s2"
)

// Toolset holds the collaborators shared by all tool invocations.
// It is stateless across calls and safe for concurrent use.
type Toolset struct {
	client      *s2.Client
	downloader  *pdffile.Downloader
	downloadDir string
}

// New creates a Toolset. downloadDir is the default destination for
// PDF downloads; individual calls may override it.
func New(client *s2.Client, downloader *pdffile.Downloader, downloadDir string) *Toolset {
	return &Toolset{
		client:      client,
		downloader:  downloader,
		downloadDir: downloadDir,
	}
}

// SearchPapersInput are the parameters for the search_papers tool.
type SearchPapersInput struct {
	Query            string `json:"query"`
	Limit            int    `json:"limit,omitempty"`
	Offset           int    `json:"offset,omitempty"`
	Fields           string `json:"fields,omitempty"`
	PublicationTypes string `json:"publication_types,omitempty"`
	OpenAccessPDF    bool   `json:"open_access_pdf,omitempty"`
	MinCitationCount *int   `json:"min_citation_count,omitempty"`
	Year             string `json:"year,omitempty"`
	Venue            string `json:"venue,omitempty"`
}

// SearchPapers searches for papers and renders a numbered result list.
func (t *Toolset) SearchPapers(ctx context.Context, in SearchPapersInput) (string, error) {
	if strings.TrimSpace(in.Query) == "" {
		return "", errors.New("query is required")
	}

	params := s2.SearchPapersParams{
		Query:            in.Query,
		Limit:            in.Limit,
		Offset:           in.Offset,
		Fields:           in.Fields,
		OpenAccessPDF:    in.OpenAccessPDF,
		MinCitationCount: in.MinCitationCount,
		Year:             in.Year,
		Venue:            in.Venue,
	}
	if in.PublicationTypes != "" {
		params.PublicationTypes = splitCSV(in.PublicationTypes)
	}

	page, err := t.client.SearchPapers(ctx, params)
	if err != nil {
		return "", err
	}
	if len(page.Data) == 0 {
		return format.NoResults, nil
	}
	return fmt.Sprintf("Found %d total papers (showing %d):\n\n%s",
		page.Total, len(page.Data), format.PaperList(page.Data)), nil
}

// GetPaperInput are the parameters for the get_paper tool.
type GetPaperInput struct {
	PaperID string `json:"paper_id"`
	Fields  string `json:"fields,omitempty"`
}

// GetPaper renders the detail block for one paper.
func (t *Toolset) GetPaper(ctx context.Context, in GetPaperInput) (string, error) {
	if strings.TrimSpace(in.PaperID) == "" {
		return "", errors.New("paper_id is required")
	}
	paper, err := t.client.GetPaper(ctx, in.PaperID, in.Fields)
	if err != nil {
		return "", err
	}
	return format.PaperDetail(paper), nil
}

// GetPaperBatchInput are the parameters for the get_paper_batch tool.
type GetPaperBatchInput struct {
	PaperIDs string `json:"paper_ids"` // comma-separated
	Fields   string `json:"fields,omitempty"`
}

// GetPaperBatch fetches several papers in one request. Identifiers
// that do not resolve render as "Paper not found" entries.
func (t *Toolset) GetPaperBatch(ctx context.Context, in GetPaperBatchInput) (string, error) {
	ids := splitCSV(in.PaperIDs)
	if len(ids) == 0 {
		return "", errors.New("paper_ids is required")
	}
	papers, err := t.client.GetPaperBatch(ctx, ids, in.Fields)
	if err != nil {
		return "", err
	}
	if len(papers) == 0 {
		return format.NoResults, nil
	}
	return fmt.Sprintf("Retrieved %d papers:\n\n%s", len(papers), format.PaperPtrList(papers)), nil
}

// CitationListInput are the parameters for the citation and reference
// listing tools.
type CitationListInput struct {
	PaperID string `json:"paper_id"`
	Limit   int    `json:"limit,omitempty"`
	Offset  int    `json:"offset,omitempty"`
	Fields  string `json:"fields,omitempty"`
}

// GetPaperCitations lists papers citing the given paper.
func (t *Toolset) GetPaperCitations(ctx context.Context, in CitationListInput) (string, error) {
	if strings.TrimSpace(in.PaperID) == "" {
		return "", errors.New("paper_id is required")
	}
	page, err := t.client.GetCitations(ctx, in.PaperID, in.Limit, in.Offset, in.Fields)
	if err != nil {
		return "", err
	}
	if len(page.Data) == 0 {
		return format.NoResults, nil
	}
	return fmt.Sprintf("Citations (showing %d):\n\n%s", len(page.Data), format.CitationList(page.Data)), nil
}

// GetPaperReferences lists papers referenced by the given paper.
func (t *Toolset) GetPaperReferences(ctx context.Context, in CitationListInput) (string, error) {
	if strings.TrimSpace(in.PaperID) == "" {
		return "", errors.New("paper_id is required")
	}
	page, err := t.client.GetReferences(ctx, in.PaperID, in.Limit, in.Offset, in.Fields)
	if err != nil {
		return "", err
	}
	if len(page.Data) == 0 {
		return format.NoResults, nil
	}
	return fmt.Sprintf("References (showing %d):\n\n%s", len(page.Data), format.CitationList(page.Data)), nil
}

// GetCitationContextInput are the parameters for get_citation_context.
type GetCitationContextInput struct {
	PaperID       string `json:"paper_id"`
	CitingPaperID string `json:"citing_paper_id"`
}

// GetCitationContext renders the sentences in which one paper cites
// another.
func (t *Toolset) GetCitationContext(ctx context.Context, in GetCitationContextInput) (string, error) {
	if strings.TrimSpace(in.PaperID) == "" || strings.TrimSpace(in.CitingPaperID) == "" {
		return "", errors.New("paper_id and citing_paper_id are required")
	}
	cc, err := t.client.GetCitationContext(ctx, in.PaperID, in.CitingPaperID)
	if err != nil {
		return "", err
	}
	return format.CitationContext(cc), nil
}

// SearchAuthorsInput are the parameters for the search_authors tool.
type SearchAuthorsInput struct {
	Query  string `json:"query"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
	Fields string `json:"fields,omitempty"`
}

// SearchAuthors searches for authors by name.
func (t *Toolset) SearchAuthors(ctx context.Context, in SearchAuthorsInput) (string, error) {
	if strings.TrimSpace(in.Query) == "" {
		return "", errors.New("query is required")
	}
	page, err := t.client.SearchAuthors(ctx, in.Query, in.Limit, in.Offset, in.Fields)
	if err != nil {
		return "", err
	}
	if len(page.Data) == 0 {
		return format.NoResults, nil
	}
	return fmt.Sprintf("Found %d total authors (showing %d):\n\n%s",
		page.Total, len(page.Data), format.AuthorList(page.Data)), nil
}

// GetAuthorInput are the parameters for the get_author tool.
type GetAuthorInput struct {
	AuthorID string `json:"author_id"`
	Fields   string `json:"fields,omitempty"`
}

// GetAuthor renders the detail block for one author.
func (t *Toolset) GetAuthor(ctx context.Context, in GetAuthorInput) (string, error) {
	if strings.TrimSpace(in.AuthorID) == "" {
		return "", errors.New("author_id is required")
	}
	author, err := t.client.GetAuthor(ctx, in.AuthorID, in.Fields)
	if err != nil {
		return "", err
	}
	return format.AuthorDetail(author), nil
}

// GetAuthorPapersInput are the parameters for the get_author_papers tool.
type GetAuthorPapersInput struct {
	AuthorID string `json:"author_id"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

// GetAuthorPapers lists an author's papers.
func (t *Toolset) GetAuthorPapers(ctx context.Context, in GetAuthorPapersInput) (string, error) {
	if strings.TrimSpace(in.AuthorID) == "" {
		return "", errors.New("author_id is required")
	}
	page, err := t.client.GetAuthorPapers(ctx, in.AuthorID, in.Limit, in.Offset)
	if err != nil {
		return "", err
	}
	if len(page.Data) == 0 {
		return format.NoResults, nil
	}
	return fmt.Sprintf("Papers (showing %d):\n\n%s", len(page.Data), format.PaperList(page.Data)), nil
}

// SearchSnippetsInput are the parameters for the search_snippets tool.
type SearchSnippetsInput struct {
	Query  string `json:"query"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// SearchSnippets searches for text snippets across papers.
func (t *Toolset) SearchSnippets(ctx context.Context, in SearchSnippetsInput) (string, error) {
	if strings.TrimSpace(in.Query) == "" {
		return "", errors.New("query is required")
	}
	page, err := t.client.SearchSnippets(ctx, in.Query, in.Limit, in.Offset)
	if err != nil {
		return "", err
	}
	if len(page.Data) == 0 {
		return format.NoResults, nil
	}
	return fmt.Sprintf("Found %d total snippets (showing %d):\n\n%s",
		page.Total, len(page.Data), format.SnippetList(page.Data)), nil
}

// GetPaperPDFInfoInput are the parameters for get_paper_pdf_info.
type GetPaperPDFInfoInput struct {
	PaperID string `json:"paper_id"`
}

// pdfInfoFields are the fields needed to report PDF availability.
const pdfInfoFields = "paperId,title,openAccessPdf,externalIds"

// GetPaperPDFInfo reports open-access PDF availability and alternative
// access routes without downloading anything.
func (t *Toolset) GetPaperPDFInfo(ctx context.Context, in GetPaperPDFInfoInput) (string, error) {
	if strings.TrimSpace(in.PaperID) == "" {
		return "", errors.New("paper_id is required")
	}
	paper, err := t.client.GetPaper(ctx, in.PaperID, pdfInfoFields)
	if err != nil {
		return "", err
	}
	return format.PDFInfo(paper), nil
}

// DownloadPaperPDFInput are the parameters for download_paper_pdf.
type DownloadPaperPDFInput struct {
	PaperID     string `json:"paper_id"`
	DownloadDir string `json:"download_dir,omitempty"`
}

// downloadFields are the fields needed to download and annotate a PDF.
const downloadFields = "paperId,title,authors,year,openAccessPdf"

// DownloadPaperPDF fetches the paper's open-access PDF to disk and
// embeds its metadata when the annotator supports it.
func (t *Toolset) DownloadPaperPDF(ctx context.Context, in DownloadPaperPDFInput) (string, error) {
	if strings.TrimSpace(in.PaperID) == "" {
		return "", errors.New("paper_id is required")
	}

	paper, err := t.client.GetPaper(ctx, in.PaperID, downloadFields)
	if err != nil {
		return "", err
	}

	destDir := in.DownloadDir
	if destDir == "" {
		destDir = t.downloadDir
	}

	result, err := t.downloader.Download(ctx, paper, destDir)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("✅ PDF downloaded successfully!\n\n")
	fmt.Fprintf(&sb, "Title: %s\n", paper.Title)
	fmt.Fprintf(&sb, "Authors: %s\n", format.Authors(paper.Authors))
	if paper.Year != nil {
		fmt.Fprintf(&sb, "Year: %d\n", *paper.Year)
	}
	fmt.Fprintf(&sb, "Saved to: %s\n", result.Path)
	fmt.Fprintf(&sb, "Size: %d bytes\n", result.Size)
	if result.Pages > 0 {
		fmt.Fprintf(&sb, "Pages: %d\n", result.Pages)
	}
	if result.MetadataEmbedded {
		sb.WriteString("✅ PDF metadata set")
	} else {
		sb.WriteString("PDF metadata not embedded")
	}
	return sb.String(), nil
}

// splitCSV splits a comma-separated parameter into trimmed, non-empty
// values.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
