package s2

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// BaseURL is the Semantic Scholar Academic Graph API base URL.
	BaseURL = "https://api.semanticscholar.org/graph/v1"

	// DefaultTimeout is the default HTTP request timeout. Search
	// endpoints can be slow, so this is deliberately generous.
	DefaultTimeout = 30 * time.Second

	// DefaultPaperFields are the fields requested by default for paper
	// search and batch lookups.
	DefaultPaperFields = "paperId,title,authors,year,venue,citationCount,abstract,openAccessPdf"

	// DefaultPaperDetailFields are the fields requested by default for
	// single-paper lookups.
	DefaultPaperDetailFields = "paperId,title,authors,year,venue,citationCount,abstract,references,citations,openAccessPdf,externalIds,publicationTypes"

	// DefaultCitationFields are the fields requested by default for
	// citation and reference listings.
	DefaultCitationFields = "paperId,title,authors,year,venue,citationCount,contexts,intents"

	// DefaultAuthorFields are the fields requested by default for
	// author lookups.
	DefaultAuthorFields = "authorId,name,affiliations,paperCount,citationCount,hIndex"

	// maxBodyHint caps how much of an error response body is carried
	// into an error message.
	maxBodyHint = 300

	// Limit caps enforced by the upstream API.
	MaxSearchLimit  = 100
	MaxListingLimit = 1000
)

// Client is an HTTP client for the Semantic Scholar Academic Graph API.
//
// The client is immutable after construction and holds no cross-call
// state; a single Client may be shared by concurrent callers. There is
// no retry or client-side rate limiting: every classified failure is
// returned to the caller, who decides whether to resubmit.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key for authenticated requests. Without a
// key the client operates in anonymous mode against the shared public
// rate limit.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// NewClient creates a new Semantic Scholar API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasAPIKey reports whether the client was configured with an API key.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// do issues one HTTP request and classifies its outcome. A non-nil
// body is JSON-encoded and sent as the request body (batch lookups).
// The parsed response body is decoded into out; an empty 2xx body
// leaves out untouched (empty-result object).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "scholar-mcp/1.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.classify(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// classify maps a non-2xx response to an error. The 403 and 429
// messages change wording depending on whether an API key is
// configured, so that an LLM or human caller gets an actionable hint.
func (c *Client) classify(resp *http.Response) error {
	hint := bodyHint(resp.Body)

	switch resp.StatusCode {
	case http.StatusForbidden:
		if c.apiKey == "" {
			return fmt.Errorf("%w: no API key configured; anonymous requests share the public rate limit. Request a free key at https://www.semanticscholar.org/product/api", ErrAccessDenied)
		}
		if hint != "" {
			return fmt.Errorf("%w: API key may be invalid, or the resource is restricted: %s", ErrAccessDenied, hint)
		}
		return fmt.Errorf("%w: API key may be invalid or rate limit exceeded", ErrAccessDenied)
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		if c.apiKey == "" {
			return fmt.Errorf("%w: consider requesting an API key for dedicated higher limits at https://www.semanticscholar.org/product/api", ErrRateLimited)
		}
		return fmt.Errorf("%w: slow down and retry later", ErrRateLimited)
	default:
		return &APIError{StatusCode: resp.StatusCode, Body: hint}
	}
}

// bodyHint reads a truncated prefix of an error response body.
func bodyHint(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxBodyHint))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// clampLimit bounds a caller-supplied limit to [1, max], applying def
// when the caller passed nothing.
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// SearchPapersParams are the optional filters for SearchPapers. Zero
// values are not serialized.
type SearchPapersParams struct {
	Query            string
	Limit            int
	Offset           int
	Fields           string
	PublicationTypes []string
	OpenAccessPDF    bool
	MinCitationCount *int
	Year             string // single year or range, e.g. "2020-2023"
	Venue            string
}

// SearchPapers searches for papers by keyword relevance.
func (c *Client) SearchPapers(ctx context.Context, p SearchPapersParams) (*PaperSearchPage, error) {
	q := url.Values{}
	q.Set("query", p.Query)
	q.Set("limit", strconv.Itoa(clampLimit(p.Limit, 10, MaxSearchLimit)))
	q.Set("offset", strconv.Itoa(p.Offset))
	if p.Fields != "" {
		q.Set("fields", p.Fields)
	} else {
		q.Set("fields", DefaultPaperFields)
	}
	if len(p.PublicationTypes) > 0 {
		q.Set("publicationTypes", strings.Join(p.PublicationTypes, ","))
	}
	if p.OpenAccessPDF {
		q.Set("openAccessPdf", "true")
	}
	if p.MinCitationCount != nil {
		q.Set("minCitationCount", strconv.Itoa(*p.MinCitationCount))
	}
	if p.Year != "" {
		q.Set("year", p.Year)
	}
	if p.Venue != "" {
		q.Set("venue", p.Venue)
	}

	var page PaperSearchPage
	if err := c.do(ctx, http.MethodGet, "paper/search", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPaper fetches a paper by identifier. The identifier may be a raw
// S2 ID or a prefixed external ID (DOI:..., ARXIV:..., PMID:...).
func (c *Client) GetPaper(ctx context.Context, paperID, fields string) (*Paper, error) {
	if fields == "" {
		fields = DefaultPaperDetailFields
	}
	q := url.Values{}
	q.Set("fields", fields)

	var paper Paper
	if err := c.do(ctx, http.MethodGet, "paper/"+url.PathEscape(paperID), q, nil, &paper); err != nil {
		return nil, err
	}
	return &paper, nil
}

// GetPaperBatch fetches up to 500 papers in a single POST request.
// Entries in the result may be nil for identifiers that did not
// resolve; the slice order matches the input order.
func (c *Client) GetPaperBatch(ctx context.Context, ids []string, fields string) ([]*Paper, error) {
	if fields == "" {
		fields = DefaultPaperFields
	}
	q := url.Values{}
	q.Set("fields", fields)

	var papers []*Paper
	if err := c.do(ctx, http.MethodPost, "paper/batch", q, batchRequest{IDs: ids}, &papers); err != nil {
		return nil, err
	}
	return papers, nil
}

// GetCitations fetches papers that cite the given paper.
func (c *Client) GetCitations(ctx context.Context, paperID string, limit, offset int, fields string) (*CitationPage, error) {
	if fields == "" {
		fields = DefaultCitationFields
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(clampLimit(limit, 10, MaxListingLimit)))
	q.Set("offset", strconv.Itoa(offset))
	q.Set("fields", fields)

	var page CitationPage
	if err := c.do(ctx, http.MethodGet, "paper/"+url.PathEscape(paperID)+"/citations", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetReferences fetches papers referenced by the given paper.
func (c *Client) GetReferences(ctx context.Context, paperID string, limit, offset int, fields string) (*CitationPage, error) {
	if fields == "" {
		fields = DefaultCitationFields
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(clampLimit(limit, 10, MaxListingLimit)))
	q.Set("offset", strconv.Itoa(offset))
	q.Set("fields", fields)

	var page CitationPage
	if err := c.do(ctx, http.MethodGet, "paper/"+url.PathEscape(paperID)+"/references", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// citationContextFields are the fields needed to locate a citation
// edge and report its contexts.
const citationContextFields = "paperId,title,contexts,intents"

// GetCitationContext finds the contexts in which citingPaperID cites
// paperID. The upstream exposes contexts only on the citation listing,
// so this scans the cited paper's citation pages for the matching edge.
func (c *Client) GetCitationContext(ctx context.Context, paperID, citingPaperID string) (*CitationContext, error) {
	cited, err := c.GetPaper(ctx, paperID, "paperId,title")
	if err != nil {
		return nil, err
	}

	for offset := 0; ; {
		page, err := c.GetCitations(ctx, paperID, MaxListingLimit, offset, citationContextFields)
		if err != nil {
			return nil, err
		}
		for _, e := range page.Data {
			if e.CitingPaper == nil || e.CitingPaper.PaperID != citingPaperID {
				continue
			}
			return &CitationContext{
				Contexts:    e.Contexts,
				Intents:     e.Intents,
				CitingPaper: e.CitingPaper,
				CitedPaper:  cited,
			}, nil
		}
		if page.Next == 0 || len(page.Data) == 0 {
			return nil, fmt.Errorf("%w: paper %s does not cite %s in the indexed citations", ErrNotFound, citingPaperID, paperID)
		}
		offset = page.Next
	}
}

// SearchAuthors searches for authors by name.
func (c *Client) SearchAuthors(ctx context.Context, query string, limit, offset int, fields string) (*AuthorSearchPage, error) {
	if fields == "" {
		fields = DefaultAuthorFields
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("limit", strconv.Itoa(clampLimit(limit, 10, MaxListingLimit)))
	q.Set("offset", strconv.Itoa(offset))
	q.Set("fields", fields)

	var page AuthorSearchPage
	if err := c.do(ctx, http.MethodGet, "author/search", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetAuthor fetches an author by identifier, including recent papers.
func (c *Client) GetAuthor(ctx context.Context, authorID, fields string) (*Author, error) {
	if fields == "" {
		fields = DefaultAuthorFields + ",papers"
	}
	q := url.Values{}
	q.Set("fields", fields)

	var author Author
	if err := c.do(ctx, http.MethodGet, "author/"+url.PathEscape(authorID), q, nil, &author); err != nil {
		return nil, err
	}
	return &author, nil
}

// GetAuthorPapers fetches the papers of an author as a paged list.
func (c *Client) GetAuthorPapers(ctx context.Context, authorID string, limit, offset int) (*PaperSearchPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(clampLimit(limit, 10, MaxListingLimit)))
	q.Set("offset", strconv.Itoa(offset))
	q.Set("fields", DefaultPaperFields)

	var page PaperSearchPage
	if err := c.do(ctx, http.MethodGet, "author/"+url.PathEscape(authorID)+"/papers", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchSnippets searches for text snippets across papers.
func (c *Client) SearchSnippets(ctx context.Context, query string, limit, offset int) (*SnippetPage, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("limit", strconv.Itoa(clampLimit(limit, 10, MaxSearchLimit)))
	q.Set("offset", strconv.Itoa(offset))

	var page SnippetPage
	if err := c.do(ctx, http.MethodGet, "snippet/search", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
