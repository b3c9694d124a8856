// Package s2 provides a client for the Semantic Scholar Academic Graph API.
package s2

// Paper represents a paper from the Semantic Scholar API.
//
// Optional numeric fields are pointers so that an absent field can be
// distinguished from a zero value; the formatter renders placeholders
// for absent fields.
type Paper struct {
	PaperID          string         `json:"paperId,omitempty"`
	ExternalIDs      ExternalIDs    `json:"externalIds,omitempty"`
	Title            string         `json:"title,omitempty"`
	Abstract         string         `json:"abstract,omitempty"`
	Authors          []Author       `json:"authors,omitempty"`
	Year             *int           `json:"year,omitempty"`
	Venue            string         `json:"venue,omitempty"`
	PublicationTypes []string       `json:"publicationTypes,omitempty"`
	CitationCount    *int           `json:"citationCount,omitempty"`
	ReferenceCount   *int           `json:"referenceCount,omitempty"`
	OpenAccessPDF    *OpenAccessPDF `json:"openAccessPdf,omitempty"`
	References       []Paper        `json:"references,omitempty"`
	Citations        []Paper        `json:"citations,omitempty"`
}

// HasPDF reports whether the paper carries an open-access PDF URL.
func (p *Paper) HasPDF() bool {
	return p.OpenAccessPDF != nil && p.OpenAccessPDF.URL != ""
}

// OpenAccessPDF is the open-access PDF descriptor attached to a paper.
type OpenAccessPDF struct {
	URL    string `json:"url,omitempty"`
	Status string `json:"status,omitempty"`
}

// ExternalIDs contains external identifiers for a paper.
type ExternalIDs struct {
	DOI           string `json:"DOI,omitempty"`
	ArXiv         string `json:"ArXiv,omitempty"`
	PubMed        string `json:"PubMed,omitempty"`
	PubMedCentral string `json:"PubMedCentral,omitempty"`
	CorpusID      int    `json:"CorpusId,omitempty"`
}

// Author represents an author from the Semantic Scholar API.
type Author struct {
	AuthorID      string   `json:"authorId,omitempty"`
	Name          string   `json:"name,omitempty"`
	Affiliations  []string `json:"affiliations,omitempty"`
	PaperCount    *int     `json:"paperCount,omitempty"`
	CitationCount *int     `json:"citationCount,omitempty"`
	HIndex        *int     `json:"hIndex,omitempty"`
	Papers        []Paper  `json:"papers,omitempty"`
}

// CitationEdge is one entry from the citations or references endpoints.
// CitingPaper is set for citations, CitedPaper for references. Contexts
// and Intents describe how the citing paper uses the cited one.
type CitationEdge struct {
	CitingPaper *Paper   `json:"citingPaper,omitempty"`
	CitedPaper  *Paper   `json:"citedPaper,omitempty"`
	Contexts    []string `json:"contexts,omitempty"`
	Intents     []string `json:"intents,omitempty"`
}

// CitationContext describes how one paper cites another, assembled
// from the matching edge of the cited paper's citation listing.
type CitationContext struct {
	Contexts    []string `json:"contexts,omitempty"`
	Intents     []string `json:"intents,omitempty"`
	CitingPaper *Paper   `json:"citingPaper,omitempty"`
	CitedPaper  *Paper   `json:"citedPaper,omitempty"`
}

// Snippet is one result from the snippet search endpoint.
type Snippet struct {
	Text  string       `json:"text,omitempty"`
	Score float64      `json:"score,omitempty"`
	Paper SnippetPaper `json:"paper,omitempty"`
}

// SnippetPaper is the abbreviated paper record attached to a snippet.
type SnippetPaper struct {
	CorpusID int    `json:"corpusId,omitempty"`
	Title    string `json:"title,omitempty"`
	Year     *int   `json:"year,omitempty"`
}

// PaperSearchPage is the paged envelope returned by paper search,
// author papers, and similar list endpoints.
type PaperSearchPage struct {
	Total  int     `json:"total"`
	Offset int     `json:"offset"`
	Next   int     `json:"next,omitempty"`
	Data   []Paper `json:"data"`
}

// AuthorSearchPage is the paged envelope returned by author search.
type AuthorSearchPage struct {
	Total  int      `json:"total"`
	Offset int      `json:"offset"`
	Next   int      `json:"next,omitempty"`
	Data   []Author `json:"data"`
}

// CitationPage is the paged envelope returned by the citations and
// references endpoints.
type CitationPage struct {
	Offset int            `json:"offset"`
	Next   int            `json:"next,omitempty"`
	Data   []CitationEdge `json:"data"`
}

// SnippetPage is the paged envelope returned by snippet search.
type SnippetPage struct {
	Total int       `json:"total"`
	Data  []Snippet `json:"data"`
}

// batchRequest is the request body for the batch paper lookup.
type batchRequest struct {
	IDs []string `json:"ids"`
}
