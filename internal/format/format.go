// Package format renders Semantic Scholar records as flat text blocks.
//
// Every function is a pure function of its input: the same record
// always produces the same text. Field order is fixed, and any field
// absent from the upstream payload renders as an explicit placeholder
// so that the output shape is stable regardless of payload
// completeness.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scholartools/scholar-mcp/internal/s2"
)

const (
	// Placeholder replaces any missing scalar or list field.
	Placeholder = "N/A"

	// NoAbstract replaces a missing abstract.
	NoAbstract = "No abstract available"

	// NoResults is the whole output for an empty list.
	NoResults = "No results found"

	// NoContext replaces missing citation context.
	NoContext = "Context not available"

	// MaxAuthors is the number of author names rendered before the
	// "+N more" suffix.
	MaxAuthors = 3

	// MaxAbstractLen is the abstract truncation length in runes.
	MaxAbstractLen = 500

	// maxRecentPapers caps the papers listed in an author detail block.
	maxRecentPapers = 10
)

// Paper renders a paper in the fixed field order: identifier, title,
// authors, year, venue, abstract, citation count, open-access flag.
func Paper(p *s2.Paper) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Paper ID: %s\n", orPlaceholder(p.PaperID))
	fmt.Fprintf(&sb, "Title: %s\n", orPlaceholder(p.Title))
	fmt.Fprintf(&sb, "Authors: %s\n", Authors(p.Authors))
	fmt.Fprintf(&sb, "Year: %s\n", intOrPlaceholder(p.Year))
	fmt.Fprintf(&sb, "Venue: %s\n", orPlaceholder(p.Venue))
	fmt.Fprintf(&sb, "Abstract: %s\n", abstract(p.Abstract))
	fmt.Fprintf(&sb, "Citations: %s\n", intOrPlaceholder(p.CitationCount))
	fmt.Fprintf(&sb, "Open Access PDF: %s", yesNo(p.HasPDF()))
	return sb.String()
}

// PaperDetail renders a paper with the reference/citation tallies and
// the PDF URL appended to the standard block.
func PaperDetail(p *s2.Paper) string {
	var sb strings.Builder
	sb.WriteString(Paper(p))
	fmt.Fprintf(&sb, "\nReferences: %d\n", len(p.References))
	fmt.Fprintf(&sb, "Cited by: %d", len(p.Citations))
	if p.HasPDF() {
		fmt.Fprintf(&sb, "\nPDF URL: %s", p.OpenAccessPDF.URL)
	}
	return sb.String()
}

// Author renders an author in fixed field order.
func Author(a *s2.Author) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Author ID: %s\n", orPlaceholder(a.AuthorID))
	fmt.Fprintf(&sb, "Name: %s\n", orPlaceholder(a.Name))
	fmt.Fprintf(&sb, "Affiliations: %s\n", listOrPlaceholder(a.Affiliations))
	fmt.Fprintf(&sb, "Papers: %s\n", intOrPlaceholder(a.PaperCount))
	fmt.Fprintf(&sb, "Citations: %s\n", intOrPlaceholder(a.CitationCount))
	fmt.Fprintf(&sb, "h-index: %s", intOrPlaceholder(a.HIndex))
	return sb.String()
}

// AuthorDetail renders an author followed by their recent papers.
func AuthorDetail(a *s2.Author) string {
	var sb strings.Builder
	sb.WriteString(Author(a))

	papers := a.Papers
	if len(papers) > maxRecentPapers {
		papers = papers[:maxRecentPapers]
	}
	fmt.Fprintf(&sb, "\n\nRecent papers (%d shown):", len(papers))
	for i, p := range papers {
		fmt.Fprintf(&sb, "\n%d. %s (%s) - %s citations",
			i+1, orPlaceholder(p.Title), intOrPlaceholder(p.Year), intOrPlaceholder(p.CitationCount))
	}
	return sb.String()
}

// Snippet renders one snippet search result.
func Snippet(s *s2.Snippet) string {
	title := orPlaceholder(s.Paper.Title)
	text := s.Text
	if text == "" {
		text = Placeholder
	}
	return fmt.Sprintf("From: %s (%s)\nSnippet: %s", title, intOrPlaceholder(s.Paper.Year), text)
}

// PaperList renders papers as a numbered list separated by blank
// lines. An empty list renders the single NoResults line.
func PaperList(papers []s2.Paper) string {
	if len(papers) == 0 {
		return NoResults
	}
	entries := make([]string, len(papers))
	for i := range papers {
		entries[i] = fmt.Sprintf("%d. %s", i+1, Paper(&papers[i]))
	}
	return strings.Join(entries, "\n\n")
}

// PaperPtrList renders a batch result, where unresolved identifiers
// appear as nil entries.
func PaperPtrList(papers []*s2.Paper) string {
	if len(papers) == 0 {
		return NoResults
	}
	entries := make([]string, len(papers))
	for i, p := range papers {
		if p == nil {
			entries[i] = fmt.Sprintf("%d. Paper not found", i+1)
			continue
		}
		entries[i] = fmt.Sprintf("%d. %s", i+1, Paper(p))
	}
	return strings.Join(entries, "\n\n")
}

// AuthorList renders authors as a numbered list.
func AuthorList(authors []s2.Author) string {
	if len(authors) == 0 {
		return NoResults
	}
	entries := make([]string, len(authors))
	for i := range authors {
		entries[i] = fmt.Sprintf("%d. %s", i+1, Author(&authors[i]))
	}
	return strings.Join(entries, "\n\n")
}

// CitationList renders citation or reference edges as a numbered list.
// Each entry is the paper on the far side of the edge plus its
// citation context, when present.
func CitationList(edges []s2.CitationEdge) string {
	if len(edges) == 0 {
		return NoResults
	}
	var entries []string
	for _, e := range edges {
		p := e.CitingPaper
		if p == nil {
			p = e.CitedPaper
		}
		if p == nil {
			continue
		}
		entry := fmt.Sprintf("%d. %s\n%s", len(entries)+1, Paper(p), contextLine(e.Contexts, e.Intents))
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return NoResults
	}
	return strings.Join(entries, "\n\n")
}

// SnippetList renders snippets as a numbered list.
func SnippetList(snippets []s2.Snippet) string {
	if len(snippets) == 0 {
		return NoResults
	}
	entries := make([]string, len(snippets))
	for i := range snippets {
		entries[i] = fmt.Sprintf("%d. %s", i+1, Snippet(&snippets[i]))
	}
	return strings.Join(entries, "\n\n")
}

// CitationContext renders the contexts in which one paper cites
// another. Intent labels render as a bracketed suffix on each context.
func CitationContext(cc *s2.CitationContext) string {
	var sb strings.Builder
	sb.WriteString("Citation context:\n\n")
	fmt.Fprintf(&sb, "Cited paper: %s\n", paperTitle(cc.CitedPaper))
	fmt.Fprintf(&sb, "Citing paper: %s\n\n", paperTitle(cc.CitingPaper))

	if len(cc.Contexts) == 0 {
		sb.WriteString(NoContext)
		return sb.String()
	}
	for i, ctx := range cc.Contexts {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. %s%s", i+1, ctx, intentSuffix(cc.Intents))
	}
	return sb.String()
}

// PDFInfo renders open-access availability and alternative access
// routes derived from a paper's external identifiers.
func PDFInfo(p *s2.Paper) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\n", orPlaceholder(p.Title))
	if p.HasPDF() {
		sb.WriteString("✅ Open Access PDF Available\n")
		fmt.Fprintf(&sb, "URL: %s\n", p.OpenAccessPDF.URL)
	} else {
		sb.WriteString("❌ No Open Access PDF Available\n")
	}

	var alts []string
	if p.ExternalIDs.ArXiv != "" {
		alts = append(alts, "ArXiv: https://arxiv.org/abs/"+p.ExternalIDs.ArXiv)
	}
	if p.ExternalIDs.DOI != "" {
		alts = append(alts, "Publisher (DOI): https://doi.org/"+p.ExternalIDs.DOI)
	}
	if p.ExternalIDs.PubMedCentral != "" {
		alts = append(alts, "PubMed Central: https://www.ncbi.nlm.nih.gov/pmc/articles/PMC"+p.ExternalIDs.PubMedCentral+"/")
	}
	if len(alts) > 0 {
		sb.WriteString("\nAlternative sources:\n")
		sb.WriteString(strings.Join(alts, "\n"))
	} else {
		sb.WriteString("\nAlternative sources: " + Placeholder)
	}
	return sb.String()
}

// Authors joins author names, truncating at MaxAuthors with a "+N
// more" suffix. An empty list renders the placeholder.
func Authors(authors []s2.Author) string {
	if len(authors) == 0 {
		return Placeholder
	}
	n := len(authors)
	shown := n
	if shown > MaxAuthors {
		shown = MaxAuthors
	}
	names := make([]string, shown)
	for i := 0; i < shown; i++ {
		names[i] = orPlaceholder(authors[i].Name)
	}
	s := strings.Join(names, ", ")
	if n > MaxAuthors {
		s += fmt.Sprintf(" +%d more", n-MaxAuthors)
	}
	return s
}

func contextLine(contexts, intents []string) string {
	if len(contexts) == 0 {
		return NoContext
	}
	return fmt.Sprintf("Context: %s%s", contexts[0], intentSuffix(intents))
}

func intentSuffix(intents []string) string {
	if len(intents) == 0 {
		return ""
	}
	return " [" + strings.Join(intents, ", ") + "]"
}

func paperTitle(p *s2.Paper) string {
	if p == nil {
		return Placeholder
	}
	return orPlaceholder(p.Title)
}

func abstract(s string) string {
	if s == "" {
		return NoAbstract
	}
	return truncate(s, MaxAbstractLen)
}

// truncate cuts s to at most n runes, appending an ellipsis when
// anything was removed.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

func intOrPlaceholder(v *int) string {
	if v == nil {
		return Placeholder
	}
	return strconv.Itoa(*v)
}

func listOrPlaceholder(items []string) string {
	if len(items) == 0 {
		return Placeholder
	}
	return strings.Join(items, ", ")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
