package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register adds all tools to the MCP server. Handler errors are
// converted to failure text here so a bad call never crashes the
// server process; it keeps serving subsequent calls.
func (t *Toolset) Register(srv *mcp.Server) {
	addTool(srv, "search_papers",
		"Search for academic papers on Semantic Scholar. Supports filtering by year, venue, "+
			"publication types, open access availability, and minimum citation count.",
		t.SearchPapers)
	addTool(srv, "get_paper",
		"Get detailed information about a paper by its ID (Semantic Scholar ID, DOI:..., ARXIV:..., PMID:...).",
		t.GetPaper)
	addTool(srv, "get_paper_batch",
		"Get information for multiple papers in a single request. Takes a comma-separated list of paper IDs.",
		t.GetPaperBatch)
	addTool(srv, "get_paper_citations",
		"List papers that cite a given paper, with citation context when available.",
		t.GetPaperCitations)
	addTool(srv, "get_paper_references",
		"List papers referenced by a given paper.",
		t.GetPaperReferences)
	addTool(srv, "get_citation_context",
		"Get the sentences in which one paper cites another, with citation intent labels.",
		t.GetCitationContext)
	addTool(srv, "search_authors",
		"Search for authors by name.",
		t.SearchAuthors)
	addTool(srv, "get_author",
		"Get detailed information about an author, including recent papers.",
		t.GetAuthor)
	addTool(srv, "get_author_papers",
		"List the papers of an author by author ID.",
		t.GetAuthorPapers)
	addTool(srv, "search_snippets",
		"Search for text snippets across academic papers.",
		t.SearchSnippets)
	addTool(srv, "get_paper_pdf_info",
		"Report whether a paper has an open-access PDF and list alternative access routes.",
		t.GetPaperPDFInfo)
	addTool(srv, "download_paper_pdf",
		"Download a paper's open-access PDF to disk and embed its metadata.",
		t.DownloadPaperPDF)
}

// addTool registers one text-returning tool with an inferred input
// schema.
func addTool[In any](srv *mcp.Server, name, description string, fn func(context.Context, In) (string, error)) {
	schema, err := jsonschema.For[In](nil)
	if err != nil {
		panic(err)
	}
	tool := &mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: schema,
	}
	mcp.AddTool(srv, tool, func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
		text, err := fn(ctx, in)
		if err != nil {
			return errorResult("Error: " + err.Error()), nil, nil
		}
		return textResult(text), nil, nil
	})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
