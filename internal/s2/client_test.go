package s2

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...ClientOption) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(append([]ClientOption{WithBaseURL(srv.URL)}, opts...)...)
}

func TestClassifyStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		apiKey string
		check  func(error) bool
	}{
		{name: "403 is access denied", status: 403, check: IsAccessDenied},
		{name: "403 with key is access denied", status: 403, apiKey: "k", check: IsAccessDenied},
		{name: "404 is not found", status: 404, check: IsNotFound},
		{name: "429 is rate limited", status: 429, check: IsRateLimited},
		{name: "429 with key is rate limited", status: 429, apiKey: "k", check: IsRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []ClientOption
			if tt.apiKey != "" {
				opts = append(opts, WithAPIKey(tt.apiKey))
			}
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}, opts...)

			_, err := client.GetPaper(context.Background(), "test123", "")
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Errorf("error not classified as expected: %v", err)
			}
		})
	}
}

func TestRateLimitWordingWithoutKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.GetPaper(context.Background(), "test123", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "semanticscholar.org/product/api") {
		t.Errorf("anonymous 429 should suggest obtaining an API key, got: %v", err)
	}
}

func TestRateLimitWordingWithKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, WithAPIKey("test-key"))

	_, err := client.GetPaper(context.Background(), "test123", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Error(), "product/api") {
		t.Errorf("authenticated 429 should not suggest obtaining a key, got: %v", err)
	}
}

func TestAccessDeniedWordingSwitchesOnKey(t *testing.T) {
	anon := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	_, err := anon.GetPaper(context.Background(), "x", "")
	if err == nil || !strings.Contains(err.Error(), "no API key configured") {
		t.Errorf("anonymous 403 should mention missing key, got: %v", err)
	}

	keyed := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}, WithAPIKey("test-key"))
	_, err = keyed.GetPaper(context.Background(), "x", "")
	if err == nil || !strings.Contains(err.Error(), "API key may be invalid") {
		t.Errorf("authenticated 403 should mention invalid key, got: %v", err)
	}
}

func TestAccessDeniedCarriesBodyHint(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("restricted dataset"))
	}, WithAPIKey("test-key"))

	_, err := client.GetPaper(context.Background(), "x", "")
	if err == nil || !strings.Contains(err.Error(), "restricted dataset") {
		t.Errorf("403 with a body should carry the hint, got: %v", err)
	}
}

func TestUpstreamErrorCarriesStatusAndBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	})

	_, err := client.GetPaper(context.Background(), "x", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "upstream exploded") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNoRetryOnFailure(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, _ = client.GetPaper(context.Background(), "x", "")
	if calls != 1 {
		t.Errorf("expected exactly 1 request, got %d", calls)
	}
}

func TestAPIKeyHeader(t *testing.T) {
	var gotKey string
	handler := func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		json.NewEncoder(w).Encode(Paper{PaperID: "p1"})
	}

	keyed := newTestClient(t, handler, WithAPIKey("secret"))
	if _, err := keyed.GetPaper(context.Background(), "p1", ""); err != nil {
		t.Fatal(err)
	}
	if gotKey != "secret" {
		t.Errorf("expected x-api-key header, got %q", gotKey)
	}

	anon := newTestClient(t, handler)
	if _, err := anon.GetPaper(context.Background(), "p1", ""); err != nil {
		t.Fatal(err)
	}
	if gotKey != "" {
		t.Errorf("anonymous client must not send x-api-key, got %q", gotKey)
	}
}

func TestSearchPapersQuerySerialization(t *testing.T) {
	var got url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		json.NewEncoder(w).Encode(PaperSearchPage{})
	})

	minCite := 50
	_, err := client.SearchPapers(context.Background(), SearchPapersParams{
		Query:            "machine learning",
		Limit:            5,
		Year:             "2023",
		PublicationTypes: []string{"JournalArticle", "Review"},
		MinCitationCount: &minCite,
		OpenAccessPDF:    true,
	})
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]string{
		"query":            "machine learning",
		"limit":            "5",
		"offset":           "0",
		"year":             "2023",
		"publicationTypes": "JournalArticle,Review",
		"minCitationCount": "50",
		"openAccessPdf":    "true",
		"fields":           DefaultPaperFields,
	}
	for k, v := range want {
		if got.Get(k) != v {
			t.Errorf("param %s = %q, want %q", k, got.Get(k), v)
		}
	}
	// Unset optional filters must not be serialized.
	if got.Has("venue") {
		t.Error("venue should not be serialized when unset")
	}
}

func TestSearchPapersOmitsUnsetFilters(t *testing.T) {
	var got url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		json.NewEncoder(w).Encode(PaperSearchPage{})
	})

	if _, err := client.SearchPapers(context.Background(), SearchPapersParams{Query: "q"}); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"year", "venue", "publicationTypes", "minCitationCount", "openAccessPdf"} {
		if got.Has(k) {
			t.Errorf("param %s should not be serialized when unset", k)
		}
	}
}

func TestSearchPapersClampsLimit(t *testing.T) {
	var got url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		json.NewEncoder(w).Encode(PaperSearchPage{})
	})

	if _, err := client.SearchPapers(context.Background(), SearchPapersParams{Query: "q", Limit: 500}); err != nil {
		t.Fatal(err)
	}
	if got.Get("limit") != "100" {
		t.Errorf("limit = %q, want clamped to 100", got.Get("limit"))
	}
}

func TestGetPaperBatchPost(t *testing.T) {
	var gotMethod string
	var gotBody batchRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode([]*Paper{{PaperID: "p1"}, nil})
	})

	papers, err := client.GetPaperBatch(context.Background(), []string{"p1", "missing"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if len(gotBody.IDs) != 2 || gotBody.IDs[0] != "p1" {
		t.Errorf("unexpected batch body: %+v", gotBody)
	}
	if len(papers) != 2 || papers[0] == nil || papers[1] != nil {
		t.Errorf("unexpected batch result: %+v", papers)
	}
}

func TestEmptyBodyIsEmptyResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	page, err := client.SearchPapers(context.Background(), SearchPapersParams{Query: "q"})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 0 || len(page.Data) != 0 {
		t.Errorf("expected empty result, got %+v", page)
	}
}

func TestTransportErrorClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GetPaper(context.Background(), "x", "")
	if !IsTransport(err) {
		t.Errorf("expected transport error, got: %v", err)
	}
}

func TestGetPaperEscapesIdentifier(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(Paper{PaperID: "p1"})
	})

	if _, err := client.GetPaper(context.Background(), "DOI:10.1093/sysbio/syy032", ""); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(strings.TrimPrefix(gotPath, "/paper/"), "/") {
		t.Errorf("paper ID not escaped in path: %s", gotPath)
	}
}

func TestGetCitationContextScansListing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/paper/p1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Paper{PaperID: "p1", Title: "Cited Work"})
	})
	mux.HandleFunc("/paper/p1/citations", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"citingPaper": map[string]any{"paperId": "other"}},
				{
					"citingPaper": map[string]any{"paperId": "c2", "title": "Citing Work"},
					"contexts":    []string{"as established in"},
					"intents":     []string{"background"},
				},
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	client := NewClient(WithBaseURL(srv.URL))

	cc, err := client.GetCitationContext(context.Background(), "p1", "c2")
	if err != nil {
		t.Fatal(err)
	}
	if cc.CitedPaper == nil || cc.CitedPaper.Title != "Cited Work" {
		t.Errorf("cited paper not resolved: %+v", cc.CitedPaper)
	}
	if cc.CitingPaper == nil || cc.CitingPaper.PaperID != "c2" {
		t.Errorf("wrong citing paper: %+v", cc.CitingPaper)
	}
	if len(cc.Contexts) != 1 || cc.Contexts[0] != "as established in" {
		t.Errorf("contexts not carried over: %v", cc.Contexts)
	}

	_, err = client.GetCitationContext(context.Background(), "p1", "absent")
	if !IsNotFound(err) {
		t.Errorf("missing edge should be not found, got: %v", err)
	}
}

func TestCitationPageDecodes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"offset": 0,
			"data": []map[string]any{
				{
					"citingPaper": map[string]any{"paperId": "c1", "title": "Citing Paper"},
					"contexts":    []string{"builds on prior work"},
					"intents":     []string{"methodology"},
				},
			},
		})
	})

	page, err := client.GetCitations(context.Background(), "p1", 10, 0, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Data) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(page.Data))
	}
	edge := page.Data[0]
	if edge.CitingPaper == nil || edge.CitingPaper.Title != "Citing Paper" {
		t.Errorf("unexpected citing paper: %+v", edge.CitingPaper)
	}
	if len(edge.Contexts) != 1 || len(edge.Intents) != 1 {
		t.Errorf("contexts/intents not decoded: %+v", edge)
	}
}
