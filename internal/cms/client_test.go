package cms

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blogfront/internal/config"
)

func testClient(baseURL string) *Client {
	return NewClient(&config.Config{
		CMSBaseURL:  baseURL,
		CMSToken:    "test-token",
		HTTPTimeout: 5 * time.Second,
	})
}

func TestListArticlesPreservesStoreOrder(t *testing.T) {
	var gotAuth, gotPopulate string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPopulate = r.URL.Query().Get("populate")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": [
				{"id": 3, "documentId": "doc-c", "title": "C", "description": "", "createdAt": "2025-01-03T00:00:00Z", "updatedAt": "2025-01-03T00:00:00Z"},
				{"id": 1, "documentId": "doc-a", "title": "A", "description": "", "createdAt": "2025-01-01T00:00:00Z", "updatedAt": "2025-01-01T00:00:00Z"},
				{"id": 2, "documentId": "doc-b", "title": "B", "description": "", "createdAt": "2025-01-02T00:00:00Z", "updatedAt": "2025-01-02T00:00:00Z"}
			],
			"meta": {"pagination": {"page": 1, "pageSize": 25, "pageCount": 1, "total": 3}}
		}`))
	}))
	defer srv.Close()

	articles, err := testClient(srv.URL).ListArticles(context.Background())
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Expected bearer token header, got %q", gotAuth)
	}
	if gotPopulate != "*" {
		t.Errorf("Expected populate=*, got %q", gotPopulate)
	}

	wantOrder := []string{"doc-c", "doc-a", "doc-b"}
	if len(articles) != len(wantOrder) {
		t.Fatalf("Expected %d articles, got %d", len(wantOrder), len(articles))
	}
	for i, want := range wantOrder {
		if articles[i].DocumentID != want {
			t.Errorf("Article %d: expected %q, got %q", i, want, articles[i].DocumentID)
		}
	}
}

func TestGetArticleByIDRequestsExhaustivePopulation(t *testing.T) {
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()

		if !strings.HasSuffix(r.URL.Path, "/api/articles/doc-a") {
			t.Errorf("Unexpected request path: %q", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"id": 1, "documentId": "doc-a", "title": "A", "description": "", "createdAt": "2025-01-01T00:00:00Z", "updatedAt": "2025-01-01T00:00:00Z", "blocks": [{"__component": "shared.quote", "body": "q"}]}, "meta": {}}`))
	}))
	defer srv.Close()

	article, err := testClient(srv.URL).GetArticleByID(context.Background(), "doc-a")
	if err != nil {
		t.Fatalf("GetArticleByID failed: %v", err)
	}
	if article.DocumentID != "doc-a" {
		t.Errorf("Expected documentId doc-a, got %q", article.DocumentID)
	}
	if len(article.Blocks) != 1 {
		t.Errorf("Expected 1 block, got %d", len(article.Blocks))
	}

	// The nested population forms are load-bearing: the store silently
	// drops relations that are not explicitly requested.
	wantParams := map[string]string{
		"populate[blocks][populate]":         "*",
		"populate[cover]":                    "*",
		"populate[category]":                 "*",
		"populate[author][populate][avatar]": "*",
	}
	for key, want := range wantParams {
		values := gotQuery[key]
		if len(values) != 1 || values[0] != want {
			t.Errorf("Expected query param %s=%s, got %v", key, want, values)
		}
	}
}

func TestGetArticleByIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"status": 404, "name": "NotFoundError", "message": "Not Found"}}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).GetArticleByID(context.Background(), "missing-id")
	if err == nil {
		t.Fatal("Expected an error for a 404 response")
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected NotFoundError, got %T: %v", err, err)
	}
	if notFound.DocumentID != "missing-id" {
		t.Errorf("Expected documentId in error, got %q", notFound.DocumentID)
	}
	if !strings.Contains(err.Error(), "missing-id") {
		t.Errorf("Expected error message to embed the identifier, got %q", err.Error())
	}
}

func TestListArticlesStoreDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := testClient(srv.URL).ListArticles(context.Background())
	if err == nil {
		t.Fatal("Expected an error with the store down")
	}

	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("Expected ConnectionError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), srv.URL) {
		t.Errorf("Expected base URL in error message, got %q", err.Error())
	}
}

func TestListArticlesHTMLWithOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body>maintenance page</body></html>"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).ListArticles(context.Background())
	if err == nil {
		t.Fatal("Expected an error for a 200 response with an HTML body")
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected RequestError, got %T: %v", err, err)
	}
	if !strings.Contains(reqErr.Message, "non-JSON") {
		t.Errorf("Expected message to mention the content-type mismatch, got %q", reqErr.Message)
	}
}

func TestListArticlesErrorEnvelopeMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"status": 403, "name": "ForbiddenError", "message": "Invalid credentials"}}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).ListArticles(context.Background())

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected RequestError, got %T: %v", err, err)
	}
	if reqErr.Status != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", reqErr.Status)
	}
	if reqErr.Message != "Invalid credentials" {
		t.Errorf("Expected store-provided message, got %q", reqErr.Message)
	}
}

func TestListArticlesHTMLErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html><body>502 Bad Gateway</body></html>"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).ListArticles(context.Background())

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected RequestError, got %T: %v", err, err)
	}
	if strings.Contains(reqErr.Message, "<html>") {
		t.Errorf("Raw HTML must not surface in the error message, got %q", reqErr.Message)
	}
	if !strings.Contains(reqErr.Message, "non-JSON") {
		t.Errorf("Expected a generic non-JSON diagnostic, got %q", reqErr.Message)
	}
}

func TestListArticlesInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).ListArticles(context.Background())

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected RequestError, got %T: %v", err, err)
	}
	if !strings.Contains(reqErr.Message, "invalid JSON") {
		t.Errorf("Expected an invalid JSON diagnostic, got %q", reqErr.Message)
	}
}

func TestResolveMediaURL(t *testing.T) {
	client := testClient("http://cms.internal:1337")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"absolute URL unchanged", "https://x/y.png", "https://x/y.png"},
		{"relative URL prefixed", "/uploads/y.png", "http://cms.internal:1337/uploads/y.png"},
		{"bare relative URL prefixed", "uploads/y.png", "http://cms.internal:1337/uploads/y.png"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := client.ResolveMediaURL(tt.input); got != tt.want {
				t.Errorf("ResolveMediaURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
