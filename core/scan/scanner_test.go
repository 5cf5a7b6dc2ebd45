package scan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/smarturl/core"
	"github.com/gaurav-prasanna/smarturl/core/extract"
	"github.com/gaurav-prasanna/smarturl/core/fetch"
)

const page = `<html><head><title>Kubernetes Operators Explained</title>
<meta name="keywords" content="kubernetes, operators"></head>
<body><article><h1>Kubernetes Operators</h1>
<p>Operators extend kubernetes with custom controllers. Operators reconcile state.</p>
</article></body></html>`

func TestHTTPScanner_Scan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	s := NewHTTPScanner(fetch.New(), extract.ModeSimple)
	resp := s.Scan(context.Background(), srv.URL)

	require.True(t, resp.Success, resp.Error)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "Kubernetes Operators Explained", resp.Data.Title)
	assert.Equal(t, []string{"operators", "kubernetes"}, resp.Data.Keywords[:2])
	assert.LessOrEqual(t, len(resp.Data.Keywords), PageKeywords)
	assert.False(t, resp.Data.Fallback)
}

func TestHTTPScanner_ReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	resp := NewHTTPScanner(fetch.New(), extract.ModeSimple).Scan(context.Background(), srv.URL)
	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.Contains(t, resp.Error, "403")
}

func TestFallback(t *testing.T) {
	got := Fallback(core.Tab{URL: "https://example.com/x", Title: "Breaking News: Economy Update 2024"})

	assert.True(t, got.Fallback)
	assert.Equal(t, "https://example.com/x", got.URL)
	assert.Equal(t, []core.Heading{{Level: 1, Text: "Breaking News: Economy Update 2024"}}, got.Headings)
	assert.Equal(t, got.Title, got.MainText)
	assert.Equal(t, []string{"Breaking", "News", "Economy", "Update", "2024"}, got.Keywords)
}

func TestFallback_EmptyTitle(t *testing.T) {
	got := Fallback(core.Tab{URL: "https://example.com"})
	assert.NotNil(t, got.Keywords)
	assert.Empty(t, got.Keywords)
}
