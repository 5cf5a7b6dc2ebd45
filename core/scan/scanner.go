// Package scan is the page-scan collaborator: it fetches a page, builds its
// content model and ranks its keywords. When a scan is not possible the
// caller builds a Fallback model from what it already knows about the tab.
package scan

import (
	"context"

	"github.com/gaurav-prasanna/smarturl/core"
	"github.com/gaurav-prasanna/smarturl/core/extract"
	"github.com/gaurav-prasanna/smarturl/core/keywords"
)

// PageKeywords is how many ranked keywords a full scan attaches to the page.
const PageKeywords = 15

// Response answers an analyze request: either Success with Data, or an
// Error message.
type Response struct {
	Success bool              `json:"success"`
	Data    *core.PageContent `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// Scanner analyses the page at a URL.
type Scanner interface {
	Scan(ctx context.Context, url string) Response
}

// HTTPScanner scans pages over HTTP.
type HTTPScanner struct {
	Fetcher core.Fetcher
	Mode    extract.Mode
}

// NewHTTPScanner returns a scanner using f and the given analysis mode.
func NewHTTPScanner(f core.Fetcher, mode extract.Mode) *HTTPScanner {
	return &HTTPScanner{Fetcher: f, Mode: mode}
}

// Scan fetches and analyses url. Failures are reported in the response.
func (s *HTTPScanner) Scan(ctx context.Context, url string) Response {
	res, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return Response{Error: err.Error()}
	}

	page, err := extract.FromHTML(res.HTML, res.URL, s.Mode)
	if err != nil {
		return Response{Error: err.Error()}
	}
	page.Keywords = keywords.FromPage(&page, PageKeywords)

	return Response{Success: true, Data: &page}
}

// Fallback builds a degraded model from the tab's URL and title only.
func Fallback(tab core.Tab) *core.PageContent {
	return &core.PageContent{
		Title:    tab.Title,
		URL:      tab.URL,
		Headings: []core.Heading{{Level: 1, Text: tab.Title}},
		MainText: tab.Title,
		Images:   []core.Image{},
		Links:    []core.Link{},
		Keywords: keywords.ExtractDegraded(tab.Title),
		Fallback: true,
	}
}
