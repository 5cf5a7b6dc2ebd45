// Package render provides the artifact renderers for SmartURL.
// This file implements the Internet Shortcut renderer, the primary output.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/smarturl/core"
	"github.com/gaurav-prasanna/smarturl/core/shortcut"
)

// URLRenderer writes a Windows .url file pointing at the request URL.
type URLRenderer struct{}

// NewURLRenderer creates a URLRenderer.
func NewURLRenderer() *URLRenderer {
	return &URLRenderer{}
}

// Render encodes the shortcut; the page is not needed.
func (r *URLRenderer) Render(req core.ShortcutRequest, _ *core.PageContent) ([]byte, error) {
	return shortcut.Encode(req.URL), nil
}

// Extension returns the file extension for shortcut output.
func (r *URLRenderer) Extension() string {
	return shortcut.Extension
}

// MediaType returns the shortcut MIME type.
func (r *URLRenderer) MediaType() string {
	return shortcut.MediaType
}

// Formats lists the names accepted by ForFormat.
var Formats = []string{"url", "json", "yaml", "markdown", "pdf"}

// ForFormat returns the renderer registered under name.
func ForFormat(name string) (core.Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "url":
		return NewURLRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "yaml", "yml":
		return NewYAMLRenderer(), nil
	case "markdown", "md":
		return NewMarkdownRenderer(), nil
	case "pdf":
		return NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(Formats, ", "))
	}
}
