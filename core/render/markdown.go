// Package render: Markdown link note.
// A note with the page title as a link, its description and keywords, and
// the cleaned main content converted with html-to-markdown.
package render

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/gaurav-prasanna/smarturl/core"
)

// MarkdownRenderer writes a Markdown note for the shortcut.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render builds the note. Without a page only the link line is written.
func (r *MarkdownRenderer) Render(req core.ShortcutRequest, page *core.PageContent) ([]byte, error) {
	title := req.Title
	if title == "" {
		title = req.Filename
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# [%s](%s)\n", escapeBrackets(title), req.URL)

	if page != nil {
		if page.MetaDescription != "" {
			fmt.Fprintf(&b, "\n> %s\n", page.MetaDescription)
		}
		if len(page.Keywords) > 0 {
			fmt.Fprintf(&b, "\nKeywords: %s\n", strings.Join(page.Keywords, ", "))
		}
		if page.MainHTML != "" {
			body, err := htmltomarkdown.ConvertString(page.MainHTML)
			if err != nil {
				return nil, fmt.Errorf("converting HTML to markdown: %w", err)
			}
			if body = strings.TrimSpace(body); body != "" {
				b.WriteString("\n---\n\n")
				b.WriteString(body)
				b.WriteString("\n")
			}
		}
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// MediaType returns the Markdown MIME type.
func (r *MarkdownRenderer) MediaType() string {
	return "text/markdown"
}

func escapeBrackets(s string) string {
	return strings.NewReplacer("[", `\[`, "]", `\]`).Replace(s)
}
