// Package core defines the shared page model and the collaborator interfaces
// for SmartURL. Each stage of the shortcut pipeline is a small, testable unit.
package core

import "context"

// Collection caps enforced by the page builder.
const (
	MaxMainTextChars = 2000
	MaxImages        = 5
	MaxLinks         = 10
)

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Heading represents a single heading found on the page.
type Heading struct {
	Level int    `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
}

// Image is an illustrative image with non-empty alt text.
type Image struct {
	Src   string `json:"src" yaml:"src"`
	Alt   string `json:"alt" yaml:"alt"`
	Title string `json:"title" yaml:"title"`
}

// Link represents a hyperlink found on the page.
type Link struct {
	Href  string `json:"href" yaml:"href"`
	Text  string `json:"text" yaml:"text"`
	Title string `json:"title" yaml:"title"`
}

// PageContent is the structured record assembled from a scanned document.
// It is built fresh for every analysis and never persisted.
type PageContent struct {
	Title           string    `json:"title" yaml:"title"`
	URL             string    `json:"url" yaml:"url"`
	MetaKeywords    string    `json:"metaKeywords" yaml:"metaKeywords"`
	MetaDescription string    `json:"metaDescription" yaml:"metaDescription"`
	Headings        []Heading `json:"headings" yaml:"headings"`
	MainText        string    `json:"mainText" yaml:"mainText"`
	Images          []Image   `json:"images" yaml:"images"`
	Links           []Link    `json:"links" yaml:"links"`
	Keywords        []string  `json:"keywords" yaml:"keywords"`

	// Fallback is set when the model was built from tab data only.
	Fallback bool `json:"fallback,omitempty" yaml:"fallback,omitempty"`

	// MainHTML is the cleaned main-content fragment. Only renderers use it.
	MainHTML string `json:"-" yaml:"-"`
}

// HeadingTexts returns the heading texts in document order.
func (p *PageContent) HeadingTexts() []string {
	texts := make([]string, 0, len(p.Headings))
	for _, h := range p.Headings {
		texts = append(texts, h.Text)
	}
	return texts
}

// Tab is what the host knows about a page without scanning it.
type Tab struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// ShortcutRequest asks for one shortcut file. It is consumed exactly once.
type ShortcutRequest struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Title    string `json:"title"`
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Renderer turns a shortcut request (and the analysed page, when there is
// one) into the bytes of a downloadable artifact.
type Renderer interface {
	Render(req ShortcutRequest, page *PageContent) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".url").
	Extension() string
	// MediaType is used when the artifact is wrapped in a data URI.
	MediaType() string
}
