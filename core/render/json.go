// Package render: analysis reports.
// JSON and YAML reports describe a shortcut together with the page analysis
// that named it: the page model and the ranked keyword counts.
package render

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/smarturl/core"
	"github.com/gaurav-prasanna/smarturl/core/keywords"
)

// reportKeywords bounds the ranked keyword list in reports.
const reportKeywords = 15

// Report is the structured analysis output.
type Report struct {
	Shortcut core.ShortcutRequest `json:"shortcut" yaml:"shortcut"`
	Page     *core.PageContent    `json:"page,omitempty" yaml:"page,omitempty"`
	Ranked   []keywords.Keyword   `json:"ranked,omitempty" yaml:"ranked,omitempty"`
}

// NewReport assembles the report for req and page.
func NewReport(req core.ShortcutRequest, page *core.PageContent) Report {
	rep := Report{Shortcut: req, Page: page}
	if page != nil && !page.Fallback {
		ranked := keywords.Ranked(keywords.ScanBuffer(page))
		if len(ranked) > reportKeywords {
			ranked = ranked[:reportKeywords]
		}
		rep.Ranked = ranked
	}
	return rep
}

// JSONRenderer produces the report as indented JSON.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the report.
func (r *JSONRenderer) Render(req core.ShortcutRequest, page *core.PageContent) ([]byte, error) {
	data, err := json.MarshalIndent(NewReport(req, page), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// MediaType returns the JSON MIME type.
func (r *JSONRenderer) MediaType() string {
	return "application/json"
}

// YAMLRenderer produces the report as YAML.
type YAMLRenderer struct{}

// NewYAMLRenderer creates a YAMLRenderer.
func NewYAMLRenderer() *YAMLRenderer {
	return &YAMLRenderer{}
}

// Render marshals the report.
func (r *YAMLRenderer) Render(req core.ShortcutRequest, page *core.PageContent) ([]byte, error) {
	data, err := yaml.Marshal(NewReport(req, page))
	if err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for YAML output.
func (r *YAMLRenderer) Extension() string {
	return ".yaml"
}

// MediaType returns the YAML MIME type.
func (r *YAMLRenderer) MediaType() string {
	return "application/yaml"
}
