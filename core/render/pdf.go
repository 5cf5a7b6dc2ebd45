// Package render: PDF summary card.
// A single-document card with the shortcut target, its suggested filename,
// keywords and headings, followed by the cleaned main content. Core PDF
// fonts are Latin-1, so text outside cp1252 is not rendered faithfully.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/smarturl/core"
)

var (
	orderedItem  = regexp.MustCompile(`^\d+\.\s`)
	emphasis     = regexp.MustCompile(`(?:^|\s)\*([^*]+)\*(?:\s|$)`)
	inlineCode   = regexp.MustCompile("`([^`]+)`")
	markdownLink = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
)

// PDFRenderer renders a shortcut summary card as PDF.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render lays out the card and returns the PDF bytes.
func (r *PDFRenderer) Render(req core.ShortcutRequest, page *core.PageContent) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := req.Title
	if title == "" && page != nil {
		title = page.Title
	}
	if title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, tr(title), "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, tr("Target: "+req.URL), "", "L", false)
	if req.Filename != "" {
		pdf.MultiCell(0, 5, tr("Shortcut: "+req.Filename+".url"), "", "L", false)
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	if page != nil {
		writeSummary(pdf, tr, page)
		if page.MainHTML != "" {
			body, err := NewMarkdownRenderer().Render(core.ShortcutRequest{}, &core.PageContent{MainHTML: page.MainHTML})
			if err != nil {
				return nil, err
			}
			writeMarkdown(pdf, tr, bodyOf(string(body)))
		} else if page.MainText != "" {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(page.MainText), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// MediaType returns the PDF MIME type.
func (r *PDFRenderer) MediaType() string {
	return "application/pdf"
}

func writeSummary(pdf *gofpdf.Fpdf, tr func(string) string, page *core.PageContent) {
	if page.MetaDescription != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 5, tr(page.MetaDescription), "", "L", false)
		pdf.Ln(3)
	}
	if len(page.Keywords) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(235, 242, 250)
		pdf.MultiCell(0, 6, tr("Keywords: "+strings.Join(page.Keywords, ", ")), "", "L", true)
		pdf.Ln(3)
	}
	if len(page.Headings) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 6, "Outline", "", "L", false)
		for _, h := range page.Headings {
			indent := float64(h.Level-1) * 4
			pdf.SetX(pdf.GetX() + indent)
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(h.Text), "", "L", false)
		}
		pdf.Ln(3)
	}
}

// bodyOf drops the link header the Markdown note starts with.
func bodyOf(note string) string {
	if _, rest, ok := strings.Cut(note, "\n---\n"); ok {
		return rest
	}
	return ""
}

// writeMarkdown renders Markdown line by line: headings, fenced code,
// bullet and numbered lists, and paragraphs.
func writeMarkdown(pdf *gofpdf.Fpdf, tr func(string) string, markdown string) {
	inCode := false
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCode = !inCode
			pdf.Ln(2)
			continue
		}
		if inCode {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, tr(line), "", "L", true)
			continue
		}

		switch {
		case trimmed == "":
			pdf.Ln(3)
		case strings.HasPrefix(trimmed, "#"):
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
			writeHeading(pdf, tr(strings.TrimSpace(strings.TrimLeft(trimmed, "#"))), level)
		case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr("- "+cleanInline(trimmed[2:])), "", "L", false)
		case orderedItem.MatchString(trimmed):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInline(trimmed)), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInline(line)), "", "L", false)
		}
	}
}

func writeHeading(pdf *gofpdf.Fpdf, text string, level int) {
	size := 10.0
	switch level {
	case 1:
		size = 16
	case 2:
		size = 14
	case 3:
		size = 12
	case 4, 5:
		size = 11
	}
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, cleanInline(text), "", "L", false)
	pdf.Ln(1)
}

// cleanInline strips inline Markdown markers.
func cleanInline(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = emphasis.ReplaceAllString(text, " $1 ")
	text = inlineCode.ReplaceAllString(text, "$1")
	text = markdownLink.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
