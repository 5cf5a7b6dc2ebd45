// Package extract builds the PageContent model from a parsed HTML document.
// It isolates the page's main text by:
//  1. Finding the best content container (a prioritized selector list, then <body>)
//  2. Removing noise elements (navigation, ads, comments, scripts, etc.)
//
// Build is a pure function: a document goes in, a value comes out.
package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/rs/zerolog/log"

	"github.com/gaurav-prasanna/smarturl/core"
	"github.com/gaurav-prasanna/smarturl/crawl"
)

// Mode selects how the main content region is located.
type Mode string

const (
	// ModeSimple walks contentSelectors.
	ModeSimple Mode = "simple"
	// ModeDetailed lets go-readability pick the article body.
	ModeDetailed Mode = "detailed"
)

// ParseMode maps a settings value to a Mode, defaulting to ModeSimple.
func ParseMode(s string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(s))) == ModeDetailed {
		return ModeDetailed
	}
	return ModeSimple
}

// contentSelectors are tried in order; the first match is the main region.
var contentSelectors = []string{
	"main",
	"article",
	`[role="main"]`,
	".content",
	"#content",
	".main",
	"#main",
	".post-content",
	".entry-content",
	".article-content",
}

// noiseSelectors are removed from the main region before reading its text.
var noiseSelectors = []string{
	"script", "style",
	"nav", "header", "footer",
	".navigation", ".nav", ".menu", ".sidebar",
	".ad", ".advertisement",
	".social", ".share",
	".comment", ".comments",
}

// genericLinkTexts carry no information about the link target.
var genericLinkTexts = map[string]bool{
	"click here": true,
	"read more":  true,
}

const maxHeadingChars = 200

var spaces = regexp.MustCompile(`[\s\p{Z}\x{FEFF}]+`)

// FromHTML parses html and builds the page model.
func FromHTML(html, pageURL string, mode Mode) (core.PageContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return core.PageContent{}, fmt.Errorf("parsing HTML: %w", err)
	}
	return Build(doc, pageURL, mode), nil
}

// Build assembles the page model. Caps on main text, images and links are
// applied here, while extracting.
func Build(doc *goquery.Document, pageURL string, mode Mode) core.PageContent {
	base, _ := url.Parse(pageURL)

	page := core.PageContent{
		Title:    collapse(doc.Find("title").First().Text()),
		URL:      pageURL,
		Headings: []core.Heading{},
		Images:   []core.Image{},
		Links:    []core.Link{},
	}

	page.MetaKeywords = metaContent(doc, `meta[name="keywords"]`)
	page.MetaDescription = metaContent(doc, `meta[name="description"]`)
	if page.Title == "" {
		page.Title = metaContent(doc, `meta[property="og:title"]`)
	}
	if page.MetaDescription == "" {
		page.MetaDescription = metaContent(doc, `meta[property="og:description"]`)
	}

	page.Headings = headings(doc)
	page.MainText, page.MainHTML = mainContent(doc, base, mode)
	page.Images = images(doc, base)
	page.Links = links(doc, base)

	return page
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

func headings(doc *goquery.Document) []core.Heading {
	out := []core.Heading{}
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" || utf8.RuneCountInString(text) >= maxHeadingChars {
			return
		}
		level, _ := strconv.Atoi(strings.TrimPrefix(goquery.NodeName(s), "h"))
		out = append(out, core.Heading{Level: level, Text: text})
	})
	return out
}

// mainContent returns the cleaned main text (capped) and its HTML fragment.
func mainContent(doc *goquery.Document, base *url.URL, mode Mode) (string, string) {
	var region *goquery.Selection
	if mode == ModeDetailed {
		region = readableRegion(doc, base)
	}
	if region == nil {
		region = selectRegion(doc)
	}

	clean := region.Clone()
	for _, sel := range noiseSelectors {
		clean.Find(sel).Remove()
	}

	text := truncate(collapse(clean.Text()), core.MaxMainTextChars)
	fragment, err := goquery.OuterHtml(clean)
	if err != nil {
		fragment = ""
	}
	return text, fragment
}

// selectRegion finds the best content container in priority order.
func selectRegion(doc *goquery.Document) *goquery.Selection {
	for _, sel := range contentSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			return found.First()
		}
	}
	return doc.Find("body").First()
}

// readableRegion runs go-readability over the document. It returns nil when
// readability cannot find an article, so the caller can fall back.
func readableRegion(doc *goquery.Document, base *url.URL) *goquery.Selection {
	if base == nil || !base.IsAbs() {
		return nil
	}
	html, err := doc.Html()
	if err != nil {
		return nil
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), base)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		log.Debug().Err(err).Msg("readability found no article; using selector fallback")
		return nil
	}

	content, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil
	}
	return content.Find("body").First()
}

func images(doc *goquery.Document, base *url.URL) []core.Image {
	out := []core.Image{}
	doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src := crawl.Resolve(s.AttrOr("src", ""), base)
		alt := strings.TrimSpace(s.AttrOr("alt", ""))
		if src == "" || alt == "" {
			return true
		}
		out = append(out, core.Image{Src: src, Alt: alt, Title: strings.TrimSpace(s.AttrOr("title", ""))})
		return len(out) < core.MaxImages
	})
	return out
}

func links(doc *goquery.Document, base *url.URL) []core.Link {
	out := []core.Link{}
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		raw := s.AttrOr("href", "")
		if strings.Contains(raw, "#") {
			return true
		}
		href := crawl.Resolve(raw, base)
		n := utf8.RuneCountInString(text)
		if n == 0 || n >= 100 || !crawl.IsWebLink(href) || genericLinkTexts[strings.ToLower(text)] {
			return true
		}
		out = append(out, core.Link{Href: href, Text: text, Title: strings.TrimSpace(s.AttrOr("title", ""))})
		return len(out) < core.MaxLinks
	})
	return out
}

func collapse(s string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
