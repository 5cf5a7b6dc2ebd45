// Package filename derives the base name (no extension) of a shortcut file.
// Every path here degrades to a timestamp-based name instead of failing.
package filename

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gaurav-prasanna/smarturl/core"
	"github.com/gaurav-prasanna/smarturl/core/keywords"
	"github.com/gaurav-prasanna/smarturl/core/normalize"
)

const (
	// DefaultMaxParts is how many keywords end up in a filename.
	DefaultMaxParts = 5
	// DefaultTemplate uses the keywords alone.
	DefaultTemplate = "{keywords}"

	minWordLen = 2
	maxWordLen = 20

	candidateTitleWords = 3
	candidateMetaWords  = 2
)

// Synthesizer builds filenames from keywords. The zero value is usable.
type Synthesizer struct {
	// MaxParts bounds the keywords joined into a name; values outside
	// 1..DefaultMaxParts fall back to DefaultMaxParts.
	MaxParts int
	// Template may reference {keywords}, {domain}, {date} and {title}.
	Template string
	// Now returns the clock used for timestamp fallbacks.
	Now func() time.Time
}

// Synthesize is Synthesizer{}.Synthesize.
func Synthesize(words []string, fallbackURL string) string {
	return Synthesizer{}.Synthesize(words, fallbackURL)
}

// Synthesize joins up to MaxParts distinct, normalized keywords with "_".
// With no usable keyword it returns {host}_page_{millis}, or
// shortcut_{millis} when fallbackURL has no host.
func (s Synthesizer) Synthesize(words []string, fallbackURL string) string {
	if name := s.join(words); name != "" {
		return name
	}
	return s.fallback(fallbackURL)
}

// ForPage applies the template to the page's candidate keywords.
func (s Synthesizer) ForPage(page *core.PageContent) string {
	if page == nil {
		return s.fallback("")
	}
	joined := s.join(Candidates(page))
	if joined == "" {
		return s.fallback(page.URL)
	}

	tmpl := s.Template
	if strings.TrimSpace(tmpl) == "" || (!strings.Contains(tmpl, "{keywords}") && !strings.Contains(tmpl, "{title}")) {
		tmpl = DefaultTemplate
	}
	name := strings.NewReplacer(
		"{keywords}", joined,
		"{domain}", normalize.Word(Domain(page.URL)),
		"{date}", s.now().Format("2006-01-02"),
		"{title}", normalize.ForFilename(page.Title),
	).Replace(tmpl)

	if name = normalize.Word(name); name == "" {
		return s.fallback(page.URL)
	}
	return name
}

func (s Synthesizer) join(words []string) string {
	limit := s.MaxParts
	if limit <= 0 || limit > DefaultMaxParts {
		limit = DefaultMaxParts
	}

	seen := make(map[string]bool, len(words))
	parts := make([]string, 0, limit)
	for _, word := range words {
		if seen[word] {
			continue
		}
		seen[word] = true

		if n := utf8.RuneCountInString(word); n < minWordLen || n > maxWordLen {
			continue
		}
		if len(parts) == limit {
			break
		}
		if clean := normalize.Word(word); clean != "" {
			parts = append(parts, clean)
		}
	}
	return strings.Join(parts, "_")
}

func (s Synthesizer) fallback(rawURL string) string {
	millis := s.now().UnixMilli()
	if host := Domain(rawURL); host != "" {
		return fmt.Sprintf("%s_page_%d", normalize.Word(host), millis)
	}
	return fmt.Sprintf("shortcut_%d", millis)
}

func (s Synthesizer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Domain returns the URL's hostname without a leading "www.", or "" when
// rawURL is not an absolute URL.
func Domain(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}

// Candidates picks the keywords a filename is built from. Keywords computed
// during the scan win; otherwise the first title words are followed by the
// first meta keywords.
func Candidates(page *core.PageContent) []string {
	if page == nil {
		return nil
	}
	if page.Keywords != nil {
		return head(page.Keywords, DefaultMaxParts)
	}

	var out []string
	if page.Title != "" {
		out = append(out, head(keywords.ExtractDegraded(page.Title), candidateTitleWords)...)
	}
	if page.MetaKeywords != "" {
		var meta []string
		for _, w := range strings.Split(page.MetaKeywords, ",") {
			meta = append(meta, strings.TrimSpace(w))
		}
		out = append(out, head(meta, candidateMetaWords)...)
	}
	return out
}

// Simple names a shortcut created without page analysis, e.g. from a link:
// a timestamp when the URL is not absolute, otherwise the normalized title,
// else the domain.
func (s Synthesizer) Simple(title, rawURL string) string {
	fallback := fmt.Sprintf("shortcut_%d", s.now().UnixMilli())
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fallback
	}
	if clean := normalize.ForFilename(title); clean != "" {
		return clean
	}
	if host := Domain(rawURL); host != "" {
		return normalize.Word(host)
	}
	return fallback
}

func head(words []string, n int) []string {
	if len(words) > n {
		return words[:n]
	}
	return words
}
