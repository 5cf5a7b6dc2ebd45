// Package keywords extracts filename-worthy terms from page text.
//
// There are two entry points on purpose. Extract ranks terms by frequency
// and is used when the whole page was scanned. ExtractDegraded keeps scan
// order and is used when only a title is available; ranking a single short
// string carries no signal, and merging the two would change output order.
package keywords

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gaurav-prasanna/smarturl/core"
)

const (
	minASCIILen = 3
	minCJKLen   = 2
	maxCJKLen   = 15

	// MaxDegraded caps ExtractDegraded.
	MaxDegraded = 10
)

// Ranked extraction patterns.
var (
	asciiTerm    = regexp.MustCompile(`[a-zA-Z0-9]{3,20}`)
	katakanaTerm = regexp.MustCompile(`[ァ-ヶー]{2,15}`)
	kanjiTerm    = regexp.MustCompile(`[一-龯]{2,10}`)
)

// Degraded extraction patterns; looser ASCII, shorter CJK runs.
var (
	titleASCIITerm    = regexp.MustCompile(`[a-zA-Z0-9]+`)
	titleKatakanaTerm = regexp.MustCompile(`[ァ-ヶー]{2,10}`)
	titleKanjiTerm    = regexp.MustCompile(`[一-龯]{2,8}`)
)

// Keyword is a normalized term and how often it occurred.
type Keyword struct {
	Term  string `json:"term" yaml:"term"`
	Count int    `json:"count" yaml:"count"`
}

// Ranked returns every surviving term with its count, sorted by descending
// count. Ties keep first-seen order.
func Ranked(text string) []Keyword {
	if strings.TrimSpace(text) == "" {
		return []Keyword{}
	}

	counts := make(map[string]int)
	var order []string
	add := func(term string) {
		if _, seen := counts[term]; !seen {
			order = append(order, term)
		}
		counts[term]++
	}

	for _, word := range asciiTerm.FindAllString(text, -1) {
		lower := strings.ToLower(word)
		if IsStopWord(lower) {
			continue
		}
		add(lower)
	}

	cjk := append(katakanaTerm.FindAllString(text, -1), kanjiTerm.FindAllString(text, -1)...)
	for _, word := range cjk {
		if n := utf8.RuneCountInString(word); n < minCJKLen || n > maxCJKLen {
			continue
		}
		add(word)
	}

	ranked := make([]Keyword, 0, len(order))
	for _, term := range order {
		ranked = append(ranked, Keyword{Term: term, Count: counts[term]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

// Extract returns up to max terms from text ordered by frequency.
func Extract(text string, max int) []string {
	ranked := Ranked(text)
	if max < 0 {
		max = 0
	}
	if len(ranked) > max {
		ranked = ranked[:max]
	}

	terms := make([]string, len(ranked))
	for i, kw := range ranked {
		terms[i] = kw.Term
	}
	return terms
}

// FromPage runs Extract over every textual field of the page.
func FromPage(page *core.PageContent, max int) []string {
	return Extract(ScanBuffer(page), max)
}

// ScanBuffer joins the page's title, meta fields, headings and main text.
func ScanBuffer(page *core.PageContent) string {
	if page == nil {
		return ""
	}
	return strings.Join([]string{
		page.Title,
		page.MetaKeywords,
		page.MetaDescription,
		strings.Join(page.HeadingTexts(), " "),
		page.MainText,
	}, " ")
}

// ExtractDegraded scans a short string such as a tab title and returns the
// first MaxDegraded non-stop-word matches in scan order. ASCII matches come
// first, then katakana, then ideographs. Case is preserved.
func ExtractDegraded(text string) []string {
	if text == "" {
		return []string{}
	}

	var words []string
	words = append(words, titleASCIITerm.FindAllString(text, -1)...)
	words = append(words, titleKatakanaTerm.FindAllString(text, -1)...)
	words = append(words, titleKanjiTerm.FindAllString(text, -1)...)

	out := make([]string, 0, MaxDegraded)
	for _, word := range words {
		if utf8.RuneCountInString(word) < minCJKLen || isTitleStopWord(strings.ToLower(word)) {
			continue
		}
		out = append(out, word)
		if len(out) == MaxDegraded {
			break
		}
	}
	return out
}
