package filename

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gaurav-prasanna/smarturl/core"
)

var fixedNow = func() time.Time { return time.UnixMilli(1700000000123).UTC() }

func TestSynthesize_Keywords(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		want  string
	}{
		{name: "joined", words: []string{"breaking", "news", "economy"}, want: "breaking_news_economy"},
		{name: "deduplicated", words: []string{"go", "go", "tips"}, want: "go_tips"},
		{name: "at most five", words: []string{"aa", "bb", "cc", "dd", "ee", "ff"}, want: "aa_bb_cc_dd_ee"},
		{name: "length filtered", words: []string{"x", "ok", "averyveryverylongkeyword"}, want: "ok"},
		{name: "illegal characters removed", words: []string{"c++/cli", "a:b"}, want: "c++cli_ab"},
		{name: "inner whitespace", words: []string{"new york", "times"}, want: "new_york_times"},
		{name: "cjk", words: []string{"東京", "タワー"}, want: "東京_タワー"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Synthesize(tt.words, "https://example.com"))
		})
	}
}

func TestSynthesize_DomainFallback(t *testing.T) {
	got := Synthesize(nil, "https://www.example.com/article")
	assert.Regexp(t, regexp.MustCompile(`^example\.com_page_\d+$`), got)

	s := Synthesizer{Now: fixedNow}
	assert.Equal(t, "example.com_page_1700000000123", s.Synthesize([]string{}, "https://www.example.com/article"))
	assert.Equal(t, "blog.example.org_page_1700000000123", s.Synthesize(nil, "http://blog.example.org:8080/x"))
}

func TestSynthesize_TimestampFallback(t *testing.T) {
	got := Synthesize(nil, "not a url")
	assert.Regexp(t, regexp.MustCompile(`^shortcut_\d+$`), got)

	s := Synthesizer{Now: fixedNow}
	for _, raw := range []string{"", "not a url", "://broken", "%zz", "mailto:"} {
		assert.Equal(t, "shortcut_1700000000123", s.Synthesize(nil, raw), "url %q", raw)
	}
}

func TestSynthesize_NeverEmpty(t *testing.T) {
	inputs := [][]string{nil, {}, {""}, {"x"}, {`<>`, `??`}, {"valid"}}
	urls := []string{"", "not a url", "https://example.com", "http://[::1]:80/", "ftp://files"}
	for _, words := range inputs {
		for _, u := range urls {
			assert.NotEmpty(t, Synthesize(words, u))
		}
	}
}

func TestSynthesizer_MaxParts(t *testing.T) {
	s := Synthesizer{MaxParts: 2}
	assert.Equal(t, "aa_bb", s.Synthesize([]string{"aa", "bb", "cc"}, ""))

	s = Synthesizer{MaxParts: 9}
	assert.Equal(t, "aa_bb_cc_dd_ee", s.Synthesize([]string{"aa", "bb", "cc", "dd", "ee", "ff"}, ""))
}

func TestCandidates(t *testing.T) {
	withKeywords := &core.PageContent{Keywords: []string{"a1", "b2", "c3", "d4", "e5", "f6"}}
	assert.Equal(t, []string{"a1", "b2", "c3", "d4", "e5"}, Candidates(withKeywords))

	noKeywords := &core.PageContent{
		Title:        "The Go Programming Language Specification",
		MetaKeywords: "golang, spec , reference",
	}
	assert.Equal(t, []string{"Go", "Programming", "Language", "golang", "spec"}, Candidates(noKeywords))

	// An explicit, empty keyword list means the scan found nothing usable.
	empty := &core.PageContent{Title: "Ignored Title", Keywords: []string{}}
	assert.Empty(t, Candidates(empty))
	assert.Nil(t, Candidates(nil))
}

func TestForPage_Template(t *testing.T) {
	page := &core.PageContent{
		Title:    "Release Notes",
		URL:      "https://www.golang.org/doc",
		Keywords: []string{"release", "notes"},
	}

	s := Synthesizer{Now: fixedNow}
	assert.Equal(t, "release_notes", s.ForPage(page))

	s.Template = "{domain}-{keywords}-{date}"
	assert.Equal(t, "golang.org-release_notes-2023-11-14", s.ForPage(page))

	s.Template = "{title}"
	assert.Equal(t, "Release_Notes", s.ForPage(page))

	s.Template = "static"
	assert.Equal(t, "release_notes", s.ForPage(page))
}

func TestForPage_Fallback(t *testing.T) {
	s := Synthesizer{Now: fixedNow}
	page := &core.PageContent{URL: "https://www.example.com/a", Keywords: []string{}}
	assert.Equal(t, "example.com_page_1700000000123", s.ForPage(page))
	assert.Equal(t, "shortcut_1700000000123", s.ForPage(nil))
}

func TestSimple(t *testing.T) {
	s := Synthesizer{Now: fixedNow}
	assert.Equal(t, "Read_This_Article", s.Simple("Read: This Article", "https://example.com"))
	assert.Equal(t, "example.com", s.Simple("", "https://www.example.com/x"))
	assert.Equal(t, "shortcut_1700000000123", s.Simple("", "not a url"))
	assert.Equal(t, "shortcut_1700000000123", s.Simple("Read: This Article", "not a url"))
	assert.Equal(t, "shortcut_1700000000123", s.Simple("Docs", "/relative/path"))
	assert.Equal(t, "shortcut_1700000000123", s.Simple("Docs", "http://[::1"))
}

func TestDomain(t *testing.T) {
	assert.Equal(t, "example.com", Domain("https://www.example.com/article"))
	assert.Equal(t, "sub.www.example.com", Domain("https://sub.www.example.com"))
	assert.Equal(t, "", Domain("not a url"))
}
