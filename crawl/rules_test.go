package crawl

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	base, _ := url.Parse("https://example.com/blog/post")

	assert.Equal(t, "https://example.com/blog/other", Resolve("other", base))
	assert.Equal(t, "https://example.com/about", Resolve("/about", base))
	assert.Equal(t, "https://cdn.example.net/x.png", Resolve("//cdn.example.net/x.png", base))
	assert.Equal(t, "https://example.com/blog/post#top", Resolve("#top", base))
	assert.Equal(t, "mailto:me@example.com", Resolve("mailto:me@example.com", base))
	assert.Equal(t, "", Resolve("   ", base))
	assert.Equal(t, "", Resolve("http://[::1", base))
}

func TestIsWebLink(t *testing.T) {
	assert.True(t, IsWebLink("https://example.com/a"))
	assert.True(t, IsWebLink("http://example.com"))
	assert.False(t, IsWebLink("https://example.com/a#frag"))
	assert.False(t, IsWebLink("mailto:me@example.com"))
	assert.False(t, IsWebLink("javascript:void(0)"))
}

func TestCanonicalURL(t *testing.T) {
	assert.Equal(t, "https://example.com/docs", CanonicalURL("https://example.com/docs/#intro"))
	assert.Equal(t, "https://example.com/", CanonicalURL("https://example.com/"))
	assert.Equal(t, "https://example.com/Docs", CanonicalURL("HTTPS://Example.COM:443/Docs/"))
	assert.Equal(t, "http://example.com:8080/a?q=1", CanonicalURL("http://example.com:8080/a/?q=1"))
	assert.Equal(t, "http://example.com/", CanonicalURL("http://example.com:80/"))
	assert.Equal(t, "not a url", CanonicalURL("not a url"))
}

func TestWantsShortcut(t *testing.T) {
	assert.False(t, WantsShortcut("https://example.com/logo.PNG"))
	assert.False(t, WantsShortcut("https://example.com/report.pdf"))
	assert.False(t, WantsShortcut("mailto:me@example.com"))
	assert.False(t, WantsShortcut("ftp://example.com/notes"))
	assert.True(t, WantsShortcut("https://example.com/article"))
	assert.True(t, WantsShortcut("http://example.com/"))
}

func TestSameSite(t *testing.T) {
	assert.True(t, SameSite("https://example.com/a", "example.com"))
	assert.True(t, SameSite("https://www.example.com/a", "example.com"))
	assert.True(t, SameSite("https://Example.COM:443/a", "www.example.com"))
	assert.False(t, SameSite("https://example.com:8443/a", "example.com"))
	assert.False(t, SameSite("https://other.com/a", "example.com"))
	assert.False(t, SameSite("https://blog.example.com/a", "example.com"))
	assert.False(t, SameSite("/relative", "example.com"))
}
