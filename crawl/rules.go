// Package crawl: URL rules.
// Helpers to resolve, filter and normalize URLs found on a page. The page
// builder uses them for the link list, discovery uses them for batch runs.
package crawl

import (
	"net"
	"net/url"
	"path"
	"strings"
)

// nonPageExtensions mark files a batch run saves no shortcut for: media,
// styles, scripts, fonts, archives and documents the browser downloads.
var nonPageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".bmp": true,
	".css": true, ".js": true, ".mjs": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".mp4": true, ".webm": true, ".mp3": true, ".wav": true,
	".zip": true, ".tar": true, ".gz": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
}

// siteHost is the host a batch run groups shortcuts under: lower case,
// without a default port or a leading "www.".
func siteHost(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	if port := u.Port(); port != "" && !isDefaultPort(u.Scheme, port) {
		host += ":" + port
	}
	return strings.TrimPrefix(host, "www.")
}

func isDefaultPort(scheme, port string) bool {
	switch strings.ToLower(scheme) {
	case "http":
		return port == "80"
	case "https":
		return port == "443"
	}
	return false
}

// SameSite reports whether rawURL belongs to the site being batched.
// "www.example.com", "Example.com" and "example.com:443" all match
// "example.com".
func SameSite(rawURL, site string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	want, err := url.Parse("//" + site)
	if err != nil {
		return false
	}
	want.Scheme = parsed.Scheme
	return siteHost(parsed) == siteHost(want)
}

// WantsShortcut reports whether a discovered URL is a page worth a
// shortcut: http(s) and not a static file.
func WantsShortcut(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return false
	}
	return !nonPageExtensions[strings.ToLower(path.Ext(parsed.Path))]
}

// IsWebLink reports whether href is an absolute http(s) URL without a fragment.
func IsWebLink(href string) bool {
	return strings.HasPrefix(href, "http") && !strings.Contains(href, "#")
}

// Resolve makes href absolute against base the way a browser does for
// a.href and img.src. Unparseable values resolve to "".
func Resolve(href string, base *url.URL) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return parsed.String()
	}
	return base.ResolveReference(parsed).String()
}

// CanonicalURL is the form a batch run deduplicates shortcuts by: scheme
// and host lower case, default port, fragment and trailing slash dropped.
// Unparseable input is returned unchanged.
func CanonicalURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	host := strings.ToLower(parsed.Hostname())
	if port := parsed.Port(); port != "" && !isDefaultPort(parsed.Scheme, port) {
		host = net.JoinHostPort(host, port)
	} else if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	parsed.Host = host
	parsed.Fragment = ""
	parsed.RawFragment = ""

	// Keep root "/".
	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
		parsed.RawPath = ""
	}

	return parsed.String()
}
