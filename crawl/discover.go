// Package crawl finds the pages of a site for batch shortcut creation.
// Discovery tries sitemap.xml first and falls back to a breadth-first walk
// of same-host links.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/gaurav-prasanna/smarturl/core"
)

// DefaultLimit caps the number of pages a batch run will visit.
const DefaultLimit = 50

type sitemapURL struct {
	Loc string `xml:"loc"`
}

type urlSet struct {
	URLs []sitemapURL `xml:"url"`
}

// Discover returns up to limit same-host page URLs starting with baseURL.
func Discover(ctx context.Context, baseURL string, fetcher core.Fetcher, limit int) ([]string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return nil, fmt.Errorf("base URL %q is not absolute", baseURL)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	sitemap := parsed.Scheme + "://" + parsed.Host + "/sitemap.xml"
	urls, err := fromSitemap(ctx, sitemap, parsed.Host, fetcher, limit)
	if err == nil && len(urls) > 0 {
		log.Debug().Str("sitemap", sitemap).Int("urls", len(urls)).Msg("using sitemap")
		return urls, nil
	}
	if err != nil {
		log.Debug().Err(err).Str("sitemap", sitemap).Msg("no usable sitemap; walking links")
	}

	return fromLinks(ctx, baseURL, parsed.Host, fetcher, limit), nil
}

func fromSitemap(ctx context.Context, sitemap, host string, fetcher core.Fetcher, limit int) ([]string, error) {
	res, err := fetcher.Fetch(ctx, sitemap)
	if err != nil {
		return nil, err
	}

	var set urlSet
	if err := xml.Unmarshal([]byte(res.HTML), &set); err != nil {
		return nil, fmt.Errorf("parsing sitemap: %w", err)
	}

	q := NewQueue(limit)
	for _, u := range set.URLs {
		loc := strings.TrimSpace(u.Loc)
		if SameSite(loc, host) && WantsShortcut(loc) {
			q.Add(CanonicalURL(loc))
		}
	}
	return q.All(), nil
}

// fromLinks walks pages breadth first. Pages that fail to fetch are skipped.
func fromLinks(ctx context.Context, start, host string, fetcher core.Fetcher, limit int) []string {
	q := NewQueue(limit)
	q.Add(CanonicalURL(start))

	for q.HasNext() {
		if ctx.Err() != nil {
			break
		}
		current := q.Next()

		res, err := fetcher.Fetch(ctx, current)
		if err != nil {
			log.Debug().Err(err).Str("url", current).Msg("skipping page")
			continue
		}

		for _, link := range pageLinks(res.HTML, res.URL) {
			if SameSite(link, host) && WantsShortcut(link) {
				q.Add(CanonicalURL(link))
			}
		}
	}
	return q.All()
}

// pageLinks returns the absolute http(s) targets of every anchor.
func pageLinks(html, pageURL string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		resolved := Resolve(href, base)
		if strings.HasPrefix(resolved, "http") {
			links = append(links, resolved)
		}
	})
	return links
}
