package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ukaji3/timetable-go/pkg/timetable/textutil"
)

// DefaultExtensions are the schedule file extensions kept by Links.
var DefaultExtensions = []string{".xls", ".xlsx"}

// Link is one schedule file found on a listing page.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// Links downloads pageURL and returns the schedule file links it contains.
func (c *Client) Links(ctx context.Context, pageURL string) ([]Link, error) {
	body, err := c.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return ParseLinks(bytes.NewReader(body), pageURL, c.extensions)
}

// ParseLinks extracts anchors from an HTML page. Only hrefs ending with one of
// extensions and pointing at the page's own host are kept, resolved against
// pageURL, in document order and without duplicates.
func ParseLinks(r io.Reader, pageURL string, extensions []string) ([]Link, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}

	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	var (
		links []Link
		seen  = make(map[string]bool)
	)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			if link, ok := resolveLink(base, attr(n, "href"), extensions); ok && !seen[link] {
				seen[link] = true
				links = append(links, Link{URL: link, Text: textutil.Sanitize(nodeText(n))})
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return links, nil
}

func resolveLink(base *url.URL, href string, extensions []string) (string, bool) {
	href = SanitizeLink(textutil.Sanitize(href))
	if href == "" {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	u := base.ResolveReference(ref)

	if !hasExtension(u.Path, extensions) || !sameOrigin(u, base) {
		return "", false
	}
	return u.String(), true
}

// SanitizeLink percent-encodes spaces in a schedule link.
func SanitizeLink(link string) string {
	return strings.ReplaceAll(link, " ", "%20")
}

// SameHost reports whether link has the scheme and host of pageURL.
func SameHost(link, pageURL string) bool {
	u, err := url.Parse(SanitizeLink(link))
	if err != nil || u.Host == "" {
		return false
	}
	page, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	return sameOrigin(u, page)
}

// IsScheduleLink reports whether link is a same-host schedule file link.
func IsScheduleLink(link, pageURL string, extensions []string) bool {
	u, err := url.Parse(SanitizeLink(link))
	if err != nil {
		return false
	}
	return hasExtension(u.Path, extensions) && SameHost(link, pageURL)
}

func sameOrigin(a, b *url.URL) bool {
	return strings.EqualFold(a.Scheme, b.Scheme) && strings.EqualFold(a.Host, b.Host)
}

func hasExtension(path string, extensions []string) bool {
	path = strings.ToLower(path)
	for _, ext := range extensions {
		if ext != "" && strings.HasSuffix(path, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)

	return textutil.CollapseSpaces(sb.String())
}
