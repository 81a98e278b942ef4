package fetcher

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// ExtractText renders an HTML document as plain text: script, style, and
// noscript subtrees are dropped and all whitespace runs collapse to single
// spaces.
func ExtractText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(sb.String()), " "), nil
}

// ImageURLs collects the src (or lazy-loading data-src) of every <img> in the
// document, resolved against base. Unresolvable and non-http(s) references
// are skipped; order follows the document.
func ImageURLs(r io.Reader, base *url.URL) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var urls []string
	seen := map[string]bool{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "img" {
			if src := imgSource(n); src != "" {
				if resolved := resolveURL(base, src); resolved != "" && !seen[resolved] {
					seen[resolved] = true
					urls = append(urls, resolved)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return urls, nil
}

func imgSource(n *html.Node) string {
	var src, dataSrc string
	for _, attr := range n.Attr {
		switch attr.Key {
		case "src":
			src = strings.TrimSpace(attr.Val)
		case "data-src":
			dataSrc = strings.TrimSpace(attr.Val)
		}
	}
	if src != "" {
		return src
	}
	return dataSrc
}

func resolveURL(base *url.URL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
