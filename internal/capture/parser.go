package capture

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// limitReader caps how many bytes of the page body are parsed.
func limitReader(r io.Reader) io.Reader {
	return io.LimitReader(r, maxMetadataBody)
}

// parseHead extracts the page title and meta description from an HTML
// document.
//
// Design decision: We use golang.org/x/net/html rather than regex because
// it correctly handles the malformed HTML common on real landing pages and
// stays maintainable as more metadata fields become interesting.
func parseHead(r io.Reader) (title, description string, err error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", "", err
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if title == "" && n.FirstChild != nil {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				var name, content string
				for _, attr := range n.Attr {
					switch strings.ToLower(attr.Key) {
					case "name", "property":
						name = strings.ToLower(attr.Val)
					case "content":
						content = attr.Val
					}
				}
				if description == "" && (name == "description" || name == "og:description") {
					description = strings.TrimSpace(content)
				}
			case "body":
				// Everything interesting lives in <head>; skip the body
				// subtree entirely.
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return title, description, nil
}
