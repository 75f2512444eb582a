package diagnostics

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

type CleanConfig struct {
	TagsToRemove  []string
	AttrsToRemove []string
	MaxOutputSize int
}

// DefaultCleanConfig drops what never helps debug a locator. Class, id, data-* and
// aria-* attributes are kept since locators match on them.
var DefaultCleanConfig = CleanConfig{
	TagsToRemove:  []string{"script", "style", "noscript", "svg", "link", "meta"},
	AttrsToRemove: []string{"style", "srcset", "sizes", "loading", "decoding", "fetchpriority"},
	MaxOutputSize: 2_000_000,
}

// CleanDOM strips scripts, styles, comments and inline event handlers from a page
// dump. Input that does not parse is returned unchanged.
func CleanDOM(rawHTML string, cfg *CleanConfig) string {
	if cfg == nil {
		cfg = &DefaultCleanConfig
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return rawHTML
	}

	cleanNode(doc, cfg)

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		return rawHTML
	}
	return truncate(sb.String(), cfg.MaxOutputSize)
}

func cleanNode(n *html.Node, cfg *CleanConfig) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.CommentNode:
			n.RemoveChild(c)
		case c.Type == html.ElementNode && slices.Contains(cfg.TagsToRemove, c.Data):
			n.RemoveChild(c)
		case c.Type == html.ElementNode:
			c.Attr = slices.DeleteFunc(c.Attr, func(a html.Attribute) bool {
				return slices.Contains(cfg.AttrsToRemove, a.Key) || (strings.HasPrefix(a.Key, "on") && a.Key != "open")
			})
			cleanNode(c, cfg)
		default:
			cleanNode(c, cfg)
		}
		c = next
	}
}

func truncate(s string, maxSize int) string {
	if maxSize > 0 && len(s) > maxSize {
		return s[:maxSize] + "\n<!-- truncated -->"
	}
	return s
}
