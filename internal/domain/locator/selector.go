package locator

import (
	"fmt"
	"strings"
)

const xpathPrefix = "xpath="

func IsXPath(selector string) bool {
	return strings.HasPrefix(selector, "//") ||
		strings.HasPrefix(selector, "(//") ||
		strings.HasPrefix(selector, xpathPrefix)
}

// Normalize adds the xpath= engine prefix that playwright expects for XPath selectors.
func Normalize(selector string) string {
	if IsXPath(selector) && !strings.HasPrefix(selector, xpathPrefix) {
		return xpathPrefix + selector
	}
	return selector
}

func StripXPathPrefix(selector string) string {
	return strings.TrimPrefix(selector, xpathPrefix)
}

// Nth addresses the index-th (0-based) match of an XPath selector.
func Nth(selector string, index int) string {
	return fmt.Sprintf("(%s)[%d]", StripXPathPrefix(selector), index+1)
}
