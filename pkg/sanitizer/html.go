// Package sanitizer cleans caller-supplied HTML before it is mailed.
package sanitizer

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	emailPolicy *bluemonday.Policy
	initOnce    sync.Once
)

// Table and inline-style markup is what mail clients actually render, so
// the email policy extends UGC with both.
func initPolicies() {
	initOnce.Do(func() {
		emailPolicy = bluemonday.UGCPolicy()
		emailPolicy.AllowElements("center", "font", "span", "div")
		emailPolicy.AllowAttrs("align", "valign", "bgcolor", "width", "height").
			OnElements("table", "tr", "td", "th", "img", "div", "p")
		emailPolicy.AllowAttrs("color").OnElements("font")
		emailPolicy.AllowStyles(
			"color", "background-color", "font-family", "font-size", "font-weight",
			"text-align", "text-decoration", "line-height",
			"padding", "margin", "border", "border-radius", "width", "max-width", "display",
		).Globally()
		emailPolicy.AllowAttrs("class").Matching(regexp.MustCompile(`^[\w\- ]+$`)).Globally()
		emailPolicy.RequireNoFollowOnLinks(false)
	})
}

// SanitizeHTML removes scripts, event handlers, dangerous URLs and unknown
// elements while keeping the formatting mail clients support.
func SanitizeHTML(s string) string {
	initPolicies()
	return emailPolicy.Sanitize(s)
}
