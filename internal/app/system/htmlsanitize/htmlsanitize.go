// Package htmlsanitize cleans operator-supplied HTML (the configurable page
// footer) and strips markup from free-text form fields before they are sent
// to the API.
package htmlsanitize

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = newFooterPolicy()
	strict = bluemonday.StrictPolicy()
)

func newFooterPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("p", "span", "div", "a")
	return p
}

// Sanitize returns html with scripts, event handlers and unsafe URLs removed.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return ugc.Sanitize(html)
}

// SanitizeToHTML is Sanitize typed for direct use in templates.
func SanitizeToHTML(html string) template.HTML {
	return template.HTML(Sanitize(html))
}

// PlainText strips all markup and trims surrounding space. bluemonday escapes
// what it keeps, so entities are decoded back for storage as plain text.
func PlainText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	out := strict.Sanitize(s)
	return strings.TrimSpace(unescape(out))
}

var unescaper = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&#34;", `"`, "&#39;", "'", "&quot;", `"`)

func unescape(s string) string { return unescaper.Replace(s) }

// IsPlainText reports whether s contains no tag-like markup.
func IsPlainText(s string) bool {
	return !strings.ContainsAny(s, "<>")
}
