package sanitizer

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	languageClass = regexp.MustCompile(`^language-[\w+-]+$`)
	cellAlign     = regexp.MustCompile(`^(left|right|center)$`)
)

var strictPolicy = sync.OnceValue(bluemonday.StrictPolicy)

// postPolicy allows what goldmark emits for a post body.
var postPolicy = sync.OnceValue(func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements(
		"p", "br", "hr",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"strong", "b", "em", "i", "del", "s",
		"ul", "ol", "li",
		"code", "pre", "blockquote",
		"table", "thead", "tbody", "tr", "th", "td",
	)
	p.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").Matching(languageClass).OnElements("code")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "alt", "title").OnElements("img")
	p.AllowAttrs("align").Matching(cellAlign).OnElements("th", "td")
	p.RequireNoFollowOnLinks(true)
	return p
})

// StripHTML removes every tag and returns the text content.
func StripHTML(s string) string {
	return strictPolicy().Sanitize(s)
}

// PostHTML sanitizes a rendered post body. Headings, tables, images and code
// language classes survive; scripts, event handlers, inline styles and
// javascript: URLs do not.
func PostHTML(s string) string {
	return postPolicy().Sanitize(s)
}
