// Package markdown renders user-written markdown to sanitized HTML.
package markdown

import (
	"bytes"
	"errors"
	"html"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/dmitrymomot/microblog/pkg/sanitizer"
)

var ErrRenderFailed = errors.New("markdown: failed to render")

// Renderer converts markdown with GitHub flavoured extensions. Raw HTML in the
// source is dropped by goldmark and the output is sanitized again, so the
// result is safe to embed. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// Render returns src as HTML.
func (r *Renderer) Render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", errors.Join(ErrRenderFailed, err)
	}
	return template.HTML(sanitizer.PostHTML(buf.String())), nil //nolint:gosec // sanitized above
}

// Summary renders src, strips all markup and cuts the text to n runes on a word
// boundary, appending an ellipsis when something was cut. The result is plain
// text with entities decoded; escape it when embedding.
func (r *Renderer) Summary(src string, n int) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return ""
	}
	plain := html.UnescapeString(sanitizer.StripHTML(buf.String()))
	text := strings.Join(strings.Fields(plain), " ")
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}

	cut := string([]rune(text)[:n])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " .,;:") + "…"
}
