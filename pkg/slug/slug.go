package slug

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultSeparator joins words in a slug.
const DefaultSeparator = "-"

type options struct {
	replacements map[string]string
	stripChars   string
	separator    string
	maxLength    int
	lowercase    bool
}

// Option configures Make.
type Option func(*options)

// MaxLength limits the slug to n runes. Zero or negative disables the limit.
func MaxLength(n int) Option {
	return func(o *options) {
		o.maxLength = n
	}
}

// Separator sets the string placed between words. An empty separator glues words together.
func Separator(sep string) Option {
	return func(o *options) {
		o.separator = sep
	}
}

// Lowercase controls case folding of the result. Enabled by default.
func Lowercase(enabled bool) Option {
	return func(o *options) {
		o.lowercase = enabled
	}
}

// StripChars removes every listed character before the slug is built.
func StripChars(chars string) Option {
	return func(o *options) {
		o.stripChars = chars
	}
}

// CustomReplace applies string replacements before the slug is built.
// Longer keys win over shorter ones that share a prefix.
func CustomReplace(replacements map[string]string) Option {
	return func(o *options) {
		o.replacements = replacements
	}
}

func newOptions(opts ...Option) *options {
	o := &options{
		separator: DefaultSeparator,
		lowercase: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Make converts s into a URL-safe slug.
//
// Latin diacritics are folded to ASCII, every run of characters outside [A-Za-z0-9]
// collapses into a single separator, and separators never lead or trail the result.
func Make(s string, opts ...Option) string {
	o := newOptions(opts...)

	if len(o.replacements) > 0 {
		s = replacer(o.replacements).Replace(s)
	}
	if o.stripChars != "" {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(o.stripChars, r) {
				return -1
			}
			return r
		}, s)
	}

	s = transliterate(s)

	var b strings.Builder
	b.Grow(len(s))
	gap := false
	for _, r := range s {
		if !isAlnum(r) {
			gap = true
			continue
		}
		if gap && b.Len() > 0 {
			b.WriteString(o.separator)
		}
		gap = false
		if o.lowercase {
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}

	return truncate(b.String(), o.maxLength, o.separator)
}

// truncate cuts s to n runes and drops a separator left dangling by the cut.
func truncate(s string, n int, sep string) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	s = string([]rune(s)[:n])
	if sep != "" {
		s = strings.TrimRight(s, sep)
	}
	return s
}

func replacer(replacements map[string]string) *strings.Replacer {
	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		if k != "" {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, replacements[k])
	}
	return strings.NewReplacer(pairs...)
}

// transliterate strips combining marks after canonical decomposition and folds
// the Latin letters that have no decomposition.
func transliterate(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(foldLetter),
		norm.NFC,
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func foldLetter(r rune) rune {
	switch r {
	case 'ß':
		return 's'
	case 'æ':
		return 'a'
	case 'Æ':
		return 'A'
	case 'œ', 'ø':
		return 'o'
	case 'Œ', 'Ø':
		return 'O'
	case 'ł':
		return 'l'
	case 'Ł':
		return 'L'
	case 'đ', 'ð':
		return 'd'
	case 'Đ', 'Ð':
		return 'D'
	case 'þ':
		return 't'
	case 'Þ':
		return 'T'
	case 'ı':
		return 'i'
	}
	return r
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
