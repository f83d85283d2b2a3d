// Package slug turns post titles into URL path segments and picks a free one.
//
// Make is a pure function. Latin diacritics are folded to ASCII, anything else
// outside [A-Za-z0-9] becomes a word break, and breaks are joined with "-":
//
//	slug.Make("Crème brûlée à la maison") // "creme-brulee-a-la-maison"
//	slug.Make("Go 1.25: what's new?!")    // "go-1-25-what-s-new"
//	slug.Make("Привет")                   // ""
//
// Options change the separator, case folding and length, and can strip or
// replace characters before the split:
//
//	slug.Make("Rock & Roll", slug.CustomReplace(map[string]string{"&": " and "}))
//	// "rock-and-roll"
//
//	slug.Make("Weekly Digest", slug.Separator("_"), slug.MaxLength(6))
//	// "weekly"
//
// # Unique slugs
//
// A Generator asks an Oracle whether a candidate is taken. It tries the base
// slug first and then base-1, base-2 and so on:
//
//	gen := slug.NewGenerator(slug.WithMaxAttempts(100))
//	s, err := gen.Unique(ctx, post.Title, repo.PostSlugExists)
//
// The base is cut to the maximum length before the suffix is added. Titles
// that produce no slug at all get a random 8 character token instead, cut to the
// maximum length when that is shorter.
//
// Unique returns ErrExhausted when every attempt was taken and ErrOracle,
// joined with the cause, when a lookup fails. A free answer can go stale
// before the row is written, so callers still rely on a unique index.
package slug
