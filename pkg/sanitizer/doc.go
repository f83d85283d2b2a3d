// Package sanitizer cleans untrusted HTML with bluemonday policies.
//
// StripHTML drops all markup and is used for summaries. PostHTML keeps the
// subset produced by rendering a markdown post. Links always get rel="nofollow".
package sanitizer
