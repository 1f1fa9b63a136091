package revision

import "strings"

const (
	emDash = "—"
	hyphen = "-"
)

// Sanitize rewrites model output before it reaches the caller. Every em dash
// becomes a hyphen-minus; other dash variants are left alone.
func Sanitize(text string) string {
	return strings.ReplaceAll(text, emDash, hyphen)
}
