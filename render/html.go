package render

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"gitlab.com/tozd/go/errors"
)

// Format selects how a revision is written out.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", errors.Errorf("unsupported format %q", s)
	}
}

// HTML converts model output (which is often light Markdown) to HTML.
// Raw HTML in the input is omitted by goldmark's default renderer.
func HTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", errors.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}

// Render writes text in the requested format, always ending with a newline.
func Render(text string, f Format) (string, error) {
	switch f {
	case FormatHTML:
		return HTML(text)
	default:
		if strings.HasSuffix(text, "\n") {
			return text, nil
		}
		return text + "\n", nil
	}
}
