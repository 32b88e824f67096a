package inbound

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// htmlEntities covers the entities mail clients actually emit in bulk
// notification bodies. Anything rarer passes through untouched.
var htmlEntities = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
)

// htmlToText strips tags, decodes the common entities and trims the result.
func htmlToText(html string) string {
	text := tagPattern.ReplaceAllString(html, " ")
	text = htmlEntities.Replace(text)
	return strings.TrimSpace(collapseSpaces(text))
}

// extractBody picks the record body: HTML-derived text wins over the plain
// text field; both empty means no body (stored as null).
func extractBody(p Payload) *string {
	if p.HTML != "" {
		if text := htmlToText(p.HTML); text != "" {
			return &text
		}
	}
	if trimmed := strings.TrimSpace(p.Text); trimmed != "" {
		return &trimmed
	}
	return nil
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
