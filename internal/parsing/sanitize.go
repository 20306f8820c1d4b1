package parsing

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Sanitize cleans raw document text before it reaches a completion backend:
// markup is stripped, non-printable characters are dropped, and whitespace
// runs are collapsed to single spaces.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}

	if looksLikeMarkup(text) {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
			text = doc.Text()
		}
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}

	return strings.TrimSpace(whitespaceRun.ReplaceAllString(sb.String(), " "))
}

func looksLikeMarkup(text string) bool {
	open := strings.IndexByte(text, '<')
	return open >= 0 && strings.IndexByte(text[open:], '>') > 0
}
