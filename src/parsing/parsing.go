// Package parsing turns post bodies written in Markdown into plain text for
// previews.
package parsing

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Used for generating plain-text previews of posts.
var PlaintextMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRenderer(plaintextRenderer{}),
)

// PlainText renders Markdown source as a single line of text with whitespace
// collapsed.
func PlainText(source string) (string, error) {
	var buf bytes.Buffer
	if err := PlaintextMarkdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(buf.String()), " "), nil
}

// Excerpt is PlainText cut to at most maxRunes characters. A cut excerpt ends
// in "…", which counts toward the limit.
func Excerpt(source string, maxRunes int) (string, error) {
	text, err := PlainText(source)
	if err != nil {
		return "", err
	}
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text, nil
	}

	runes := []rune(text)
	return strings.TrimSpace(string(runes[:maxRunes-1])) + "…", nil
}
