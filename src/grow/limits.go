package grow

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Limits every post has to fit in. Lengths count characters, not bytes.
const (
	TitleMaxChars       = 75
	DescriptionMaxChars = 255
	KeywordsMaxCount    = 10
)

// DefaultImage is the cover every new post starts with.
const DefaultImage = "/static/images/default.png"

const (
	MetaDelimiter     = "---"
	KeyValueDelimiter = ":"
	KeywordsDelimiter = ","

	PublishedFormat = "2006-01-02 15:04:05"
	FileDateFormat  = "2006-01-02"
)

func validateTitle(value string) (string, error) {
	return validateLine("title", value, TitleMaxChars)
}

func validateDescription(value string) (string, error) {
	return validateLine("description", value, DescriptionMaxChars)
}

// Meta values are written one per line, so they can't span lines.
const lineBreaks = "\r\n"

var reSlug = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func validateLine(field, value string, limit int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", &ValidationError{Field: field, Value: value, Reason: ReasonEmpty}
	}
	if strings.ContainsAny(trimmed, lineBreaks) {
		return "", &ValidationError{Field: field, Value: trimmed, Reason: ReasonMultiline}
	}
	if utf8.RuneCountInString(trimmed) > limit {
		return "", &ValidationError{Field: field, Value: trimmed, Limit: limit, Reason: ReasonTooLong}
	}
	return trimmed, nil
}

// validateSlug checks the title of a record, which holds the slug rather than
// the human title, so it has the slug shape instead of a length limit.
func validateSlug(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", &ValidationError{Field: field, Value: value, Reason: ReasonEmpty}
	}
	if !reSlug.MatchString(trimmed) {
		return "", &ValidationError{Field: field, Value: trimmed, Reason: ReasonNotSlug}
	}
	return trimmed, nil
}

func validateText(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", &ValidationError{Field: "text", Value: value, Reason: ReasonEmpty}
	}
	return trimmed, nil
}

func validateAuthor(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", &ValidationError{Field: "author", Value: value, Reason: ReasonEmpty}
	}
	return trimmed, nil
}

func validateKeywords(keywords []string) ([]string, error) {
	joined := strings.Join(keywords, KeywordsDelimiter)
	var kept []string
	for _, keyword := range keywords {
		trimmed := strings.TrimSpace(keyword)
		if trimmed == "" {
			continue
		}
		if strings.ContainsAny(trimmed, KeywordsDelimiter+lineBreaks) {
			return nil, &ValidationError{Field: "keywords", Value: trimmed, Reason: ReasonBadKeyword}
		}
		kept = append(kept, trimmed)
	}
	if len(kept) == 0 {
		return nil, &ValidationError{Field: "keywords", Value: joined, Reason: ReasonEmpty}
	}
	if len(kept) > KeywordsMaxCount {
		return nil, &ValidationError{Field: "keywords", Value: joined, Limit: KeywordsMaxCount, Reason: ReasonTooMany}
	}
	return kept, nil
}

// SplitKeywords splits a meta value such as "go, cli,testing".
func SplitKeywords(value string) []string {
	return strings.Split(value, KeywordsDelimiter)
}
