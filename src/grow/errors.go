package grow

import (
	"fmt"
)

// FormatError reports a document that doesn't follow the meta/body layout.
type FormatError struct {
	Reason    string
	Line      string // the offending line, if there is one
	Delimiter string // the delimiter that was expected
}

func (e *FormatError) Error() string {
	if e.Line != "" {
		return fmt.Sprintf("incorrect format: %s `%s` in line %q", e.Reason, e.Delimiter, e.Line)
	}
	return fmt.Sprintf("incorrect format: %s `%s`", e.Reason, e.Delimiter)
}

// UnknownKeyError reports a meta key the target document type doesn't accept.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("have no clue about %s key", e.Key)
}

// UnknownLangError reports a language code outside of Langs.
type UnknownLangError struct {
	Value string
}

func (e *UnknownLangError) Error() string {
	return fmt.Sprintf("have no clue about %s language value", e.Value)
}

type ValidationReason int

const (
	ReasonEmpty ValidationReason = iota + 1
	ReasonTooLong
	ReasonTooMany
	ReasonMultiline
	ReasonBadKeyword
	ReasonNotSlug
)

// ValidationError reports a field that breaks one of the post invariants.
// Limit is only set for ReasonTooLong and ReasonTooMany.
type ValidationError struct {
	Field  string
	Value  string
	Limit  int
	Reason ValidationReason
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonTooLong:
		return fmt.Sprintf("value of %s is longer than %d characters: %q", e.Field, e.Limit, e.Value)
	case ReasonTooMany:
		return fmt.Sprintf("%s has more than %d items: %q", e.Field, e.Limit, e.Value)
	case ReasonMultiline:
		return fmt.Sprintf("value of %s should be a single line: %q", e.Field, e.Value)
	case ReasonBadKeyword:
		return fmt.Sprintf("keyword %q should not contain %q or line breaks", e.Value, KeywordsDelimiter)
	case ReasonNotSlug:
		return fmt.Sprintf("value of %s is not a slug: %q", e.Field, e.Value)
	default:
		return fmt.Sprintf("value for %s should not be empty", e.Field)
	}
}

// MissingTranslationError reports a record whose slug has no catalog entry.
type MissingTranslationError struct {
	Record string
	Slug   string
	Lang   Lang
}

func (e *MissingTranslationError) Error() string {
	return fmt.Sprintf("slug %q of record %s not found in %s translations", e.Slug, e.Record, e.Lang.Code())
}
