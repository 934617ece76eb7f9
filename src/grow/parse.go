package grow

import (
	"strconv"
	"time"
)

// ParseDraft reads a draft document:
//
//	title: Это тестовый заголовок
//	lang: ru
//	description: ...
//	keywords: one, two
//	---
//
//	Text of the post.
func ParseDraft(doc string) (Draft, error) {
	parsed, err := parseDocument(doc)
	if err != nil {
		return Draft{}, err
	}

	fields := DraftFields{Text: parsed.Body}
	for _, entry := range parsed.Meta {
		switch entry.Key {
		case KeyTitle:
			fields.Title = entry.Value
		case KeyDescription:
			fields.Description = entry.Value
		case KeyKeywords:
			fields.Keywords = SplitKeywords(entry.Value)
		case KeyLang:
			lang, err := ParseLang(entry.Value)
			if err != nil {
				return Draft{}, err
			}
			fields.Lang = lang
		default:
			return Draft{}, &UnknownKeyError{Key: string(entry.Key)}
		}
	}

	return NewDraft(fields)
}

// ParsePost reads a grow record. Records don't name their own language, so
// lang comes from where the record was found.
func ParsePost(doc string, lang Lang) (Post, error) {
	if !lang.Valid() {
		return Post{}, &UnknownLangError{Value: strconv.Itoa(int(lang))}
	}

	parsed, err := parseDocument(doc)
	if err != nil {
		return Post{}, err
	}

	post := Post{
		Lang:  lang,
		Image: DefaultImage,
	}
	var rawTitle, rawAuthor, rawDescription string
	var rawKeywords []string
	hasPublished := false
	for _, entry := range parsed.Meta {
		switch entry.Key {
		case KeyTitle:
			rawTitle = entry.Value
		case KeyAuthor:
			rawAuthor = entry.Value
		case KeyDescription:
			rawDescription = entry.Value
		case KeyKeywords:
			rawKeywords = SplitKeywords(entry.Value)
		case KeyImage:
			post.Image = entry.Value
		case KeyOrder:
			order, err := strconv.Atoi(entry.Value)
			if err != nil {
				return Post{}, &FormatError{Reason: "order is not a number", Line: entry.Value, Delimiter: KeyValueDelimiter}
			}
			post.Order = order
		case KeyPublished:
			published, err := time.ParseInLocation(PublishedFormat, entry.Value, time.UTC)
			if err != nil {
				return Post{}, &FormatError{Reason: "published date is not " + PublishedFormat, Line: entry.Value, Delimiter: KeyValueDelimiter}
			}
			post.PublishedAt = published
			hasPublished = true
		default:
			slugLang, ok := langOfSlugKey(entry.Key)
			if !ok {
				return Post{}, &UnknownKeyError{Key: string(entry.Key)}
			}
			if post.LocalSlugs == nil {
				post.LocalSlugs = map[Lang]string{}
			}
			post.LocalSlugs[slugLang] = entry.Value
		}
	}

	if post.Title, err = validateSlug(string(KeyTitle), rawTitle); err != nil {
		return Post{}, err
	}
	if post.Author, err = validateAuthor(rawAuthor); err != nil {
		return Post{}, err
	}
	if post.Description, err = validateDescription(rawDescription); err != nil {
		return Post{}, err
	}
	if post.Keywords, err = validateKeywords(rawKeywords); err != nil {
		return Post{}, err
	}
	if post.Text, err = validateText(parsed.Body); err != nil {
		return Post{}, err
	}
	if !hasPublished {
		return Post{}, &ValidationError{Field: string(KeyPublished), Reason: ReasonEmpty}
	}
	post.Slug = post.Title

	return post, nil
}
