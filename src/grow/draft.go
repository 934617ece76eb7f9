package grow

import (
	"strconv"
	"strings"
	"time"

	"git.handmade.network/hmn/mashinka/src/slug"
	"git.handmade.network/hmn/mashinka/src/templates"
)

// DraftFields is the raw input for NewDraft.
type DraftFields struct {
	Title       string
	Description string
	Keywords    []string
	Lang        Lang
	Text        string
}

// Draft is a post the author has written but not yet published. Its fields
// are only set through NewDraft or ParseDraft, so every Draft is valid.
type Draft struct {
	title       string
	description string
	keywords    []string
	lang        Lang
	text        string
}

// NewDraft trims and validates every field, returning the first violation.
func NewDraft(fields DraftFields) (Draft, error) {
	title, err := validateTitle(fields.Title)
	if err != nil {
		return Draft{}, err
	}
	description, err := validateDescription(fields.Description)
	if err != nil {
		return Draft{}, err
	}
	keywords, err := validateKeywords(fields.Keywords)
	if err != nil {
		return Draft{}, err
	}
	if fields.Lang == 0 {
		return Draft{}, &ValidationError{Field: string(KeyLang), Reason: ReasonEmpty}
	}
	if !fields.Lang.Valid() {
		return Draft{}, &UnknownLangError{Value: strconv.Itoa(int(fields.Lang))}
	}
	text, err := validateText(fields.Text)
	if err != nil {
		return Draft{}, err
	}

	return Draft{
		title:       title,
		description: description,
		keywords:    keywords,
		lang:        fields.Lang,
		text:        text,
	}, nil
}

func (d Draft) Title() string       { return d.title }
func (d Draft) Description() string { return d.description }
func (d Draft) Lang() Lang          { return d.lang }
func (d Draft) Text() string        { return d.text }

func (d Draft) Keywords() []string {
	return append([]string(nil), d.keywords...)
}

// Render writes the draft back in the format ParseDraft reads.
func (d Draft) Render() string {
	return templates.Render(templates.Draft, map[string]string{
		"title":       d.title,
		"description": d.description,
		"keywords":    strings.Join(d.keywords, KeywordsDelimiter+" "),
		"lang":        d.lang.Code(),
		"text":        d.text,
	})
}

// Approve signs the draft and stamps it with the current time.
func (d Draft) Approve() ApprovedPost {
	return d.ApproveAt(time.Now())
}

// ApproveAt is Approve with a fixed publication time. The time is kept in UTC
// with whole seconds, which is all the record format stores.
func (d Draft) ApproveAt(at time.Time) ApprovedPost {
	return ApprovedPost{
		Title:       d.title,
		Description: d.description,
		Keywords:    d.Keywords(),
		Lang:        d.lang,
		Text:        d.text,
		Author:      d.lang.Author(),
		Slug:        slug.Make(d.title),
		PublishedAt: at.UTC().Truncate(time.Second),
	}
}

// ApprovedPost is a draft that is ready to be written out as a record and a
// catalog entry.
type ApprovedPost struct {
	Title       string
	Description string
	Keywords    []string
	Lang        Lang
	Text        string
	Author      string
	Slug        string
	PublishedAt time.Time
}

// Record is the post as it is stored in the posts tree. The record title holds
// the slug; the human title lives in the translation catalog.
func (p ApprovedPost) Record() Post {
	return Post{
		Title:       p.Slug,
		Author:      p.Author,
		Description: p.Description,
		Keywords:    append([]string(nil), p.Keywords...),
		Lang:        p.Lang,
		Slug:        p.Slug,
		LocalSlugs:  map[Lang]string{p.Lang: p.Slug},
		Image:       DefaultImage,
		PublishedAt: p.PublishedAt,
		Text:        p.Text,
	}
}

func (p ApprovedPost) Translation() Translation {
	return Translation{ID: p.Slug, Value: p.Title}
}
