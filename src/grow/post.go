package grow

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"git.handmade.network/hmn/mashinka/src/templates"
)

// Post is a published grow record.
type Post struct {
	Title       string // the slug the catalog translates
	Author      string
	Description string
	Keywords    []string
	Lang        Lang
	Slug        string
	LocalSlugs  map[Lang]string
	Image       string
	Order       int
	PublishedAt time.Time
	Text        string
}

// Render writes the record in the format ParsePost reads.
func (p Post) Render() string {
	localSlug := p.Slug
	if s, ok := p.LocalSlugs[p.Lang]; ok {
		localSlug = s
	}

	return templates.Render(templates.Post, map[string]string{
		"title":       p.Title,
		"author":      p.Author,
		"description": p.Description,
		"keywords":    strings.Join(p.Keywords, KeywordsDelimiter),
		"image":       p.Image,
		"lang":        p.Lang.String(),
		"slug":        localSlug,
		"text":        p.Text,
		"published":   p.PublishedAt.UTC().Format(PublishedFormat),
	})
}

// FileName is e.g. "2021-11-16-my-post@ru.md".
func (p Post) FileName() string {
	return fmt.Sprintf("%s-%s@%s.md", p.PublishedAt.UTC().Format(FileDateFormat), p.Slug, p.Lang.Code())
}

// Path places the record under postsRoot in the directory of its language.
func (p Post) Path(postsRoot string) string {
	return filepath.Join(postsRoot, p.Lang.Code(), p.FileName())
}
