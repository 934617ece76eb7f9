// Package index builds the search index: one entry per published post with
// its translated title and its text stripped down to one line.
package index

import (
	"errors"
	"io/fs"
	"regexp"
	"strings"

	"git.handmade.network/hmn/mashinka/src/grow"
	"git.handmade.network/hmn/mashinka/src/logging"
	"git.handmade.network/hmn/mashinka/src/templates"
)

type Options struct {
	PostsPath        string
	TranslationsPath string
	IndexPath        string
	Langs            []grow.Lang
	DryRun           bool
}

type Item struct {
	ID      string
	Title   string
	Content string
}

type Result struct {
	Items  []Item
	Output string
}

// Render gives the item as one index entry.
func (item Item) Render() string {
	return templates.Render(templates.IndexItem, map[string]string{
		"id":      item.ID,
		"title":   item.Title,
		"content": item.Content,
	})
}

// PostID is the site path of a post, e.g. "/en/posts/my-post".
func PostID(lang grow.Lang, slug string) string {
	return "/" + lang.Code() + "/posts/" + slug
}

var reTag = regexp.MustCompile(`<[^>]*>`)
var stripper = strings.NewReplacer("\n", "", "\r", "", "\t", "", "\u00a0", "", `\`, "")

// Sanitize makes text safe to drop between the quotes of an index item: tags
// and control whitespace are removed and quotes escaped. Sanitizing twice
// gives the same result as sanitizing once.
func Sanitize(text string) string {
	text = reTag.ReplaceAllString(text, "")
	text = stripper.Replace(text)
	return strings.ReplaceAll(text, `"`, `\"`)
}

// Build joins the posts of every language in opts.Langs with their catalog.
// It fails on the first post whose slug has no translation.
func Build(opts Options) ([]Item, error) {
	var items []Item
	for _, lang := range opts.Langs {
		catalogPath := grow.CatalogPath(opts.TranslationsPath, lang)
		catalog, err := grow.ReadCatalog(catalogPath)
		if errors.Is(err, fs.ErrNotExist) {
			logging.Warn().Str("catalog", catalogPath).Msg("no translations for language")
			catalog = map[string]string{}
		} else if err != nil {
			return nil, err
		}

		posts, err := grow.ReadPosts(opts.PostsPath, lang)
		if err != nil {
			return nil, err
		}
		logging.Debug().Str("lang", lang.Code()).Int("posts", len(posts)).Msg("read posts")

		for _, file := range posts {
			title, ok := catalog[file.Post.Title]
			if !ok {
				return nil, &grow.MissingTranslationError{
					Record: file.Path,
					Slug:   file.Post.Title,
					Lang:   lang,
				}
			}
			items = append(items, Item{
				ID:      PostID(lang, file.Post.Title),
				Title:   Sanitize(title),
				Content: Sanitize(file.Post.Text),
			})
		}
	}
	return items, nil
}

// Render lays items out as the index file, a JSON-style array.
func Render(items []Item) string {
	rendered := make([]string, len(items))
	for i, item := range items {
		rendered[i] = item.Render()
	}
	return "[" + strings.Join(rendered, ",") + "]"
}

// Run builds the index and, unless this is a dry run, replaces the file at
// opts.IndexPath with it. Nothing is written if any post fails.
func Run(opts Options) (Result, error) {
	items, err := Build(opts)
	if err != nil {
		return Result{}, err
	}
	result := Result{
		Items:  items,
		Output: Render(items),
	}
	if opts.DryRun {
		return result, nil
	}

	if err := grow.WriteFile(opts.IndexPath, result.Output); err != nil {
		return Result{}, err
	}
	logging.Info().Str("index", opts.IndexPath).Int("items", len(items)).Msg("index written")
	return result, nil
}
