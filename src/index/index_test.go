package index

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"git.handmade.network/hmn/mashinka/src/config"
	"git.handmade.network/hmn/mashinka/src/grow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postRu = `---
$title@: title
author@: автор
description: описание
keywords: слово, другое
$order: 332
image: /static/images/default.png
slugEn: slug-en
$dates:
  published: 2021-11-16 19:16:00
---

<h3>тест</h3>
`

const postEn = `---
$title@: title-another
author@: author
description: description
keywords: k1,k2
$order: 331
image: /static/images/default.png
slugEn: title
$dates:
  published: 2021-11-16 19:15:19
---

<h3>text</h3>
`

func setup(t *testing.T) Options {
	root := t.TempDir()
	opts := Options{
		PostsPath:        filepath.Join(root, "posts"),
		TranslationsPath: filepath.Join(root, "translations"),
		IndexPath:        filepath.Join(root, "index", "data.json"),
		Langs:            []grow.Lang{grow.LangRu, grow.LangEn},
	}

	require.Nil(t, grow.WriteFile(filepath.Join(opts.PostsPath, "ru", "2021-11-16-19-15-19-test-post@ru.md"), postRu))
	require.Nil(t, grow.WriteFile(filepath.Join(opts.PostsPath, "en", "2021-11-16-19-15-19-test-post-another@en.md"), postEn))
	require.Nil(t, grow.WriteFile(grow.CatalogPath(opts.TranslationsPath, grow.LangRu), "msgid \"title\"\nmsgstr \"перевод\"\n"))
	require.Nil(t, grow.WriteFile(grow.CatalogPath(opts.TranslationsPath, grow.LangEn), "msgid \"title-another\"\nmsgstr \"translation\"\n"))
	return opts
}

const expectedIndex = `[{"id": "/ru/posts/title", "title": "перевод", "content": "тест"},{"id": "/en/posts/title-another", "title": "translation", "content": "text"}]`

func TestRun(t *testing.T) {
	opts := setup(t)
	res, err := Run(opts)
	require.Nil(t, err)
	assert.Equal(t, expectedIndex, res.Output)
	assert.Equal(t, Item{ID: "/en/posts/title-another", Title: "translation", Content: "text"}, res.Items[1])

	written, err := os.ReadFile(opts.IndexPath)
	require.Nil(t, err)
	assert.Equal(t, expectedIndex, string(written))
}

func TestDryRun(t *testing.T) {
	opts := setup(t)
	opts.DryRun = true
	opts.IndexPath = ""
	res, err := Run(opts)
	require.Nil(t, err)
	assert.Equal(t, expectedIndex, res.Output)
}

func TestMissingTranslation(t *testing.T) {
	opts := setup(t)
	recordPath := filepath.Join(opts.PostsPath, "en", "2021-11-17-untranslated@en.md")
	require.Nil(t, grow.WriteFile(recordPath, `---
$title@: untranslated
author@: author
description: description
keywords: k
$dates:
  published: 2021-11-17 10:00:00
---
body
`))

	_, err := Run(opts)
	var missingErr *grow.MissingTranslationError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, recordPath, missingErr.Record)
	assert.Equal(t, "untranslated", missingErr.Slug)

	_, err = os.Stat(opts.IndexPath)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestMissingCatalog(t *testing.T) {
	opts := setup(t)
	require.Nil(t, os.Remove(grow.CatalogPath(opts.TranslationsPath, grow.LangEn)))

	_, err := Run(opts)
	var missingErr *grow.MissingTranslationError
	assert.True(t, errors.As(err, &missingErr))
}

func TestOnlySomeLanguages(t *testing.T) {
	opts := setup(t)
	opts.Langs = []grow.Lang{grow.LangEn}
	items, err := Build(opts)
	require.Nil(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "/en/posts/title-another", items[0].ID)
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		in, out string
	}{
		{"plain", "plain"},
		{"<h3>тест</h3>", "тест"},
		{"a\nb\r\nc\td\u00a0e", "abcde"},
		{`say "hi"`, `say \"hi\"`},
		{`back\slash`, "backslash"},
		{`<a href="x">link</a> "q" \"`, `link \"q\" \"`},
		{"", ""},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			once := Sanitize(c.in)
			assert.Equal(t, c.out, once)
			assert.Equal(t, once, Sanitize(once))
		})
	}
}

func TestRender(t *testing.T) {
	assert.Equal(t, "[]", Render(nil))
	assert.Equal(t,
		`[{"id": "/ru/posts/a", "title": "A", "content": "c"}]`,
		Render([]Item{{ID: PostID(grow.LangRu, "a"), Title: "A", Content: "c"}}),
	)
}

func TestLanguages(t *testing.T) {
	langs, err := languages([]string{"ru", " EN "})
	require.Nil(t, err)
	assert.Equal(t, []grow.Lang{grow.LangRu, grow.LangEn}, langs)

	_, err = languages([]string{"ru", "fr"})
	var langErr *grow.UnknownLangError
	assert.True(t, errors.As(err, &langErr))

	_, err = languages(nil)
	var missingErr *config.MissingValueError
	assert.True(t, errors.As(err, &missingErr))
}
