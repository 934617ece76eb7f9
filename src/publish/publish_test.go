package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"git.handmade.network/hmn/mashinka/src/grow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDraft = `title: Это тестовый заголовок
lang: ru
description: Тестовое описание для записи
keywords: бумага,А4,297 мм
---
test_content
`

var publishedAt = time.Date(2021, 11, 16, 19, 15, 19, 0, time.UTC)

func setup(t *testing.T, draft string) Options {
	root := t.TempDir()
	draftPath := filepath.Join(root, "draft.md")
	require.Nil(t, os.WriteFile(draftPath, []byte(draft), 0o644))
	return Options{
		DraftPath:        draftPath,
		PostsPath:        filepath.Join(root, "posts"),
		TranslationsPath: filepath.Join(root, "translations"),
		PublishedAt:      publishedAt,
	}
}

func TestRun(t *testing.T) {
	opts := setup(t, testDraft)
	res, err := Run(opts)
	require.Nil(t, err)

	expectedRecord := filepath.Join(opts.PostsPath, "ru", "2021-11-16-eto-testovyi-zagolovok@ru.md")
	assert.Equal(t, expectedRecord, res.RecordPath)
	assert.Empty(t, res.Excerpt)

	record, err := os.ReadFile(expectedRecord)
	require.Nil(t, err)
	assert.Equal(t, `---
$title@: eto-testovyi-zagolovok
author@: Виктор Жарина
description: Тестовое описание для записи
keywords: бумага,А4,297 мм
image: /static/images/default.png
slugRu: eto-testovyi-zagolovok
$dates:
  published: 2021-11-16 19:15:19
---
test_content
`, string(record))

	post, err := grow.ParsePost(string(record), grow.LangRu)
	require.Nil(t, err)
	assert.Equal(t, res.Post.Record(), post)

	catalog, err := grow.ReadCatalog(filepath.Join(opts.TranslationsPath, "ru", "LC_MESSAGES", "messages.po"))
	require.Nil(t, err)
	assert.Equal(t, map[string]string{"eto-testovyi-zagolovok": "Это тестовый заголовок"}, catalog)

	t.Run("publishing again appends to the catalog", func(t *testing.T) {
		_, err := Run(opts)
		require.Nil(t, err)
		content, err := os.ReadFile(res.CatalogPath)
		require.Nil(t, err)
		assert.Len(t, grow.ParseCatalog(string(content)), 2)
	})
}

func TestDryRun(t *testing.T) {
	opts := setup(t, testDraft)
	opts.DryRun = true
	res, err := Run(opts)
	require.Nil(t, err)

	assert.Equal(t, "test_content", res.Excerpt)
	assert.Contains(t, res.Record, "slugRu: eto-testovyi-zagolovok")
	assert.Contains(t, res.Translation, `msgstr "Это тестовый заголовок"`)

	_, err = os.Stat(opts.PostsPath)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	_, err = os.Stat(opts.TranslationsPath)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDryRunWithoutOutputPaths(t *testing.T) {
	opts := setup(t, testDraft)
	opts.DryRun = true
	opts.PostsPath = ""
	opts.TranslationsPath = ""

	res, err := Run(opts)
	require.Nil(t, err)
	assert.Empty(t, res.RecordPath)
	assert.Empty(t, res.CatalogPath)
	assert.Equal(t, "eto-testovyi-zagolovok", res.Post.Slug)
}

func TestRunErrors(t *testing.T) {
	t.Run("missing draft", func(t *testing.T) {
		opts := setup(t, testDraft)
		opts.DraftPath += ".missing"
		_, err := Run(opts)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
	t.Run("unknown key", func(t *testing.T) {
		opts := setup(t, "title: t\nfoo: bar\n---\nbody")
		_, err := Run(opts)
		var keyErr *grow.UnknownKeyError
		require.True(t, errors.As(err, &keyErr))
		assert.Equal(t, "foo", keyErr.Key)

		_, err = os.Stat(opts.PostsPath)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
	t.Run("title without a slug", func(t *testing.T) {
		opts := setup(t, "title: !!!\nlang: en\ndescription: d\nkeywords: k\n---\nbody")
		_, err := Run(opts)
		var validationErr *grow.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "slug", validationErr.Field)
		assert.Equal(t, grow.ReasonEmpty, validationErr.Reason)

		_, err = os.Stat(opts.PostsPath)
		assert.True(t, errors.Is(err, os.ErrNotExist))
		_, err = os.Stat(opts.TranslationsPath)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
	t.Run("title too long", func(t *testing.T) {
		long := "title: " + strings.Repeat("x", grow.TitleMaxChars+1) + "\nlang: en\ndescription: d\nkeywords: k\n---\nbody"
		_, err := Run(setup(t, long))
		var validationErr *grow.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "title", validationErr.Field)
	})
}
