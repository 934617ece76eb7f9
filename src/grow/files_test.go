package grow

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c.md")
	require.Nil(t, WriteFile(path, "first"))
	require.Nil(t, WriteFile(path, "second"))

	content, err := os.ReadFile(path)
	require.Nil(t, err)
	assert.Equal(t, "second", string(content))
}

func TestAppendFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x", "messages.po")
	require.Nil(t, AppendFile(path, "one"))
	require.Nil(t, AppendFile(path, "two"))

	content, err := os.ReadFile(path)
	require.Nil(t, err)
	assert.Equal(t, "onetwo", string(content))
}

func TestReadPosts(t *testing.T) {
	root := t.TempDir()

	t.Run("no directory", func(t *testing.T) {
		posts, err := ReadPosts(root, LangEn)
		assert.Nil(t, err)
		assert.Empty(t, posts)
	})

	t.Run("sorted by name, directories skipped", func(t *testing.T) {
		require.Nil(t, WriteFile(filepath.Join(root, "ru", "b.md"), testRecord))
		require.Nil(t, WriteFile(filepath.Join(root, "ru", "a.md"), testRecord))
		require.Nil(t, os.MkdirAll(filepath.Join(root, "ru", "drafts"), 0o755))

		posts, err := ReadPosts(root, LangRu)
		require.Nil(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, filepath.Join(root, "ru", "a.md"), posts[0].Path)
		assert.Equal(t, filepath.Join(root, "ru", "b.md"), posts[1].Path)
		assert.Equal(t, LangRu, posts[0].Post.Lang)
	})

	t.Run("broken record", func(t *testing.T) {
		require.Nil(t, WriteFile(filepath.Join(root, "en", "broken.md"), "no meta"))
		_, err := ReadPosts(root, LangEn)
		var formatErr *FormatError
		assert.True(t, errors.As(err, &formatErr))
		assert.Contains(t, err.Error(), "broken.md")
	})
}
