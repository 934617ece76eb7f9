package grow

import (
	"os"
	"path/filepath"
	"sort"

	"git.handmade.network/hmn/mashinka/src/oops"
)

// WriteFile replaces the file at path with content, creating parent
// directories as needed.
func WriteFile(path string, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return oops.New(err, "failed to create directory for %s", path)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return oops.New(err, "failed to write %s", path)
	}
	return nil
}

// AppendFile adds content to the end of the file at path, creating it and its
// parent directories if it does not exist yet.
func AppendFile(path string, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return oops.New(err, "failed to create directory for %s", path)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return oops.New(err, "failed to open %s", path)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return oops.New(err, "failed to append to %s", path)
	}
	if err := f.Close(); err != nil {
		return oops.New(err, "failed to close %s", path)
	}
	return nil
}

type PostFile struct {
	Path string
	Post Post
}

// ReadPosts parses every record in {postsRoot}/{lang}, ordered by file name.
// A missing language directory has no posts.
func ReadPosts(postsRoot string, lang Lang) ([]PostFile, error) {
	dir := filepath.Join(postsRoot, lang.Code())
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, oops.New(err, "failed to list posts in %s", dir)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var result []PostFile
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, oops.New(err, "failed to read post %s", path)
		}
		post, err := ParsePost(string(content), lang)
		if err != nil {
			return nil, oops.New(err, "failed to parse post %s", path)
		}
		result = append(result, PostFile{Path: path, Post: post})
	}
	return result, nil
}
