// Package templates fills bracketed placeholders such as [title] in plain
// text templates. It is not a template language: there are no conditionals,
// loops or escaping.
package templates

import (
	"embed"
	"sort"
	"strings"

	"git.handmade.network/hmn/mashinka/src/utils"
)

//go:embed src
var embeddedTemplateFs embed.FS

// The templates every serializer renders through.
var (
	Post        = mustLoad("post.tpl")
	Translation = mustLoad("translation.tpl")
	Draft       = mustLoad("draft.tpl")
	IndexItem   = strings.TrimRight(mustLoad("index_item.tpl"), "\n")
)

func mustLoad(name string) string {
	return string(utils.Must1(embeddedTemplateFs.ReadFile("src/" + name)))
}

// Placeholder returns the marker for key as it appears in a template.
func Placeholder(key string) string {
	return "[" + key + "]"
}

// Render replaces every [key] in tpl with bindings[key]. Placeholders without
// a binding stay in the output verbatim, and unused bindings are ignored.
//
// All replacements happen in a single pass, so a value that itself contains
// a placeholder is copied as-is.
func Render(tpl string, bindings map[string]string) string {
	keys := make([]string, 0, len(bindings))
	for key := range bindings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	oldnew := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		oldnew = append(oldnew, Placeholder(key), bindings[key])
	}

	return strings.NewReplacer(oldnew...).Replace(tpl)
}
