package grow

import (
	"strings"
	"unicode"
)

// MetaKey names a line in the meta section of a draft or record.
type MetaKey string

const (
	KeyTitle       MetaKey = "title"
	KeyAuthor      MetaKey = "author"
	KeyDescription MetaKey = "description"
	KeyKeywords    MetaKey = "keywords"
	KeyLang        MetaKey = "lang"
	KeyImage       MetaKey = "image"
	KeyOrder       MetaKey = "order"
	KeyPublished   MetaKey = "published"
)

// SlugKey is the record key holding the slug in one language, e.g. "slugRu".
func SlugKey(lang Lang) MetaKey {
	return MetaKey("slug" + lang.String())
}

func langOfSlugKey(key MetaKey) (Lang, bool) {
	for _, lang := range Langs {
		if SlugKey(lang) == key {
			return lang, true
		}
	}
	return 0, false
}

type metaEntry struct {
	Key   MetaKey
	Value string
}

type document struct {
	Meta []metaEntry
	Body string
}

// parseDocument splits doc into meta entries and body. The meta section either
// precedes the first delimiter line or sits between the first two when the
// document opens with one.
func parseDocument(doc string) (document, error) {
	lines := strings.Split(strings.ReplaceAll(strings.TrimSpace(doc), "\r\n", "\n"), "\n")

	metaStart := 0
	if len(lines) > 0 && isDelimiter(lines[0]) {
		metaStart = 1
	}
	metaEnd := -1
	for i := metaStart; i < len(lines); i++ {
		if isDelimiter(lines[i]) {
			metaEnd = i
			break
		}
	}
	if metaEnd < 0 {
		return document{}, &FormatError{
			Reason:    "no meta section delimiter",
			Delimiter: MetaDelimiter,
		}
	}

	var result document
	for _, line := range lines[metaStart:metaEnd] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, ok, err := parseMetaLine(line)
		if err != nil {
			return document{}, err
		}
		if ok {
			result.Meta = append(result.Meta, entry)
		}
	}
	result.Body = strings.TrimSpace(strings.Join(lines[metaEnd+1:], "\n"))

	return result, nil
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r") == MetaDelimiter
}

// parseMetaLine reads "key: value". Decorations around the key such as
// "$title@" are dropped. Lines with an empty key or value carry no data.
func parseMetaLine(line string) (metaEntry, bool, error) {
	rawKey, value, found := strings.Cut(line, KeyValueDelimiter)
	if !found {
		return metaEntry{}, false, &FormatError{
			Reason:    "no key-value delimiter",
			Line:      strings.TrimSpace(line),
			Delimiter: KeyValueDelimiter,
		}
	}

	key := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, rawKey)
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		return metaEntry{}, false, nil
	}

	return metaEntry{Key: MetaKey(key), Value: value}, true, nil
}
