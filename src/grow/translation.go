package grow

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"git.handmade.network/hmn/mashinka/src/logging"
	"git.handmade.network/hmn/mashinka/src/oops"
	"git.handmade.network/hmn/mashinka/src/templates"
)

// Translation maps a post slug to its human title in a gettext catalog.
type Translation struct {
	ID    string
	Value string
}

var poEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
var poUnescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`)

// Render gives the catalog entry, starting with a blank line so entries
// appended one after another stay separated.
func (t Translation) Render() string {
	return templates.Render(templates.Translation, map[string]string{
		"id":    poEscaper.Replace(t.ID),
		"value": poEscaper.Replace(t.Value),
	})
}

// CatalogPath is where translations for lang live under translationsRoot.
func CatalogPath(translationsRoot string, lang Lang) string {
	return filepath.Join(translationsRoot, lang.Code(), "LC_MESSAGES", "messages.po")
}

var reCatalogEntry = regexp.MustCompile(`(?m)^msgid "((?:[^"\\]|\\.)*)"[ \t]*\nmsgstr "((?:[^"\\]|\\.)*)"[ \t]*$`)

// ParseCatalog reads msgid/msgstr pairs in the order they appear. Anything
// else in the catalog, such as comments or the header, is skipped.
func ParseCatalog(content string) []Translation {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var result []Translation
	for _, match := range reCatalogEntry.FindAllStringSubmatch(content, -1) {
		result = append(result, Translation{
			ID:    poUnescaper.Replace(match[1]),
			Value: poUnescaper.Replace(match[2]),
		})
	}
	return result
}

// ReadCatalog loads a catalog file into an id -> value map. When an id is
// listed twice the later entry wins.
func ReadCatalog(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.New(err, "failed to read translations from %s", path)
	}

	catalog := map[string]string{}
	for _, translation := range ParseCatalog(string(content)) {
		if previous, ok := catalog[translation.ID]; ok {
			logging.Warn().
				Str("catalog", path).
				Str("id", translation.ID).
				Str("previous", previous).
				Str("value", translation.Value).
				Msg("duplicate translation, keeping the later one")
		}
		catalog[translation.ID] = translation.Value
	}
	return catalog, nil
}
