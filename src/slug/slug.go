// Package slug turns human-readable titles, Cyrillic or Latin, into
// lowercase URL-safe identifiers.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Separator joins the words of a slug.
const Separator = '-'

// Letters of the Cyrillic alphabet and their Latin spelling. Keys are lowercase;
// titles are lowercased before lookup.
var cyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "i", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "iu", 'я': "ia",

	// Ukrainian and Belarusian letters that show up in borrowed names.
	'і': "i", 'ї': "i", 'є': "ie", 'ґ': "g", 'ў': "u",
}

// Dropped without leaving a word break behind, so "Hello, world!" becomes
// "hello-world" rather than "hello--world-".
var dropped = map[rune]bool{
	',': true, '!': true, '?': true, '#': true, '$': true,
	'@': true, '*': true, '%': true, '^': true,
}

// Make builds the slug for title. The result only contains a-z, 0-9 and single
// hyphens, and never starts or ends with a hyphen. A title made only of
// dropped symbols gives an empty slug.
func Make(title string) string {
	folded := strings.ToLower(foldDiacritics(strings.TrimSpace(title)))

	var b strings.Builder
	pendingSeparator := false
	for _, r := range folded {
		var piece string
		switch {
		case dropped[r]:
			continue
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			piece = string(r)
		default:
			latin, ok := cyrillic[r]
			if !ok {
				// Spaces, hyphens and anything we can't spell in Latin
				// separate words.
				pendingSeparator = true
				continue
			}
			piece = latin
		}

		if piece == "" {
			continue
		}
		if pendingSeparator && b.Len() > 0 {
			b.WriteRune(Separator)
		}
		pendingSeparator = false
		b.WriteString(piece)
	}

	return b.String()
}

// foldDiacritics removes combining marks: "é" becomes "e", "й" becomes "и".
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return norm.NFC.String(s)
	}
	return folded
}
