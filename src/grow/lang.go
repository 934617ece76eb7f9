package grow

import (
	"strings"
)

// Lang is the language a post is written in.
type Lang int

// The zero Lang is not a language; it marks a missing value.
const (
	LangRu Lang = iota + 1
	LangEn
)

// Langs lists every supported language in index order.
var Langs = []Lang{LangRu, LangEn}

var langNames = map[Lang]string{
	LangRu: "Ru",
	LangEn: "En",
}

// Authors signs approved posts, one fixed author per language.
var Authors = map[Lang]string{
	LangRu: "Виктор Жарина",
	LangEn: "Viktor Zharina",
}

// ParseLang reads a two-letter language code, ignoring case and surrounding
// whitespace.
func ParseLang(code string) (Lang, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	for _, lang := range Langs {
		if lang.Code() == normalized {
			return lang, nil
		}
	}
	return 0, &UnknownLangError{Value: code}
}

// ParseLangs reads a list of codes such as "ru,en".
func ParseLangs(codes string) ([]Lang, error) {
	var langs []Lang
	for _, code := range strings.Split(codes, ",") {
		if strings.TrimSpace(code) == "" {
			continue
		}
		lang, err := ParseLang(code)
		if err != nil {
			return nil, err
		}
		langs = append(langs, lang)
	}
	return langs, nil
}

// String gives the capitalized name used inside records, e.g. "Ru" in "slugRu".
func (l Lang) String() string {
	if name, ok := langNames[l]; ok {
		return name
	}
	return "Unknown"
}

// Code gives the lowercase code used in paths, e.g. "ru".
func (l Lang) Code() string {
	return strings.ToLower(l.String())
}

// Valid reports whether l is one of Langs.
func (l Lang) Valid() bool {
	_, ok := langNames[l]
	return ok
}

// Author returns the author who signs posts in this language.
func (l Lang) Author() string {
	return Authors[l]
}
