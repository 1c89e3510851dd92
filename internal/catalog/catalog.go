// Package catalog derives display and file names from category paths.
package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// HomeName is the name of the root category (empty path).
const HomeName = "home"

// Name returns the last non-empty segment of a category path, or "home" for
// the root path. Case is left untouched.
func Name(path string) string {
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return HomeName
	}
	return segments[len(segments)-1]
}

// LinkText is the visible text of the sidebar link leading to the category.
func LinkText(path string) string {
	name := Name(path)
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// Filename is the CSV file a category is written to.
func Filename(path string) string {
	return Name(path) + ".csv"
}
