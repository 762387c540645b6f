package layout

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SemanticPrefix is stripped from declared names before upper-casing.
const SemanticPrefix = "_"

// DefaultSemantic derives a semantic name from a declared member name:
// one leading SemanticPrefix is dropped and the rest is upper-cased.
func DefaultSemantic(declName string) string {
	// Caser хранит состояние, поэтому на каждый вызов свой
	return cases.Upper(language.Und).String(strings.TrimPrefix(declName, SemanticPrefix))
}
