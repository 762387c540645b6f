package token

// keywords lists the reserved words of the reflected grammar.
var keywords = map[string]struct{}{
	"class":        {},
	"struct":       {},
	"namespace":    {},
	"using":        {},
	"public":       {},
	"protected":    {},
	"private":      {},
	"const":        {},
	"constexpr":    {},
	"static":       {},
	"mutable":      {},
	"thread_local": {},
	"short":        {},
	"long":         {},
	"signed":       {},
	"unsigned":     {},
	"alignas":      {},
	"register":     {},
	"return":       {},
	"noexcept":     {},
	"override":     {},
	"final":        {},
	"abstract":     {},
	"default":      {},
	"delete":       {},
	"virtual":      {},
	"include":      {},
}

// boolean literals are classified as Literal, not Keyword
var boolLiterals = map[string]struct{}{
	"true":    {},
	"false":   {},
	"nullptr": {},
}

// LookupWord classifies a word as Keyword, Literal or Identifier.
func LookupWord(s string) Kind {
	if _, ok := keywords[s]; ok {
		return Keyword
	}
	if _, ok := boolLiterals[s]; ok {
		return Literal
	}
	return Identifier
}

// IsKeyword reports whether s is reserved.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}
