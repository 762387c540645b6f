package token

// Kind is the classifier of a symbol.
type Kind uint8

const (
	// Invalid indicates an erroneous symbol.
	Invalid Kind = iota
	// EOF is the sentinel returned for positions beyond the stream.
	EOF
	// Keyword is a reserved grammar word (class, struct, const, ...).
	Keyword
	// Identifier covers user names and built-in type names.
	Identifier
	// Literal covers numeric, boolean and string literals.
	Literal
	// GrouperOpen is one of ( { [.
	GrouperOpen
	// GrouperClose is one of ) } ].
	GrouperClose
	// StatementTerminator is ';'.
	StatementTerminator
	// Operator covers arithmetic, comparison, '*', '&', '&&', '=', '~' and similar.
	Operator
	// SpecialUse covers ':', '::', ',', '#' and '.'.
	SpecialUse
)

var kindNames = [...]string{
	Invalid:             "Invalid",
	EOF:                 "EOF",
	Keyword:             "Keyword",
	Identifier:          "Identifier",
	Literal:             "Literal",
	GrouperOpen:         "GrouperOpen",
	GrouperClose:        "GrouperClose",
	StatementTerminator: "StatementTerminator",
	Operator:            "Operator",
	SpecialUse:          "SpecialUse",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
