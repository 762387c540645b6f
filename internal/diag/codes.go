package diag

import (
	"fmt"
)

// Code is an error kind. The thousands digit selects the phase.
type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Грамматика
	SynInfo                 Code = 2000
	SynLackOfCode           Code = 2001
	SynWrongSuccessor       Code = 2002
	SynWrongPredecessor     Code = 2003
	SynNoMatchingGrouper    Code = 2004
	SynGrouperMismatch      Code = 2005
	SynRepetitionOfCode     Code = 2006
	SynWrongScope           Code = 2007
	SynSymbolNotFound       Code = 2008
	SynUnsupportedConstruct Code = 2009
	SynNestingTooDeep       Code = 2010

	// Раскладка типов
	SemaInfo              Code = 3000
	SemaEmptyType         Code = 3001
	SemaIncompleteType    Code = 3002
	SemaDuplicateTypeInfo Code = 3003
	SemaSizeOverflow      Code = 3004
	SemaUnresolvedMember  Code = 3005

	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	ProjInfo             Code = 5000
	ProjManifestNotFound Code = 5001
	ProjInvalidManifest  Code = 5002
	ProjMissingName      Code = 5003

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Invalid numeric literal",

	SynInfo:                 "Syntax information",
	SynLackOfCode:           "Unexpected end of input",
	SynWrongSuccessor:       "Unexpected or missing following symbol",
	SynWrongPredecessor:     "Missing or wrong preceding symbol",
	SynNoMatchingGrouper:    "Unclosed grouper",
	SynGrouperMismatch:      "Mismatched grouper",
	SynRepetitionOfCode:     "Repeated declaration or modifier",
	SynWrongScope:           "Modifier not allowed in this scope",
	SynSymbolNotFound:       "Symbol not found",
	SynUnsupportedConstruct: "Unsupported construct",
	SynNestingTooDeep:       "Nesting too deep",

	SemaInfo:              "Layout information",
	SemaEmptyType:         "Type has no storage",
	SemaIncompleteType:    "Type is declared but not defined",
	SemaDuplicateTypeInfo: "Type layout already registered",
	SemaSizeOverflow:      "Type size overflows",
	SemaUnresolvedMember:  "Member type cannot be resolved",

	IOLoadFileError: "I/O load file error",
	IOCacheError:    "Cache error",

	ProjInfo:             "Project information",
	ProjManifestNotFound: "reflect.toml not found",
	ProjInvalidManifest:  "Invalid reflect.toml",
	ProjMissingName:      "Missing [package] name",

	ObsInfo:    "Observability information",
	ObsTimings: "Pipeline timings",
}

// ID returns the stable identifier, e.g. SYN2004.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
