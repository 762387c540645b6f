package token

import (
	"fmt"

	"reflectc/internal/source"
)

// Symbol is a classified token of the input stream.
type Symbol struct {
	Kind Kind
	Text string
	Span source.Span
	Pos  int // index inside the owning Stream
}

// Is reports whether the symbol has kind k and text s.
func (s Symbol) Is(k Kind, text string) bool {
	return s.Kind == k && s.Text == text
}

// IsKeyword reports whether the symbol is the keyword kw.
func (s Symbol) IsKeyword(kw string) bool { return s.Is(Keyword, kw) }

// IsSpecial reports whether the symbol is the special-use mark text.
func (s Symbol) IsSpecial(text string) bool { return s.Is(SpecialUse, text) }

// IsOperator reports whether the symbol is the operator text.
func (s Symbol) IsOperator(text string) bool { return s.Is(Operator, text) }

func (s Symbol) IsOpen(text string) bool  { return s.Is(GrouperOpen, text) }
func (s Symbol) IsClose(text string) bool { return s.Is(GrouperClose, text) }

func (s Symbol) IsIdent() bool      { return s.Kind == Identifier }
func (s Symbol) IsTerminator() bool { return s.Kind == StatementTerminator }
func (s Symbol) IsEOF() bool        { return s.Kind == EOF }

// IsString reports whether the symbol is a quoted string literal.
func (s Symbol) IsString() bool {
	return s.Kind == Literal && len(s.Text) >= 2 && s.Text[0] == '"' && s.Text[len(s.Text)-1] == '"'
}

// Unquote strips the surrounding quotes of a string literal.
func (s Symbol) Unquote() string {
	if !s.IsString() {
		return s.Text
	}
	return s.Text[1 : len(s.Text)-1]
}

func (s Symbol) String() string {
	if s.Kind == EOF {
		return "<eof>"
	}
	return fmt.Sprintf("%s %q", s.Kind, s.Text)
}

// Closer returns the matching closing grouper for an opening one.
func Closer(open string) string {
	switch open {
	case "(":
		return ")"
	case "{":
		return "}"
	case "[":
		return "]"
	default:
		return ""
	}
}
