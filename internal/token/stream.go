package token

import (
	"slices"

	"reflectc/internal/source"
)

// Stream is an immutable, random-access sequence of symbols.
type Stream struct {
	syms []Symbol
	eof  Symbol
}

// NewStream builds a stream from syms, renumbering Pos to match indexes.
// A trailing EOF symbol in syms is dropped and used as the sentinel.
func NewStream(syms []Symbol) *Stream {
	s := &Stream{syms: slices.Clone(syms)}
	if n := len(s.syms); n > 0 && s.syms[n-1].Kind == EOF {
		s.eof = s.syms[n-1]
		s.syms = s.syms[:n-1]
	} else if n > 0 {
		last := s.syms[n-1].Span
		s.eof = Symbol{Kind: EOF, Span: last.After()}
	}
	for i := range s.syms {
		s.syms[i].Pos = i
	}
	s.eof.Kind = EOF
	s.eof.Text = ""
	s.eof.Pos = len(s.syms)
	return s
}

// Len returns the number of real symbols (the sentinel is not counted).
func (s *Stream) Len() int {
	if s == nil {
		return 0
	}
	return len(s.syms)
}

// Has reports whether pos addresses a real symbol.
func (s *Stream) Has(pos int) bool {
	return s != nil && pos >= 0 && pos < len(s.syms)
}

// At returns the symbol at pos or the EOF sentinel when pos is out of range.
func (s *Stream) At(pos int) Symbol {
	if !s.Has(pos) {
		if s == nil {
			return Symbol{Kind: EOF}
		}
		eof := s.eof
		if pos >= 0 {
			eof.Pos = max(pos, len(s.syms))
		}
		return eof
	}
	return s.syms[pos]
}

// Span returns the source span of the symbol at pos.
func (s *Stream) Span(pos int) source.Span {
	return s.At(pos).Span
}

// Symbols returns a copy of the real symbols.
func (s *Stream) Symbols() []Symbol {
	if s == nil {
		return nil
	}
	return slices.Clone(s.syms)
}
