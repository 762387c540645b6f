package source

import "fmt"

// Span is a half-open byte range inside one file. The zero Span carries no
// location; I/O and timing diagnostics use it.
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool { return s.Start == s.End }

func (s Span) Len() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Within reports whether s is well formed and fits in size bytes.
func (s Span) Within(size uint32) bool {
	return s.Start <= s.End && s.End <= size
}

// IsZero reports whether s carries no location at all.
func (s Span) IsZero() bool { return s == Span{} }

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other. Spans from
// different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	s.Start = min(s.Start, other.Start)
	s.End = max(s.End, other.End)
	return s
}

// After returns an empty span right after s; the symbol stream places its
// end-of-input sentinel there.
func (s Span) After() Span {
	return Span{File: s.File, Start: s.End, End: s.End}
}
