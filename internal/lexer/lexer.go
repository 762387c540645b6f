package lexer

import (
	"reflectc/internal/source"
	"reflectc/internal/token"
)

// Lexer turns C++/HLSL-flavoured header text into classified symbols.
// Whitespace and comments are skipped; they never reach the stream.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	errors int
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next symbol. After the end of input it keeps returning EOF.
func (lx *Lexer) Next() token.Symbol {
	lx.skipTrivia()
	if lx.cursor.EOF() {
		return token.Symbol{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		return lx.scanWord()
	case isDec(ch), ch == '.' && isDec(lx.cursor.PeekAt(1)):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// All lexes the whole file into a Stream.
func (lx *Lexer) All() *token.Stream {
	syms := make([]token.Symbol, 0, len(lx.file.Content)/4+1)
	for {
		sym := lx.Next()
		syms = append(syms, sym)
		if sym.Kind == token.EOF {
			break
		}
	}
	return token.NewStream(syms)
}

// Tokenize is a convenience wrapper around New(...).All().
func Tokenize(file *source.File, opts Options) *token.Stream {
	return New(file, opts).All()
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Symbol {
	sp := lx.cursor.SpanFrom(start)
	return token.Symbol{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
