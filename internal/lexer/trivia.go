package lexer

import (
	"reflectc/internal/diag"
)

// skipTrivia пропускает пробелы, переводы строк, // и /* */ комментарии.
func (lx *Lexer) skipTrivia() {
	for {
		lx.cursor.TakeWhile(isSpace)
		switch {
		case lx.cursor.HasPrefix("//"):
			lx.cursor.TakeWhile(func(b byte) bool { return b != '\n' })
		case lx.cursor.HasPrefix("/*"):
			lx.skipBlockComment()
		default:
			return
		}
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// C-style block comments do not nest.
func (lx *Lexer) skipBlockComment() {
	start := lx.cursor.Mark()
	lx.cursor.Skip(2)
	if lx.cursor.SkipPast("*/") {
		return
	}
	lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
}
