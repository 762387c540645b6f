package lexer

import (
	"reflectc/internal/diag"
	"reflectc/internal/token"
)

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// scanWord сканирует идентификатор и классифицирует его через token.LookupWord.
func (lx *Lexer) scanWord() token.Symbol {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.TakeWhile(isIdentContinueByte)
	sym := lx.emit(token.Identifier, start)
	sym.Kind = token.LookupWord(sym.Text)
	return sym
}

// Числа: 0x1F, 42, 42u, 1.5, .5f, 1e-3, 2.0e+10f.
// Суффиксы u/U/l/L/f/F/h/H остаются в тексте литерала.
func (lx *Lexer) scanNumber() token.Symbol {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' && (lx.cursor.PeekAt(1) == 'x' || lx.cursor.PeekAt(1) == 'X') {
		lx.cursor.Skip(2)
		if lx.cursor.TakeWhile(isHex) == 0 {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected hex digit after '0x'")
			return lx.emit(token.Invalid, start)
		}
		lx.scanNumberSuffix()
		return lx.emit(token.Literal, start)
	}

	lx.cursor.TakeWhile(isDec)
	if lx.cursor.Eat('.') {
		lx.cursor.TakeWhile(isDec)
	}
	if lx.cursor.Eat('e') || lx.cursor.Eat('E') {
		if !lx.cursor.Eat('+') {
			lx.cursor.Eat('-')
		}
		if lx.cursor.TakeWhile(isDec) == 0 {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
			return lx.emit(token.Invalid, start)
		}
	}
	lx.scanNumberSuffix()
	return lx.emit(token.Literal, start)
}

func (lx *Lexer) scanNumberSuffix() {
	lx.cursor.TakeWhile(func(b byte) bool {
		switch b {
		case 'u', 'U', 'l', 'L', 'f', 'F', 'h', 'H':
			return true
		}
		return false
	})
}

func (lx *Lexer) scanString() token.Symbol {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			return lx.emit(token.Literal, start)
		case '\\':
			lx.cursor.Bump()
			lx.cursor.Bump()
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return lx.emit(token.Invalid, start)
		default:
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return lx.emit(token.Invalid, start)
}

// Жадность: сначала 2-символьные, затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Symbol {
	start := lx.cursor.Mark()
	b0, b1 := lx.cursor.Peek(), lx.cursor.PeekAt(1)

	switch {
	case b0 == ':' && b1 == ':':
		lx.cursor.Bump()
		lx.cursor.Bump()
		return lx.emit(token.SpecialUse, start)
	case isTwoCharOperator(b0, b1):
		lx.cursor.Bump()
		lx.cursor.Bump()
		return lx.emit(token.Operator, start)
	}

	switch lx.cursor.Bump() {
	case '(', '{', '[':
		return lx.emit(token.GrouperOpen, start)
	case ')', '}', ']':
		return lx.emit(token.GrouperClose, start)
	case ';':
		return lx.emit(token.StatementTerminator, start)
	case ':', ',', '#', '.':
		return lx.emit(token.SpecialUse, start)
	case '+', '-', '*', '/', '%', '=', '!', '<', '>', '&', '|', '^', '~', '?':
		return lx.emit(token.Operator, start)
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
		return lx.emit(token.Invalid, start)
	}
}

func isTwoCharOperator(a, b byte) bool {
	switch string([]byte{a, b}) {
	case "&&", "||", "==", "!=", "<=", ">=", "<<", ">>", "->", "++", "--",
		"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=":
		return true
	}
	return false
}
