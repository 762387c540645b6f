package lexer

import (
	"fmt"

	"reflectc/internal/diag"
	"reflectc/internal/source"
)

// DefaultMaxErrors caps lexer errors per file; binary input would otherwise
// produce one unknown-character error per byte.
const DefaultMaxErrors = 64

type Options struct {
	Reporter  diag.Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
	MaxErrors int           // 0 selects DefaultMaxErrors, negative means unlimited
}

func (o Options) maxErrors() int {
	if o.MaxErrors == 0 {
		return DefaultMaxErrors
	}
	return o.MaxErrors
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.errors++
	if lx.opts.Reporter == nil {
		return
	}
	limit := lx.opts.maxErrors()
	switch {
	case limit < 0 || lx.errors <= limit:
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	case lx.errors == limit+1:
		diag.ReportWarning(lx.opts.Reporter, code, sp,
			fmt.Sprintf("too many lexer errors, further ones suppressed (limit %d)", limit)).Emit()
	}
}

// Errors returns how many lexical errors were seen, suppressed ones included.
func (lx *Lexer) Errors() int { return lx.errors }
