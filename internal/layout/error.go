package layout

import (
	"fmt"

	"reflectc/internal/diag"
	"reflectc/internal/token"
)

// ErrorKind enumerates layout failures.
type ErrorKind uint8

const (
	ErrEmptyType ErrorKind = iota + 1
	ErrIncompleteType
	ErrDuplicate
	ErrSizeOverflow
	ErrUnresolvedMember
	ErrNotRecord
)

// Error is a layout failure tied to the symbol that caused it.
type Error struct {
	Kind ErrorKind
	Sym  token.Symbol
	Type string
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Msg)
}

// Code maps the failure to its diagnostic code.
func (e *Error) Code() diag.Code {
	switch e.Kind {
	case ErrEmptyType:
		return diag.SemaEmptyType
	case ErrIncompleteType:
		return diag.SemaIncompleteType
	case ErrDuplicate:
		return diag.SemaDuplicateTypeInfo
	case ErrSizeOverflow:
		return diag.SemaSizeOverflow
	case ErrUnresolvedMember, ErrNotRecord:
		return diag.SemaUnresolvedMember
	default:
		return diag.UnknownCode
	}
}
