package token

import (
	"cinder/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwContract, KwFn, KwLet, KwIf, KwElse, KwWhile, KwBreak, KwContinue,
		KwReturn, KwRevert, KwAsm, KwStorage, KwMemory, KwCalldata, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsDataLocation reports whether the token names a data location.
func (t Token) IsDataLocation() bool {
	switch t.Kind {
	case KwStorage, KwMemory, KwCalldata:
		return true
	default:
		return false
	}
}
