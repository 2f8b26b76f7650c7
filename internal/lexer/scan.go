package lexer

import (
	"cinder/internal/diag"
	"cinder/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.off
	for !lx.eof() && isIdentContinue(lx.peek()) {
		lx.bump()
	}
	sp := lx.spanFrom(start)
	text := lx.text(sp)
	if kind, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kind, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.off
	for !lx.eof() && (isDec(lx.peek()) || lx.peek() == '_') {
		lx.bump()
	}
	sp := lx.spanFrom(start)

	// A number running straight into identifier characters is malformed,
	// e.g. "123abc".
	if !lx.eof() && isIdentStart(lx.peek()) {
		for !lx.eof() && isIdentContinue(lx.peek()) {
			lx.bump()
		}
		sp = lx.spanFrom(start)
		if lx.reporter != nil {
			diag.ReportError(lx.reporter, diag.LexBadNumber, sp, "malformed number literal").Emit()
		}
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) scanString() token.Token {
	start := lx.off
	lx.bump() // opening quote
	for !lx.eof() {
		ch := lx.peek()
		if ch == '\n' {
			break
		}
		lx.bump()
		if ch == '"' {
			sp := lx.spanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		}
		if ch == '\\' && !lx.eof() {
			lx.bump()
		}
	}
	sp := lx.spanFrom(start)
	if lx.reporter != nil {
		diag.ReportError(lx.reporter, diag.LexUnterminatedString, sp, "unterminated string literal").Emit()
	}
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// twoByteOps maps a leading byte to its two-character operator.
type twoByteOp struct {
	second byte
	kind   token.Kind
}

var twoByteOps = map[byte]twoByteOp{
	'=': {'=', token.EqEq},
	'!': {'=', token.BangEq},
	'<': {'=', token.LtEq},
	'>': {'=', token.GtEq},
	'&': {'&', token.AndAnd},
	'|': {'|', token.OrOr},
}

var oneByteOps = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	';': token.Semicolon,
	',': token.Comma,
	':': token.Colon,
	'.': token.Dot,
	'=': token.Assign,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'<': token.Lt,
	'>': token.Gt,
	'!': token.Bang,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.off
	ch := lx.peek()

	if op, ok := twoByteOps[ch]; ok {
		if next, has := lx.peekAt(1); has && next == op.second {
			lx.bump()
			lx.bump()
			sp := lx.spanFrom(start)
			return token.Token{Kind: op.kind, Span: sp, Text: lx.text(sp)}
		}
	}
	if kind, ok := oneByteOps[ch]; ok {
		lx.bump()
		sp := lx.spanFrom(start)
		return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
	}

	lx.bump()
	sp := lx.spanFrom(start)
	if lx.reporter != nil {
		diag.ReportError(lx.reporter, diag.LexUnknownChar, sp, "unknown character").Emit()
	}
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
