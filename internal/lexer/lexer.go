package lexer

import (
	"cinder/internal/diag"
	"cinder/internal/source"
	"cinder/internal/token"
)

// Lexer produces tokens from a single normalized source file.
type Lexer struct {
	file     *source.File
	off      uint32
	look     *token.Token
	reporter diag.Reporter
}

// New creates a lexer over file. reporter may be nil; lexical errors are then
// only visible as Invalid tokens.
func New(file *source.File, reporter diag.Reporter) *Lexer {
	return &Lexer{
		file:     file,
		reporter: reporter,
	}
}

// Next returns the next significant token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.eof() {
		return token.Token{Kind: token.EOF, Span: lx.spanFrom(lx.off)}
	}

	ch := lx.peek()
	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Tokenize drains the lexer, returning every token up to and including EOF.
func Tokenize(file *source.File, reporter diag.Reporter) []token.Token {
	lx := New(file, reporter)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) eof() bool {
	return int(lx.off) >= len(lx.file.Content)
}

func (lx *Lexer) peek() byte {
	return lx.file.Content[lx.off]
}

func (lx *Lexer) peekAt(delta uint32) (byte, bool) {
	idx := lx.off + delta
	if int(idx) >= len(lx.file.Content) {
		return 0, false
	}
	return lx.file.Content[idx], true
}

func (lx *Lexer) bump() {
	lx.off++
}

func (lx *Lexer) spanFrom(start uint32) source.Span {
	return source.Span{File: lx.file.ID, Start: start, End: lx.off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

// skipTrivia consumes whitespace, line comments and block comments.
func (lx *Lexer) skipTrivia() {
	for !lx.eof() {
		ch := lx.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.bump()
		case ch == '/':
			next, ok := lx.peekAt(1)
			if !ok {
				return
			}
			switch next {
			case '/':
				for !lx.eof() && lx.peek() != '\n' {
					lx.bump()
				}
			case '*':
				lx.bump()
				lx.bump()
				for !lx.eof() {
					if lx.peek() == '*' {
						if n, ok := lx.peekAt(1); ok && n == '/' {
							lx.bump()
							lx.bump()
							break
						}
					}
					lx.bump()
				}
			default:
				return
			}
		default:
			return
		}
	}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDec(ch)
}

func isDec(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
