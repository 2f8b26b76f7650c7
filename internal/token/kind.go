package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal.
	IntLit
	// StringLit represents a string literal.
	StringLit

	// KwContract represents the 'contract' keyword.
	KwContract // contract
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwRevert represents the 'revert' keyword.
	KwRevert // revert
	// KwAsm represents the 'asm' keyword introducing an inline assembly block.
	KwAsm // asm
	// KwStorage represents the 'storage' data-location keyword.
	KwStorage // storage
	// KwMemory represents the 'memory' data-location keyword.
	KwMemory // memory
	// KwCalldata represents the 'calldata' data-location keyword.
	KwCalldata // calldata
	// KwTrue represents the 'true' literal.
	KwTrue // true
	// KwFalse represents the 'false' literal.
	KwFalse // false

	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace
	// LBracket represents '['.
	LBracket
	// RBracket represents ']'.
	RBracket
	// Semicolon represents ';'.
	Semicolon
	// Comma represents ','.
	Comma
	// Colon represents ':'.
	Colon
	// Dot represents '.'.
	Dot
	// Assign represents '='.
	Assign
	// Plus represents '+'.
	Plus
	// Minus represents '-'.
	Minus
	// Star represents '*'.
	Star
	// Slash represents '/'.
	Slash
	// Percent represents '%'.
	Percent
	// EqEq represents '=='.
	EqEq
	// BangEq represents '!='.
	BangEq
	// Lt represents '<'.
	Lt
	// LtEq represents '<='.
	LtEq
	// Gt represents '>'.
	Gt
	// GtEq represents '>='.
	GtEq
	// AndAnd represents '&&'.
	AndAnd
	// OrOr represents '||'.
	OrOr
	// Bang represents '!'.
	Bang
)

var kindNames = map[Kind]string{
	Invalid:    "invalid",
	EOF:        "eof",
	Ident:      "identifier",
	IntLit:     "integer literal",
	StringLit:  "string literal",
	KwContract: "'contract'",
	KwFn:       "'fn'",
	KwLet:      "'let'",
	KwIf:       "'if'",
	KwElse:     "'else'",
	KwWhile:    "'while'",
	KwBreak:    "'break'",
	KwContinue: "'continue'",
	KwReturn:   "'return'",
	KwRevert:   "'revert'",
	KwAsm:      "'asm'",
	KwStorage:  "'storage'",
	KwMemory:   "'memory'",
	KwCalldata: "'calldata'",
	KwTrue:     "'true'",
	KwFalse:    "'false'",
	LParen:     "'('",
	RParen:     "')'",
	LBrace:     "'{'",
	RBrace:     "'}'",
	LBracket:   "'['",
	RBracket:   "']'",
	Semicolon:  "';'",
	Comma:      "','",
	Colon:      "':'",
	Dot:        "'.'",
	Assign:     "'='",
	Plus:       "'+'",
	Minus:      "'-'",
	Star:       "'*'",
	Slash:      "'/'",
	Percent:    "'%'",
	EqEq:       "'=='",
	BangEq:     "'!='",
	Lt:         "'<'",
	LtEq:       "'<='",
	Gt:         "'>'",
	GtEq:       "'>='",
	AndAnd:     "'&&'",
	OrOr:       "'||'",
	Bang:       "'!'",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}
