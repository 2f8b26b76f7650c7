package token

var keywords = map[string]Kind{
	"contract": KwContract,
	"fn":       KwFn,
	"let":      KwLet,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"break":    KwBreak,
	"continue": KwContinue,
	"return":   KwReturn,
	"revert":   KwRevert,
	"asm":      KwAsm,
	"storage":  KwStorage,
	"memory":   KwMemory,
	"calldata": KwCalldata,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword resolves an identifier to its keyword kind, if any.
// Keywords are case sensitive; only lowercase spellings are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
