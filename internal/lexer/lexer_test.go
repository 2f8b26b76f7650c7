package lexer_test

import (
	"testing"

	"cinder/internal/diag"
	"cinder/internal/lexer"
	"cinder/internal/source"
	"cinder/internal/token"
)

func lex(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cin", []byte(src))
	bag := diag.NewBag(10)
	toks := lexer.Tokenize(fs.Get(id), diag.BagReporter{Bag: bag})
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func TestTokenizeDeclaration(t *testing.T) {
	toks, bag := lex(t, "let s: storage Account = a;")
	if bag.HasErrors() {
		t.Fatalf("unexpected lex errors: %v", bag.Items())
	}
	want := []token.Kind{
		token.KwLet, token.Ident, token.Colon, token.KwStorage, token.Ident,
		token.Assign, token.Ident, token.Semicolon, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
	if toks[1].Text != "s" || toks[4].Text != "Account" {
		t.Errorf("unexpected identifier texts: %q %q", toks[1].Text, toks[4].Text)
	}
}

func TestTokenizeOperators(t *testing.T) {
	toks, bag := lex(t, "a == b != c <= d >= e && f || !g")
	if bag.HasErrors() {
		t.Fatalf("unexpected lex errors: %v", bag.Items())
	}
	wantOps := []token.Kind{token.EqEq, token.BangEq, token.LtEq, token.GtEq, token.AndAnd, token.OrOr, token.Bang}
	var gotOps []token.Kind
	for _, tok := range toks {
		switch tok.Kind {
		case token.Ident, token.EOF:
		default:
			gotOps = append(gotOps, tok.Kind)
		}
	}
	if len(gotOps) != len(wantOps) {
		t.Fatalf("operator count = %d, want %d", len(gotOps), len(wantOps))
	}
	for i := range wantOps {
		if gotOps[i] != wantOps[i] {
			t.Errorf("op %d = %v, want %v", i, gotOps[i], wantOps[i])
		}
	}
}

func TestTokenizeSkipsComments(t *testing.T) {
	toks, bag := lex(t, "// line\nfn /* block\nstill block */ f")
	if bag.HasErrors() {
		t.Fatalf("unexpected lex errors: %v", bag.Items())
	}
	got := kinds(toks)
	want := []token.Kind{token.KwFn, token.Ident, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

func TestTokenizeSpans(t *testing.T) {
	toks, _ := lex(t, "fn f")
	if toks[0].Span.Start != 0 || toks[0].Span.End != 2 {
		t.Errorf("fn span = %v", toks[0].Span)
	}
	if toks[1].Span.Start != 3 || toks[1].Span.End != 4 {
		t.Errorf("f span = %v", toks[1].Span)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cin", []byte("let x"))
	lx := lexer.New(fs.Get(id), diag.NopReporter{})

	peeked := lx.Peek()
	if peeked.Kind != token.KwLet {
		t.Fatalf("Peek = %v, want 'let'", peeked.Kind)
	}
	next := lx.Next()
	if next != peeked {
		t.Errorf("Next after Peek = %+v, want the peeked token %+v", next, peeked)
	}
	if lx.Next().Kind != token.Ident {
		t.Error("Peek consumed a token")
	}
}

func TestTokenizeErrors(t *testing.T) {
	_, bag := lex(t, "let x = \"abc")
	if !bag.HasErrors() {
		t.Fatal("expected unterminated string error")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Errorf("code = %v, want %v", bag.Items()[0].Code, diag.LexUnterminatedString)
	}

	_, bag = lex(t, "123abc")
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexBadNumber {
		t.Error("expected malformed number error")
	}

	_, bag = lex(t, "let x = #;")
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnknownChar {
		t.Error("expected unknown character error")
	}
}
