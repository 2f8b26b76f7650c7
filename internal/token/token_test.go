package token_test

import (
	"testing"

	"cinder/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	kind, ok := token.LookupKeyword("storage")
	if !ok || kind != token.KwStorage {
		t.Errorf("LookupKeyword(storage) = %v, %v", kind, ok)
	}
	if _, ok := token.LookupKeyword("Storage"); ok {
		t.Error("keyword lookup must be case sensitive")
	}
	if _, ok := token.LookupKeyword("balance"); ok {
		t.Error("plain identifier resolved as keyword")
	}
}

func TestIsKeyword(t *testing.T) {
	if !(token.Token{Kind: token.KwContract}).IsKeyword() {
		t.Error("'contract' not recognized as keyword")
	}
	if (token.Token{Kind: token.Ident}).IsKeyword() {
		t.Error("identifier recognized as keyword")
	}
}

func TestIsDataLocation(t *testing.T) {
	for _, kind := range []token.Kind{token.KwStorage, token.KwMemory, token.KwCalldata} {
		if !(token.Token{Kind: kind}).IsDataLocation() {
			t.Errorf("%v not recognized as data location", kind)
		}
	}
	if (token.Token{Kind: token.KwLet}).IsDataLocation() {
		t.Error("'let' recognized as data location")
	}
}

func TestKindString(t *testing.T) {
	if got := token.EqEq.String(); got != "'=='" {
		t.Errorf("EqEq.String() = %q", got)
	}
	if got := token.Kind(200).String(); got != "unknown" {
		t.Errorf("out-of-range String() = %q", got)
	}
}
