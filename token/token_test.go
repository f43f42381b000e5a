package token

import "testing"

func TestKeywordsCoversReservedWordsWithNoGrammarProduction(t *testing.T) {
	// switch/case/default/break/read are reserved so identifiers can't use
	// them, even though no statement production consumes them.
	for _, kw := range []string{"switch", "case", "default", "break", "read"} {
		if !Keywords[kw] {
			t.Errorf("expected %q to be a reserved keyword", kw)
		}
	}
}

func TestKeywordsExcludesOrdinaryIdentifiers(t *testing.T) {
	for _, name := range []string{"main", "a", "foo_bar", "Result"} {
		if Keywords[name] {
			t.Errorf("expected %q not to be a reserved keyword", name)
		}
	}
}

func TestTokenStringIncludesKindLexemeAndPosition(t *testing.T) {
	tok := Token{Kind: Identifier, Lexeme: "x", Line: 3, Column: 7}
	got := tok.String()
	want := `Identifier("x")@3:7`
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
