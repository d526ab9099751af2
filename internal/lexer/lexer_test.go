package lexer

import "testing"

func tokenTypes(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, tk := range toks {
		out[i] = tk.Type
	}
	return out
}

func TestTokenizeBasicChain(t *testing.T) {
	toks, err := Tokenize(`region.filter(r_name='EUROPE')`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TokenType{Ident, Dot, Ident, LParen, Ident, Operator, String, RParen, EOF}
	got := tokenTypes(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeNumbers(t *testing.T) {
	toks, err := Tokenize("1 + 2.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Type != Number || toks[0].HasDot {
		t.Errorf("expected integer literal, got %+v", toks[0])
	}
	if toks[2].Type != Number || !toks[2].HasDot {
		t.Errorf("expected decimal literal, got %+v", toks[2])
	}
}

func TestTokenizeTypedString(t *testing.T) {
	toks, err := Tokenize("date'2024-01-01'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Type != TypedString || toks[0].Prefix != "date" || toks[0].Value != "2024-01-01" {
		t.Errorf("got %+v", toks[0])
	}
}

func TestTokenizeLetDeclaration(t *testing.T) {
	toks, err := Tokenize("let x := 1; x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TokenType{Keyword, Ident, ColonEquals, Number, Semicolon, Ident, EOF}
	got := tokenTypes(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeComparisonOperators(t *testing.T) {
	for _, op := range []string{"=", "<>", "!=", "<", "<=", ">", ">="} {
		toks, err := Tokenize("a " + op + " b")
		if err != nil {
			t.Fatalf("tokenizing %q: %v", op, err)
		}
		if toks[1].Type != Operator || toks[1].Value != op {
			t.Errorf("op %q: got %+v", op, toks[1])
		}
	}
}

func TestTokenizeUnexpectedCharacter(t *testing.T) {
	_, err := Tokenize("a # b")
	if err == nil {
		t.Fatal("expected error for unexpected character")
	}
}

func TestTokenizeLineComment(t *testing.T) {
	toks, err := Tokenize("a // comment\n.b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TokenType{Ident, Dot, Ident, EOF}
	got := tokenTypes(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
}
