package lexer

import (
	"testing"

	"github.com/babyduck-lang/babyduck/pkg/token"
)

func TestNextToken_BasicTokens(t *testing.T) {
	input := `; : , ( ) { } [ ]`

	tests := []struct {
		expectedKind    token.Kind
		expectedLiteral string
	}{
		{token.Semicolon, ";"},
		{token.Colon, ":"},
		{token.Comma, ","},
		{token.LParen, "("},
		{token.RParen, ")"},
		{token.LBrace, "{"},
		{token.RBrace, "}"},
		{token.LBracket, "["},
		{token.RBracket, "]"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%q, got=%q", i, tt.expectedKind, tok.Kind)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextToken_Operators(t *testing.T) {
	input := `+ - * / > < == != =`

	tests := []struct {
		expectedKind    token.Kind
		expectedLiteral string
	}{
		{token.Plus, "+"},
		{token.Minus, "-"},
		{token.Star, "*"},
		{token.Slash, "/"},
		{token.Greater, ">"},
		{token.Less, "<"},
		{token.Equal, "=="},
		{token.NotEqual, "!="},
		{token.Assign, "="},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%q, got=%q", i, tt.expectedKind, tok.Kind)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextToken_KeywordsAndIdentifiers(t *testing.T) {
	input := `program var main end void if else while do print int float bool true false x result`

	expectedKinds := []token.Kind{
		token.Program, token.Var, token.Main, token.End, token.Void,
		token.If, token.Else, token.While, token.Do, token.Print,
		token.IntType, token.FloatType, token.BoolType,
		token.True, token.False,
		token.Ident, token.Ident,
		token.EOF,
	}

	l := New(input)
	for i, expected := range expectedKinds {
		tok := l.NextToken()
		if tok.Kind != expected {
			t.Fatalf("tests[%d] - kind wrong. expected=%q, got=%q", i, expected, tok.Kind)
		}
	}
}

func TestNextToken_NumberLiterals(t *testing.T) {
	input := `10 3.5 0 0.0`

	tests := []struct {
		expectedKind    token.Kind
		expectedLiteral string
	}{
		{token.Int, "10"},
		{token.Float, "3.5"},
		{token.Int, "0"},
		{token.Float, "0.0"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.expectedKind || tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - expected {%q %q}, got {%q %q}",
				i, tt.expectedKind, tt.expectedLiteral, tok.Kind, tok.Literal)
		}
	}
}

func TestNextToken_SkipsLineComments(t *testing.T) {
	input := "x = 1; // set x to one\nprint(x);"

	l := New(input)
	var kinds []token.Kind
	for {
		tok := l.NextToken()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			break
		}
	}

	for _, k := range kinds {
		if k == token.Illegal {
			t.Fatalf("comment text leaked into token stream: %v", kinds)
		}
	}
}

func TestTokenize_ReportsIllegalToken(t *testing.T) {
	l := New("x = 1 @ 2;")
	_, err := l.Tokenize()
	if err == nil {
		t.Fatalf("expected an error for illegal token '@'")
	}
}
