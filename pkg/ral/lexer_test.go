package ral

import "testing"

func TestLexerPunctuationAndOperators(t *testing.T) {
	input := ", ; ( ) * = != <> < <= > >="
	expected := []TokenType{
		TOKEN_COMMA, TOKEN_SEMICOLON, TOKEN_LPAREN, TOKEN_RPAREN,
		TOKEN_STAR, TOKEN_EQ, TOKEN_NE, TOKEN_NE,
		TOKEN_LT, TOKEN_LE, TOKEN_GT, TOKEN_GE,
		TOKEN_EOF,
	}

	l := NewLexer(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Errorf("token %d: expected type %v, got %v (%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestLexerKeywordsCaseInsensitive(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{"CREATE", TOKEN_CREATE},
		{"create", TOKEN_CREATE},
		{"Relation", TOKEN_RELATION},
		{"RELATIONS", TOKEN_RELATIONS},
		{"drop", TOKEN_DROP},
		{"INSERT", TOKEN_INSERT},
		{"into", TOKEN_INTO},
		{"VALUES", TOKEN_VALUES},
		{"project", TOKEN_PROJECT},
		{"RESTRICT", TOKEN_RESTRICT},
		{"from", TOKEN_FROM},
		{"WHERE", TOKEN_WHERE},
		{"and", TOKEN_AND},
		{"OR", TOKEN_OR},
		{"primary", TOKEN_PRIMARY},
		{"KEY", TOKEN_KEY},
		{"INT", TOKEN_INT_TYPE},
		{"integer", TOKEN_INT_TYPE},
		{"STR", TOKEN_STR_TYPE},
		{"string", TOKEN_STR_TYPE},
		{"text", TOKEN_STR_TYPE},
		{"SHOW", TOKEN_SHOW},
		{"describe", TOKEN_DESCRIBE},
	}

	for _, tt := range tests {
		tok := NewLexer(tt.input).NextToken()
		if tok.Type != tt.want {
			t.Errorf("Lexing %q: expected %v, got %v", tt.input, tt.want, tok.Type)
		}
	}
}

func TestLexerIdentifiersAndLiterals(t *testing.T) {
	l := NewLexer("users user_2 42 -17 'hello world'")

	tok := l.NextToken()
	if tok.Type != TOKEN_IDENT || tok.Literal != "users" {
		t.Errorf("Expected IDENT users, got %v %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != TOKEN_IDENT || tok.Literal != "user_2" {
		t.Errorf("Expected IDENT user_2, got %v %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != TOKEN_INT || tok.Literal != "42" {
		t.Errorf("Expected INT 42, got %v %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != TOKEN_INT || tok.Literal != "-17" {
		t.Errorf("Expected INT -17, got %v %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != TOKEN_STRING || tok.Literal != "hello world" {
		t.Errorf("Expected STRING literal, got %v %q", tok.Type, tok.Literal)
	}
	if l.NextToken().Type != TOKEN_EOF {
		t.Error("Expected EOF")
	}
}

func TestLexerTokenPositions(t *testing.T) {
	l := NewLexer("name = 'bob'")
	expected := []struct {
		typ TokenType
		pos int
	}{
		{TOKEN_IDENT, 0},
		{TOKEN_EQ, 5},
		{TOKEN_STRING, 7}, // position of the opening quote
		{TOKEN_EOF, 12},
	}
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want.typ || tok.Pos != want.pos {
			t.Errorf("token %d: expected (%v, pos %d), got (%v, pos %d)", i, want.typ, want.pos, tok.Type, tok.Pos)
		}
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	l := NewLexer("'never closed")
	tok := l.NextToken()
	if tok.Type != TOKEN_STRING || tok.Literal != "never closed" {
		t.Errorf("Expected STRING to end at EOF, got %v %q", tok.Type, tok.Literal)
	}
}

func TestLexerIllegal(t *testing.T) {
	l := NewLexer("@")
	tok := l.NextToken()
	if tok.Type != TOKEN_ILLEGAL {
		t.Errorf("Expected ILLEGAL, got %v %q", tok.Type, tok.Literal)
	}

	l = NewLexer("!")
	tok = l.NextToken()
	if tok.Type != TOKEN_ILLEGAL {
		t.Errorf("Expected ILLEGAL for lone !, got %v %q", tok.Type, tok.Literal)
	}
}

func TestLexerFullStatement(t *testing.T) {
	l := NewLexer("PROJECT name, phone FROM users;")
	expected := []struct {
		typ TokenType
		lit string
	}{
		{TOKEN_PROJECT, "PROJECT"},
		{TOKEN_IDENT, "name"},
		{TOKEN_COMMA, ","},
		{TOKEN_IDENT, "phone"},
		{TOKEN_FROM, "FROM"},
		{TOKEN_IDENT, "users"},
		{TOKEN_SEMICOLON, ";"},
		{TOKEN_EOF, ""},
	}
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want.typ || tok.Literal != want.lit {
			t.Errorf("token %d: expected (%v, %q), got (%v, %q)", i, want.typ, want.lit, tok.Type, tok.Literal)
		}
	}
}
