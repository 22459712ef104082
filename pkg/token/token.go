// Package token defines the lexical token kinds shared by the BabyDuck
// lexer and parser.
package token

// Kind identifies the category of a lexical token.
type Kind int

const (
	// Special tokens
	EOF Kind = iota
	Illegal

	// Literals
	Int
	Float
	StringLit
	Ident

	// Keywords
	Program
	Var
	Main
	End
	Void
	If
	Else
	While
	Do
	Print

	// Type keywords
	IntType
	FloatType
	BoolType

	// Boolean literals
	True
	False

	// Delimiters
	Semicolon // ;
	Colon     // :
	Comma     // ,
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]

	// Operators
	Plus     // +
	Minus    // -
	Star     // *
	Slash    // /
	Assign   // =
	Greater  // >
	Less     // <
	Equal    // ==
	NotEqual // !=
)

var names = map[Kind]string{
	EOF:       "EOF",
	Illegal:   "ILLEGAL",
	Int:       "INT",
	Float:     "FLOAT",
	StringLit: "STRING",
	Ident:     "IDENT",
	Program:   "PROGRAM",
	Var:       "VAR",
	Main:      "MAIN",
	End:       "END",
	Void:      "VOID",
	If:        "IF",
	Else:      "ELSE",
	While:     "WHILE",
	Do:        "DO",
	Print:     "PRINT",
	IntType:   "INT_TYPE",
	FloatType: "FLOAT_TYPE",
	BoolType:  "BOOL_TYPE",
	True:      "TRUE",
	False:     "FALSE",
	Semicolon: "SEMICOLON",
	Colon:     "COLON",
	Comma:     "COMMA",
	LParen:    "LPAREN",
	RParen:    "RPAREN",
	LBrace:    "LBRACE",
	RBrace:    "RBRACE",
	LBracket:  "LBRACKET",
	RBracket:  "RBRACKET",
	Plus:      "PLUS",
	Minus:     "MINUS",
	Star:      "STAR",
	Slash:     "SLASH",
	Assign:    "ASSIGN",
	Greater:   "GREATER",
	Less:      "LESS",
	Equal:     "EQUAL",
	NotEqual:  "NOT_EQUAL",
}

// String returns a human-readable name for a token kind.
func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Keywords maps reserved identifiers to their keyword kind.
var Keywords = map[string]Kind{
	"program": Program,
	"var":     Var,
	"main":    Main,
	"end":     End,
	"void":    Void,
	"if":      If,
	"else":    Else,
	"while":   While,
	"do":      Do,
	"print":   Print,
	"int":     IntType,
	"float":   FloatType,
	"bool":    BoolType,
	"true":    True,
	"false":   False,
}

// Token is a single lexical token with its source position.
type Token struct {
	Kind    Kind
	Literal string
	Line    int
	Column  int
}
