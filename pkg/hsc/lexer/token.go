// Package lexer provides lexical analysis for HSC scripts (.hsc files).
package lexer

// TokenKind represents the kind of a token.
type TokenKind int

// Token kinds
const (
	// EOF terminates every token stream.
	EOF TokenKind = iota

	// LeftParen is a single `(`.
	LeftParen

	// RightParen is a single `)`.
	RightParen

	// Atom is a maximal run of non-whitespace, non-paren, non-comment
	// characters: identifiers, numbers, booleans, bare names.
	Atom

	// String is a double-quoted literal; Literal holds the text between
	// the quotes with no escape processing.
	String
)

// tokenKindNames maps TokenKind to its string representation.
var tokenKindNames = map[TokenKind]string{
	EOF:        "EOF",
	LeftParen:  "(",
	RightParen: ")",
	Atom:       "ATOM",
	String:     "STRING",
}

// String returns a string representation of the token kind.
func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token represents a lexical token. Line and Column are 1-based and refer
// to the token's first character; for String tokens that is the opening
// quote. Tokens are immutable once produced.
type Token struct {
	Kind    TokenKind
	Literal string
	File    string
	Line    int
	Column  int
}
