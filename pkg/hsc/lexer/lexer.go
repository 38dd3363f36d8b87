package lexer

import (
	"github.com/SnowyMouse/riat/pkg/hsc/diag"
)

// Lexer tokenizes HSC source code. The input must already be decoded to
// UTF-8 text; byte decoding is handled by pkg/hsc/encoding before the
// lexer ever sees the source.
type Lexer struct {
	file         string
	input        []rune
	position     int  // current position in input
	readPosition int  // current reading position (after current char)
	ch           rune // current char
	eof          bool // past the end of input
	line         int  // current line number
	column       int  // current column number
}

// New creates a new Lexer for one file.
func New(file, input string) *Lexer {
	l := &Lexer{
		file:   file,
		input:  []rune(input),
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// NextToken returns the next token. After the input is exhausted it keeps
// returning an EOF token. Lexical errors (unterminated or multi-line
// strings) are reported at the opening quote.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespaceAndComments()

	tok := Token{File: l.file, Line: l.line, Column: l.column}

	switch l.ch {
	case 0:
		// A NUL terminates the input only as its final character; one in
		// the middle of a file would silently hide everything after it.
		if !l.eof && l.position != len(l.input)-1 {
			return tok, diag.Errorf(diag.Lexical, tok.File, tok.Line, tok.Column,
				"unexpected null terminator")
		}
		tok.Kind = EOF
		return tok, nil
	case '(':
		tok.Kind = LeftParen
		tok.Literal = "("
		l.readChar()
		return tok, nil
	case ')':
		tok.Kind = RightParen
		tok.Literal = ")"
		l.readChar()
		return tok, nil
	case '"':
		return l.readString(tok)
	default:
		tok.Kind = Atom
		tok.Literal = l.readAtom()
		return tok, nil
	}
}

// Tokenize drains the lexer into a slice terminated by the EOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

// readChar reads the next character.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.eof = true
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// readAtom reads a maximal run of atom characters.
func (l *Lexer) readAtom() string {
	position := l.position
	for l.ch != 0 && !isWhitespace(l.ch) && l.ch != '(' && l.ch != ')' && l.ch != ';' {
		l.readChar()
	}
	return string(l.input[position:l.position])
}

// readString reads a double-quoted string literal. There is no escape
// processing; the literal ends at the next quote. Newlines inside a
// string and EOF before the closing quote are fatal.
func (l *Lexer) readString(tok Token) (Token, error) {
	l.readChar() // consume opening quote
	position := l.position
	for {
		switch l.ch {
		case '"':
			tok.Kind = String
			tok.Literal = string(l.input[position:l.position])
			l.readChar() // consume closing quote
			return tok, nil
		case '\n':
			return tok, diag.Errorf(diag.Lexical, tok.File, tok.Line, tok.Column,
				"string literal contains a newline")
		case 0:
			return tok, diag.Errorf(diag.Lexical, tok.File, tok.Line, tok.Column,
				"unterminated string literal")
		}
		l.readChar()
	}
}

// skipWhitespaceAndComments skips whitespace, `;` line comments and
// `;*` ... `*;` block comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case isWhitespace(l.ch):
			l.readChar()
		case l.ch == ';':
			if l.peekChar() == '*' {
				l.skipBlockComment()
			} else {
				l.skipLineComment()
			}
		default:
			return
		}
	}
}

// skipLineComment skips a `;` comment up to (not including) the newline.
func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// skipBlockComment skips a `;*` comment terminated by `*;`. An unterminated
// block comment simply runs to end of input, matching the legacy tools.
func (l *Lexer) skipBlockComment() {
	l.readChar() // consume ;
	l.readChar() // consume *
	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == ';' {
			l.readChar() // consume *
			l.readChar() // consume ;
			return
		}
		l.readChar()
	}
}

// isWhitespace checks if a character is whitespace.
func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
