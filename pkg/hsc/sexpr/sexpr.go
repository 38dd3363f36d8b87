// Package sexpr builds S-expression forests out of token streams. No
// semantic interpretation happens here: a `(script ...)` and a `(set ...)`
// are structurally identical lists at this stage.
package sexpr

import (
	"github.com/SnowyMouse/riat/pkg/hsc/diag"
	"github.com/SnowyMouse/riat/pkg/hsc/lexer"
)

// Expression is either an atom or a parenthesized list. Expressions are
// read-only once built.
type Expression struct {
	// Children is nil for atoms. For lists it holds the ordered child
	// expressions; an empty list never occurs (it is a syntax error).
	Children []Expression

	// Literal holds the atom or string-literal text. Empty for lists.
	Literal string

	// Quoted is true if the expression came from a string-literal token.
	Quoted bool

	// Position of the atom, or of the opening paren for lists.
	File   string
	Line   int
	Column int
}

// IsAtom reports whether the expression is an atom.
func (e *Expression) IsAtom() bool {
	return e.Children == nil
}

// Build consumes the token stream for one file and produces the ordered
// top-level expression forest. The stream must be terminated by an EOF
// token, as produced by lexer.Tokenize.
func Build(tokens []lexer.Token) ([]Expression, error) {
	var forest []Expression

	// Stack of open lists; stack[0] does not exist, the top level appends
	// straight to forest.
	var stack []Expression

	push := func(expr Expression) {
		if len(stack) == 0 {
			forest = append(forest, expr)
		} else {
			top := &stack[len(stack)-1]
			top.Children = append(top.Children, expr)
		}
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case lexer.LeftParen:
			stack = append(stack, Expression{
				Children: []Expression{},
				File:     tok.File,
				Line:     tok.Line,
				Column:   tok.Column,
			})

		case lexer.RightParen:
			if len(stack) == 0 {
				return nil, diag.Errorf(diag.Syntax, tok.File, tok.Line, tok.Column,
					"unexpected ')'")
			}
			done := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(done.Children) == 0 {
				return nil, diag.Errorf(diag.Syntax, done.File, done.Line, done.Column,
					"empty expression")
			}
			push(done)

		case lexer.Atom:
			push(Expression{
				Literal: tok.Literal,
				File:    tok.File,
				Line:    tok.Line,
				Column:  tok.Column,
			})

		case lexer.String:
			push(Expression{
				Literal: tok.Literal,
				Quoted:  true,
				File:    tok.File,
				Line:    tok.Line,
				Column:  tok.Column,
			})

		case lexer.EOF:
			if len(stack) > 0 {
				earliest := stack[0]
				return nil, diag.Errorf(diag.Syntax, earliest.File, earliest.Line, earliest.Column,
					"unbalanced parentheses: '(' is never closed")
			}
			return forest, nil
		}
	}

	// Token streams from lexer.Tokenize always end in EOF; reaching here
	// means the caller truncated the stream.
	return nil, diag.Errorf(diag.Syntax, "", 0, 0, "token stream missing EOF")
}
