// Package diag provides structured errors and warnings for the HSC
// compilation pipeline. Every diagnostic carries the originating file name
// and the 1-based line and column of the token it refers to.
package diag

import "fmt"

// Class categorizes a fatal compile error.
type Class int

// Error classes
const (
	// Lexical errors: unterminated string, stray character.
	Lexical Class = iota

	// Syntax errors: unbalanced parentheses, malformed top-level form.
	Syntax

	// Declaration errors: duplicate script/global name, bad declaration shape.
	Declaration

	// Resolution errors: unknown symbol, unknown function.
	Resolution

	// Type errors: literal/argument/body type mismatch, wrong arity.
	Type

	// Construction errors: catalog or target setup failure.
	Construction
)

// classNames maps Class to its string representation.
var classNames = map[Class]string{
	Lexical:      "lexical",
	Syntax:       "syntax",
	Declaration:  "declaration",
	Resolution:   "resolution",
	Type:         "type",
	Construction: "construction",
}

// String returns a string representation of the error class.
func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "unknown"
}

// Error is a fatal compile error. Compilation is fail-fast: the first Error
// raised anywhere in the pipeline aborts the whole compile.
type Error struct {
	Class   Class
	File    string
	Line    int
	Column  int
	Message string
}

// Error implements the error interface. Errors with no source position,
// such as construction failures, omit the file:line:col prefix.
func (e *Error) Error() string {
	if e.File == "" {
		return fmt.Sprintf("error: %s", e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: error: %s", e.File, e.Line, e.Column, e.Message)
}

// Errorf creates an Error with a formatted message.
func Errorf(class Class, file string, line, column int, format string, args ...any) *Error {
	return &Error{
		Class:   class,
		File:    file,
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	}
}

// Warning is a non-fatal diagnostic. Warnings accumulate across a compile
// and are returned alongside a successful result; they never abort.
type Warning struct {
	File    string
	Line    int
	Column  int
	Message string
}

// String returns the warning in file:line:col form.
func (w Warning) String() string {
	return fmt.Sprintf("%s:%d:%d: warning: %s", w.File, w.Line, w.Column, w.Message)
}

// Warningf creates a Warning with a formatted message.
func Warningf(file string, line, column int, format string, args ...any) Warning {
	return Warning{
		File:    file,
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	}
}
