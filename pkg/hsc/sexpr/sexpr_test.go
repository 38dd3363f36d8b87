package sexpr

import (
	"testing"

	"github.com/SnowyMouse/riat/pkg/hsc/diag"
	"github.com/SnowyMouse/riat/pkg/hsc/lexer"
)

func buildSource(t *testing.T, source string) ([]Expression, error) {
	t.Helper()
	tokens, err := lexer.New("test.hsc", source).Tokenize()
	if err != nil {
		t.Fatalf("lexing failed: %v", err)
	}
	return Build(tokens)
}

func TestBuildForest(t *testing.T) {
	forest, err := buildSource(t, `(global short x 1) (script startup go (sleep 30))`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forest) != 2 {
		t.Fatalf("forest length wrong. expected=2, got=%d", len(forest))
	}

	global := forest[0]
	if global.IsAtom() {
		t.Fatalf("expected list, got atom %q", global.Literal)
	}
	if len(global.Children) != 4 {
		t.Fatalf("global children wrong. expected=4, got=%d", len(global.Children))
	}
	for i, expected := range []string{"global", "short", "x", "1"} {
		child := global.Children[i]
		if !child.IsAtom() || child.Literal != expected {
			t.Fatalf("children[%d] wrong. expected=%q, got=%q", i, expected, child.Literal)
		}
	}

	script := forest[1]
	if len(script.Children) != 4 {
		t.Fatalf("script children wrong. expected=4, got=%d", len(script.Children))
	}
	body := script.Children[3]
	if body.IsAtom() || len(body.Children) != 2 {
		t.Fatalf("nested list not built: %+v", body)
	}
}

func TestBuildQuotedStrings(t *testing.T) {
	forest, err := buildSource(t, `(print "Hello World")`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	str := forest[0].Children[1]
	if !str.Quoted {
		t.Fatalf("expected quoted expression")
	}
	if str.Literal != "Hello World" {
		t.Fatalf("literal wrong. expected=%q, got=%q", "Hello World", str.Literal)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		input          string
		expectedLine   int
		expectedColumn int
	}{
		{")", 1, 1},
		{"(a))", 1, 4},
		{"()", 1, 1},
		{"(a (b)", 1, 1},
		{"(a (b", 1, 1},
		{"  (", 1, 3},
	}

	for i, tt := range tests {
		_, err := buildSource(t, tt.input)
		if err == nil {
			t.Fatalf("tests[%d] - expected error, got none", i)
		}
		synErr, ok := err.(*diag.Error)
		if !ok {
			t.Fatalf("tests[%d] - expected *diag.Error, got %T", i, err)
		}
		if synErr.Class != diag.Syntax {
			t.Fatalf("tests[%d] - class wrong. expected=%v, got=%v", i, diag.Syntax, synErr.Class)
		}
		if synErr.Line != tt.expectedLine || synErr.Column != tt.expectedColumn {
			t.Fatalf("tests[%d] - position wrong. expected=%d:%d, got=%d:%d",
				i, tt.expectedLine, tt.expectedColumn, synErr.Line, synErr.Column)
		}
	}
}

func TestPositions(t *testing.T) {
	forest, err := buildSource(t, "(a\n  (b c))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outer := forest[0]
	if outer.Line != 1 || outer.Column != 1 {
		t.Fatalf("outer position wrong. got=%d:%d", outer.Line, outer.Column)
	}
	inner := outer.Children[1]
	if inner.Line != 2 || inner.Column != 3 {
		t.Fatalf("inner position wrong. got=%d:%d", inner.Line, inner.Column)
	}
}
