package scope

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorHeaders(t *testing.T) {
	le := &LexError{Line: 2, Col: 4, Msg: "bad"}
	if got := le.Error(); got != "LEXICAL ERROR at 2:5: bad" {
		t.Fatalf("LexError = %q", got)
	}
	pe := &ParseError{Line: 1, Col: 0, Msg: "oops"}
	if got := pe.Error(); got != "PARSE ERROR at 1:1: oops" {
		t.Fatalf("ParseError = %q", got)
	}
	re := &RuntimeError{Line: 3, Col: 7, Msg: "boom"}
	if got := re.Error(); got != "RUNTIME ERROR at 3:7: boom" {
		t.Fatalf("RuntimeError = %q", got)
	}
	re = &RuntimeError{Msg: "no position"}
	if got := re.Error(); got != "RUNTIME ERROR: no position" {
		t.Fatalf("RuntimeError without position = %q", got)
	}
}

func TestRuntimeErrorUnwrap(t *testing.T) {
	cause := &ReferenceError{Msg: "x is gone"}
	re := &RuntimeError{Msg: cause.Error(), Err: cause}
	var ref *ReferenceError
	if !errors.As(re, &ref) {
		t.Fatal("errors.As should reach the ReferenceError cause")
	}
}

func TestWrapParseErrorSnippet(t *testing.T) {
	src := "var a = 1;\nvar = 2;\nvar c = 3;"
	_, err := Parse(src)
	if err == nil {
		t.Fatal("want parse error")
	}
	wrapped := WrapErrorWithName(err, "test.sco", src)
	msg := wrapped.Error()
	for _, want := range []string{
		"PARSE ERROR in test.sco at 2:",
		"var = 2;",
		"var a = 1;", // previous line shown
		"var c = 3;", // next line shown
		"^",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("snippet missing %q:\n%s", want, msg)
		}
	}
}

func TestWrapRuntimeErrorKeepsType(t *testing.T) {
	src := "var n = 1;\nn()"
	_, err := NewInterpreter().EvalSource(src)
	wrapped := WrapErrorWithSource(err, src)

	re, ok := wrapped.(*RuntimeError)
	if !ok {
		t.Fatalf("want *RuntimeError after wrapping, got %T", wrapped)
	}
	if !strings.Contains(re.Error(), "n()") || !strings.Contains(re.Error(), "^") {
		t.Fatalf("snippet not rendered:\n%s", re.Error())
	}
	if re.Line != 2 {
		t.Fatalf("line = %d, want 2", re.Line)
	}
}

func TestWrapPositionlessRuntimeErrorPassesThrough(t *testing.T) {
	re := &RuntimeError{Msg: "no position"}
	if got := WrapErrorWithSource(re, "src"); got != error(re) {
		t.Fatalf("positionless error should pass through, got %v", got)
	}
}

func TestWrapUnknownErrorPassesThrough(t *testing.T) {
	plain := errors.New("plain")
	if got := WrapErrorWithSource(plain, "src"); got != plain {
		t.Fatalf("unrelated error should pass through, got %v", got)
	}
}

func TestSnippetClampsOutOfRangePositions(t *testing.T) {
	got := prettySnippet("only line", "RUNTIME ERROR", "", 99, 99, "late")
	if !strings.Contains(got, "only line") {
		t.Fatalf("clamped snippet should show the last line:\n%s", got)
	}
}
