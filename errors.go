// errors.go: error taxonomy and caret-snippet rendering.
//
// Three positional error kinds cross the public boundary: *LexError and
// *ParseError from the front end, and *RuntimeError from evaluation. All
// carry 1-based Line/Col and can be rendered as a caret-annotated snippet by
// WrapErrorWithName. Runtime faults additionally wrap a cause, so embedders
// can detect the two typed conditions with errors.As:
//
//   - *ReferenceError: reading or writing through an unresolvable reference.
//   - *ConversionError: host-native conversion attempted on a callable.
//
// Inside the evaluator, runtime faults are raised as panics carrying rtErr
// and are unwound exactly once, at the Interpreter's Eval* boundary. Abrupt
// completions (break/continue/return) are never errors; they travel through
// the Completion protocol only.
package scope

import (
	"fmt"
	"strings"
)

// ReferenceError reports resolution of an unresolvable Reference, or a write
// through something that cannot accept one (e.g. a primitive string base).
type ReferenceError struct {
	Msg string
}

func (e *ReferenceError) Error() string { return "ReferenceError: " + e.Msg }

// ConversionError reports a ToNative call on a value that has no host-native
// representation (interpreted and native functions).
type ConversionError struct {
	Msg string
}

func (e *ConversionError) Error() string { return "ConversionError: " + e.Msg }

// LexError is produced by the scanner. Col is 0-based (rendered 1-based).
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// ParseError is produced by the parser. Col is 0-based (rendered 1-based).
// Incomplete marks errors raised at end of input, where more source could
// still make the program valid; the REPL uses it to keep reading.
type ParseError struct {
	Line       int
	Col        int
	Msg        string
	Incomplete bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// IsIncomplete reports whether err is a parse error at end of input.
func IsIncomplete(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.Incomplete
}

// RuntimeError is the error form of an evaluation fault. Line/Col are
// 1-based; zero means the failing node carried no position. Snippet, when
// set by WrapErrorWithName, is the fully rendered caret view.
type RuntimeError struct {
	Line    int
	Col     int
	Msg     string
	Snippet string
	Err     error // optional cause (*ReferenceError, *ConversionError, ...)
}

func (e *RuntimeError) Error() string {
	if e.Snippet != "" {
		return e.Snippet
	}
	if e.Line > 0 {
		return fmt.Sprintf("RUNTIME ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
	}
	return "RUNTIME ERROR: " + e.Msg
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// ---- internal raise/unwind -------------------------------------------------

// rtErr is the panic payload used to abort evaluation. It is converted to a
// *RuntimeError by the recover at the Interpreter boundary.
type rtErr struct {
	line int
	col  int
	err  error
}

// fail aborts the current evaluation with a plain runtime fault.
func fail(format string, args ...any) {
	panic(rtErr{err: fmt.Errorf(format, args...)})
}

// failAt aborts with a source position attached.
func failAt(pos Pos, format string, args ...any) {
	panic(rtErr{line: pos.Line, col: pos.Col, err: fmt.Errorf(format, args...)})
}

// failRef aborts with a *ReferenceError cause.
func failRef(format string, args ...any) {
	panic(rtErr{err: &ReferenceError{Msg: fmt.Sprintf(format, args...)}})
}

// ---- pretty rendering --------------------------------------------------------

// WrapErrorWithSource is WrapErrorWithName without a source name.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName augments lex/parse/runtime errors with a caret-annotated
// snippet of src. Other errors pass through unchanged.
func WrapErrorWithName(err error, srcName, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", prettySnippet(src, "LEXICAL ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", prettySnippet(src, "PARSE ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *RuntimeError:
		if e.Line == 0 {
			return err
		}
		snip := prettySnippet(src, "RUNTIME ERROR", srcName, e.Line, e.Col, e.Msg)
		return &RuntimeError{Line: e.Line, Col: e.Col, Msg: e.Msg, Snippet: snip, Err: e.Err}
	default:
		return err
	}
}

// prettySnippet builds a Python-like snippet with a header and a caret. It
// shows at most one previous and one next line. Coordinates are 1-based and
// clamped to the source bounds.
func prettySnippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
