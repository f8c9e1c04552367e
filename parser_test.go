package scope

import (
	"strings"
	"testing"
)

func parseOK(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return prog
}

func parseFail(t *testing.T, src string) *ParseError {
	t.Helper()
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("Parse(%q): want error, got none", src)
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("Parse(%q): want *ParseError, got %T: %v", src, err, err)
	}
	return pe
}

func TestParseStatements(t *testing.T) {
	for _, src := range []string{
		`var x = 1;`,
		`var a, b = 2, c;`,
		`x = 1`,
		`;`,
		`{ 1; 2; }`,
		`if (x) y = 1;`,
		`if (x) { y = 1; } else { y = 2; }`,
		`while (x) x -= 1;`,
		`do x += 1; while (x < 10);`,
		`for (var i = 0; i < 10; i++) {}`,
		`for (;;) break;`,
		`for (i = 0; i < 3; ++i) continue;`,
		`for (var k in obj) {}`,
		`for (k in obj) {}`,
		`function f(a, b) { return a + b; }`,
		`loop: while (true) break loop;`,
		`label: { break label; }`,
		`return 1;`,
	} {
		parseOK(t, src)
	}
}

func TestParseExpressionsEvaluate(t *testing.T) {
	// precedence and associativity, checked by evaluation
	wantNum(t, evalSrc(t, `2 + 3 * 4`), 14)
	wantNum(t, evalSrc(t, `2 * 3 + 4`), 10)
	wantNum(t, evalSrc(t, `2 + 8 / 4 - 1`), 3)
	wantBool(t, evalSrc(t, `1 + 1 == 2 && 2 < 3`), true)
	wantNum(t, evalSrc(t, `(1 | 2) == 2 ? 1 : 3 & 7`), 3)
	wantNum(t, evalSrc(t, `1 << 2 + 1`), 8) // additive binds tighter than shift
	wantNum(t, evalSrc(t, `100 - 10 - 1`), 89)
	wantBool(t, evalSrc(t, `!true == false`), true)
	wantNum(t, evalSrc(t, `-2 * -3`), 6)
}

func TestParseOptionalSemicolons(t *testing.T) {
	wantUndefined(t, evalSrc(t, `var x = 1`)) // declaration yields no value
	wantNum(t, evalSrc(t, "var x = 1\nx + 1"), 2)
	wantNum(t, evalSrc(t, `{ var x = 2; x }`), 2)
}

func TestParseCallMemberChains(t *testing.T) {
	src := `
		var o = {list: [function(n) { return {v: n * 2}; }]};
		o.list[0](21).v
	`
	wantNum(t, evalSrc(t, src), 42)
}

func TestParseReservedWords(t *testing.T) {
	for _, src := range []string{
		`new Thing()`,
		`a instanceof b`,
		`debugger;`,
		`scope (x) { }`,
		`var f = a <- b;`,
		`g -> h`,
	} {
		pe := parseFail(t, src)
		if !strings.Contains(pe.Msg, "reserved") {
			t.Errorf("Parse(%q): msg = %q, want reserved-word diagnostic", src, pe.Msg)
		}
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	pe := parseFail(t, `1 = 2`)
	if !strings.Contains(pe.Msg, "assignment") {
		t.Fatalf("msg = %q", pe.Msg)
	}
	parseFail(t, `a + b = 3`)
	parseFail(t, `f() += 1`)
}

func TestParseErrorsCarryPosition(t *testing.T) {
	pe := parseFail(t, "var x = 1;\nvar = 2;")
	if pe.Line != 2 {
		t.Fatalf("error at line %d, want 2", pe.Line)
	}
}

func TestParseIncomplete(t *testing.T) {
	for _, src := range []string{
		`function f() {`,
		`if (x) {`,
		`var x = `,
		`while (true`,
		`o.`,
	} {
		_, err := Parse(src)
		if !IsIncomplete(err) {
			t.Errorf("Parse(%q): want incomplete, got %v", src, err)
		}
	}
	// a genuinely broken mid-input program is not incomplete
	_, err := Parse(`var 1 = x;`)
	if err == nil || IsIncomplete(err) {
		t.Fatalf("want a hard parse error, got %v", err)
	}
}

func TestParseForInDisambiguation(t *testing.T) {
	// "in" as an operator still works inside parenthesized for-init
	wantNum(t, evalSrc(t, `
		var o = {a: 1};
		var n = 0;
		for (var found = ("a" in o); found; found = false) n++;
		n
	`), 1)
}

func TestParseDeclaredVarsCollected(t *testing.T) {
	prog := parseOK(t, `
		function f() {
			var a = 1;
			if (a) { var b = 2; }
			function inner() { var hidden = 3; }
			var c;
		}
	`)
	decl, ok := prog.Body[0].(*FunctionDecl)
	if !ok {
		t.Fatalf("want *FunctionDecl, got %T", prog.Body[0])
	}
	got := strings.Join(decl.Fn.DeclaredVars, ",")
	if got != "a,b,c" {
		t.Fatalf("DeclaredVars = %q, want a,b,c", got)
	}
}

func TestParseObjectLiteralKeys(t *testing.T) {
	wantNum(t, evalSrc(t, `({ident: 1}).ident`), 1)
	wantNum(t, evalSrc(t, `({"quoted key": 2})["quoted key"]`), 2)
	wantNum(t, evalSrc(t, `({3.5: 4})[3.5]`), 4)
	wantNum(t, evalSrc(t, `({a: 1, b: 2,}).b`), 2) // trailing comma
}

func TestParseArrayLiteralTrailingComma(t *testing.T) {
	wantNum(t, evalSrc(t, `[1, 2, 3,].length`), 3)
}
