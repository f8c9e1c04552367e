package scope

import (
	"math"
	"strings"
	"testing"
)

func evalNum(t *testing.T, src string) float64 {
	t.Helper()
	v := evalSrc(t, src)
	if v.Tag != VTNumber {
		t.Fatalf("eval(%q): want number, got %#v", src, v)
	}
	return v.Data.(float64)
}

func wantClose(t *testing.T, src string, want float64) {
	t.Helper()
	got := evalNum(t, src)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("eval(%q) = %v, want %v", src, got, want)
	}
}

func TestMathConstants(t *testing.T) {
	wantClose(t, `Math.PI`, math.Pi)
	wantClose(t, `Math.E`, math.E)
}

func TestMathUnary(t *testing.T) {
	wantClose(t, `Math.abs(-3.5)`, 3.5)
	wantClose(t, `Math.ceil(1.2)`, 2)
	wantClose(t, `Math.ceil(-1.2)`, -1)
	wantClose(t, `Math.cbrt(27)`, 3)
	wantClose(t, `Math.exp(0)`, 1)
	wantClose(t, `Math.exp(1)`, math.E)
	wantClose(t, `Math.cos(0)`, 1)
	wantClose(t, `Math.sin(Math.PI / 2)`, 1)
	wantClose(t, `Math.atan(1)`, math.Pi/4)
	wantClose(t, `Math.acos(1)`, 0)
	wantClose(t, `Math.asin(1)`, math.Pi/2)
	wantClose(t, `Math.cosh(0)`, 1)
	wantClose(t, `Math.acosh(1)`, 0)
	wantClose(t, `Math.asinh(0)`, 0)
	wantClose(t, `Math.atanh(0)`, 0)
}

func TestMathAtan2(t *testing.T) {
	wantClose(t, `Math.atan2(1, 1)`, math.Pi/4)
	wantClose(t, `Math.atan2(-1, -1)`, -3*math.Pi/4)
}

func TestMathPow(t *testing.T) {
	wantClose(t, `Math.pow(2, 10)`, 1024)
	wantClose(t, `Math.pow(4, 0.5)`, 2)
	wantClose(t, `Math.pow(2, -2)`, 0.25)
	// zero to a negative power overflows to Infinity
	v := evalSrc(t, `Math.pow(0, -1)`)
	if !math.IsInf(v.Data.(float64), 1) {
		t.Fatalf("Math.pow(0, -1) = %#v, want Infinity", v)
	}
}

func TestMathDomainEdges(t *testing.T) {
	if !math.IsNaN(evalNum(t, `Math.acos(2)`)) {
		t.Fatal("Math.acos(2) should be NaN")
	}
	if !math.IsNaN(evalNum(t, `Math.asin(-2)`)) {
		t.Fatal("Math.asin(-2) should be NaN")
	}
}

func TestMathMissingArgumentFaults(t *testing.T) {
	err := evalErr(t, `Math.abs()`)
	if !strings.Contains(err.Error(), "Math.abs") {
		t.Fatalf("want named fault, got: %v", err)
	}
}

func TestMathNonNumericArgumentFaults(t *testing.T) {
	err := evalErr(t, `Math.pow("2", 2)`)
	if !strings.Contains(err.Error(), "Math.pow") {
		t.Fatalf("want named fault, got: %v", err)
	}
}

func TestMathFunctionsAreFirstClass(t *testing.T) {
	wantClose(t, `var f = Math.ceil; f(0.1)`, 1)
	wantClose(t, `[Math.abs, Math.ceil][0](-2)`, 2)
}
