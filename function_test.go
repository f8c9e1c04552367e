package scope

import (
	"strings"
	"testing"
)

func TestMissingArgumentsAreUndefined(t *testing.T) {
	wantText(t, evalSrc(t, `function f(a, b) { return typeof b; } f(1)`), "undefined")
	wantText(t, evalSrc(t, `function f(a) { return typeof a; } f()`), "undefined")
}

func TestExtraArgumentsOnlyInArguments(t *testing.T) {
	wantNum(t, evalSrc(t, `function f(a) { return arguments.length; } f(1, 2, 3)`), 3)
	wantNum(t, evalSrc(t, `function f(a) { return arguments[2]; } f(1, 2, 30)`), 30)
}

func TestReturnUnwrapsAtCallBoundary(t *testing.T) {
	wantNum(t, evalSrc(t, `function f() { return 1; return 2; } f()`), 1)
	wantUndefined(t, evalSrc(t, `function f() { return; } f()`))
	wantUndefined(t, evalSrc(t, `function f() { 42; } f()`))
	// return escapes any loop depth
	src := `
		function find() {
			for (var i = 0; i < 10; i++) {
				while (true) { return i + 100; }
			}
		}
		find()
	`
	wantNum(t, evalSrc(t, src), 100)
}

func TestClosuresCaptureDefiningScope(t *testing.T) {
	src := `
		function makeCounter() {
			var n = 0;
			return function() { n += 1; return n; };
		}
		var c = makeCounter();
		c(); c(); c()
	`
	wantNum(t, evalSrc(t, src), 3)
}

func TestClosuresAreIndependent(t *testing.T) {
	src := `
		function makeCounter() {
			var n = 0;
			return function() { n += 1; return n; };
		}
		var a = makeCounter(), b = makeCounter();
		a(); a();
		b()
	`
	wantNum(t, evalSrc(t, src), 1)
}

func TestRecursion(t *testing.T) {
	src := `
		function fib(n) { return n < 2 ? n : fib(n - 1) + fib(n - 2); }
		fib(10)
	`
	wantNum(t, evalSrc(t, src), 55)
}

func TestNamedFunctionExpression(t *testing.T) {
	wantNum(t, evalSrc(t, `var f = function g(n) { return n <= 1 ? 1 : n * g(n - 1); }; f(5)`), 120)
}

func TestDeclaredVarsStartUndefined(t *testing.T) {
	// a var declared later in the body already reads as a local
	src := `
		var x = "outer";
		function f() {
			var before = typeof x;
			var x = "inner";
			return before;
		}
		f()
	`
	wantText(t, evalSrc(t, src), "undefined")
}

func TestVarsDoNotLeakOutOfFunctions(t *testing.T) {
	wantText(t, evalSrc(t, `function f() { var hidden = 1; } f(); typeof hidden`), "undefined")
}

func TestUndeclaredAssignmentStaysInActivation(t *testing.T) {
	// without a horizontal attachment, an undeclared assignment lands in the
	// activation record and is discarded with it
	src := `
		function f() { leak = 7; }
		f();
		typeof leak
	`
	wantText(t, evalSrc(t, src), "undefined")
}

func TestUndeclaredAssignmentUpdatesExistingOuter(t *testing.T) {
	src := `
		var counter = 0;
		function bump() { counter = counter + 1; }
		bump(); bump();
		counter
	`
	wantNum(t, evalSrc(t, src), 2)
}

// --- dynamic-scope overlay (host-side attachment) ------------------------------

func makeOverlayFn(t *testing.T, ip *Interpreter, src string) *Function {
	t.Helper()
	v := mustEvalPersistent(t, ip, src)
	if v.Tag != VTFunction {
		t.Fatalf("want function value, got %#v", v)
	}
	return v.Data.(*Function)
}

func TestHorizontalOverlayRead(t *testing.T) {
	ip := NewInterpreter()
	fn := makeOverlayFn(t, ip, `function f() { return probe; } f`)

	overlay := NewExecutionContext(map[string]Value{"probe": Str("seen")}, nil, nil)
	wantStr(t, fn.Call(Undefined, nil, overlay), "seen")
}

func TestHorizontalOverlayAbsorbsWrites(t *testing.T) {
	ip := NewInterpreter()
	fn := makeOverlayFn(t, ip, `function f() { ambient = 42; } f`)

	overlay := NewChildContext(nil)
	fn.Call(Undefined, nil, overlay)
	wantNum(t, overlay.Lookup("ambient"), 42)
}

func TestHorizontalOverlayDoesNotShadowLocals(t *testing.T) {
	ip := NewInterpreter()
	fn := makeOverlayFn(t, ip, `function f(x) { return x; } f`)

	overlay := NewExecutionContext(map[string]Value{"x": Str("overlay")}, nil, nil)
	wantNum(t, fn.Call(Undefined, []Value{Number(1)}, overlay), 1)
}

func TestHorizontalAttachmentPersistsAcrossCalls(t *testing.T) {
	ip := NewInterpreter()
	fn := makeOverlayFn(t, ip, `function f() { return probe; } f`)

	overlay := NewExecutionContext(map[string]Value{"probe": Str("seen")}, nil, nil)
	wantStr(t, fn.Call(Undefined, nil, overlay), "seen")
	// nil callerScope keeps the previous attachment
	wantStr(t, fn.Call(Undefined, nil, nil), "seen")

	replacement := NewExecutionContext(map[string]Value{"probe": Str("swapped")}, nil, nil)
	wantStr(t, fn.Call(Undefined, nil, replacement), "swapped")
}

// --- native callables ---------------------------------------------------------

func TestNativeFunctionReceivesThis(t *testing.T) {
	ip := NewInterpreter()
	o := NewObject()
	o.Set("name", Str("host"))
	o.Set("who", NativeVal(NewNativeFunction(func(this Value, _ []Value) Value {
		return this.Data.(*Object).Get("name")
	})))
	ip.Define("obj", ObjectVal(o))

	v, err := ip.EvalSource(`obj.who()`)
	if err != nil {
		t.Fatal(err)
	}
	wantStr(t, v, "host")
}

func TestStaticNativeFunctionIgnoresThis(t *testing.T) {
	ip := NewInterpreter()
	ip.Define("sum", NativeVal(NewStaticNativeFunction(func(args ...Value) Value {
		total := 0.0
		for _, a := range args {
			total += asNumber(a, "sum")
		}
		return Number(total)
	})))

	v, err := ip.EvalSource(`sum(1, 2, 3)`)
	if err != nil {
		t.Fatal(err)
	}
	wantNum(t, v, 6)
}

func TestNativeIndistinguishableFromScript(t *testing.T) {
	// natives flow through the same call protocol: assignment, typeof,
	// reassignment into containers
	src := `
		var grabbed = Math.abs;
		var box = {op: grabbed};
		typeof box.op == "function" ? box.op(-3) : -1
	`
	wantNum(t, evalSrc(t, src), 3)
}

func TestNativeFaultsSurfaceAsRuntimeErrors(t *testing.T) {
	err := evalErr(t, `Math.abs("not a number")`)
	if !strings.Contains(err.Error(), "Math.abs") {
		t.Fatalf("fault should name the operation, got: %v", err)
	}
}
