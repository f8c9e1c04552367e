// interp.go: the embedding surface.
//
// An Interpreter owns a global context seeded with the host bridges (console,
// Math) and exposes two evaluation entry points: EvalSource runs a program in
// a throwaway child context, EvalPersistentSource runs it directly in the
// global context so declarations survive into later calls (the REPL uses
// this). Runtime faults raised as rtErr panics inside the evaluator are
// recovered exactly once here and surface as *RuntimeError values.
package scope

import (
	"io"
	"os"
)

// Interpreter is the top-level runtime handle. It is not safe for concurrent
// use; embedders wanting parallel evaluation create one per goroutine.
type Interpreter struct {
	Global *ExecutionContext
	out    io.Writer
}

// NewInterpreter builds an interpreter printing to stdout.
func NewInterpreter() *Interpreter {
	return NewInterpreterWithOutput(os.Stdout)
}

// NewInterpreterWithOutput builds an interpreter whose console.log writes to
// out. Tests pass a bytes.Buffer here.
func NewInterpreterWithOutput(out io.Writer) *Interpreter {
	ip := &Interpreter{out: out}
	globals := map[string]Value{
		"console":   ObjectVal(NewConsole(out)),
		"Math":      ObjectVal(NewMathObject()),
		"String":    NativeVal(NewStaticNativeFunction(stringCtor)),
		"undefined": Undefined,
		"this":      Undefined,
	}
	ip.Global = NewExecutionContext(globals, nil, nil)
	return ip
}

// Define installs a host binding in the global context. Embedders use this
// to expose their own native functions and values to scripts.
func (ip *Interpreter) Define(name string, v Value) {
	ip.Global.Declare(name, v)
}

// EvalSource parses and evaluates src in a fresh child of the global
// context. Declarations made by src are discarded afterwards.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	prog, err := Parse(src)
	if err != nil {
		return Undefined, err
	}
	return ip.eval(prog, NewChildContext(ip.Global))
}

// EvalPersistentSource parses and evaluates src directly in the global
// context, so its declarations remain visible to later evaluations.
func (ip *Interpreter) EvalPersistentSource(src string) (Value, error) {
	prog, err := Parse(src)
	if err != nil {
		return Undefined, err
	}
	return ip.eval(prog, ip.Global)
}

// Eval evaluates an already-parsed program in a fresh child context.
func (ip *Interpreter) Eval(prog *Program) (Value, error) {
	return ip.eval(prog, NewChildContext(ip.Global))
}

// CallFunction invokes a script function value from host code, recovering
// runtime faults the same way Eval* does.
func (ip *Interpreter) CallFunction(fn Value, this Value, args ...Value) (v Value, err error) {
	c, ok := callableOf(fn)
	if !ok {
		return Undefined, &RuntimeError{Msg: TypeName(fn) + " is not a function"}
	}
	defer recoverRuntime(&err)
	return c.Call(this, args, nil), nil
}

func (ip *Interpreter) eval(prog *Program, ctx *ExecutionContext) (v Value, err error) {
	defer recoverRuntime(&err)
	c := prog.Evaluate(ctx)
	if c.Type != CTNormal {
		// break/continue/return leaking past a program is a front-end bug;
		// the parser rejects them outside their constructs.
		return Undefined, &RuntimeError{Msg: "illegal " + c.Type.String() + " completion at top level"}
	}
	if !c.HasValue() {
		return Undefined, nil
	}
	return c.Value, nil
}

// stringCtor builds a mutable string wrapper: String("abc") yields a text
// container whose indices accept assignment.
func stringCtor(args ...Value) Value {
	if len(args) == 0 {
		return StringObjVal(NewStringObject(""))
	}
	return StringObjVal(NewStringObject(DisplayString(args[0])))
}

// recoverRuntime converts an rtErr panic into a *RuntimeError. Any other
// panic is a genuine bug and keeps propagating.
func recoverRuntime(err *error) {
	r := recover()
	if r == nil {
		return
	}
	re, ok := r.(rtErr)
	if !ok {
		panic(r)
	}
	*err = &RuntimeError{Line: re.line, Col: re.col, Msg: re.err.Error(), Err: re.err}
}
