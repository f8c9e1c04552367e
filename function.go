// function.go: callable values and the activation protocol.
//
// Three callable shapes share one calling convention, so call sites cannot
// tell them apart: interpreted Functions, NativeFunctions that receive
// (this, args), and StaticNativeFunctions that receive the positional
// arguments pre-unpacked.
package scope

// Node is the evaluable capability every AST node exposes. The runtime
// consumes it polymorphically; parser.go is the collaborator that builds
// trees of them.
type Node interface {
	Evaluate(ctx *ExecutionContext) Completion
}

// RefNode is the reference-producing form exposed by identifier and
// member-access nodes, consumed by GetValue/PutValue.
type RefNode interface {
	Node
	EvaluateRef(ctx *ExecutionContext) *Reference
}

// Callable is the uniform calling convention. callerScope, when non-nil,
// threads a dynamic-scope overlay into the callee (interpreted functions
// only; natives ignore it).
type Callable interface {
	Call(this Value, args []Value, callerScope *ExecutionContext) Value
}

// Function is an interpreted function: parameter names, a body owned by the
// parser collaborator, the defining-time scope captured at construction, and
// an optional horizontal scope attached per call. DeclaredVars are the names
// declared with var anywhere in the body (excluding nested functions); every
// activation starts with them bound to Undefined.
type Function struct {
	Parameters   []string
	Body         Node
	Scope        *ExecutionContext
	Horizontal   *ExecutionContext
	DeclaredVars []string
}

// NewFunction captures the defining scope. The body node is shared with the
// collaborator that built it.
func NewFunction(parameters []string, body Node, scope *ExecutionContext, declaredVars []string) *Function {
	return &Function{
		Parameters:   parameters,
		Body:         body,
		Scope:        scope,
		DeclaredVars: declaredVars,
	}
}

// Call activates the function. A non-nil callerScope becomes the function's
// horizontal scope for this and all subsequent calls through this value (a
// shared attachment point, not per-call-isolated; reattaching concurrently
// is undefined, though the runtime is single-threaded anyway). The body's
// Return completion unwraps to the call result; normal fallthrough yields
// Undefined. Break/Continue escaping a body is a collaborator bug.
func (f *Function) Call(this Value, args []Value, callerScope *ExecutionContext) Value {
	if callerScope != nil {
		f.Horizontal = callerScope
	}
	ctx := f.prepareContext(this, args)
	result := f.Body.Evaluate(ctx)
	if result.Type == CTReturn {
		if !result.HasValue() {
			return Undefined
		}
		return result.Value
	}
	return Undefined
}

// prepareContext builds the activation record: declared vars and parameters
// bound to Undefined, parameters overwritten positionally, extra arguments
// retained only in the arguments collection.
func (f *Function) prepareContext(this Value, args []Value) *ExecutionContext {
	locals := make(map[string]Value, len(f.DeclaredVars)+len(f.Parameters)+2)
	for _, name := range f.DeclaredVars {
		locals[name] = Undefined
	}
	for _, name := range f.Parameters {
		locals[name] = Undefined
	}
	for i, name := range f.Parameters {
		if i >= len(args) {
			break
		}
		locals[name] = args[i]
	}
	locals["arguments"] = ArrayVal(NewArray(args...))
	locals["this"] = this
	return NewExecutionContext(locals, f.Scope, f.Horizontal)
}

// NativeFunction wraps a host function receiving the callee's this and the
// full argument sequence.
type NativeFunction struct {
	F func(this Value, args []Value) Value
}

// NewNativeFunction wraps f as a callable value.
func NewNativeFunction(f func(this Value, args []Value) Value) *NativeFunction {
	return &NativeFunction{F: f}
}

func (n *NativeFunction) Call(this Value, args []Value, _ *ExecutionContext) Value {
	return n.F(this, args)
}

// StaticNativeFunction wraps a host function that ignores this and takes the
// positional arguments pre-unpacked. Convenient for bridging simple host
// functions (see builtin_math.go).
type StaticNativeFunction struct {
	F func(args ...Value) Value
}

// NewStaticNativeFunction wraps f as a callable value.
func NewStaticNativeFunction(f func(args ...Value) Value) *StaticNativeFunction {
	return &StaticNativeFunction{F: f}
}

func (n *StaticNativeFunction) Call(_ Value, args []Value, _ *ExecutionContext) Value {
	return n.F(args...)
}

// unary1 adapts a float->float host function into a StaticNativeFunction
// value, the common Math bridge shape.
func unary1(name string, f func(float64) float64) Value {
	return NativeVal(NewStaticNativeFunction(func(args ...Value) Value {
		arg := Undefined
		if len(args) > 0 {
			arg = args[0]
		}
		return Number(f(asNumber(arg, name)))
	}))
}

// callableOf extracts the Callable from a value, if it has one.
func callableOf(v Value) (Callable, bool) {
	switch v.Tag {
	case VTFunction:
		return v.Data.(*Function), true
	case VTNative:
		return v.Data.(Callable), true
	default:
		return nil, false
	}
}
