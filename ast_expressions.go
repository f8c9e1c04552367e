// ast_expressions.go: expression nodes.
//
// Every node implements Evaluate(ctx) -> Completion; identifier, member and
// index nodes additionally implement EvaluateRef, producing the Reference
// that assignment and delete consume. Expression evaluation itself never
// yields an abrupt completion: calls unwrap Return internally, and the loop
// signals only exist at statement level.
package scope

import "math"

// Pos is a 1-based source position carried by nodes that can fault at
// runtime.
type Pos struct {
	Line int
	Col  int
}

func tokenPos(t Token) Pos { return Pos{Line: t.Line, Col: t.Col + 1} }

// evalValue evaluates an expression node for its value.
func evalValue(n Node, ctx *ExecutionContext) Value {
	c := n.Evaluate(ctx)
	if c.IsAbrupt() {
		fail("internal: abrupt %s completion in expression", c.Type)
	}
	if !c.HasValue() {
		return Undefined
	}
	return c.Value
}

// propertyBase selects the binding target for property access on v, or nil
// when v cannot be a base (which makes the reference unresolvable).
// Primitive-base access is supported for text only.
func propertyBase(v Value) BindingTarget {
	switch v.Tag {
	case VTObject:
		return v.Data.(*Object)
	case VTArray:
		return v.Data.(*Array)
	case VTStringObject:
		return v.Data.(*StringObject)
	case VTString:
		return stringBase(v.Data.(string))
	default:
		return nil
	}
}

// Literal is a constant value from source text.
type Literal struct {
	Value Value
}

func (n *Literal) Evaluate(_ *ExecutionContext) Completion { return NormalCompletion(n.Value) }

// Ident resolves a name against the scope chain.
type Ident struct {
	Name string
	At   Pos
}

func (n *Ident) Evaluate(ctx *ExecutionContext) Completion {
	return NormalCompletion(n.EvaluateRef(ctx).GetValue())
}

func (n *Ident) EvaluateRef(ctx *ExecutionContext) *Reference {
	return NewReference(n.Name, ctx)
}

// This resolves the implicit this binding.
type This struct {
	At Pos
}

func (n *This) Evaluate(ctx *ExecutionContext) Completion {
	return NormalCompletion(ctx.GetThisReference())
}

// Member is dotted property access: obj.name.
type Member struct {
	Object Node
	Name   string
	At     Pos
}

func (n *Member) Evaluate(ctx *ExecutionContext) Completion {
	return NormalCompletion(n.EvaluateRef(ctx).GetValue())
}

func (n *Member) EvaluateRef(ctx *ExecutionContext) *Reference {
	base := evalValue(n.Object, ctx)
	return NewReference(n.Name, propertyBase(base))
}

// Index is computed property access: obj[key].
type Index struct {
	Object Node
	Key    Node
	At     Pos
}

func (n *Index) Evaluate(ctx *ExecutionContext) Completion {
	return NormalCompletion(n.EvaluateRef(ctx).GetValue())
}

func (n *Index) EvaluateRef(ctx *ExecutionContext) *Reference {
	base := evalValue(n.Object, ctx)
	key := propertyKey(evalValue(n.Key, ctx))
	return NewReference(key, propertyBase(base))
}

// ArrayLit constructs a fresh Array.
type ArrayLit struct {
	Elements []Node
}

func (n *ArrayLit) Evaluate(ctx *ExecutionContext) Completion {
	items := make([]Value, len(n.Elements))
	for i, el := range n.Elements {
		items[i] = evalValue(el, ctx)
	}
	return NormalCompletion(ArrayVal(NewArray(items...)))
}

// ObjectLit constructs a fresh Object. Keys are already normalized strings.
type ObjectLit struct {
	Keys   []string
	Values []Node
}

func (n *ObjectLit) Evaluate(ctx *ExecutionContext) Completion {
	o := NewObject()
	for i, k := range n.Keys {
		o.Set(k, evalValue(n.Values[i], ctx))
	}
	return NormalCompletion(ObjectVal(o))
}

// FunctionLit constructs a Function value capturing the current context as
// its defining scope.
type FunctionLit struct {
	Name         string // informational; empty for anonymous expressions
	Parameters   []string
	Body         Node
	DeclaredVars []string
}

func (n *FunctionLit) Evaluate(ctx *ExecutionContext) Completion {
	return NormalCompletion(FunctionVal(NewFunction(n.Parameters, n.Body, ctx, n.DeclaredVars)))
}

// Call invokes a callable. For member/index callees the base object becomes
// this; plain calls pass Undefined.
type Call struct {
	Callee Node
	Args   []Node
	At     Pos
}

func (n *Call) Evaluate(ctx *ExecutionContext) Completion {
	this := Undefined
	var fv Value
	switch callee := n.Callee.(type) {
	case *Member:
		this = evalValue(callee.Object, ctx)
		fv = NewReference(callee.Name, propertyBase(this)).GetValue()
	case *Index:
		this = evalValue(callee.Object, ctx)
		key := propertyKey(evalValue(callee.Key, ctx))
		fv = NewReference(key, propertyBase(this)).GetValue()
	default:
		fv = evalValue(n.Callee, ctx)
	}
	callable, ok := callableOf(fv)
	if !ok {
		failAt(n.At, "%s is not a function", TypeName(fv))
	}
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = evalValue(a, ctx)
	}
	return NormalCompletion(callable.Call(this, args, nil))
}

// Unary covers ! ~ - + typeof void.
type Unary struct {
	Op      string
	Operand Node
	At      Pos
}

func (n *Unary) Evaluate(ctx *ExecutionContext) Completion {
	v := evalValue(n.Operand, ctx)
	switch n.Op {
	case "!":
		return NormalCompletion(Boolean(!Truthy(v)))
	case "~":
		return NormalCompletion(Number(float64(^toInt32(asNumber(v, "~")))))
	case "-":
		return NormalCompletion(Number(-asNumber(v, "unary -")))
	case "+":
		return NormalCompletion(Number(asNumber(v, "unary +")))
	case "typeof":
		return NormalCompletion(Str(TypeName(v)))
	case "void":
		return NormalCompletion(Undefined)
	default:
		failAt(n.At, "unknown unary operator %q", n.Op)
		return EmptyCompletion
	}
}

// Delete removes an Object property through its reference; anything else
// yields false.
type Delete struct {
	Target Node
	At     Pos
}

func (n *Delete) Evaluate(ctx *ExecutionContext) Completion {
	rn, ok := n.Target.(RefNode)
	if !ok {
		return NormalCompletion(Boolean(true))
	}
	ref := rn.EvaluateRef(ctx)
	if o, ok := ref.Base.(*Object); ok {
		o.Delete(ref.Name)
		return NormalCompletion(Boolean(true))
	}
	return NormalCompletion(Boolean(false))
}

// Update is prefix/postfix increment and decrement.
type Update struct {
	Op     string // "++" or "--"
	Prefix bool
	Target Node
	At     Pos
}

func (n *Update) Evaluate(ctx *ExecutionContext) Completion {
	rn, ok := n.Target.(RefNode)
	if !ok {
		failAt(n.At, "invalid %s target", n.Op)
	}
	ref := rn.EvaluateRef(ctx)
	old := asNumber(ref.GetValue(), n.Op)
	delta := 1.0
	if n.Op == "--" {
		delta = -1.0
	}
	updated := old + delta
	ref.PutValue(Number(updated))
	if n.Prefix {
		return NormalCompletion(Number(updated))
	}
	return NormalCompletion(Number(old))
}

// Binary covers the strict (non-short-circuit) binary operators.
type Binary struct {
	Op    string
	Left  Node
	Right Node
	At    Pos
}

func (n *Binary) Evaluate(ctx *ExecutionContext) Completion {
	l := evalValue(n.Left, ctx)
	r := evalValue(n.Right, ctx)
	return NormalCompletion(binaryOp(n.Op, l, r, n.At))
}

// Logical covers && and || with short-circuit, value-returning semantics.
type Logical struct {
	Op    string
	Left  Node
	Right Node
}

func (n *Logical) Evaluate(ctx *ExecutionContext) Completion {
	l := evalValue(n.Left, ctx)
	switch n.Op {
	case "&&":
		if !Truthy(l) {
			return NormalCompletion(l)
		}
	case "||":
		if Truthy(l) {
			return NormalCompletion(l)
		}
	}
	return NormalCompletion(evalValue(n.Right, ctx))
}

// Conditional is the ?: operator.
type Conditional struct {
	Cond Node
	Then Node
	Else Node
}

func (n *Conditional) Evaluate(ctx *ExecutionContext) Completion {
	if Truthy(evalValue(n.Cond, ctx)) {
		return NormalCompletion(evalValue(n.Then, ctx))
	}
	return NormalCompletion(evalValue(n.Else, ctx))
}

// Assign is plain or compound assignment through a reference. Plain
// assignment to an undeclared name resolves through SetMutableBinding and is
// therefore absorbed by a horizontal overlay when one is attached.
type Assign struct {
	Op     string // "" for plain =, else the base operator ("+", "<<", ...)
	Target Node
	Value  Node
	At     Pos
}

func (n *Assign) Evaluate(ctx *ExecutionContext) Completion {
	rn, ok := n.Target.(RefNode)
	if !ok {
		failAt(n.At, "invalid assignment target")
	}
	ref := rn.EvaluateRef(ctx)
	var updated Value
	if n.Op == "" {
		updated = evalValue(n.Value, ctx)
	} else {
		old := ref.GetValue()
		rhs := evalValue(n.Value, ctx)
		updated = binaryOp(n.Op, old, rhs, n.At)
	}
	ref.PutValue(updated)
	return NormalCompletion(updated)
}

// ---- operator implementation ----------------------------------------------

// toInt32 converts a float to the 32-bit integer space used by the bitwise
// and shift operators.
func toInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	const two32 = 4294967296.0
	m := math.Mod(math.Trunc(f), two32)
	if m < 0 {
		m += two32
	}
	return int32(uint32(m))
}

func binaryOp(op string, l, r Value, at Pos) Value {
	switch op {
	case "+":
		ls, lok := asText(l)
		rs, rok := asText(r)
		if lok || rok {
			if !lok {
				ls = DisplayString(l)
			}
			if !rok {
				rs = DisplayString(r)
			}
			return Str(ls + rs)
		}
		return Number(asNumber(l, "+") + asNumber(r, "+"))
	case "-":
		return Number(asNumber(l, "-") - asNumber(r, "-"))
	case "*":
		return Number(asNumber(l, "*") * asNumber(r, "*"))
	case "/":
		return Number(asNumber(l, "/") / asNumber(r, "/"))
	case "%":
		return Number(math.Mod(asNumber(l, "%"), asNumber(r, "%")))

	case "<", "<=", ">", ">=":
		return Boolean(compareValues(op, l, r, at))

	case "==":
		return Boolean(Equal(l, r))
	case "!=":
		return Boolean(!Equal(l, r))
	case "===":
		return Boolean(StrictEqual(l, r))
	case "!==":
		return Boolean(!StrictEqual(l, r))

	case "&":
		return Number(float64(toInt32(asNumber(l, "&")) & toInt32(asNumber(r, "&"))))
	case "|":
		return Number(float64(toInt32(asNumber(l, "|")) | toInt32(asNumber(r, "|"))))
	case "^":
		return Number(float64(toInt32(asNumber(l, "^")) ^ toInt32(asNumber(r, "^"))))
	case "<<":
		return Number(float64(toInt32(asNumber(l, "<<")) << (uint32(toInt32(asNumber(r, "<<"))) & 31)))
	case ">>":
		return Number(float64(toInt32(asNumber(l, ">>")) >> (uint32(toInt32(asNumber(r, ">>"))) & 31)))

	case "in":
		key := propertyKey(l)
		switch r.Tag {
		case VTObject:
			return Boolean(r.Data.(*Object).Has(key))
		case VTArray:
			return Boolean(r.Data.(*Array).Has(key))
		case VTStringObject:
			return Boolean(r.Data.(*StringObject).Has(key))
		default:
			failAt(at, "cannot use 'in' on %s", TypeName(r))
			return Undefined
		}

	default:
		failAt(at, "unknown binary operator %q", op)
		return Undefined
	}
}

func compareValues(op string, l, r Value, at Pos) bool {
	if ls, lok := asText(l); lok {
		if rs, rok := asText(r); rok {
			switch op {
			case "<":
				return ls < rs
			case "<=":
				return ls <= rs
			case ">":
				return ls > rs
			default:
				return ls >= rs
			}
		}
	}
	lf := asNumber(l, op)
	rf := asNumber(r, op)
	switch op {
	case "<":
		return lf < rf
	case "<=":
		return lf <= rf
	case ">":
		return lf > rf
	default:
		return lf >= rf
	}
}
