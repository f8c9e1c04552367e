// ast_statements.go: statement nodes and the sequencing/loop protocol.
//
// Statement sequencing follows the completion rules: evaluate in order, stop
// at the first abrupt completion and propagate it unchanged. Loops intercept
// Break/Continue completions whose target is empty or their own label; Return
// always escapes to the function activation layer.
package scope

// evalSequence runs statements in order, tracking the last non-empty value.
func evalSequence(stmts []Node, ctx *ExecutionContext) Completion {
	v := emptyValue
	for _, s := range stmts {
		c := s.Evaluate(ctx)
		if c.IsAbrupt() {
			return c
		}
		if c.HasValue() {
			v = c.Value
		}
	}
	return Completion{Type: CTNormal, Value: v, Target: EmptyTarget}
}

// Program is the top-level node handed to the runtime by the parser.
type Program struct {
	Body []Node
}

func (n *Program) Evaluate(ctx *ExecutionContext) Completion {
	return evalSequence(n.Body, ctx)
}

// Block is a braced statement list. Blocks do not introduce bindings; var is
// function-scoped.
type Block struct {
	Body []Node
}

func (n *Block) Evaluate(ctx *ExecutionContext) Completion {
	return evalSequence(n.Body, ctx)
}

// ExprStatement evaluates an expression for its value.
type ExprStatement struct {
	Expr Node
}

func (n *ExprStatement) Evaluate(ctx *ExecutionContext) Completion {
	return NormalCompletion(evalValue(n.Expr, ctx))
}

// EmptyStatement is a bare semicolon.
type EmptyStatement struct{}

func (n *EmptyStatement) Evaluate(_ *ExecutionContext) Completion { return EmptyCompletion }

// VarDecl declares names in the current context. Inits is parallel to
// Names; a nil entry leaves the binding Undefined.
type VarDecl struct {
	Names []string
	Inits []Node
}

func (n *VarDecl) Evaluate(ctx *ExecutionContext) Completion {
	for i, name := range n.Names {
		v := Undefined
		if n.Inits[i] != nil {
			v = evalValue(n.Inits[i], ctx)
		}
		ctx.Declare(name, v)
	}
	return EmptyCompletion
}

// FunctionDecl binds a named function in the current context.
type FunctionDecl struct {
	Name string
	Fn   *FunctionLit
}

func (n *FunctionDecl) Evaluate(ctx *ExecutionContext) Completion {
	ctx.Declare(n.Name, evalValue(n.Fn, ctx))
	return EmptyCompletion
}

// If is the two-armed conditional; Else may be nil.
type If struct {
	Cond Node
	Then Node
	Else Node
}

func (n *If) Evaluate(ctx *ExecutionContext) Completion {
	if Truthy(evalValue(n.Cond, ctx)) {
		return n.Then.Evaluate(ctx)
	}
	if n.Else != nil {
		return n.Else.Evaluate(ctx)
	}
	return EmptyCompletion
}

// loopStep applies the loop protocol to one body completion. done means the
// loop must terminate and return result; otherwise the caller continues with
// the next iteration or propagates nothing.
func loopStep(c Completion, label string, v *Value) (done bool, result Completion) {
	if c.HasValue() {
		*v = c.Value
	}
	switch {
	case c.Type == CTBreak && c.matchesLoop(label):
		return true, Completion{Type: CTNormal, Value: *v, Target: EmptyTarget}
	case c.Type == CTContinue && c.matchesLoop(label):
		return false, Completion{}
	case c.IsAbrupt():
		return true, c
	default:
		return false, Completion{}
	}
}

// While is the while loop. Label is the loop's own label when a labeled
// statement wraps it directly.
type While struct {
	Label string
	Cond  Node
	Body  Node
}

func (n *While) Evaluate(ctx *ExecutionContext) Completion {
	v := emptyValue
	for Truthy(evalValue(n.Cond, ctx)) {
		if done, res := loopStep(n.Body.Evaluate(ctx), n.Label, &v); done {
			return res
		}
	}
	return Completion{Type: CTNormal, Value: v, Target: EmptyTarget}
}

// DoWhile runs the body at least once.
type DoWhile struct {
	Label string
	Body  Node
	Cond  Node
}

func (n *DoWhile) Evaluate(ctx *ExecutionContext) Completion {
	v := emptyValue
	for {
		if done, res := loopStep(n.Body.Evaluate(ctx), n.Label, &v); done {
			return res
		}
		if !Truthy(evalValue(n.Cond, ctx)) {
			return Completion{Type: CTNormal, Value: v, Target: EmptyTarget}
		}
	}
}

// ForLoop is the classic three-clause for; any clause may be nil. Init is a
// statement (VarDecl or ExprStatement).
type ForLoop struct {
	Label string
	Init  Node
	Cond  Node
	Post  Node
	Body  Node
}

func (n *ForLoop) Evaluate(ctx *ExecutionContext) Completion {
	if n.Init != nil {
		if c := n.Init.Evaluate(ctx); c.IsAbrupt() {
			return c
		}
	}
	v := emptyValue
	for n.Cond == nil || Truthy(evalValue(n.Cond, ctx)) {
		if done, res := loopStep(n.Body.Evaluate(ctx), n.Label, &v); done {
			return res
		}
		if n.Post != nil {
			evalValue(n.Post, ctx)
		}
	}
	return Completion{Type: CTNormal, Value: v, Target: EmptyTarget}
}

// ForIn enumerates property keys: sorted keys for objects, ascending indices
// for arrays and text. Enumerating anything else iterates zero times.
type ForIn struct {
	Label    string
	VarName  string
	Declared bool // written as: for (var x in e)
	Object   Node
	Body     Node
}

func (n *ForIn) Evaluate(ctx *ExecutionContext) Completion {
	if n.Declared {
		ctx.Declare(n.VarName, Undefined)
	}
	ref := NewReference(n.VarName, ctx)
	v := emptyValue
	for _, key := range enumerationKeys(evalValue(n.Object, ctx)) {
		ref.PutValue(key)
		if done, res := loopStep(n.Body.Evaluate(ctx), n.Label, &v); done {
			return res
		}
	}
	return Completion{Type: CTNormal, Value: v, Target: EmptyTarget}
}

func enumerationKeys(v Value) []Value {
	switch v.Tag {
	case VTObject:
		names := v.Data.(*Object).Keys()
		keys := make([]Value, len(names))
		for i, k := range names {
			keys[i] = Str(k)
		}
		return keys
	case VTArray:
		keys := make([]Value, len(v.Data.(*Array).Items))
		for i := range keys {
			keys[i] = Number(float64(i))
		}
		return keys
	case VTString, VTStringObject:
		text, _ := asText(v)
		keys := make([]Value, len(text))
		for i := range keys {
			keys[i] = Number(float64(i))
		}
		return keys
	default:
		return nil
	}
}

// Labeled wraps a non-loop statement with a label; a break addressed to the
// label converts into a normal completion here. Loops carry their label
// directly and never reach this wrapper.
type Labeled struct {
	Label string
	Stmt  Node
}

func (n *Labeled) Evaluate(ctx *ExecutionContext) Completion {
	c := n.Stmt.Evaluate(ctx)
	if c.Type == CTBreak && c.Target == n.Label {
		return Completion{Type: CTNormal, Value: c.Value, Target: EmptyTarget}
	}
	return c
}

// BreakStatement produces a Break completion with an optional label target.
type BreakStatement struct {
	Target string
}

func (n *BreakStatement) Evaluate(_ *ExecutionContext) Completion {
	return Completion{Type: CTBreak, Value: emptyValue, Target: n.Target}
}

// ContinueStatement produces a Continue completion with an optional target.
type ContinueStatement struct {
	Target string
}

func (n *ContinueStatement) Evaluate(_ *ExecutionContext) Completion {
	return Completion{Type: CTContinue, Value: emptyValue, Target: n.Target}
}

// ReturnStatement produces a Return completion; a bare return carries
// Undefined.
type ReturnStatement struct {
	Value Node
}

func (n *ReturnStatement) Evaluate(ctx *ExecutionContext) Completion {
	v := Undefined
	if n.Value != nil {
		v = evalValue(n.Value, ctx)
	}
	return Completion{Type: CTReturn, Value: v, Target: EmptyTarget}
}
