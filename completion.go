// completion.go: the completion record every evaluable node produces.
package scope

// CompletionType is the control-flow signal carried by a Completion.
type CompletionType int

const (
	CTNormal CompletionType = iota
	CTBreak
	CTContinue
	CTReturn
	CTThrow
)

func (t CompletionType) String() string {
	switch t {
	case CTNormal:
		return "normal"
	case CTBreak:
		return "break"
	case CTContinue:
		return "continue"
	case CTReturn:
		return "return"
	case CTThrow:
		return "throw"
	default:
		return "invalid"
	}
}

// EmptyTarget is the absent label on break/continue completions.
const EmptyTarget = ""

// Completion is the uniform result of evaluating a node: a signal, an
// optional payload (VTEmpty when none), and an optional label target.
type Completion struct {
	Type   CompletionType
	Value  Value
	Target string
}

// EmptyCompletion is the normal completion with no value, produced by
// statements that contribute nothing (declarations, empty statements).
var EmptyCompletion = Completion{Type: CTNormal, Value: emptyValue, Target: EmptyTarget}

// NormalCompletion wraps a value in a normal completion.
func NormalCompletion(v Value) Completion {
	return Completion{Type: CTNormal, Value: v, Target: EmptyTarget}
}

// IsAbrupt reports whether the completion signals non-local control flow.
func (c Completion) IsAbrupt() bool { return c.Type != CTNormal }

// HasValue reports whether the completion carries a payload.
func (c Completion) HasValue() bool { return c.Value.Tag != VTEmpty }

// matchesLoop reports whether an abrupt break/continue addresses a loop with
// the given label: an empty target always matches, a named target must equal
// the label.
func (c Completion) matchesLoop(label string) bool {
	return c.Target == EmptyTarget || c.Target == label
}
