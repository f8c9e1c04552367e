// value.go: the runtime value model.
//
// Value is a tagged sum over the closed set of kinds a Scope program can
// produce. Booleans and numbers are copied; Object, Array, StringObject and
// the callables are reference semantics (the Data pointer is shared, so
// mutation is visible through every alias). VTEmpty is internal to the
// completion protocol and is never stored in an environment or a container.
package scope

import (
	"fmt"
	"math"
	"strconv"
)

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTUndefined    ValueTag = iota // undefined (no payload; zero Value)
	VTNull                         // null (no payload)
	VTBool                         // bool
	VTNumber                       // float64
	VTString                       // string (immutable primitive text)
	VTObject                       // *Object
	VTArray                        // *Array
	VTStringObject                 // *StringObject (mutable string wrapper)
	VTFunction                     // *Function (interpreted)
	VTNative                       // Callable (*NativeFunction or *StaticNativeFunction)
	VTEmpty                        // completion-internal "no value" marker
)

// Value is the universal runtime carrier. Tag determines which Go type Data
// holds (see ValueTag). The zero Value is undefined.
type Value struct {
	Tag  ValueTag
	Data any
}

// Undefined and Null are the two payload-free singletons.
var (
	Undefined = Value{Tag: VTUndefined}
	Null      = Value{Tag: VTNull}
)

// emptyValue marks "no value" inside a Completion (never user-visible).
var emptyValue = Value{Tag: VTEmpty}

// Constructors.
func Boolean(b bool) Value               { return Value{Tag: VTBool, Data: b} }
func Number(f float64) Value             { return Value{Tag: VTNumber, Data: f} }
func Str(s string) Value                 { return Value{Tag: VTString, Data: s} }
func ObjectVal(o *Object) Value          { return Value{Tag: VTObject, Data: o} }
func ArrayVal(a *Array) Value            { return Value{Tag: VTArray, Data: a} }
func StringObjVal(s *StringObject) Value { return Value{Tag: VTStringObject, Data: s} }
func FunctionVal(f *Function) Value      { return Value{Tag: VTFunction, Data: f} }
func NativeVal(c Callable) Value         { return Value{Tag: VTNative, Data: c} }

// String renders a short debug representation. Use FormatValue for the
// user-facing form.
func (v Value) String() string {
	switch v.Tag {
	case VTUndefined:
		return "undefined"
	case VTNull:
		return "null"
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTNumber:
		return formatNumber(v.Data.(float64))
	case VTString:
		return fmt.Sprintf("%q", v.Data.(string))
	case VTObject:
		return fmt.Sprintf("<object %d keys>", len(v.Data.(*Object).Entries))
	case VTArray:
		return fmt.Sprintf("<array len=%d>", len(v.Data.(*Array).Items))
	case VTStringObject:
		return fmt.Sprintf("String(%q)", v.Data.(*StringObject).Text)
	case VTFunction:
		return "<function>"
	case VTNative:
		return "<native function>"
	case VTEmpty:
		return "<empty>"
	default:
		return "<unknown>"
	}
}

// Truthy implements boolean conversion: undefined/null are false, numbers
// are false when zero or NaN, text is false when empty, containers and
// callables are always true.
func Truthy(v Value) bool {
	switch v.Tag {
	case VTUndefined, VTNull:
		return false
	case VTBool:
		return v.Data.(bool)
	case VTNumber:
		f := v.Data.(float64)
		return f != 0 && !math.IsNaN(f)
	case VTString:
		return v.Data.(string) != ""
	case VTStringObject:
		return v.Data.(*StringObject).Text != ""
	default:
		return true
	}
}

// Equal is structural equality: containers compare by contents, and a
// StringObject equals a matching primitive string. Callables compare by
// identity.
func Equal(a, b Value) bool {
	// StringObject vs primitive text (either side).
	if a.Tag == VTStringObject && b.Tag == VTString {
		return a.Data.(*StringObject).Text == b.Data.(string)
	}
	if a.Tag == VTString && b.Tag == VTStringObject {
		return a.Data.(string) == b.Data.(*StringObject).Text
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTUndefined, VTNull:
		return true
	case VTBool:
		return a.Data.(bool) == b.Data.(bool)
	case VTNumber:
		return a.Data.(float64) == b.Data.(float64)
	case VTString:
		return a.Data.(string) == b.Data.(string)
	case VTStringObject:
		return a.Data.(*StringObject).Text == b.Data.(*StringObject).Text
	case VTObject:
		ao, bo := a.Data.(*Object), b.Data.(*Object)
		if len(ao.Entries) != len(bo.Entries) {
			return false
		}
		for k, av := range ao.Entries {
			bv, ok := bo.Entries[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case VTArray:
		ax, bx := a.Data.(*Array).Items, b.Data.(*Array).Items
		if len(ax) != len(bx) {
			return false
		}
		for i := range ax {
			if !Equal(ax[i], bx[i]) {
				return false
			}
		}
		return true
	default:
		return a.Data == b.Data
	}
}

// StrictEqual additionally requires the same kind, except the documented
// StringObject/primitive-text pairing which compares equal either way.
func StrictEqual(a, b Value) bool {
	if a.Tag != b.Tag {
		textPair := (a.Tag == VTStringObject && b.Tag == VTString) ||
			(a.Tag == VTString && b.Tag == VTStringObject)
		if !textPair {
			return false
		}
	}
	return Equal(a, b)
}

// TypeName implements the typeof operator vocabulary.
func TypeName(v Value) string {
	switch v.Tag {
	case VTUndefined:
		return "undefined"
	case VTBool:
		return "boolean"
	case VTNumber:
		return "number"
	case VTString:
		return "string"
	case VTFunction, VTNative:
		return "function"
	default:
		// null, objects, arrays and boxed strings.
		return "object"
	}
}

// asText reports whether v is text (primitive or boxed) and returns it.
func asText(v Value) (string, bool) {
	switch v.Tag {
	case VTString:
		return v.Data.(string), true
	case VTStringObject:
		return v.Data.(*StringObject).Text, true
	default:
		return "", false
	}
}

// asNumber returns v's float payload or aborts the evaluation.
func asNumber(v Value, what string) float64 {
	if v.Tag != VTNumber {
		fail("%s: expected a number, got %s", what, TypeName(v))
	}
	return v.Data.(float64)
}

// propertyKey normalizes a property-key value to canonical string form.
// Numeric keys render without a trailing fraction so obj[1] and obj["1"]
// address the same slot.
func propertyKey(v Value) string {
	switch v.Tag {
	case VTNumber:
		return formatNumber(v.Data.(float64))
	case VTString:
		return v.Data.(string)
	case VTStringObject:
		return v.Data.(*StringObject).Text
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTUndefined:
		return "undefined"
	case VTNull:
		return "null"
	default:
		fail("cannot use %s as a property key", TypeName(v))
		return ""
	}
}

// formatNumber renders a float the way program output expects: integral
// values without a fraction, specials as NaN/Infinity.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
