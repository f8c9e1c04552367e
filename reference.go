// reference.go: the reference specification type.
//
// A Reference is a deferred (name, base) pair produced by identifier and
// member-access evaluation and consumed immediately by GetValue or PutValue;
// it is never persisted. The base is either nil (unresolvable) or any
// BindingTarget: an ExecutionContext for scope references, or one of the
// property-bearing containers (including the transient primitive-string box).
package scope

// BindingTarget is the capability a Reference resolves against. It is
// satisfied by *ExecutionContext, *Object, *Array, *StringObject and
// stringBase.
type BindingTarget interface {
	GetBindingValue(name string) Value
	SetMutableBinding(name string, value Value)
}

// Reference is a not-yet-resolved read/write target.
type Reference struct {
	Name string
	Base BindingTarget
}

// NewReference pairs a name with its base (nil base = unresolvable).
func NewReference(name string, base BindingTarget) *Reference {
	return &Reference{Name: name, Base: base}
}

// IsUnresolvable reports whether the reference has no base.
func (r *Reference) IsUnresolvable() bool { return r.Base == nil }

// HasPrimitiveBase reports whether the base is boxed primitive text. Only
// text values participate in primitive-base property access.
func (r *Reference) HasPrimitiveBase() bool {
	_, ok := r.Base.(stringBase)
	return ok
}

// IsProperty reports whether resolution uses property get/set rather than
// scope-binding semantics.
func (r *Reference) IsProperty() bool {
	switch r.Base.(type) {
	case *Object, *Array, *StringObject, stringBase:
		return true
	default:
		return false
	}
}

// GetValue resolves the reference for reading. Unresolvable references are a
// ReferenceError.
func (r *Reference) GetValue() Value {
	if r.IsUnresolvable() {
		failRef("%q is unresolvable", r.Name)
	}
	return r.Base.GetBindingValue(r.Name)
}

// PutValue resolves the reference for writing. Unresolvable references are a
// ReferenceError.
func (r *Reference) PutValue(v Value) {
	if r.IsUnresolvable() {
		failRef("cannot assign to unresolvable reference %q", r.Name)
	}
	r.Base.SetMutableBinding(r.Name, v)
}

// GetValue returns the value of x, resolving it first when x is a reference.
func GetValue(x any) Value {
	switch t := x.(type) {
	case *Reference:
		return t.GetValue()
	case Value:
		return t
	default:
		fail("internal: GetValue on %T", x)
		return Undefined
	}
}

// PutValue writes v through x, which must be a reference.
func PutValue(x any, v Value) {
	r, ok := x.(*Reference)
	if !ok {
		failRef("cannot assign to a non-reference value")
	}
	r.PutValue(v)
}
