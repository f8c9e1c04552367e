// context.go: execution contexts, the binding environments of the runtime.
//
// A context owns one env map and links to at most two other contexts:
// parent, the static lexical enclosure, and horizontal, an independent
// environment consulted as a dynamic-scope overlay. Binding lookup is a
// three-tier search in a fixed order: own env, then horizontal (only when it
// contains the name, searched by the same rule), then parent. A name absent
// from every tier reads as Undefined; there is no implicit global object.
//
// Mutation resolves through the same tiers, but a name absent everywhere is
// created in the nearest horizontal context when one exists, and only as a
// last resort locally. The overlay therefore absorbs unscoped assignments
// made by a callee that never declared the variable, which is the point of
// threading a caller-supplied ambient environment through a call.
package scope

import "sort"

// ExecutionContext is a binding environment. Contexts are shared freely
// (closures keep their defining context alive); there is no locking because
// evaluation is single-threaded.
type ExecutionContext struct {
	env        map[string]Value
	parent     *ExecutionContext
	horizontal *ExecutionContext
}

// NewExecutionContext builds a context over env (shared, not copied).
func NewExecutionContext(env map[string]Value, parent, horizontal *ExecutionContext) *ExecutionContext {
	if env == nil {
		env = map[string]Value{}
	}
	return &ExecutionContext{env: env, parent: parent, horizontal: horizontal}
}

// NewChildContext is a fresh empty context lexically enclosed by parent.
func NewChildContext(parent *ExecutionContext) *ExecutionContext {
	return NewExecutionContext(nil, parent, nil)
}

// Parent returns the lexical enclosure (nil at the top).
func (c *ExecutionContext) Parent() *ExecutionContext { return c.parent }

// Horizontal returns the dynamic-scope overlay, if any.
func (c *ExecutionContext) Horizontal() *ExecutionContext { return c.horizontal }

// Declare binds name directly in this context's own env, shadowing any
// outer binding. Used by var statements, function declarations and
// activation records.
func (c *ExecutionContext) Declare(name string, v Value) { c.env[name] = v }

// Contains reports whether name is bound in any tier.
func (c *ExecutionContext) Contains(name string) bool {
	if _, ok := c.env[name]; ok {
		return true
	}
	if c.horizontal != nil && c.horizontal.Contains(name) {
		return true
	}
	return c.parent != nil && c.parent.Contains(name)
}

// Lookup reads name through the three tiers, falling back to Undefined when
// it is absent everywhere.
func (c *ExecutionContext) Lookup(name string) Value {
	if v, ok := c.env[name]; ok {
		return v
	}
	if c.horizontal != nil && c.horizontal.Contains(name) {
		return c.horizontal.Lookup(name)
	}
	if c.parent != nil {
		return c.parent.Lookup(name)
	}
	return Undefined
}

// GetBindingValue is the strict read used by reference resolution. It only
// reaches Undefined by falling through all three tiers.
func (c *ExecutionContext) GetBindingValue(name string) Value {
	if _, ok := c.env[name]; !ok {
		if c.horizontal != nil && c.horizontal.Contains(name) {
			return c.horizontal.GetBindingValue(name)
		}
		if c.parent != nil && c.parent.Contains(name) {
			return c.parent.GetBindingValue(name)
		}
	}
	return c.Lookup(name)
}

// SetMutableBinding writes name wherever it already resolves. A name absent
// from every tier is created in the nearest horizontal context when one
// exists, otherwise locally.
func (c *ExecutionContext) SetMutableBinding(name string, v Value) {
	if _, ok := c.env[name]; ok {
		c.env[name] = v
		return
	}
	if c.horizontal != nil && c.horizontal.Contains(name) {
		c.horizontal.SetMutableBinding(name, v)
		return
	}
	if c.parent != nil && c.parent.Contains(name) {
		c.parent.SetMutableBinding(name, v)
		return
	}
	if c.horizontal != nil {
		c.horizontal.SetMutableBinding(name, v)
		return
	}
	c.env[name] = v
}

// GetThisReference resolves the implicit this binding.
func (c *ExecutionContext) GetThisReference() Value { return c.Lookup("this") }

// Names returns this context's own bindings in sorted order (introspection
// and tests only; the chain is not flattened).
func (c *ExecutionContext) Names() []string {
	names := make([]string, 0, len(c.env))
	for k := range c.env {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
