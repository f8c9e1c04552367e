// builtin_math.go: the Math host object.
//
// Constants are plain number entries; functions bridge through the two
// native callable shapes so scripts cannot tell them apart from interpreted
// functions. Arguments coerce through asNumber, so a non-numeric argument is
// a hard runtime error rather than NaN.
package scope

import "math"

// NewMathObject builds the Math namespace installed in every global context.
func NewMathObject() *Object {
	m := NewObject()

	m.Set("E", Number(math.E))
	m.Set("PI", Number(math.Pi))

	m.Set("abs", unary1("Math.abs", math.Abs))
	m.Set("acos", unary1("Math.acos", math.Acos))
	m.Set("acosh", unary1("Math.acosh", math.Acosh))
	m.Set("asin", unary1("Math.asin", math.Asin))
	m.Set("asinh", unary1("Math.asinh", math.Asinh))
	m.Set("atan", unary1("Math.atan", math.Atan))
	m.Set("atanh", unary1("Math.atanh", math.Atanh))
	m.Set("cbrt", unary1("Math.cbrt", math.Cbrt))
	m.Set("ceil", unary1("Math.ceil", math.Ceil))
	m.Set("cos", unary1("Math.cos", math.Cos))
	m.Set("cosh", unary1("Math.cosh", math.Cosh))
	m.Set("exp", unary1("Math.exp", math.Exp))
	m.Set("sin", unary1("Math.sin", math.Sin))

	m.Set("atan2", NativeVal(NewStaticNativeFunction(func(args ...Value) Value {
		y, x := Undefined, Undefined
		if len(args) > 0 {
			y = args[0]
		}
		if len(args) > 1 {
			x = args[1]
		}
		return Number(math.Atan2(asNumber(y, "Math.atan2"), asNumber(x, "Math.atan2")))
	})))

	m.Set("pow", NativeVal(NewNativeFunction(func(_ Value, args []Value) Value {
		base, exp := Undefined, Undefined
		if len(args) > 0 {
			base = args[0]
		}
		if len(args) > 1 {
			exp = args[1]
		}
		b := asNumber(base, "Math.pow")
		e := asNumber(exp, "Math.pow")
		// math.Pow(0, negative) already yields +Inf, matching 1/0.
		return Number(math.Pow(b, e))
	})))

	return m
}
