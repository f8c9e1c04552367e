package scope

import (
	"errors"
	"reflect"
	"testing"
)

func TestToNativeScalars(t *testing.T) {
	cases := []struct {
		v    Value
		want any
	}{
		{Undefined, nil},
		{Null, nil},
		{Boolean(true), true},
		{Number(2.5), 2.5},
		{Str("text"), "text"},
		{StringObjVal(NewStringObject("boxed")), "boxed"},
	}
	for _, c := range cases {
		got, err := ToNative(c.v)
		if err != nil {
			t.Fatalf("ToNative(%v): %v", c.v, err)
		}
		if got != c.want {
			t.Errorf("ToNative(%v) = %#v, want %#v", c.v, got, c.want)
		}
	}
}

func TestToNativeNested(t *testing.T) {
	inner := NewObject()
	inner.Set("flag", Boolean(false))
	o := NewObject()
	o.Set("items", ArrayVal(NewArray(Number(1), Str("two"), Null)))
	o.Set("inner", ObjectVal(inner))

	got, err := ToNative(ObjectVal(o))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"items": []any{1.0, "two", nil},
		"inner": map[string]any{"flag": false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ToNative = %#v, want %#v", got, want)
	}
}

func TestToNativeRejectsFunctions(t *testing.T) {
	fn := NativeVal(NewStaticNativeFunction(func(...Value) Value { return Null }))
	_, err := ToNative(fn)
	var ce *ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("want *ConversionError, got %v", err)
	}

	// a function buried in a container poisons the whole conversion
	o := NewObject()
	o.Set("cb", fn)
	if _, err := ToNative(ObjectVal(o)); !errors.As(err, &ce) {
		t.Fatalf("nested function: want *ConversionError, got %v", err)
	}
}

func TestToNativeScriptRoundTrip(t *testing.T) {
	v := evalSrc(t, `({n: 1, list: [true, "x"], nothing: null})`)
	got, err := ToNative(v)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"n":       1.0,
		"list":    []any{true, "x"},
		"nothing": nil,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ToNative = %#v, want %#v", got, want)
	}
}
