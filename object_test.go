package scope

import (
	"reflect"
	"testing"
)

func TestObjectGetSetDelete(t *testing.T) {
	o := NewObject()
	wantUndefined(t, o.Get("missing"))
	o.Set("k", Number(1))
	wantNum(t, o.Get("k"), 1)
	if !o.Has("k") {
		t.Fatal("Has(k) = false after Set")
	}
	o.Delete("k")
	if o.Has("k") {
		t.Fatal("Has(k) = true after Delete")
	}
	o.Delete("k") // absent delete is a no-op
}

func TestObjectKeysSorted(t *testing.T) {
	o := NewObjectOf(map[string]Value{"b": Null, "a": Null, "10": Null})
	got := o.Keys()
	want := []string{"10", "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
}

func TestArrayLengthAndReads(t *testing.T) {
	a := NewArray(Number(10), Number(20))
	wantNum(t, a.Get("length"), 2)
	wantNum(t, a.Get("1"), 20)
	wantUndefined(t, a.Get("5"))
}

func TestArrayNonIndexPropertyFaults(t *testing.T) {
	a := NewArray()
	if err := catchRuntime(t, func() { a.Get("name") }); err == nil {
		t.Fatal("reading a non-index array property should fault")
	}
	if err := catchRuntime(t, func() { a.Get("-1") }); err == nil {
		t.Fatal("negative indices should fault")
	}
	if err := catchRuntime(t, func() { a.Set("length", Number(0)) }); err == nil {
		t.Fatal("writing length should fault")
	}
}

func TestArraySetExtendsWithUndefined(t *testing.T) {
	a := NewArray(Number(1))
	a.Set("3", Str("end"))
	if len(a.Items) != 4 {
		t.Fatalf("len = %d, want 4", len(a.Items))
	}
	wantUndefined(t, a.Items[1])
	wantUndefined(t, a.Items[2])
	wantStr(t, a.Items[3], "end")
	// writing in range never shrinks
	a.Set("0", Number(9))
	if len(a.Items) != 4 {
		t.Fatalf("in-range write changed length to %d", len(a.Items))
	}
}

func TestArrayHas(t *testing.T) {
	a := NewArray(Number(1))
	if !a.Has("0") || !a.Has("length") {
		t.Fatal("want Has(0) and Has(length)")
	}
	if a.Has("1") || a.Has("x") {
		t.Fatal("out-of-range and non-index names are absent")
	}
}

func TestStringObjectReads(t *testing.T) {
	s := NewStringObject("abc")
	wantNum(t, s.Get("length"), 3)
	wantStr(t, s.Get("0"), "a")
	wantStr(t, s.Get("2"), "c")
	wantUndefined(t, s.Get("3"))
	if !s.Has("length") || !s.Has("1") || s.Has("3") {
		t.Fatal("Has over length/in-range/out-of-range misbehaved")
	}
}

func TestStringObjectSpliceRebuildsText(t *testing.T) {
	s := NewStringObject("abc")
	s.Set("1", Str("Z"))
	if s.Text != "aZc" {
		t.Fatalf("Text = %q, want aZc", s.Text)
	}

	// multi-character insert grows the text
	s = NewStringObject("abc")
	s.Set("1", Str("XYZ"))
	if s.Text != "aXYZc" {
		t.Fatalf("Text = %q, want aXYZc", s.Text)
	}

	// the written value passes through display formatting
	s = NewStringObject("abc")
	s.Set("0", Number(7))
	if s.Text != "7bc" {
		t.Fatalf("Text = %q, want 7bc", s.Text)
	}

	// writing at or past the end appends
	s = NewStringObject("ab")
	s.Set("5", Str("!"))
	if s.Text != "ab!" {
		t.Fatalf("Text = %q, want ab!", s.Text)
	}
}
