package stbjson

import "testing"

func TestValueConstructors(t *testing.T) {
	cases := []struct {
		name string
		v    *Value
		kind Kind
	}{
		{"null", NewNull(), Null},
		{"true", NewBool(true), True},
		{"false", NewBool(false), False},
		{"number", NewNumber(3.5), Number},
		{"string", NewString("hi"), String},
		{"raw", NewRaw("1e400"), Raw},
		{"array", NewArray(), Array},
		{"object", NewObject(), Object},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.v.Kind(); got != c.kind {
				t.Errorf("Kind() = %v, want %v", got, c.kind)
			}
		})
	}
}

func TestValueNilIsInvalid(t *testing.T) {
	var v *Value
	if v.Kind() != Invalid {
		t.Fatalf("nil Value Kind() = %v, want Invalid", v.Kind())
	}
	if v.Len() != 0 {
		t.Fatalf("nil Value Len() = %d, want 0", v.Len())
	}
}

func TestObjectSetGetDelete(t *testing.T) {
	o := NewObject()
	if err := o.AddString("name", "ferki"); err != nil {
		t.Fatal(err)
	}
	if err := o.AddNumber("age", 7); err != nil {
		t.Fatal(err)
	}
	if got := o.Get("name").StringValue(); got != "ferki" {
		t.Fatalf("Get(name) = %q, want ferki", got)
	}
	if !o.HasKey("age") {
		t.Fatal("HasKey(age) = false, want true")
	}
	if !o.Delete("age") {
		t.Fatal("Delete(age) = false, want true")
	}
	if o.HasKey("age") {
		t.Fatal("HasKey(age) after Delete = true, want false")
	}
}

func TestObjectDuplicateKeyLastWins(t *testing.T) {
	o := NewObject()
	_ = o.Append(NewString("first").SetKey("k"))
	_ = o.Append(NewString("second").SetKey("k"))
	if got := o.Get("k").StringValue(); got != "second" {
		t.Fatalf("Get(k) = %q, want second (last wins)", got)
	}
}

func TestArrayInsertDetach(t *testing.T) {
	a := NewIntArray([]int{1, 2, 4})
	if err := a.InsertAt(2, NewNumber(3)); err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 2, 3, 4}
	if a.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", a.Len(), len(want))
	}
	for i, w := range want {
		if got := a.children[i].NumberValue(); got != w {
			t.Errorf("children[%d] = %v, want %v", i, got, w)
		}
	}
	removed, ok := a.DetachAt(0)
	if !ok || removed.NumberValue() != 1 {
		t.Fatalf("DetachAt(0) = %v, %v", removed, ok)
	}
	if a.Len() != 3 {
		t.Fatalf("Len() after DetachAt = %d, want 3", a.Len())
	}
}

func TestDuplicateRecursive(t *testing.T) {
	orig := NewArray(NewNumber(1), NewObject())
	_ = orig.children[1].AddString("k", "v")

	dup, err := orig.Duplicate(true)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(orig, dup) {
		t.Fatalf("duplicate not equal to original")
	}
	_ = dup.children[1].AddString("extra", "x")
	if orig.children[1].HasKey("extra") {
		t.Fatal("mutating deep duplicate affected original")
	}
}

func TestDuplicateShallowShares(t *testing.T) {
	orig := NewArray(NewNumber(1), NewNumber(2))
	dup, err := orig.Duplicate(false)
	if err != nil {
		t.Fatal(err)
	}
	if !dup.IsReference() {
		t.Fatal("shallow duplicate should be a reference")
	}
	if err := dup.Append(NewNumber(3)); err == nil {
		t.Fatal("expected Append on a reference to fail")
	}
}
