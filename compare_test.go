package stbjson

import "testing"

func TestEqualOrdered(t *testing.T) {
	a, _ := Parse(`{"x":1,"y":2}`)
	b, _ := Parse(`{"x":1,"y":2}`)
	c, _ := Parse(`{"y":2,"x":1}`)
	if !Equal(a, b) {
		t.Error("identical ordered objects should be Equal")
	}
	if Equal(a, c) {
		t.Error("differently-ordered objects should not be Equal")
	}
	if !EqualUnordered(a, c) {
		t.Error("differently-ordered objects should be EqualUnordered")
	}
}

func TestEqualNumberEpsilon(t *testing.T) {
	a := NewNumber(0.1 + 0.2)
	b := NewNumber(0.3)
	if !Equal(a, b) {
		t.Error("0.1+0.2 should compare Equal to 0.3 within epsilon")
	}
}

func TestSortObjectKeys(t *testing.T) {
	o := NewObject()
	_ = o.AddNull("c")
	_ = o.AddNull("a")
	_ = o.AddNull("b")
	SortObjectKeys(o)
	var keys []string
	for _, c := range o.children {
		keys = append(keys, c.key)
	}
	want := []string{"a", "b", "c"}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("keys[%d] = %q, want %q (keys=%v)", i, keys[i], k, keys)
		}
	}
}
