package stbjson

import "testing"

func TestMinify(t *testing.T) {
	in := []byte(`{
		// a line comment
		"a": 1, /* block
		comment */
		"b": "keep // this" ,
		"c": [1,   2]
	}`)
	out := Minify(in)
	v, err := Parse(string(out))
	if err != nil {
		t.Fatalf("Parse(Minify(...)) failed: %v", err)
	}
	if v.Get("a").NumberValue() != 1 {
		t.Errorf("a = %v, want 1", v.Get("a").NumberValue())
	}
	if v.Get("b").StringValue() != "keep // this" {
		t.Errorf("b = %q, want %q", v.Get("b").StringValue(), "keep // this")
	}
}
