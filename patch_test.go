package stbjson

import "testing"

func mustParse(t *testing.T, s string) *Value {
	t.Helper()
	v, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return v
}

func TestApplyPatchOperations(t *testing.T) {
	cases := []struct {
		name  string
		doc   string
		patch string
		want  string
	}{
		{
			name:  "add to object",
			doc:   `{"a":1}`,
			patch: `[{"op":"add","path":"/b","value":2}]`,
			want:  `{"a":1,"b":2}`,
		},
		{
			name:  "add append to array",
			doc:   `{"a":[1,2]}`,
			patch: `[{"op":"add","path":"/a/-","value":3}]`,
			want:  `{"a":[1,2,3]}`,
		},
		{
			name:  "remove from object",
			doc:   `{"a":1,"b":2}`,
			patch: `[{"op":"remove","path":"/b"}]`,
			want:  `{"a":1}`,
		},
		{
			name:  "replace",
			doc:   `{"a":1}`,
			patch: `[{"op":"replace","path":"/a","value":9}]`,
			want:  `{"a":9}`,
		},
		{
			name:  "move",
			doc:   `{"a":1,"b":2}`,
			patch: `[{"op":"move","from":"/a","path":"/c"}]`,
			want:  `{"b":2,"c":1}`,
		},
		{
			name:  "copy",
			doc:   `{"a":1}`,
			patch: `[{"op":"copy","from":"/a","path":"/b"}]`,
			want:  `{"a":1,"b":1}`,
		},
		{
			name:  "test succeeds is a no-op",
			doc:   `{"a":1}`,
			patch: `[{"op":"test","path":"/a","value":1}]`,
			want:  `{"a":1}`,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc := mustParse(t, c.doc)
			patch := mustParse(t, c.patch)
			got, err := ApplyPatch(doc, patch)
			if err != nil {
				t.Fatalf("ApplyPatch: %v", err)
			}
			want := mustParse(t, c.want)
			if !EqualUnordered(got, want) {
				t.Errorf("ApplyPatch result = %v, want %v", got, want)
			}
		})
	}
}

func TestApplyPatchTestFails(t *testing.T) {
	doc := mustParse(t, `{"a":1}`)
	patch := mustParse(t, `[{"op":"test","path":"/a","value":2}]`)
	if _, err := ApplyPatch(doc, patch); err == nil {
		t.Fatal("expected a failing test operation to error")
	}
}

func TestApplyPatchLeavesOriginalUntouched(t *testing.T) {
	doc := mustParse(t, `{"a":1}`)
	patch := mustParse(t, `[{"op":"replace","path":"/a","value":2}]`)
	if _, err := ApplyPatch(doc, patch); err != nil {
		t.Fatal(err)
	}
	if doc.Get("a").NumberValue() != 1 {
		t.Fatal("ApplyPatch mutated its input document")
	}
}

func TestGeneratePatchRoundTrips(t *testing.T) {
	cases := [][2]string{
		{`{"a":1,"b":2}`, `{"a":1,"b":3}`},
		{`{"a":1}`, `{"a":1,"b":2}`},
		{`{"a":1,"b":2}`, `{"a":1}`},
		{`[1,2,3]`, `[1,2,3,4]`},
		{`[1,2,3]`, `[1,3]`},
		{`{"a":[1,{"x":1}]}`, `{"a":[1,{"x":2}]}`},
	}
	for _, c := range cases {
		from := mustParse(t, c[0])
		to := mustParse(t, c[1])
		patch, err := GeneratePatch(from, to)
		if err != nil {
			t.Fatalf("GeneratePatch(%q, %q): %v", c[0], c[1], err)
		}
		got, err := ApplyPatch(from, patch)
		if err != nil {
			t.Fatalf("ApplyPatch with generated patch: %v", err)
		}
		if !EqualUnordered(got, to) {
			t.Errorf("GeneratePatch(%q, %q) round trip = %v, want %v", c[0], c[1], got, to)
		}
	}
}
