package stbjson

import (
	"fmt"
	"testing"
)

func TestParseScalars(t *testing.T) {
	cases := map[string]Kind{
		"null":    Null,
		"true":    True,
		"false":   False,
		"42":      Number,
		`"hello"`: String,
		"[]":      Array,
		"{}":      Object,
	}
	for input, want := range cases {
		v, err := Parse(input)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", input, err)
			continue
		}
		if v.Kind() != want {
			t.Errorf("Parse(%q).Kind() = %v, want %v", input, v.Kind(), want)
		}
	}
}

func TestParseNested(t *testing.T) {
	v, err := Parse(`{"a": [1, 2, {"b": true}], "c": null}`)
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsObject() {
		t.Fatalf("root Kind() = %v, want Object", v.Kind())
	}
	a := v.Get("a")
	if a.Len() != 3 {
		t.Fatalf("a.Len() = %d, want 3", a.Len())
	}
	if got := a.children[2].Get("b").BoolValue(); got != true {
		t.Fatalf("a[2].b = %v, want true", got)
	}
	if !v.Get("c").IsNull() {
		t.Fatal("c is not null")
	}
}

func TestParseNumberLiterals(t *testing.T) {
	cases := map[string]float64{
		"0":       0,
		"-1":      -1,
		"3.14":    3.14,
		"1e10":    1e10,
		"-2.5e-3": -2.5e-3,
		"+5":      5,
	}
	for input, want := range cases {
		v, err := Parse(input)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", input, err)
			continue
		}
		if got := v.NumberValue(); got != want {
			t.Errorf("Parse(%q).NumberValue() = %v, want %v", input, got, want)
		}
	}
}

func TestParseStringEscapes(t *testing.T) {
	v, err := Parse(`"a\nb\tcA😀"`)
	if err != nil {
		t.Fatal(err)
	}
	want := "a\nb\tcA😀"
	if got := v.StringValue(); got != want {
		t.Errorf("StringValue() = %q, want %q", got, want)
	}
}

// TestParseSurrogatePairEscape exercises the two-escape surrogate-pair
// path in decodeUnicodeEscape directly, rather than relying on a
// literal astral character in the source file.
func TestParseSurrogatePairEscape(t *testing.T) {
	input := fmt.Sprintf(`"\u%04X\u%04X"`, 0xD834, 0xDD1E)
	v, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	want := string(rune(0x1D11E))
	if got := v.StringValue(); got != want {
		t.Errorf("StringValue() = %q, want %q (U+1D11E)", got, want)
	}
}

func TestParseStringEscapeBoundaryFailures(t *testing.T) {
	cases := map[string]string{
		"lone high surrogate":          fmt.Sprintf(`"\u%04X"`, 0xD800),
		"lone low surrogate":           fmt.Sprintf(`"\u%04X"`, 0xDC00),
		"high surrogate with non-pair": fmt.Sprintf(`"\u%04XA"`, 0xD800),
		"\\u0000 decodes to zero":      fmt.Sprintf(`"\u%04X"`, 0),
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(input); err == nil {
				t.Errorf("Parse(%q) succeeded, want a parse error (%s)", input, name)
			}
		})
	}
}

func TestParseRejectsSyntaxErrors(t *testing.T) {
	inputs := []string{
		"",
		"{",
		"[1,]",
		`{"a":}`,
		"tru",
		`"unterminated`,
		"[1 2]",
	}
	for _, input := range inputs {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}

func TestParseDepthLimit(t *testing.T) {
	deep := ""
	for i := 0; i < DefaultMaxDepth+10; i++ {
		deep += "["
	}
	if _, err := Parse(deep); err == nil {
		t.Fatal("expected depth-limit error for deeply nested input")
	}
}

func TestValid(t *testing.T) {
	if !Valid(`{"x":1}`) {
		t.Fatal("Valid should accept well-formed JSON")
	}
	if Valid(`{"x":}`) {
		t.Fatal("Valid should reject malformed JSON")
	}
}
