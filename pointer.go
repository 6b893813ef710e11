package stbjson

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Pointer resolves a JSON Pointer (RFC 6901) against root and returns
// the Value it identifies. The empty string denotes root itself.
//
// decodePointerToken replaces "~1" before "~0" (so "~01" decodes to
// "~1", not "/"), matching the source library's decode_pointer_inplace.
func Pointer(root *Value, pointer string) (*Value, error) {
	return resolvePointer(root, pointer, true)
}

// PointerFold is Pointer's ASCII-case-insensitive counterpart for
// object member lookups; array indices are unaffected.
func PointerFold(root *Value, pointer string) (*Value, error) {
	return resolvePointer(root, pointer, false)
}

func resolvePointer(root *Value, pointer string, caseSensitive bool) (*Value, error) {
	if pointer == "" {
		return root, nil
	}
	if pointer[0] != '/' {
		return nil, errors.Wrap(ErrPathNotFound, "pointer must start with '/' or be empty")
	}
	cur := root
	for _, tok := range strings.Split(pointer[1:], "/") {
		key := decodePointerToken(tok)
		switch cur.Kind() {
		case Object:
			var next *Value
			if caseSensitive {
				next = cur.Get(key)
			} else {
				next = cur.GetFold(key)
			}
			if next == nil {
				return nil, errors.Wrapf(ErrPathNotFound, "no member %q", key)
			}
			cur = next
		case Array:
			idx, err := decodeArrayIndex(key, len(cur.children))
			if err != nil {
				return nil, err
			}
			cur = cur.children[idx]
		default:
			return nil, errors.Wrapf(ErrPathNotFound, "cannot descend into %s", cur.Kind())
		}
	}
	return cur, nil
}

// decodePointerToken un-escapes one '/'-delimited reference token:
// "~1" becomes "/" and "~0" becomes "~", with "~1" replaced first so
// "~01" becomes "~1" rather than "/".
func decodePointerToken(tok string) string {
	if !strings.Contains(tok, "~") {
		return tok
	}
	tok = strings.ReplaceAll(tok, "~1", "/")
	tok = strings.ReplaceAll(tok, "~0", "~")
	return tok
}

// encodePointerToken is decodePointerToken's inverse, used by
// GeneratePatch and FindPointer to build reference tokens: '~' is
// escaped before '/' so decoding recovers the original token.
func encodePointerToken(tok string) string {
	if !strings.ContainsAny(tok, "~/") {
		return tok
	}
	tok = strings.ReplaceAll(tok, "~", "~0")
	tok = strings.ReplaceAll(tok, "/", "~1")
	return tok
}

// arrayAppendToken is the RFC 6901/6902 "-" token denoting one past the
// last element of an array.
const arrayAppendToken = "-"

func decodeArrayIndex(tok string, length int) (int, error) {
	if tok == arrayAppendToken {
		return -1, errors.Wrap(ErrPathNotFound, "'-' does not resolve to an existing element")
	}
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, errors.Wrapf(ErrPathNotFound, "invalid array index %q", tok)
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, errors.Wrapf(ErrPathNotFound, "invalid array index %q", tok)
	}
	if n >= length {
		return 0, errors.Wrapf(ErrPathNotFound, "array index %d out of range", n)
	}
	return n, nil
}

// FindPointer walks down from root and returns the JSON Pointer string
// that resolves to target, found by pointer identity. It reports false
// if target is not reachable from root. Unlike the source library's
// parent-pointer-based pointer construction, this performs a recursive
// descent from the root, since neither the source struct nor Value
// stores a parent link.
func FindPointer(root, target *Value) (string, bool) {
	if root == target {
		return "", true
	}
	switch root.Kind() {
	case Array:
		for i, c := range root.children {
			if p, ok := FindPointer(c, target); ok {
				return "/" + strconv.Itoa(i) + p, true
			}
		}
	case Object:
		for _, c := range root.children {
			if p, ok := FindPointer(c, target); ok {
				return "/" + encodePointerToken(c.key) + p, true
			}
		}
	}
	return "", false
}
