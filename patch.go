package stbjson

import (
	"strconv"

	"github.com/pkg/errors"
)

// ApplyPatch applies the RFC 6902 JSON Patch document patch to a copy
// of doc and returns the result; doc itself is left unmodified. It
// stops at, and reports, the first operation that fails, wrapped in a
// *PatchError identifying the failing operation's index, op and path,
// matching the source library's apply_patch all-or-nothing contract.
func ApplyPatch(doc, patch *Value) (*Value, error) {
	if !patch.IsArray() {
		return nil, errors.New("stbjson: patch document must be an array")
	}
	result, err := doc.Duplicate(true)
	if err != nil {
		return nil, err
	}
	for i, op := range patch.children {
		if err := applyOp(&result, op); err != nil {
			opName, _ := stringMember(op, "op")
			path, _ := stringMember(op, "path")
			return nil, newPatchError(i, opName, path, err)
		}
	}
	return result, nil
}

func stringMember(op *Value, name string) (string, bool) {
	m := op.Get(name)
	if !m.IsString() {
		return "", false
	}
	return m.StringValue(), true
}

func applyOp(doc **Value, op *Value) error {
	if !op.IsObject() {
		return errors.Wrap(ErrInvalidOp, "operation must be an object")
	}
	name, ok := stringMember(op, "op")
	if !ok {
		return errors.Wrap(ErrInvalidOp, "missing \"op\"")
	}
	path, ok := stringMember(op, "path")
	if !ok {
		return errors.Wrap(ErrOperandMissing, "missing \"path\"")
	}

	switch name {
	case "test":
		val := op.Get("value")
		if val == nil {
			return errors.Wrap(ErrOperandMissing, "\"test\" requires \"value\"")
		}
		target, err := Pointer(*doc, path)
		if err != nil {
			return err
		}
		if !EqualUnordered(target, val) {
			return ErrTestFailed
		}
		return nil
	case "add":
		val := op.Get("value")
		if val == nil {
			return errors.Wrap(ErrOperandMissing, "\"add\" requires \"value\"")
		}
		return addAtPointer(doc, path, val)
	case "remove":
		return removeAtPointer(doc, path)
	case "replace":
		val := op.Get("value")
		if val == nil {
			return errors.Wrap(ErrOperandMissing, "\"replace\" requires \"value\"")
		}
		if _, err := Pointer(*doc, path); err != nil {
			return err
		}
		if path != "" {
			if err := removeAtPointer(doc, path); err != nil {
				return err
			}
		}
		return addAtPointer(doc, path, val)
	case "move":
		from, ok := stringMember(op, "from")
		if !ok {
			return errors.Wrap(ErrOperandMissing, "\"move\" requires \"from\"")
		}
		val, err := Pointer(*doc, from)
		if err != nil {
			return err
		}
		cp, err := val.Duplicate(true)
		if err != nil {
			return err
		}
		if err := removeAtPointer(doc, from); err != nil {
			return err
		}
		return addAtPointer(doc, path, cp)
	case "copy":
		from, ok := stringMember(op, "from")
		if !ok {
			return errors.Wrap(ErrOperandMissing, "\"copy\" requires \"from\"")
		}
		val, err := Pointer(*doc, from)
		if err != nil {
			return err
		}
		cp, err := val.Duplicate(true)
		if err != nil {
			return err
		}
		return addAtPointer(doc, path, cp)
	default:
		return errors.Wrapf(ErrInvalidOp, "unknown op %q", name)
	}
}

func splitParentPointer(pointer string) (parentPointer, lastToken string, err error) {
	if pointer == "" {
		return "", "", nil
	}
	idx := lastSlash(pointer)
	if idx < 0 {
		return "", "", errors.Wrap(ErrPathNotFound, "pointer must start with '/' or be empty")
	}
	return pointer[:idx], decodePointerToken(pointer[idx+1:]), nil
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}

func addAtPointer(doc **Value, pointer string, val *Value) error {
	if pointer == "" {
		*doc = val
		return nil
	}
	parentPointer, token, err := splitParentPointer(pointer)
	if err != nil {
		return err
	}
	parent, err := Pointer(*doc, parentPointer)
	if err != nil {
		return err
	}
	switch parent.Kind() {
	case Object:
		return parent.Set(token, val)
	case Array:
		if token == arrayAppendToken {
			return parent.Append(val)
		}
		idx, err := decodeArrayInsertIndex(token, len(parent.children))
		if err != nil {
			return err
		}
		return parent.InsertAt(idx, val)
	default:
		return errors.Wrapf(ErrPathNotFound, "cannot add into %s", parent.Kind())
	}
}

func decodeArrayInsertIndex(tok string, length int) (int, error) {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, errors.Wrapf(ErrPathNotFound, "invalid array index %q", tok)
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 || n > length {
		return 0, errors.Wrapf(ErrPathNotFound, "array index %d out of range", n)
	}
	return n, nil
}

func removeAtPointer(doc **Value, pointer string) error {
	if pointer == "" {
		return errors.Wrap(ErrInvalidOp, "cannot remove the document root")
	}
	parentPointer, token, err := splitParentPointer(pointer)
	if err != nil {
		return err
	}
	parent, err := Pointer(*doc, parentPointer)
	if err != nil {
		return err
	}
	switch parent.Kind() {
	case Object:
		if !parent.Delete(token) {
			return errors.Wrapf(ErrPathNotFound, "no member %q", token)
		}
		return nil
	case Array:
		idx, err := decodeArrayIndex(token, len(parent.children))
		if err != nil {
			return err
		}
		_, ok := parent.DetachAt(idx)
		if !ok {
			return errors.Wrapf(ErrPathNotFound, "array index %d out of range", idx)
		}
		return nil
	default:
		return errors.Wrapf(ErrPathNotFound, "cannot remove from %s", parent.Kind())
	}
}

// AddPatchOp appends one operation object to the patch array
// (constructed with NewArray) at patch, built from op/path/from/value
// as applicable. It is a convenience wrapper matching the source
// library's stb_json_utils_addpatchtoarray; from and value may be nil.
func AddPatchOp(patch *Value, op, path, from string, value *Value) error {
	entry := NewObject()
	_ = entry.AddString("op", op)
	_ = entry.AddString("path", path)
	if from != "" {
		_ = entry.AddString("from", from)
	}
	if value != nil {
		_ = entry.Set("value", value)
	}
	return patch.Append(entry)
}

// GeneratePatch computes an RFC 6902 JSON Patch document that, applied
// to from via ApplyPatch, produces a document equal to to under
// EqualUnordered. It follows the source library's create_patches
// strategy: differing scalar kinds or values become a single
// "replace" at the current path; arrays are diffed pairwise by index
// with a tail of "remove" (if from is longer) or "add" at "/-" (if to
// is longer); objects are diffed by a sorted merge-walk of both sides'
// keys, emitting "remove" for keys only in from, "add" for keys only in
// to, and recursing for keys in both.
func GeneratePatch(from, to *Value) (*Value, error) {
	patch := NewArray()
	if err := generatePatchAt("", from, to, patch); err != nil {
		return nil, err
	}
	return patch, nil
}

func generatePatchAt(path string, from, to *Value, patch *Value) error {
	if from.Kind() != to.Kind() {
		return AddPatchOp(patch, "replace", path, "", to)
	}
	switch from.Kind() {
	case Array:
		return generateArrayPatch(path, from, to, patch)
	case Object:
		return generateObjectPatch(path, from, to, patch)
	default:
		if !EqualUnordered(from, to) {
			return AddPatchOp(patch, "replace", path, "", to)
		}
		return nil
	}
}

func generateArrayPatch(path string, from, to *Value, patch *Value) error {
	n := len(from.children)
	if len(to.children) < n {
		n = len(to.children)
	}
	for i := 0; i < n; i++ {
		if err := generatePatchAt(path+"/"+strconv.Itoa(i), from.children[i], to.children[i], patch); err != nil {
			return err
		}
	}
	for i := len(from.children) - 1; i >= n; i-- {
		if err := AddPatchOp(patch, "remove", path+"/"+strconv.Itoa(i), "", nil); err != nil {
			return err
		}
	}
	for i := n; i < len(to.children); i++ {
		if err := AddPatchOp(patch, "add", path+"/-", "", to.children[i]); err != nil {
			return err
		}
	}
	return nil
}

func generateObjectPatch(path string, from, to *Value, patch *Value) error {
	fromSorted := &Value{kind: Object, children: append([]*Value(nil), from.children...)}
	toSorted := &Value{kind: Object, children: append([]*Value(nil), to.children...)}
	SortObjectKeys(fromSorted)
	SortObjectKeys(toSorted)

	i, j := 0, 0
	for i < len(fromSorted.children) && j < len(toSorted.children) {
		fc, tc := fromSorted.children[i], toSorted.children[j]
		switch {
		case fc.key < tc.key:
			if err := AddPatchOp(patch, "remove", path+"/"+encodePointerToken(fc.key), "", nil); err != nil {
				return err
			}
			i++
		case fc.key > tc.key:
			if err := AddPatchOp(patch, "add", path+"/"+encodePointerToken(tc.key), "", tc); err != nil {
				return err
			}
			j++
		default:
			if err := generatePatchAt(path+"/"+encodePointerToken(fc.key), fc, tc, patch); err != nil {
				return err
			}
			i++
			j++
		}
	}
	for ; i < len(fromSorted.children); i++ {
		if err := AddPatchOp(patch, "remove", path+"/"+encodePointerToken(fromSorted.children[i].key), "", nil); err != nil {
			return err
		}
	}
	for ; j < len(toSorted.children); j++ {
		if err := AddPatchOp(patch, "add", path+"/"+encodePointerToken(toSorted.children[j].key), "", toSorted.children[j]); err != nil {
			return err
		}
	}
	return nil
}
