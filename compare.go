package stbjson

// Equal reports whether a and b represent the same JSON value, treating
// objects as ordered (a and b must declare their members in the same
// order) and comparing numbers with compareDouble's epsilon only. This
// matches the source library's stb_json_compare.
//
// This package also exposes EqualUnordered, which treats object member
// order as insignificant and additionally requires equal int32
// projections for numbers; the two functions answer genuinely different
// questions (see SPEC_FULL.md §4.7) and callers should pick the one
// matching their use case rather than assume they agree.
func Equal(a, b *Value) bool {
	ak, bk := a.Kind(), b.Kind()
	if ak != bk {
		return false
	}
	switch ak {
	case Invalid, Null, True, False:
		return true
	case Number:
		return compareDouble(a.num, b.num)
	case String, Raw:
		return a.str == b.str
	case Array:
		if len(a.children) != len(b.children) {
			return false
		}
		for i := range a.children {
			if !Equal(a.children[i], b.children[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(a.children) != len(b.children) {
			return false
		}
		for i := range a.children {
			if a.children[i].key != b.children[i].key {
				return false
			}
			if !Equal(a.children[i], b.children[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// EqualUnordered reports whether a and b represent the same JSON value
// up to object member order, projecting each side through
// SortObjectKeys first and comparing numbers by both their int32
// projection and compareDouble, matching the source library's
// compare_json (used internally by GeneratePatch and
// GenerateMergePatch to decide whether two values already agree).
func EqualUnordered(a, b *Value) bool {
	ak, bk := a.Kind(), b.Kind()
	if ak != bk {
		return false
	}
	switch ak {
	case Invalid, Null, True, False:
		return true
	case Number:
		return a.numInt == b.numInt && compareDouble(a.num, b.num)
	case String, Raw:
		return a.str == b.str
	case Array:
		if len(a.children) != len(b.children) {
			return false
		}
		for i := range a.children {
			if !EqualUnordered(a.children[i], b.children[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(a.children) != len(b.children) {
			return false
		}
		as := &Value{kind: Object, children: append([]*Value(nil), a.children...)}
		bs := &Value{kind: Object, children: append([]*Value(nil), b.children...)}
		SortObjectKeys(as)
		SortObjectKeys(bs)
		for i := range as.children {
			if as.children[i].key != bs.children[i].key {
				return false
			}
			if !EqualUnordered(as.children[i], bs.children[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// SortObjectKeys reorders the direct members of Object o into ascending
// key order in place, using a hand-rolled stable top-down merge sort
// (rather than sort.Slice) to mirror the source library's sort_object,
// which merge-sorts its intrusive linked list. It does not recurse into
// nested objects.
func SortObjectKeys(o *Value) {
	if o == nil || o.kind != Object || len(o.children) < 2 {
		return
	}
	o.children = mergeSortByKey(o.children)
}

func mergeSortByKey(items []*Value) []*Value {
	if len(items) < 2 {
		return items
	}
	mid := len(items) / 2
	left := mergeSortByKey(append([]*Value(nil), items[:mid]...))
	right := mergeSortByKey(append([]*Value(nil), items[mid:]...))
	return mergeByKey(left, right)
}

func mergeByKey(left, right []*Value) []*Value {
	out := make([]*Value, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if left[i].key <= right[j].key {
			out = append(out, left[i])
			i++
		} else {
			out = append(out, right[j])
			j++
		}
	}
	out = append(out, left[i:]...)
	out = append(out, right[j:]...)
	return out
}
