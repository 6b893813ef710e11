package stbjson

// MergePatchApply applies an RFC 7386 JSON Merge Patch to a copy of
// target and returns the result; target is left unmodified. A patch
// that is itself not an Object replaces target wholesale, matching
// merge_patch's base case; otherwise each member of patch is applied
// recursively, with a Null member value deleting the corresponding
// member of target rather than setting it to null.
func MergePatchApply(target, patch *Value) (*Value, error) {
	if !patch.IsObject() {
		return patch.Duplicate(true)
	}
	var base *Value
	if target.IsObject() {
		cp, err := target.Duplicate(true)
		if err != nil {
			return nil, err
		}
		base = cp
	} else {
		base = NewObject()
	}
	for _, m := range patch.children {
		if m.IsNull() {
			base.Delete(m.key)
			continue
		}
		existing := base.Get(m.key)
		merged, err := MergePatchApply(existing, m)
		if err != nil {
			return nil, err
		}
		if err := base.Set(m.key, merged); err != nil {
			return nil, err
		}
	}
	return base, nil
}

// GenerateMergePatch computes an RFC 7386 Merge Patch document that,
// applied to from via MergePatchApply, produces a document equal to to
// under EqualUnordered. If from and to already agree it returns nil (no
// error), matching generate_merge_patch's "empty patch" convention;
// callers should check for a nil result before appending it anywhere.
func GenerateMergePatch(from, to *Value) (*Value, error) {
	if !from.IsObject() || !to.IsObject() {
		if EqualUnordered(from, to) {
			return nil, nil
		}
		return to.Duplicate(true)
	}

	patch := NewObject()
	for _, fc := range from.children {
		if to.Get(fc.key) == nil {
			_ = patch.Set(fc.key, NewNull())
		}
	}
	for _, tc := range to.children {
		fc := from.Get(tc.key)
		if fc == nil {
			cp, err := tc.Duplicate(true)
			if err != nil {
				return nil, err
			}
			if err := patch.Set(tc.key, cp); err != nil {
				return nil, err
			}
			continue
		}
		sub, err := GenerateMergePatch(fc, tc)
		if err != nil {
			return nil, err
		}
		if sub != nil {
			if err := patch.Set(tc.key, sub); err != nil {
				return nil, err
			}
		}
	}
	if patch.Len() == 0 {
		return nil, nil
	}
	return patch, nil
}
