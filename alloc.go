package stbjson

// Allocator names the allocation strategy a Value tree was built under.
// Go's garbage collector makes manual allocation hooks unnecessary, so
// this package never calls back into one; Allocator exists only so code
// ported from the source library's stb_json_hooks / stb_json_inithooks
// has a matching name to hold onto, per SPEC_FULL.md §10.
type Allocator struct {
	// Name identifies the allocator for diagnostic purposes only.
	Name string
}

// DefaultAllocator is the Allocator named "runtime", standing for Go's
// runtime allocator and garbage collector.
var DefaultAllocator = Allocator{Name: "runtime"}
