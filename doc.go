// Ferki, adapted 2026

/*
Package stbjson represents, parses, emits, and transforms JSON documents
held as an in-memory value tree.

In contrast to encoding/json, stbjson is centered around a Value tree that
can be walked, mutated, diffed, and patched directly; every Value other
than Invalid and Raw serializes to valid JSON (a Raw payload is emitted
verbatim and is not checked). The tree model, number/string encoding, and the
pointer/patch/merge-patch layers are a Go-native rewrite of the semantics
implemented by the single-header stb_json C library: a parser produces a
Value tree, the tree is manipulated through Append/InsertAt/Detach/Replace
and the RFC 6901/6902/7386 helpers, and a serializer turns the tree back
into text.

TODO(ferki): expose a streaming parser for documents that don't fit in
memory; the current Parse family always buffers the full input.
*/
package stbjson // import "github.com/Silent762/STB-Style-Single-File-C-CPP-JSON-Parser-Generator-Header-Only-Library-With-Full-RFC-Compliance"
