package stbjson

import (
	"github.com/pkg/errors"
)

// Format selects how Serialize lays out its output.
type Format int

const (
	// Compact emits the minimum necessary punctuation: no spaces after
	// ':' or ',', no newlines.
	Compact Format = iota
	// Indented emits one child per line, indented with tabs, matching
	// the source library's stb_json_print (fmt=1) layout.
	Indented
)

// printBuffer is a growable byte buffer modeled on the source
// library's printbuffer. Writes append to buf directly; growth is left
// to Go's slice append, with no separate capacity check and no explicit
// size cap.
type printBuffer struct {
	buf    []byte
	format Format
	depth  int
}

func newPrintBuffer(format Format, hint int) *printBuffer {
	if hint <= 0 {
		hint = 256
	}
	return &printBuffer{buf: make([]byte, 0, hint), format: format}
}

func (p *printBuffer) writeByte(b byte) { p.buf = append(p.buf, b) }
func (p *printBuffer) writeString(s string) { p.buf = append(p.buf, s...) }

func (p *printBuffer) newlineIndent() {
	if p.format != Indented {
		return
	}
	p.writeByte('\n')
	for i := 0; i < p.depth; i++ {
		p.writeByte('\t')
	}
}

// Serialize renders v as JSON text under format. It returns
// ErrCircularLimit if v's subtree is deeper than the circular-reference
// safety limit, the same defense the source library's print() applies
// via its depth counter.
func (v *Value) Serialize(format Format) ([]byte, error) {
	pb := newPrintBuffer(format, 128)
	if err := pb.writeValue(v); err != nil {
		return nil, err
	}
	return pb.buf, nil
}

// SerializeInto renders v as JSON text into dst, returning the number of
// bytes written. It returns ErrBufferTooSmall without partially writing
// dst's tail beyond its capacity if dst is too small, mirroring the
// source library's stb_json_printpreallocated contract.
func (v *Value) SerializeInto(dst []byte, format Format) (int, error) {
	out, err := v.Serialize(format)
	if err != nil {
		return 0, err
	}
	if len(out) > len(dst) {
		return 0, ErrBufferTooSmall
	}
	copy(dst, out)
	return len(out), nil
}

// String renders v as compact JSON text, or "" for a nil or Invalid v.
func (v *Value) String() string {
	if v.IsInvalid() {
		return ""
	}
	out, err := v.Serialize(Compact)
	if err != nil {
		return ""
	}
	return string(out)
}

// MarshalText implements encoding.TextMarshaler by serializing v as
// compact JSON text.
func (v *Value) MarshalText() ([]byte, error) { return v.Serialize(Compact) }

func (pb *printBuffer) writeValue(v *Value) error {
	if pb.depth > circularWalkLimit {
		return ErrCircularLimit
	}
	switch v.Kind() {
	case Null:
		pb.writeString("null")
	case True:
		pb.writeString("true")
	case False:
		pb.writeString("false")
	case Number:
		pb.writeString(formatNumber(v.num, v.numInt))
	case String:
		pb.writeString(encodeString(v.str))
	case Raw:
		pb.writeString(v.str)
	case Array:
		return pb.writeArray(v)
	case Object:
		return pb.writeObject(v)
	default:
		return errors.New("stbjson: cannot serialize an Invalid value")
	}
	return nil
}

func (pb *printBuffer) writeArray(v *Value) error {
	pb.writeByte('[')
	pb.depth++
	for i, c := range v.children {
		if i > 0 {
			pb.writeByte(',')
		}
		pb.newlineIndent()
		if err := pb.writeValue(c); err != nil {
			return err
		}
	}
	pb.depth--
	if len(v.children) > 0 {
		pb.newlineIndent()
	}
	pb.writeByte(']')
	return nil
}

func (pb *printBuffer) writeObject(v *Value) error {
	pb.writeByte('{')
	pb.depth++
	for i, c := range v.children {
		if i > 0 {
			pb.writeByte(',')
		}
		pb.newlineIndent()
		pb.writeString(encodeString(c.key))
		pb.writeByte(':')
		if pb.format == Indented {
			pb.writeByte('\t')
		}
		if err := pb.writeValue(c); err != nil {
			return err
		}
	}
	pb.depth--
	if len(v.children) > 0 {
		pb.newlineIndent()
	}
	pb.writeByte('}')
	return nil
}

// circularWalkLimit bounds the recursion any whole-tree walk (print,
// Duplicate, compare) will perform, matching the source library's
// STB_JSON_CIRCULAR_LIMIT safety net against accidentally-cyclic trees
// built by hand through Append/Set rather than through Parse.
const circularWalkLimit = 10000
