package stbjson

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors returned (possibly wrapped via github.com/pkg/errors)
// by the parser, pointer resolver, and patch/merge-patch engines. Callers
// should compare against these with errors.Is rather than matching
// error-message text.
var (
	// ErrDepthExceeded is returned by the parser when nesting exceeds
	// ParseOptions.MaxDepth.
	ErrDepthExceeded = errors.New("stbjson: nesting depth exceeded")

	// ErrCircularLimit is returned by Duplicate and the serializer when
	// a subtree is deeper than the circular-reference safety limit.
	ErrCircularLimit = errors.New("stbjson: circular reference limit exceeded")

	// ErrPathNotFound is returned when a JSON Pointer does not resolve
	// against a document, or an array/object index is out of range.
	ErrPathNotFound = errors.New("stbjson: path not found")

	// ErrOperandMissing is returned by ApplyPatch when an operation is
	// missing a required member ("path", "value", "from").
	ErrOperandMissing = errors.New("stbjson: patch operation missing required member")

	// ErrInvalidOp is returned by ApplyPatch when "op" is absent or not
	// one of add/remove/replace/move/copy/test.
	ErrInvalidOp = errors.New("stbjson: invalid patch operation")

	// ErrTestFailed is returned by ApplyPatch when a "test" operation's
	// value does not match the document.
	ErrTestFailed = errors.New("stbjson: patch test operation failed")

	// ErrBufferTooSmall is returned by SerializeInto when the supplied
	// buffer cannot hold the serialized document.
	ErrBufferTooSmall = errors.New("stbjson: destination buffer too small")

	// ErrSyntax is wrapped into *ParseError by the lexer and parser on
	// malformed input.
	ErrSyntax = errors.New("stbjson: syntax error")
)

// ParseError reports a lexical or syntactic failure while parsing JSON
// text. Offset is the zero-based byte offset of the failure in the
// input; Line and Column are 1-based.
type ParseError struct {
	Offset int
	Line   int
	Column int
	Err    error
}

func newParseError(offset, line, column int, err error) *ParseError {
	return &ParseError{Offset: offset, Line: line, Column: column, Err: errors.Wrap(err, "parse")}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("stbjson: %v at line %d, column %d (offset %d)", e.Err, e.Line, e.Column, e.Offset)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Where returns a short "line:column" description of where e occurred,
// for embedding in a larger diagnostic message.
func (e *ParseError) Where() string {
	return fmt.Sprintf("%d:%d", e.Line, e.Column)
}

// PatchError reports the failure of a single operation within a JSON
// Patch document. Index is the zero-based position of the failing
// operation in the patch array.
type PatchError struct {
	Index int
	Op    string
	Path  string
	Err   error
}

func newPatchError(index int, op, path string, err error) *PatchError {
	return &PatchError{Index: index, Op: op, Path: path, Err: err}
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("stbjson: patch op %d (%q at %q): %v", e.Index, e.Op, e.Path, e.Err)
}

func (e *PatchError) Unwrap() error { return e.Err }
