package stbjson

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ParseOptions controls the permissiveness and safety limits of Parse
// and its variants.
type ParseOptions struct {
	// MaxDepth bounds array/object nesting. Zero selects DefaultMaxDepth,
	// matching the source library's STB_JSON_NESTING_LIMIT.
	MaxDepth int

	// AllowLeadingPlus permits a leading '+' sign on number literals,
	// which RFC 8259 forbids but which the source library's lenient
	// strtod-based scanner accepts. DefaultParseOptions (and so Parse)
	// sets it to true; the zero value leaves it false. See SPEC_FULL.md
	// §6 for the rationale.
	AllowLeadingPlus bool

	// AllowTrailingGarbage, when false (the default), requires the
	// entire input (after optional trailing whitespace) to be consumed
	// by a single value.
	AllowTrailingGarbage bool
}

// DefaultMaxDepth is the nesting limit applied when ParseOptions.MaxDepth
// is zero, matching the source library's STB_JSON_NESTING_LIMIT.
const DefaultMaxDepth = 1000

func (o ParseOptions) withDefaults() ParseOptions {
	if o.MaxDepth == 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	return o
}

// DefaultParseOptions returns the permissive defaults Parse uses when
// called without explicit ParseOptions: bounded nesting and a leading
// '+' allowed on numbers.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{MaxDepth: DefaultMaxDepth, AllowLeadingPlus: true}
}

// Parse parses a complete JSON document from s using DefaultParseOptions.
func Parse(s string) (*Value, error) {
	return ParseWithOptions(s, DefaultParseOptions())
}

// ParseString is an alias of Parse kept for readers coming from the
// []byte-oriented standard library convention.
func ParseString(s string) (*Value, error) { return Parse(s) }

// ParseBytes parses a complete JSON document from b.
func ParseBytes(b []byte) (*Value, error) { return Parse(string(b)) }

// ParseReader parses a complete JSON document read in full from r.
func ParseReader(r io.Reader) (*Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "stbjson: read")
	}
	return Parse(string(data))
}

// ParseWithOptions parses a complete JSON document from s under opts.
func ParseWithOptions(s string, opts ParseOptions) (*Value, error) {
	opts = opts.withDefaults()
	s = stripBOM(s)
	tokens, quit := lex(s)
	defer quit()
	p := &parser{opts: opts, tokens: tokens}
	p.advance()
	v, err := p.parseValue(0)
	if err != nil {
		recordLastError(err)
		return nil, err
	}
	if !opts.AllowTrailingGarbage {
		if p.cur.typ != tokEOF {
			err := newParseError(p.cur.offset, p.cur.line, p.cur.column,
				errors.Wrapf(ErrSyntax, "unexpected trailing token %s", p.cur))
			recordLastError(err)
			return nil, err
		}
	}
	return v, nil
}

func stripBOM(s string) string {
	const bom = "\uFEFF"
	return strings.TrimPrefix(s, bom)
}

// parser drives the channel fed by lex with one token of lookahead,
// generalizing the source's expektKey/expektValue/expektDelim state
// functions into a conventional recursive-descent walk indexed by
// nesting depth rather than by explicit state values.
type parser struct {
	opts   ParseOptions
	tokens <-chan token
	cur    token
}

func (p *parser) advance() {
	t, ok := <-p.tokens
	if !ok {
		p.cur = newToken(tokEOF, "", p.cur.offset, p.cur.line, p.cur.column)
		return
	}
	p.cur = t
}

func (p *parser) fail(msg string) error {
	if p.cur.typ == tokError {
		return p.cur.err
	}
	return newParseError(p.cur.offset, p.cur.line, p.cur.column, errors.Wrap(ErrSyntax, msg))
}

func (p *parser) parseValue(depth int) (*Value, error) {
	if depth > p.opts.MaxDepth {
		return nil, newParseError(p.cur.offset, p.cur.line, p.cur.column, ErrDepthExceeded)
	}
	switch p.cur.typ {
	case tokNull:
		p.advance()
		return NewNull(), nil
	case tokTrue:
		p.advance()
		return NewBool(true), nil
	case tokFalse:
		p.advance()
		return NewBool(false), nil
	case tokNumber:
		raw := p.cur.raw
		f, err := parseNumberLiteral(raw, p.opts)
		if err != nil {
			return nil, newParseError(p.cur.offset, p.cur.line, p.cur.column, err)
		}
		p.advance()
		return NewNumber(f), nil
	case tokString:
		s, err := decodeString(p.cur.raw)
		if err != nil {
			return nil, newParseError(p.cur.offset, p.cur.line, p.cur.column, err)
		}
		p.advance()
		return NewString(s), nil
	case tokArrayOpen:
		return p.parseArray(depth)
	case tokObjectOpen:
		return p.parseObject(depth)
	case tokError:
		return nil, p.fail("lexical error")
	default:
		return nil, p.fail("expected a value")
	}
}

func (p *parser) parseArray(depth int) (*Value, error) {
	p.advance() // consume '['
	arr := NewArray()
	if p.cur.typ == tokArrayClose {
		p.advance()
		return arr, nil
	}
	for {
		v, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		_ = arr.Append(v)
		switch p.cur.typ {
		case tokComma:
			p.advance()
			continue
		case tokArrayClose:
			p.advance()
			return arr, nil
		default:
			return nil, p.fail("expected ',' or ']'")
		}
	}
}

func (p *parser) parseObject(depth int) (*Value, error) {
	p.advance() // consume '{'
	obj := NewObject()
	if p.cur.typ == tokObjectClose {
		p.advance()
		return obj, nil
	}
	for {
		if p.cur.typ != tokString {
			return nil, p.fail("expected object key string")
		}
		key, err := decodeString(p.cur.raw)
		if err != nil {
			return nil, newParseError(p.cur.offset, p.cur.line, p.cur.column, err)
		}
		p.advance()
		if p.cur.typ != tokColon {
			return nil, p.fail("expected ':' after object key")
		}
		p.advance()
		v, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		v.key = key
		obj.children = append(obj.children, v)
		switch p.cur.typ {
		case tokComma:
			p.advance()
			continue
		case tokObjectClose:
			p.advance()
			return obj, nil
		default:
			return nil, p.fail("expected ',' or '}'")
		}
	}
}

// Valid reports whether s is syntactically valid JSON under
// DefaultParseOptions.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}
