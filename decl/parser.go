// Package decl parses binding declaration lists of the form
//
//	name [: type] = literal {, name [: type] = literal}
//
// into the bindings the dynamic resolver establishes on scope entry.
// Literals are double-quoted strings, integers, floats, booleans,
// null, durations, and timestamps; see ParseLiteral for how a bare
// literal's type is inferred.
package decl

import (
	"fmt"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	dynamic "github.com/dylan-lang/dynamic-binding"
)

type Parser struct {
	lexer *lexer
}

func NewParser(src string) *Parser {
	return &Parser{lexer: newLexer(src)}
}

func (p *Parser) error(msg string) error {
	return fmt.Errorf("declaration syntax error at offset %d: %s", p.lexer.pos(), msg)
}

// ParseBindings parses a complete declaration list.  The whole input
// must be consumed.
func ParseBindings(src string) ([]dynamic.Binding, error) {
	p := NewParser(src)
	var bindings []dynamic.Binding
	for {
		b, err := p.parseBinding()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
		if !p.lexer.match(',') {
			break
		}
	}
	if !p.lexer.eof() {
		return nil, p.error("trailing garbage after declaration")
	}
	return bindings, nil
}

// ParseLiteral parses a single literal and returns its value.  The
// whole input must be consumed.
func ParseLiteral(src string) (interface{}, error) {
	p := NewParser(src)
	v, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	if !p.lexer.eof() {
		return nil, p.error("trailing garbage after literal")
	}
	return v, nil
}

func (p *Parser) parseBinding() (dynamic.Binding, error) {
	name := p.lexer.scanIdentifier()
	if name == "" {
		return dynamic.Binding{}, p.error("binding name expected")
	}
	var typ dynamic.Type
	if p.lexer.match(':') {
		typeName := p.lexer.scanIdentifier()
		if typeName == "" {
			return dynamic.Binding{}, p.error("type name expected after ':'")
		}
		if typ = dynamic.LookupPrimitive(typeName); typ == nil {
			return dynamic.Binding{}, p.error(fmt.Sprintf("unknown type %q", typeName))
		}
	}
	if !p.lexer.match('=') {
		return dynamic.Binding{}, p.error(fmt.Sprintf("'=' expected after binding name %q", name))
	}
	v, err := p.parseLiteral()
	if err != nil {
		return dynamic.Binding{}, err
	}
	if typ != nil {
		if v, err = coerce(v, typ); err != nil {
			return dynamic.Binding{}, p.error(err.Error())
		}
	}
	return dynamic.Binding{Name: name, Type: typ, Value: v}, nil
}

func (p *Parser) parseLiteral() (interface{}, error) {
	if p.lexer.peek() == '"' {
		s, err := p.lexer.scanString()
		if err != nil {
			return nil, p.error(err.Error())
		}
		return s, nil
	}
	s := p.lexer.peekPrimitive()
	if s == "" {
		return nil, p.error("literal expected")
	}
	v, err := parsePrimitive(s)
	if err != nil {
		return nil, p.error(err.Error())
	}
	p.lexer.skip(len(s))
	return v, nil
}

// parsePrimitive tries the possible interpretations of a bare literal
// in order.  This is not intended to be performant; declaration lists
// are tiny.
func parsePrimitive(s string) (interface{}, error) {
	if s == "true" {
		return true, nil
	}
	if s == "false" {
		return false, nil
	}
	if s == "null" {
		return nil, nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	if v, err := strconv.ParseUint(s, 10, 64); err == nil {
		return v, nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	if v, err := time.ParseDuration(s); err == nil {
		return v, nil
	}
	if v, err := dateparse.ParseAny(s); err == nil {
		return v, nil
	}
	return nil, fmt.Errorf("cannot parse literal %q", s)
}

// coerce converts a literal's natural value to the declared type when
// the conversion is exact; anything else is left to the resolver's own
// type check.
func coerce(v interface{}, typ dynamic.Type) (interface{}, error) {
	if typ.Accepts(v) {
		return v, nil
	}
	switch typ.ID() {
	case dynamic.IDFloat64:
		switch v := v.(type) {
		case int64:
			return float64(v), nil
		case uint64:
			return float64(v), nil
		}
	case dynamic.IDUint64:
		if v, ok := v.(int64); ok && v >= 0 {
			return uint64(v), nil
		}
	case dynamic.IDInt64:
		if v, ok := v.(uint64); ok && v <= 1<<63-1 {
			return int64(v), nil
		}
	case dynamic.IDTime:
		if s, ok := v.(string); ok {
			if ts, err := dateparse.ParseAny(s); err == nil {
				return ts, nil
			}
		}
	case dynamic.IDDuration:
		if s, ok := v.(string); ok {
			if d, err := time.ParseDuration(s); err == nil {
				return d, nil
			}
		}
	}
	return nil, fmt.Errorf("literal %v (%T) does not conform to declared type %s", v, v, typ)
}
