// Package parser turns a pattern in the vregex dialect into an abstract
// syntax tree.
//
// The dialect is deliberately small: literals are the lowercase ASCII
// letters 'a'..'z', parentheses group, '*' is the Kleene star, and '+' is
// ALTERNATION (either-or), not the usual one-or-more quantifier. The
// pattern "a+b" matches exactly "a" and "b"; it does not match "aa". Do
// not "fix" this to POSIX/PCRE semantics.
//
// Grammar, lowest precedence first:
//
//	expr          := alternation
//	alternation   := concatenation ('+' concatenation)*
//	concatenation := repetition repetition*
//	repetition    := atom '*'*
//	atom          := '(' expr ')' | 'a'..'z'
//
// Both binary operators associate to the left. Consecutive stars nest,
// which is semantically redundant but not an error.
package parser

import "fmt"

// Node is an AST node. Exactly four kinds exist: Literal, Concat,
// Alternate and Star. Nodes are immutable once parsed.
type Node interface {
	node()
}

// Literal matches a single lowercase letter.
type Literal struct {
	Symbol byte
}

// Concat matches Left followed by Right.
type Concat struct {
	Left, Right Node
}

// Alternate matches either Left or Right. Written '+' in the dialect.
type Alternate struct {
	Left, Right Node
}

// Star matches zero or more repetitions of Inner.
type Star struct {
	Inner Node
}

func (Literal) node()   {}
func (Concat) node()    {}
func (Alternate) node() {}
func (Star) node()      {}

// ParseError reports a pattern that does not conform to the grammar.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Msg)
}

type parser struct {
	input string
	pos   int
}

// Parse parses pattern into an AST. It fails with a *ParseError when an
// atom is missing, a '(' is unmatched, a character outside 'a'..'z'
// appears where a literal is expected, or input remains after a complete
// expression. Parsing has no side effects beyond the returned tree.
func Parse(pattern string) (Node, error) {
	p := &parser{input: pattern}
	node, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.input) {
		return nil, p.errorf("unexpected %q after complete expression", p.input[p.pos])
	}
	return node, nil
}

func (p *parser) errorf(format string, args ...interface{}) *ParseError {
	return &ParseError{Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) expr() (Node, error) { return p.alternation() }

func (p *parser) alternation() (Node, error) {
	left, err := p.concatenation()
	if err != nil {
		return nil, err
	}
	for {
		c, ok := p.peek()
		if !ok || c != '+' {
			return left, nil
		}
		p.pos++
		right, err := p.concatenation()
		if err != nil {
			return nil, err
		}
		left = Alternate{Left: left, Right: right}
	}
}

func (p *parser) concatenation() (Node, error) {
	left, err := p.repetition()
	if err != nil {
		return nil, err
	}
	for {
		c, ok := p.peek()
		if !ok || !startsAtom(c) {
			return left, nil
		}
		right, err := p.repetition()
		if err != nil {
			return nil, err
		}
		left = Concat{Left: left, Right: right}
	}
}

func (p *parser) repetition() (Node, error) {
	node, err := p.atom()
	if err != nil {
		return nil, err
	}
	for {
		c, ok := p.peek()
		if !ok || c != '*' {
			return node, nil
		}
		p.pos++
		node = Star{Inner: node}
	}
}

func (p *parser) atom() (Node, error) {
	c, ok := p.peek()
	if !ok {
		return nil, p.errorf("unexpected end of pattern, expected atom")
	}
	if c == '(' {
		open := p.pos
		p.pos++
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if c, ok = p.peek(); !ok || c != ')' {
			return nil, &ParseError{Pos: open, Msg: "unmatched '('"}
		}
		p.pos++
		return inner, nil
	}
	if c < 'a' || c > 'z' {
		return nil, p.errorf("unexpected %q, expected literal 'a'..'z'", c)
	}
	p.pos++
	return Literal{Symbol: c}, nil
}

func startsAtom(c byte) bool {
	return c == '(' || (c >= 'a' && c <= 'z')
}
