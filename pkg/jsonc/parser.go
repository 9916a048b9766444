// Package jsonc parses JSON-with-comments documents into a concrete
// syntax tree. Every node carries the byte offset and length of its
// source text, objects preserve property order (duplicate keys
// included), and string nodes keep both raw and decoded forms.
//
// # Usage
//
//	root, err := jsonc.Parse(src)
//	if err != nil {
//	    // *jsonc.ParseError with line/column/offset
//	}
//	commands := root.Property("commands")
//
// Line (//) and block (/* */) comments are skipped. Trailing commas in
// objects and arrays are tolerated, since editor buffers carry them
// mid-edit.
package jsonc

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// parser parses JSONC into a Node tree.
type parser struct {
	lexer  *lexer
	token  token // current token
	peek   token // lookahead token
	errors []error
}

// Parse parses the input and returns the root node. On failure the
// returned error is a *ParseError carrying the position of the first
// problem.
func Parse(input string) (*Node, error) {
	p := &parser{lexer: newLexer(input)}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()

	root := p.parseValue()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	if p.token.typ != tokenEOF {
		return nil, &ParseError{Pos: p.token.pos, Message: fmt.Sprintf(ErrTrailingContent, p.token.typ)}
	}
	return root, nil
}

// nextToken advances to the next token.
func (p *parser) nextToken() {
	p.token = p.peek
	p.peek = p.lexer.next()
}

// errorf records a parse error at the given position. Only the first
// error is reported to callers; parsing stops unwinding after it.
func (p *parser) errorf(pos Position, format string, args ...any) {
	p.errors = append(p.errors, &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// errorUnexpected records an unexpected-token error, preferring the
// lexer's own message for illegal tokens.
func (p *parser) errorUnexpected(expected string) {
	if p.token.typ == tokenIllegal && p.token.msg != "" {
		p.errorf(p.token.pos, "%s", p.token.msg)
		return
	}
	p.errorf(p.token.pos, ErrUnexpectedToken, p.token.typ, expected)
}

// parseValue parses any JSON value. Returns nil after recording an
// error.
func (p *parser) parseValue() *Node {
	switch p.token.typ {
	case tokenLBrace:
		return p.parseObject()
	case tokenLBracket:
		return p.parseArray()
	case tokenString:
		return p.parseString()
	case tokenNumber:
		return p.parseNumber()
	case tokenTrue, tokenFalse:
		n := &Node{
			Kind:   BoolNode,
			Offset: p.token.pos.Offset,
			Length: len(p.token.lit),
			Pos:    p.token.pos,
			text:   p.token.lit,
			b:      p.token.typ == tokenTrue,
		}
		p.nextToken()
		return n
	case tokenNull:
		n := &Node{
			Kind:   NullNode,
			Offset: p.token.pos.Offset,
			Length: len(p.token.lit),
			Pos:    p.token.pos,
			text:   p.token.lit,
		}
		p.nextToken()
		return n
	default:
		p.errorUnexpected("a value")
		return nil
	}
}

// parseObject parses { "key": value, ... }. Property order and
// duplicate keys are preserved.
func (p *parser) parseObject() *Node {
	obj := &Node{
		Kind:   ObjectNode,
		Offset: p.token.pos.Offset,
		Pos:    p.token.pos,
	}
	p.nextToken() // consume '{'

	for p.token.typ != tokenRBrace && p.token.typ != tokenEOF {
		if p.token.typ != tokenString {
			p.errorUnexpected("a property name")
			return nil
		}
		keyTok := p.token
		key, err := decodeString(keyTok.lit)
		if err != nil {
			p.errorf(keyTok.pos, ErrInvalidEscape, keyTok.lit)
			return nil
		}
		p.nextToken()

		if p.token.typ != tokenColon {
			p.errorUnexpected("':'")
			return nil
		}
		p.nextToken()

		val := p.parseValue()
		if val == nil {
			return nil
		}

		prop := &Node{
			Kind:   PropertyNode,
			Offset: keyTok.pos.Offset,
			Length: val.End() - keyTok.pos.Offset,
			Pos:    keyTok.pos,
			Key:    key,
			Value:  val,
		}
		prop.text = p.slice(prop.Offset, prop.End())
		obj.Children = append(obj.Children, prop)

		if p.token.typ != tokenComma {
			break
		}
		p.nextToken() // consume ',' (a trailing comma lands on '}')
	}

	if p.token.typ != tokenRBrace {
		p.errorUnexpected("'}'")
		return nil
	}
	obj.Length = p.token.end() - obj.Offset
	obj.text = p.slice(obj.Offset, obj.End())
	p.nextToken() // consume '}'
	return obj
}

// parseArray parses [ value, ... ].
func (p *parser) parseArray() *Node {
	arr := &Node{
		Kind:   ArrayNode,
		Offset: p.token.pos.Offset,
		Pos:    p.token.pos,
	}
	p.nextToken() // consume '['

	for p.token.typ != tokenRBracket && p.token.typ != tokenEOF {
		elem := p.parseValue()
		if elem == nil {
			return nil
		}
		arr.Children = append(arr.Children, elem)

		if p.token.typ != tokenComma {
			break
		}
		p.nextToken() // consume ',' (a trailing comma lands on ']')
	}

	if p.token.typ != tokenRBracket {
		p.errorUnexpected("']'")
		return nil
	}
	arr.Length = p.token.end() - arr.Offset
	arr.text = p.slice(arr.Offset, arr.End())
	p.nextToken() // consume ']'
	return arr
}

// parseString parses a string literal node.
func (p *parser) parseString() *Node {
	tok := p.token
	val, err := decodeString(tok.lit)
	if err != nil {
		p.errorf(tok.pos, ErrInvalidEscape, tok.lit)
		return nil
	}
	p.nextToken()
	return &Node{
		Kind:   StringNode,
		Offset: tok.pos.Offset,
		Length: len(tok.lit),
		Pos:    tok.pos,
		text:   tok.lit,
		str:    val,
	}
}

// parseNumber parses a number literal node.
func (p *parser) parseNumber() *Node {
	tok := p.token
	num, err := strconv.ParseFloat(tok.lit, 64)
	if err != nil {
		p.errorf(tok.pos, ErrInvalidNumber, tok.lit)
		return nil
	}
	p.nextToken()
	return &Node{
		Kind:   NumberNode,
		Offset: tok.pos.Offset,
		Length: len(tok.lit),
		Pos:    tok.pos,
		text:   tok.lit,
		num:    num,
	}
}

// slice returns input[start:end].
func (p *parser) slice(start, end int) string {
	return p.lexer.input[start:end]
}

// decodeString decodes a raw JSON string literal, quotes included.
// encoding/json handles the full escape grammar (\uXXXX, surrogate
// pairs) so we do not reimplement it.
func decodeString(raw string) (string, error) {
	var s string
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return "", err
	}
	return s, nil
}
