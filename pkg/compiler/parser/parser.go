// Package parser segments a token stream into the global region and the
// top-level functions of a .int source file.
//
// Segmentation is purely positional. No tree is built: function bodies and
// the global region stay flat token slices.
package parser

import (
	"github.com/zurustar/intc/pkg/compiler/token"
)

// Parser segments a token stream.
type Parser struct {
	tokens []token.Token
}

// New creates a new Parser over tokens.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Segment is shorthand for New(tokens).ParseProgram().
func Segment(tokens []token.Token) (*Program, error) {
	return New(tokens).ParseProgram()
}

// ParseProgram extracts the global region and every function.
func (p *Parser) ParseProgram() (*Program, error) {
	program := NewProgram()

	globals, err := p.ParseGlobals()
	if err != nil {
		return nil, err
	}
	program.Globals = globals

	for _, pos := range p.signatures() {
		fn, err := p.parseFunction(pos)
		if err != nil {
			return nil, err
		}
		program.Add(fn)
	}

	return program, nil
}

// ParseGlobals returns the tokens between the braces following the first
// 'global' keyword. A source without a global region yields nil.
func (p *Parser) ParseGlobals() ([]token.Token, error) {
	pos := -1
	for i, tok := range p.tokens {
		if tok.IsKeyword(token.KEY_GLOBAL) {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil, nil
	}

	open := pos + 1
	if open >= len(p.tokens) || !p.tokens[open].Is(token.OP_SC_OPEN) {
		return nil, newStructuralError(p.tokens, open, "'{' after global")
	}

	end, err := p.matchScope(open)
	if err != nil {
		return nil, err
	}
	return p.tokens[open+1 : end], nil
}

// signatures returns the index of every type, identifier, '(' triple.
func (p *Parser) signatures() []int {
	var positions []int
	for i := 0; i+2 < len(p.tokens); i++ {
		if p.tokens[i].Kind == token.PRIMITIVE &&
			p.tokens[i+1].Kind == token.IDENT &&
			p.tokens[i+2].Is(token.OP_BR_OPEN) {
			positions = append(positions, i)
		}
	}
	return positions
}

func (p *Parser) parseFunction(pos int) (*Function, error) {
	fn := &Function{
		ReturnType: p.tokens[pos].Type,
		Name:       p.tokens[pos+1].Ident,
	}

	paramsOpen := pos + 2
	paramsClose := -1
	for i := paramsOpen + 1; i < len(p.tokens); i++ {
		if p.tokens[i].Is(token.OP_BR_CLOSE) {
			paramsClose = i
			break
		}
	}
	if paramsClose < 0 {
		return nil, &StructuralError{
			Index:    paramsOpen,
			Expected: "')' closing the parameter list of " + fn.Name,
			Found:    "end of input",
		}
	}

	params, err := p.parseParameters(paramsOpen+1, paramsClose)
	if err != nil {
		return nil, err
	}
	fn.Parameters = params

	bodyOpen := paramsClose + 1
	if bodyOpen >= len(p.tokens) || !p.tokens[bodyOpen].Is(token.OP_SC_OPEN) {
		return nil, newStructuralError(p.tokens, bodyOpen, "'{' opening the body of "+fn.Name)
	}

	bodyClose, err := p.matchScope(bodyOpen)
	if err != nil {
		return nil, err
	}
	fn.Body = p.tokens[bodyOpen+1 : bodyClose]

	return fn, nil
}

// parseParameters reads tokens[start:end] as comma separated type, name
// pairs.
func (p *Parser) parseParameters(start, end int) ([]Parameter, error) {
	var items []int
	for i := start; i < end; i++ {
		if !p.tokens[i].Is(token.OP_COMMA) {
			items = append(items, i)
		}
	}

	params := make([]Parameter, 0, len(items)/2)
	for k := 0; k < len(items); k += 2 {
		typeAt := items[k]
		if p.tokens[typeAt].Kind != token.PRIMITIVE {
			return nil, newStructuralError(p.tokens, typeAt, "parameter type")
		}
		if k+1 >= len(items) {
			return nil, newStructuralError(p.tokens, end, "parameter name")
		}
		nameAt := items[k+1]
		if p.tokens[nameAt].Kind != token.IDENT {
			return nil, newStructuralError(p.tokens, nameAt, "parameter name")
		}

		t := p.tokens[typeAt].Type
		params = append(params, Parameter{
			Type:    t,
			Name:    p.tokens[nameAt].Ident,
			Default: token.ZeroValue(t),
		})
	}
	return params, nil
}

// matchScope returns the index of the '}' matching the '{' at open. Inner
// brace pairs are skipped by a depth counter; the first close that would take
// the depth below zero ends the scope.
func (p *Parser) matchScope(open int) (int, error) {
	depth := 0
	for i := open + 1; i < len(p.tokens); i++ {
		switch {
		case p.tokens[i].Is(token.OP_SC_OPEN):
			depth++
		case p.tokens[i].Is(token.OP_SC_CLOSE):
			depth--
		}
		if depth < 0 {
			return i, nil
		}
	}
	return -1, &StructuralError{
		Index:    open,
		Expected: "'}' matching the '{' at this index",
		Found:    "end of input",
	}
}
