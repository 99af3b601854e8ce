package parser

import "github.com/zurustar/intc/pkg/compiler/token"

// Parameter is one entry of a function's parameter list. Default is always
// the zero value of Type; the language has no default-value syntax.
type Parameter struct {
	Type    token.PrimitiveType
	Name    string
	Default token.Literal
}

// Function is a top-level function: its signature plus the raw tokens
// between its braces.
type Function struct {
	ReturnType token.PrimitiveType
	Name       string
	Parameters []Parameter
	Body       []token.Token
}

// Program is the segmented source file.
type Program struct {
	// Functions maps a function name to its last declaration.
	Functions map[string]*Function

	// Order lists every function name once, in order of first appearance.
	Order []string

	// Globals holds the tokens inside the global region, if any.
	Globals []token.Token
}

// NewProgram returns an empty Program.
func NewProgram() *Program {
	return &Program{Functions: make(map[string]*Function)}
}

// Add records fn. A later function with the same name replaces the earlier
// one but keeps its position in Order.
func (p *Program) Add(fn *Function) {
	if _, exists := p.Functions[fn.Name]; !exists {
		p.Order = append(p.Order, fn.Name)
	}
	p.Functions[fn.Name] = fn
}

// Ordered returns the functions in Order.
func (p *Program) Ordered() []*Function {
	fns := make([]*Function, 0, len(p.Order))
	for _, name := range p.Order {
		fns = append(fns, p.Functions[name])
	}
	return fns
}
