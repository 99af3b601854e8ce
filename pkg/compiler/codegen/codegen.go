// Package codegen writes a segmented .int program out as a C++ translation
// unit.
//
// Emission is a token-by-token substitution: every token maps to a fixed
// piece of C++ text and the source token order is preserved exactly.
package codegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zurustar/intc/pkg/compiler/parser"
	"github.com/zurustar/intc/pkg/compiler/token"
)

//go:generate mockgen -source=codegen.go -destination=mock_resolver_test.go -package=codegen

// HeaderResolver returns the library text for an imported name.
type HeaderResolver interface {
	Resolve(name string) (string, error)
}

// ResourceError reports an import whose header could not be resolved.
type ResourceError struct {
	Name string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("import %q: %v", e.Name, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// ErrNoResolver is returned when the program imports a header but the
// Generator was built without a resolver.
var ErrNoResolver = errors.New("no header resolver configured")

// Section banners written between the parts of the translation unit.
const (
	bannerStd          = "/* ===STD=== */\n"
	bannerGlobals      = "\n/* ===GLOBALS=== */\n"
	bannerDeclarations = "\n/* ===FUNCTION DECLARATIONS=== */\n"
	bannerDefinitions  = "\n/* ===FUNCTION DEFINITIONS=== */\n"
)

// Preamble is written at the top of every translation unit. The define maps
// the prefixed entry point back to the real one.
const Preamble = bannerStd +
	"#include <string>\n" +
	"#include <vector>\n" +
	"#define " + token.IdentPrefix + "main main\n"

// Generator converts a Program into C++ source text.
type Generator struct {
	resolver HeaderResolver
}

// New creates a new Generator. resolver may be nil for programs that do not
// import anything.
func New(resolver HeaderResolver) *Generator {
	return &Generator{resolver: resolver}
}

// Generate returns the complete translation unit for program. Functions are
// written in program.Order, their order of first appearance in the source.
func (g *Generator) Generate(program *parser.Program) (string, error) {
	var b strings.Builder
	b.Grow(512)

	b.WriteString(Preamble)

	b.WriteString(bannerGlobals)
	if err := g.writeGlobals(&b, program.Globals); err != nil {
		return "", err
	}

	functions := program.Ordered()

	b.WriteString(bannerDeclarations)
	for _, fn := range functions {
		b.WriteString(Declaration(fn))
		b.WriteString(Operator(token.OP_EOL))
	}

	b.WriteString(bannerDefinitions)
	for _, fn := range functions {
		b.WriteString(Definition(fn))
	}

	return b.String(), nil
}

// writeGlobals renders the global region. "import name" splices in the
// header for name instead of being rendered; the name and a following ';'
// are consumed.
func (g *Generator) writeGlobals(b *strings.Builder, globals []token.Token) error {
	for i := 0; i < len(globals); i++ {
		tok := globals[i]
		if !tok.IsKeyword(token.KEY_IMPORT) || i+1 >= len(globals) || globals[i+1].Kind != token.IDENT {
			b.WriteString(Token(tok))
			continue
		}

		name := globals[i+1].Ident
		header, err := g.resolve(name)
		if err != nil {
			return &ResourceError{Name: name, Err: err}
		}
		b.WriteString(header)

		i++
		if i+1 < len(globals) && globals[i+1].Is(token.OP_EOL) {
			i++
		}
	}
	return nil
}

func (g *Generator) resolve(name string) (string, error) {
	if g.resolver == nil {
		return "", ErrNoResolver
	}
	return g.resolver.Resolve(name)
}

// Declaration renders the signature of fn without a terminator, e.g.
// "int intc_add(int intc_a,int intc_b)".
func Declaration(fn *parser.Function) string {
	var b strings.Builder

	b.WriteString(Type(fn.ReturnType))
	b.WriteString(Ident(fn.Name))
	b.WriteString(Operator(token.OP_BR_OPEN))
	for i, param := range fn.Parameters {
		if i > 0 {
			b.WriteString(Operator(token.OP_COMMA))
		}
		b.WriteString(Type(param.Type))
		b.WriteString(Ident(param.Name))
	}
	b.WriteString(Operator(token.OP_BR_CLOSE))

	return b.String()
}

// Definition renders fn in full: its declaration followed by the body.
func Definition(fn *parser.Function) string {
	var b strings.Builder

	b.WriteString(Declaration(fn))
	b.WriteString(Operator(token.OP_SC_OPEN))
	for _, tok := range fn.Body {
		b.WriteString(Token(tok))
	}
	b.WriteString(Operator(token.OP_SC_CLOSE))

	return b.String()
}
