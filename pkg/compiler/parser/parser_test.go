package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zurustar/intc/pkg/compiler/lexer"
	"github.com/zurustar/intc/pkg/compiler/token"
)

func segment(t *testing.T, input string) *Program {
	t.Helper()

	program, err := Segment(lexer.Tokenize(input))
	require.NoError(t, err, "Segment(%q)", input)
	require.NotNil(t, program)
	return program
}

func TestNoGlobalRegion(t *testing.T) {
	program := segment(t, `int main() { ret 0; }`)

	assert.Empty(t, program.Globals, "a source without global should have an empty global region")
	assert.Len(t, program.Functions, 1)
}

func TestGlobalAndMainScenario(t *testing.T) {
	program := segment(t, `global { x = 5; } int main() { ret 0; }`)

	assert.Equal(t, lexer.Tokenize(`x = 5;`), program.Globals)

	require.Len(t, program.Functions, 1)
	fn, ok := program.Functions["main"]
	require.True(t, ok, "main should be registered")
	assert.Equal(t, "main", fn.Name)
	assert.Equal(t, token.TYPE_INT, fn.ReturnType)
	assert.Empty(t, fn.Parameters)
	assert.Equal(t, lexer.Tokenize(`ret 0;`), fn.Body)
}

func TestParameters(t *testing.T) {
	program := segment(t, `real mix(int a, real b, string c, bool d, func e) { }`)

	fn := program.Functions["mix"]
	require.NotNil(t, fn)
	assert.Equal(t, token.TYPE_REAL, fn.ReturnType)

	expected := []Parameter{
		{Type: token.TYPE_INT, Name: "a", Default: token.IntLiteral(0)},
		{Type: token.TYPE_REAL, Name: "b", Default: token.RealLiteral(0)},
		{Type: token.TYPE_STRING, Name: "c", Default: token.StringLiteral("")},
		{Type: token.TYPE_BOOL, Name: "d", Default: token.BoolLiteral(false)},
		{Type: token.TYPE_FUNC, Name: "e", Default: token.FuncLiteral()},
	}
	assert.Equal(t, expected, fn.Parameters)

	for _, param := range fn.Parameters {
		assert.Equal(t, param.Type, param.Default.Type, "default of %s should match its type", param.Name)
	}
}

func TestNestedBody(t *testing.T) {
	input := `
	int f(int x) {
		if (x) {
			loop (x) {
				x = x - 1;
			}
		}
		ret x;
	}
	int g() { ret 1; }
	`
	program := segment(t, input)

	fn := program.Functions["f"]
	require.NotNil(t, fn)

	expected := lexer.Tokenize(`
		if (x) {
			loop (x) {
				x = x - 1;
			}
		}
		ret x;`)
	assert.Equal(t, expected, fn.Body, "the body must run to the function's own closing brace")

	g := program.Functions["g"]
	require.NotNil(t, g)
	assert.Equal(t, lexer.Tokenize(`ret 1;`), g.Body)
}

func TestNestedGlobalRegion(t *testing.T) {
	program := segment(t, `global { int x = 1; if (x) { x = 2; } int y = 3; } int main() { }`)

	assert.Equal(t, lexer.Tokenize(`int x = 1; if (x) { x = 2; } int y = 3;`), program.Globals)
}

func TestOnlyFirstGlobalRegion(t *testing.T) {
	program := segment(t, `global { a = 1; } global { b = 2; }`)

	assert.Equal(t, lexer.Tokenize(`a = 1;`), program.Globals)
}

func TestEmptyGlobalRegion(t *testing.T) {
	program := segment(t, `global { }`)

	assert.Empty(t, program.Globals)
	assert.Empty(t, program.Functions)
}

func TestRedeclarationOverwrites(t *testing.T) {
	program := segment(t, `int f() { ret 1; } int g() { } bool f(int a) { ret 2; }`)

	require.Len(t, program.Functions, 2)
	assert.Equal(t, []string{"f", "g"}, program.Order)

	fn := program.Functions["f"]
	assert.Equal(t, token.TYPE_BOOL, fn.ReturnType, "the last declaration should win")
	assert.Len(t, fn.Parameters, 1)
	assert.Equal(t, lexer.Tokenize(`ret 2;`), fn.Body)

	ordered := program.Ordered()
	require.Len(t, ordered, 2)
	assert.Same(t, fn, ordered[0])
}

func TestDeclarationOrder(t *testing.T) {
	program := segment(t, `int zeta() { } int alpha() { } int main() { }`)

	assert.Equal(t, []string{"zeta", "alpha", "main"}, program.Order)
}

func TestSignatureInsideBodyIsAFunction(t *testing.T) {
	program := segment(t, `int outer() { int inner() { ret 1; } }`)

	assert.Contains(t, program.Functions, "outer")
	assert.Contains(t, program.Functions, "inner")
	assert.Equal(t, lexer.Tokenize(`ret 1;`), program.Functions["inner"].Body)
}

func TestTypedCallIsNotASignature(t *testing.T) {
	// "x = f(" has no leading type, so it never starts a function.
	program := segment(t, `int main() { x = f(1); }`)

	assert.Equal(t, []string{"main"}, program.Order)
}

func TestStructuralErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		index    int
		expected string
		found    string
	}{
		{
			name:     "global without brace",
			input:    `global x = 1;`,
			index:    1,
			expected: "'{' after global",
			found:    "IDENT(x)",
		},
		{
			name:     "global at end of input",
			input:    `global`,
			index:    1,
			expected: "'{' after global",
			found:    "end of input",
		},
		{
			name:     "unterminated global",
			input:    `global { x = 1;`,
			index:    1,
			expected: "'}' matching the '{' at this index",
			found:    "end of input",
		},
		{
			name:     "unterminated parameter list",
			input:    `int f(int a`,
			index:    2,
			expected: "')' closing the parameter list of f",
			found:    "end of input",
		},
		{
			name:     "missing body",
			input:    `int f() ret 0;`,
			index:    4,
			expected: "'{' opening the body of f",
			found:    "KEY(ret)",
		},
		{
			name:     "unterminated body",
			input:    `int f() { if (x) { }`,
			index:    4,
			expected: "'}' matching the '{' at this index",
			found:    "end of input",
		},
		{
			name:     "parameter without name",
			input:    `int f(int) { }`,
			index:    4,
			expected: "parameter name",
			found:    "OP())",
		},
		{
			name:     "parameter without type",
			input:    `int f(a b) { }`,
			index:    3,
			expected: "parameter type",
			found:    "IDENT(a)",
		},
		{
			name:     "two types",
			input:    `int f(int real) { }`,
			index:    4,
			expected: "parameter name",
			found:    "TYPE(real)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := Segment(lexer.Tokenize(tt.input))
			require.Error(t, err)
			assert.Nil(t, program)

			var serr *StructuralError
			require.True(t, errors.As(err, &serr), "error should be a *StructuralError, got %T", err)
			assert.Equal(t, tt.index, serr.Index)
			assert.Equal(t, tt.expected, serr.Expected)
			assert.Equal(t, tt.found, serr.Found)
			assert.Contains(t, err.Error(), "structure not found")
		})
	}
}

func TestEmptyTokenStream(t *testing.T) {
	program, err := Segment(nil)
	require.NoError(t, err)
	assert.Empty(t, program.Globals)
	assert.Empty(t, program.Functions)
	assert.Empty(t, program.Ordered())
}
