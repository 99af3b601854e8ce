package parser

import (
	"fmt"

	"github.com/zurustar/intc/pkg/compiler/token"
)

// StructuralError reports a delimiter or region that could not be found.
type StructuralError struct {
	// Index is the position in the token stream where the delimiter was
	// expected.
	Index int

	// Expected describes what should have been at Index.
	Expected string

	// Found describes what was actually there.
	Found string
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	return fmt.Sprintf("structure not found at token %d: expected %s, found %s",
		e.Index, e.Expected, e.Found)
}

func newStructuralError(tokens []token.Token, index int, expected string) *StructuralError {
	return &StructuralError{
		Index:    index,
		Expected: expected,
		Found:    describe(tokens, index),
	}
}

func describe(tokens []token.Token, index int) string {
	if index < 0 || index >= len(tokens) {
		return "end of input"
	}
	return tokens[index].String()
}
